package service

import (
	"math"
	"sort"
	"time"

	bookingModel "lodge/internal/domains/booking/model"
	employeeModel "lodge/internal/domains/employee/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared/timezone"
)

// round matches JavaScript Math.round: halves go towards +Inf.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// OccupancyRate is the share of rooms with a checked-in booking, in whole percent.
func OccupancyRate(bookings []bookingModel.Booking, totalRooms int) int {
	if totalRooms <= 0 {
		return 0
	}

	checkedIn := 0

	for _, b := range bookings {
		if b.Status == bookingModel.StatusCheckedIn {
			checkedIn++
		}
	}

	return round(float64(checkedIn) / float64(totalRooms) * 100)
}

// Revenue sums the charges of bookings whose scheduled check-in falls on day's
// calendar date in day's location.
func Revenue(bookings []bookingModel.Booking, day time.Time) float64 {
	total := 0.0

	for _, b := range bookings {
		if timezone.SameDay(b.ScheduledCheckIn.Time, day, day.Location()) {
			total += b.TotalCharges
		}
	}

	return total
}

func TodayRevenue(bookings []bookingModel.Booking, now time.Time) float64 {
	return Revenue(bookings, now)
}

func YesterdayRevenue(bookings []bookingModel.Booking, now time.Time) float64 {
	return Revenue(bookings, now.AddDate(0, 0, -1))
}

// RevenueChange is the day-over-day change in whole percent. With no revenue yesterday
// it is 100 when today has any and 0 otherwise.
func RevenueChange(today, yesterday float64) int {
	if yesterday == 0 {
		if today > 0 {
			return 100
		}

		return 0
	}

	return round((today - yesterday) / yesterday * 100)
}

type Checkout struct {
	Booking bookingModel.Booking
	Delta   time.Duration
}

// UpcomingCheckouts returns checked-in bookings due out within window, soonest first.
func UpcomingCheckouts(bookings []bookingModel.Booking, now time.Time, window time.Duration, limit int) []Checkout {
	out := []Checkout{}

	for _, b := range bookings {
		if b.Status != bookingModel.StatusCheckedIn {
			continue
		}

		delta := b.ScheduledCheckOut.Sub(now)
		if delta > 0 && delta <= window {
			out = append(out, Checkout{Booking: b, Delta: delta})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Delta < out[j].Delta
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// RoomStatusCounts always carries every status, zero when no room has it.
func RoomStatusCounts(rooms []roomModel.Room) map[roomModel.Status]int {
	counts := make(map[roomModel.Status]int, len(roomModel.Statuses))
	for _, s := range roomModel.Statuses {
		counts[s] = 0
	}

	for _, r := range rooms {
		counts[r.Status]++
	}

	return counts
}

// TodayCheckIns counts non-cancelled bookings scheduled to arrive today.
func TodayCheckIns(bookings []bookingModel.Booking, now time.Time) int {
	n := 0

	for _, b := range bookings {
		if b.Status != bookingModel.StatusCancelled && timezone.SameDay(b.ScheduledCheckIn.Time, now, now.Location()) {
			n++
		}
	}

	return n
}

// StaffOnDuty counts non-guest accounts whose status reads as on duty.
func StaffOnDuty(employees []employeeModel.Employee) int {
	n := 0

	for _, e := range employees {
		if e.IsStaff() && e.OnDuty() {
			n++
		}
	}

	return n
}
