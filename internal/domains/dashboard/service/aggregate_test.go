package service_test

import (
	"testing"
	"time"

	bookingModel "lodge/internal/domains/booking/model"
	"lodge/internal/domains/dashboard/service"
	employeeModel "lodge/internal/domains/employee/model"
	roomModel "lodge/internal/domains/room/model"
	sharedModel "lodge/shared/model"

	"github.com/stretchr/testify/assert"
)

var (
	jakarta = time.FixedZone("WIB", 7*60*60)
	now     = time.Date(2026, 3, 1, 10, 0, 0, 0, jakarta)
)

func checkedIn(code string, checkOut time.Time) bookingModel.Booking {
	return bookingModel.Booking{
		BookingCode:       code,
		Status:            bookingModel.StatusCheckedIn,
		ScheduledCheckIn:  sharedModel.NewTimestamp(now.Add(-2 * time.Hour)),
		ScheduledCheckOut: sharedModel.NewTimestamp(checkOut),
	}
}

func arriving(at time.Time, charges float64, status bookingModel.Status) bookingModel.Booking {
	return bookingModel.Booking{
		Status:           status,
		ScheduledCheckIn: sharedModel.NewTimestamp(at),
		TotalCharges:     charges,
	}
}

func TestOccupancyRate(t *testing.T) {
	bookings := []bookingModel.Booking{
		checkedIn("A", now.Add(time.Hour)),
		checkedIn("B", now.Add(-time.Hour)),
		{Status: bookingModel.StatusReserved},
		{Status: bookingModel.StatusCompleted},
	}

	assert.Equal(t, 25, service.OccupancyRate(bookings, 8))
	assert.Equal(t, 67, service.OccupancyRate(bookings, 3))
	assert.Equal(t, 0, service.OccupancyRate(bookings, 0))
	assert.Equal(t, 0, service.OccupancyRate(nil, 10))
	// 1/8 = 12.5 rounds half up.
	assert.Equal(t, 13, service.OccupancyRate(bookings[:1], 8))
}

// Scenario C.
func TestTodayRevenue(t *testing.T) {
	bookings := []bookingModel.Booking{
		arriving(now, 50, bookingModel.StatusReserved),
		arriving(now.AddDate(0, 0, -1), 100, bookingModel.StatusCompleted),
	}

	assert.InDelta(t, 50.0, service.TodayRevenue(bookings, now), 0.0001)
	assert.InDelta(t, 100.0, service.YesterdayRevenue(bookings, now), 0.0001)
}

func TestRevenue_UsesLocalCalendarDate(t *testing.T) {
	// 23:30 UTC on Feb 28 is already Mar 1 in WIB.
	lateUTC := time.Date(2026, 2, 28, 23, 30, 0, 0, time.UTC)
	bookings := []bookingModel.Booking{arriving(lateUTC, 70, bookingModel.StatusReserved)}

	assert.InDelta(t, 70.0, service.TodayRevenue(bookings, now), 0.0001)
	assert.InDelta(t, 0.0, service.TodayRevenue(bookings, now.In(time.UTC)), 0.0001)
}

func TestRevenueChange(t *testing.T) {
	tests := []struct {
		name             string
		today, yesterday float64
		want             int
	}{
		{name: "both zero", today: 0, yesterday: 0, want: 0},
		{name: "no revenue yesterday", today: 10, yesterday: 0, want: 100},
		{name: "growth", today: 150, yesterday: 100, want: 50},
		{name: "drop", today: 50, yesterday: 200, want: -75},
		{name: "drop to zero", today: 0, yesterday: 80, want: -100},
		{name: "half rounds up", today: 9, yesterday: 8, want: 13},
		{name: "negative half rounds towards zero", today: 7, yesterday: 8, want: -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.RevenueChange(tt.today, tt.yesterday))
		})
	}
}

// Scenario D.
func TestUpcomingCheckouts(t *testing.T) {
	bookings := []bookingModel.Booking{
		checkedIn("10m", now.Add(10*time.Minute)),
		checkedIn("3h", now.Add(3*time.Hour)),
		checkedIn("90m", now.Add(90*time.Minute)),
		checkedIn("-5m", now.Add(-5*time.Minute)),
		checkedIn("119m", now.Add(119*time.Minute)),
	}

	got := service.UpcomingCheckouts(bookings, now, 2*time.Hour, 3)

	codes := make([]string, len(got))
	for i, c := range got {
		codes[i] = c.Booking.BookingCode
	}

	assert.Equal(t, []string{"10m", "90m", "119m"}, codes)
	assert.Equal(t, 10*time.Minute, got[0].Delta)
}

func TestUpcomingCheckouts_BoundariesAndLimit(t *testing.T) {
	reserved := checkedIn("RES", now.Add(time.Minute))
	reserved.Status = bookingModel.StatusReserved

	bookings := []bookingModel.Booking{
		checkedIn("EXACT", now.Add(2*time.Hour)),
		checkedIn("NOW", now),
		reserved,
		checkedIn("A", now.Add(time.Minute)),
		checkedIn("B", now.Add(time.Minute)),
		checkedIn("C", now.Add(30*time.Minute)),
	}

	got := service.UpcomingCheckouts(bookings, now, 2*time.Hour, 3)

	codes := make([]string, len(got))
	for i, c := range got {
		codes[i] = c.Booking.BookingCode
	}

	assert.Equal(t, []string{"A", "B", "C"}, codes)
	assert.Len(t, service.UpcomingCheckouts(bookings, now, 2*time.Hour, 0), 4)
}

func TestRoomStatusCounts(t *testing.T) {
	counts := service.RoomStatusCounts([]roomModel.Room{
		{Status: roomModel.StatusOccupied},
		{Status: roomModel.StatusOccupied},
		{Status: roomModel.StatusCleaning},
	})

	assert.Equal(t, map[roomModel.Status]int{
		roomModel.StatusAvailable: 0,
		roomModel.StatusOccupied:  2,
		roomModel.StatusCleaning:  1,
		roomModel.StatusReserved:  0,
	}, counts)
}

func TestTodayCheckIns(t *testing.T) {
	bookings := []bookingModel.Booking{
		arriving(now.Add(3*time.Hour), 0, bookingModel.StatusReserved),
		arriving(now.Add(-3*time.Hour), 0, bookingModel.StatusCheckedIn),
		arriving(now.Add(time.Hour), 0, bookingModel.StatusCancelled),
		arriving(now.AddDate(0, 0, 1), 0, bookingModel.StatusReserved),
	}

	assert.Equal(t, 2, service.TodayCheckIns(bookings, now))
}

func TestStaffOnDuty(t *testing.T) {
	employees := []employeeModel.Employee{
		{Role: "ADMIN", Status: "active"},
		{Role: "CLEANER", Status: "On-Duty"},
		{Role: "RECEPTIONIST", Status: "off-duty"},
		{Role: "USER", Status: "active"},
	}

	assert.Equal(t, 2, service.StaffOnDuty(employees))
}
