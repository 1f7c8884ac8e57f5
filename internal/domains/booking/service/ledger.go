package service

import (
	"fmt"
	"time"

	"lodge/internal/domains/booking/model"
)

// OverdueDisplay is shown once the scheduled checkout has passed.
const OverdueDisplay = "-00:00"

type Partition struct {
	Active   []model.Booking
	Upcoming []model.Booking
	Past     []model.Booking
}

// PartitionBookings groups bookings for display, keeping input order. A future RESERVED
// booking is both active and upcoming.
func PartitionBookings(bookings []model.Booking, now time.Time) Partition {
	p := Partition{
		Active:   []model.Booking{},
		Upcoming: []model.Booking{},
		Past:     []model.Booking{},
	}

	for _, b := range bookings {
		switch b.DerivedStatus(now) {
		case model.StatusReserved, model.StatusCheckedIn, model.StatusOverdue:
			p.Active = append(p.Active, b)
		case model.StatusCompleted, model.StatusCancelled:
			p.Past = append(p.Past, b)
		}

		if b.Status == model.StatusReserved && b.ScheduledCheckIn.After(now) {
			p.Upcoming = append(p.Upcoming, b)
		}
	}

	return p
}

type Remaining struct {
	// Delta is scheduledCheckOut - now. Negative once the checkout has passed.
	Delta   time.Duration
	Display string
}

// Elapsed matches the OVERDUE rule: strictly after the scheduled checkout.
func (r Remaining) Elapsed() bool {
	return r.Delta < 0
}

// Overdue is how far past checkout the booking is, or zero.
func (r Remaining) Overdue() time.Duration {
	if r.Delta < 0 {
		return -r.Delta
	}

	return 0
}

// RemainingTime is empty for a booking without a scheduled checkout.
func RemainingTime(b model.Booking, now time.Time) Remaining {
	if b.ScheduledCheckOut.IsZero() {
		return Remaining{}
	}

	delta := b.ScheduledCheckOut.Sub(now)

	if delta < 0 {
		return Remaining{Delta: delta, Display: OverdueDisplay}
	}

	return Remaining{Delta: delta, Display: FormatClock(delta)}
}

// FormatClock renders a non-negative duration as HH:MM, flooring to the minute.
// Hours are not wrapped at 24.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	minutes := int64(d / time.Minute)

	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
