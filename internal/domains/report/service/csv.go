package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	bookingModel "lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	"lodge/shared/timezone"
)

var header = []string{
	"booking_code", "guest_name", "email", "phone_number", "room_number", "type",
	"scheduled_check_in", "scheduled_check_out", "actual_check_in", "actual_check_out",
	"duration_hours", "total_charges", "status",
}

// Summary is the footer of the daily report.
type Summary struct {
	Bookings      int
	Revenue       float64
	OccupancyRate int
}

// DayBookings keeps the bookings scheduled to arrive on day, in ledger order.
func DayBookings(bookings []bookingModel.Booking, day time.Time) []bookingModel.Booking {
	out := []bookingModel.Booking{}

	for _, b := range bookings {
		if timezone.SameDay(b.ScheduledCheckIn.Time, day, day.Location()) {
			out = append(out, b)
		}
	}

	return out
}

// WriteCSV renders the rows followed by a blank line and the summary.
func WriteCSV(bookings []bookingModel.Booking, summary Summary, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	for _, b := range bookings {
		record := []string{
			b.BookingCode,
			b.GuestName,
			b.Email,
			b.PhoneNumber,
			b.RoomNumber.String(),
			string(b.Type),
			stamp(b.ScheduledCheckIn.Time, now),
			stamp(b.ScheduledCheckOut.Time, now),
			stamp(b.ActualCheckIn.Time, now),
			stamp(b.ActualCheckOut.Time, now),
			strconv.FormatFloat(b.DurationHours, 'f', -1, 64),
			strconv.FormatFloat(b.TotalCharges, 'f', 2, 64),
			b.DerivedStatus(now).String(),
		}

		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write report row %s: %w", b.BookingCode, err)
		}
	}

	footer := [][]string{
		{},
		{"bookings", strconv.Itoa(summary.Bookings)},
		{"revenue", strconv.FormatFloat(summary.Revenue, 'f', 2, 64)},
		{"occupancy_rate", strconv.Itoa(summary.OccupancyRate)},
		{"generated_at", now.Format(constant.DateFormat)},
	}

	if err := w.WriteAll(footer); err != nil {
		return nil, fmt.Errorf("failed to write report summary: %w", err)
	}

	return buf.Bytes(), nil
}

func stamp(t, now time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return t.In(now.Location()).Format(constant.DateFormat)
}
