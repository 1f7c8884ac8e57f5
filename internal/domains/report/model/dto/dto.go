package dto

import (
	"strings"
	"time"

	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

type DailyReportRequest struct {
	// Date is YYYY-MM-DD in the application timezone. Empty means today.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// Day resolves the requested calendar day, defaulting to the day of now.
func (r DailyReportRequest) Day(now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(r.Date)
	if raw == constant.Empty {
		return timezone.StartOfDay(now, now.Location()), nil
	}

	day, err := time.ParseInLocation(constant.DayFormat, raw, now.Location())
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("date must be YYYY-MM-DD") //nolint:wrapcheck
	}

	return day, nil
}

type DailyReportResponse struct {
	URL           string  `json:"url"`
	FileName      string  `json:"file_name"`
	Day           string  `json:"day"`
	Bookings      int     `json:"bookings"`
	Revenue       float64 `json:"revenue"`
	OccupancyRate int     `json:"occupancy_rate"`
}
