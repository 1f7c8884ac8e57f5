package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"lodge/shared/model"
)

const (
	EntityName         = "room"
	CategoryEntityName = "room category"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
	StatusCleaning  Status = "CLEANING"
	StatusReserved  Status = "RESERVED"
)

var Statuses = []Status{StatusAvailable, StatusOccupied, StatusCleaning, StatusReserved}

// NormalizeStatus trims, upper-cases and maps '-' and ' ' to '_'.
func NormalizeStatus(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// ParseStatus returns the canonical status for raw, in any casing.
func ParseStatus(raw string) (Status, error) {
	status := Status(NormalizeStatus(raw))
	if !slices.Contains(Statuses, status) {
		return "", fmt.Errorf("invalid room status %q", raw)
	}

	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("room status must be a string: %w", err)
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = status

	return nil
}

type Room struct {
	ID              model.FlexString `json:"id"`
	RoomNumber      model.FlexString `json:"roomNumber"`
	Floor           int              `json:"floor"`
	Status          Status           `json:"status"`
	SpecialFeatures string           `json:"specialFeatures"`
	LastCleanedAt   model.Timestamp  `json:"lastCleanedAt"`
	BaseHourlyRate  float64          `json:"baseHourlyRate"`
	BaseDailyRate   float64          `json:"baseDailyRate"`
	OvernightRate   float64          `json:"overnightRate"`
	MaxOccupancy    int              `json:"maxOccupancy"`
	CategoryID      model.FlexString `json:"categoryId"`
}

// Blocks reports whether a new booking may not be placed on the room.
func (r Room) Blocks() bool {
	return r.Status == StatusOccupied || r.Status == StatusReserved
}

type Category struct {
	ID            model.FlexString `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	HourlyRate    float64          `json:"hourlyRate"`
	DailyRate     float64          `json:"dailyRate"`
	OvernightRate float64          `json:"overnightRate"`
	Amenities     []string         `json:"amenities"`
	MaxOccupancy  int              `json:"maxOccupancy"`
	Active        bool             `json:"active"`
	Images        []string         `json:"images"`
}

// DedupeAmenities trims amenities and drops blanks and repeats, keeping first-seen order.
func DedupeAmenities(amenities []string) []string {
	seen := make(map[string]struct{}, len(amenities))
	out := make([]string, 0, len(amenities))

	for _, a := range amenities {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, a)
	}

	return out
}
