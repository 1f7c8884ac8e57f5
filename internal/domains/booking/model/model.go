package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	roomModel "lodge/internal/domains/room/model"
	"lodge/shared/model"
)

const EntityName = "booking"

type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusOverdue   Status = "OVERDUE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// transitions lists every legal edge. OVERDUE is entered by the clock, never by a write.
var transitions = map[Status][]Status{
	StatusReserved:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCompleted, StatusOverdue},
	StatusOverdue:   {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ParseStatus(raw string) (Status, error) {
	status := Status(roomModel.NormalizeStatus(raw))
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("invalid booking status %q", raw)
	}

	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("booking status must be a string: %w", err)
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = status

	return nil
}

// CanTransition reports whether from -> to is an edge of the booking state machine.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Holds reports whether the booking still claims its room.
func (s Status) Holds() bool {
	return s == StatusReserved || s == StatusCheckedIn || s == StatusOverdue
}

type Type string

const (
	TypeHourly    Type = "hourly"
	TypeDaily     Type = "daily"
	TypeOvernight Type = "overnight"
)

var Types = []Type{TypeHourly, TypeDaily, TypeOvernight}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !slices.Contains(Types, t) {
		return "", fmt.Errorf("invalid booking type %q", raw)
	}

	return t, nil
}

func (t *Type) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("booking type must be a string: %w", err)
	}

	if raw == "" {
		*t = ""

		return nil
	}

	parsed, err := ParseType(raw)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

type Booking struct {
	ID                model.FlexString `json:"id"`
	BookingCode       string           `json:"bookingCode"`
	GuestName         string           `json:"guestName"`
	Email             string           `json:"email"`
	PhoneNumber       string           `json:"phoneNumber"`
	Room              *roomModel.Room  `json:"room,omitempty"`
	RoomID            model.FlexString `json:"roomId"`
	RoomNumber        model.FlexString `json:"roomNumber"`
	Type              Type             `json:"type"`
	ScheduledCheckIn  model.Timestamp  `json:"scheduledCheckIn"`
	ScheduledCheckOut model.Timestamp  `json:"scheduledCheckOut"`
	ActualCheckIn     model.Timestamp  `json:"actualCheckIn"`
	ActualCheckOut    model.Timestamp  `json:"actualCheckOut"`
	DurationHours     float64          `json:"durationHours"`
	TotalCharges      float64          `json:"totalCharges"`
	Status            Status           `json:"status"`
}

// Ingest prepares an upstream booking for the ledger. A stored OVERDUE is folded back to
// CHECKED_IN so that overdue is always derived from the clock, and the flat room
// reference is filled from the embedded room.
func (b *Booking) Ingest() {
	if b.Status == StatusOverdue {
		b.Status = StatusCheckedIn
	}

	if b.Room != nil {
		if b.RoomID == "" {
			b.RoomID = b.Room.ID
		}

		if b.RoomNumber == "" {
			b.RoomNumber = b.Room.RoomNumber
		}
	}
}

// DerivedStatus is OVERDUE iff the stored status is CHECKED_IN and now is past the
// scheduled checkout. Without a scheduled checkout the booking never goes overdue. Every
// other status is returned as stored.
func (b Booking) DerivedStatus(now time.Time) Status {
	if b.Status == StatusCheckedIn && !b.ScheduledCheckOut.IsZero() && now.After(b.ScheduledCheckOut.Time) {
		return StatusOverdue
	}

	return b.Status
}

// MatchesGuest compares the guest name case-insensitively, ignoring surrounding blanks.
func (b Booking) MatchesGuest(guestName string) bool {
	return strings.EqualFold(strings.TrimSpace(b.GuestName), strings.TrimSpace(guestName))
}
