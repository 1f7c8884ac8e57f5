package model

import (
	"errors"
	"strings"
	"time"

	bookingModel "lodge/internal/domains/booking/model"
)

type Operation string

const (
	OperationCheckIn      Operation = "check_in"
	OperationCheckOut     Operation = "check_out"
	OperationCancel       Operation = "cancel"
	OperationStatusChange Operation = "status_change"
)

// Step names, in the order the operations run them.
const (
	StepUpstreamCheckIn  = "upstream.check_in"
	StepUpstreamCheckOut = "upstream.check_out"
	StepUpstreamCancel   = "upstream.cancel"
	StepMonitorStart     = "monitor.start"
	StepMonitorStop      = "monitor.stop"
	StepRoomOccupied     = "room.occupied"
	StepRoomCleaning     = "room.cleaning"
	StepRoomAvailable    = "room.available"
)

var ErrEmptyRef = errors.New("either booking_code or room_number and guest_name are required")

// Ref identifies a booking either by code or by the room it sits in and the guest's name.
type Ref struct {
	Code       string
	RoomNumber string
	GuestName  string
}

func (r Ref) ByCode() bool {
	return r.Code != ""
}

func (r Ref) Validate() error {
	if r.ByCode() || (r.RoomNumber != "" && r.GuestName != "") {
		return nil
	}

	return ErrEmptyRef
}

func (r Ref) String() string {
	if r.ByCode() {
		return r.Code
	}

	return "room " + r.RoomNumber + " / " + r.GuestName
}

func NewRef(code, roomNumber, guestName string) Ref {
	return Ref{
		Code:       strings.TrimSpace(code),
		RoomNumber: strings.TrimSpace(roomNumber),
		GuestName:  strings.TrimSpace(guestName),
	}
}

type StepResult struct {
	Name string
	Err  error
}

func (s StepResult) OK() bool {
	return s.Err == nil
}

// Outcome is the result of a multi-step lifecycle operation. Steps after the upstream
// call are not compensated, so a partially applied outcome is a normal result.
type Outcome struct {
	Operation Operation
	Booking   bookingModel.Booking
	Steps     []StepResult
}

func (o *Outcome) Record(name string, err error) {
	o.Steps = append(o.Steps, StepResult{Name: name, Err: err})
}

func (o Outcome) Complete() bool {
	for _, s := range o.Steps {
		if !s.OK() {
			return false
		}
	}

	return true
}

func (o Outcome) Failed() []StepResult {
	var failed []StepResult

	for _, s := range o.Steps {
		if !s.OK() {
			failed = append(failed, s)
		}
	}

	return failed
}

// Event is published for every finished lifecycle operation.
type Event struct {
	Operation   Operation   `json:"operation"`
	BookingCode string      `json:"booking_code,omitempty"`
	RoomID      string      `json:"room_id,omitempty"`
	Status      string      `json:"status,omitempty"`
	Steps       []EventStep `json:"steps"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Actor       string      `json:"actor,omitempty"`
}

type EventStep struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

func NewEvent(o Outcome, at time.Time, actor string) Event {
	steps := make([]EventStep, len(o.Steps))
	for i, s := range o.Steps {
		steps[i].Name = s.Name
		if s.Err != nil {
			steps[i].Error = s.Err.Error()
		}
	}

	return Event{
		Operation:   o.Operation,
		BookingCode: o.Booking.BookingCode,
		RoomID:      o.Booking.RoomID.String(),
		Status:      o.Booking.Status.String(),
		Steps:       steps,
		OccurredAt:  at,
		Actor:       actor,
	}
}

// Key is the partition key, so events for one booking stay ordered.
func (e Event) Key() string {
	if e.BookingCode != "" {
		return e.BookingCode
	}

	return e.RoomID
}

// Monitor is the last server-computed remaining time seen for a booking.
type Monitor struct {
	BookingCode   string
	TimeRemaining string
	CheckedAt     time.Time
}
