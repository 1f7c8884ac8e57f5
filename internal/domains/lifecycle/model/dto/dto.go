package dto

import (
	"time"

	bookingDto "lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/lifecycle/model"
	"lodge/shared/failure"
)

type BookingRefRequest struct {
	BookingCode string `json:"booking_code" validate:"omitempty,bookingcode"`
	RoomNumber  string `json:"room_number"  validate:"omitempty,max=20"`
	GuestName   string `json:"guest_name"   validate:"omitempty,max=100"`
}

func (r BookingRefRequest) ToRef() (model.Ref, error) {
	ref := model.NewRef(r.BookingCode, r.RoomNumber, r.GuestName)
	if err := ref.Validate(); err != nil {
		return ref, failure.BadRequest(err) //nolint:wrapcheck
	}

	return ref, nil
}

type StepResponse struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type OutcomeResponse struct {
	Operation string                     `json:"operation"`
	Complete  bool                       `json:"complete"`
	Booking   bookingDto.BookingResponse `json:"booking"`
	Steps     []StepResponse             `json:"steps"`
}

func (r *OutcomeResponse) FromOutcome(o model.Outcome, now time.Time) {
	r.Operation = string(o.Operation)
	r.Complete = o.Complete()
	r.Booking.FromModel(o.Booking, now)

	r.Steps = make([]StepResponse, len(o.Steps))
	for i, s := range o.Steps {
		r.Steps[i] = StepResponse{Name: s.Name, OK: s.OK()}
		if s.Err != nil {
			r.Steps[i].Error = s.Err.Error()
		}
	}
}

type MonitorResponse struct {
	BookingCode   string    `json:"booking_code"`
	TimeRemaining string    `json:"time_remaining"`
	CheckedAt     time.Time `json:"checked_at"`
}

func (r *MonitorResponse) FromModel(m model.Monitor) {
	r.BookingCode = m.BookingCode
	r.TimeRemaining = m.TimeRemaining
	r.CheckedAt = m.CheckedAt
}
