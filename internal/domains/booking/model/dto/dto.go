package dto

import (
	"strings"
	"time"

	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	sharedModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateBookingRequest struct {
	GuestName         string `json:"guest_name"          validate:"required,max=100"`
	Email             string `json:"email"               validate:"required,email,max=100"`
	PhoneNumber       string `json:"phone_number"        validate:"required,phone"`
	RoomID            string `json:"room_id"             validate:"required"`
	Type              string `json:"type"                validate:"required"`
	ScheduledCheckIn  string `json:"scheduled_check_in"  validate:"required,timestamp"`
	ScheduledCheckOut string `json:"scheduled_check_out" validate:"required,timestamp"`
}

// UpstreamBookingRequest is the body of POST /api/bookings.
type UpstreamBookingRequest struct {
	GuestName         string     `json:"guestName"`
	Email             string     `json:"email"`
	PhoneNumber       string     `json:"phoneNumber"`
	RoomID            string     `json:"roomId"`
	Type              model.Type `json:"type"`
	ScheduledCheckIn  string     `json:"scheduledCheckIn"`
	ScheduledCheckOut string     `json:"scheduledCheckOut"`
	DurationHours     float64    `json:"durationHours"`
}

// ToUpstream checks the fields validator tags cannot express and builds the upstream body.
// Check-in may not fall before the calendar day of now.
func (c CreateBookingRequest) ToUpstream(now time.Time) (UpstreamBookingRequest, error) {
	bookingType, err := model.ParseType(c.Type)
	if err != nil {
		return UpstreamBookingRequest{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	checkIn, err := sharedModel.ParseTime(strings.TrimSpace(c.ScheduledCheckIn))
	if err != nil {
		return UpstreamBookingRequest{}, failure.BadRequestFromString("scheduled_check_in: " + err.Error()) //nolint:wrapcheck
	}

	checkOut, err := sharedModel.ParseTime(strings.TrimSpace(c.ScheduledCheckOut))
	if err != nil {
		return UpstreamBookingRequest{}, failure.BadRequestFromString("scheduled_check_out: " + err.Error()) //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return UpstreamBookingRequest{}, failure.BadRequestFromString("scheduled_check_out must be after scheduled_check_in") //nolint:wrapcheck
	}

	if checkIn.Before(timezone.StartOfDay(now, now.Location())) {
		return UpstreamBookingRequest{}, failure.BadRequestFromString("scheduled_check_in must not be in the past") //nolint:wrapcheck
	}

	return UpstreamBookingRequest{
		GuestName:         strings.TrimSpace(c.GuestName),
		Email:             strings.ToLower(strings.TrimSpace(c.Email)),
		PhoneNumber:       strings.TrimSpace(c.PhoneNumber),
		RoomID:            c.RoomID,
		Type:              bookingType,
		ScheduledCheckIn:  timezone.Format(checkIn, constant.UpstreamStamp),
		ScheduledCheckOut: timezone.Format(checkOut, constant.UpstreamStamp),
		DurationHours:     checkOut.Sub(checkIn).Hours(),
	}, nil
}

// CreateBookingResult accepts both spellings the upstream uses for the new booking.
type CreateBookingResult struct {
	ID           sharedModel.FlexString `json:"id"`
	BookingID    sharedModel.FlexString `json:"bookingId"`
	BookingCode  string                 `json:"bookingCode"`
	TotalCharges *float64               `json:"totalCharges"`
	Amount       *float64               `json:"amount"`
}

func (r CreateBookingResult) Identifier() string {
	if r.ID != "" {
		return r.ID.String()
	}

	return r.BookingID.String()
}

func (r CreateBookingResult) Charges() float64 {
	switch {
	case r.TotalCharges != nil:
		return *r.TotalCharges
	case r.Amount != nil:
		return *r.Amount
	default:
		return 0
	}
}

// Provisional is the RESERVED booking the ledger holds until the next refresh returns the
// upstream copy.
func (r CreateBookingResult) Provisional(req UpstreamBookingRequest) model.Booking {
	checkIn, _ := sharedModel.ParseTime(req.ScheduledCheckIn)
	checkOut, _ := sharedModel.ParseTime(req.ScheduledCheckOut)

	return model.Booking{
		ID:                sharedModel.FlexString(r.Identifier()),
		BookingCode:       r.BookingCode,
		GuestName:         req.GuestName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		RoomID:            sharedModel.FlexString(req.RoomID),
		Type:              req.Type,
		ScheduledCheckIn:  sharedModel.NewTimestamp(checkIn),
		ScheduledCheckOut: sharedModel.NewTimestamp(checkOut),
		DurationHours:     req.DurationHours,
		TotalCharges:      r.Charges(),
		Status:            model.StatusReserved,
	}
}

type CreateBookingResponse struct {
	ID           string  `json:"id"`
	BookingCode  string  `json:"booking_code,omitempty"`
	TotalCharges float64 `json:"total_charges"`
}

func (c *CreateBookingResponse) FromResult(r CreateBookingResult) {
	c.ID = r.Identifier()
	c.BookingCode = r.BookingCode
	c.TotalCharges = r.Charges()
}

type RemainingResponse struct {
	BookingCode    string `json:"booking_code"`
	Display        string `json:"display"`
	Overdue        bool   `json:"overdue"`
	DeltaSeconds   int64  `json:"delta_seconds"`
	OverdueMinutes int64  `json:"overdue_minutes,omitempty"`
}

type BookingResponse struct {
	ID                string     `json:"id"`
	BookingCode       string     `json:"booking_code"`
	GuestName         string     `json:"guest_name"`
	Email             string     `json:"email"`
	PhoneNumber       string     `json:"phone_number"`
	RoomID            string     `json:"room_id"`
	RoomNumber        string     `json:"room_number"`
	Type              string     `json:"type"`
	ScheduledCheckIn  time.Time  `json:"scheduled_check_in"`
	ScheduledCheckOut time.Time  `json:"scheduled_check_out"`
	ActualCheckIn     *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut    *time.Time `json:"actual_check_out,omitempty"`
	DurationHours     float64    `json:"duration_hours"`
	TotalCharges      float64    `json:"total_charges"`
	Status            string     `json:"status"`
	RemainingTime     string     `json:"remaining_time,omitempty"`
}

// FromModel fills the response with the status derived at now.
func (r *BookingResponse) FromModel(m model.Booking, now time.Time) {
	r.ID = m.ID.String()
	r.BookingCode = m.BookingCode
	r.GuestName = m.GuestName
	r.Email = m.Email
	r.PhoneNumber = m.PhoneNumber
	r.RoomID = m.RoomID.String()
	r.RoomNumber = m.RoomNumber.String()
	r.Type = string(m.Type)
	r.ScheduledCheckIn = m.ScheduledCheckIn.Time
	r.ScheduledCheckOut = m.ScheduledCheckOut.Time
	r.ActualCheckIn = optionalTime(m.ActualCheckIn)
	r.ActualCheckOut = optionalTime(m.ActualCheckOut)
	r.DurationHours = m.DurationHours
	r.TotalCharges = m.TotalCharges
	r.Status = m.DerivedStatus(now).String()
}

func optionalTime(t sharedModel.Timestamp) *time.Time {
	if t.IsZero() {
		return nil
	}

	v := t.Time

	return &v
}

func FromModels(models []model.Booking, now time.Time) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m, now)
	}

	return res
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, params gDto.QueryParams, now time.Time) {
	r.TotalData = len(models)
	r.TotalPage = shared.CalculateTotalPage(len(models), params.Limit)
	r.Bookings = FromModels(shared.Paginate(models, params), now)
}

type PartitionResponse struct {
	Active   []BookingResponse `json:"active"`
	Upcoming []BookingResponse `json:"upcoming"`
	Past     []BookingResponse `json:"past"`
}
