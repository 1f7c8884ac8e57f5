package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	bookingDto "lodge/internal/domains/booking/model/dto"
	lifecycleDto "lodge/internal/domains/lifecycle/model/dto"
	reportDto "lodge/internal/domains/report/model/dto"
	roomDto "lodge/internal/domains/room/model/dto"
	"lodge/shared/failure"
	"lodge/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingRequest() bookingDto.CreateBookingRequest {
	return bookingDto.CreateBookingRequest{
		GuestName:         "Jane Doe",
		Email:             "jane@example.com",
		PhoneNumber:       "+62 812-3456-7890",
		RoomID:            "7",
		Type:              "hourly",
		ScheduledCheckIn:  "2026-03-01T14:00:00",
		ScheduledCheckOut: "2026-03-01T17:00:00+07:00",
	}
}

func TestValidateStruct_CreateBooking(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*bookingDto.CreateBookingRequest)
		message string
	}{
		{name: "valid", mutate: func(*bookingDto.CreateBookingRequest) {}},
		{name: "missing guest", mutate: func(r *bookingDto.CreateBookingRequest) { r.GuestName = "" }, message: "guest_name is required"},
		{name: "bad email", mutate: func(r *bookingDto.CreateBookingRequest) { r.Email = "jane" }, message: "email must be a valid email address"},
		{name: "short phone", mutate: func(r *bookingDto.CreateBookingRequest) { r.PhoneNumber = "123" }, message: "phone_number must be a valid phone number"},
		{name: "phone with letters", mutate: func(r *bookingDto.CreateBookingRequest) { r.PhoneNumber = "0812abc4567" }, message: "phone_number must be a valid phone number"},
		{name: "slashed date", mutate: func(r *bookingDto.CreateBookingRequest) { r.ScheduledCheckIn = "01/03/2026" }, message: "scheduled_check_in must be a date and time"},
		{name: "missing checkout", mutate: func(r *bookingDto.CreateBookingRequest) { r.ScheduledCheckOut = "" }, message: "scheduled_check_out is required"},
		{name: "long guest", mutate: func(r *bookingDto.CreateBookingRequest) { r.GuestName = strings.Repeat("a", 101) }, message: "guest_name must be at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookingRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, failure.ErrValidationFailed)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateStruct_BookingReference(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&lifecycleDto.BookingRefRequest{BookingCode: "BK-2026_001"}))
	assert.NoError(t, validator.ValidateStruct(&lifecycleDto.BookingRefRequest{RoomNumber: "101", GuestName: "Ada"}))

	err := validator.ValidateStruct(&lifecycleDto.BookingRefRequest{BookingCode: "BK/1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "booking_code must be a booking code")
}

func TestValidateStruct_ReportDate(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&reportDto.DailyReportRequest{}))
	assert.NoError(t, validator.ValidateStruct(&reportDto.DailyReportRequest{Date: "2026-03-01"}))

	err := validator.ValidateStruct(&reportDto.DailyReportRequest{Date: "2026-03-01T10:00:00"})
	require.Error(t, err)
	assert.Equal(t, "date must use the 2006-01-02 layout", err.Error())
}

func image(contentType string, size int64) roomDto.ImageUpload {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)

	return roomDto.ImageUpload{Header: &multipart.FileHeader{Filename: "room.png", Header: header, Size: size}}
}

func TestValidateStruct_ImageUploads(t *testing.T) {
	tests := []struct {
		name    string
		images  []roomDto.ImageUpload
		message string
	}{
		{name: "png within limit", images: []roomDto.ImageUpload{image("image/png", 1<<20)}},
		{name: "webp at limit", images: []roomDto.ImageUpload{image("image/webp", 2<<20)}},
		{name: "gif", images: []roomDto.ImageUpload{image("image/gif", 10)}, message: "must be one of image/png"},
		{name: "too large", images: []roomDto.ImageUpload{image("image/jpeg", 2<<20+1)}, message: "must not exceed 2 MB"},
		{name: "missing header", images: []roomDto.ImageUpload{{}}, message: "is required"},
		{name: "none", images: nil, message: "Images is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&roomDto.UploadImagesRequest{Images: tt.images})
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateVar_BookingCodePath(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("ABC123", "required,bookingcode"))

	err := validator.ValidateVar("", "required,bookingcode")
	require.Error(t, err)
	assert.Equal(t, "value is required", err.Error())

	err = validator.ValidateVar("BK 1", "required,bookingcode")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "value must be a booking code"))

	assert.Error(t, validator.ValidateVar("image/png", "mimetypes=image/png"))
}

func TestValidate_DecodesThenValidates(t *testing.T) {
	var req bookingDto.CreateBookingRequest

	err := validator.Validate(strings.NewReader(`{"guest_name":"Jane"`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode request body")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	err = validator.Validate(strings.NewReader(`{"guest_name":"Jane","email":"jane@example.com"}`), &req)
	require.Error(t, err)
	assert.Equal(t, "phone_number is required", err.Error())
	assert.Equal(t, "Jane", req.GuestName)

	body := `{"guest_name":"Jane","email":"jane@example.com","phone_number":"08123456789","room_id":"7",` +
		`"type":"daily","scheduled_check_in":"2026-03-01 14:00:00","scheduled_check_out":"2026-03-02"}`

	require.NoError(t, validator.Validate(strings.NewReader(body), &req))
	assert.Equal(t, "daily", req.Type)
}
