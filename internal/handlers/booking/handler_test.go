package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "lodge/infras/otel/mocks"
	"lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model/dto"
	lifecycleMocks "lodge/internal/domains/lifecycle/mocks"
	"lodge/internal/handlers/booking"
	gDto "lodge/shared/dto"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (http.Handler, *mocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBooking(ctrl)

	h := booking.New(svc, lifecycleMocks.NewMockLifecycle(ctrl), otelMocks.NewOtel())

	r := chi.NewRouter()
	h.Router(r)

	return r, svc
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func TestGetBookings_PassesSortAndFilter(t *testing.T) {
	h, svc := newRouter(t)

	want := gDto.QueryParams{Page: 2, Limit: 5, SortBy: "total_charges", SortDir: gDto.SortDirAsc}

	svc.EXPECT().GetAll(gomock.Any(), want, "overdue").Return(dto.GetBookingsResponse{TotalData: 0, TotalPage: 1}, nil)

	rec := serve(h, http.MethodGet, "/bookings?page=2&limit=5&sort_by=total_charges&sort_dir=asc&status=overdue", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetBookingByCode(t *testing.T) {
	h, svc := newRouter(t)

	svc.EXPECT().Detail(gomock.Any(), "BK-1").Return(dto.BookingResponse{BookingCode: "BK-1", Status: "RESERVED"}, nil)

	rec := serve(h, http.MethodGet, "/bookings/BK-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RESERVED", body.Data.Status)
}

func TestGetRemaining_RejectsMalformedCode(t *testing.T) {
	h, _ := newRouter(t)

	rec := serve(h, http.MethodGet, "/bookings/BK%20%3B1/remaining", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "booking code")
}

func TestCreateBooking_RejectsUnparseableSchedule(t *testing.T) {
	h, _ := newRouter(t)

	body := `{
		"guest_name": "Jane Doe",
		"email": "jane@example.com",
		"phone_number": "+628123456789",
		"room_id": "7",
		"type": "HOURLY",
		"scheduled_check_in": "tomorrow",
		"scheduled_check_out": "2026-03-01T17:00:00"
	}`

	rec := serve(h, http.MethodPost, "/bookings", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "scheduled_check_in")
}
