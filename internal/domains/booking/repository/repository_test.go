package repository_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"lodge/config"
	"lodge/infras/otel/mocks"
	"lodge/infras/upstream/upstreamtest"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newLedger(t *testing.T, bookings func() []map[string]any) (*upstreamtest.Server, repository.Ledger) {
	t.Helper()

	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/bookings", func(w http.ResponseWriter, _ *http.Request) {
		upstreamtest.JSON(w, http.StatusOK, bookings())
	})

	return srv, repository.New(client, &config.Config{}, mocks.NewOtel(), timezone.NewFixedClock(now))
}

func staticBookings() []map[string]any {
	return []map[string]any{
		{"id": 1, "bookingCode": "ABC123", "guestName": "Ada", "roomNumber": "101", "status": "OVERDUE", "scheduledCheckOut": "2026-03-01T11:50:00Z"},
		{"id": 2, "bookingCode": "OLD001", "guestName": "Grace", "room": map[string]any{"id": 5, "roomNumber": "205", "status": "CLEANING"}, "status": "COMPLETED"},
		{"id": 3, "bookingCode": "NEW002", "guestName": "grace", "room": map[string]any{"id": 5, "roomNumber": "205", "status": "CLEANING"}, "status": "RESERVED"},
	}
}

func TestLedger_RefreshIngests(t *testing.T) {
	_, ledger := newLedger(t, staticBookings)

	bookings, err := ledger.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 3)

	assert.Equal(t, model.StatusCheckedIn, bookings[0].Status)
	assert.Equal(t, model.StatusOverdue, bookings[0].DerivedStatus(now))
	assert.Equal(t, "205", bookings[1].RoomNumber.String())
	assert.True(t, ledger.LastRefreshed().Equal(now))
}

func TestLedger_RefreshFailure(t *testing.T) {
	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/bookings", upstreamtest.Reply(http.StatusServiceUnavailable, nil))

	ledger := repository.New(client, &config.Config{}, mocks.NewOtel(), timezone.NewFixedClock(now))

	_, err := ledger.List(context.Background())
	assert.ErrorIs(t, err, failure.ErrFetchFailed)
}

func TestLedger_FindByCodeRefreshesOnceOnMiss(t *testing.T) {
	var calls atomic.Int32

	srv, ledger := newLedger(t, func() []map[string]any {
		if calls.Add(1) == 1 {
			return staticBookings()[:1]
		}

		return staticBookings()
	})

	_, err := ledger.List(context.Background())
	require.NoError(t, err)

	b, err := ledger.FindByCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "1", b.ID.String())
	assert.Equal(t, 1, srv.Count(http.MethodGet, "/api/bookings"))

	b, err = ledger.FindByCode(context.Background(), "NEW002")
	require.NoError(t, err)
	assert.Equal(t, "3", b.ID.String())
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/api/bookings"))

	_, err = ledger.FindByCode(context.Background(), "MISSING")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, 3, srv.Count(http.MethodGet, "/api/bookings"))
}

func TestLedger_FindByRoomAndGuestPrefersHoldingBooking(t *testing.T) {
	_, ledger := newLedger(t, staticBookings)

	b, err := ledger.FindByRoomAndGuest(context.Background(), "205", "GRACE")
	require.NoError(t, err)
	assert.Equal(t, "NEW002", b.BookingCode)

	_, err = ledger.FindByRoomAndGuest(context.Background(), "205", "Ada")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestLedger_CreateAcceptsBothSpellings(t *testing.T) {
	tests := []struct {
		name    string
		reply   map[string]any
		id      string
		charges float64
	}{
		{name: "id and totalCharges", reply: map[string]any{"id": 10, "totalCharges": 120.5}, id: "10", charges: 120.5},
		{name: "bookingId and amount", reply: map[string]any{"bookingId": "b-11", "amount": 80}, id: "b-11", charges: 80},
		{name: "no charges", reply: map[string]any{"id": 12}, id: "12", charges: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, ledger := newLedger(t, staticBookings)
			srv.Router.Post("/api/bookings", upstreamtest.Reply(http.StatusCreated, tt.reply))

			res, err := ledger.Create(context.Background(), dto.UpstreamBookingRequest{RoomID: "5"})
			require.NoError(t, err)

			assert.Equal(t, tt.id, res.Identifier())
			assert.InDelta(t, tt.charges, res.Charges(), 0.001)
		})
	}
}

func TestLedger_CreateRejected(t *testing.T) {
	srv, ledger := newLedger(t, staticBookings)
	srv.Router.Post("/api/bookings", upstreamtest.Reply(http.StatusBadRequest, map[string]string{"error": "invalid email"}))

	_, err := ledger.Create(context.Background(), dto.UpstreamBookingRequest{RoomID: "5"})
	assert.ErrorIs(t, err, failure.ErrValidationFailed)
}

func TestLedger_Detail(t *testing.T) {
	srv, ledger := newLedger(t, staticBookings)
	srv.Router.Get("/api/guest/details/{code}", upstreamtest.Reply(http.StatusOK, map[string]any{
		"id": 1, "bookingCode": "ABC123", "status": "overdue", "room": map[string]any{"id": 4, "roomNumber": "101"},
	}))

	b, err := ledger.Detail(context.Background(), "ABC123")
	require.NoError(t, err)

	assert.Equal(t, model.StatusCheckedIn, b.Status)
	assert.Equal(t, "101", b.RoomNumber.String())
}

func TestLedger_CreateHoldsRoomUntilRefresh(t *testing.T) {
	srv, ledger := newLedger(t, func() []map[string]any { return nil })
	srv.Router.Post("/api/bookings", upstreamtest.Reply(http.StatusCreated, map[string]any{"id": 7, "bookingCode": "NEW777", "totalCharges": 90}))

	_, err := ledger.List(context.Background())
	require.NoError(t, err)

	_, err = ledger.Create(context.Background(), dto.UpstreamBookingRequest{
		GuestName:         "Ada",
		RoomID:            "5",
		Type:              model.TypeHourly,
		ScheduledCheckIn:  "2026-03-01T13:00:00",
		ScheduledCheckOut: "2026-03-01T15:00:00",
	})
	require.NoError(t, err)

	bookings, err := ledger.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	assert.Equal(t, "NEW777", bookings[0].BookingCode)
	assert.Equal(t, "5", bookings[0].RoomID.String())
	assert.Equal(t, model.StatusReserved, bookings[0].Status)
	assert.Equal(t, 15, bookings[0].ScheduledCheckOut.Hour())
	assert.Equal(t, 1, srv.Count(http.MethodGet, "/api/bookings"))
}

func TestLedger_ListRefetchesAfterInterval(t *testing.T) {
	cfg := &config.Config{}
	cfg.Poller.IntervalSeconds = 30

	clock := timezone.NewFixedClock(now)
	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/bookings", upstreamtest.Reply(http.StatusOK, staticBookings()))

	ledger := repository.New(client, cfg, mocks.NewOtel(), clock)

	_, err := ledger.List(context.Background())
	require.NoError(t, err)

	clock.Add(29 * time.Second)

	_, err = ledger.FindByCode(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Count(http.MethodGet, "/api/bookings"))

	clock.Add(time.Second)

	_, err = ledger.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/api/bookings"))

	clock.Add(30 * time.Second)

	_, err = ledger.FindByCode(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 3, srv.Count(http.MethodGet, "/api/bookings"))
}

func TestLedger_ListServesStaleSnapshotWhenRefetchFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.Poller.IntervalSeconds = 30

	var down atomic.Bool

	clock := timezone.NewFixedClock(now)
	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/bookings", func(w http.ResponseWriter, _ *http.Request) {
		if down.Load() {
			upstreamtest.JSON(w, http.StatusBadGateway, nil)

			return
		}

		upstreamtest.JSON(w, http.StatusOK, staticBookings())
	})

	ledger := repository.New(client, cfg, mocks.NewOtel(), clock)

	_, err := ledger.List(context.Background())
	require.NoError(t, err)

	down.Store(true)
	clock.Add(time.Minute)

	bookings, err := ledger.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, bookings, 3)
	assert.True(t, ledger.LastRefreshed().Equal(now))
}
