package repository_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"lodge/config"
	"lodge/infras/otel/mocks"
	"lodge/infras/upstream/upstreamtest"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/repository"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func upstreamRooms() []map[string]any {
	return []map[string]any{
		{"id": 1, "roomNumber": "101", "floor": 1, "status": "available"},
		{"id": 2, "roomNumber": "102", "floor": 1, "status": "Occupied"},
	}
}

func newRegistry(t *testing.T) (*upstreamtest.Server, repository.Registry) {
	t.Helper()

	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		if status := r.URL.Query().Get("status"); status != "" {
			upstreamtest.JSON(w, http.StatusOK, upstreamRooms()[:1])

			return
		}

		upstreamtest.JSON(w, http.StatusOK, upstreamRooms())
	})

	return srv, repository.New(client, &config.Config{}, mocks.NewOtel(), timezone.NewFixedClock(now))
}

func TestRegistry_RefreshNormalizesStatus(t *testing.T) {
	_, registry := newRegistry(t)

	rooms, err := registry.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, model.StatusAvailable, rooms[0].Status)
	assert.Equal(t, model.StatusOccupied, rooms[1].Status)
	assert.True(t, registry.LastRefreshed().Equal(now))
}

func TestRegistry_ListLoadsOnce(t *testing.T) {
	srv, registry := newRegistry(t)

	for range 3 {
		rooms, err := registry.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	}

	assert.Equal(t, 1, srv.Count(http.MethodGet, "/api/rooms"))
}

func TestRegistry_ListByStatusDoesNotTouchCache(t *testing.T) {
	srv, registry := newRegistry(t)

	rooms, err := registry.ListByStatus(context.Background(), model.StatusAvailable)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	assert.Equal(t, "status=AVAILABLE", srv.Calls()[0].Query)
	assert.True(t, registry.LastRefreshed().IsZero())
}

func TestRegistry_RefreshFailure(t *testing.T) {
	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/rooms", upstreamtest.Reply(http.StatusInternalServerError, map[string]string{"error": "boom"}))

	registry := repository.New(client, &config.Config{}, mocks.NewOtel(), timezone.NewFixedClock(now))

	_, err := registry.Refresh(context.Background())
	assert.ErrorIs(t, err, failure.ErrFetchFailed)
}

func TestRegistry_RefreshRejectsUnknownStatus(t *testing.T) {
	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/rooms", upstreamtest.Reply(http.StatusOK, []map[string]any{{"id": 1, "status": "MAINTENANCE"}}))

	registry := repository.New(client, &config.Config{}, mocks.NewOtel(), timezone.NewFixedClock(now))

	_, err := registry.Refresh(context.Background())
	assert.ErrorIs(t, err, failure.ErrFetchFailed)
}

func TestRegistry_GetAndFindByNumber(t *testing.T) {
	_, registry := newRegistry(t)

	room, err := registry.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "102", room.RoomNumber.String())

	room, err = registry.FindByNumber(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "1", room.ID.String())

	_, err = registry.Get(context.Background(), "99")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRegistry_ApplyStatusSuccess(t *testing.T) {
	srv, registry := newRegistry(t)
	srv.Router.Patch("/api/rooms/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		upstreamtest.JSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(r, "id"), "roomNumber": "101", "status": body["status"]})
	})

	previous, err := registry.ApplyStatus(context.Background(), "1", model.StatusCleaning)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, previous.Status)

	room, err := registry.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCleaning, room.Status)

	calls := srv.Calls()
	assert.JSONEq(t, `{"status":"CLEANING","reserved":false}`, string(calls[len(calls)-1].Body))
}

func TestRegistry_ApplyStatusRollsBackOnRejection(t *testing.T) {
	srv, registry := newRegistry(t)
	srv.Router.Patch("/api/rooms/{id}/status", upstreamtest.Reply(http.StatusUnprocessableEntity, map[string]string{"error": "room in use"}))

	_, err := registry.ApplyStatus(context.Background(), "2", model.StatusAvailable)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrTransitionRejected)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	room, err := registry.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOccupied, room.Status)
}

func TestRegistry_ApplyStatusUnknownRoom(t *testing.T) {
	srv, registry := newRegistry(t)

	_, err := registry.ApplyStatus(context.Background(), "404", model.StatusCleaning)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Zero(t, srv.Count(http.MethodPatch, "/api/rooms/404/status"))
}

func TestRegistry_ApplyStatusIsIdempotent(t *testing.T) {
	srv, registry := newRegistry(t)
	srv.Router.Patch("/api/rooms/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := registry.ApplyStatus(context.Background(), "1", model.StatusReserved)
	require.NoError(t, err)

	once, err := registry.List(context.Background())
	require.NoError(t, err)

	_, err = registry.ApplyStatus(context.Background(), "1", model.StatusReserved)
	require.NoError(t, err)

	twice, err := registry.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, 2, srv.Count(http.MethodPatch, "/api/rooms/1/status"))
}

func newRegistryWith(t *testing.T, cfg *config.Config, clock timezone.Clock, rooms func() []map[string]any) (*upstreamtest.Server, repository.Registry) {
	t.Helper()

	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/rooms", func(w http.ResponseWriter, _ *http.Request) {
		upstreamtest.JSON(w, http.StatusOK, rooms())
	})

	return srv, repository.New(client, cfg, mocks.NewOtel(), clock)
}

func TestRegistry_FindByNumberRefreshesOnceOnMiss(t *testing.T) {
	var calls atomic.Int32

	srv, registry := newRegistryWith(t, &config.Config{}, timezone.NewFixedClock(now), func() []map[string]any {
		if calls.Add(1) == 1 {
			return upstreamRooms()[:1]
		}

		return upstreamRooms()
	})

	_, err := registry.List(context.Background())
	require.NoError(t, err)

	room, err := registry.FindByNumber(context.Background(), "102")
	require.NoError(t, err)
	assert.Equal(t, "2", room.ID.String())
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/api/rooms"))

	_, err = registry.FindByNumber(context.Background(), "999")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, 3, srv.Count(http.MethodGet, "/api/rooms"))
}

func TestRegistry_ApplyStatusRefreshesBeforeWriting(t *testing.T) {
	var calls atomic.Int32

	srv, registry := newRegistryWith(t, &config.Config{}, timezone.NewFixedClock(now), func() []map[string]any {
		if calls.Add(1) == 1 {
			return upstreamRooms()[:1]
		}

		return upstreamRooms()
	})
	srv.Router.Patch("/api/rooms/{id}/status", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := registry.List(context.Background())
	require.NoError(t, err)

	previous, err := registry.ApplyStatus(context.Background(), "2", model.StatusCleaning)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOccupied, previous.Status)
	assert.Equal(t, 1, srv.Count(http.MethodPatch, "/api/rooms/2/status"))
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/api/rooms"))

	room, err := registry.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCleaning, room.Status)
}

func TestRegistry_ListRefetchesAfterInterval(t *testing.T) {
	cfg := &config.Config{}
	cfg.Poller.IntervalSeconds = 60

	clock := timezone.NewFixedClock(now)
	srv, registry := newRegistryWith(t, cfg, clock, upstreamRooms)

	_, err := registry.List(context.Background())
	require.NoError(t, err)

	clock.Add(59 * time.Second)

	_, err = registry.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Count(http.MethodGet, "/api/rooms"))

	clock.Add(time.Second)

	_, err = registry.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/api/rooms"))
	assert.True(t, registry.LastRefreshed().Equal(now.Add(time.Minute)))
}

func TestRegistry_ListServesStaleSnapshotWhenRefetchFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.Poller.IntervalSeconds = 60

	var down atomic.Bool

	clock := timezone.NewFixedClock(now)
	srv, client := upstreamtest.New(t)
	srv.Router.Get("/api/rooms", func(w http.ResponseWriter, _ *http.Request) {
		if down.Load() {
			upstreamtest.JSON(w, http.StatusBadGateway, map[string]string{"error": "down"})

			return
		}

		upstreamtest.JSON(w, http.StatusOK, upstreamRooms())
	})

	registry := repository.New(client, cfg, mocks.NewOtel(), clock)

	_, err := registry.List(context.Background())
	require.NoError(t, err)

	down.Store(true)
	clock.Add(2 * time.Minute)

	rooms, err := registry.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
	assert.True(t, registry.LastRefreshed().Equal(now))
}
