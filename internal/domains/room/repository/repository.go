package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/upstream"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	pathRooms      = "/api/rooms"
	pathRoomStatus = "/api/rooms/%s/status"
)

// Registry is the local cache of rooms. It is the only writer of room state in this service.
// A snapshot older than the poller interval is refetched on the next read, and a lookup that
// misses refreshes once before giving up.
type Registry interface {
	List(ctx context.Context) ([]model.Room, error)
	ListByStatus(ctx context.Context, status model.Status) ([]model.Room, error)
	Refresh(ctx context.Context) ([]model.Room, error)
	Get(ctx context.Context, id string) (model.Room, error)
	FindByNumber(ctx context.Context, roomNumber string) (model.Room, error)
	// ApplyStatus updates the cache first and rolls back if the upstream rejects the write.
	ApplyStatus(ctx context.Context, id string, status model.Status) (previous model.Room, err error)
	LastRefreshed() time.Time
}

type registryImpl struct {
	client upstream.Client
	otel   otel.Otel
	clock  timezone.Clock
	maxAge time.Duration

	mu        sync.RWMutex
	rooms     []model.Room
	loaded    bool
	refreshed time.Time

	writeMu sync.Mutex
}

func New(client upstream.Client, cfg *config.Config, otel otel.Otel, clock timezone.Clock) Registry {
	return &registryImpl{
		client: client,
		otel:   otel,
		clock:  clock,
		maxAge: time.Duration(cfg.Poller.IntervalSeconds) * time.Second,
	}
}

func (r *registryImpl) List(ctx context.Context) ([]model.Room, error) {
	if err := r.ensureFresh(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.rooms), nil
}

func (r *registryImpl) ListByStatus(ctx context.Context, status model.Status) (rooms []model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ListByStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("room.status", status.String())

	err = r.client.Do(ctx, http.MethodGet, pathRooms, url.Values{"status": {status.String()}}, nil, &rooms)
	if err != nil {
		log.Error().Err(err).Str("status", status.String()).Msg("failed to fetch rooms by status")

		return nil, failure.FetchFailed("failed to fetch rooms", err) //nolint:wrapcheck
	}

	return rooms, nil
}

func (r *registryImpl) Refresh(ctx context.Context) (rooms []model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.client.Do(ctx, http.MethodGet, pathRooms, nil, nil, &rooms)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh rooms")

		return nil, failure.FetchFailed("failed to fetch rooms", err) //nolint:wrapcheck
	}

	r.mu.Lock()
	r.rooms = rooms
	r.loaded = true
	r.refreshed = r.clock.Now()
	r.mu.Unlock()

	scope.SetAttribute("room.count", len(rooms))

	return slices.Clone(rooms), nil
}

func (r *registryImpl) Get(ctx context.Context, id string) (model.Room, error) {
	return r.find(ctx, func(room model.Room) bool { return room.ID.String() == id })
}

func (r *registryImpl) FindByNumber(ctx context.Context, roomNumber string) (model.Room, error) {
	return r.find(ctx, func(room model.Room) bool { return room.RoomNumber.String() == roomNumber })
}

func (r *registryImpl) ApplyStatus(ctx context.Context, id string, status model.Status) (previous model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ApplyStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"room.id":     id,
		"room.status": status.String(),
	})

	if err = r.ensureFresh(ctx); err != nil {
		return previous, err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	apply := func(room *model.Room) { room.Status = status }

	previous, ok := r.swap(id, apply)
	if !ok {
		if _, err = r.Refresh(ctx); err != nil {
			return previous, err
		}

		if previous, ok = r.swap(id, apply); !ok {
			return previous, failure.NotFound(fmt.Sprintf("%s %s not found", model.EntityName, id)) //nolint:wrapcheck
		}
	}

	var updated model.Room

	err = r.client.Do(ctx, http.MethodPatch, fmt.Sprintf(pathRoomStatus, url.PathEscape(id)), nil, dto.NewStatusPatch(status), &updated)
	if err != nil {
		r.swap(id, func(room *model.Room) {
			if room.Status == status {
				room.Status = previous.Status
			}
		})

		log.Error().Err(err).Str("room_id", id).Str("status", status.String()).Msg("room status update rejected, rolled back")

		return previous, failure.TransitionRejected(fmt.Sprintf("room %s could not be set to %s", id, status), err) //nolint:wrapcheck
	}

	if updated.ID.String() == id {
		r.swap(id, func(room *model.Room) { *room = updated })
	}

	return previous, nil
}

func (r *registryImpl) LastRefreshed() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.refreshed
}

// ensureFresh loads the cache on first use and refetches it once it is older than maxAge.
// A failed refetch keeps the stale snapshot.
func (r *registryImpl) ensureFresh(ctx context.Context) error {
	r.mu.RLock()
	loaded, refreshed := r.loaded, r.refreshed
	r.mu.RUnlock()

	if loaded && (r.maxAge <= 0 || r.clock.Now().Sub(refreshed) < r.maxAge) {
		return nil
	}

	if _, err := r.Refresh(ctx); err != nil {
		if !loaded {
			return err
		}

		log.Warn().Err(err).Time("refreshed", refreshed).Msg("serving stale rooms")
	}

	return nil
}

func (r *registryImpl) find(ctx context.Context, match func(model.Room) bool) (model.Room, error) {
	if err := r.ensureFresh(ctx); err != nil {
		return model.Room{}, err
	}

	if room, ok := r.lookup(match); ok {
		return room, nil
	}

	if _, err := r.Refresh(ctx); err != nil {
		return model.Room{}, err
	}

	if room, ok := r.lookup(match); ok {
		return room, nil
	}

	return model.Room{}, failure.NotFound(model.EntityName + " not found") //nolint:wrapcheck
}

func (r *registryImpl) lookup(match func(model.Room) bool) (model.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := slices.IndexFunc(r.rooms, match)
	if idx == -1 {
		return model.Room{}, false
	}

	return r.rooms[idx], true
}

// swap applies mutate to the cached room with id and returns the value it held before.
func (r *registryImpl) swap(id string, mutate func(*model.Room)) (model.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.rooms, func(room model.Room) bool { return room.ID.String() == id })
	if idx == -1 {
		return model.Room{}, false
	}

	before := r.rooms[idx]
	mutate(&r.rooms[idx])

	return before, true
}
