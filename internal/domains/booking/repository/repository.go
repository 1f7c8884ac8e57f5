package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/upstream"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	pathBookings     = "/api/bookings"
	pathGuestDetails = "/api/guest/details/%s"
)

// Ledger is the local cache of bookings. Lookups that miss refresh from upstream once, and a
// snapshot older than the poller interval is refetched on the next read.
type Ledger interface {
	List(ctx context.Context) ([]model.Booking, error)
	Refresh(ctx context.Context) ([]model.Booking, error)
	FindByCode(ctx context.Context, code string) (model.Booking, error)
	FindByRoomAndGuest(ctx context.Context, roomNumber, guestName string) (model.Booking, error)
	Create(ctx context.Context, req dto.UpstreamBookingRequest) (dto.CreateBookingResult, error)
	Detail(ctx context.Context, code string) (model.Booking, error)
	LastRefreshed() time.Time
}

type ledgerImpl struct {
	client upstream.Client
	otel   otel.Otel
	clock  timezone.Clock
	maxAge time.Duration

	mu        sync.RWMutex
	bookings  []model.Booking
	loaded    bool
	refreshed time.Time
}

func New(client upstream.Client, cfg *config.Config, otel otel.Otel, clock timezone.Clock) Ledger {
	return &ledgerImpl{
		client: client,
		otel:   otel,
		clock:  clock,
		maxAge: time.Duration(cfg.Poller.IntervalSeconds) * time.Second,
	}
}

// List serves the cached snapshot while it is fresh. When a refetch of a stale snapshot
// fails the stale one is served.
func (l *ledgerImpl) List(ctx context.Context) ([]model.Booking, error) {
	l.mu.RLock()
	loaded, refreshed := l.loaded, l.refreshed
	snapshot := slices.Clone(l.bookings)
	l.mu.RUnlock()

	if loaded && !l.stale(refreshed) {
		return snapshot, nil
	}

	bookings, err := l.Refresh(ctx)
	if err != nil {
		if loaded {
			log.Warn().Err(err).Time("refreshed", refreshed).Msg("serving stale bookings")

			return snapshot, nil
		}

		return nil, err
	}

	return bookings, nil
}

func (l *ledgerImpl) Refresh(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = l.client.Do(ctx, http.MethodGet, pathBookings, nil, nil, &bookings)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh bookings")

		return nil, failure.FetchFailed("failed to fetch bookings", err) //nolint:wrapcheck
	}

	for i := range bookings {
		bookings[i].Ingest()
	}

	l.mu.Lock()
	l.bookings = bookings
	l.loaded = true
	l.refreshed = l.clock.Now()
	l.mu.Unlock()

	scope.SetAttribute("booking.count", len(bookings))

	return slices.Clone(bookings), nil
}

func (l *ledgerImpl) FindByCode(ctx context.Context, code string) (model.Booking, error) {
	code = strings.TrimSpace(code)

	return l.find(ctx, "code "+code, func(bookings []model.Booking) int {
		return slices.IndexFunc(bookings, func(b model.Booking) bool {
			return strings.EqualFold(b.BookingCode, code)
		})
	})
}

// FindByRoomAndGuest prefers a booking that still holds the room over historical ones.
func (l *ledgerImpl) FindByRoomAndGuest(ctx context.Context, roomNumber, guestName string) (model.Booking, error) {
	roomNumber = strings.TrimSpace(roomNumber)

	return l.find(ctx, fmt.Sprintf("room %s and guest %s", roomNumber, guestName), func(bookings []model.Booking) int {
		found := -1

		for i, b := range bookings {
			if b.RoomNumber.String() != roomNumber || !b.MatchesGuest(guestName) {
				continue
			}

			if b.Status.Holds() {
				return i
			}

			if found == -1 {
				found = i
			}
		}

		return found
	})
}

func (l *ledgerImpl) Create(ctx context.Context, req dto.UpstreamBookingRequest) (res dto.CreateBookingResult, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("room.id", req.RoomID)

	err = l.client.Do(ctx, http.MethodPost, pathBookings, nil, req, &res)
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		return res, upstream.ToFailure(err, "failed to create booking") //nolint:wrapcheck
	}

	l.mu.Lock()
	if l.loaded {
		l.bookings = append(l.bookings, res.Provisional(req))
	}
	l.mu.Unlock()

	return res, nil
}

func (l *ledgerImpl) Detail(ctx context.Context, code string) (booking model.Booking, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Detail")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("booking.code", code)

	err = l.client.Do(ctx, http.MethodGet, fmt.Sprintf(pathGuestDetails, url.PathEscape(code)), nil, nil, &booking)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to get booking details")

		return booking, upstream.ToFailure(err, "failed to fetch booking "+code) //nolint:wrapcheck
	}

	booking.Ingest()

	return booking, nil
}

func (l *ledgerImpl) LastRefreshed() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.refreshed
}

// stale reports whether a snapshot taken at refreshed has outlived maxAge. A zero maxAge
// keeps snapshots until an explicit refresh.
func (l *ledgerImpl) stale(refreshed time.Time) bool {
	return l.maxAge > 0 && l.clock.Now().Sub(refreshed) >= l.maxAge
}

func (l *ledgerImpl) find(ctx context.Context, what string, index func([]model.Booking) int) (model.Booking, error) {
	l.mu.RLock()
	loaded := l.loaded && !l.stale(l.refreshed)
	if loaded {
		if idx := index(l.bookings); idx != -1 {
			found := l.bookings[idx]
			l.mu.RUnlock()

			return found, nil
		}
	}
	l.mu.RUnlock()

	bookings, err := l.Refresh(ctx)
	if err != nil {
		return model.Booking{}, err
	}

	if idx := index(bookings); idx != -1 {
		return bookings[idx], nil
	}

	return model.Booking{}, failure.NotFound(fmt.Sprintf("%s with %s not found", model.EntityName, what)) //nolint:wrapcheck
}
