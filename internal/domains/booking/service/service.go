package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	GetAll(ctx context.Context, params gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	Partition(ctx context.Context) (dto.PartitionResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Remaining(ctx context.Context, code string) (dto.RemainingResponse, error)
	Detail(ctx context.Context, code string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	ledger   repository.Ledger
	registry roomRepo.Registry
	clock    timezone.Clock
	cfg      *config.Config
	otel     otel.Otel

	// createMu spans the availability check and the write so two creates cannot claim one room.
	createMu sync.Mutex
}

func New(ledger repository.Ledger, registry roomRepo.Registry, clock timezone.Clock, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		ledger:   ledger,
		registry: registry,
		clock:    clock,
		cfg:      cfg,
		otel:     otel,
	}
}

// GetAll lists bookings, optionally filtered by their derived status.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	var want model.Status

	if status != constant.Empty {
		want, err = model.ParseStatus(status)
		if err != nil {
			return res, failure.BadRequest(err) //nolint:wrapcheck
		}
	}

	bookings, err := s.ledger.List(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	now := s.clock.Now()

	if want != "" {
		bookings = slices.DeleteFunc(bookings, func(b model.Booking) bool {
			return b.DerivedStatus(now) != want
		})
	}

	sortBookings(bookings, params)

	res.FromModels(bookings, params, now)

	return res, nil
}

// sortBookings orders bookings in place by params.SortBy. Unknown fields keep the ledger order.
func sortBookings(bookings []model.Booking, params gDto.QueryParams) {
	var key func(b model.Booking) float64

	switch params.SortBy {
	case constant.SortByScheduledCheckIn:
		key = func(b model.Booking) float64 { return float64(b.ScheduledCheckIn.Time.Unix()) }
	case constant.SortByScheduledCheckOut:
		key = func(b model.Booking) float64 { return float64(b.ScheduledCheckOut.Time.Unix()) }
	case constant.SortByTotalCharges:
		key = func(b model.Booking) float64 { return b.TotalCharges }
	default:
		return
	}

	slices.SortStableFunc(bookings, func(a, b model.Booking) int {
		c := cmp.Compare(key(a), key(b))
		if params.Descending() {
			return -c
		}

		return c
	})
}

func (s *serviceImpl) Partition(ctx context.Context) (res dto.PartitionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Partition")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.ledger.List(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	now := s.clock.Now()

	return ToPartitionResponse(PartitionBookings(bookings, now), now), nil
}

// ToPartitionResponse renders a partition, attaching the remaining time to active stays.
func ToPartitionResponse(p Partition, now time.Time) dto.PartitionResponse {
	res := dto.PartitionResponse{
		Active:   dto.FromModels(p.Active, now),
		Upcoming: dto.FromModels(p.Upcoming, now),
		Past:     dto.FromModels(p.Past, now),
	}

	for i, b := range p.Active {
		if b.Status == model.StatusCheckedIn {
			res.Active[i].RemainingTime = RemainingTime(b, now).Display
		}
	}

	return res
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	body, err := req.ToUpstream(s.clock.Now())
	if err != nil {
		return res, err
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	if err = s.checkAvailability(ctx, body.RoomID); err != nil {
		return res, err
	}

	result, err := s.ledger.Create(ctx, body)
	if err != nil {
		log.Error().Err(err).Str("roomId", body.RoomID).Msg("failed to create booking")

		return res, err
	}

	res.FromResult(result)

	// The ledger already holds the new booking, so a failed refresh only delays the upstream copy.
	if _, err := s.ledger.Refresh(context.WithoutCancel(ctx)); err != nil {
		log.Error().Err(err).Str("bookingId", res.ID).Msg("failed to refresh bookings after create")
	}

	return res, nil
}

// checkAvailability rejects a room that is blocked in the registry or still held by a booking.
func (s *serviceImpl) checkAvailability(ctx context.Context, roomID string) error {
	room, err := s.registry.Get(ctx, roomID)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return failure.BadRequestFromString("room does not exist") //nolint:wrapcheck
		}

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.Blocks() {
		return failure.Conflict(fmt.Sprintf("room %s is %s", room.RoomNumber, room.Status)) //nolint:wrapcheck
	}

	bookings, err := s.ledger.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bookings: %w", err)
	}

	for _, b := range bookings {
		if b.RoomID.String() == roomID && b.Status.Holds() {
			return failure.Conflict(fmt.Sprintf("room %s already has booking %s", room.RoomNumber, b.BookingCode)) //nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) Remaining(ctx context.Context, code string) (res dto.RemainingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Remaining")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.ledger.FindByCode(ctx, code)
	if err != nil {
		return res, err
	}

	remaining := RemainingTime(booking, s.clock.Now())

	return dto.RemainingResponse{
		BookingCode:    booking.BookingCode,
		Display:        remaining.Display,
		Overdue:        remaining.Elapsed(),
		DeltaSeconds:   int64(remaining.Delta / time.Second),
		OverdueMinutes: int64(remaining.Overdue() / time.Minute),
	}, nil
}

func (s *serviceImpl) Detail(ctx context.Context, code string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Detail")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.ledger.Detail(ctx, code)
	if err != nil {
		return res, err
	}

	now := s.clock.Now()

	res.FromModel(booking, now)

	if booking.Status == model.StatusCheckedIn {
		res.RemainingTime = RemainingTime(booking, now).Display
	}

	return res, nil
}
