package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	bookingModel "lodge/internal/domains/booking/model"
	bookingRepo "lodge/internal/domains/booking/repository"
	bookingService "lodge/internal/domains/booking/service"
	"lodge/internal/domains/dashboard/model/dto"
	employeeRepo "lodge/internal/domains/employee/repository"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared/constant"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Dashboard composes read-only summaries. Nothing here writes to the registry or ledger.
type Dashboard interface {
	FrontDesk(ctx context.Context) (dto.FrontDeskResponse, error)
	Admin(ctx context.Context) (dto.AdminResponse, error)
	Guest(ctx context.Context, identities ...string) (dto.GuestResponse, error)
}

type serviceImpl struct {
	registry roomRepo.Registry
	ledger   bookingRepo.Ledger
	roster   employeeRepo.Roster
	clock    timezone.Clock
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	registry roomRepo.Registry,
	ledger bookingRepo.Ledger,
	roster employeeRepo.Roster,
	clock timezone.Clock,
	cfg *config.Config,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		registry: registry,
		ledger:   ledger,
		roster:   roster,
		clock:    clock,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) FrontDesk(ctx context.Context) (res dto.FrontDeskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.FrontDesk")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, _, err = s.frontDesk(ctx)

	return res, err
}

func (s *serviceImpl) Admin(ctx context.Context) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Admin")
	defer scope.End()
	defer scope.TraceIfError(err)

	frontDesk, bookings, err := s.frontDesk(ctx)
	if err != nil {
		return res, err
	}

	res.FrontDeskResponse = frontDesk
	res.TodayRevenue = TodayRevenue(bookings, frontDesk.GeneratedAt)
	res.YesterdayRevenue = YesterdayRevenue(bookings, frontDesk.GeneratedAt)
	res.RevenueChange = RevenueChange(res.TodayRevenue, res.YesterdayRevenue)

	employees, err := s.roster.List(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get employees: %w", err)
	}

	for _, e := range employees {
		if e.IsStaff() {
			res.TotalStaff++
		}
	}

	res.StaffOnDuty = StaffOnDuty(employees)

	return res, nil
}

// Guest partitions the bookings belonging to the caller, matched by email or guest name.
func (s *serviceImpl) Guest(ctx context.Context, identities ...string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Guest")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.ledger.List(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	identities = slices.DeleteFunc(identities, func(id string) bool {
		return strings.TrimSpace(id) == constant.Empty
	})

	own := slices.DeleteFunc(bookings, func(b bookingModel.Booking) bool {
		return !belongsTo(b, identities)
	})

	now := s.clock.Now()

	res.GeneratedAt = now
	res.Bookings = bookingService.ToPartitionResponse(bookingService.PartitionBookings(own, now), now)

	return res, nil
}

func belongsTo(b bookingModel.Booking, identities []string) bool {
	for _, id := range identities {
		if strings.EqualFold(strings.TrimSpace(b.Email), strings.TrimSpace(id)) || b.MatchesGuest(id) {
			return true
		}
	}

	return false
}

func (s *serviceImpl) frontDesk(ctx context.Context) (res dto.FrontDeskResponse, bookings []bookingModel.Booking, err error) {
	rooms, err := s.registry.List(ctx)
	if err != nil {
		return res, nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err = s.ledger.List(ctx)
	if err != nil {
		return res, nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	now := s.clock.Now()
	window := time.Duration(s.cfg.Dashboard.CheckoutWindowMinutes) * time.Minute

	res.GeneratedAt = now
	res.TotalRooms = len(rooms)
	res.OccupancyRate = OccupancyRate(bookings, len(rooms))
	res.TodayCheckIns = TodayCheckIns(bookings, now)
	res.RoomsRefreshedAt = dto.OptionalTime(s.registry.LastRefreshed())
	res.LedgerRefreshedAt = dto.OptionalTime(s.ledger.LastRefreshed())

	res.RoomStatus = make(map[string]int)
	for status, n := range RoomStatusCounts(rooms) {
		res.RoomStatus[status.String()] = n
	}

	res.Overdue = []dto.OverdueResponse{}

	for _, b := range bookings {
		switch b.DerivedStatus(now) {
		case bookingModel.StatusOverdue:
			res.Overdue = append(res.Overdue, dto.OverdueResponse{
				BookingCode:    b.BookingCode,
				GuestName:      b.GuestName,
				RoomNumber:     b.RoomNumber.String(),
				OverdueMinutes: int64(bookingService.RemainingTime(b, now).Overdue() / time.Minute),
			})

			res.ActiveBookings++
		case bookingModel.StatusReserved, bookingModel.StatusCheckedIn:
			res.ActiveBookings++
		}
	}

	checkouts := UpcomingCheckouts(bookings, now, window, s.cfg.Dashboard.CheckoutDisplayLimit)

	res.UpcomingCheckouts = make([]dto.UpcomingCheckoutResponse, len(checkouts))
	for i, c := range checkouts {
		res.UpcomingCheckouts[i] = dto.UpcomingCheckoutResponse{
			BookingCode:  c.Booking.BookingCode,
			GuestName:    c.Booking.GuestName,
			RoomNumber:   c.Booking.RoomNumber.String(),
			CheckOutAt:   c.Booking.ScheduledCheckOut.Time,
			Remaining:    bookingService.FormatClock(c.Delta),
			DeltaMinutes: int64(c.Delta / time.Minute),
		}
	}

	log.Debug().Int("rooms", len(rooms)).Int("bookings", len(bookings)).Msg("dashboard computed")

	return res, bookings, nil
}
