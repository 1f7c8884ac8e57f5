package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/upstream"
	bookingModel "lodge/internal/domains/booking/model"
	bookingRepo "lodge/internal/domains/booking/repository"
	"lodge/internal/domains/lifecycle/model"
	"lodge/internal/domains/lifecycle/model/dto"
	roomModel "lodge/internal/domains/room/model"
	roomDto "lodge/internal/domains/room/model/dto"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared/constant"
	"lodge/shared/failure"
	sharedModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	pathCheckInByCode    = "/api/guest/check-in/by-code"
	pathCheckInByDetails = "/api/guest/check-in/by-details"
	pathCheckOut         = "/api/guest/check-out"
	pathMonitor          = "/api/guest/monitor/%s"
	pathCancel           = "/api/bookings/%s/cancel"

	eventPrefix = "lifecycle."
)

// Lifecycle drives bookings through the state machine. It never edits the registry or
// ledger caches directly: room writes go through the registry and both caches are
// refreshed after each operation.
type Lifecycle interface {
	CheckIn(ctx context.Context, ref model.Ref) (dto.OutcomeResponse, error)
	CheckOut(ctx context.Context, ref model.Ref) (dto.OutcomeResponse, error)
	Cancel(ctx context.Context, ref model.Ref) (dto.OutcomeResponse, error)
	RequestStatusChange(ctx context.Context, roomID string, status roomModel.Status) (roomDto.RoomResponse, error)
	Monitor(ctx context.Context, code string) (dto.MonitorResponse, error)
	Watched() []string
}

type serviceImpl struct {
	ledger   bookingRepo.Ledger
	registry roomRepo.Registry
	client   upstream.Client
	kafka    kafka.Client
	tracker  *Tracker
	clock    timezone.Clock
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	ledger bookingRepo.Ledger,
	registry roomRepo.Registry,
	client upstream.Client,
	kafka kafka.Client,
	tracker *Tracker,
	clock timezone.Clock,
	cfg *config.Config,
	otel otel.Otel,
) Lifecycle {
	return &serviceImpl{
		ledger:   ledger,
		registry: registry,
		client:   client,
		kafka:    kafka,
		tracker:  tracker,
		clock:    clock,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) CheckIn(ctx context.Context, ref model.Ref) (res dto.OutcomeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lifecycle.CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.resolve(ctx, ref)
	if err != nil {
		return res, failure.CheckInFailed(lookupCode(err), "booking "+ref.String()+" could not be resolved", err) //nolint:wrapcheck
	}

	if status := booking.DerivedStatus(s.clock.Now()); status != bookingModel.StatusReserved {
		return res, failure.CheckInFailed(http.StatusConflict, fmt.Sprintf("booking %s is %s, expected %s", booking.BookingCode, status, bookingModel.StatusReserved), nil) //nolint:wrapcheck
	}

	outcome := model.Outcome{Operation: model.OperationCheckIn, Booking: booking}

	path, query := pathCheckInByCode, url.Values{"bookingCode": {booking.BookingCode}}
	if !ref.ByCode() {
		path, query = pathCheckInByDetails, url.Values{"roomNumber": {booking.RoomNumber.String()}, "guestName": {booking.GuestName}}
	}

	if err = s.client.Do(ctx, http.MethodPost, path, query, nil, nil); err != nil {
		log.Error().Err(err).Str("booking", booking.BookingCode).Msg("check-in rejected by upstream")

		return res, failure.CheckInFailed(upstreamCode(err), "check-in failed for booking "+booking.BookingCode, err) //nolint:wrapcheck
	}

	outcome.Record(model.StepUpstreamCheckIn, nil)

	s.tracker.Start(booking.BookingCode)
	outcome.Record(model.StepMonitorStart, nil)

	outcome.Record(model.StepRoomOccupied, s.applyRoom(ctx, booking, roomModel.StatusOccupied))

	return s.finish(ctx, outcome, bookingModel.StatusCheckedIn), nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, ref model.Ref) (res dto.OutcomeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lifecycle.CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.resolve(ctx, ref)
	if err != nil {
		return res, failure.CheckOutFailed(lookupCode(err), "booking "+ref.String()+" could not be resolved", err) //nolint:wrapcheck
	}

	status := booking.DerivedStatus(s.clock.Now())
	if status != bookingModel.StatusCheckedIn && status != bookingModel.StatusOverdue {
		return res, failure.CheckOutFailed(http.StatusConflict, fmt.Sprintf("booking %s is %s, expected %s or %s", booking.BookingCode, status, bookingModel.StatusCheckedIn, bookingModel.StatusOverdue), nil) //nolint:wrapcheck
	}

	outcome := model.Outcome{Operation: model.OperationCheckOut, Booking: booking}

	err = s.client.Do(ctx, http.MethodPost, pathCheckOut, url.Values{"bookingCode": {booking.BookingCode}}, nil, nil)
	if err != nil {
		log.Error().Err(err).Str("booking", booking.BookingCode).Msg("check-out rejected by upstream")

		return res, failure.CheckOutFailed(upstreamCode(err), "check-out failed for booking "+booking.BookingCode, err) //nolint:wrapcheck
	}

	outcome.Record(model.StepUpstreamCheckOut, nil)

	s.tracker.Stop(booking.BookingCode)
	outcome.Record(model.StepMonitorStop, nil)

	outcome.Record(model.StepRoomCleaning, s.applyRoom(ctx, booking, roomModel.StatusCleaning))

	return s.finish(ctx, outcome, bookingModel.StatusCompleted), nil
}

func (s *serviceImpl) Cancel(ctx context.Context, ref model.Ref) (res dto.OutcomeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lifecycle.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.resolve(ctx, ref)
	if err != nil {
		return res, failure.CancelFailed(lookupCode(err), "booking "+ref.String()+" could not be resolved", err) //nolint:wrapcheck
	}

	if !bookingModel.CanTransition(booking.DerivedStatus(s.clock.Now()), bookingModel.StatusCancelled) {
		return res, failure.CancelFailed(http.StatusConflict, fmt.Sprintf("booking %s is %s and cannot be cancelled", booking.BookingCode, booking.DerivedStatus(s.clock.Now())), nil) //nolint:wrapcheck
	}

	outcome := model.Outcome{Operation: model.OperationCancel, Booking: booking}

	err = s.client.Do(ctx, http.MethodPut, fmt.Sprintf(pathCancel, url.PathEscape(booking.ID.String())), nil, nil, nil)
	if err != nil {
		log.Error().Err(err).Str("booking", booking.BookingCode).Msg("cancel rejected by upstream")

		return res, failure.CancelFailed(upstreamCode(err), "cancel failed for booking "+booking.BookingCode, err) //nolint:wrapcheck
	}

	outcome.Record(model.StepUpstreamCancel, nil)

	s.tracker.Stop(booking.BookingCode)

	outcome.Record(model.StepRoomAvailable, s.applyRoom(ctx, booking, roomModel.StatusAvailable))

	return s.finish(ctx, outcome, bookingModel.StatusCancelled), nil
}

// RequestStatusChange writes a room status with no booking checks. Writing the current
// status again leaves the room as it was.
func (s *serviceImpl) RequestStatusChange(ctx context.Context, roomID string, status roomModel.Status) (res roomDto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lifecycle.RequestStatusChange")
	defer scope.End()
	defer scope.TraceIfError(err)

	previous, err := s.registry.ApplyStatus(ctx, roomID, status)
	if err != nil {
		return res, err
	}

	room, err := s.registry.Get(ctx, roomID)
	if err != nil {
		return res, fmt.Errorf("failed to read room after status change: %w", err)
	}

	res.FromModel(room)

	outcome := model.Outcome{Operation: model.OperationStatusChange}
	outcome.Booking.RoomID = room.ID
	outcome.Record("room."+string(previous.Status)+"->"+string(status), nil)
	s.publish(ctx, outcome)

	return res, nil
}

func (s *serviceImpl) Monitor(ctx context.Context, code string) (res dto.MonitorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".lifecycle.Monitor")
	defer scope.End()
	defer scope.TraceIfError(err)

	var body struct {
		TimeRemaining sharedModel.FlexString `json:"timeRemaining"`
	}

	err = s.client.Do(ctx, http.MethodGet, fmt.Sprintf(pathMonitor, url.PathEscape(code)), nil, nil, &body)
	if err != nil {
		log.Error().Err(err).Str("booking", code).Msg("failed to monitor booking")

		return res, upstream.ToFailure(err, "failed to fetch remaining time for booking "+code) //nolint:wrapcheck
	}

	m := model.Monitor{BookingCode: code, TimeRemaining: body.TimeRemaining.String(), CheckedAt: s.clock.Now()}
	s.tracker.Record(m)

	scope.AddEvent("booking.monitored", map[string]any{
		"booking.code":   code,
		"time_remaining": m.TimeRemaining,
		"checked_at":     m.CheckedAt,
	})

	res.FromModel(m)

	return res, nil
}

func (s *serviceImpl) Watched() []string {
	return s.tracker.Watched()
}

func (s *serviceImpl) resolve(ctx context.Context, ref model.Ref) (bookingModel.Booking, error) {
	if err := ref.Validate(); err != nil {
		return bookingModel.Booking{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	if ref.ByCode() {
		return s.ledger.FindByCode(ctx, ref.Code) //nolint:wrapcheck
	}

	return s.ledger.FindByRoomAndGuest(ctx, ref.RoomNumber, ref.GuestName) //nolint:wrapcheck
}

func (s *serviceImpl) applyRoom(ctx context.Context, booking bookingModel.Booking, status roomModel.Status) error {
	if booking.RoomID == "" {
		return fmt.Errorf("booking %s has no room", booking.BookingCode)
	}

	if _, err := s.registry.ApplyStatus(ctx, booking.RoomID.String(), status); err != nil {
		log.Error().Err(err).Str("booking", booking.BookingCode).Str("room_id", booking.RoomID.String()).
			Msg("room status not updated after booking transition, not compensating")

		return err
	}

	return nil
}

// finish refreshes both caches, resolves the booking as the upstream now reports it
// and publishes the lifecycle event. Refresh failures are logged only.
func (s *serviceImpl) finish(ctx context.Context, outcome model.Outcome, expected bookingModel.Status) dto.OutcomeResponse {
	if _, err := s.registry.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("failed to refresh rooms after lifecycle operation")
	}

	outcome.Booking.Status = expected

	bookings, err := s.ledger.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh bookings after lifecycle operation")
	}

	for _, b := range bookings {
		if b.ID == outcome.Booking.ID && b.BookingCode == outcome.Booking.BookingCode {
			outcome.Booking = b

			break
		}
	}

	s.publish(ctx, outcome)

	var res dto.OutcomeResponse
	res.FromOutcome(outcome, s.clock.Now())

	return res
}

func (s *serviceImpl) publish(ctx context.Context, outcome model.Outcome) {
	actor, _ := ctx.Value(constant.ContextKeyUsername).(string)
	event := model.NewEvent(outcome, s.clock.Now(), actor)

	err := s.kafka.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.Topic, kafka.Message{
		Key:   event.Key(),
		Value: map[string]any{"type": eventPrefix + string(outcome.Operation), "payload": event},
	})
	if err != nil {
		log.Error().Err(err).Str("operation", string(outcome.Operation)).Msg("failed to publish lifecycle event")
	}
}

// lookupCode keeps 400 and 404 from the lookup and reports anything else as a bad gateway.
func lookupCode(err error) int {
	switch code := failure.GetCode(err); code {
	case http.StatusBadRequest, http.StatusNotFound:
		return code
	default:
		return http.StatusBadGateway
	}
}

// upstreamCode maps a refused upstream call to 409 and an unreachable one to 502.
func upstreamCode(err error) int {
	if code := upstream.StatusCode(err); code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return http.StatusConflict
	}

	return http.StatusBadGateway
}
