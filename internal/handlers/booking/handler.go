package booking

import (
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/service"
	lifecycleService "lodge/internal/domains/lifecycle/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryStatus = "status"

type Handler struct {
	service   service.Booking
	lifecycle lifecycleService.Lifecycle
	otel      otel.Otel
}

func New(service service.Booking, lifecycle lifecycleService.Lifecycle, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		lifecycle: lifecycle,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/partition", handler.GetPartition)
		routerGroup.Get("/{code}", handler.GetBookingByCode)
		routerGroup.Get("/{code}/remaining", handler.GetRemaining)
		routerGroup.Get("/{code}/monitor", handler.GetMonitor)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Create a room booking. The room must exist and must not be held by another booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("booking.created", map[string]any{
		"booking.code":    res.BookingCode,
		"booking.charges": res.TotalCharges,
		"user":            user,
	})

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings retrieves all bookings, optionally filtered by derived status.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (RESERVED, CHECKED_IN, OVERDUE, COMPLETED, CANCELLED)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, constant.SortByScheduledCheckIn, constant.SortByScheduledCheckOut, constant.SortByTotalCharges)

	res, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(queryStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPartition splits the ledger into active, upcoming and past bookings.
// @Summary Partition bookings
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.PartitionResponse]
// @Failure 502 {object} response.Error
// @Router /v1/bookings/partition [get]
// @Security BearerAuth
func (handler *Handler) GetPartition(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartition")
	defer scope.End()

	res, err := handler.service.Partition(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to partition bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// @Summary Get booking by code
// @Tags Booking
// @Produce json
// @Param code path string true "Booking code"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{code} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByCode")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)
	if err := validator.ValidateVar(code, "required,bookingcode"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Detail(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRemaining reports the time left before the scheduled checkout.
// @Summary Remaining time of a booking
// @Tags Booking
// @Produce json
// @Param code path string true "Booking code"
// @Success 200 {object} response.Data[dto.RemainingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{code}/remaining [get]
// @Security BearerAuth
func (handler *Handler) GetRemaining(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRemaining")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)
	if err := validator.ValidateVar(code, "required,bookingcode"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Remaining(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get remaining time")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMonitor polls the upstream timer of a booking.
// @Summary Monitor a booking
// @Tags Booking
// @Produce json
// @Param code path string true "Booking code"
// @Success 200 {object} response.Data[lifecycleDto.MonitorResponse]
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{code}/monitor [get]
// @Security BearerAuth
func (handler *Handler) GetMonitor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonitor")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)
	if err := validator.ValidateVar(code, "required,bookingcode"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.lifecycle.Monitor(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to monitor booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
