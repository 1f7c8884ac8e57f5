package lifecycle

import (
	"context"
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/lifecycle/model"
	"lodge/internal/domains/lifecycle/model/dto"
	"lodge/internal/domains/lifecycle/service"
	"lodge/shared/constant"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Lifecycle
	otel    otel.Otel
}

func New(service service.Lifecycle, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/lifecycle", func(routerGroup chi.Router) {
		routerGroup.Post("/check-in", handler.CheckIn)
		routerGroup.Post("/check-out", handler.CheckOut)
		routerGroup.Post("/cancel", handler.Cancel)
		routerGroup.Get("/watched", handler.GetWatched)
	})
}

type operation func(ctx context.Context, ref model.Ref) (dto.OutcomeResponse, error)

// CheckIn checks a guest in by booking code, or by room number and guest name.
// @Summary Check in
// @Description Marks the booking CHECKED_IN upstream, then the room OCCUPIED, then starts monitoring.
// @Description A failed room write does not undo the check-in. The response lists every step.
// @Tags Lifecycle
// @Accept json
// @Produce json
// @Param request body dto.BookingRefRequest true "Booking code or room number and guest name"
// @Success 200 {object} response.Data[dto.OutcomeResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/lifecycle/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	handler.run(w, r, "CheckIn", handler.service.CheckIn)
}

// CheckOut completes a CHECKED_IN or OVERDUE booking and sends the room to CLEANING.
// @Summary Check out
// @Tags Lifecycle
// @Accept json
// @Produce json
// @Param request body dto.BookingRefRequest true "Booking code or room number and guest name"
// @Success 200 {object} response.Data[dto.OutcomeResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/lifecycle/check-out [post]
// @Security BearerAuth
func (handler *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	handler.run(w, r, "CheckOut", handler.service.CheckOut)
}

// Cancel cancels a RESERVED booking and releases its room.
// @Summary Cancel booking
// @Tags Lifecycle
// @Accept json
// @Produce json
// @Param request body dto.BookingRefRequest true "Booking code or room number and guest name"
// @Success 200 {object} response.Data[dto.OutcomeResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/lifecycle/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	handler.run(w, r, "Cancel", handler.service.Cancel)
}

// @Summary Monitored booking codes
// @Tags Lifecycle
// @Produce json
// @Success 200 {object} response.Data[[]string]
// @Router /v1/lifecycle/watched [get]
// @Security BearerAuth
func (handler *Handler) GetWatched(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWatched")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Watched())
}

func (handler *Handler) run(w http.ResponseWriter, r *http.Request, name string, op operation) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	req := dto.BookingRefRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	ref, err := req.ToRef()
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := op(ctx, ref)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("ref", ref.String()).Msgf("%s failed", name)

		response.WithError(w, err)

		return
	}

	if !res.Complete {
		log.Warn().Str("ref", ref.String()).Msgf("%s completed with failed steps", name)
	}

	response.WithJSON(w, http.StatusOK, res)
}
