package dashboard

import (
	"net/http"

	"lodge/infras/otel"
	authModel "lodge/internal/domains/auth/model"
	"lodge/internal/domains/dashboard/service"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/admin", handler.GetAdmin)
		routerGroup.Get("/receptionist", handler.GetReceptionist)
		routerGroup.Get("/guest", handler.GetGuest)
	})
}

// GetAdmin returns the front-desk view plus revenue and staffing.
// @Summary Admin dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.AdminResponse]
// @Failure 502 {object} response.Error
// @Router /v1/dashboard/admin [get]
// @Security BearerAuth
func (handler *Handler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdminDashboard")
	defer scope.End()

	res, err := handler.service.Admin(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build admin dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReceptionist returns occupancy, arrivals, upcoming checkouts and overdue stays.
// @Summary Receptionist dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.FrontDeskResponse]
// @Failure 502 {object} response.Error
// @Router /v1/dashboard/receptionist [get]
// @Security BearerAuth
func (handler *Handler) GetReceptionist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReceptionistDashboard")
	defer scope.End()

	res, err := handler.service.FrontDesk(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build receptionist dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetGuest returns the caller's own bookings, matched on the identities in the token.
// @Summary Guest dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.GuestResponse]
// @Failure 401 {object} response.Error
// @Router /v1/dashboard/guest [get]
// @Security BearerAuth
func (handler *Handler) GetGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestDashboard")
	defer scope.End()

	session, ok := authModel.SessionFromContext(ctx)
	if !ok {
		err := failure.Unauthorized("missing session")

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Guest(ctx, session.Username, session.Subject)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build guest dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
