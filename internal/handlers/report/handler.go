package report

import (
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/report/model/dto"
	"lodge/internal/domains/report/service"
	"lodge/shared/constant"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Post("/daily", handler.CreateDailyReport)
	})
}

// CreateDailyReport exports the day's bookings as CSV to object storage.
// @Summary Daily booking report
// @Tags Report
// @Accept json
// @Produce json
// @Param request body dto.DailyReportRequest false "Day, defaults to today"
// @Success 201 {object} response.Data[dto.DailyReportResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/reports/daily [post]
// @Security BearerAuth
func (handler *Handler) CreateDailyReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDailyReport")
	defer scope.End()

	req := dto.DailyReportRequest{}

	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	res, err := handler.service.Daily(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create daily report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
