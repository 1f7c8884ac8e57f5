package employee

import (
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/employee/model/dto"
	"lodge/internal/domains/employee/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryRole = "role"

type Handler struct {
	service service.Employee
	otel    otel.Otel
}

func New(service service.Employee, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/employees", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RegisterEmployee)
		routerGroup.Get("/", handler.GetEmployees)
	})
}

// RegisterEmployee creates a staff account upstream.
// @Summary Register an employee
// @Tags Employee
// @Accept json
// @Produce json
// @Param request body dto.RegisterEmployeeRequest true "Register Employee Request"
// @Success 201 {object} response.Data[dto.EmployeeResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/employees [post]
// @Security BearerAuth
func (handler *Handler) RegisterEmployee(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterEmployee")
	defer scope.End()

	req := dto.RegisterEmployeeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register employee")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("employee.registered", map[string]any{"employee.role": res.Role})

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetEmployees lists staff accounts.
// @Summary Get all employees
// @Tags Employee
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param role query string false "Filter by role"
// @Success 200 {object} response.Data[dto.GetEmployeesResponse]
// @Failure 502 {object} response.Error
// @Router /v1/employees [get]
// @Security BearerAuth
func (handler *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployees")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(queryRole))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get employees")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
