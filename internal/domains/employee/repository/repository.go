package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"net/http"

	"lodge/infras/otel"
	"lodge/infras/upstream"
	"lodge/internal/domains/employee/model"
	"lodge/internal/domains/employee/model/dto"
	"lodge/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	pathEmployees        = "/api/admin/users"
	pathRegisterEmployee = "/api/auth/register-employee"
)

type Roster interface {
	List(ctx context.Context) ([]model.Employee, error)
	Register(ctx context.Context, req dto.UpstreamRegisterRequest) (model.Employee, error)
}

type rosterImpl struct {
	client upstream.Client
	otel   otel.Otel
}

func New(client upstream.Client, otel otel.Otel) Roster {
	return &rosterImpl{
		client: client,
		otel:   otel,
	}
}

func (r *rosterImpl) List(ctx context.Context) (employees []model.Employee, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".employee.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.client.Do(ctx, http.MethodGet, pathEmployees, nil, nil, &employees)
	if err != nil {
		log.Error().Err(err).Msg("failed to list employees")

		return nil, upstream.ToFailure(err, "failed to fetch employees") //nolint:wrapcheck
	}

	return employees, nil
}

func (r *rosterImpl) Register(ctx context.Context, req dto.UpstreamRegisterRequest) (employee model.Employee, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".employee.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.client.Do(ctx, http.MethodPost, pathRegisterEmployee, nil, req, &employee)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to register employee")

		return employee, upstream.ToFailure(err, "failed to register employee") //nolint:wrapcheck
	}

	if employee.Email == "" {
		employee = model.Employee{Name: req.Name, Email: req.Email, PhoneNumber: req.PhoneNumber, Role: req.Role}
	}

	return employee, nil
}
