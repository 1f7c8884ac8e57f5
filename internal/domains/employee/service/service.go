package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/employee/model"
	"lodge/internal/domains/employee/model/dto"
	"lodge/internal/domains/employee/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
)

const cacheGetAllEmployee = "employee:gets"

type Employee interface {
	GetAll(ctx context.Context, params gDto.QueryParams, role string) (dto.GetEmployeesResponse, error)
	Register(ctx context.Context, req dto.RegisterEmployeeRequest) (dto.EmployeeResponse, error)
}

type serviceImpl struct {
	roster repository.Roster
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(roster repository.Roster, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Employee {
	return &serviceImpl{
		roster: roster,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, role string) (res dto.GetEmployeesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".employee.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	role = model.NormalizeRole(role)
	cacheKey := shared.BuildCacheKey(cacheGetAllEmployee, "all")

	employees, err := cache.Remember(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, s.roster.List)
	if err != nil {
		return res, fmt.Errorf("failed to get employees: %w", err)
	}

	employees = slices.Clone(employees)

	if role != constant.Empty {
		employees = slices.DeleteFunc(employees, func(e model.Employee) bool {
			return e.Role != role
		})
	}

	res.FromModels(employees, params)

	return res, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterEmployeeRequest) (res dto.EmployeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".employee.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	employee, err := s.roster.Register(ctx, req.ToUpstream())
	if err != nil {
		return res, err
	}

	res.FromModel(employee)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEmployee)
	}()

	return res, nil
}
