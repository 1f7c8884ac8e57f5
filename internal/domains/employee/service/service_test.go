package service_test

import (
	"context"
	"errors"
	"testing"

	"lodge/config"
	otelMocks "lodge/infras/otel/mocks"
	"lodge/internal/domains/employee/mocks"
	"lodge/internal/domains/employee/model"
	"lodge/internal/domains/employee/model/dto"
	"lodge/internal/domains/employee/service"
	cacheMocks "lodge/shared/cache/mocks"
	gDto "lodge/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var roster = []model.Employee{
	{ID: "1", Name: "Ada", Role: "ADMIN", Status: "active"},
	{ID: "2", Name: "Grace", Role: "CLEANER", Status: "off-duty"},
	{ID: "3", Name: "Alan", Role: "CLEANER", Status: "on duty"},
}

func newService(t *testing.T) (*mocks.MockRoster, *cacheMocks.MockRedisCache, service.Employee) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRoster(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return repo, cache, service.New(repo, cfg, cache, otelMocks.NewOtel())
}

func TestGetAll_CacheMissFiltersByRole(t *testing.T) {
	repo, cache, svc := newService(t)

	cache.EXPECT().Get(gomock.Any(), "employee:gets:all", gomock.Any()).Return(errors.New("miss"))
	cache.EXPECT().Save(gomock.Any(), "employee:gets:all", gomock.Any(), 60).Return(nil).AnyTimes()
	repo.EXPECT().List(gomock.Any()).Return(roster, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "cleaner")
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, "Grace", res.Employees[0].Name)
	assert.False(t, res.Employees[0].OnDuty)
	assert.True(t, res.Employees[1].OnDuty)
}

func TestGetAll_CacheHit(t *testing.T) {
	_, cache, svc := newService(t)

	cache.EXPECT().Get(gomock.Any(), "employee:gets:all", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, value any) error {
			*(value.(*[]model.Employee)) = roster[:1]

			return nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "")
	require.NoError(t, err)

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "Ada", res.Employees[0].Name)
}

func TestRegister_InvalidatesCache(t *testing.T) {
	repo, cache, svc := newService(t)

	cleared := make(chan struct{})

	repo.EXPECT().Register(gomock.Any(), dto.UpstreamRegisterRequest{
		Name: "Ada", Email: "ada@lodge.test", PhoneNumber: "0812", Password: "secret-pass", Role: "RECEPTIONIST",
	}).Return(model.Employee{ID: "9", Name: "Ada", Email: "ada@lodge.test", Role: "RECEPTIONIST"}, nil)
	cache.EXPECT().Clear(gomock.Any(), "employee:gets*").DoAndReturn(func(context.Context, string) error {
		close(cleared)

		return nil
	})

	res, err := svc.Register(context.Background(), dto.RegisterEmployeeRequest{
		Name: "Ada", Email: "Ada@Lodge.test", PhoneNumber: "0812", Password: "secret-pass", Role: "receptionist",
	})
	require.NoError(t, err)

	assert.Equal(t, "9", res.ID)
	<-cleared
}
