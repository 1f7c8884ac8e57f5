package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"lodge/config"
	otelMocks "lodge/infras/otel/mocks"
	"lodge/infras/upstream/upstreamtest"
	"lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
	cacheMocks "lodge/shared/cache/mocks"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	srv      *upstreamtest.Server
	registry *mocks.MockRegistry
	cache    *cacheMocks.MockRedisCache
	svc      service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	srv, client := upstreamtest.New(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f := fixture{
		srv:      srv,
		registry: mocks.NewMockRegistry(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.registry, client, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func TestGetAll_PaginatesRegistrySnapshot(t *testing.T) {
	f := newFixture(t)

	rooms := []model.Room{
		{ID: "1", RoomNumber: "101", Status: model.StatusAvailable},
		{ID: "2", RoomNumber: "102", Status: model.StatusCleaning},
		{ID: "3", RoomNumber: "103", Status: model.StatusOccupied},
	}
	f.registry.EXPECT().List(gomock.Any()).Return(rooms, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 2, Limit: 2}, "")
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, "103", res.Rooms[0].RoomNumber)
}

func TestGetAll_StatusFilter(t *testing.T) {
	f := newFixture(t)

	f.registry.EXPECT().ListByStatus(gomock.Any(), model.StatusCleaning).Return([]model.Room{{ID: "2", Status: model.StatusCleaning}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, "cleaning")
	require.NoError(t, err)
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, "CLEANING", res.Rooms[0].Status)
}

func TestGetAll_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, "broken")
	assert.ErrorIs(t, err, failure.ErrValidationFailed)
}

func TestGet_PropagatesRegistryError(t *testing.T) {
	f := newFixture(t)

	f.registry.EXPECT().Get(gomock.Any(), "9").Return(model.Room{}, failure.NotFound("room not found"))

	_, err := f.svc.Get(context.Background(), "9")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestGetCategories_CacheHit(t *testing.T) {
	f := newFixture(t)

	cached := []dto.CategoryResponse{{ID: "1", Name: "Deluxe", Active: true}}
	f.cache.EXPECT().Get(gomock.Any(), "room:category:gets:active=true", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*(value.(*[]dto.CategoryResponse)) = cached

			return nil
		})

	res, err := f.svc.GetCategories(context.Background(), true)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(cached, res))
	assert.Zero(t, f.srv.Count(http.MethodGet, "/api/room-categories"))
}

func TestGetCategories_ActiveOnlyHidesDeactivated(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
	f.srv.Router.Get("/api/room-categories", upstreamtest.Reply(http.StatusOK, []map[string]any{
		{"id": 1, "name": "Deluxe", "active": true, "amenities": []string{"WiFi", "wifi", "TV"}},
		{"id": 2, "name": "Retired", "active": false},
	}))

	res, err := f.svc.GetCategories(context.Background(), true)
	require.NoError(t, err)

	want := []dto.CategoryResponse{{ID: "1", Name: "Deluxe", Active: true, Amenities: []string{"WiFi", "TV"}, Images: []string{}}}
	assert.Empty(t, cmp.Diff(want, res))
}

func TestGetCategory_NotFound(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "room:category:get:7", gomock.Any()).Return(errors.New("redis: nil"))
	f.srv.Router.Get("/api/room-categories/{id}", upstreamtest.Reply(http.StatusNotFound, map[string]string{"error": "missing"}))

	_, err := f.svc.GetCategory(context.Background(), "7")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCreateCategory_SendsDedupedAmenities(t *testing.T) {
	f := newFixture(t)

	f.srv.Router.Post("/api/room-categories", upstreamtest.Reply(http.StatusCreated, map[string]any{"id": 5, "name": "Suite", "active": true}))

	res, err := f.svc.CreateCategory(context.Background(), dto.CategoryRequest{
		Name:         "Suite",
		Amenities:    []string{"Jacuzzi", "jacuzzi"},
		MaxOccupancy: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "5", res.ID)

	calls := f.srv.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, string(calls[0].Body), `"amenities":["Jacuzzi"]`)
	assert.Contains(t, string(calls[0].Body), `"active":true`)
}

func TestDeleteCategory_UpstreamConflict(t *testing.T) {
	f := newFixture(t)

	f.srv.Router.Delete("/api/room-categories/{id}", upstreamtest.Reply(http.StatusConflict, map[string]string{"error": "rooms still assigned"}))

	err := f.svc.DeleteCategory(context.Background(), "3")
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}
