package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/upstream"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategory    = "room:category:get"
	cacheGetAllCategory = "room:category:gets"

	pathCategories     = "/api/room-categories"
	pathCategory       = "/api/room-categories/%s"
	pathCategoryImages = "/api/room-categories/%s/images"

	formFieldImages = "files"
)

type Room interface {
	GetAll(ctx context.Context, params gDto.QueryParams, status string) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)

	GetCategories(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req dto.CategoryRequest) (dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req dto.CategoryRequest) (dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
	UploadCategoryImages(ctx context.Context, id string, req dto.UploadImagesRequest) (dto.CategoryResponse, error)
}

type serviceImpl struct {
	registry repository.Registry
	client   upstream.Client
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(registry repository.Registry, client upstream.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		registry: registry,
		client:   client,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, status string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	var rooms []model.Room

	if status != constant.Empty {
		parsed, err := dto.UpdateStatusRequest{Status: status}.ToStatus()
		if err != nil {
			return res, err
		}

		rooms, err = s.registry.ListByStatus(ctx, parsed)
		if err != nil {
			return res, fmt.Errorf("failed to get rooms by status: %w", err)
		}
	} else {
		rooms, err = s.registry.List(ctx)
		if err != nil {
			return res, fmt.Errorf("failed to get rooms: %w", err)
		}
	}

	res.FromModels(rooms, params)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.registry.Get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetCategories(ctx context.Context, activeOnly bool) (res []dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetCategories")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllCategory, "active="+strconv.FormatBool(activeOnly))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room categories")

		return res, nil
	}

	var categories []model.Category

	err = s.client.Do(ctx, http.MethodGet, pathCategories, nil, nil, &categories)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room categories")

		return nil, upstream.ToFailure(err, "failed to fetch room categories") //nolint:wrapcheck
	}

	if activeOnly {
		active := categories[:0]

		for _, c := range categories {
			if c.Active {
				active = append(active, c)
			}
		}

		categories = active
	}

	res = dto.FromCategories(categories)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room categories to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetCategory(ctx context.Context, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCategory, id)

	return cache.Remember(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (dto.CategoryResponse, error) {
		var category model.Category

		if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf(pathCategory, url.PathEscape(id)), nil, nil, &category); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to get room category")

			return dto.CategoryResponse{}, upstream.ToFailure(err, model.CategoryEntityName+" "+id) //nolint:wrapcheck
		}

		var res dto.CategoryResponse
		res.FromModel(category)

		return res, nil
	})
}

func (s *serviceImpl) CreateCategory(ctx context.Context, req dto.CategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.CreateCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	var created model.Category

	err = s.client.Do(ctx, http.MethodPost, pathCategories, nil, req.ToModel(), &created)
	if err != nil {
		log.Error().Err(err).Msg("failed to create room category")

		return res, upstream.ToFailure(err, "failed to create room category") //nolint:wrapcheck
	}

	res.FromModel(created)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) UpdateCategory(ctx context.Context, id string, req dto.CategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UpdateCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	var updated model.Category

	err = s.client.Do(ctx, http.MethodPut, fmt.Sprintf(pathCategory, url.PathEscape(id)), nil, req.ToModel(), &updated)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update room category")

		return res, upstream.ToFailure(err, "failed to update room category") //nolint:wrapcheck
	}

	res.FromModel(updated)

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.DeleteCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.client.Do(ctx, http.MethodDelete, fmt.Sprintf(pathCategory, url.PathEscape(id)), nil, nil, nil)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete room category")

		return upstream.ToFailure(err, "failed to delete room category") //nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) UploadCategoryImages(ctx context.Context, id string, req dto.UploadImagesRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UploadCategoryImages")
	defer scope.End()
	defer scope.TraceIfError(err)

	files := make([]upstream.File, len(req.Images))
	for i, image := range req.Images {
		files[i] = upstream.File{
			Field:       formFieldImages,
			Name:        image.Header.Filename,
			ContentType: image.Header.Header.Get(constant.RequestHeaderContentType),
			Content:     image.File,
		}
	}

	var updated model.Category

	err = s.client.Upload(ctx, fmt.Sprintf(pathCategoryImages, url.PathEscape(id)), files, &updated)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to upload room category images")

		return res, upstream.ToFailure(err, "failed to upload room category images") //nolint:wrapcheck
	}

	res.FromModel(updated)

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCategory, id)); err != nil {
				log.Error().Err(err).Str("id", id).Msg("failed to delete room category cache")
			}
		}
	}()
}
