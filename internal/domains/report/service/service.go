package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/s3"
	bookingRepo "lodge/internal/domains/booking/repository"
	dashboardService "lodge/internal/domains/dashboard/service"
	"lodge/internal/domains/report/model/dto"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const directoryDaily = "reports/daily"

type Report interface {
	Daily(ctx context.Context, req dto.DailyReportRequest) (dto.DailyReportResponse, error)
}

type serviceImpl struct {
	ledger   bookingRepo.Ledger
	registry roomRepo.Registry
	storage  s3.S3
	clock    timezone.Clock
	cfg      *config.Config
	otel     otel.Otel
}

func New(ledger bookingRepo.Ledger, registry roomRepo.Registry, storage s3.S3, clock timezone.Clock, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		ledger:   ledger,
		registry: registry,
		storage:  storage,
		clock:    clock,
		cfg:      cfg,
		otel:     otel,
	}
}

// Daily exports the bookings arriving on one day as CSV and uploads it.
func (s *serviceImpl) Daily(ctx context.Context, req dto.DailyReportRequest) (res dto.DailyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Daily")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := s.clock.Now()

	day, err := req.Day(now)
	if err != nil {
		return res, err
	}

	bookings, err := s.ledger.List(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	rooms, err := s.registry.List(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	rows := DayBookings(bookings, day)
	summary := Summary{
		Bookings:      len(rows),
		Revenue:       dashboardService.Revenue(bookings, day),
		OccupancyRate: dashboardService.OccupancyRate(bookings, len(rooms)),
	}

	content, err := WriteCSV(rows, summary, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to render daily report")

		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	dayLabel := day.Format(constant.DayFormat)
	fileName := fmt.Sprintf("bookings-%s-%s.csv", dayLabel, uuid.NewString())

	url, err := s.storage.UploadFileBytes(ctx, directoryDaily, fileName, constant.ContentTypeCSV, content)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to upload daily report")

		return res, fmt.Errorf("failed to upload daily report: %w", err)
	}

	log.Info().Str("url", url).Int("rows", len(rows)).Msg("daily report uploaded")

	return dto.DailyReportResponse{
		URL:           url,
		FileName:      fileName,
		Day:           dayLabel,
		Bookings:      summary.Bookings,
		Revenue:       summary.Revenue,
		OccupancyRate: summary.OccupancyRate,
	}, nil
}
