package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"salon/config"
	"salon/infras/otel"
	"salon/infras/s3"
	"salon/internal/domains/booking/model"
	bookingDto "salon/internal/domains/booking/model/dto"
	"salon/internal/domains/booking/repository"
	"salon/internal/domains/report/model/dto"
	statusModel "salon/internal/domains/status/model"
	"salon/internal/pipeline"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	exportPrefix = "bookings"

	cacheSummary = "report:summary"
)

type Report interface {
	Summary(ctx context.Context, state pipeline.FilterState) (dto.SummaryResponse, error)
	Export(ctx context.Context, actor shared.Actor, state pipeline.FilterState) (dto.ExportResponse, error)
	// Evict drops every cached summary. Booking writes and booking events call it.
	Evict(ctx context.Context)
}

type serviceImpl struct {
	repo     repository.Booking
	artists  Artists
	statuses Statuses
	s3       s3.S3
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	artists Artists,
	statuses Statuses,
	s3 s3.S3,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Report {
	return &serviceImpl{
		repo:     repo,
		artists:  artists,
		statuses: statuses,
		s3:       s3,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
	}
}

// summaryKey is keyed on the whole filter state. Relative dates are resolved by the pipeline, so
// entries also expire with the cache TTL.
func summaryKey(state pipeline.FilterState) string {
	raw, _ := json.Marshal(state)

	return shared.BuildCacheKey(cacheSummary, string(raw))
}

type derived struct {
	rows       []model.Booking
	pipeline   *pipeline.Pipeline
	normalizer *statusModel.Normalizer
}

// derive runs every stored booking through the same pipeline the booking list uses, so reports
// always agree with what operators see for the same filters.
func (s *serviceImpl) derive(ctx context.Context, state pipeline.FilterState) (res derived, err error) {
	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for report")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.normalizer, err = s.statuses.Normalizer(ctx)
	if err != nil {
		return res, err
	}

	res.pipeline = pipeline.New(s.artists, res.normalizer)
	res.pipeline.SetBookings(ctx, bookingDto.ToPipelineList(bookings))
	res.pipeline.Apply(state)

	res.rows = joinRows(res.pipeline.Result(), bookings)

	return res, nil
}

func (s *serviceImpl) Summary(ctx context.Context, state pipeline.FilterState) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key := summaryKey(state)
	if s.cache.Get(ctx, key, &res) == nil {
		return res, nil
	}

	d, err := s.derive(ctx, state)
	if err != nil {
		return res, err
	}

	res = summarize(d.rows, d.pipeline.ArtistName, d.normalizer)
	res.Filters = d.pipeline.Filters()

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache report summary")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Evict(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheSummary)
}

// Export writes the filtered bookings to an xlsx workbook and uploads it to object storage.
func (s *serviceImpl) Export(ctx context.Context, actor shared.Actor, state pipeline.FilterState) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer scope.TraceIfError(&err)

	d, err := s.derive(ctx, state)
	if err != nil {
		return res, err
	}

	summary := summarize(d.rows, d.pipeline.ArtistName, d.normalizer)

	data, err := buildWorkbook(d.rows, summary, d.pipeline.ArtistName, d.normalizer)
	if err != nil {
		log.Error().Err(err).Msg("failed to build booking export")

		return res, fmt.Errorf("failed to build booking export: %w", err)
	}

	now := timezone.Now()
	fileName := fmt.Sprintf("%s_%s.xlsx", exportPrefix, now.Format(constant.ExportFormat))

	url, err := s.s3.Upload(ctx, path.Join(s.cfg.External.S3.ReportDirectory, fileName), constant.ContentTypeXLSX, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload booking export")

		return res, fmt.Errorf("failed to upload booking export: %w", err)
	}

	log.Info().Str("url", url).Int("rows", len(d.rows)).Str("actor", actor.UserID).Msg("booking export uploaded")

	return dto.ExportResponse{
		URL:         url,
		FileName:    fileName,
		Rows:        len(d.rows),
		GeneratedAt: now,
	}, nil
}
