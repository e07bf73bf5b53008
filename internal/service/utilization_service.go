package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

type utilizationReader interface {
	UtilizationSummary(ctx context.Context, at time.Time) ([]models.CrewUtilization, error)
}

type utilizationCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// UtilizationConfig tunes the utilization view cache.
type UtilizationConfig struct {
	CacheTTL time.Duration
}

// UtilizationService aggregates recent duty hours per crew member. The
// summary is expensive and changes only on builds and overrides, so it is
// served cache-aside with a short TTL.
type UtilizationService struct {
	dutyLog utilizationReader
	cache   utilizationCache
	metrics *MetricsService
	logger  *zap.Logger
	cfg     UtilizationConfig

	now func() time.Time
}

// NewUtilizationService constructs a UtilizationService.
func NewUtilizationService(dutyLog utilizationReader, cache utilizationCache, metrics *MetricsService, logger *zap.Logger, cfg UtilizationConfig) *UtilizationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &UtilizationService{
		dutyLog: dutyLog,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Summary returns per-crew utilization relative to now. Cached per day.
func (s *UtilizationService) Summary(ctx context.Context) ([]models.CrewUtilization, error) {
	at := s.now().UTC()
	key := "utilization:" + at.Format("2006-01-02")

	if s.cache != nil {
		started := time.Now()
		var cached []models.CrewUtilization
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true, time.Since(started))
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false, time.Since(started))
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("utilization cache read failed", zap.Error(err))
		}
	}

	rows, err := s.dutyLog.UtilizationSummary(ctx, at)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute utilization")
	}

	if s.cache != nil {
		started := time.Now()
		if err := s.cache.Set(ctx, key, rows, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("utilization cache write failed", zap.Error(err))
		}
		s.metrics.ObserveCacheWrite(time.Since(started))
	}

	return rows, nil
}
