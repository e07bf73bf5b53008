package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

type utilizationReaderStub struct {
	rows  []models.CrewUtilization
	calls int
}

func (s *utilizationReaderStub) UtilizationSummary(ctx context.Context, at time.Time) ([]models.CrewUtilization, error) {
	s.calls++
	return s.rows, nil
}

type cacheStub struct {
	store map[string][]byte
	sets  int
}

func newCacheStub() *cacheStub {
	return &cacheStub{store: map[string][]byte{}}
}

func (s *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = raw
	s.sets++
	return nil
}

func TestUtilizationSummaryCachesResult(t *testing.T) {
	reader := &utilizationReaderStub{rows: []models.CrewUtilization{
		{CrewID: "crew-1", EmployeeID: "LCC001", FullName: "Lead One", Role: models.RoleLead, FlightsFlown: 4, HoursLast7: 12.5, HoursLast28: 40},
	}}
	cache := newCacheStub()
	svc := NewUtilizationService(reader, cache, nil, nil, UtilizationConfig{CacheTTL: time.Minute})

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, 1, cache.sets)

	// Second call is served from cache.
	second, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, reader.calls)
}

func TestUtilizationSummaryWorksWithoutCache(t *testing.T) {
	reader := &utilizationReaderStub{}
	svc := NewUtilizationService(reader, nil, nil, nil, UtilizationConfig{})

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reader.calls)
}
