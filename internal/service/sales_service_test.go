package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridvanpektas1990-bit/amz/internal/cache"
	"github.com/ridvanpektas1990-bit/amz/internal/domain"
)

type fakeFactRepo struct {
	factsByYear map[int][]domain.DemandFact
	pageCalls   int
}

func (f *fakeFactRepo) SaveFacts(ctx context.Context, tenantID string, facts []domain.DemandFact) error {
	return nil
}

func (f *fakeFactRepo) GetFactsPage(ctx context.Context, filter *domain.SalesFilter, page, pageSize int) ([]domain.DemandFact, error) {
	f.pageCalls++
	facts := f.factsByYear[filter.Year]
	start := page * pageSize
	if start >= len(facts) {
		return []domain.DemandFact{}, nil
	}
	end := start + pageSize
	if end > len(facts) {
		end = len(facts)
	}
	return facts[start:end], nil
}

type recordingCache struct {
	stored map[string]*domain.WeeklySeries
}

func newRecordingCache() *recordingCache {
	return &recordingCache{stored: make(map[string]*domain.WeeklySeries)}
}

func cacheKey(filter *domain.SalesFilter) string {
	return filter.TenantID + "|" + filter.SKU + "|" + strconv.Itoa(filter.Year)
}

func (c *recordingCache) GetSeries(ctx context.Context, filter *domain.SalesFilter) (*domain.WeeklySeries, bool, error) {
	series, ok := c.stored[cacheKey(filter)]
	return series, ok, nil
}

func (c *recordingCache) SetSeries(ctx context.Context, filter *domain.SalesFilter, series *domain.WeeklySeries) error {
	c.stored[cacheKey(filter)] = series
	return nil
}

func (c *recordingCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	c.stored = make(map[string]*domain.WeeklySeries)
	return nil
}

func TestWeeklySalesAggregatesIntoWeeks(t *testing.T) {
	repo := &fakeFactRepo{factsByYear: map[int][]domain.DemandFact{
		2025: {
			{Date: "2025-01-06", Quantity: 5, SKU: "SKU-1"},
			{Date: "2025-01-08", Quantity: 3, SKU: "SKU-1"},
		},
	}}
	svc := NewSalesService(repo, cache.NewNoopWeeklySeriesCache())

	series, err := svc.WeeklySales(context.Background(), &domain.SalesFilter{TenantID: "t1", SKU: "SKU-1", Year: 2025})
	require.NoError(t, err)
	require.Len(t, series.Points, 52)

	assert.Equal(t, 8, series.Points[1].Total)
	assert.Equal(t, 2, series.Points[1].ISOWeek)
	for i, point := range series.Points {
		if i == 1 {
			continue
		}
		assert.Zero(t, point.Total)
	}
}

func TestWeeklySalesDrainsAllPages(t *testing.T) {
	facts := make([]domain.DemandFact, 0, 1200)
	for i := 0; i < 1200; i++ {
		facts = append(facts, domain.DemandFact{Date: "2025-03-03", Quantity: 1, SKU: "SKU-1"})
	}
	repo := &fakeFactRepo{factsByYear: map[int][]domain.DemandFact{2025: facts}}
	svc := NewSalesService(repo, cache.NewNoopWeeklySeriesCache())

	series, err := svc.WeeklySales(context.Background(), &domain.SalesFilter{TenantID: "t1", SKU: "SKU-1", Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, 1200, series.Points[9].Total)
	assert.GreaterOrEqual(t, repo.pageCalls, 3)
}

func TestWeeklySalesUsesCache(t *testing.T) {
	repo := &fakeFactRepo{factsByYear: map[int][]domain.DemandFact{
		2025: {{Date: "2025-01-06", Quantity: 5, SKU: "SKU-1"}},
	}}
	c := newRecordingCache()
	svc := NewSalesService(repo, c)
	filter := &domain.SalesFilter{TenantID: "t1", SKU: "SKU-1", Year: 2025}

	_, err := svc.WeeklySales(context.Background(), filter)
	require.NoError(t, err)
	callsAfterFirst := repo.pageCalls

	series, err := svc.WeeklySales(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, repo.pageCalls, "second read should be served from cache")
	assert.Equal(t, 5, series.Points[1].Total)
}
