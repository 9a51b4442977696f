package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ridvanpektas1990-bit/amz/internal/cache"
	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/forecast"
	"github.com/ridvanpektas1990-bit/amz/internal/repository"
)

const factsPageSize = 500

type SalesService struct {
	facts repository.DemandFactRepository
	cache cache.WeeklySeriesCache
}

func NewSalesService(facts repository.DemandFactRepository, c cache.WeeklySeriesCache) *SalesService {
	return &SalesService{facts: facts, cache: c}
}

// WeeklySales returns the 52-slot weekly series for one SKU and ISO year.
// Cache misses fall through to the row store; cache failures only log.
func (s *SalesService) WeeklySales(ctx context.Context, filter *domain.SalesFilter) (*domain.WeeklySeries, error) {
	if cached, ok, err := s.cache.GetSeries(ctx, filter); err != nil {
		log.Warn().Err(err).Msg("weekly series cache read failed")
	} else if ok {
		return cached, nil
	}

	series, err := s.seriesForYear(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &domain.WeeklySeries{Points: series.Points()}
	if err := s.cache.SetSeries(ctx, filter, out); err != nil {
		log.Warn().Err(err).Msg("weekly series cache write failed")
	}
	return out, nil
}

// seriesForYear drains the fact pages for one ISO year into an aggregator.
// Pages are fetched sequentially; a short page ends the scan.
func (s *SalesService) seriesForYear(ctx context.Context, filter *domain.SalesFilter) (*forecast.Series, error) {
	series := forecast.NewSeries(filter.Year)

	for page := 0; ; page++ {
		facts, err := s.facts.GetFactsPage(ctx, filter, page, factsPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to page demand facts: %w", err)
		}

		series.Add(facts)

		if len(facts) < factsPageSize {
			break
		}
	}

	return series, nil
}
