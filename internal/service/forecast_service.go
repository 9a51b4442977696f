package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/forecast"
	"github.com/ridvanpektas1990-bit/amz/internal/isoweek"
)

// ErrMissingSKU is returned when a forecast is requested without a SKU.
var ErrMissingSKU = errors.New("sku is required")

type ForecastService struct {
	sales *SalesService
	conns *ConnectionService
	api   SellerAPIFactory
	now   func() time.Time
}

func NewForecastService(sales *SalesService, conns *ConnectionService, api SellerAPIFactory) *ForecastService {
	return &ForecastService{
		sales: sales,
		conns: conns,
		api:   api,
		now:   time.Now,
	}
}

// OOSForecast projects weekly demand against the live on-hand count and
// returns the depletion and reorder plan. The two demand years and the
// inventory snapshot are fetched concurrently.
func (s *ForecastService) OOSForecast(ctx context.Context, tenantID, region, sku string) (*domain.OOSForecast, error) {
	if sku == "" {
		return nil, ErrMissingSKU
	}

	conn, err := s.conns.Resolve(ctx, tenantID, region)
	if err != nil {
		return nil, err
	}
	client, err := s.api(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to build seller client: %w", err)
	}

	curYear, curWeek := isoweek.WeekOf(s.now())

	var (
		prior, current *forecast.Series
		snap           domain.InventorySnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prior, err = s.sales.seriesForYear(gctx, &domain.SalesFilter{TenantID: tenantID, SKU: sku, Year: curYear - 1})
		return err
	})
	g.Go(func() error {
		var err error
		current, err = s.sales.seriesForYear(gctx, &domain.SalesFilter{TenantID: tenantID, SKU: sku, Year: curYear})
		return err
	})
	g.Go(func() error {
		var err error
		snap, err = client.GetInventorySnapshot(gctx, sku)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &domain.OOSForecast{
		SKU:     sku,
		ISOYear: curYear,
		ISOWeek: curWeek,
		OnHand:  snap.OnHand,
	}

	if snap.OnHand != nil {
		plan := forecast.Project(curYear, curWeek, *snap.OnHand, prior, current)
		result.Plan = &plan
	}

	return result, nil
}
