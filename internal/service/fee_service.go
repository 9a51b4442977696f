package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/finance"
)

type FeeService struct {
	conns *ConnectionService
	api   SellerAPIFactory
}

func NewFeeService(conns *ConnectionService, api SellerAPIFactory) *FeeService {
	return &FeeService{conns: conns, api: api}
}

// OrderFees pulls the order's financial events and folds every fee and fee
// adjustment into one merged report.
func (s *FeeService) OrderFees(ctx context.Context, tenantID, region, orderID string) (*domain.FeeReport, error) {
	conn, err := s.conns.Resolve(ctx, tenantID, region)
	if err != nil {
		return nil, err
	}

	client, err := s.api(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to build seller client: %w", err)
	}

	events, err := client.ListFinancialEventsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch financial events: %w", err)
	}

	report := finance.BuildOrderFeeReport(events)
	log.Debug().
		Str("order_id", orderID).
		Int("fee_rows", len(report.Items)).
		Msg("built order fee report")

	return &report, nil
}
