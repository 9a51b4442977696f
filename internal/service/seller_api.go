package service

import (
	"context"
	"errors"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/spapi"
)

// ErrNoConnection is returned when a tenant has no stored authorization for
// the requested region.
var ErrNoConnection = errors.New("no seller connection for region")

// SellerAPI is the slice of the SP-API client the services call.
type SellerAPI interface {
	ListFinancialEventsByOrder(ctx context.Context, orderID string) (map[string]any, error)
	GetInventorySnapshot(ctx context.Context, sku string) (domain.InventorySnapshot, error)
}

// SellerAPIFactory builds a client bound to one stored connection.
type SellerAPIFactory func(ctx context.Context, conn *domain.Connection) (SellerAPI, error)

// NewSellerAPIFactory wires the real SP-API client with the application's
// LWA credentials and default marketplace.
func NewSellerAPIFactory(creds spapi.Credentials, marketplace string, opts ...spapi.Option) SellerAPIFactory {
	return func(ctx context.Context, conn *domain.Connection) (SellerAPI, error) {
		return spapi.NewClient(ctx, creds, conn.RefreshToken, conn.Region, marketplace, opts...)
	}
}
