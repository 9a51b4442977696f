package repository

import (
	"context"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
)

// DemandFactRepository stores day-level sold quantities. Reads are paged;
// callers fetch sequential pages until a short page signals the end.
type DemandFactRepository interface {
	SaveFacts(ctx context.Context, tenantID string, facts []domain.DemandFact) error
	GetFactsPage(ctx context.Context, filter *domain.SalesFilter, page, pageSize int) ([]domain.DemandFact, error)
}

// ConnectionRepository stores SP-API authorizations keyed by tenant and region.
type ConnectionRepository interface {
	SaveConnection(ctx context.Context, conn *domain.Connection) error
	GetConnection(ctx context.Context, tenantID, region string) (*domain.Connection, error)
	GetConnections(ctx context.Context, tenantID string) ([]*domain.Connection, error)
}
