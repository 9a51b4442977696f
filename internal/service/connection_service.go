package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/repository"
	"github.com/ridvanpektas1990-bit/amz/internal/spapi"
)

type ConnectionService struct {
	repo repository.ConnectionRepository
}

func NewConnectionService(repo repository.ConnectionRepository) *ConnectionService {
	return &ConnectionService{repo: repo}
}

// Connect stores (or replaces) a tenant's authorization for a region.
func (s *ConnectionService) Connect(ctx context.Context, conn *domain.Connection) error {
	conn.Region = strings.ToUpper(strings.TrimSpace(conn.Region))
	if _, ok := spapi.EndpointForRegion(conn.Region); !ok {
		return fmt.Errorf("unknown region %q", conn.Region)
	}
	if conn.RefreshToken == "" {
		return fmt.Errorf("refresh token is required")
	}
	if conn.TenantID == "" {
		return fmt.Errorf("tenant id is required")
	}

	if err := s.repo.SaveConnection(ctx, conn); err != nil {
		return fmt.Errorf("failed to store connection: %w", err)
	}
	return nil
}

// List returns the tenant's stored connections. Refresh tokens never leave
// the domain type's JSON encoding.
func (s *ConnectionService) List(ctx context.Context, tenantID string) ([]*domain.Connection, error) {
	return s.repo.GetConnections(ctx, tenantID)
}

// Resolve loads the connection for a tenant and region, mapping absence to
// ErrNoConnection.
func (s *ConnectionService) Resolve(ctx context.Context, tenantID, region string) (*domain.Connection, error) {
	conn, err := s.repo.GetConnection(ctx, tenantID, strings.ToUpper(strings.TrimSpace(region)))
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, ErrNoConnection
	}
	return conn, nil
}
