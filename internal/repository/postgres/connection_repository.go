package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
)

type connectionRepository struct {
	db *DB
}

func NewConnectionRepository(db *DB) *connectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) SaveConnection(ctx context.Context, conn *domain.Connection) error {
	query := `
		INSERT INTO connections (tenant_id, region, seller_id, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (tenant_id, region)
		DO UPDATE SET
			seller_id = EXCLUDED.seller_id,
			refresh_token = EXCLUDED.refresh_token,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, conn.TenantID, conn.Region, conn.SellerID, conn.RefreshToken); err != nil {
		return fmt.Errorf("failed to save connection: %w", err)
	}
	return nil
}

func (r *connectionRepository) GetConnection(ctx context.Context, tenantID, region string) (*domain.Connection, error) {
	query := `
		SELECT tenant_id, region, seller_id, refresh_token, created_at, updated_at
		FROM connections
		WHERE tenant_id = $1 AND region = $2
	`

	var conn domain.Connection
	err := r.db.GetContext(ctx, &conn, query, tenantID, region)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	return &conn, nil
}

func (r *connectionRepository) GetConnections(ctx context.Context, tenantID string) ([]*domain.Connection, error) {
	query := `
		SELECT tenant_id, region, seller_id, refresh_token, created_at, updated_at
		FROM connections
		WHERE tenant_id = $1
		ORDER BY region
	`

	conns := []*domain.Connection{}
	if err := r.db.SelectContext(ctx, &conns, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return conns, nil
}
