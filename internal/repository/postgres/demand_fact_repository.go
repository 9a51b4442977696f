package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/isoweek"
)

type demandFactRepository struct {
	db *DB
}

func NewDemandFactRepository(db *DB) *demandFactRepository {
	return &demandFactRepository{db: db}
}

// SaveFacts upserts day-level quantities. Re-running a pull for the same
// window overwrites rather than double-counts.
func (r *demandFactRepository) SaveFacts(ctx context.Context, tenantID string, facts []domain.DemandFact) error {
	if len(facts) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO demand_facts (tenant_id, sku, fact_date, quantity, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (tenant_id, sku, fact_date)
			DO UPDATE SET
				quantity = EXCLUDED.quantity,
				updated_at = NOW()
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, fact := range facts {
			if _, err := stmt.ExecContext(ctx, tenantID, fact.SKU, fact.Date, fact.Quantity); err != nil {
				return fmt.Errorf("failed to insert demand fact: %w", err)
			}
		}

		return nil
	})
}

// GetFactsPage returns one page of facts whose dates fall inside the ISO year
// of the filter. A page shorter than pageSize is the last one.
func (r *demandFactRepository) GetFactsPage(ctx context.Context, filter *domain.SalesFilter, page, pageSize int) ([]domain.DemandFact, error) {
	start, _ := isoweek.Bounds(filter.Year, 1)
	_, end := isoweek.Bounds(filter.Year, isoweek.WeeksPerYear)

	query := `
		SELECT to_char(fact_date, 'YYYY-MM-DD') AS fact_date, quantity, sku
		FROM demand_facts
		WHERE tenant_id = $1
		  AND sku = $2
		  AND fact_date >= $3
		  AND fact_date <= $4
		ORDER BY fact_date, sku
		LIMIT $5 OFFSET $6
	`

	facts := []domain.DemandFact{}
	err := r.db.SelectContext(ctx, &facts, query,
		filter.TenantID, filter.SKU,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		pageSize, page*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get demand facts: %w", err)
	}

	return facts, nil
}
