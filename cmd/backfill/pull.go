package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ridvanpektas1990-bit/amz/internal/config"
	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/finance"
	"github.com/ridvanpektas1990-bit/amz/internal/spapi"
	"github.com/ridvanpektas1990-bit/amz/internal/storage"
)

// monthWindow converts YYYY-MM into an order pull window. The upper bound is
// clamped to the end of yesterday UTC; a month entirely in the future is an
// error.
func monthWindow(month string, now time.Time) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}

	after := start.UTC()
	before := spapi.ClampBefore(after.AddDate(0, 1, 0), now)
	if !before.After(after) {
		return time.Time{}, time.Time{}, fmt.Errorf("month %s is entirely in the future", month)
	}
	return after, before, nil
}

// sellerClient builds an SP-API client for the tenant's stored connection.
// SPAPI_REFRESH_TOKEN overrides the stored token when set.
func sellerClient(c *cli.Context, db *sql.DB) (*spapi.Client, error) {
	cfg := config.Load()
	if err := cfg.RequireSPAPI(); err != nil {
		return nil, err
	}

	region := c.String("region")
	token := os.Getenv("SPAPI_REFRESH_TOKEN")
	if token == "" {
		err := db.QueryRowContext(c.Context,
			`SELECT refresh_token FROM connections WHERE tenant_id = $1 AND region = $2`,
			c.String("tenant"), region).Scan(&token)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no connection stored for tenant %s region %s", c.String("tenant"), region)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load connection: %w", err)
		}
	}

	creds := spapi.Credentials{
		ClientID:     cfg.SPAPI.ClientID,
		ClientSecret: cfg.SPAPI.ClientSecret,
	}
	return spapi.NewClient(c.Context, creds, token, region, cfg.SPAPI.Marketplace,
		spapi.WithPace(cfg.SPAPI.Pace()),
		spapi.WithMaxTokenPages(cfg.SPAPI.MaxTokenPages),
	)
}

func runSalesBackfill(c *cli.Context) error {
	db := c.Context.Value(dbKey).(*sql.DB)

	after, before, err := monthWindow(c.String("month"), time.Now())
	if err != nil {
		return err
	}

	client, err := sellerClient(c, db)
	if err != nil {
		return err
	}

	orders, err := client.ListOrders(c.Context, after, before)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	log.Printf("pulled %d orders for %s", len(orders), c.String("month"))

	type factKey struct {
		sku  string
		date string
	}
	totals := make(map[factKey]int)

	for _, order := range orders {
		if len(order.PurchaseDate) < 10 {
			continue
		}
		date := order.PurchaseDate[:10]

		items, err := client.ListOrderItems(c.Context, order.AmazonOrderID)
		if err != nil {
			return fmt.Errorf("failed to list items for order %s: %w", order.AmazonOrderID, err)
		}
		for _, item := range items {
			if item.SellerSKU == "" {
				continue
			}
			totals[factKey{sku: item.SellerSKU, date: date}] += item.QuantityOrdered
		}
	}

	facts := make([]domain.DemandFact, 0, len(totals))
	for key, qty := range totals {
		facts = append(facts, domain.DemandFact{SKU: key.sku, Date: key.date, Quantity: qty})
	}
	sort.Slice(facts, func(i, j int) bool {
		if facts[i].Date != facts[j].Date {
			return facts[i].Date < facts[j].Date
		}
		return facts[i].SKU < facts[j].SKU
	})

	if err := upsertFacts(c, db, c.String("tenant"), facts); err != nil {
		return err
	}

	log.Printf("stored %d demand facts", len(facts))
	return nil
}

func upsertFacts(c *cli.Context, db *sql.DB, tenantID string, facts []domain.DemandFact) error {
	if len(facts) == 0 {
		return nil
	}

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(c.Context, `
		INSERT INTO demand_facts (tenant_id, sku, fact_date, quantity, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (tenant_id, sku, fact_date)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, fact := range facts {
		if _, err := stmt.ExecContext(c.Context, tenantID, fact.SKU, fact.Date, fact.Quantity); err != nil {
			return fmt.Errorf("failed to insert fact %s/%s: %w", fact.SKU, fact.Date, err)
		}
	}

	return tx.Commit()
}

func runFeeBackfill(c *cli.Context) error {
	db := c.Context.Value(dbKey).(*sql.DB)

	after, before, err := monthWindow(c.String("month"), time.Now())
	if err != nil {
		return err
	}

	client, err := sellerClient(c, db)
	if err != nil {
		return err
	}

	orders, err := client.ListOrders(c.Context, after, before)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	log.Printf("pulled %d orders for %s", len(orders), c.String("month"))

	outDir := c.String("out-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(outDir, fmt.Sprintf("fees_%s.csv", c.String("month")))

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create audit file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"order_id", "scope_key", "level", "order_item_id", "seller_sku", "fee_type", "amount", "currency"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write audit header: %w", err)
	}

	rows := 0
	for _, order := range orders {
		events, err := client.ListFinancialEventsByOrder(c.Context, order.AmazonOrderID)
		if err != nil {
			return fmt.Errorf("failed to fetch events for order %s: %w", order.AmazonOrderID, err)
		}

		report := finance.BuildOrderFeeReport(events)
		for _, item := range report.Items {
			for _, fee := range item.Fees {
				record := []string{
					order.AmazonOrderID,
					item.ScopeKey,
					string(item.Level),
					item.OrderItemID,
					item.SellerSKU,
					fee.FeeType,
					fee.Amount.String(),
					fee.CurrencyCode,
				}
				if err := writer.Write(record); err != nil {
					return fmt.Errorf("failed to write audit row: %w", err)
				}
				rows++
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush audit file: %w", err)
	}
	log.Printf("wrote %d fee rows to %s", rows, outPath)

	if !c.Bool("upload") {
		return nil
	}

	store, err := storage.NewMinioClient(config.Load().Storage)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		return fmt.Errorf("failed to read audit file: %w", err)
	}
	key := fmt.Sprintf("audits/fees/%s.csv", c.String("month"))
	if err := store.UploadObject(c.Context, key, data, "text/csv"); err != nil {
		return err
	}
	log.Printf("uploaded audit to %s", key)

	return nil
}
