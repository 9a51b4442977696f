package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newMonthFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "month",
		Usage:    "Month to pull, YYYY-MM",
		Required: true,
	}
}

func newTenantFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "tenant",
		Usage:   "Tenant whose connection and facts to use",
		Value:   "default",
		EnvVars: []string{"TENANT_ID"},
	}
}

func newRegionFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "region",
		Usage:   "SP-API region (NA, EU, FE)",
		Value:   "EU",
		EnvVars: []string{"SPAPI_REGION"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "backfill",
		Usage: "Pull historical seller data from the Selling Partner API",
		Commands: []*cli.Command{
			{
				Name:  "sales",
				Usage: "Pull one month of orders into the demand-fact store",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newMonthFlag(),
					newTenantFlag(),
					newRegionFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: runSalesBackfill,
			},
			{
				Name:  "fees",
				Usage: "Pull one month of fee events into an audit CSV",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newMonthFlag(),
					newTenantFlag(),
					newRegionFlag(),
					&cli.StringFlag{
						Name:  "out-dir",
						Usage: "Directory for the audit CSV",
						Value: "./data/audits",
					},
					&cli.BoolFlag{
						Name:  "upload",
						Usage: "Upload the audit CSV to object storage",
						Value: false,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runFeeBackfill,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
