package main

import (
	"database/sql"
	"flag"
	"fmt"
	"math/rand"
	"time"

	_ "github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/royaltyx/royaltyx-api/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	fileSuffixLength = 8
	characters       = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS products_project_id_idx ON products (project_id)`,
	`CREATE TABLE IF NOT EXISTS import_files (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS product_sales (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		file_id BIGINT REFERENCES import_files (id) ON DELETE SET NULL,
		type VARCHAR(16) NOT NULL CHECK (type IN ('purchase', 'rental')),
		unit_price NUMERIC(18, 6),
		unit_price_currency VARCHAR(3),
		quantity INTEGER NOT NULL DEFAULT 1,
		is_refund BOOLEAN NOT NULL DEFAULT FALSE,
		royalty_amount NUMERIC(18, 6),
		royalty_currency VARCHAR(3),
		period_start DATE NOT NULL,
		period_end DATE NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS product_sales_product_period_idx ON product_sales (product_id, period_start)`,
	`CREATE TABLE IF NOT EXISTS product_impressions (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		file_id BIGINT REFERENCES import_files (id) ON DELETE SET NULL,
		impressions BIGINT NOT NULL DEFAULT 0,
		ecpm NUMERIC(18, 6),
		period_start DATE NOT NULL,
		period_end DATE NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS product_impressions_product_period_idx ON product_impressions (product_id, period_start)`,
}

var demoTitles = []string{
	"Channel Highlights (YouTube)",
	"Speedrun Archive (Twitch)",
	"Short Film Collection (Vimeo)",
	"Behind the Scenes (TikTok)",
}

func createSchema(db *sql.DB) error {
	for _, statement := range schema {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("running %q: %w", firstLine(statement), err)
		}
	}
	return nil
}

// seedDemo inserts one project with a few products and a year of monthly
// sales and impressions, all owned by a single import file.
func seedDemo(tx *sql.Tx, projectID int64, months int) error {
	suffix, err := gonanoid.Generate(characters, fileSuffixLength)
	if err != nil {
		return err
	}

	var fileID int64
	err = tx.QueryRow(
		`INSERT INTO import_files (project_id, name) VALUES ($1, $2) RETURNING id`,
		projectID, fmt.Sprintf("demo-import-%s.csv", suffix),
	).Scan(&fileID)
	if err != nil {
		return fmt.Errorf("inserting import file: %w", err)
	}

	saleStmt, err := tx.Prepare(`INSERT INTO product_sales
		(product_id, file_id, type, unit_price, unit_price_currency, quantity, is_refund, royalty_amount, royalty_currency, period_start, period_end)
		VALUES ($1, $2, $3, $4, 'USD', $5, $6, $7, 'USD', $8, $9)`)
	if err != nil {
		return err
	}
	defer saleStmt.Close()

	impressionStmt, err := tx.Prepare(`INSERT INTO product_impressions
		(product_id, file_id, impressions, ecpm, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return err
	}
	defer impressionStmt.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().UTC()
	firstMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	for _, title := range demoTitles {
		var productID int64
		err := tx.QueryRow(
			`INSERT INTO products (project_id, title) VALUES ($1, $2) RETURNING id`,
			projectID, title,
		).Scan(&productID)
		if err != nil {
			return fmt.Errorf("inserting product %s: %w", title, err)
		}

		for m := 0; m < months; m++ {
			start := firstMonth.AddDate(0, m, 0)
			end := start.AddDate(0, 1, -1)

			unitPrice := decimal.NewFromFloat(4.99 + float64(rng.Intn(10)))
			royalty := unitPrice.Mul(decimal.NewFromFloat(0.7)).Round(6)
			saleType := "purchase"
			if rng.Intn(3) == 0 {
				saleType = "rental"
			}
			isRefund := rng.Intn(20) == 0

			if _, err := saleStmt.Exec(productID, fileID, saleType, unitPrice.String(), 1+rng.Intn(5), isRefund, royalty.String(), start, end); err != nil {
				return fmt.Errorf("inserting sale for %s: %w", title, err)
			}

			ecpm := decimal.NewFromFloat(1.5 + rng.Float64()*6).Round(4)
			if _, err := impressionStmt.Exec(productID, fileID, 1000+rng.Intn(250000), ecpm.String(), start, end); err != nil {
				return fmt.Errorf("inserting impressions for %s: %w", title, err)
			}
		}

		logrus.WithField("product_id", productID).Infof("seeded %d months for %s", months, title)
	}

	return nil
}

func firstLine(statement string) string {
	for i, r := range statement {
		if r == '\n' || r == '(' {
			return statement[:i]
		}
	}
	return statement
}

func main() {
	seed := flag.Bool("seed", false, "insert demo products, sales and impressions")
	projectID := flag.Int64("project", 1, "project id used for demo data")
	months := flag.Int("months", 12, "months of demo data per product")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to reach database")
	}

	startTime := time.Now()
	if err := createSchema(db); err != nil {
		logrus.WithError(err).Fatal("schema creation failed")
	}
	logrus.Infof("schema ready in %v", time.Since(startTime))

	if !*seed {
		return
	}

	tx, err := db.Begin()
	if err != nil {
		logrus.WithError(err).Fatal("failed to begin transaction")
	}

	if err := seedDemo(tx, *projectID, *months); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Error("rollback failed")
		}
		logrus.WithError(err).Fatal("seeding failed, transaction rolled back")
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Fatal("failed to commit seed data")
	}

	logrus.Infof("demo data for project %d loaded in %v", *projectID, time.Since(startTime))
}
