// Command seeddb creates a demo deal database so the TUI has something to
// show: one opportunity, a small product catalog and a handful of line
// items, including one that oversells its stock.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type seedProduct struct {
	id          string
	name        string
	stock       *float64
	description string
}

type seedLine struct {
	id        string
	productID string
	unitPrice float64
	quantity  *float64
}

func main() {
	var dbPath string
	var opportunityID string
	var opportunityName string
	var elevated bool
	var displayName string
	flag.StringVar(&dbPath, "db", "", "database file to create or update (required)")
	flag.StringVar(&opportunityID, "opportunity", "OPP-1001", "opportunity id to seed")
	flag.StringVar(&opportunityName, "name", "Acme renewal", "opportunity name")
	flag.BoolVar(&elevated, "elevated", false, "seed the session as an elevated viewer")
	flag.StringVar(&displayName, "viewer", "Demo User", "session display name")
	flag.Parse()

	if dbPath == "" {
		exitWithError(errors.New("missing --db path"))
	}
	if err := seed(dbPath, opportunityID, opportunityName, elevated, displayName); err != nil {
		exitWithError(err)
	}
	fmt.Printf("seeded %s with opportunity %s\n", dbPath, opportunityID)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "seeddb: %v\n", err)
	os.Exit(1)
}

func ptr(v float64) *float64 { return &v }

func seed(dbPath, opportunityID, opportunityName string, elevated bool, displayName string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	// Keep in sync with migrateDealStore in the root package.
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS opportunities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			revision INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			stock REAL,
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS line_items (
			id TEXT PRIMARY KEY,
			opportunity_id TEXT NOT NULL REFERENCES opportunities(id),
			product_id TEXT NOT NULL REFERENCES products(id),
			unit_price REAL NOT NULL DEFAULT 0,
			total_price REAL NOT NULL DEFAULT 0,
			quantity REAL
		);`,
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			elevated INTEGER NOT NULL DEFAULT 0,
			display_name TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO opportunities (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		opportunityID, opportunityName); err != nil {
		return fmt.Errorf("seed opportunity: %w", err)
	}

	products := []seedProduct{
		{id: "PROD-100", name: "Field Service License", stock: ptr(250), description: "Annual per-seat field service subscription."},
		{id: "PROD-200", name: "Analytics Add-on", stock: ptr(40), description: "Dashboards and scheduled report exports."},
		{id: "PROD-300", name: "Onboarding Package", stock: ptr(2), description: "Fixed-scope onboarding, delivered remotely."},
		{id: "PROD-400", name: "Legacy Connector", description: "Connector for the deprecated v1 API. Stock untracked."},
	}
	for _, p := range products {
		var stock any
		if p.stock != nil {
			stock = *p.stock
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO products (id, name, stock, description)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				stock = excluded.stock,
				description = excluded.description`,
			p.id, p.name, stock, p.description); err != nil {
			return fmt.Errorf("seed product %s: %w", p.id, err)
		}
	}

	lines := []seedLine{
		{id: "LINE-1", productID: "PROD-100", unitPrice: 120, quantity: ptr(40)},
		{id: "LINE-2", productID: "PROD-200", unitPrice: 350, quantity: ptr(10)},
		{id: "LINE-3", productID: "PROD-300", unitPrice: 4800, quantity: ptr(5)},
		{id: "LINE-4", productID: "PROD-400", unitPrice: 90, quantity: nil},
	}
	for _, l := range lines {
		var quantity any
		total := 0.0
		if l.quantity != nil {
			quantity = *l.quantity
			total = l.unitPrice * *l.quantity
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO line_items
			(id, opportunity_id, product_id, unit_price, total_price, quantity)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				opportunity_id = excluded.opportunity_id,
				product_id = excluded.product_id,
				unit_price = excluded.unit_price,
				total_price = excluded.total_price,
				quantity = excluded.quantity`,
			l.id, opportunityID, l.productID, l.unitPrice, total, quantity); err != nil {
			return fmt.Errorf("seed line %s: %w", l.id, err)
		}
	}

	elevatedValue := 0
	if elevated {
		elevatedValue = 1
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO session (id, elevated, display_name) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			elevated = excluded.elevated,
			display_name = excluded.display_name`,
		elevatedValue, displayName); err != nil {
		return fmt.Errorf("seed session: %w", err)
	}
	return nil
}
