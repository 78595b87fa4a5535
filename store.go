package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// dealStore is the sqlite-backed realization of the remote collaborators:
// row source, mutation sink, identity source and change-marker source.
type dealStore struct {
	db   *sql.DB
	path string
}

func openDealStore(path string) (*dealStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := migrateDealStore(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &dealStore{db: db, path: path}, nil
}

func migrateDealStore(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA foreign_keys=ON;`,
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
		`CREATE INDEX IF NOT EXISTS idx_line_items_opportunity
			ON line_items(opportunity_id);`,
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			elevated INTEGER NOT NULL DEFAULT 0,
			display_name TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("deal store migration failed: %w", err)
		}
	}
	return nil
}

func (s *dealStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FetchRows returns every line item of an opportunity, in insertion order,
// joined to its product for the display name and stock count.
func (s *dealStore) FetchRows(ctx context.Context, parentID string) ([]remoteRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT li.id, li.unit_price, li.total_price, li.quantity,
		       li.product_id, COALESCE(p.name, ''), p.stock
		FROM line_items li
		LEFT JOIN products p ON p.id = li.product_id
		WHERE li.opportunity_id = ?
		ORDER BY li.rowid ASC`, parentID)
	if err != nil {
		return nil, &remoteError{Op: "fetch line items", Message: err.Error()}
	}
	defer rows.Close()

	var out []remoteRow
	for rows.Next() {
		var (
			row      remoteRow
			quantity sql.NullFloat64
			stock    sql.NullFloat64
		)
		if err := rows.Scan(&row.ID, &row.UnitPrice, &row.TotalPrice, &quantity,
			&row.ProductRef, &row.ProductName, &stock); err != nil {
			return nil, &remoteError{Op: "fetch line items", Message: err.Error()}
		}
		if quantity.Valid {
			v := quantity.Float64
			row.Quantity = &v
		}
		if stock.Valid {
			v := stock.Float64
			row.StockAvailable = &v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &remoteError{Op: "fetch line items", Message: err.Error()}
	}
	return out, nil
}

// DeleteRow removes a line item and bumps its opportunity's revision, which
// is the change marker other viewers poll.
func (s *dealStore) DeleteRow(ctx context.Context, rowID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &remoteError{Op: "delete line item", Message: err.Error()}
	}
	var opportunityID string
	err = tx.QueryRowContext(ctx,
		`SELECT opportunity_id FROM line_items WHERE id = ?`, rowID).Scan(&opportunityID)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		return &remoteError{Op: "delete line item", Message: "line item not found: " + rowID}
	}
	if err != nil {
		_ = tx.Rollback()
		return &remoteError{Op: "delete line item", Message: err.Error()}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE id = ?`, rowID); err != nil {
		_ = tx.Rollback()
		return &remoteError{Op: "delete line item", Message: err.Error()}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE opportunities SET revision = revision + 1 WHERE id = ?`, opportunityID); err != nil {
		_ = tx.Rollback()
		return &remoteError{Op: "delete line item", Message: err.Error()}
	}
	if err := tx.Commit(); err != nil {
		return &remoteError{Op: "delete line item", Message: err.Error()}
	}
	return nil
}

func (s *dealStore) RoleFlag(ctx context.Context) (bool, error) {
	var elevated int
	err := s.db.QueryRowContext(ctx,
		`SELECT elevated FROM session WHERE id = 1`).Scan(&elevated)
	if errors.Is(err, sql.ErrNoRows) {
		return false, &remoteError{Op: "load role flag", Message: "no active session"}
	}
	if err != nil {
		return false, &remoteError{Op: "load role flag", Message: err.Error()}
	}
	return elevated != 0, nil
}

func (s *dealStore) DisplayName(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT display_name FROM session WHERE id = 1`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &remoteError{Op: "load display name", Message: "no active session"}
	}
	if err != nil {
		return "", &remoteError{Op: "load display name", Message: err.Error()}
	}
	return name, nil
}

func (s *dealStore) Marker(ctx context.Context, parentID string) (string, error) {
	var revision int64
	err := s.db.QueryRowContext(ctx,
		`SELECT revision FROM opportunities WHERE id = ?`, parentID).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &remoteError{Op: "load change marker", Message: "opportunity not found: " + parentID}
	}
	if err != nil {
		return "", &remoteError{Op: "load change marker", Message: err.Error()}
	}
	return strconv.FormatInt(revision, 10), nil
}

type productDetail struct {
	ID          string
	Name        string
	Stock       *float64
	Description string
}

func (s *dealStore) ProductDetail(ctx context.Context, ref string) (productDetail, error) {
	var (
		detail productDetail
		stock  sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(NULLIF(name, ''), id), stock, description
		FROM products WHERE id = ?`, ref).Scan(
		&detail.ID, &detail.Name, &stock, &detail.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return productDetail{}, &remoteError{Op: "load product", Message: "product not found: " + ref}
	}
	if err != nil {
		return productDetail{}, &remoteError{Op: "load product", Message: err.Error()}
	}
	if stock.Valid {
		v := stock.Float64
		detail.Stock = &v
	}
	return detail, nil
}

func (s *dealStore) OpportunityName(ctx context.Context, id string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(NULLIF(name, ''), id) FROM opportunities WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// Seeding helpers used by the tests. cmd/seeddb is a standalone binary and
// carries its own copy of this schema.

func (s *dealStore) UpsertOpportunity(id, name string) error {
	_, err := s.db.Exec(`INSERT INTO opportunities (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`, strings.TrimSpace(id), name)
	return err
}

func (s *dealStore) UpsertProduct(id, name string, stock *float64, description string) error {
	var stockValue any
	if stock != nil {
		stockValue = *stock
	}
	_, err := s.db.Exec(`INSERT INTO products (id, name, stock, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			stock = excluded.stock,
			description = excluded.description`,
		strings.TrimSpace(id), name, stockValue, description)
	return err
}

func (s *dealStore) UpsertLineItem(id, opportunityID, productID string, unitPrice float64, quantity *float64) error {
	var quantityValue any
	total := unitPrice * floatOrZero(quantity)
	if quantity != nil {
		quantityValue = *quantity
	}
	_, err := s.db.Exec(`INSERT INTO line_items
		(id, opportunity_id, product_id, unit_price, total_price, quantity)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			opportunity_id = excluded.opportunity_id,
			product_id = excluded.product_id,
			unit_price = excluded.unit_price,
			total_price = excluded.total_price,
			quantity = excluded.quantity`,
		strings.TrimSpace(id), opportunityID, productID, unitPrice, total, quantityValue)
	return err
}

func (s *dealStore) SetSession(elevated bool, displayName string) error {
	value := 0
	if elevated {
		value = 1
	}
	_, err := s.db.Exec(`INSERT INTO session (id, elevated, display_name) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			elevated = excluded.elevated,
			display_name = excluded.display_name`, value, displayName)
	return err
}
