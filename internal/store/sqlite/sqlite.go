// Package sqlite provides a SQLite-backed implementation of the store.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/eamarbiyout/storebot/internal/models"
	"github.com/eamarbiyout/storebot/internal/store"
)

// Ensure SQLiteStore implements store.Store
var _ store.Store = (*SQLiteStore)(nil)

// SQLiteStore implements store.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer: the bot processes one update per conversation at a
	// time, but different conversations land concurrently.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetState returns the stored state blob, or nil when none exists.
func (s *SQLiteStore) GetState(ctx context.Context, conversationID int64, ns string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM conversation_state WHERE chat_id = ? AND ns = ?",
		conversationID, ns,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	return data, nil
}

// PutState stores the state blob, replacing any previous value.
func (s *SQLiteStore) PutState(ctx context.Context, conversationID int64, ns string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversation_state (chat_id, ns, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(chat_id, ns) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		conversationID, ns, data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to put state: %w", err)
	}
	return nil
}

// ClearState removes the state row if present.
func (s *SQLiteStore) ClearState(ctx context.Context, conversationID int64, ns string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM conversation_state WHERE chat_id = ? AND ns = ?",
		conversationID, ns,
	)
	if err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

// GetOrder looks up an order by code, returning nil when unknown.
func (s *SQLiteStore) GetOrder(ctx context.Context, code string) (*models.Order, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx,
		"SELECT code, status, eta, note FROM orders WHERE code = ?", code,
	).Scan(&o.Code, &o.Status, &o.ETA, &o.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// SeedOrders upserts all given orders in one transaction.
func (s *SQLiteStore) SeedOrders(ctx context.Context, orders []models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, o := range orders {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO orders (code, status, eta, note) VALUES (?, ?, ?, ?)
			 ON CONFLICT(code) DO UPDATE SET status = excluded.status, eta = excluded.eta, note = excluded.note`,
			o.Code, o.Status, o.ETA, o.Note,
		)
		if err != nil {
			return fmt.Errorf("failed to seed order %s: %w", o.Code, err)
		}
	}
	return tx.Commit()
}

// PutOffer records one archived offer image, refreshing the file id when the
// same code is re-indexed.
func (s *SQLiteStore) PutOffer(ctx context.Context, offer models.Offer) error {
	if offer.CreatedAt == 0 {
		offer.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO offers (code, size, file_id, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(size, code) DO UPDATE SET file_id = excluded.file_id, created_at = excluded.created_at`,
		offer.Code, offer.Size, offer.FileID, offer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put offer: %w", err)
	}
	return nil
}

// ListOffers returns the offers of one size collection ordered by code.
func (s *SQLiteStore) ListOffers(ctx context.Context, size string) ([]models.Offer, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT code, size, file_id, created_at FROM offers WHERE size = ? ORDER BY code", size,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var o models.Offer
		if err := rows.Scan(&o.Code, &o.Size, &o.FileID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}
	return offers, nil
}
