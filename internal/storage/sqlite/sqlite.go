// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/debtplanner/internal/models"
	"github.com/mmynk/debtplanner/internal/storage"
)

// Keys match the ones the planner has always used, so an exported store
// stays readable.
const (
	keyDebts    = "debts"
	keyStrategy = "strategy"
	keyExtra    = "extraContribution"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
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

// LoadDebts reads the debt list.
func (s *SQLiteStore) LoadDebts(ctx context.Context) ([]models.Debt, error) {
	raw, err := s.get(ctx, keyDebts)
	if err != nil {
		return nil, err
	}

	var debts []models.Debt
	if err := json.Unmarshal([]byte(raw), &debts); err != nil {
		return nil, fmt.Errorf("failed to decode debts: %w", err)
	}
	return debts, nil
}

// SaveDebts replaces the debt list.
func (s *SQLiteStore) SaveDebts(ctx context.Context, debts []models.Debt) error {
	if debts == nil {
		debts = []models.Debt{}
	}
	raw, err := json.Marshal(debts)
	if err != nil {
		return fmt.Errorf("failed to encode debts: %w", err)
	}
	return s.put(ctx, map[string]string{keyDebts: string(raw)})
}

// LoadSettings reads strategy and extra contribution. Each is stored under
// its own key; ErrNotFound is returned only when neither exists.
func (s *SQLiteStore) LoadSettings(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()
	found := false

	strategy, err := s.get(ctx, keyStrategy)
	switch {
	case err == nil:
		settings.Strategy = strategy
		found = true
	case !errors.Is(err, storage.ErrNotFound):
		return models.Settings{}, err
	}

	extra, err := s.get(ctx, keyExtra)
	switch {
	case err == nil:
		v, perr := strconv.ParseFloat(extra, 64)
		if perr != nil {
			return models.Settings{}, fmt.Errorf("failed to parse extra contribution %q: %w", extra, perr)
		}
		settings.ExtraContribution = v
		found = true
	case !errors.Is(err, storage.ErrNotFound):
		return models.Settings{}, err
	}

	if !found {
		return models.Settings{}, storage.ErrNotFound
	}
	return settings, nil
}

// SaveSettings replaces strategy and extra contribution in one transaction.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	return s.put(ctx, map[string]string{
		keyStrategy: settings.Strategy,
		keyExtra:    strconv.FormatFloat(settings.ExtraContribution, 'f', -1, 64),
	})
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) put(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for key, value := range values {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, now,
		)
		if err != nil {
			return fmt.Errorf("failed to put %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
