// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/debtplanner/internal/models"
)

// ErrNotFound is returned by loads when nothing has been saved yet.
var ErrNotFound = errors.New("not found")

// Store defines the key-value persistence the planner needs.
// The planner loads everything on startup and saves on every change, so a
// backend only has to replace whole values.
type Store interface {
	// LoadDebts returns the saved debt list.
	// Returns ErrNotFound if no list was ever saved.
	LoadDebts(ctx context.Context) ([]models.Debt, error)

	// SaveDebts replaces the saved debt list.
	SaveDebts(ctx context.Context, debts []models.Debt) error

	// LoadSettings returns the saved settings.
	// Returns ErrNotFound if settings were never saved.
	LoadSettings(ctx context.Context) (models.Settings, error)

	// SaveSettings replaces the saved settings.
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Close releases any resources held by the store.
	Close() error
}
