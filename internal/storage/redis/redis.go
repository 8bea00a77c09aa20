// Package redis provides a Redis-backed implementation of the storage.Store interface.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/debtplanner/internal/models"
	"github.com/mmynk/debtplanner/internal/storage"
)

var _ storage.Store = (*RedisStore)(nil)

// RedisStore keeps each planner value under prefix+key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// New connects to addr and verifies the connection with a PING.
func New(ctx context.Context, addr, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

// LoadDebts reads the debt list.
func (s *RedisStore) LoadDebts(ctx context.Context) ([]models.Debt, error) {
	raw, err := s.client.Get(ctx, s.key("debts")).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debts: %w", err)
	}

	var debts []models.Debt
	if err := json.Unmarshal(raw, &debts); err != nil {
		return nil, fmt.Errorf("failed to decode debts: %w", err)
	}
	return debts, nil
}

// SaveDebts replaces the debt list.
func (s *RedisStore) SaveDebts(ctx context.Context, debts []models.Debt) error {
	if debts == nil {
		debts = []models.Debt{}
	}
	raw, err := json.Marshal(debts)
	if err != nil {
		return fmt.Errorf("failed to encode debts: %w", err)
	}
	if err := s.client.Set(ctx, s.key("debts"), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to set debts: %w", err)
	}
	return nil
}

// LoadSettings reads strategy and extra contribution with one MGET.
func (s *RedisStore) LoadSettings(ctx context.Context) (models.Settings, error) {
	vals, err := s.client.MGet(ctx, s.key("strategy"), s.key("extraContribution")).Result()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := models.DefaultSettings()
	found := false
	if v, ok := vals[0].(string); ok {
		settings.Strategy = v
		found = true
	}
	if v, ok := vals[1].(string); ok {
		extra, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Settings{}, fmt.Errorf("failed to parse extra contribution %q: %w", v, err)
		}
		settings.ExtraContribution = extra
		found = true
	}

	if !found {
		return models.Settings{}, storage.ErrNotFound
	}
	return settings, nil
}

// SaveSettings writes both settings keys in one MSET.
func (s *RedisStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	err := s.client.MSet(ctx,
		s.key("strategy"), settings.Strategy,
		s.key("extraContribution"), strconv.FormatFloat(settings.ExtraContribution, 'f', -1, 64),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set settings: %w", err)
	}
	return nil
}
