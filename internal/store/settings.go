package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/avrkr/advanced-friendly-chatbot/internal/model/settings"
)

// SettingsStore implements settings.Store on a Redis document per user.
type SettingsStore struct {
	client *redis.Client
}

// NewSettingsStore wraps an already-connected client.
func NewSettingsStore(client *redis.Client) *SettingsStore {
	return &SettingsStore{client: client}
}

// Get returns the user's settings, creating the default record on first
// contact so callers never see not-found.
func (s *SettingsStore) Get(ctx context.Context, userID string) (*settings.UserSettings, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	record = settings.NewDefault(userID)
	if err := s.save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Upsert merges a validated patch into the existing or a fresh default
// record, normalizes it and persists the result.
func (s *SettingsStore) Upsert(ctx context.Context, userID string, patch *settings.Patch) (*settings.UserSettings, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = settings.NewDefault(userID)
	}

	if patch != nil {
		patch.Apply(record)
	}
	record.Normalize()

	if err := s.save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *SettingsStore) load(ctx context.Context, userID string) (*settings.UserSettings, error) {
	raw, err := s.client.Get(ctx, settingsKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings for %s: %w", userID, err)
	}

	var record settings.UserSettings
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decode settings for %s: %w", userID, err)
	}
	return &record, nil
}

func (s *SettingsStore) save(ctx context.Context, record *settings.UserSettings) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode settings for %s: %w", record.UserID, err)
	}
	if err := s.client.Set(ctx, settingsKey(record.UserID), raw, 0).Err(); err != nil {
		return fmt.Errorf("save settings for %s: %w", record.UserID, err)
	}
	return nil
}
