package settings

import "context"

// Store persists per-user settings records. Records are created lazily:
// Get never reports not-found, and no deletion is exposed.
type Store interface {
	// Get returns the user's settings, creating and persisting the
	// default record when none exists.
	Get(ctx context.Context, userID string) (*UserSettings, error)
	// Upsert merges the patch into the existing record (or a fresh
	// default one), normalizes it, persists and returns it. The patch
	// must already be validated.
	Upsert(ctx context.Context, userID string, patch *Patch) (*UserSettings, error)
}
