package chat

import "context"

// Store persists per-user conversation logs keyed by userId.
type Store interface {
	// Get returns the conversation or nil when the user has none.
	Get(ctx context.Context, userID string) (*Conversation, error)
	// GetOrCreate returns the existing conversation or provisions an
	// empty one bound to the given bot identity.
	GetOrCreate(ctx context.Context, userID, botName, style string) (*Conversation, error)
	// Save refreshes the derived context fields and persists the record.
	Save(ctx context.Context, conv *Conversation) error
	// Clear deletes the record. Clearing an absent record is not an error.
	Clear(ctx context.Context, userID string) error
}
