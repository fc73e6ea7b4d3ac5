package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/avrkr/advanced-friendly-chatbot/internal/model/chat"
)

// ConversationStore implements chat.Store on a Redis document per user.
// The whole log is one document: a turn appends in memory and rewrites the
// record in a single SET, so a turn is either fully persisted or not at all.
type ConversationStore struct {
	client *redis.Client
}

// NewConversationStore wraps an already-connected client.
func NewConversationStore(client *redis.Client) *ConversationStore {
	return &ConversationStore{client: client}
}

// Get returns the user's conversation or nil when none exists.
func (s *ConversationStore) Get(ctx context.Context, userID string) (*chat.Conversation, error) {
	raw, err := s.client.Get(ctx, conversationKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation for %s: %w", userID, err)
	}

	var conv chat.Conversation
	if err := json.Unmarshal([]byte(raw), &conv); err != nil {
		return nil, fmt.Errorf("decode conversation for %s: %w", userID, err)
	}
	return &conv, nil
}

// GetOrCreate returns the existing conversation or a fresh empty one bound
// to the user's current bot identity. The fresh record is not persisted
// until its first Save, so an abandoned turn leaves nothing behind.
func (s *ConversationStore) GetOrCreate(ctx context.Context, userID, botName, style string) (*chat.Conversation, error) {
	conv, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}
	return chat.NewConversation(userID, botName, style), nil
}

// Save refreshes the derived context fields and persists the record.
func (s *ConversationStore) Save(ctx context.Context, conv *chat.Conversation) error {
	conv.RefreshContext()

	raw, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation for %s: %w", conv.UserID, err)
	}
	if err := s.client.Set(ctx, conversationKey(conv.UserID), raw, 0).Err(); err != nil {
		return fmt.Errorf("save conversation for %s: %w", conv.UserID, err)
	}
	return nil
}

// Clear deletes the record; deleting an absent record succeeds.
func (s *ConversationStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, conversationKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear conversation for %s: %w", userID, err)
	}
	return nil
}
