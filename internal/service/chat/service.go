// Package chat orchestrates a conversation turn: it loads the user's
// settings and history, builds the persona prompt, calls the completion
// service and persists the result.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avrkr/advanced-friendly-chatbot/internal/analysis/emotion"
	"github.com/avrkr/advanced-friendly-chatbot/internal/model/chat"
	"github.com/avrkr/advanced-friendly-chatbot/internal/model/settings"
	"github.com/avrkr/advanced-friendly-chatbot/internal/service/ai"
)

// historyWindow is how many trailing messages feed the prompt.
const historyWindow = 8

// userID length bounds enforced before any store access.
const (
	minUserIDLen = 1
	maxUserIDLen = 100
)

// Completer is the completion provider contract: one prompt in, text out.
// The real implementation wraps the upstream model; tests inject fakes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service coordinates the stores and the completion provider for the chat
// API. A nil completer is allowed; turns then fail as upstream unavailable.
type Service struct {
	settings      settings.Store
	conversations chat.Store
	completer     Completer
}

// NewService wires the orchestrator. All collaborators are injected.
func NewService(settingsStore settings.Store, conversationStore chat.Store, completer Completer) *Service {
	return &Service{
		settings:      settingsStore,
		conversations: conversationStore,
		completer:     completer,
	}
}

// TurnResult is the caller-facing view of a completed chat turn.
type TurnResult struct {
	Response          string    `json:"response"`
	UserID            string    `json:"userId"`
	BotName           string    `json:"botName"`
	ConversationStyle string    `json:"conversationStyle"`
	Timestamp         time.Time `json:"timestamp"`
	MessageID         string    `json:"messageId"`
}

// HandleTurn runs one request/response cycle: validate, merge any settings
// patch, append the user message, complete, append the bot reply and
// persist both in a single write. A failed completion persists nothing, so
// a failed turn leaves no trace of the user's message.
func (s *Service) HandleTurn(ctx context.Context, userID, message string, patch *settings.Patch) (*TurnResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, &ValidationError{Detail: "please provide a non-empty message"}
	}

	userSettings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// Apply the patch before building the prompt so the same turn already
	// reflects the settings change.
	if patch != nil {
		if err := patch.Validate(); err != nil {
			return nil, &ValidationError{Detail: err.Error()}
		}
		userSettings, err = s.settings.Upsert(ctx, userID, patch)
		if err != nil {
			return nil, fmt.Errorf("update settings: %w", err)
		}
	}

	conv, err := s.conversations.GetOrCreate(ctx, userID, userSettings.BotName, string(userSettings.ConversationStyle))
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	// In-memory only until the bot reply arrives.
	userMsg := chat.NewMessage(trimmed, chat.SenderUser)
	conv.Append(userMsg)

	historyText := ai.FormatHistory(conv.Recent(historyWindow), userSettings.BotName)
	promptText := ai.BuildPrompt(userSettings, historyText, trimmed)

	if s.completer == nil {
		return nil, &UpstreamError{UserMessage: MsgUpstreamConfig}
	}
	reply, err := s.completer.Complete(ctx, promptText)
	if err != nil {
		return nil, classifyCompletionError(err)
	}
	// Message content is never empty; a blank completion fails the turn so
	// the unpersisted user message is discarded with it.
	if strings.TrimSpace(reply) == "" {
		return nil, fmt.Errorf("completion service returned an empty reply")
	}

	botMsg := chat.NewMessage(reply, chat.SenderBot)
	conv.Append(botMsg)

	decision := emotion.Analyze(userMsg.Content, botMsg.Content)
	conv.Mood = moodFor(decision.State)
	conv.Context.EmotionalState = string(decision.State)

	// Keep the conversation's bot identity synced with settings.
	conv.BotName = userSettings.BotName
	conv.ConversationStyle = string(userSettings.ConversationStyle)

	if err := s.conversations.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("persist conversation: %w", err)
	}

	log.Printf("[chat] turn completed user=%s messages=%d mood=%s", userID, len(conv.Messages), conv.Mood)

	return &TurnResult{
		Response:          botMsg.Content,
		UserID:            userID,
		BotName:           userSettings.BotName,
		ConversationStyle: string(userSettings.ConversationStyle),
		Timestamp:         botMsg.Timestamp,
		MessageID:         botMsg.ID,
	}, nil
}

// Settings returns the user's settings, creating the default record when
// none exists.
func (s *Service) Settings(ctx context.Context, userID string) (*settings.UserSettings, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.settings.Get(ctx, userID)
}

// UpdateSettings validates and applies a patch, then propagates the bot
// identity to the user's stored conversation.
func (s *Service) UpdateSettings(ctx context.Context, userID string, patch *settings.Patch) (*settings.UserSettings, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if patch == nil {
		return nil, &ValidationError{Detail: "no settings fields provided"}
	}
	if err := patch.Validate(); err != nil {
		return nil, &ValidationError{Detail: err.Error()}
	}

	updated, err := s.settings.Upsert(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	conv, err := s.conversations.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv != nil {
		conv.BotName = updated.BotName
		conv.ConversationStyle = string(updated.ConversationStyle)
		if err := s.conversations.Save(ctx, conv); err != nil {
			return nil, fmt.Errorf("propagate settings to conversation: %w", err)
		}
	}

	return updated, nil
}

// HistoryPage is a newest-first window over the conversation log.
type HistoryPage struct {
	Messages []chat.Message `json:"messages"`
	Summary  chat.Summary   `json:"summary"`
	BotName  string         `json:"botName"`
}

// History returns a fixed-size page counted from the end of the log,
// newest first. limit defaults to 50 and is capped at 200; offset skips
// that many trailing messages.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) (*HistoryPage, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	conv, err := s.conversations.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv == nil {
		return &HistoryPage{
			Messages: []chat.Message{},
			Summary:  chat.Summary{BotName: settings.DefaultBotName},
			BotName:  settings.DefaultBotName,
		}, nil
	}

	return &HistoryPage{
		Messages: conv.Page(limit, offset),
		Summary:  conv.Summarize(),
		BotName:  conv.BotName,
	}, nil
}

// Clear deletes the user's conversation; clearing nothing succeeds.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	return s.conversations.Clear(ctx, userID)
}

// Stats is the read-only aggregate over a conversation's message log.
type Stats struct {
	TotalMessages int        `json:"totalMessages"`
	UserMessages  int        `json:"userMessages"`
	BotMessages   int        `json:"botMessages"`
	FirstMessage  *time.Time `json:"firstMessage"`
	LastMessage   *time.Time `json:"lastMessage"`
	BotName       string     `json:"botName,omitempty"`
}

// Stats aggregates message counts and boundary timestamps; all fields are
// zero-valued when the user has no conversation.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	conv, err := s.conversations.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv == nil {
		return &Stats{}, nil
	}

	stats := &Stats{
		TotalMessages: len(conv.Messages),
		BotName:       conv.BotName,
	}
	for _, msg := range conv.Messages {
		if msg.Sender == chat.SenderUser {
			stats.UserMessages++
		} else {
			stats.BotMessages++
		}
	}
	if len(conv.Messages) > 0 {
		first := conv.Messages[0].Timestamp
		last := conv.Messages[len(conv.Messages)-1].Timestamp
		stats.FirstMessage = &first
		stats.LastMessage = &last
	}
	return stats, nil
}

func validateUserID(userID string) error {
	if n := utf8.RuneCountInString(userID); n < minUserIDLen || n > maxUserIDLen {
		return &ValidationError{Detail: "user ID must be between 1 and 100 characters"}
	}
	return nil
}

func moodFor(state emotion.State) chat.Mood {
	switch state {
	case emotion.StateUpbeat:
		return chat.MoodHappy
	case emotion.StateEnergized:
		return chat.MoodExcited
	case emotion.StateReflective, emotion.StateDown, emotion.StateFrustrated:
		return chat.MoodThoughtful
	default:
		return chat.MoodCalm
	}
}
