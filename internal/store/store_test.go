package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/avrkr/advanced-friendly-chatbot/internal/model/chat"
	"github.com/avrkr/advanced-friendly-chatbot/internal/model/settings"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSettingsGetCreatesDefault(t *testing.T) {
	store := NewSettingsStore(testClient(t))
	ctx := context.Background()

	record, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}

	if record.UserID != "u1" {
		t.Errorf("userId = %q", record.UserID)
	}
	if record.BotName != settings.DefaultBotName {
		t.Errorf("botName = %q, want %q", record.BotName, settings.DefaultBotName)
	}
	if len(record.PersonalityTraits) == 0 {
		t.Error("default record has no traits")
	}

	// A second read returns the persisted record, not a new default.
	again, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("second Get err: %v", err)
	}
	if !again.CreatedAt.Equal(record.CreatedAt) {
		t.Error("second Get produced a different record")
	}
}

func TestSettingsUpsertMergesPatch(t *testing.T) {
	store := NewSettingsStore(testClient(t))
	ctx := context.Background()

	name := "Nova"
	style := settings.StyleFunny
	record, err := store.Upsert(ctx, "u1", &settings.Patch{
		BotName:           &name,
		ConversationStyle: &style,
	})
	if err != nil {
		t.Fatalf("Upsert err: %v", err)
	}

	if record.BotName != "Nova" {
		t.Errorf("botName = %q", record.BotName)
	}
	if record.ConversationStyle != settings.StyleFunny {
		t.Errorf("style = %q", record.ConversationStyle)
	}
	// Style change with no explicit traits re-derives from the table.
	if len(record.PersonalityTraits) != 2 || record.PersonalityTraits[0] != settings.TraitHumorous {
		t.Errorf("traits = %v, want funny defaults", record.PersonalityTraits)
	}

	loaded, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if loaded.BotName != "Nova" {
		t.Error("patch not persisted")
	}
}

func TestSettingsUpsertNeverPersistsEmptyTraits(t *testing.T) {
	store := NewSettingsStore(testClient(t))
	ctx := context.Background()

	empty := []settings.Trait{}
	record, err := store.Upsert(ctx, "u1", &settings.Patch{PersonalityTraits: &empty})
	if err != nil {
		t.Fatalf("Upsert err: %v", err)
	}
	if len(record.PersonalityTraits) == 0 {
		t.Fatal("empty traits were persisted")
	}
}

func TestConversationGetAbsent(t *testing.T) {
	store := NewConversationStore(testClient(t))

	conv, err := store.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if conv != nil {
		t.Fatal("expected nil for absent conversation")
	}
}

func TestConversationSaveRoundTrip(t *testing.T) {
	store := NewConversationStore(testClient(t))
	ctx := context.Background()

	conv, err := store.GetOrCreate(ctx, "u1", "Alex", "friendly")
	if err != nil {
		t.Fatalf("GetOrCreate err: %v", err)
	}
	conv.Append(chat.NewMessage("hello there", chat.SenderUser))
	conv.Append(chat.NewMessage("hi!", chat.SenderBot))

	if err := store.Save(ctx, conv); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	loaded, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if loaded == nil {
		t.Fatal("conversation not persisted")
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(loaded.Messages))
	}
	if loaded.Messages[0].Sender != chat.SenderUser || loaded.Messages[1].Sender != chat.SenderBot {
		t.Error("message order not preserved")
	}
	// Save recomputed the derived context.
	if len(loaded.Context.LastTopics) != 1 || loaded.Context.LastTopics[0] != "hello there" {
		t.Errorf("lastTopics = %v", loaded.Context.LastTopics)
	}
}

func TestConversationGetOrCreateDoesNotPersist(t *testing.T) {
	store := NewConversationStore(testClient(t))
	ctx := context.Background()

	if _, err := store.GetOrCreate(ctx, "u1", "Alex", "friendly"); err != nil {
		t.Fatalf("GetOrCreate err: %v", err)
	}

	conv, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if conv != nil {
		t.Fatal("fresh conversation persisted before first Save")
	}
}

func TestConversationClearIdempotent(t *testing.T) {
	store := NewConversationStore(testClient(t))
	ctx := context.Background()

	conv, _ := store.GetOrCreate(ctx, "u1", "Alex", "friendly")
	conv.Append(chat.NewMessage("hi", chat.SenderUser))
	if err := store.Save(ctx, conv); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear err: %v", err)
	}
	if loaded, _ := store.Get(ctx, "u1"); loaded != nil {
		t.Fatal("conversation still present after Clear")
	}

	// Clearing again, and clearing a user that never existed, both succeed.
	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("second Clear err: %v", err)
	}
	if err := store.Clear(ctx, "ghost"); err != nil {
		t.Fatalf("Clear of absent user err: %v", err)
	}
}

func TestConnectRetriesThenFails(t *testing.T) {
	ctx := context.Background()

	_, err := Connect(ctx, ConnectConfig{
		Addr:        "127.0.0.1:1", // nothing listens here
		MaxAttempts: 2,
		Delay:       time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected connection failure")
	}
}

func TestConnectSucceeds(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), ConnectConfig{
		Addr:        mr.Addr(),
		MaxAttempts: 3,
		Delay:       time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Connect err: %v", err)
	}
	client.Close()
}
