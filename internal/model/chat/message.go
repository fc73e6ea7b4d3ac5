package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// MessageType classifies message content. Producers currently always emit
// TypeText; the remaining variants are reserved for richer clients.
type MessageType string

const (
	TypeText      MessageType = "text"
	TypeQuestion  MessageType = "question"
	TypeGreeting  MessageType = "greeting"
	TypeEmotional MessageType = "emotional"
)

// Message is a single entry in a conversation log.
type Message struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	Sender      Sender      `json:"sender"`
	Timestamp   time.Time   `json:"timestamp"`
	MessageType MessageType `json:"messageType"`
}

// NewMessage builds a message with a fresh identifier and timestamp.
// Content is trimmed; callers must reject empty input beforehand.
func NewMessage(content string, sender Sender) Message {
	return Message{
		ID:          uuid.NewString(),
		Content:     strings.TrimSpace(content),
		Sender:      sender,
		Timestamp:   time.Now().UTC(),
		MessageType: TypeText,
	}
}
