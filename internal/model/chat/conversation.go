package chat

import "time"

// Mood is the conversation-level emotional tone tracked across turns.
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodCalm       Mood = "calm"
	MoodExcited    Mood = "excited"
	MoodThoughtful Mood = "thoughtful"
)

const (
	// TopicLimit caps context.lastTopics at the most recent user messages.
	TopicLimit = 5
	// TopicPrefixLen bounds each stored topic to a content prefix.
	TopicPrefixLen = 50
)

// Context carries derived conversation state used to enrich future prompts.
type Context struct {
	LastTopics      []string          `json:"lastTopics"`
	UserPreferences map[string]string `json:"userPreferences,omitempty"`
	EmotionalState  string            `json:"emotionalState,omitempty"`
}

// Conversation is the per-user message log document. One exists per userId.
type Conversation struct {
	UserID            string    `json:"userId"`
	BotName           string    `json:"botName"`
	Messages          []Message `json:"messages"`
	ConversationStyle string    `json:"conversationStyle"`
	Mood              Mood      `json:"mood"`
	Context           Context   `json:"context"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// NewConversation provisions an empty log bound to the user's current
// bot identity.
func NewConversation(userID, botName, style string) *Conversation {
	now := time.Now().UTC()
	return &Conversation{
		UserID:            userID,
		BotName:           botName,
		Messages:          make([]Message, 0, 16),
		ConversationStyle: style,
		Mood:              MoodCalm,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Append adds a message to the end of the log. The log is append-only;
// existing entries are never edited or reordered.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// RefreshContext recomputes the derived fields that track the log:
// lastTopics holds prefixes of the most recent user messages, and updatedAt
// moves to now. Called on every save so callers can never set them directly.
func (c *Conversation) RefreshContext() {
	topics := make([]string, 0, TopicLimit)
	for i := len(c.Messages) - 1; i >= 0 && len(topics) < TopicLimit; i-- {
		msg := c.Messages[i]
		if msg.Sender != SenderUser {
			continue
		}
		content := msg.Content
		if runes := []rune(content); len(runes) > TopicPrefixLen {
			content = string(runes[:TopicPrefixLen])
		}
		topics = append(topics, content)
	}
	// Scanned newest-first; stored oldest-first to mirror the log order.
	for i, j := 0, len(topics)-1; i < j; i, j = i+1, j-1 {
		topics[i], topics[j] = topics[j], topics[i]
	}
	c.Context.LastTopics = topics
	c.UpdatedAt = time.Now().UTC()
}

// Recent returns up to n messages from the end of the log, oldest first.
func (c *Conversation) Recent(n int) []Message {
	if n <= 0 || len(c.Messages) == 0 {
		return nil
	}
	start := len(c.Messages) - n
	if start < 0 {
		start = 0
	}
	return c.Messages[start:]
}

// Page returns a fixed-size window counted from the end of the log,
// newest first. offset skips that many trailing messages, so offset=0
// yields the latest page. Bounds are clamped rather than erroring.
func (c *Conversation) Page(limit, offset int) []Message {
	if limit < 1 {
		limit = 1
	}
	if offset < 0 {
		offset = 0
	}

	end := len(c.Messages) - offset
	if end <= 0 {
		return []Message{}
	}
	start := end - limit
	if start < 0 {
		start = 0
	}

	page := make([]Message, 0, end-start)
	for i := end - 1; i >= start; i-- {
		page = append(page, c.Messages[i])
	}
	return page
}

// Summary is the compact conversation view returned alongside history pages.
type Summary struct {
	TotalMessages int       `json:"totalMessages"`
	LastActivity  time.Time `json:"lastActivity"`
	BotName       string    `json:"botName"`
	Style         string    `json:"style"`
}

// Summarize produces the summary view of the conversation.
func (c *Conversation) Summarize() Summary {
	return Summary{
		TotalMessages: len(c.Messages),
		LastActivity:  c.UpdatedAt,
		BotName:       c.BotName,
		Style:         c.ConversationStyle,
	}
}
