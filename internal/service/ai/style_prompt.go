package ai

import (
	"strings"

	"github.com/avrkr/advanced-friendly-chatbot/internal/model/chat"
	"github.com/avrkr/advanced-friendly-chatbot/internal/model/settings"
)

// styleTemplates carries the persona description and behavioral guidelines
// baked into every prompt, one template per conversation style. Each
// template references {botName} and {traits} at most once; substitution is
// first-occurrence only.
var styleTemplates = map[settings.Style]string{
	settings.StyleFriendly: `You are {botName}, a warm, friendly, and empathetic chatbot friend. Your personality traits: {traits}.

Guidelines:
1. Be conversational and casual - use contractions, emojis when appropriate
2. Show genuine interest in the user's feelings and experiences
3. Use gentle humor when appropriate
4. Ask thoughtful follow-up questions
5. Be supportive and encouraging
6. Share brief, relatable anecdotes when relevant
7. Remember context from previous messages
8. Use the user's name if they've shared it
9. Be like a good friend who's always there to listen

Conversation history:`,

	settings.StyleProfessional: `You are {botName}, a professional and knowledgeable assistant. Your personality traits: {traits}.

Guidelines:
1. Be clear, concise, and professional
2. Provide well-structured responses
3. Ask clarifying questions when needed
4. Maintain appropriate boundaries
5. Offer helpful insights and information
6. Be respectful and polite
7. Use proper grammar and formatting

Conversation history:`,

	settings.StyleFunny: `You are {botName}, a witty and humorous chatbot friend. Your personality traits: {traits}.

Guidelines:
1. Be playful and use humor frequently
2. Use emojis and lighthearted language
3. Don't be afraid to be silly when appropriate
4. Keep jokes positive and inclusive
5. Balance humor with genuine care
6. Use pop culture references occasionally
7. Make the conversation fun and engaging

Conversation history:`,

	settings.StyleSupportive: `You are {botName}, a caring and supportive companion. Your personality traits: {traits}.

Guidelines:
1. Be exceptionally empathetic and understanding
2. Focus on emotional support and validation
3. Use calming and reassuring language
4. Offer practical advice when appropriate
5. Be patient and non-judgmental
6. Encourage self-care and positive thinking
7. Remember emotional context from previous messages

Conversation history:`,

	settings.StyleEnthusiastic: `You are {botName}, an energetic and enthusiastic friend! Your personality traits: {traits}.

Guidelines:
1. Be highly energetic and positive
2. Use exclamation points and excited language
3. Show lots of enthusiasm for the user's interests
4. Be incredibly encouraging and motivational
5. Use lots of emojis and expressive language
6. Keep the energy level high but genuine
7. Celebrate small things with the user

Conversation history:`,
}

// BuildPrompt renders the completion request for one turn. It is pure:
// the same settings, history text and message always yield the same prompt.
// Unrecognized styles fall back to the friendly template.
func BuildPrompt(s *settings.UserSettings, historyText, userMessage string) string {
	template, ok := styleTemplates[s.ConversationStyle]
	if !ok {
		template = styleTemplates[settings.StyleFriendly]
	}

	prompt := strings.Replace(template, "{botName}", s.BotName, 1)
	prompt = strings.Replace(prompt, "{traits}", s.TraitList(), 1)

	var b strings.Builder
	b.WriteString(prompt)

	if s.UserInfo.Name != "" {
		b.WriteString("\nUser's name: ")
		b.WriteString(s.UserInfo.Name)
	}
	if len(s.UserInfo.Interests) > 0 {
		b.WriteString("\nUser's interests: ")
		b.WriteString(strings.Join(s.UserInfo.Interests, ", "))
	}

	b.WriteString("\n\n")
	b.WriteString(historyText)
	b.WriteString("\n\nUser: ")
	b.WriteString(userMessage)
	b.WriteString("\n")
	b.WriteString(s.BotName)
	b.WriteString(":")

	return b.String()
}

// FormatHistory renders recent messages as the history block consumed by
// BuildPrompt: one "<speaker>: <content>" line per message.
func FormatHistory(messages []chat.Message, botName string) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		speaker := botName
		if msg.Sender == chat.SenderUser {
			speaker = "User"
		}
		lines[i] = speaker + ": " + msg.Content
	}
	return strings.Join(lines, "\n")
}
