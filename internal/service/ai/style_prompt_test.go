package ai

import (
	"strings"
	"testing"

	"github.com/avrkr/advanced-friendly-chatbot/internal/model/chat"
	"github.com/avrkr/advanced-friendly-chatbot/internal/model/settings"
)

func promptSettings(style settings.Style) *settings.UserSettings {
	s := settings.NewDefault("u1")
	s.BotName = "Nova"
	s.ConversationStyle = style
	s.PersonalityTraits = settings.DefaultTraits(style)
	return s
}

func TestBuildPromptAllStyles(t *testing.T) {
	styles := []settings.Style{
		settings.StyleFriendly,
		settings.StyleProfessional,
		settings.StyleFunny,
		settings.StyleSupportive,
		settings.StyleEnthusiastic,
	}

	for _, style := range styles {
		s := promptSettings(style)
		prompt := BuildPrompt(s, "User: hi\nNova: hello", "how are you?")

		if n := strings.Count(prompt, "Nova,"); n != 1 {
			t.Errorf("%s: botName substituted %d times in persona line", style, n)
		}
		if n := strings.Count(prompt, s.TraitList()); n != 1 {
			t.Errorf("%s: traits %q appear %d times, want 1", style, s.TraitList(), n)
		}
		if strings.Contains(prompt, "{botName}") || strings.Contains(prompt, "{traits}") {
			t.Errorf("%s: unsubstituted placeholder remains", style)
		}
		if !strings.HasSuffix(prompt, "\nNova:") {
			t.Errorf("%s: prompt does not end with bot cue, got %q", style, prompt[len(prompt)-20:])
		}
		if !strings.Contains(prompt, "\n\nUser: how are you?\n") {
			t.Errorf("%s: new user message missing", style)
		}
	}
}

func TestBuildPromptUnknownStyleFallsBackToFriendly(t *testing.T) {
	s := promptSettings("whimsical")
	prompt := BuildPrompt(s, "", "hi")

	if !strings.Contains(prompt, "warm, friendly, and empathetic") {
		t.Fatal("unknown style did not fall back to the friendly template")
	}
}

func TestBuildPromptIncludesUserInfo(t *testing.T) {
	s := promptSettings(settings.StyleFriendly)
	s.UserInfo.Name = "Sam"
	s.UserInfo.Interests = []string{"chess", "hiking"}

	prompt := BuildPrompt(s, "", "hi")

	if !strings.Contains(prompt, "User's name: Sam") {
		t.Error("user's name line missing")
	}
	if !strings.Contains(prompt, "User's interests: chess, hiking") {
		t.Error("user's interests line missing")
	}
}

func TestBuildPromptOmitsAbsentUserInfo(t *testing.T) {
	s := promptSettings(settings.StyleFriendly)

	prompt := BuildPrompt(s, "", "hi")

	if strings.Contains(prompt, "User's name:") || strings.Contains(prompt, "User's interests:") {
		t.Fatal("user info lines present without user info")
	}
}

func TestBuildPromptEmbedsHistoryVerbatim(t *testing.T) {
	s := promptSettings(settings.StyleFriendly)
	history := "User: first\nNova: second"

	prompt := BuildPrompt(s, history, "third")

	if !strings.Contains(prompt, "\n\n"+history+"\n\n") {
		t.Fatal("history block not embedded verbatim between blank lines")
	}
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	s := promptSettings(settings.StyleFunny)

	a := BuildPrompt(s, "User: hi", "again")
	b := BuildPrompt(s, "User: hi", "again")

	if a != b {
		t.Fatal("same inputs produced different prompts")
	}
}

func TestFormatHistory(t *testing.T) {
	messages := []chat.Message{
		chat.NewMessage("hello", chat.SenderUser),
		chat.NewMessage("hi Sam!", chat.SenderBot),
		chat.NewMessage("how are you?", chat.SenderUser),
	}

	got := FormatHistory(messages, "Nova")
	want := "User: hello\nNova: hi Sam!\nUser: how are you?"
	if got != want {
		t.Fatalf("FormatHistory = %q, want %q", got, want)
	}
}

func TestFormatHistoryEmpty(t *testing.T) {
	if got := FormatHistory(nil, "Nova"); got != "" {
		t.Fatalf("FormatHistory(nil) = %q, want empty", got)
	}
}
