package settings

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBotName is assigned when a user has never chosen a name.
const DefaultBotName = "Alex"

// MaxBotNameLen bounds user-chosen bot names.
const MaxBotNameLen = 30

// Style is a named persona preset controlling the prompt template and the
// default personality traits.
type Style string

const (
	StyleFriendly     Style = "friendly"
	StyleProfessional Style = "professional"
	StyleFunny        Style = "funny"
	StyleSupportive   Style = "supportive"
	StyleEnthusiastic Style = "enthusiastic"
)

// Valid reports whether the style is one of the supported presets.
func (s Style) Valid() bool {
	switch s {
	case StyleFriendly, StyleProfessional, StyleFunny, StyleSupportive, StyleEnthusiastic:
		return true
	}
	return false
}

// Trait is a short descriptive tag woven into the persona prompt.
type Trait string

const (
	TraitHumorous    Trait = "humorous"
	TraitEmpathetic  Trait = "empathetic"
	TraitCurious     Trait = "curious"
	TraitEncouraging Trait = "encouraging"
	TraitWise        Trait = "wise"
	TraitPlayful     Trait = "playful"
)

// Valid reports whether the trait is a known tag.
func (t Trait) Valid() bool {
	switch t {
	case TraitHumorous, TraitEmpathetic, TraitCurious, TraitEncouraging, TraitWise, TraitPlayful:
		return true
	}
	return false
}

var styleTraits = map[Style][]Trait{
	StyleFriendly:     {TraitEmpathetic, TraitCurious, TraitEncouraging},
	StyleProfessional: {TraitWise, TraitCurious},
	StyleFunny:        {TraitHumorous, TraitPlayful},
	StyleSupportive:   {TraitEmpathetic, TraitEncouraging, TraitWise},
	StyleEnthusiastic: {TraitPlayful, TraitCurious, TraitEncouraging},
}

// DefaultTraits returns the trait set implied by a conversation style.
// Unknown styles fall back to a gentle general-purpose pair.
func DefaultTraits(style Style) []Trait {
	if traits, ok := styleTraits[style]; ok {
		return append([]Trait(nil), traits...)
	}
	return []Trait{TraitEmpathetic, TraitCurious}
}

// Preferences are per-user behavior toggles consulted by the frontend and
// reserved for prompt shaping.
type Preferences struct {
	UseEmojis     bool `json:"useEmojis"`
	AskQuestions  bool `json:"askQuestions"`
	ShareFacts    bool `json:"shareFacts"`
	MemoryEnabled bool `json:"memoryEnabled"`
}

// UserInfo is free-form context the user has shared about themselves.
type UserInfo struct {
	Name      string   `json:"name,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Mood      string   `json:"mood,omitempty"`
}

// UserSettings is the per-user configuration document. One exists per
// userId; records are created lazily and never deleted.
type UserSettings struct {
	UserID            string      `json:"userId"`
	BotName           string      `json:"botName"`
	ConversationStyle Style       `json:"conversationStyle"`
	PersonalityTraits []Trait     `json:"personalityTraits"`
	Preferences       Preferences `json:"preferences"`
	UserInfo          UserInfo    `json:"userInfo"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// NewDefault constructs the record assigned to a user on first contact.
func NewDefault(userID string) *UserSettings {
	now := time.Now().UTC()
	return &UserSettings{
		UserID:            userID,
		BotName:           DefaultBotName,
		ConversationStyle: StyleFriendly,
		PersonalityTraits: DefaultTraits(StyleFriendly),
		Preferences: Preferences{
			UseEmojis:     true,
			AskQuestions:  true,
			ShareFacts:    false,
			MemoryEnabled: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Normalize enforces the write-time invariants: traits are never persisted
// empty (derived from style when absent) and updatedAt tracks the write.
func (s *UserSettings) Normalize() {
	if len(s.PersonalityTraits) == 0 {
		s.PersonalityTraits = DefaultTraits(s.ConversationStyle)
	}
	s.UpdatedAt = time.Now().UTC()
}

// TraitList renders the traits as the comma-joined string used in prompts.
func (s *UserSettings) TraitList() string {
	parts := make([]string, len(s.PersonalityTraits))
	for i, t := range s.PersonalityTraits {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// Patch is the whitelist of fields callers may change on a settings record.
// Nil pointers mean "leave as is"; every present field is validated before
// any of them is applied.
type Patch struct {
	BotName           *string           `json:"botName,omitempty"`
	ConversationStyle *Style            `json:"conversationStyle,omitempty"`
	PersonalityTraits *[]Trait          `json:"personalityTraits,omitempty"`
	Preferences       *PreferencesPatch `json:"preferences,omitempty"`
	UserInfo          *UserInfoPatch    `json:"userInfo,omitempty"`
}

// PreferencesPatch mirrors Preferences with optional fields.
type PreferencesPatch struct {
	UseEmojis     *bool `json:"useEmojis,omitempty"`
	AskQuestions  *bool `json:"askQuestions,omitempty"`
	ShareFacts    *bool `json:"shareFacts,omitempty"`
	MemoryEnabled *bool `json:"memoryEnabled,omitempty"`
}

// UserInfoPatch mirrors UserInfo with optional fields.
type UserInfoPatch struct {
	Name      *string   `json:"name,omitempty"`
	Interests *[]string `json:"interests,omitempty"`
	Mood      *string   `json:"mood,omitempty"`
}

// Validate checks every field present in the patch against the model's
// constraints without touching any record.
func (p *Patch) Validate() error {
	if p.BotName != nil {
		name := strings.TrimSpace(*p.BotName)
		if name == "" || len([]rune(name)) > MaxBotNameLen {
			return fmt.Errorf("botName must be 1-%d characters", MaxBotNameLen)
		}
	}
	if p.ConversationStyle != nil && !p.ConversationStyle.Valid() {
		return fmt.Errorf("unknown conversationStyle %q", *p.ConversationStyle)
	}
	if p.PersonalityTraits != nil {
		for _, t := range *p.PersonalityTraits {
			if !t.Valid() {
				return fmt.Errorf("unknown personality trait %q", t)
			}
		}
	}
	return nil
}

// Apply merges the patch into the record. Callers must Validate first;
// Normalize afterwards re-derives traits if the patch emptied them.
func (p *Patch) Apply(s *UserSettings) {
	if p.BotName != nil {
		s.BotName = strings.TrimSpace(*p.BotName)
	}
	if p.ConversationStyle != nil {
		s.ConversationStyle = *p.ConversationStyle
		// A style change invalidates traits that were only ever derived;
		// explicit traits in the same patch still win below.
		if p.PersonalityTraits == nil {
			s.PersonalityTraits = nil
		}
	}
	if p.PersonalityTraits != nil {
		s.PersonalityTraits = append([]Trait(nil), (*p.PersonalityTraits)...)
	}
	if p.Preferences != nil {
		if p.Preferences.UseEmojis != nil {
			s.Preferences.UseEmojis = *p.Preferences.UseEmojis
		}
		if p.Preferences.AskQuestions != nil {
			s.Preferences.AskQuestions = *p.Preferences.AskQuestions
		}
		if p.Preferences.ShareFacts != nil {
			s.Preferences.ShareFacts = *p.Preferences.ShareFacts
		}
		if p.Preferences.MemoryEnabled != nil {
			s.Preferences.MemoryEnabled = *p.Preferences.MemoryEnabled
		}
	}
	if p.UserInfo != nil {
		if p.UserInfo.Name != nil {
			s.UserInfo.Name = strings.TrimSpace(*p.UserInfo.Name)
		}
		if p.UserInfo.Interests != nil {
			s.UserInfo.Interests = append([]string(nil), (*p.UserInfo.Interests)...)
		}
		if p.UserInfo.Mood != nil {
			s.UserInfo.Mood = strings.TrimSpace(*p.UserInfo.Mood)
		}
	}
}
