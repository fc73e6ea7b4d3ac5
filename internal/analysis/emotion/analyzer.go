// Package emotion infers the conversation mood from message text with a
// keyword heuristic. It costs no upstream call, so every turn can refresh
// the conversation's emotional context.
package emotion

import "strings"

// State is a short descriptor of the user's inferred emotional state,
// stored on the conversation context for future prompt shaping.
type State string

const (
	StateNeutral    State = "neutral"
	StateUpbeat     State = "upbeat"
	StateEnergized  State = "energized"
	StateReflective State = "reflective"
	StateDown       State = "down"
	StateFrustrated State = "frustrated"
)

// Decision is the outcome of analyzing a turn.
type Decision struct {
	State State
	Score int
}

var keywordBuckets = map[State][]string{
	StateUpbeat: {
		"happy", "glad", "great", "awesome", "amazing", "wonderful", "love",
		"thanks", "thank you", "haha", "lol", ":)", "nice", "perfect", "yay",
	},
	StateEnergized: {
		"excited", "can't wait", "cant wait", "hype", "incredible", "wow",
		"let's go", "lets go", "pumped", "thrilled", "unbelievable", "so cool",
	},
	StateReflective: {
		"wonder", "thinking about", "what if", "why do", "curious", "meaning",
		"remember when", "i've been thinking", "not sure", "maybe", "hmm",
	},
	StateDown: {
		"sad", "upset", "lonely", "tired", "depressed", "cry", "miss",
		"hurt", "disappointed", "worried", "anxious", "stressed", "rough day",
	},
	StateFrustrated: {
		"angry", "annoyed", "frustrated", "hate", "fed up", "sick of",
		"furious", "mad", "ridiculous", "unfair",
	},
}

// Exclamation marks read as energy more than anything else.
const exclamationBoost = 2

// statePriority fixes the selection order: on a tied score the earlier
// state wins, so Analyze is deterministic. States that most need a changed
// reply tone come first.
var statePriority = []State{
	StateDown,
	StateFrustrated,
	StateEnergized,
	StateUpbeat,
	StateReflective,
}

// Analyze scores the user's latest message, falling back to the bot reply
// when the user text carries no signal, and returns the strongest state.
func Analyze(userMessage, botReply string) Decision {
	decision := scoreText(userMessage)
	if decision.Score == 0 {
		decision = scoreText(botReply)
	}
	if decision.Score == 0 {
		return Decision{State: StateNeutral}
	}
	return decision
}

func scoreText(text string) Decision {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Decision{State: StateNeutral}
	}

	scores := make(map[State]int)
	for state, keywords := range keywordBuckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				scores[state] += 3
			}
		}
	}

	if n := strings.Count(text, "!"); n > 0 {
		scores[StateEnergized] += n * exclamationBoost
	}

	best := StateNeutral
	bestScore := 0
	for _, state := range statePriority {
		if score := scores[state]; score > bestScore {
			best = state
			bestScore = score
		}
	}

	return Decision{State: best, Score: bestScore}
}
