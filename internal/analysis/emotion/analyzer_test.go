package emotion

import "testing"

func TestAnalyzeDetectsUserState(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    State
	}{
		{"happy words", "thanks, that was awesome", StateUpbeat},
		{"excitement", "I'm so excited, I can't wait!!", StateEnergized},
		{"reflection", "I wonder what if I had taken that job", StateReflective},
		{"sadness", "I've been feeling sad and lonely lately", StateDown},
		{"frustration", "I'm so fed up with this, it's ridiculous", StateFrustrated},
		{"plain", "the meeting is at noon", StateNeutral},
	}

	for _, tc := range cases {
		got := Analyze(tc.message, "")
		if got.State != tc.want {
			t.Errorf("%s: Analyze(%q) = %s, want %s", tc.name, tc.message, got.State, tc.want)
		}
	}
}

func TestAnalyzeFallsBackToBotReply(t *testing.T) {
	got := Analyze("ok", "That's wonderful news, I'm so glad for you!")
	if got.State == StateNeutral {
		t.Fatalf("expected bot reply to carry the signal, got %s", got.State)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	got := Analyze("", "")
	if got.State != StateNeutral || got.Score != 0 {
		t.Fatalf("Analyze(empty) = %+v, want neutral", got)
	}
}

func TestAnalyzeTiedScoresAreDeterministic(t *testing.T) {
	// One keyword from each of two buckets scores a 3-3 tie; the priority
	// order must resolve it the same way on every run.
	message := "sad but awesome"

	first := Analyze(message, "")
	if first.State != StateDown {
		t.Fatalf("Analyze(%q) = %s, want down to win the tie", message, first.State)
	}
	for i := 0; i < 50; i++ {
		if got := Analyze(message, ""); got.State != first.State {
			t.Fatalf("run %d: Analyze(%q) = %s, previously %s", i, message, got.State, first.State)
		}
	}
}

func TestExclamationsReadAsEnergy(t *testing.T) {
	got := Analyze("we won the game!!!", "")
	if got.State != StateEnergized {
		t.Fatalf("Analyze = %s, want energized", got.State)
	}
}
