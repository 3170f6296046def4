package brain

import (
	"errors"
	"testing"
)

func TestHintMapping(t *testing.T) {
	cases := []struct {
		result  TurnResult
		phase   Phase
		emotion Emotion
	}{
		{TurnResult{Kind: ResultDirectReply}, PhaseSpeaking, EmotionHappy},
		{TurnResult{Kind: ResultActionRequired}, PhaseThinking, EmotionCurious},
		{TurnResult{Kind: ResultIgnored}, PhaseIdle, EmotionNeutral},
	}
	for _, tc := range cases {
		hint := HintForResult(tc.result)
		if hint.Phase != tc.phase || hint.Emotion != tc.emotion {
			t.Fatalf("%s: got %s/%s, want %s/%s",
				tc.result.Kind, hint.Phase, hint.Emotion, tc.phase, tc.emotion)
		}
	}
}

func TestHintForSubmit(t *testing.T) {
	hint := HintForSubmit()
	if hint.Phase != PhaseThinking || hint.Emotion != EmotionFocused {
		t.Fatalf("unexpected submit hint %s/%s", hint.Phase, hint.Emotion)
	}
}

func TestHintForErrorCarriesReason(t *testing.T) {
	hint := HintForError(errors.New("backend down"))
	if hint.Phase != PhaseError || hint.Emotion != EmotionConcerned {
		t.Fatalf("unexpected error hint %s/%s", hint.Phase, hint.Emotion)
	}
	if hint.Reason != "backend down" {
		t.Fatalf("unexpected reason %q", hint.Reason)
	}
}
