package brain

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestRuleClassifier_KeywordRules(t *testing.T) {
	cases := []struct {
		text       string
		category   IntentCategory
		confidence float64
	}{
		{"open spotify", IntentOpenApp, 0.75},
		{"launch the camera", IntentOpenApp, 0.75},
		{"translate good morning", IntentTranslateText, 0.75},
		{"message mom I'm late", IntentSendMessage, 0.75},
		{"what time is it?", IntentAskQuestion, 0.75},
		{"hello", IntentSmallTalk, 0.4},
	}
	rc := NewRuleClassifier()
	for _, tc := range cases {
		got, err := rc.Classify(context.Background(), tc.text, NewDialogContext(0))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.text, err)
		}
		if got.Category != tc.category {
			t.Fatalf("%q: expected %s, got %s", tc.text, tc.category, got.Category)
		}
		if got.Confidence != tc.confidence {
			t.Fatalf("%q: expected confidence %v, got %v", tc.text, tc.confidence, got.Confidence)
		}
		if got.RawText != tc.text {
			t.Fatalf("%q: raw text not preserved: %q", tc.text, got.RawText)
		}
	}
}

func TestRuleClassifier_PreviousUtteranceInfluencesMatch(t *testing.T) {
	rc := NewRuleClassifier()
	dc := NewDialogContext(0).WithUserUtterance("open something for me")

	got, err := rc.Classify(context.Background(), "spotify", dc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Category != IntentOpenApp {
		t.Fatalf("expected previous 'open' to carry over, got %s", got.Category)
	}
	if got.Arguments["target"] != "spotify" {
		t.Fatalf("expected target to be current text only, got %q", got.Arguments["target"])
	}
}

func TestRuleClassifier_Deterministic(t *testing.T) {
	rc := NewRuleClassifier()
	dc := NewDialogContext(0).WithUserUtterance("hi").WithAssistantReply("hello")

	first, err := rc.Classify(context.Background(), "open maps", dc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := rc.Classify(context.Background(), "open maps", dc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestRuleClassifier_GenerateReplyReferencesLastThreeTurns(t *testing.T) {
	rc := NewRuleClassifier()
	dc := NewDialogContext(0)
	for _, pair := range [][2]string{{"one", "r1"}, {"two", "r2"}, {"three", "r3"}, {"four", "r4"}} {
		dc = dc.WithUserUtterance(pair[0]).WithAssistantReply(pair[1])
	}

	reply, err := rc.GenerateReply(context.Background(), "five", dc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"two", "three", "four", "Replying to: five"} {
		if !strings.Contains(reply, want) {
			t.Fatalf("reply missing %q:\n%s", want, reply)
		}
	}
	if strings.Contains(reply, "User: one") {
		t.Fatalf("reply should only reference the last three turns:\n%s", reply)
	}

	again, err := rc.GenerateReply(context.Background(), "five", dc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != again {
		t.Fatalf("reply not deterministic for identical context")
	}
}
