package brain

import (
	"context"
	"reflect"
	"testing"
)

// The planner and the classifier backends agree on argument keys only by
// convention. These tests pin that convention down so swapping in a
// production classifier surfaces key mismatches instead of silently planning
// noops.

func TestRequiredArguments_KeysPerCategory(t *testing.T) {
	want := map[IntentCategory][]string{
		IntentOpenApp:       {"appName", "target", "package"},
		IntentSendMessage:   {"recipient", "target", "text", "message"},
		IntentTranslateText: {"text", "targetLang"},
		IntentControlDevice: {"control", "value"},
		IntentSearchWeb:     {"query"},
		IntentGetWeather:    {"location"},
	}
	if !reflect.DeepEqual(RequiredArguments, want) {
		t.Fatalf("required-argument contract drifted:\n got %v\nwant %v", RequiredArguments, want)
	}
}

// TestRuleClassifier_ArgumentGap documents a known integration gap: the
// reference backend never emits control/recipient/appName/query, so
// ControlDevice and similar categories degrade to NoOp under it. A
// model-backed classifier must populate the keys in RequiredArguments.
func TestRuleClassifier_ArgumentGap(t *testing.T) {
	rc := NewRuleClassifier()
	texts := []string{
		"turn on wifi", "open spotify", "message mom hello",
		"search for ramen", "weather tomorrow?",
	}
	for _, text := range texts {
		intent, err := rc.Classify(context.Background(), text, NewDialogContext(0))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", text, err)
		}
		for _, key := range []string{"control", "recipient", "appName", "query", "location"} {
			if _, ok := intent.Arguments[key]; ok {
				t.Fatalf("%q: reference classifier unexpectedly emits %q now; update the contract", text, key)
			}
		}
	}
}

// Scenario: "turn on wifi" classifies as SmallTalk (no rule hit) and, even
// when forced to ControlDevice, plans NoOp because the reference backend
// never supplies the control argument.
func TestControlDeviceGapEndsInNoop(t *testing.T) {
	rc := NewRuleClassifier()
	intent, err := rc.Classify(context.Background(), "turn on wifi", NewDialogContext(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	forced := intent
	forced.Category = IntentControlDevice
	if plan := PlanAction(forced); plan.Kind != PlanNoOp {
		t.Fatalf("expected noop for ControlDevice without control argument, got %s", plan.Kind)
	}
}
