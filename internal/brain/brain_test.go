package brain

import (
	"context"
	"errors"
	"testing"
)

type stubClassifier struct {
	intent      ClassifiedIntent
	classifyErr error
	reply       string
	replyErr    error
	replyCalls  int
}

func (s *stubClassifier) Classify(_ context.Context, text string, _ DialogContext) (ClassifiedIntent, error) {
	if s.classifyErr != nil {
		return ClassifiedIntent{}, s.classifyErr
	}
	intent := s.intent
	intent.RawText = text
	return intent, nil
}

func (s *stubClassifier) GenerateReply(_ context.Context, _ string, _ DialogContext) (string, error) {
	s.replyCalls++
	return s.reply, s.replyErr
}

func TestBrain_DirectReplyCommitsBothSidesOfTheTurn(t *testing.T) {
	b := New(NewRuleClassifier())

	result, err := b.HandleTurn(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != ResultDirectReply {
		t.Fatalf("expected direct reply, got %s", result.Kind)
	}
	if result.Text != "hello" {
		t.Fatalf("expected echo of non-blank planner text, got %q", result.Text)
	}
	if result.Plan.ResponseText != result.Text {
		t.Fatalf("plan text not aligned with final reply")
	}

	dc := b.Context()
	if dc.LastUserUtterance != "hello" || dc.LastAssistantReply != "hello" {
		t.Fatalf("context not folded: %+v", dc)
	}
	turns := dc.Memory.Snapshot()
	if len(turns) != 1 || turns[0].User != "hello" || turns[0].Assistant != "hello" {
		t.Fatalf("unexpected memory: %+v", turns)
	}
}

func TestBrain_BlankPlannerTextTriggersReplyGeneration(t *testing.T) {
	sc := &stubClassifier{
		intent: ClassifiedIntent{Category: IntentSmallTalk, Confidence: 0.9},
		reply:  "generated reply",
	}
	// A router that plans an empty answer, as a production planner may.
	b := New(sc, WithRouter(NewSkillRouterWith(func(ClassifiedIntent) ActionPlan {
		return AnswerDirectly("")
	})))

	result, err := b.HandleTurn(context.Background(), "hey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.replyCalls != 1 {
		t.Fatalf("expected one GenerateReply call, got %d", sc.replyCalls)
	}
	if result.Text != "generated reply" || result.Plan.ResponseText != "generated reply" {
		t.Fatalf("generated reply not threaded through result: %+v", result)
	}
	if b.Context().LastAssistantReply != "generated reply" {
		t.Fatalf("generated reply not committed to context")
	}
}

func TestBrain_ActionRequiredFoldsSummaryAsReply(t *testing.T) {
	b := New(NewRuleClassifier())

	result, err := b.HandleTurn(context.Background(), "open spotify")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != ResultActionRequired {
		t.Fatalf("expected action required, got %s", result.Kind)
	}
	if result.Plan.Summary != "Open app open spotify" {
		t.Fatalf("unexpected summary %q", result.Plan.Summary)
	}
	if b.Context().LastAssistantReply != "Open app open spotify" {
		t.Fatalf("summary not folded into context as the assistant reply")
	}
}

func TestBrain_IgnoredKeepsUserFoldOnly(t *testing.T) {
	sc := &stubClassifier{intent: ClassifiedIntent{Category: IntentUnknown, Confidence: 0.1}}
	b := New(sc)

	result, err := b.HandleTurn(context.Background(), "mumble")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != ResultIgnored || result.Plan.Kind != PlanNoOp {
		t.Fatalf("expected ignored noop, got %+v", result)
	}
	dc := b.Context()
	if dc.LastUserUtterance != "mumble" {
		t.Fatalf("user fold missing")
	}
	if dc.LastAssistantReply != "" {
		t.Fatalf("no reply should be folded for ignored turns")
	}
	if dc.Memory.Len() != 1 || dc.Memory.Snapshot()[0].Assistant != "" {
		t.Fatalf("unexpected memory: %+v", dc.Memory.Snapshot())
	}
}

func TestBrain_ClassifierFailureLeavesContextUncommitted(t *testing.T) {
	sc := &stubClassifier{classifyErr: errors.New("backend unavailable")}
	b := New(sc)

	if _, err := b.HandleTurn(context.Background(), "hello"); err == nil {
		t.Fatalf("expected classifier error to propagate")
	}
	if b.Context().Memory.Len() != 0 || b.Context().LastUserUtterance != "" {
		t.Fatalf("failed turn leaked into context: %+v", b.Context())
	}

	// Context is intact: the next turn starts from the prior committed state.
	sc.classifyErr = nil
	sc.intent = ClassifiedIntent{Category: IntentSmallTalk, Confidence: 0.4}
	if _, err := b.HandleTurn(context.Background(), "hello again"); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if b.Context().Memory.Len() != 1 {
		t.Fatalf("expected exactly the recovered turn in memory, got %d", b.Context().Memory.Len())
	}
}

func TestBrain_ReplyGenerationFailureLeavesContextUncommitted(t *testing.T) {
	sc := &stubClassifier{
		intent:   ClassifiedIntent{Category: IntentSmallTalk, Confidence: 0.9},
		replyErr: errors.New("model timeout"),
	}
	b := New(sc, WithRouter(NewSkillRouterWith(func(ClassifiedIntent) ActionPlan {
		return AnswerDirectly("")
	})))

	if _, err := b.HandleTurn(context.Background(), "hey"); err == nil {
		t.Fatalf("expected reply-generation error to propagate")
	}
	if b.Context().Memory.Len() != 0 {
		t.Fatalf("failed turn leaked into context")
	}
}

func TestBrain_CancelledTurnDoesNotCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sc := &stubClassifier{intent: ClassifiedIntent{Category: IntentSmallTalk, Confidence: 0.9}}
	b := New(sc)

	cancel()
	if _, err := b.HandleTurn(ctx, "abandoned"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if b.Context().Memory.Len() != 0 {
		t.Fatalf("abandoned turn committed context")
	}
}

func TestBrain_ContextThreadsAcrossTurns(t *testing.T) {
	b := New(NewRuleClassifier())

	if _, err := b.HandleTurn(context.Background(), "hello"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if _, err := b.HandleTurn(context.Background(), "spotify please"); err != nil {
		t.Fatalf("turn 2: %v", err)
	}

	// Turn 2's classification saw turn 1's committed utterance; no rule word
	// in either, so it stays small talk with two turns retained.
	dc := b.Context()
	if dc.Memory.Len() != 2 {
		t.Fatalf("expected 2 turns, got %d", dc.Memory.Len())
	}
	if dc.LastUserUtterance != "spotify please" {
		t.Fatalf("unexpected last utterance %q", dc.LastUserUtterance)
	}
}
