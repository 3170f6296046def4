package brain

import (
	"context"
	"strings"
)

// RuleClassifier is the offline reference backend: keyword rules over the
// previous user utterance plus the current text. Deterministic on purpose so
// the pipeline is testable without a model. It only ever emits the
// target/text/question argument keys; see RequiredArguments for the keys a
// production backend must supply.
type RuleClassifier struct{}

func NewRuleClassifier() RuleClassifier { return RuleClassifier{} }

const (
	ruleHitConfidence  = 0.75
	fallbackConfidence = 0.4
)

func (RuleClassifier) Classify(_ context.Context, text string, dc DialogContext) (ClassifiedIntent, error) {
	combined := normalizeText(dc.LastUserUtterance + "\n" + text)

	category := IntentSmallTalk
	confidence := fallbackConfidence
	switch {
	case strings.Contains(combined, "open") || strings.Contains(combined, "launch"):
		category, confidence = IntentOpenApp, ruleHitConfidence
	case strings.Contains(combined, "translate"):
		category, confidence = IntentTranslateText, ruleHitConfidence
	case strings.Contains(combined, "message") || strings.Contains(combined, "text"):
		category, confidence = IntentSendMessage, ruleHitConfidence
	case strings.HasSuffix(strings.TrimSpace(combined), "?"):
		category, confidence = IntentAskQuestion, ruleHitConfidence
	}

	args := map[string]string{}
	switch category {
	case IntentOpenApp:
		args["target"] = text
	case IntentTranslateText:
		args["text"] = text
	case IntentSendMessage:
		args["text"] = text
	case IntentAskQuestion:
		args["question"] = text
	case IntentSmallTalk:
		args["text"] = text
	}

	return ClassifiedIntent{
		Category:   category,
		Arguments:  args,
		Confidence: confidence,
		RawText:    text,
	}, nil
}

// GenerateReply composes a canned reply referencing the last three stored
// turns. Purely illustrative, but deterministic for a given context.
func (RuleClassifier) GenerateReply(_ context.Context, text string, dc DialogContext) (string, error) {
	var b strings.Builder
	b.WriteString("Based on convo:\n")
	for _, t := range dc.Memory.LastN(3) {
		b.WriteString("User: ")
		b.WriteString(t.User)
		b.WriteString("\nAssistant: ")
		b.WriteString(t.Assistant)
		b.WriteString("\n")
	}
	b.WriteString("\nReplying to: ")
	b.WriteString(text)
	return b.String(), nil
}
