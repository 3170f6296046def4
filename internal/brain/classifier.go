package brain

import "context"

// Classifier is the pluggable backend behind the pipeline: anything that can
// turn raw text plus dialog context into a classified intent, and compose a
// free-form reply. Both calls may block on network or model inference and must
// treat the passed context as read-only.
type Classifier interface {
	Classify(ctx context.Context, text string, dc DialogContext) (ClassifiedIntent, error)
	GenerateReply(ctx context.Context, text string, dc DialogContext) (string, error)
}
