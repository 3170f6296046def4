package brain

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Brain runs one turn end to end: fold the utterance into context, classify,
// route to a plan, generate a reply when needed, and commit the new context.
// It is the sole owner of the session's DialogContext; the context is replaced
// atomically at the end of a successful turn and never touched on failure.
type Brain struct {
	classifier Classifier
	router     SkillRouter
	log        *zap.Logger

	dc DialogContext
}

type Option func(*Brain)

func WithLogger(log *zap.Logger) Option {
	return func(b *Brain) {
		if log != nil {
			b.log = log
		}
	}
}

func WithRouter(router SkillRouter) Option {
	return func(b *Brain) { b.router = router }
}

func WithContext(dc DialogContext) Option {
	return func(b *Brain) { b.dc = dc }
}

func New(classifier Classifier, opts ...Option) *Brain {
	b := &Brain{
		classifier: classifier,
		router:     NewSkillRouter(),
		log:        zap.NewNop(),
		dc:         NewDialogContext(DefaultMaxTurns),
	}
	if b.classifier == nil {
		b.classifier = NewRuleClassifier()
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Context returns the current dialog context snapshot.
func (b *Brain) Context() DialogContext { return b.dc }

// HandleTurn processes one user utterance against the retained context.
// Callers must serialize invocations per session: the context is
// read-then-replaced, and concurrent turns would lose updates.
//
// If ctx is cancelled while classification or reply generation is in flight,
// the turn returns ctx's error and commits nothing, so an abandoned turn can
// never feed state into the next one.
func (b *Brain) HandleTurn(ctx context.Context, text string) (TurnResult, error) {
	updated := b.dc.WithUserUtterance(text)

	intent, err := b.classifier.Classify(ctx, text, updated)
	if err != nil {
		return TurnResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return TurnResult{}, err
	}

	plan := b.router.Route(intent)

	var result TurnResult
	switch plan.Kind {
	case PlanAnswerDirectly:
		reply := plan.ResponseText
		if strings.TrimSpace(reply) == "" {
			reply, err = b.classifier.GenerateReply(ctx, text, updated)
			if err != nil {
				return TurnResult{}, err
			}
		}
		if err := ctx.Err(); err != nil {
			return TurnResult{}, err
		}
		b.dc = updated.WithAssistantReply(reply)
		plan.ResponseText = reply
		result = TurnResult{Kind: ResultDirectReply, Text: reply, Intent: intent, Plan: plan}

	case PlanExecuteDeviceActions:
		b.dc = updated.WithAssistantReply(plan.Summary)
		result = TurnResult{Kind: ResultActionRequired, Intent: intent, Plan: plan}

	default:
		b.dc = updated
		result = TurnResult{Kind: ResultIgnored, Intent: intent, Plan: plan}
	}

	b.logOutcome(intent, result)
	return result, nil
}

func (b *Brain) logOutcome(intent ClassifiedIntent, result TurnResult) {
	switch result.Kind {
	case ResultDirectReply:
		b.log.Debug("direct reply",
			zap.Stringer("intent", intent.Category),
			zap.Float64("confidence", intent.Confidence),
			zap.Int("reply_len", len(result.Text)))
	case ResultActionRequired:
		b.log.Debug("action required",
			zap.Stringer("intent", intent.Category),
			zap.Int("steps", len(result.Plan.Steps)),
			zap.String("summary", result.Plan.Summary))
	default:
		b.log.Debug("ignored",
			zap.Stringer("intent", intent.Category),
			zap.Float64("confidence", intent.Confidence))
	}
}
