// Package controller is the boundary between hosts (REPL, HTTP console,
// speech frontends) and the brain. It accepts utterances asynchronously,
// serializes them against the single dialog context, and fans results out to
// callbacks and sinks.
package controller

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"astra-core/internal/brain"
	"astra-core/internal/state"
)

// Controller submits turns to a Brain one at a time. The dialog context is
// read-then-replaced per turn, so concurrent submissions against a session
// would lose updates; a single worker goroutine drains the queue instead.
type Controller struct {
	brain     *brain.Brain
	store     *state.DB
	sessionID string
	log       *zap.Logger

	replies ReplySink
	actions ActionSink
	hints   HintSink

	queue chan submission

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

type submission struct {
	ctx      context.Context
	text     string
	onResult func(brain.TurnResult)
	onError  func(error)
}

type Option func(*Controller)

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithStore enables transcript and turn journaling for the session.
func WithStore(store *state.DB, sessionID string) Option {
	return func(c *Controller) {
		c.store = store
		c.sessionID = sessionID
	}
}

func WithReplySink(s ReplySink) Option {
	return func(c *Controller) { c.replies = s }
}

func WithActionSink(s ActionSink) Option {
	return func(c *Controller) { c.actions = s }
}

func WithHintSink(s HintSink) Option {
	return func(c *Controller) { c.hints = s }
}

// WithQueueDepth sets how many submissions may wait while a turn is in
// flight. Default 16.
func WithQueueDepth(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.queue = make(chan submission, n)
		}
	}
}

func New(b *brain.Brain, opts ...Option) *Controller {
	c := &Controller{
		brain: b,
		log:   zap.NewNop(),
		queue: make(chan submission, 16),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the worker. Safe to call more than once.
func (c *Controller) Start() {
	c.startOnce.Do(func() {
		go c.run()
	})
}

// Close drains nothing: queued submissions not yet picked up are dropped.
func (c *Controller) Close() {
	c.stopOnce.Do(func() { close(c.done) })
}

// Submit queues one user utterance. Blank text is caller misuse and is
// silently ignored: neither callback fires and no state changes. onError is
// invoked for classifier or reply-generation failures; onResult and onError
// are mutually exclusive per submission. ctx abandons the turn: an in-flight
// classification may run to completion but its outcome is discarded without
// committing context.
func (c *Controller) Submit(ctx context.Context, text string, onResult func(brain.TurnResult), onError func(error)) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	sub := submission{ctx: ctx, text: text, onResult: onResult, onError: onError}
	select {
	case c.queue <- sub:
	case <-c.done:
	case <-ctx.Done():
	}
}

func (c *Controller) run() {
	for {
		select {
		case <-c.done:
			return
		case sub := <-c.queue:
			c.handle(sub)
		}
	}
}

func (c *Controller) handle(sub submission) {
	// Abandoned while queued: skip without touching context or callbacks.
	if sub.ctx.Err() != nil {
		return
	}

	c.present(brain.HintForSubmit())

	result, err := c.brain.HandleTurn(sub.ctx, sub.text)
	if err != nil {
		c.log.Warn("turn failed", zap.Error(err))
		c.present(brain.HintForError(err))
		if sub.onError != nil {
			sub.onError(err)
		}
		return
	}

	c.journal(sub.text, result)
	c.logResult(result)
	c.present(brain.HintForResult(result))
	c.dispatch(result)

	if sub.onResult != nil {
		sub.onResult(result)
	}
}

func (c *Controller) dispatch(result brain.TurnResult) {
	switch result.Kind {
	case brain.ResultDirectReply:
		if c.replies != nil {
			c.replies.Speak(result.Text)
		}
	case brain.ResultActionRequired:
		if c.actions != nil {
			c.actions.Execute(result.Plan.Steps, result.Plan.Summary)
		}
	}
}

func (c *Controller) present(hint brain.PresentationHint) {
	if c.hints != nil {
		c.hints.Present(hint)
	}
}

func (c *Controller) journal(text string, result brain.TurnResult) {
	if c.store == nil {
		return
	}
	if _, err := c.store.AppendMessage(c.sessionID, state.KindUser, text); err != nil {
		c.log.Warn("journal user message", zap.Error(err))
	}
	reply := ""
	switch result.Kind {
	case brain.ResultDirectReply:
		reply = result.Text
	case brain.ResultActionRequired:
		reply = result.Plan.Summary
	}
	if strings.TrimSpace(reply) != "" {
		if _, err := c.store.AppendMessage(c.sessionID, state.KindReply, reply); err != nil {
			c.log.Warn("journal reply", zap.Error(err))
		}
	}
	if err := c.store.LogTurn(c.sessionID, result); err != nil {
		c.log.Warn("journal turn", zap.Error(err))
	}
}

func (c *Controller) logResult(result brain.TurnResult) {
	c.log.Info("turn",
		zap.Stringer("outcome", result.Kind),
		zap.Stringer("intent", result.Intent.Category),
		zap.Float64("confidence", result.Intent.Confidence),
		zap.Int("steps", len(result.Plan.Steps)))
}
