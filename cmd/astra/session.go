package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"astra-core/internal/brain"
	"astra-core/internal/config"
	"astra-core/internal/controller"
	"astra-core/internal/ollama"
	"astra-core/internal/state"
)

// session bundles one wired pipeline: store, brain, controller.
type session struct {
	id    string
	store *state.DB
	brain *brain.Brain
	ctrl  *controller.Controller
}

func (s *session) close() {
	s.ctrl.Close()
	if s.store != nil {
		_ = s.store.Close()
	}
}

// submitAndWait runs one turn synchronously on top of the async controller.
func (s *session) submitAndWait(ctx context.Context, text string) (brain.TurnResult, error) {
	type outcome struct {
		result brain.TurnResult
		err    error
	}
	ch := make(chan outcome, 1)
	s.ctrl.Submit(ctx, text,
		func(r brain.TurnResult) { ch <- outcome{result: r} },
		func(err error) { ch <- outcome{err: err} },
	)
	select {
	case out := <-ch:
		return out.result, out.err
	case <-ctx.Done():
		return brain.TurnResult{}, ctx.Err()
	}
}

func newSession(cfg *config.Config, log *zap.Logger, extra ...controller.Option) (*session, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	store, err := state.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	id := sessionID
	resumed := id != ""
	if id == "" {
		id = uuid.NewString()
	}

	classifier, err := buildClassifier(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	opts := []brain.Option{brain.WithLogger(log)}
	if resumed {
		mem, err := store.LoadMemory(id, cfg.Memory.MaxTurns)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("resuming session %s: %w", id, err)
		}
		opts = append(opts, brain.WithContext(brain.DialogContext{Memory: mem}))
	} else {
		opts = append(opts, brain.WithContext(brain.NewDialogContext(cfg.Memory.MaxTurns)))
	}
	b := brain.New(classifier, opts...)

	ctrlOpts := append([]controller.Option{
		controller.WithLogger(log),
		controller.WithStore(store, id),
	}, extra...)
	ctrl := controller.New(b, ctrlOpts...)
	ctrl.Start()

	log.Info("session ready",
		zap.String("session", id),
		zap.Bool("resumed", resumed),
		zap.String("backend", cfg.Classifier.Backend))

	return &session{id: id, store: store, brain: b, ctrl: ctrl}, nil
}

func buildClassifier(cfg *config.Config) (brain.Classifier, error) {
	switch cfg.Classifier.Backend {
	case "ollama":
		client := ollama.New(cfg.Classifier.Endpoint)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.VerifyModel(ctx, cfg.Classifier.Model); err != nil {
			return nil, fmt.Errorf("ollama backend: %w", err)
		}
		return brain.NewLLMClassifier(client, cfg.Classifier.Model), nil
	case "rule":
		return brain.NewRuleClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.Classifier.Backend)
	}
}
