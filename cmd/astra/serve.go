package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"astra-core/internal/brain"
	"astra-core/internal/controller"
	"astra-core/internal/state"
	"astra-core/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP/SSE console",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv := ui.New(cfg.Server.Addr)

	sess, err := newSession(cfg, logger,
		controller.WithHintSink(controller.HintSinkFunc(srv.PublishHint)),
	)
	if err != nil {
		return err
	}
	defer sess.close()

	srv.ListMessages = func(limit int) ([]state.Message, error) {
		return sess.store.RecentMessages(sess.id, limit)
	}
	srv.Status = func() (any, error) {
		dc := sess.brain.Context()
		return map[string]any{
			"session":  sess.id,
			"backend":  cfg.Classifier.Backend,
			"turns":    dc.Memory.Len(),
			"maxTurns": dc.Memory.MaxTurns(),
		}, nil
	}
	srv.Submit = func(ctx context.Context, text string) (brain.TurnResult, error) {
		result, err := sess.submitAndWait(ctx, text)
		if err != nil {
			return brain.TurnResult{}, err
		}
		srv.PublishResult(result)
		return result, nil
	}

	logger.Info("console listening", zap.String("addr", cfg.Server.Addr))
	return srv.Run(cmd.Context())
}
