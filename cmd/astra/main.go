package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"astra-core/internal/config"
)

var (
	cfgFile   string
	debug     bool
	sessionID string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "astra",
	Short: "astra - conversational routing pipeline for a voice assistant",
	Long: `astra runs the assistant's brain without the phone around it:
utterances go in, classified intents are planned into replies or device
actions, and structured results come out. The overlay, speech capture and
playback live elsewhere; this binary drives the pipeline over a console or a
local HTTP/SSE server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		if debug || cfg.Log.Debug {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd, args)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./astra.yaml, ~/.astra/astra.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "resume an existing session id")

	rootCmd.AddCommand(replCmd, serveCmd, sayCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
