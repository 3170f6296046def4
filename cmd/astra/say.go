package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sayCmd = &cobra.Command{
	Use:   "say <text...>",
	Short: "Run a single turn and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("empty utterance")
		}

		sess, err := newSession(cfg, logger)
		if err != nil {
			return err
		}
		defer sess.close()

		result, err := sess.submitAndWait(cmd.Context(), text)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}
