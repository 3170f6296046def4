package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"astra-core/internal/brain"
	"astra-core/internal/controller"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive console session",
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, _ []string) error {
	sess, err := newSession(cfg, logger,
		controller.WithHintSink(controller.HintSinkFunc(printHint)),
	)
	if err != nil {
		return err
	}
	defer sess.close()

	fmt.Println("Astra online. Type to talk; /history, /status, /quit.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "quit" || line == "exit":
			return nil
		case line == "/status":
			printStatus(sess)
			continue
		case strings.HasPrefix(line, "/history"):
			printHistory(sess)
			continue
		case strings.HasPrefix(line, "/"):
			fmt.Println("Unknown. Try /history, /status or /quit.")
			continue
		}

		result, err := sess.submitAndWait(cmd.Context(), line)
		if err != nil {
			fmt.Println("ERR:", err)
			continue
		}
		printResult(result)
	}
}

func printResult(result brain.TurnResult) {
	switch result.Kind {
	case brain.ResultDirectReply:
		fmt.Println()
		fmt.Println("Astra:", result.Text)
		fmt.Println()
	case brain.ResultActionRequired:
		fmt.Println()
		fmt.Printf("Astra plans %d action(s): %s\n", len(result.Plan.Steps), result.Plan.Summary)
		for i, step := range result.Plan.Steps {
			fmt.Printf("  %d. %s\n", i+1, describeStep(step))
		}
		fmt.Println()
	default:
		fmt.Println("(ignored)")
	}
}

func describeStep(step brain.DeviceActionStep) string {
	switch step.Kind {
	case brain.StepOpenApp:
		if step.PackageName != "" {
			return "open app " + step.PackageName
		}
		return "open app " + step.AppNameHint
	case brain.StepSendMessage:
		return "send message to " + step.RecipientHint
	case brain.StepShowText:
		return "show: " + step.Text
	case brain.StepNavigateToSettings:
		return "open settings: " + step.SectionHint
	case brain.StepSystemControl:
		if step.Value != "" {
			return "system control " + step.Control.String() + " = " + step.Value
		}
		return "system control " + step.Control.String()
	default:
		return step.Kind.String()
	}
}

func printHint(hint brain.PresentationHint) {
	if hint.Phase == brain.PhaseError {
		fmt.Printf("[%s/%s: %s]\n", hint.Phase, hint.Emotion, hint.Reason)
		return
	}
	fmt.Printf("[%s/%s]\n", hint.Phase, hint.Emotion)
}

func printStatus(sess *session) {
	dc := sess.brain.Context()
	fmt.Printf("session: %s\n", sess.id)
	fmt.Printf("backend: %s\n", cfg.Classifier.Backend)
	fmt.Printf("memory:  %d/%d turns\n", dc.Memory.Len(), dc.Memory.MaxTurns())
	if dc.LastUserUtterance != "" {
		fmt.Printf("last user: %s\n", dc.LastUserUtterance)
	}
	if dc.LastAssistantReply != "" {
		fmt.Printf("last reply: %s\n", dc.LastAssistantReply)
	}
}

func printHistory(sess *session) {
	msgs, err := sess.store.RecentMessages(sess.id, 20)
	if err != nil {
		fmt.Println("ERR:", err)
		return
	}
	if len(msgs) == 0 {
		fmt.Println("(empty)")
		return
	}
	for _, m := range msgs {
		role := "Astra"
		if m.Kind == "user" {
			role = "User"
		}
		fmt.Printf("%s: %s\n", role, m.Text)
	}
}
