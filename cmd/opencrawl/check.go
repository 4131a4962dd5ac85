package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencrawl/opencrawl/internal/llm"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the language model connection",
		Long: `Check verifies that the configured language model is reachable with the
API key from the OPENAI_API_KEY environment variable.

Run this before a long assessment to fail fast on credential or endpoint
problems. Without an API key, assessments still work using heuristic
pattern matching only.`,
		RunE: runCheckCmd,
	}

	cmd.Flags().String("model", "",
		"Chat model to test (default: "+llm.DefaultModel+")")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	model, err := cmd.Flags().GetString("model")
	if err != nil {
		return err
	}

	cfg, ok := llm.FromEnv(model)
	if !ok {
		return errors.New("no API key found: set OPENAI_API_KEY to enable the language model")
	}

	client := llm.NewClient(cfg)
	if err := client.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("language model connection failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Language model connection OK")
	return nil
}
