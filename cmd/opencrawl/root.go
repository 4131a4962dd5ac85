// Package main provides the entry point for the opencrawl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for opencrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opencrawl",
		Short: "Openness assessment tool for organization websites",
		Long: `opencrawl assesses how openly organizations present themselves online.
It crawls an organization's public website one page at a time, checks the
content against a criteria catalog (annual reports, contact information,
governance documents, ...), and reports which criteria are fulfilled with
what confidence.

When an OPENAI_API_KEY is set, a language model helps select the most
promising subpages and analyze page content. Without it, opencrawl falls
back to deterministic heuristic pattern matching.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAssessCmd())
	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
