package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opencrawl/opencrawl/internal/config"
)

//go:embed templates/opencrawl.yaml
var settingsTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new opencrawl settings file",
		Long: `Init creates a new .opencrawl settings file in the current directory.

The generated file includes:
- Default settings for the crawl strategy, page budget, and delays
- Commented examples for an organization list and custom headers
- Documentation for all available options

Examples:
  # Create .opencrawl in current directory
  opencrawl init

  # Create settings file at a specific path
  opencrawl init -o mysettings.yaml

  # Force overwrite existing file
  opencrawl init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultSettingsFile,
		"Output file path for the settings")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing settings file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("settings file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := settingsTemplate.ReadFile("templates/opencrawl.yaml")
	if err != nil {
		return fmt.Errorf("failed to read settings template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write settings file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	fmt.Printf("Created settings file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure defaults such as:")
	fmt.Println("  - The criteria catalog and crawl strategy")
	fmt.Println("  - Politeness delays and the page budget")
	fmt.Println("  - A fixed list of organizations to assess")

	return nil
}
