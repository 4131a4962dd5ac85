package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencrawl/opencrawl/internal/catalog"
	"github.com/opencrawl/opencrawl/internal/config"
)

// NewCatalogCmd creates the catalog command group.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage criteria catalogs",
		Long: `Catalog manages the criteria catalogs opencrawl assesses against.

Catalogs are YAML files describing openness dimensions, factors, and
criteria with search patterns. They live in the XDG config directory
(` + config.CatalogDir() + `) and are referenced by name, or anywhere
on disk and referenced by path.`,
	}

	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogInfoCmd())
	cmd.AddCommand(newCatalogInitCmd())

	return cmd
}

// newCatalogListCmd creates the catalog list command.
func newCatalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available criteria catalogs",
		RunE:  runCatalogListCmd,
	}

	cmd.Flags().StringP("dir", "d", config.CatalogDir(),
		"Directory to search for catalogs")

	return cmd
}

// runCatalogListCmd executes the catalog list command.
func runCatalogListCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}

	names, err := catalog.Available(dir)
	if err != nil {
		return fmt.Errorf("failed to list catalogs in %s: %w", dir, err)
	}

	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No catalogs found in %s\n", dir)
		fmt.Fprintln(cmd.OutOrStdout(), "Create one with: opencrawl catalog init <name>")
		return nil
	}

	for _, name := range names {
		cat, err := catalog.LoadByName(dir, name)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (invalid: %v)\n", name, err)
			continue
		}
		info := cat.Describe(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s - %s (%d criteria in %d dimensions)\n",
			name, info.Name, info.TotalCriteria, info.Dimensions)
	}

	return nil
}

// newCatalogInfoCmd creates the catalog info command.
func newCatalogInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show details of a criteria catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogInfoCmd,
	}

	cmd.Flags().StringP("dir", "d", config.CatalogDir(),
		"Directory to search for catalogs")

	return cmd
}

// runCatalogInfoCmd executes the catalog info command.
func runCatalogInfoCmd(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}

	cat, err := catalog.LoadByName(dir, args[0])
	if err != nil {
		return err
	}

	info := cat.Describe(args[0])
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:              %s\n", info.Name)
	fmt.Fprintf(out, "Description:       %s\n", info.Description)
	fmt.Fprintf(out, "Version:           %s\n", info.Version)
	fmt.Fprintf(out, "Organization type: %s\n", info.OrganizationType)
	fmt.Fprintf(out, "Dimensions:        %d\n", info.Dimensions)
	fmt.Fprintf(out, "Criteria:          %d\n", info.TotalCriteria)

	fmt.Fprintln(out)
	for _, criterion := range cat.Criteria() {
		fmt.Fprintf(out, "  [%s/%s] %s: %s\n",
			criterion.Dimension, criterion.Factor, criterion.ID, criterion.Name)
	}

	return nil
}

// newCatalogInitCmd creates the catalog init command.
func newCatalogInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a sample criteria catalog",
		Long: `Init writes a minimal sample catalog that demonstrates the catalog
format: one transparency dimension with an annual-report criterion using
text and URL patterns. Edit the generated file to build a real catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: runCatalogInitCmd,
	}

	cmd.Flags().StringP("dir", "d", config.CatalogDir(),
		"Directory to write the catalog to")
	cmd.Flags().String("type", "generic",
		"Organization type the catalog targets (e.g. university, ngo)")

	return cmd
}

// runCatalogInitCmd executes the catalog init command.
func runCatalogInitCmd(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}

	organizationType, err := cmd.Flags().GetString("type")
	if err != nil {
		return err
	}

	path, err := catalog.WriteSample(dir, args[0], organizationType)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created sample catalog: %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit it to add your own dimensions, factors, and criteria.")
	return nil
}
