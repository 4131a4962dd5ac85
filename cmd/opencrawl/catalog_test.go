package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewCatalogCmd tests the catalog command group creation.
func TestNewCatalogCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCatalogCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "catalog" {
			t.Errorf("expected use 'catalog', got %q", cmd.Use)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		names := map[string]bool{}
		for _, sub := range cmd.Commands() {
			names[strings.Fields(sub.Use)[0]] = true
		}
		for _, want := range []string{"list", "info", "init"} {
			if !names[want] {
				t.Errorf("expected %s subcommand", want)
			}
		}
	})
}

// TestCatalogInitAndList tests creating a sample catalog and listing it.
func TestCatalogInitAndList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("init creates a sample catalog", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := newCatalogInitCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"university", "--dir", dir, "--type", "university"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Created sample catalog") {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("init refuses to overwrite", func(t *testing.T) {
		cmd := newCatalogInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"university", "--dir", dir})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for existing catalog")
		}
	})

	t.Run("list shows the catalog", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := newCatalogListCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--dir", dir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "university") {
			t.Errorf("expected catalog in listing, got %q", buf.String())
		}
	})

	t.Run("info shows criteria", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := newCatalogInfoCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"university", "--dir", dir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Organization type: university") {
			t.Errorf("expected organization type, got %q", output)
		}
		if !strings.Contains(output, "annual_report") {
			t.Errorf("expected criterion listing, got %q", output)
		}
	})
}

// TestCatalogListEmptyDir tests listing a directory without catalogs.
func TestCatalogListEmptyDir(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := newCatalogListCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--dir", filepath.Join(t.TempDir(), "missing")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No catalogs found") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
