package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencrawl/opencrawl/internal/config"
)

// TestNewAssessCmd tests the assess command creation.
func TestNewAssessCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAssessCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "assess [url...]" {
			t.Errorf("expected use 'assess [url...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has catalog flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("catalog")
		if flag == nil {
			t.Fatal("expected catalog flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has list flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("list")
		if flag == nil {
			t.Fatal("expected list flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %q", flag.Shorthand)
		}
	})

	t.Run("has strategy flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("strategy")
		if flag == nil {
			t.Fatal("expected strategy flag")
		}
		if flag.DefValue != config.DefaultStrategy {
			t.Errorf("expected default %q, got %q", config.DefaultStrategy, flag.DefValue)
		}
	})

	t.Run("has max-pages flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("max-pages")
		if flag == nil {
			t.Fatal("expected max-pages flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", flag.Shorthand)
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has report format flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"json", "markdown", "csv", "output", "stats"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("has politeness flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"delay", "org-delay", "user-agent"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// emptySettingsFile pins the settings lookup to a neutral file so the
// tests cannot pick up a developer's real .opencrawl.
func emptySettingsFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".opencrawl")
	if err := os.WriteFile(path, []byte("{}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestBuildAssessConfig tests flag and settings merging.
func TestBuildAssessConfig(t *testing.T) {
	t.Parallel()

	t.Run("positional URLs become organizations", func(t *testing.T) {
		t.Parallel()

		cmd := NewAssessCmd()
		err := cmd.ParseFlags([]string{
			"--settings", emptySettingsFile(t),
			"--catalog", "criteria.yaml",
		})
		if err != nil {
			t.Fatal(err)
		}

		cfg, err := buildAssessConfig(cmd, []string{"https://www.example.org", "https://another.example"})
		if err != nil {
			t.Fatalf("buildAssessConfig() error = %v", err)
		}

		if len(cfg.Organizations) != 2 {
			t.Fatalf("got %d organizations, want 2", len(cfg.Organizations))
		}
		if cfg.Organizations[0].Name != "example.org" {
			t.Errorf("Name = %q, want %q", cfg.Organizations[0].Name, "example.org")
		}
		if cfg.Organizations[0].URL != "https://www.example.org" {
			t.Errorf("URL = %q", cfg.Organizations[0].URL)
		}
		if cfg.CatalogPath != "criteria.yaml" {
			t.Errorf("CatalogPath = %q", cfg.CatalogPath)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewAssessCmd()
		err := cmd.ParseFlags([]string{
			"--settings", emptySettingsFile(t),
			"--strategy", "limited",
			"--max-pages", "5",
			"--timeout", "10s",
			"--threshold", "0.7",
			"--csv",
		})
		if err != nil {
			t.Fatal(err)
		}

		cfg, err := buildAssessConfig(cmd, []string{"https://example.org"})
		if err != nil {
			t.Fatalf("buildAssessConfig() error = %v", err)
		}

		if cfg.Strategy != "limited" {
			t.Errorf("Strategy = %q", cfg.Strategy)
		}
		if cfg.MaxPages != 5 {
			t.Errorf("MaxPages = %d", cfg.MaxPages)
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
		if cfg.ConfidenceThreshold != 0.7 {
			t.Errorf("ConfidenceThreshold = %v", cfg.ConfidenceThreshold)
		}
		if !cfg.CSVReport {
			t.Error("expected CSVReport")
		}
	})

	t.Run("settings file applies, changed flags win", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		settingsPath := filepath.Join(dir, ".opencrawl")
		settings := "catalog: university\nstrategy: all_pages\nmax_pages: 3\n"
		if err := os.WriteFile(settingsPath, []byte(settings), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewAssessCmd()
		err := cmd.ParseFlags([]string{
			"--settings", settingsPath,
			"--strategy", "homepage_only",
		})
		if err != nil {
			t.Fatal(err)
		}

		cfg, err := buildAssessConfig(cmd, []string{"https://example.org"})
		if err != nil {
			t.Fatalf("buildAssessConfig() error = %v", err)
		}

		if cfg.CatalogPath != "university" {
			t.Errorf("CatalogPath = %q, want settings value", cfg.CatalogPath)
		}
		if cfg.Strategy != "homepage_only" {
			t.Errorf("Strategy = %q, want flag value", cfg.Strategy)
		}
		if cfg.MaxPages != 3 {
			t.Errorf("MaxPages = %d, want settings value", cfg.MaxPages)
		}
	})

	t.Run("missing explicit settings file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewAssessCmd()
		err := cmd.ParseFlags([]string{"--settings", filepath.Join(t.TempDir(), "nope.yaml")})
		if err != nil {
			t.Fatal(err)
		}

		if _, err := buildAssessConfig(cmd, nil); err == nil {
			t.Error("expected error for missing settings file")
		}
	})

	t.Run("organization list from CSV", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		listPath := filepath.Join(dir, "orgs.csv")
		csv := "Organisation;URL\nExample e.V.;example.org\n"
		if err := os.WriteFile(listPath, []byte(csv), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewAssessCmd()
		err := cmd.ParseFlags([]string{
			"--settings", emptySettingsFile(t),
			"--list", listPath,
		})
		if err != nil {
			t.Fatal(err)
		}

		cfg, err := buildAssessConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildAssessConfig() error = %v", err)
		}

		if len(cfg.Organizations) != 1 {
			t.Fatalf("got %d organizations, want 1", len(cfg.Organizations))
		}
		if cfg.Organizations[0].Name != "Example e.V." {
			t.Errorf("Name = %q", cfg.Organizations[0].Name)
		}
		if cfg.Organizations[0].URL != "https://example.org" {
			t.Errorf("URL = %q", cfg.Organizations[0].URL)
		}
	})
}

// TestOrganizationNameFromURL tests display name derivation.
func TestOrganizationNameFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://www.example.org", "example.org"},
		{"https://example.org/about", "example.org"},
		{"http://sub.example.org", "sub.example.org"},
		{"not a url", "not a url"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.rawURL, func(t *testing.T) {
			t.Parallel()
			if got := organizationNameFromURL(tt.rawURL); got != tt.want {
				t.Errorf("organizationNameFromURL(%q) = %q, want %q", tt.rawURL, got, tt.want)
			}
		})
	}
}

// TestLoadCatalogByPath tests catalog resolution by file path.
func TestLoadCatalogByPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "criteria.yaml")
	content := `metadata:
  name: Test catalog
  organization_type: test
dimensions:
  transparency:
    name: Transparency
    factors:
      finance:
        name: Finance
        criteria:
          annual_report:
            name: Annual report
            description: Publishes an annual report
            type: operational
            patterns:
              text: ["jahresbericht"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cat, err := loadCatalog(path)
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}
	if cat.CountCriteria() != 1 {
		t.Errorf("CountCriteria() = %d, want 1", cat.CountCriteria())
	}
}
