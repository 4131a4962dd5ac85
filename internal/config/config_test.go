package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencrawl/opencrawl/internal/model"
)

func validConfig() *Config {
	c := NewConfig()
	c.Organizations = []model.Organization{{Name: "Org", URL: "https://example.org"}}
	return c
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults with one organization are valid", func(t *testing.T) {
		t.Parallel()

		if err := validConfig().Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "no organizations",
			mutate:  func(c *Config) { c.Organizations = nil },
			wantErr: ErrNoOrganizations,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero page budget",
			mutate:  func(c *Config) { c.MaxPages = 0 },
			wantErr: ErrInvalidMaxPages,
		},
		{
			name:    "negative delay",
			mutate:  func(c *Config) { c.IntraDomainDelay = -time.Second },
			wantErr: ErrInvalidDelay,
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.ConfidenceThreshold = 1.5 },
			wantErr: ErrInvalidThreshold,
		},
		{
			name: "two report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "negative body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("unknown strategy", func(t *testing.T) {
		t.Parallel()

		c := validConfig()
		c.Strategy = "recursive"
		if err := c.Validate(); err == nil {
			t.Error("expected an error for unknown strategy")
		}
	})
}

func TestLoadSettingsFile(t *testing.T) {
	t.Parallel()

	t.Run("loads and applies settings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultSettingsFile)
		content := `catalog: university
strategy: limited
max_pages: 5
timeout_seconds: 10
confidence_threshold: 0.6
model: gpt-4o
headers:
  X-Research-Project: openness
organizations:
  - name: Example University
    url: https://uni.example.org
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		settings, err := LoadSettingsFile(path)
		if err != nil {
			t.Fatalf("LoadSettingsFile() error = %v", err)
		}

		c := NewConfig()
		settings.Apply(c)

		if c.CatalogPath != "university" || c.Strategy != "limited" || c.MaxPages != 5 {
			t.Errorf("unexpected config: %+v", c)
		}
		if c.Timeout != 10*time.Second {
			t.Errorf("Timeout = %v, want 10s", c.Timeout)
		}
		if c.ConfidenceThreshold != 0.6 || c.LLMModel != "gpt-4o" {
			t.Errorf("unexpected config: %+v", c)
		}
		if c.Headers["X-Research-Project"] != "openness" {
			t.Errorf("Headers = %v", c.Headers)
		}
		if len(c.Organizations) != 1 || c.Organizations[0].Name != "Example University" {
			t.Errorf("Organizations = %v", c.Organizations)
		}
	})

	t.Run("command line organizations win", func(t *testing.T) {
		t.Parallel()

		settings := &Settings{Organizations: []model.Organization{{Name: "From file", URL: "https://file.example"}}}
		c := NewConfig()
		c.Organizations = []model.Organization{{Name: "From CLI", URL: "https://cli.example"}}

		settings.Apply(c)

		if len(c.Organizations) != 1 || c.Organizations[0].Name != "From CLI" {
			t.Errorf("Organizations = %v", c.Organizations)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadSettingsFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrSettingsNotFound) {
			t.Errorf("error = %v, want ErrSettingsNotFound", err)
		}
	})
}

func TestFindSettingsFile(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := FindSettingsFile(path); got != path {
			t.Errorf("FindSettingsFile() = %q, want %q", got, path)
		}
	})

	t.Run("missing explicit path yields empty", func(t *testing.T) {
		if got := FindSettingsFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("FindSettingsFile() = %q, want empty", got)
		}
	})
}

func TestLoadOrganizationsCSV(t *testing.T) {
	t.Parallel()

	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "orgs.csv")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("header row is skipped", func(t *testing.T) {
		t.Parallel()

		path := write(t, "Organisation;URL\nExample e.V.;https://example.org\nStiftung Test;test.example\n")
		organizations, err := LoadOrganizationsCSV(path)
		if err != nil {
			t.Fatalf("LoadOrganizationsCSV() error = %v", err)
		}

		if len(organizations) != 2 {
			t.Fatalf("got %d organizations, want 2", len(organizations))
		}
		if organizations[0].Name != "Example e.V." || organizations[0].URL != "https://example.org" {
			t.Errorf("first organization = %+v", organizations[0])
		}
		if organizations[1].URL != "https://test.example" {
			t.Errorf("scheme not prepended: %+v", organizations[1])
		}
	})

	t.Run("file without header", func(t *testing.T) {
		t.Parallel()

		path := write(t, "Example e.V.;https://example.org\n")
		organizations, err := LoadOrganizationsCSV(path)
		if err != nil {
			t.Fatalf("LoadOrganizationsCSV() error = %v", err)
		}
		if len(organizations) != 1 {
			t.Errorf("got %d organizations, want 1", len(organizations))
		}
	})

	t.Run("blank and incomplete rows are skipped", func(t *testing.T) {
		t.Parallel()

		path := write(t, "Example;https://example.org\nonly-one-field\n;\n")
		organizations, err := LoadOrganizationsCSV(path)
		if err != nil {
			t.Fatalf("LoadOrganizationsCSV() error = %v", err)
		}
		if len(organizations) != 1 {
			t.Errorf("got %d organizations, want 1", len(organizations))
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := write(t, "Organisation;URL\n")
		if _, err := LoadOrganizationsCSV(path); !errors.Is(err, ErrEmptyOrganizationsFile) {
			t.Errorf("error = %v, want ErrEmptyOrganizationsFile", err)
		}
	})
}
