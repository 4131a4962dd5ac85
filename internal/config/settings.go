package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opencrawl/opencrawl/internal/model"
)

// DefaultSettingsFile is the default settings file name.
const DefaultSettingsFile = ".opencrawl"

// ErrSettingsNotFound is returned when the settings file does not exist.
var ErrSettingsNotFound = errors.New("settings file not found")

// Settings is the structure of the .opencrawl settings file. All fields
// are optional; present values override the built-in defaults and are in
// turn overridden by CLI flags.
type Settings struct {
	// Catalog is the path or name of the criteria catalog.
	Catalog string `yaml:"catalog,omitempty"`

	// Strategy is the crawl strategy name.
	Strategy string `yaml:"strategy,omitempty"`

	// MaxPages is the page budget per organization.
	MaxPages int `yaml:"max_pages,omitempty"`

	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// IntraDomainDelaySeconds is the delay between same-site requests.
	IntraDomainDelaySeconds float64 `yaml:"intra_domain_delay_seconds,omitempty"`

	// InterDomainDelaySeconds is the pause between organizations.
	InterDomainDelaySeconds float64 `yaml:"inter_domain_delay_seconds,omitempty"`

	// ConfidenceThreshold is the evaluator-wide fallback threshold.
	ConfidenceThreshold float64 `yaml:"confidence_threshold,omitempty"`

	// Model is the LLM chat model name.
	Model string `yaml:"model,omitempty"`

	// UserAgent overrides the HTTP User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// Headers are additional HTTP headers applied to every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Organizations lists entities to assess when none are given on the
	// command line.
	Organizations []model.Organization `yaml:"organizations,omitempty"`
}

// LoadSettingsFile loads settings from a YAML file.
// If the file does not exist, it returns ErrSettingsNotFound. Callers
// should handle this error based on whether the path was explicitly
// specified by the user.
func LoadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided settings path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// FindSettingsFile searches for the settings file in the following order:
//  1. If settingsPath is specified, use it directly
//  2. Look for .opencrawl in the current directory
//  3. Look for .opencrawl in the user's home directory
//
// Returns the path to the settings file if found, or empty string if not.
func FindSettingsFile(settingsPath string) string {
	if settingsPath != "" {
		if _, err := os.Stat(settingsPath); err == nil {
			return settingsPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdSettings := filepath.Join(cwd, DefaultSettingsFile)
		if _, err := os.Stat(cwdSettings); err == nil {
			return cwdSettings
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeSettings := filepath.Join(home, DefaultSettingsFile)
		if _, err := os.Stat(homeSettings); err == nil {
			return homeSettings
		}
	}

	return ""
}

// Apply merges the settings into the config. Only set fields override;
// values already provided on the command line win and must be merged by
// the caller after this.
func (s *Settings) Apply(c *Config) {
	if s.Catalog != "" {
		c.CatalogPath = s.Catalog
	}
	if s.Strategy != "" {
		c.Strategy = s.Strategy
	}
	if s.MaxPages > 0 {
		c.MaxPages = s.MaxPages
	}
	if s.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(s.TimeoutSeconds) * time.Second
	}
	if s.IntraDomainDelaySeconds > 0 {
		c.IntraDomainDelay = time.Duration(s.IntraDomainDelaySeconds * float64(time.Second))
	}
	if s.InterDomainDelaySeconds > 0 {
		c.InterDomainDelay = time.Duration(s.InterDomainDelaySeconds * float64(time.Second))
	}
	if s.ConfidenceThreshold > 0 {
		c.ConfidenceThreshold = s.ConfidenceThreshold
	}
	if s.Model != "" {
		c.LLMModel = s.Model
	}
	if s.UserAgent != "" {
		c.UserAgent = s.UserAgent
	}
	if len(s.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		for key, value := range s.Headers {
			c.Headers[key] = value
		}
	}
	if len(c.Organizations) == 0 && len(s.Organizations) > 0 {
		c.Organizations = append(c.Organizations, s.Organizations...)
	}
}
