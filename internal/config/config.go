package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/opencrawl/opencrawl/internal/crawler"
	"github.com/opencrawl/opencrawl/internal/model"
)

// Default configuration values.
// Chosen to stay polite towards the crawled sites while keeping a full
// assessment of a typical organization website under a few minutes.
const (
	// DefaultTimeout is the connection timeout per HTTP request.
	// 30 seconds is generous for public websites without stalling the
	// whole run on one dead server.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPages is the page budget per organization including the
	// homepage. Ten pages cover the usual "about / transparency /
	// publications" spread without runaway crawling.
	DefaultMaxPages = 10

	// DefaultIntraDomainDelay is the politeness delay between two
	// requests to the same site.
	DefaultIntraDomainDelay = 1 * time.Second

	// DefaultInterDomainDelay is the pause between two organizations.
	DefaultInterDomainDelay = 2 * time.Second

	// DefaultConfidenceThreshold marks a criterion fulfilled when the
	// catalog does not configure an own threshold.
	DefaultConfidenceThreshold = 0.5

	// DefaultStrategy is the crawl strategy when none is configured.
	// The intelligent strategy degrades to limited without an LLM.
	DefaultStrategy = string(crawler.StrategyIntelligent)

	// AppName is the application name used for XDG directory paths.
	AppName = "opencrawl"

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB is sufficient for HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for opencrawl.
// This struct is designed to be populated from CLI flags and the settings
// file, then passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// Organizations is the list of entities to assess.
	// Must contain at least one entry with a URL.
	Organizations []model.Organization

	// CatalogPath is the path or name of the criteria catalog to load.
	CatalogPath string

	// Strategy is the crawl strategy name; see crawler.ParseStrategy.
	Strategy string

	// MaxPages is the page budget per organization including the
	// homepage.
	MaxPages int

	// Timeout is the connection timeout for each HTTP request.
	Timeout time.Duration

	// IntraDomainDelay is the politeness delay between two requests to
	// the same site. Robots.txt may raise the effective value.
	IntraDomainDelay time.Duration

	// InterDomainDelay is the pause between two organizations.
	InterDomainDelay time.Duration

	// ConfidenceThreshold is the evaluator-wide fallback threshold for
	// criteria without an own threshold.
	ConfidenceThreshold float64

	// CaseSensitive makes heuristic pattern matching case-sensitive.
	CaseSensitive bool

	// Render enables the browser-rendering fetch backend in front of
	// plain HTTP. Requires a local Chrome or Chromium.
	Render bool

	// LLMModel is the chat model used for subpage selection and
	// criterion analysis. The API key comes from the environment.
	LLMModel string

	// NoLLM disables the LLM collaborator even when an API key is set.
	NoLLM bool

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// Headers are additional HTTP headers applied to every request.
	Headers map[string]string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport and CSVReport.
	JSONReport bool

	// MarkdownReport enables GitHub Flavored Markdown report output
	// with tables and fulfillment pie charts.
	MarkdownReport bool

	// CSVReport enables semicolon-delimited CSV report output with one
	// row per criterion, for spreadsheet post-processing.
	CSVReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// SettingsFilePath is the path to the settings file.
	// If empty, the tool searches for .opencrawl in the current
	// directory and then in the user's home directory.
	SettingsFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, delays).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Strategy:            DefaultStrategy,
		MaxPages:            DefaultMaxPages,
		Timeout:             DefaultTimeout,
		IntraDomainDelay:    DefaultIntraDomainDelay,
		InterDomainDelay:    DefaultInterDomainDelay,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		LLMModel:            "",
		UserAgent:           crawler.DefaultUserAgent,
		MaxBodySize:         DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for opencrawl.
// On Linux: ~/.local/share/opencrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for opencrawl.
// On Linux: ~/.config/opencrawl
// Catalogs are looked up here when no explicit path is given.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for opencrawl.
// On Linux: ~/.cache/opencrawl
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// CatalogDir returns the directory searched for criteria catalogs by name.
func CatalogDir() string {
	return filepath.Join(XDGConfigDir(), "catalogs")
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
// The first error found is returned rather than collecting all errors,
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Organizations) == 0 {
		return ErrNoOrganizations
	}

	if _, err := crawler.ParseStrategy(c.Strategy); err != nil {
		return err
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	if c.IntraDomainDelay < 0 || c.InterDomainDelay < 0 {
		return ErrInvalidDelay
	}

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return ErrInvalidThreshold
	}

	formats := 0
	for _, enabled := range []bool{c.JSONReport, c.MarkdownReport, c.CSVReport} {
		if enabled {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
