package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opencrawl/opencrawl/internal/catalog"
	"github.com/opencrawl/opencrawl/internal/config"
	"github.com/opencrawl/opencrawl/internal/crawler"
	"github.com/opencrawl/opencrawl/internal/evaluator"
	"github.com/opencrawl/opencrawl/internal/llm"
	"github.com/opencrawl/opencrawl/internal/log"
	"github.com/opencrawl/opencrawl/internal/model"
	"github.com/opencrawl/opencrawl/internal/pipeline"
	"github.com/opencrawl/opencrawl/internal/report"
	"github.com/opencrawl/opencrawl/internal/stats"
)

// NewAssessCmd creates the assess command.
func NewAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess [url...]",
		Short: "Assess the openness of organization websites",
		Long: `Assess crawls each organization's public website and checks the pages
against a criteria catalog.

For every organization it:
- Fetches the homepage and selects subpages by the configured strategy
- Waits politely between requests and honors robots.txt crawl delays
- Matches page text, URLs, and logos against the catalog's patterns
- Optionally asks a language model to judge criteria semantically
- Reports fulfilled criteria with confidence scores and evidence

Examples:
  # Assess a single organization
  opencrawl assess --catalog criteria.yaml https://example.org

  # Assess a list of organizations from a CSV file (name;url per line)
  opencrawl assess --catalog university --list organizations.csv

  # Homepage only, Markdown report to a file
  opencrawl assess -c criteria.yaml --strategy homepage_only -m -o report.md https://example.org

  # Heuristics only, even if an API key is set
  opencrawl assess -c criteria.yaml --no-llm https://example.org

Settings file (.opencrawl) example:
  catalog: university
  strategy: intelligent
  max_pages: 10
  organizations:
    - name: Example e.V.
      url: https://example.org`,
		Args: cobra.ArbitraryArgs,
		RunE: runAssessCmd,
	}

	// Catalog and organization input
	cmd.Flags().StringP("catalog", "c", "",
		"Criteria catalog: a YAML file path or a catalog name in the XDG catalog directory")
	cmd.Flags().StringP("list", "l", "",
		"CSV file with organizations to assess (name;url per line)")
	cmd.Flags().String("settings", "",
		"Settings file path (default: .opencrawl in current or home directory)")

	// Crawl behavior flags
	cmd.Flags().StringP("strategy", "s", config.DefaultStrategy,
		"Crawl strategy: homepage_only, all_pages, limited, or intelligent")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to crawl per organization (including the homepage)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().Duration("delay", config.DefaultIntraDomainDelay,
		"Politeness delay between requests to the same site")
	cmd.Flags().Duration("org-delay", config.DefaultInterDomainDelay,
		"Pause between two organizations")
	cmd.Flags().StringP("user-agent", "A", crawler.DefaultUserAgent,
		"User-Agent header sent with HTTP requests")
	cmd.Flags().Bool("render", false,
		"Render pages in a headless browser before extraction (requires Chrome)")

	// Evaluation flags
	cmd.Flags().Float64("threshold", config.DefaultConfidenceThreshold,
		"Confidence threshold for criteria without an own threshold")
	cmd.Flags().Bool("case-sensitive", false,
		"Match text patterns case-sensitively")
	cmd.Flags().String("model", "",
		"Chat model for subpage selection and analysis (default: "+llm.DefaultModel+")")
	cmd.Flags().Bool("no-llm", false,
		"Disable the language model even when an API key is set")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --csv)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --csv)")
	cmd.Flags().Bool("csv", false,
		"Output CSV report, one row per criterion (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("stats", "",
		"Write cross-organization statistics as JSON to the given file (\"-\" for stdout)")

	return cmd
}

// runAssessCmd executes the assess command.
func runAssessCmd(cmd *cobra.Command, args []string) error {
	// Build config from settings file and flags
	cfg, err := buildAssessConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential sanitization
	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	statsPath, err := cmd.Flags().GetString("stats")
	if err != nil {
		return err
	}

	return runAssess(ctx, cfg, statsPath, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildAssessConfig creates a Config from the settings file and cobra flags.
// Settings file values override the defaults; flags the user actually set
// override the settings file.
func buildAssessConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	settingsPath, err := cmd.Flags().GetString("settings")
	if err != nil {
		return nil, err
	}
	cfg.SettingsFilePath = settingsPath

	// Load the settings file.
	// If the user explicitly specified a path, error if not found.
	// If no path specified, silently continue without settings.
	foundPath := config.FindSettingsFile(settingsPath)
	if foundPath != "" {
		settings, err := config.LoadSettingsFile(foundPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", foundPath, err)
		}
		settings.Apply(cfg)
	} else if settingsPath != "" {
		return nil, fmt.Errorf("settings file not found: %s", settingsPath)
	}

	if err := applyAssessFlags(cmd, cfg); err != nil {
		return nil, err
	}

	// Organizations from the CSV list, then positional URLs.
	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}
	if listPath != "" {
		organizations, err := config.LoadOrganizationsCSV(listPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load organization list %s: %w", listPath, err)
		}
		cfg.Organizations = organizations
	}
	for _, arg := range args {
		cfg.Organizations = append(cfg.Organizations, model.Organization{
			Name: organizationNameFromURL(arg),
			URL:  arg,
		})
	}

	return cfg, nil
}

// applyAssessFlags overrides config values with flags the user set.
// Unchanged flags keep whatever the settings file or the defaults say.
func applyAssessFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("catalog") || cfg.CatalogPath == "" {
		if cfg.CatalogPath, err = flags.GetString("catalog"); err != nil {
			return err
		}
	}
	if flags.Changed("strategy") {
		if cfg.Strategy, err = flags.GetString("strategy"); err != nil {
			return err
		}
	}
	if flags.Changed("max-pages") {
		if cfg.MaxPages, err = flags.GetInt("max-pages"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("delay") {
		if cfg.IntraDomainDelay, err = flags.GetDuration("delay"); err != nil {
			return err
		}
	}
	if flags.Changed("org-delay") {
		if cfg.InterDomainDelay, err = flags.GetDuration("org-delay"); err != nil {
			return err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return err
		}
	}
	if flags.Changed("threshold") {
		if cfg.ConfidenceThreshold, err = flags.GetFloat64("threshold"); err != nil {
			return err
		}
	}
	if flags.Changed("model") {
		if cfg.LLMModel, err = flags.GetString("model"); err != nil {
			return err
		}
	}

	if cfg.CaseSensitive, err = flags.GetBool("case-sensitive"); err != nil {
		return err
	}
	if cfg.Render, err = flags.GetBool("render"); err != nil {
		return err
	}
	if cfg.NoLLM, err = flags.GetBool("no-llm"); err != nil {
		return err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if cfg.CSVReport, err = flags.GetBool("csv"); err != nil {
		return err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return err
	}

	return nil
}

// organizationNameFromURL derives a display name from a bare URL argument.
func organizationNameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err == nil && parsed.Host != "" {
		return strings.TrimPrefix(parsed.Host, "www.")
	}
	return rawURL
}

// runAssess executes the assessment.
func runAssess(ctx context.Context, cfg *config.Config, statsPath string, logger *slog.Logger) error {
	if cfg.CatalogPath == "" {
		return errors.New("no criteria catalog specified (use --catalog or the settings file)")
	}

	// Load the criteria catalog by path or by name from the XDG directory.
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	criteria := cat.Criteria()
	criteriaNames := cat.CriteriaNames()

	logger.Info("starting assessment",
		"organizations", len(cfg.Organizations),
		"catalog", cat.Metadata.Name,
		"criteria", len(criteria),
		"strategy", cfg.Strategy,
	)

	// The LLM collaborator is optional: without an API key (or with
	// --no-llm) subpage selection and evaluation fall back to the
	// deterministic heuristics.
	var client *llm.Client
	if !cfg.NoLLM {
		if llmCfg, ok := llm.FromEnv(cfg.LLMModel); ok {
			client = llm.NewClient(llmCfg)
			logger.Info("language model enabled", "model", cfg.LLMModel)
		} else {
			logger.Info("no API key found, using heuristics only")
		}
	}

	crawlerInstance := buildCrawler(cfg, client, logger)
	engine := buildEngine(cfg, client, logger)

	runner := pipeline.NewRunner(
		func() *pipeline.Pipeline {
			p := pipeline.New(
				pipeline.WithLogger(logger),
			)
			p.AddSteps(
				pipeline.NewCrawlStep(crawlerInstance, criteriaNames),
				pipeline.NewEvaluateStep(engine, criteria),
			)
			return p
		},
		pipeline.WithRunnerLogger(logger),
		pipeline.WithInterOrganizationDelay(cfg.InterDomainDelay),
	)

	writer, closeOutput, err := buildReportWriter(cfg)
	if err != nil {
		return err
	}
	defer closeOutput()

	total := len(cfg.Organizations)
	runs, runErr := runner.ProcessWithCallback(ctx, cfg.Organizations, func(run *pipeline.Run, index int) {
		if run.Err != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] Assessment failed: %s: %v\n",
				index+1, total, run.Organization.Name, run.Err)
			return
		}
		if run.Evaluation == nil {
			return
		}

		fmt.Printf("[%d/%d] Assessment completed: %s (%.1f%% fulfilled)\n",
			index+1, total, run.Organization.Name, run.Evaluation.FulfillmentPercentage)

		if _, err := writer.Write(run.Evaluation); err != nil {
			logger.Error("report failed", "organization", run.Organization.Name, "error", err)
		}
	})

	if len(runs) > 1 {
		printRunSummary(cat.Metadata.Name, runs)
	}
	if err := writeStats(statsPath, cat.Metadata.Name, runs); err != nil {
		logger.Error("statistics failed", "error", err)
	}

	return runErr
}

// printRunSummary prints a short cross-organization summary after a
// multi-organization run.
func printRunSummary(catalogName string, runs []*pipeline.Run) {
	statsReport := stats.Collect(catalogName, runCrawls(runs), runEvaluations(runs))

	fmt.Printf("\nAssessed %d organizations (%d/%d crawls successful, %d pages fetched)\n",
		statsReport.Crawl.TotalOrganizations,
		statsReport.Crawl.SuccessfulCrawls,
		statsReport.Crawl.TotalOrganizations,
		statsReport.Crawl.SuccessfulPages)

	if len(statsReport.TopPerformers) > 0 {
		best := statsReport.TopPerformers[0]
		fmt.Printf("Best performer: %s (%.1f%% fulfilled)\n", best.Organization, best.Percentage)
	}
	if statsReport.StrongestDimension != "" {
		fmt.Printf("Strongest dimension: %s, weakest: %s\n",
			statsReport.StrongestDimension, statsReport.WeakestDimension)
	}
	if statsReport.ManualReviewNeeded > 0 {
		fmt.Printf("%d verdicts below confidence %.1f need manual review\n",
			statsReport.ManualReviewNeeded, stats.ManualReviewBar)
	}
}

// loadCatalog resolves the catalog argument: an existing file path is
// loaded directly, anything else is treated as a catalog name in the XDG
// catalog directory.
func loadCatalog(pathOrName string) (*catalog.Catalog, error) {
	if _, err := os.Stat(pathOrName); err == nil {
		return catalog.Load(pathOrName)
	}
	if strings.ContainsRune(pathOrName, os.PathSeparator) {
		return catalog.Load(pathOrName)
	}
	return catalog.LoadByName(config.CatalogDir(), pathOrName)
}

// buildCrawler wires the fetch chain, the strategy selector, and the
// politeness settings into a crawler.
func buildCrawler(cfg *config.Config, client *llm.Client, logger *slog.Logger) *crawler.Crawler {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	fetcherOpts := []crawler.HTTPFetcherOption{
		crawler.WithUserAgent(cfg.UserAgent),
	}
	if len(cfg.Headers) > 0 {
		fetcherOpts = append(fetcherOpts, crawler.WithHeaders(cfg.Headers))
	}
	if cfg.MaxBodySize > 0 {
		fetcherOpts = append(fetcherOpts, crawler.WithMaxBodySize(cfg.MaxBodySize))
	}

	var fetcher crawler.Fetcher = crawler.NewHTTPFetcher(httpClient, fetcherOpts...)
	if cfg.Render {
		// Try the rendered DOM first, plain HTTP when the browser fails.
		fetcher = crawler.NewFallbackFetcher(crawler.NewRenderFetcher(), fetcher)
	}

	// Validate() already checked the strategy name.
	strategy, _ := crawler.ParseStrategy(cfg.Strategy) //nolint:errcheck // Validated earlier

	var subpages crawler.SubpageSelector
	if client != nil {
		subpages = client
	}
	selector := crawler.NewSelector(strategy, cfg.MaxPages, subpages, logger)

	return crawler.New(fetcher, selector,
		crawler.WithIntraDomainDelay(cfg.IntraDomainDelay),
		crawler.WithCrawlerUserAgent(cfg.UserAgent),
		crawler.WithRobotsClient(httpClient),
		crawler.WithLogger(logger),
		crawler.WithStatusFunc(func(message string) {
			fmt.Printf("  %s\n", message)
		}),
	)
}

// buildEngine wires the evaluation engine with the optional semantic
// analyzer.
func buildEngine(cfg *config.Config, client *llm.Client, logger *slog.Logger) *evaluator.Engine {
	opts := []evaluator.EngineOption{
		evaluator.WithDefaultThreshold(cfg.ConfidenceThreshold),
		evaluator.WithEngineLogger(logger),
	}
	if cfg.CaseSensitive {
		opts = append(opts, evaluator.WithCaseSensitiveMatching())
	}

	var semantic evaluator.SemanticAnalyzer
	if client != nil {
		semantic = client
	}
	return evaluator.NewEngine(semantic, opts...)
}

// buildReportWriter creates the report writer in the requested format and
// resolves the output destination. The returned close function flushes the
// output file, if any.
func buildReportWriter(cfg *config.Config) (report.Writer, func(), error) {
	output := os.Stdout
	closeOutput := func() {}

	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		output = f
		closeOutput = func() { _ = f.Close() } //nolint:errcheck // Best effort cleanup
	}

	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint()), closeOutput, nil
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output), closeOutput, nil
	case cfg.CSVReport:
		return report.NewCSVWriter(output), closeOutput, nil
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose)), closeOutput, nil
	}
}

// runCrawls extracts the crawl results from the runs in order.
func runCrawls(runs []*pipeline.Run) []*model.OrganizationCrawlResult {
	crawls := make([]*model.OrganizationCrawlResult, 0, len(runs))
	for _, run := range runs {
		crawls = append(crawls, run.Crawl)
	}
	return crawls
}

// runEvaluations extracts the evaluations from the runs in order.
func runEvaluations(runs []*pipeline.Run) []*model.OrganizationEvaluation {
	evaluations := make([]*model.OrganizationEvaluation, 0, len(runs))
	for _, run := range runs {
		evaluations = append(evaluations, run.Evaluation)
	}
	return evaluations
}

// writeStats collects cross-organization statistics and writes them as
// JSON. An empty path disables statistics output.
func writeStats(path, catalogName string, runs []*pipeline.Run) error {
	if path == "" {
		return nil
	}

	statsReport := stats.Collect(catalogName, runCrawls(runs), runEvaluations(runs))

	output := os.Stdout
	if path != "-" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create statistics file: %w", err)
		}
		defer f.Close()
		output = f
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(statsReport)
}
