package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Default client settings. The analysis temperature is deliberately low so
// repeated runs over the same pages stay comparable.
const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultBaseURL targets the OpenAI API; any compatible endpoint works.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTemperature keeps verdicts consistent across runs.
	DefaultTemperature = 0.3

	// DefaultMaxTokens bounds a single completion.
	DefaultMaxTokens = 2048

	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 30 * time.Second

	// MaxCandidates caps the subpage list sent for selection, keeping the
	// prompt within token limits.
	MaxCandidates = 50

	// MaxContentLength caps the page text sent for criterion analysis.
	MaxContentLength = 3000
)

// ErrEmptySelection is returned when the LLM answered but selected no URLs.
// Callers treat it like any other selection failure and fall back.
var ErrEmptySelection = errors.New("llm returned an empty subpage selection")

// Config holds the settings for the LLM client.
type Config struct {
	// APIKey authenticates against the API. Required.
	APIKey string

	// BaseURL is the API endpoint. Defaults to the OpenAI API.
	BaseURL string

	// Model is the chat model name.
	Model string

	// Temperature controls sampling randomness.
	Temperature float32

	// MaxTokens bounds a single completion.
	MaxTokens int

	// Timeout bounds a single API call.
	Timeout time.Duration
}

// FromEnv builds a Config from OPENAI_API_KEY and OPENAI_BASE_URL.
// Returns false when no API key is set, meaning LLM features are disabled.
func FromEnv(model string) (Config, bool) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return Config{}, false
	}

	cfg := Config{APIKey: apiKey, Model: model}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return cfg, true
}

// Client is the LLM collaborator for subpage selection and criterion
// analysis. It is injected explicitly into the crawler and the evaluation
// engine so tests can substitute deterministic stubs.
type Client struct {
	api   *openai.Client
	model string

	temperature float32
	maxTokens   int
	timeout     time.Duration
}

// NewClient creates a Client from the given configuration, applying
// defaults for unset fields.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}
}

// SelectSubpages implements the subpage-selection contract: it asks the
// model to rank the most promising candidates for the given criteria.
// Any transport or decoding failure is returned as an error; the caller
// falls back to the first MaxPages candidates deterministically.
func (c *Client) SelectSubpages(ctx context.Context, req SubpageRequest) (*SubpageSelection, error) {
	if len(req.Candidates) > MaxCandidates {
		req.Candidates = req.Candidates[:MaxCandidates]
	}

	raw, err := c.complete(ctx, selectionSystemPrompt, buildSelectionPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("subpage selection failed: %w", err)
	}

	var selection SubpageSelection
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &selection); err != nil {
		return nil, fmt.Errorf("malformed subpage selection response: %w", err)
	}

	if len(selection.SelectedURLs) == 0 {
		return nil, ErrEmptySelection
	}
	if len(selection.SelectedURLs) > req.MaxPages {
		selection.SelectedURLs = selection.SelectedURLs[:req.MaxPages]
	}

	return &selection, nil
}

// AnalyzeCriterion implements the criterion-analysis contract: it submits a
// bounded content excerpt plus the criterion metadata and expects a
// structured verdict. Callers treat any error as an absent signal.
func (c *Client) AnalyzeCriterion(ctx context.Context, req AnalysisRequest) (*Analysis, error) {
	if len(req.Content) > MaxContentLength {
		req.Content = req.Content[:MaxContentLength] + "..."
	}

	raw, err := c.complete(ctx, analysisSystemPrompt, buildAnalysisPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("criterion analysis failed: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("malformed criterion analysis response: %w", err)
	}

	analysis.Confidence = clamp01(analysis.Confidence)
	return &analysis, nil
}

// TestConnection performs a minimal completion to verify the API endpoint
// and credentials work.
func (c *Client) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Test connection. Respond with OK."},
		},
		MaxTokens: 10,
	})
	if err != nil {
		return fmt.Errorf("llm connection test failed: %w", err)
	}
	return nil
}

// complete issues a JSON-mode chat completion and returns the raw message
// content.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}

// cleanJSON strips markdown code fences some models wrap around JSON
// despite JSON response mode.
func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
