package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencrawl/opencrawl/internal/config"
	"github.com/opencrawl/opencrawl/internal/log"
	"github.com/opencrawl/opencrawl/internal/model"
	"github.com/opencrawl/opencrawl/internal/report"
)

// TestAssessIntegration runs a full assessment against a local test site
// and checks the JSON report and statistics output.
func TestAssessIntegration(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><head><title>Example</title></head>
<body>
<p>Unser Jahresbericht 2025 ist online.</p>
<a href="/about">About</a>
</body></html>`))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Kontakt und Impressum.</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "criteria.yaml")
	catalogContent := `metadata:
  name: Integration catalog
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
            confidence_threshold: 0.3
            patterns:
              text: ["jahresbericht"]
`
	if err := os.WriteFile(catalogPath, []byte(catalogContent), 0600); err != nil {
		t.Fatal(err)
	}

	reportPath := filepath.Join(dir, "report.json")
	statsPath := filepath.Join(dir, "stats.json")

	cfg := config.NewConfig()
	cfg.Organizations = []model.Organization{{Name: "Integration Org", URL: server.URL}}
	cfg.CatalogPath = catalogPath
	cfg.Strategy = "limited"
	cfg.MaxPages = 2
	cfg.Timeout = 5 * time.Second
	cfg.IntraDomainDelay = 0
	cfg.InterDomainDelay = 0
	cfg.NoLLM = true
	cfg.JSONReport = true
	cfg.ReportFile = reportPath

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := log.NewSecureLogger(os.Stderr, false)
	if err := runAssess(ctx, cfg, statsPath, logger); err != nil {
		t.Fatalf("runAssess() error = %v", err)
	}

	t.Run("JSON report carries the verdict", func(t *testing.T) {
		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		var wrapped report.JSONReport
		if err := json.Unmarshal(data, &wrapped); err != nil {
			t.Fatalf("invalid report JSON: %v", err)
		}
		if wrapped.Evaluation == nil {
			t.Fatal("expected evaluation in report")
		}
		if wrapped.Evaluation.OrganizationName != "Integration Org" {
			t.Errorf("OrganizationName = %q", wrapped.Evaluation.OrganizationName)
		}
		if wrapped.Evaluation.FulfilledCriteria != 1 {
			t.Errorf("FulfilledCriteria = %d, want 1", wrapped.Evaluation.FulfilledCriteria)
		}
	})

	t.Run("statistics summarize the run", func(t *testing.T) {
		data, err := os.ReadFile(statsPath)
		if err != nil {
			t.Fatalf("failed to read statistics: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid statistics JSON: %v", err)
		}
		if decoded["catalog_name"] != "Integration catalog" {
			t.Errorf("catalog_name = %v", decoded["catalog_name"])
		}
	})
}
