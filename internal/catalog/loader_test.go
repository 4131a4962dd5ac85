package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const validCatalogYAML = `
metadata:
  name: Test criteria
  description: Catalog for tests
  version: "1.0"
  organization_type: ngo
dimensions:
  transparency:
    name: Transparency
    factors:
      finances:
        name: Finances
        criteria:
          annual_report:
            name: Annual report available
            description: Publishes an annual report
            type: operational
            patterns:
              text: ["jahresbericht", "annual report"]
              url: ["/annual-report"]
            confidence_threshold: 0.3
          budget:
            name: Budget published
            description: Publishes the budget
            type: strategic
  participation:
    name: Participation
    factors:
      community:
        name: Community
        criteria:
          open_meetings:
            name: Open meetings
            description: Holds open meetings
            type: operational
            patterns:
              text: ["open meeting"]
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads valid catalog", func(t *testing.T) {
		t.Parallel()

		c, err := Load(writeCatalog(t, validCatalogYAML))
		if err != nil {
			t.Fatalf("failed to load catalog: %v", err)
		}

		if c.Metadata.OrganizationType != "ngo" {
			t.Errorf("expected organization type ngo, got %q", c.Metadata.OrganizationType)
		}
		if got := c.CountCriteria(); got != 3 {
			t.Errorf("expected 3 criteria, got %d", got)
		}
	})

	t.Run("missing file returns ErrCatalogNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrCatalogNotFound) {
			t.Errorf("expected ErrCatalogNotFound, got %v", err)
		}
	})

	t.Run("missing metadata is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Load(writeCatalog(t, "dimensions: {}\n"))
		if !errors.Is(err, ErrMissingMetadata) {
			t.Errorf("expected ErrMissingMetadata, got %v", err)
		}
	})

	t.Run("invalid criterion type is rejected", func(t *testing.T) {
		t.Parallel()

		bad := `
metadata:
  name: Bad
  organization_type: ngo
dimensions:
  d:
    factors:
      f:
        criteria:
          c:
            name: C
            description: D
            type: aspirational
`
		_, err := Load(writeCatalog(t, bad))
		if !errors.Is(err, ErrInvalidCriterionType) {
			t.Errorf("expected ErrInvalidCriterionType, got %v", err)
		}
	})

	t.Run("empty dimensions are valid", func(t *testing.T) {
		t.Parallel()

		c, err := Load(writeCatalog(t, "metadata:\n  name: Empty\n  organization_type: ngo\n"))
		if err != nil {
			t.Fatalf("expected empty catalog to load, got %v", err)
		}
		if got := c.CountCriteria(); got != 0 {
			t.Errorf("expected 0 criteria, got %d", got)
		}
		if got := len(c.Criteria()); got != 0 {
			t.Errorf("expected empty criterion list, got %d entries", got)
		}
	})
}

// TestCriteriaOrder verifies the flattening order is deterministic and
// sorted by dimension, factor, and criterion key.
func TestCriteriaOrder(t *testing.T) {
	t.Parallel()

	c, err := Load(writeCatalog(t, validCatalogYAML))
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	var ids []string
	for _, def := range c.Criteria() {
		ids = append(ids, def.ID)
	}

	want := []string{"open_meetings", "annual_report", "budget"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("criterion order mismatch (-want +got):\n%s", diff)
	}

	// A second flattening must yield the same order.
	var again []string
	for _, def := range c.Criteria() {
		again = append(again, def.ID)
	}
	if diff := cmp.Diff(ids, again); diff != "" {
		t.Errorf("flattening is not deterministic (-first +second):\n%s", diff)
	}
}

func TestCriterionDefaults(t *testing.T) {
	t.Parallel()

	c, err := Load(writeCatalog(t, validCatalogYAML))
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	for _, def := range c.Criteria() {
		if def.ID == "budget" {
			if def.Weight != 1.0 {
				t.Errorf("expected default weight 1.0, got %v", def.Weight)
			}
			if def.ConfidenceThreshold != 0 {
				t.Errorf("expected unset threshold to stay 0, got %v", def.ConfidenceThreshold)
			}
		}
		if def.ID == "annual_report" && def.ConfidenceThreshold != 0.3 {
			t.Errorf("expected threshold 0.3, got %v", def.ConfidenceThreshold)
		}
	}
}

func TestAllPatterns(t *testing.T) {
	t.Parallel()

	def := CriterionDefinition{
		Patterns: map[string][]string{
			PatternURL:  {"/annual-report"},
			PatternText: {"jahresbericht", "annual report"},
		},
	}

	want := []string{"jahresbericht", "annual report", "/annual-report"}
	if diff := cmp.Diff(want, def.AllPatterns()); diff != "" {
		t.Errorf("pattern flattening mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSample(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := WriteSample(dir, "ngo", "ngo")
	if err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("sample catalog does not load: %v", err)
	}
	if c.CountCriteria() != 1 {
		t.Errorf("expected 1 criterion in sample, got %d", c.CountCriteria())
	}

	// Second write must refuse to overwrite.
	if _, err := WriteSample(dir, "ngo", "ngo"); err == nil {
		t.Error("expected error when sample already exists")
	}

	names, err := Available(dir)
	if err != nil {
		t.Fatalf("failed to list catalogs: %v", err)
	}
	if len(names) != 1 || names[0] != "ngo" {
		t.Errorf("expected [ngo], got %v", names)
	}
}
