package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sample returns a minimal example catalog for the given organization type.
// It carries a single annual-report criterion that demonstrates the text and
// url pattern types and a lowered confidence threshold.
func Sample(organizationType string) *Catalog {
	return &Catalog{
		Metadata: Metadata{
			Name:             fmt.Sprintf("%s openness criteria", organizationType),
			Description:      fmt.Sprintf("Criteria catalog for %s organizations", organizationType),
			Version:          "1.0",
			OrganizationType: organizationType,
		},
		Dimensions: map[string]Dimension{
			"transparency": {
				Name:        "Transparency",
				Description: "Openness and transparency of the organization",
				Factors: map[string]Factor{
					"financial_transparency": {
						Name:        "Financial transparency",
						Description: "Publication of financial information",
						Criteria: map[string]Criterion{
							"annual_report": {
								Name:        "Annual report available",
								Description: "The organization publishes an annual report",
								Type:        "operational",
								Patterns: map[string][]string{
									PatternText: {"jahresbericht", "annual report", "geschäftsbericht"},
									PatternURL:  {"/jahresbericht", "/annual-report", "/finanzen"},
								},
								Weight:              1.0,
								ConfidenceThreshold: 0.3,
							},
						},
					},
				},
			},
		},
	}
}

// WriteSample writes a sample catalog to dir under the given name,
// creating the directory if needed. It refuses to overwrite existing files.
func WriteSample(dir, name, organizationType string) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create catalog directory: %w", err)
	}

	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("catalog already exists: %s", path)
	}

	data, err := yaml.Marshal(Sample(organizationType))
	if err != nil {
		return "", fmt.Errorf("failed to encode sample catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write sample catalog: %w", err)
	}

	return path, nil
}
