package catalog

import (
	"sort"

	"github.com/opencrawl/opencrawl/internal/model"
)

// Pattern types recognized in criterion definitions.
const (
	// PatternText matches substrings in cleaned page text.
	PatternText = "text"

	// PatternURL matches substrings in page URLs and outbound links.
	PatternURL = "url"

	// PatternLogo matches logo indicator strings in page content.
	PatternLogo = "logo"
)

// Catalog is a complete criteria catalog as loaded from YAML.
type Catalog struct {
	// Metadata describes the catalog itself.
	Metadata Metadata `yaml:"metadata"`

	// Dimensions maps dimension key to its definition.
	Dimensions map[string]Dimension `yaml:"dimensions"`
}

// Metadata holds descriptive information about a catalog.
type Metadata struct {
	// Name is the display name of the catalog.
	Name string `yaml:"name"`

	// Description summarizes what the catalog evaluates.
	Description string `yaml:"description"`

	// Version is a free-form catalog version string.
	Version string `yaml:"version"`

	// OrganizationType names the class of organizations the catalog
	// applies to (e.g. "university", "ngo").
	OrganizationType string `yaml:"organization_type"`
}

// Dimension groups factors under one openness dimension.
type Dimension struct {
	// Name is the display name of the dimension.
	Name string `yaml:"name"`

	// Description summarizes the dimension.
	Description string `yaml:"description"`

	// Factors maps factor key to its definition.
	Factors map[string]Factor `yaml:"factors"`
}

// Factor groups criteria under one factor within a dimension.
type Factor struct {
	// Name is the display name of the factor.
	Name string `yaml:"name"`

	// Description summarizes the factor.
	Description string `yaml:"description"`

	// Criteria maps criterion ID to its definition.
	Criteria map[string]Criterion `yaml:"criteria"`
}

// Criterion is a single testable statement of openness.
type Criterion struct {
	// Name is the display name of the criterion.
	Name string `yaml:"name"`

	// Description explains what evidence fulfills the criterion.
	Description string `yaml:"description"`

	// Type is "operational" or "strategic".
	Type string `yaml:"type"`

	// Patterns maps pattern type ("text", "url", "logo") to an ordered
	// list of pattern strings.
	Patterns map[string][]string `yaml:"patterns"`

	// Weight is the relative weight of the criterion. Defaults to 1.0.
	Weight float64 `yaml:"weight"`

	// ConfidenceThreshold is the minimum confidence required to mark the
	// criterion fulfilled. Zero means use the evaluator-wide default.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// CriterionDefinition is a criterion flattened out of the catalog hierarchy
// with its dimension and factor context attached. This is the shape the
// evaluation engine works with.
type CriterionDefinition struct {
	// ID is the criterion key from the catalog.
	ID string

	// Dimension is the parent dimension key.
	Dimension string

	// Factor is the parent factor key.
	Factor string

	// Name is the display name of the criterion.
	Name string

	// Description explains what evidence fulfills the criterion.
	Description string

	// Type is "operational" or "strategic".
	Type string

	// Patterns maps pattern type to its ordered pattern list.
	Patterns map[string][]string

	// Weight is the relative weight of the criterion.
	Weight float64

	// ConfidenceThreshold is the per-criterion threshold, zero if unset.
	ConfidenceThreshold float64
}

// AllPatterns returns every pattern string across all pattern types.
// Used as keyword hints for the LLM criterion analysis.
func (d *CriterionDefinition) AllPatterns() []string {
	patterns := make([]string, 0)
	for _, patternType := range []string{PatternText, PatternURL, PatternLogo} {
		patterns = append(patterns, d.Patterns[patternType]...)
	}
	return patterns
}

// Criteria flattens the catalog into an ordered criterion list.
//
// Design decision: Go map iteration order is randomized, so we sort by
// dimension, factor, and criterion key. The evaluation engine and the
// reports need a stable order across runs.
func (c *Catalog) Criteria() []CriterionDefinition {
	criteria := make([]CriterionDefinition, 0, c.CountCriteria())

	for _, dimKey := range sortedKeys(c.Dimensions) {
		dimension := c.Dimensions[dimKey]
		for _, factorKey := range sortedKeys(dimension.Factors) {
			factor := dimension.Factors[factorKey]
			for _, id := range sortedKeys(factor.Criteria) {
				criterion := factor.Criteria[id]
				weight := criterion.Weight
				if weight == 0 {
					weight = 1.0
				}
				criteria = append(criteria, CriterionDefinition{
					ID:                  id,
					Dimension:           dimKey,
					Factor:              factorKey,
					Name:                criterion.Name,
					Description:         criterion.Description,
					Type:                criterion.Type,
					Patterns:            criterion.Patterns,
					Weight:              weight,
					ConfidenceThreshold: criterion.ConfidenceThreshold,
				})
			}
		}
	}

	return criteria
}

// CountCriteria returns the total number of criteria in the catalog.
func (c *Catalog) CountCriteria() int {
	total := 0
	for _, dimension := range c.Dimensions {
		for _, factor := range dimension.Factors {
			total += len(factor.Criteria)
		}
	}
	return total
}

// CriteriaNames returns the display names of all criteria in flattened
// order. Used by the intelligent crawl strategy to describe the evaluation
// goals to the LLM.
func (c *Catalog) CriteriaNames() []string {
	criteria := c.Criteria()
	names := make([]string, 0, len(criteria))
	for _, criterion := range criteria {
		names = append(names, criterion.Name)
	}
	return names
}

// ValidTypes returns the accepted criterion type values.
func ValidTypes() []string {
	return []string{model.CriterionTypeOperational, model.CriterionTypeStrategic}
}

// ValidPatternTypes returns the accepted pattern type keys.
func ValidPatternTypes() []string {
	return []string{PatternText, PatternURL, PatternLogo}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
