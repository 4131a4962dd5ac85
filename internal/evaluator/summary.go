package evaluator

import (
	"github.com/opencrawl/opencrawl/internal/catalog"
	"github.com/opencrawl/opencrawl/internal/model"
)

// Confidence band boundaries.
const (
	highConfidenceBound   = 0.8
	mediumConfidenceBound = 0.5
)

// buildSummary groups the criterion results by dimension, confidence band,
// pattern type, and criterion type. results and criteria are parallel
// slices in catalog order.
func buildSummary(results []model.CriterionEvaluation, criteria []catalog.CriterionDefinition) model.EvaluationSummary {
	summary := model.EvaluationSummary{
		ByDimension:   make(map[string]model.DimensionStats),
		ByPatternType: make(map[string]int),
	}

	for i, result := range results {
		criterion := criteria[i]

		stats := summary.ByDimension[criterion.Dimension]
		stats.Total++
		if result.Fulfilled {
			stats.Fulfilled++
		}
		summary.ByDimension[criterion.Dimension] = stats

		switch {
		case result.Confidence > highConfidenceBound:
			summary.ByConfidence.High++
		case result.Confidence >= mediumConfidenceBound:
			summary.ByConfidence.Medium++
		default:
			summary.ByConfidence.Low++
		}

		if result.Fulfilled && result.PatternType != "" {
			summary.ByPatternType[result.PatternType]++
		}

		switch criterion.Type {
		case model.CriterionTypeOperational:
			summary.TotalByType.Operational++
			if result.Fulfilled {
				summary.FulfilledByType.Operational++
			}
		case model.CriterionTypeStrategic:
			summary.TotalByType.Strategic++
			if result.Fulfilled {
				summary.FulfilledByType.Strategic++
			}
		}
	}

	for dimension, stats := range summary.ByDimension {
		if stats.Total > 0 {
			stats.Percentage = float64(stats.Fulfilled) / float64(stats.Total) * 100
			summary.ByDimension[dimension] = stats
		}
	}

	return summary
}
