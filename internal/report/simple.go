package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/opencrawl/opencrawl/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
//  1. It works in all terminals without compatibility issues
//  2. It's easier to pipe to files or other tools
//  3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-criterion justifications in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-criterion justifications.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the evaluation in human-readable format.
func (w *SimpleWriter) Write(evaluation *model.OrganizationEvaluation) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, evaluation)
	w.writeSummary(&sb, evaluation)
	w.writeDimensions(&sb, evaluation)
	w.writeCriteria(&sb, evaluation)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with organization information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, evaluation *model.OrganizationEvaluation) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                     OPENNESS ASSESSMENT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Organization: %s\n", evaluation.OrganizationName)
	fmt.Fprintf(sb, "Website:      %s\n", evaluation.BaseURL)
	sb.WriteString("\n")
}

// writeSummary writes the overall fulfillment section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, evaluation *model.OrganizationEvaluation) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nSUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  Fulfilled:          %d of %d criteria (%.1f%%)\n",
		evaluation.FulfilledCriteria, evaluation.TotalCriteria, evaluation.FulfillmentPercentage)
	fmt.Fprintf(sb, "  Average confidence: %.2f\n", evaluation.AverageConfidence)

	bands := evaluation.Summary.ByConfidence
	fmt.Fprintf(sb, "  Confidence bands:   high %d / medium %d / low %d\n",
		bands.High, bands.Medium, bands.Low)

	types := evaluation.Summary.TotalByType
	fulfilled := evaluation.Summary.FulfilledByType
	fmt.Fprintf(sb, "  Operational:        %d/%d    Strategic: %d/%d\n",
		fulfilled.Operational, types.Operational, fulfilled.Strategic, types.Strategic)
	sb.WriteString("\n")
}

// writeDimensions writes the per-dimension fulfillment section.
func (w *SimpleWriter) writeDimensions(sb *strings.Builder, evaluation *model.OrganizationEvaluation) {
	if len(evaluation.Summary.ByDimension) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nDIMENSIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, dimension := range sortedDimensions(evaluation.Summary.ByDimension) {
		stats := evaluation.Summary.ByDimension[dimension]
		fmt.Fprintf(sb, "  %-30s %d/%d (%.1f%%)\n",
			dimension, stats.Fulfilled, stats.Total, stats.Percentage)
	}
	sb.WriteString("\n")
}

// writeCriteria writes every criterion verdict.
func (w *SimpleWriter) writeCriteria(sb *strings.Builder, evaluation *model.OrganizationEvaluation) {
	if len(evaluation.Results) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nCRITERIA\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, result := range evaluation.Results {
		marker := "[ ]"
		if result.Fulfilled {
			marker = "[x]"
		}
		fmt.Fprintf(sb, "  %s %s (%.2f)\n", marker, result.CriterionName, result.Confidence)
		if result.Fulfilled {
			fmt.Fprintf(sb, "      Source: %s\n", result.SourceURL)
		}
		if w.verbose && result.Justification != "" {
			fmt.Fprintf(sb, "      %s\n", result.Justification)
		}
	}
	sb.WriteString("\n")
}

// sortedDimensions returns the dimension names in stable order.
func sortedDimensions(byDimension map[string]model.DimensionStats) []string {
	dimensions := make([]string, 0, len(byDimension))
	for dimension := range byDimension {
		dimensions = append(dimensions, dimension)
	}
	sort.Strings(dimensions)
	return dimensions
}
