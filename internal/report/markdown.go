package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/opencrawl/opencrawl/internal/model"
)

// MarkdownWriter outputs evaluations in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts and mermaid charts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the evaluation in Markdown format.
func (w *MarkdownWriter) Write(evaluation *model.OrganizationEvaluation) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, evaluation)
	w.writeSummary(md, evaluation)
	w.writeDimensions(md, evaluation)
	w.writeCriteria(md, evaluation)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with organization information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, evaluation *model.OrganizationEvaluation) {
	md.H1("Openness Assessment: " + evaluation.OrganizationName)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Organization", evaluation.OrganizationName},
			{"Website", evaluation.BaseURL},
			{"Criteria evaluated", strconv.Itoa(evaluation.TotalCriteria)},
			{"Fulfilled", fmt.Sprintf("%d (%.1f%%)", evaluation.FulfilledCriteria, evaluation.FulfillmentPercentage)},
			{"Average confidence", fmt.Sprintf("%.2f", evaluation.AverageConfidence)},
		},
	})
	md.PlainText("")
}

// writeSummary writes the aggregate section with a fulfillment pie chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, evaluation *model.OrganizationEvaluation) {
	md.H2("Summary")
	md.PlainText("")

	bands := evaluation.Summary.ByConfidence
	types := evaluation.Summary.TotalByType
	fulfilled := evaluation.Summary.FulfilledByType

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"High confidence (>0.8)", strconv.Itoa(bands.High)},
			{"Medium confidence (0.5–0.8)", strconv.Itoa(bands.Medium)},
			{"Low confidence (<0.5)", strconv.Itoa(bands.Low)},
			{"Operational criteria", fmt.Sprintf("%d/%d", fulfilled.Operational, types.Operational)},
			{"Strategic criteria", fmt.Sprintf("%d/%d", fulfilled.Strategic, types.Strategic)},
		},
	})
	md.PlainText("")

	if evaluation.TotalCriteria > 0 {
		w.writePieChart(md, evaluation)
	}
}

// writePieChart writes a mermaid pie chart of the fulfillment split.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, evaluation *model.OrganizationEvaluation) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Criteria Fulfillment"),
		piechart.WithShowData(true),
	)

	if evaluation.FulfilledCriteria > 0 {
		chart.LabelAndIntValue("Fulfilled", uint64(evaluation.FulfilledCriteria))
	}
	if open := evaluation.TotalCriteria - evaluation.FulfilledCriteria; open > 0 {
		chart.LabelAndIntValue("Not fulfilled", uint64(open))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeDimensions writes the per-dimension fulfillment table.
func (w *MarkdownWriter) writeDimensions(md *markdown.Markdown, evaluation *model.OrganizationEvaluation) {
	if len(evaluation.Summary.ByDimension) == 0 {
		return
	}

	md.H2("Dimensions")
	md.PlainText("")

	rows := make([][]string, 0, len(evaluation.Summary.ByDimension))
	for _, dimension := range sortedDimensions(evaluation.Summary.ByDimension) {
		stats := evaluation.Summary.ByDimension[dimension]
		rows = append(rows, []string{
			dimension,
			fmt.Sprintf("%d/%d", stats.Fulfilled, stats.Total),
			fmt.Sprintf("%.1f%%", stats.Percentage),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Dimension", "Fulfilled", "Percentage"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCriteria writes every criterion verdict as a table.
func (w *MarkdownWriter) writeCriteria(md *markdown.Markdown, evaluation *model.OrganizationEvaluation) {
	if len(evaluation.Results) == 0 {
		return
	}

	md.H2("Criteria")
	md.PlainText("")

	rows := make([][]string, 0, len(evaluation.Results))
	for _, result := range evaluation.Results {
		status := "❌"
		if result.Fulfilled {
			status = "✅"
		}
		source := result.PatternType
		if source == "" {
			source = "-"
		}
		rows = append(rows, []string{
			status,
			result.CriterionName,
			fmt.Sprintf("%.2f", result.Confidence),
			source,
			result.SourceURL,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Criterion", "Confidence", "Evidence", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
}
