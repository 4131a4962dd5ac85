package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/opencrawl/opencrawl/internal/model"
)

// CSVWriter outputs evaluations as semicolon-delimited rows, one row per
// criterion. The delimiter matches the organization import format so the
// files round-trip through the same spreadsheet setup.
type CSVWriter struct {
	baseWriter

	// wroteHeader tracks whether the column header was already emitted,
	// so multiple evaluations written to one destination share a header.
	wroteHeader bool
}

// csvHeader is the column header row.
var csvHeader = []string{
	"organization",
	"criterion_id",
	"criterion_name",
	"fulfilled",
	"confidence",
	"pattern_type",
	"source_url",
	"justification",
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs one row per criterion evaluation.
func (w *CSVWriter) Write(evaluation *model.OrganizationEvaluation) (int, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = ';'

	if !w.wroteHeader {
		if err := cw.Write(csvHeader); err != nil {
			return 0, err
		}
		w.wroteHeader = true
	}

	for _, result := range evaluation.Results {
		record := []string{
			evaluation.OrganizationName,
			result.CriterionID,
			result.CriterionName,
			strconv.FormatBool(result.Fulfilled),
			fmt.Sprintf("%.2f", result.Confidence),
			result.PatternType,
			result.SourceURL,
			result.Justification,
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
