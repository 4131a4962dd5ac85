package report

import (
	"encoding/json"
	"io"

	"github.com/opencrawl/opencrawl/internal/model"
)

// JSONWriter outputs evaluations in JSON format.
// This format is designed for tool integration and programmatic
// processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
//  1. It's part of the standard library (no extra dependencies)
//  2. It's sufficient for our needs
//  3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the evaluation in JSON format.
func (w *JSONWriter) Write(evaluation *model.OrganizationEvaluation) (int, error) {
	return w.writeJSON(evaluation)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps the evaluation with output metadata.
//
// Design decision: We wrap the evaluation rather than modifying
// OrganizationEvaluation because this allows output-specific fields
// without polluting the core data structure.
type JSONReport struct {
	// Version is the opencrawl version that generated this report.
	Version string `json:"version"`

	// Evaluation is the full assessment result.
	Evaluation *model.OrganizationEvaluation `json:"evaluation"`
}

// FullJSONWriter outputs evaluations with the metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the opencrawl version string.
	version string
}

// NewFullJSONWriter creates a writer for evaluations with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the evaluation wrapped with metadata.
func (w *FullJSONWriter) Write(evaluation *model.OrganizationEvaluation) (int, error) {
	return w.writeJSON(&JSONReport{
		Version:    w.version,
		Evaluation: evaluation,
	})
}
