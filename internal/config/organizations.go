package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/opencrawl/opencrawl/internal/model"
)

// ErrEmptyOrganizationsFile is returned when the organizations CSV
// contains no usable rows.
var ErrEmptyOrganizationsFile = errors.New("organizations file contains no entries")

// LoadOrganizationsCSV reads an organization list from a
// semicolon-delimited CSV file with one "name;url" row per organization.
// A header row is detected automatically and skipped. URLs without a
// scheme get "https://" prepended.
//
// Design decision: Semicolons rather than commas because the lists are
// usually exported from German-locale spreadsheets, where the semicolon is
// the default delimiter and names routinely contain commas.
func LoadOrganizationsCSV(path string) ([]model.Organization, error) {
	file, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	organizations := make([]model.Organization, 0, len(records))
	for i, record := range records {
		if i == 0 && isHeaderRow(record) {
			continue
		}
		if len(record) < 2 {
			continue
		}

		name := strings.TrimSpace(record[0])
		rawURL := strings.TrimSpace(record[1])
		if name == "" || rawURL == "" {
			continue
		}

		if !strings.Contains(rawURL, "://") {
			rawURL = "https://" + rawURL
		}

		organizations = append(organizations, model.Organization{
			Name: name,
			URL:  rawURL,
		})
	}

	if len(organizations) == 0 {
		return nil, ErrEmptyOrganizationsFile
	}

	return organizations, nil
}

// headerMarkers identify a header row in the first CSV record.
var headerMarkers = []string{"organisation", "organization", "name", "url"}

// isHeaderRow reports whether the record looks like a column header
// rather than data.
func isHeaderRow(record []string) bool {
	for _, field := range record {
		lower := strings.ToLower(strings.TrimSpace(field))
		for _, marker := range headerMarkers {
			if lower == marker {
				return true
			}
		}
	}
	return false
}
