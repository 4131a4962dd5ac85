package catalog

import "errors"

// Catalog validation errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances during validation. This allows callers to use
// errors.Is() for programmatic handling while the wrapped messages still
// name the offending catalog element.
var (
	// ErrCatalogNotFound is returned when the requested catalog file
	// does not exist in the catalog directory.
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrMissingMetadata is returned when the catalog has no metadata
	// section or the metadata lacks required fields.
	ErrMissingMetadata = errors.New("catalog metadata incomplete: name and organization_type are required")

	// ErrMissingCriterionField is returned when a criterion lacks one of
	// the required fields name, description, or type.
	ErrMissingCriterionField = errors.New("criterion missing required field")

	// ErrInvalidCriterionType is returned when a criterion type is not
	// "operational" or "strategic".
	ErrInvalidCriterionType = errors.New("invalid criterion type: must be operational or strategic")

	// ErrInvalidThreshold is returned when a confidence threshold is
	// outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid confidence threshold: must be in [0, 1]")
)
