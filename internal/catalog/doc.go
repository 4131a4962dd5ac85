// Package catalog loads and validates YAML criteria catalogs.
//
// A catalog is a nested structure of dimensions, factors, and criteria that
// describes what "openness" means for a class of organizations. The
// evaluation engine consumes the flattened criterion list; this package owns
// parsing, structural validation, and deterministic flattening.
//
// The core treats a loaded catalog as validated, read-only input. An empty
// catalog is valid and evaluates to zero criteria.
package catalog
