// Package model defines the core data structures used throughout opencrawl.
//
// This package contains the following main types:
//   - PageResult: A single fetched web page with extracted content
//   - OrganizationCrawlResult: All pages fetched for one organization
//   - CriterionEvaluation: The verdict for one openness criterion
//   - OrganizationEvaluation: All criterion verdicts plus aggregates
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (crawler, evaluator, report, stats) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
