// Package stats aggregates assessment results across organizations.
//
// Where the evaluator summarizes one organization, this package compares
// many: per-criterion hit rates, organization rankings, and the strongest
// and weakest openness dimensions over a whole run.
package stats
