// Package evaluator judges how well an organization's crawled pages satisfy
// a criteria catalog.
//
// # Architecture
//
// Evidence for a criterion comes from an ordered list of sources. The
// semantic LLM analysis is consulted for every page; the heuristic pattern
// matcher only runs while the best evidence found so far is still below a
// low-signal bar. The engine scans all pages, keeps the highest-confidence
// match, and marks the criterion fulfilled when that confidence reaches the
// criterion's threshold.
//
// # Failure model
//
// LLM failures are treated as absent signal, never as evaluation errors.
// An empty catalog evaluates to an all-zero result. The engine's public
// entry point never fails.
package evaluator
