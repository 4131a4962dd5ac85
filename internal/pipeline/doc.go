// Package pipeline provides a framework for executing assessment steps in
// sequence.
//
// The pipeline pattern is used to process organizations through the two
// assessment stages: crawling the website and evaluating the crawl result
// against the criteria catalog. Each stage is implemented as a Step that
// receives the accumulated run state and can extend it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
//  1. It allows easy addition/removal of steps without modifying core logic
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context for long-running assessments
//
// Multiple organizations are processed strictly one after another by the
// Runner, separated by a politeness delay. The two stages never interleave
// across organizations.
package pipeline
