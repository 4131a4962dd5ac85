// Package llm provides the language-model collaborator used for intelligent
// subpage selection and semantic criterion analysis.
//
// The client talks to any OpenAI-compatible chat-completion API via
// github.com/sashabaranov/go-openai with JSON-mode responses. Both contracts
// are strictly best-effort: callers treat every transport, timeout, or parse
// failure as an absent signal and fall back to deterministic behavior, so no
// error from this package may ever abort a crawl or an evaluation.
package llm
