// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (API keys, cookies, tokens)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - HTTP headers (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - Language-model API keys (OpenAI-style "sk-..." tokens)
//   - Secret values detected by pattern matching (passwords, tokens, keys)
//   - Session identifiers and authentication tokens
//
// The crawler regularly logs request headers and configuration values in
// verbose mode; the handler guarantees that credentials configured for the
// analysis backend or for authenticated fetches never reach the log output,
// even when logs are shared or stored.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("request sent",
//	    "authorization", "Bearer sk-abc123",  // Will be sanitized
//	    "url", "https://example.org",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
