// Package logging provides structured logging utilities for inboxd.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// Sensitive data never reaches the log stream directly: emails are hashed for
// correlation, and bearer tokens are either masked (SanitizeToken) or reduced
// to a stable session id (AnonymizeToken).
//
// Usage:
//
//	logger := logging.WithOperation(slog.Default(), "inbox.list")
//	logger.Info("fetched messages",
//	    logging.Status(logging.StatusSuccess),
//	    logging.Session(token))
package logging
