// Package cmd implements the command-line interface for inboxd.
//
// This package provides the following commands:
//   - auth: Authorize Gmail access and cache the OAuth token per account
//   - inbox: List normalized inbox messages, optionally by category tab
//   - search: Filter the inbox with field:operator:value criteria
//   - send: Send a plain text email
//   - message: Mark read, toggle star, or trash a single message
//   - stats: Show per-category inbox statistics
//   - serve: Start the HTTP JSON API server
package cmd
