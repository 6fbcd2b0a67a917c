// Package google provides OAuth2 authentication and token management for
// the Gmail API.
//
// Tokens are cached on disk per account name, so the CLI can hold
// credentials for multiple mailboxes side by side. The TokenProvider
// interface allows other token sources to be plugged in, such as the
// per-request bearer tokens the HTTP server receives.
package google
