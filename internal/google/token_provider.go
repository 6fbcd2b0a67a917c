package google

import (
	"context"
	"errors"
)

// TokenProvider supplies the bearer access token a mail client is built
// from. FileTokenProvider refreshes tokens from the on-disk cache for the
// CLI; StaticTokenProvider forwards the token an HTTP request carried.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// FileTokenProvider obtains access tokens from the cached credentials of
// one account, refreshing them when they have expired.
type FileTokenProvider struct {
	account string
}

// NewFileTokenProvider creates a provider for the given account. An empty
// account name falls back to DefaultAccount.
func NewFileTokenProvider(account string) *FileTokenProvider {
	if account == "" {
		account = DefaultAccount
	}
	return &FileTokenProvider{account: account}
}

// AccessToken returns a fresh bearer access token for the account.
func (p *FileTokenProvider) AccessToken(ctx context.Context) (string, error) {
	return AccessToken(ctx, p.account)
}

// HasToken reports whether cached credentials exist for the account.
func (p *FileTokenProvider) HasToken() bool {
	return HasTokenForAccount(p.account)
}

// StaticTokenProvider wraps a bearer token presented by a caller, typically
// taken from an Authorization header. The token is forwarded as-is.
type StaticTokenProvider string

// AccessToken returns the wrapped token.
func (p StaticTokenProvider) AccessToken(context.Context) (string, error) {
	if p == "" {
		return "", errors.New("empty bearer token")
	}
	return string(p), nil
}

var (
	_ TokenProvider = (*FileTokenProvider)(nil)
	_ TokenProvider = StaticTokenProvider("")
)
