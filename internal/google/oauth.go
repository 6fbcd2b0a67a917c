package google

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// accountNamePattern restricts account names to filesystem-safe characters.
var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// DefaultAccount is the account used when no account name is given.
const DefaultAccount = "default"

// validateAccountName checks that an account name is safe to embed in a
// token file name.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphens and underscores are allowed", account)
	}
	return nil
}

// getTokenFilePath returns the token cache file for the given account.
func getTokenFilePath(account string) string {
	return filepath.Join(cacheDir(), fmt.Sprintf("google-%s.token", account))
}

func cacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".cache")
	}
	return filepath.Join(dir, "inboxd")
}

// HasTokenForAccount checks if a cached OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// GetAuthURL returns the OAuth URL for user authorization.
func GetAuthURL() string {
	conf := oauthConfig()
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// SaveToken exchanges an authorization code for tokens and caches them
// under the given account name.
func SaveToken(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	conf := oauthConfig()

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	dir := cacheDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(getTokenFilePath(account), []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// oauthConfig returns the OAuth2 configuration. Client credentials come
// from configuration (google.client_id / google.client_secret, or the
// INBOXD_GOOGLE_CLIENT_ID / INBOXD_GOOGLE_CLIENT_SECRET environment
// variables through viper).
func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     viper.GetString("google.client_id"),
		ClientSecret: viper.GetString("google.client_secret"),
		Endpoint:     google.Endpoint,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       DefaultOAuthScopes,
	}
}

// GetTokenSourceForAccount returns an OAuth2 token source backed by the
// cached token for the account. The source refreshes the access token
// when it expires.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}

	conf := oauthConfig()

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no cached OAuth token for account %q", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format in %s", getTokenFilePath(account))
	}

	// Expiry in the past forces a refresh on first use.
	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	return ts, nil
}

// AccessToken returns a fresh bearer access token for the account.
func AccessToken(ctx context.Context, account string) (string, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return "", err
	}

	token, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("cached token for account %q is invalid: %w", account, err)
	}

	return token.AccessToken, nil
}

// GetAuthenticationErrorMessage returns a user-facing message explaining
// how to authenticate the given account.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("no OAuth credentials for account %q; run 'inboxd auth --account %s' to authorize Gmail access", account, account)
}
