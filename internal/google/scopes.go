package google

// DefaultOAuthScopes are the Google OAuth scopes inboxd requires.
//
// Full Gmail access covers listing and reading messages, modifying
// labels (read state, starring, trash) and sending mail.
var DefaultOAuthScopes = []string{
	"https://mail.google.com/",
}
