package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/viper"

	"github.com/inboxd/inboxd/internal/gmail"
	"github.com/inboxd/inboxd/internal/google"
	"github.com/inboxd/inboxd/internal/mail"
)

// newMailClient builds a Gmail client from the cached credentials of the
// configured account.
func newMailClient(ctx context.Context) (*gmail.Client, error) {
	account := viper.GetString("account")
	provider := google.NewFileTokenProvider(account)

	if !provider.HasToken() {
		return nil, errors.New(google.GetAuthenticationErrorMessage(account))
	}

	token, err := provider.AccessToken(ctx)
	if err != nil {
		slog.Debug("no usable cached token", "account", account, "error", err)
		return nil, errors.New(google.GetAuthenticationErrorMessage(account))
	}

	return gmail.NewClient(ctx, token, gmail.WithLogger(slog.Default()))
}

// printRecords renders records as an aligned table on stdout.
func printRecords(records []mail.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFLAGS\tDATE\tFROM\tSUBJECT")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, recordFlags(r), r.Date, r.Sender, r.Subject)
	}
	w.Flush()
}

// recordFlags builds the compact flag column: unread, starred,
// attachment, and any pending or failed sync state.
func recordFlags(r mail.Record) string {
	flags := ""
	if !r.Read {
		flags += "U"
	}
	if r.Starred {
		flags += "*"
	}
	if r.HasAttachment {
		flags += "A"
	}
	if r.SyncState != mail.StateSynced {
		flags += "!"
	}
	if flags == "" {
		flags = "-"
	}
	return flags
}
