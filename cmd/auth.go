package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inboxd/inboxd/internal/google"
	"github.com/inboxd/inboxd/internal/logging"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail access for an account",
		Long: `Authorize inboxd to access a Gmail mailbox.

Opens an OAuth consent URL; paste the authorization code back into the
terminal. The resulting token is cached on disk per account, so several
mailboxes can be authorized side by side with --account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			account := viper.GetString("account")

			if google.HasTokenForAccount(account) {
				fmt.Printf("Account %q is already authorized. Continuing will replace its token.\n", account)
			}

			fmt.Printf("Visit this URL to authorize inboxd:\n\n%s\n\n", google.GetAuthURL())
			fmt.Print("Paste the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("empty authorization code")
			}
			slog.Debug("exchanging authorization code",
				"account", account,
				"code", logging.SanitizeToken(code))

			if err := google.SaveToken(cmd.Context(), account, code); err != nil {
				return err
			}

			fmt.Printf("Account %q authorized.\n", account)
			return nil
		},
	}

	return cmd
}
