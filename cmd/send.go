package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var (
		to      string
		subject string
		body    string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a plain text email",
		Long: `Send a plain text email through the authorized Gmail account.

The body comes from --body, or from stdin when --body is omitted:

  inboxd send --to bob@example.com --subject "Hi" --body "Hello Bob"
  echo "Hello Bob" | inboxd send --to bob@example.com --subject "Hi"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if body == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read body from stdin: %w", err)
				}
				body = strings.TrimRight(string(data), "\n")
			}

			client, err := newMailClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.SendEmail(cmd.Context(), to, subject, body); err != nil {
				return err
			}

			fmt.Printf("Sent to %s\n", to)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&body, "body", "", "Message body (reads stdin when omitted)")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
