package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inboxd/inboxd/internal/gmail"
	"github.com/inboxd/inboxd/internal/mail"
)

func newInboxCmd() *cobra.Command {
	var (
		maxResults int64
		category   string
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List inbox messages",
		Long: `List messages in the inbox as normalized records.

Messages are grouped into Gmail's category tabs (primary, social,
promotions, updates, forums); use --category to show a single tab.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMailClient(cmd.Context())
			if err != nil {
				return err
			}

			records, err := client.ListInbox(cmd.Context(), maxResults)
			if err != nil {
				return err
			}

			if category != "" {
				want, err := mail.ParseCategory(category)
				if err != nil {
					return err
				}
				filtered := records[:0]
				for _, r := range records {
					if r.Category == want {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}

			printRecords(records)
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max", gmail.DefaultMaxResults, "Maximum number of messages to list")
	cmd.Flags().StringVar(&category, "category", "", "Only show one category tab (primary, social, promotions, updates, forums)")

	return cmd
}
