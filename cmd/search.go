package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inboxd/inboxd/internal/filter"
	"github.com/inboxd/inboxd/internal/gmail"
)

func newSearchCmd() *cobra.Command {
	var maxResults int64

	cmd := &cobra.Command{
		Use:   "search CRITERION...",
		Short: "Search the inbox with filter criteria",
		Long: `Search the inbox with one or more filter criteria. All criteria must
match (logical AND).

Each criterion is field:value or field:operator:value:

  fields:    from, to, subject, body, category, date,
             has_attachment, is_starred, is_unread
  operators: contains (default), equals, not_contains,
             starts_with, ends_with
  dates:     date:on:2024-05-12, date:after:2024-05-01,
             date:before:2024-06-01

Examples:
  inboxd search from:alice
  inboxd search subject:equals:invoice is_unread:true
  inboxd search category:promotions date:after:2024-05-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := filter.ParseAll(args)
			if err != nil {
				return err
			}

			client, err := newMailClient(cmd.Context())
			if err != nil {
				return err
			}

			records, err := client.ListInbox(cmd.Context(), maxResults)
			if err != nil {
				return err
			}

			printRecords(filter.Evaluate(records, criteria))
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max", gmail.DefaultMaxResults, "Maximum number of messages to search over")

	return cmd
}
