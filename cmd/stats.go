package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inboxd/inboxd/internal/gmail"
	"github.com/inboxd/inboxd/internal/mail"
)

func newStatsCmd() *cobra.Command {
	var maxResults int64

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-category inbox statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMailClient(cmd.Context())
			if err != nil {
				return err
			}

			records, err := client.ListInbox(cmd.Context(), maxResults)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tTOTAL\tUNREAD\tSTARRED\tATTACHMENTS\tREAD RATE")
			for _, s := range mail.Stats(records) {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
					s.Category, s.Total, s.Unread, s.Starred, s.WithAttachment, s.ReadRate)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max", gmail.DefaultMaxResults, "Maximum number of messages to include")

	return cmd
}
