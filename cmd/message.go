package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inboxd/inboxd/internal/gmail"
)

func newMessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Operate on a single message",
	}

	cmd.AddCommand(newMessageReadCmd())
	cmd.AddCommand(newMessageStarCmd())
	cmd.AddCommand(newMessageTrashCmd())

	return cmd
}

func newMessageReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMailClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.MarkRead(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Marked %s as read\n", args[0])
			return nil
		},
	}
}

func newMessageStarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "star ID",
		Short: "Toggle the star on a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMailClient(cmd.Context())
			if err != nil {
				return err
			}

			// The toggle needs the current state, so fetch the message first.
			msg, err := client.GetMessage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rec := gmail.Normalize(msg)
			if rec.IsError() {
				return fmt.Errorf("could not read message %s", args[0])
			}

			if err := client.ToggleStar(cmd.Context(), args[0], rec.Starred); err != nil {
				return err
			}

			if rec.Starred {
				fmt.Printf("Unstarred %s\n", args[0])
			} else {
				fmt.Printf("Starred %s\n", args[0])
			}
			return nil
		},
	}
}

func newMessageTrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trash ID",
		Short: "Move a message to trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMailClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Trash(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Moved %s to trash\n", args[0])
			return nil
		},
	}
}
