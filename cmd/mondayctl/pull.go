// ABOUTME: The pull and board commands: fetch remote state and print snapshots.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/2389-research/mondaygo/monday"
)

func accountOptions() []monday.AccountOption {
	var opts []monday.AccountOption
	if token := viper.GetString("token"); token != "" {
		opts = append(opts, monday.WithToken(token))
	}
	return opts
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the full account: users, tags, and boards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := monday.LoadAccount(cmd.Context(), accountOptions()...)
		if err != nil {
			return err
		}
		return render(account.Snapshot())
	},
}

var boardCmd = &cobra.Command{
	Use:   "board <id>",
	Short: "Pull one board's schema and groups by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := monday.LoadBoard(cmd.Context(), args[0], accountOptions()...)
		if err != nil {
			return err
		}
		return render(board.Snapshot())
	},
}
