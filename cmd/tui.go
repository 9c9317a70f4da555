package main

import (
	"github.com/spf13/cobra"

	"github.com/nmdsi/sponsor-cli/cli"
	"github.com/nmdsi/sponsor-cli/internal/ops"
	"github.com/nmdsi/sponsor-cli/internal/search"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		client, mgr, err := newClient(ctx, st)
		if err != nil {
			return err
		}

		return cli.Run(ctx, cli.Deps{
			Client:   client,
			Sessions: mgr,
			Search:   search.NewController(client, cfg.University.TargetCity),
			Ops:      ops.NewController(client, st),
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
