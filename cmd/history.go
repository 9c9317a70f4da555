package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nmdsi/sponsor-cli/internal/model"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the local operation log",
	Long:  "Lists recent train, deploy, upload, predict, and report operations recorded by this machine, newest first.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		recent, err := st.RecentActivity(ctx, historyLimit)
		if err != nil {
			return eris.Wrap(err, "history")
		}
		if len(recent) == 0 {
			fmt.Fprintln(os.Stderr, "No local activity recorded.")
			return nil
		}

		formatActivity(os.Stdout, recent)
		return nil
	},
}

func formatActivity(w io.Writer, activities []model.Activity) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tACTION\tMODEL\tSUBJECT\tBY")
	for _, a := range activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.CreatedAt.Format("2006-01-02 15:04"), a.Action, a.Variant, a.Subject, a.DoneBy)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum rows to show")
	rootCmd.AddCommand(historyCmd)
}
