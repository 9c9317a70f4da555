package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nmdsi/sponsor-cli/internal/dashboard"
	"github.com/nmdsi/sponsor-cli/internal/model"
)

var chartsCmd = &cobra.Command{
	Use:   "charts [variant]",
	Short: "Emit dashboard chart specs as JSON",
	Long:  "Loads current model performance and prints the bar, ROC, and confusion chart specs with the deployed model's provenance. Without a variant, prints the full per-variant map.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		client, _, err := newClient(ctx, st)
		if err != nil {
			return err
		}

		data := dashboard.NewLoader(client).Load(ctx)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if len(args) == 1 {
			variant, ok := model.ParseVariant(args[0])
			if !ok {
				return eris.Errorf("unknown model variant: %s", args[0])
			}
			return enc.Encode(data.Panel(variant))
		}
		return enc.Encode(data.AllPanels())
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
}
