package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/internal/report"
)

var predictModelFlag string

var predictCmd = &cobra.Command{
	Use:   "predict <company>...",
	Short: "Predict sponsorship likelihood for companies",
	Long:  "Resolves each named company through search and asks the selected model variant for sponsorship probabilities, highest first.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		variant, ok := model.ParseVariant(predictModelFlag)
		if !ok {
			return eris.Errorf("unknown model variant: %s", predictModelFlag)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		client, mgr, err := newClient(ctx, st)
		if err != nil {
			return err
		}
		sess, err := mgr.Require(ctx)
		if err != nil {
			return err
		}

		companies := make([]model.Company, 0, len(args))
		for _, name := range args {
			matches, err := client.SearchCompanies(ctx, name)
			if err != nil {
				return eris.Wrapf(err, "predict: resolve %q", name)
			}
			found := false
			for _, c := range matches {
				if c.Name() == name {
					companies = append(companies, c)
					found = true
					break
				}
			}
			if !found {
				return eris.Errorf("predict: company not found: %s", name)
			}
		}

		ranked, err := client.Predict(ctx, variant, companies)
		if err != nil {
			return eris.Wrap(err, "predict")
		}

		if _, err := st.LogActivity(ctx, model.Activity{
			Action:  model.ActionPredict,
			Variant: variant,
			DoneBy:  sess.User.Email,
		}); err != nil {
			zap.L().Warn("activity log write failed", zap.Error(err))
		}

		formatPredictions(os.Stdout, variant, ranked)
		return nil
	},
}

func formatPredictions(w io.Writer, variant model.Variant, ranked []model.RankedPrediction) {
	fmt.Fprintf(w, "Model: %s\n\n", variant.Display())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPANY\tPROBABILITY")
	for _, p := range ranked {
		fmt.Fprintf(tw, "%s\t%s\n", p.Company, report.FormatProbability(p.Probability))
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	predictCmd.Flags().StringVarP(&predictModelFlag, "model", "m", "logistic", "model variant (logistic, random_forest, xgboost)")
	rootCmd.AddCommand(predictCmd)
}
