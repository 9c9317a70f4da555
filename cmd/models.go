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

var modelsVariantFlag string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List trained models",
	Long:  "Lists models held by the prediction service. The deployed model per variant is marked as Current.",
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		modelType := ""
		if modelsVariantFlag != "" {
			v, ok := model.ParseVariant(modelsVariantFlag)
			if !ok {
				return eris.Errorf("unknown model variant: %s", modelsVariantFlag)
			}
			modelType = v.APIName()
		}

		models, err := client.ListModels(ctx, modelType)
		if err != nil {
			return eris.Wrap(err, "models list")
		}
		if len(models) == 0 {
			fmt.Fprintln(os.Stderr, "No models trained.")
			return nil
		}

		formatModels(os.Stdout, models)
		return nil
	},
}

func formatModels(w io.Writer, models []model.ModelRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBLOB\tTYPE\tSTATUS\tCREATED\tBY")
	for _, m := range models {
		status := m.Status
		if m.IsCurrent() {
			status = "* " + status
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", m.ModelID, m.BlobName, m.ModelType, status, m.CreatedAt, m.DoneBy)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	modelsCmd.Flags().StringVarP(&modelsVariantFlag, "model", "m", "", "filter by variant (logistic, random_forest, xgboost)")
	rootCmd.AddCommand(modelsCmd)
}
