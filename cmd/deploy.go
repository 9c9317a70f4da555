package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/internal/ops"
)

var deployModelFlag string

var deployCmd = &cobra.Command{
	Use:   "deploy <model-id>",
	Short: "Deploy a trained model as Current for its variant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		variant, ok := model.ParseVariant(deployModelFlag)
		if !ok {
			return eris.Errorf("unknown model variant: %s", deployModelFlag)
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

		ctrl := ops.NewController(client, st)
		result, err := ctrl.Deploy(ctx, variant, args[0], sess.User.Email)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", variant.Display(), result.Message)
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVarP(&deployModelFlag, "model", "m", "logistic", "model variant (logistic, random_forest, xgboost)")
	rootCmd.AddCommand(deployCmd)
}
