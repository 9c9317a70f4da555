package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/internal/report"
)

var reportOutputDir string

var reportCmd = &cobra.Command{
	Use:   "report <company>",
	Short: "Export a prospect summary PDF for a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]

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

		matches, err := client.SearchCompanies(ctx, name)
		if err != nil {
			return eris.Wrapf(err, "report: resolve %q", name)
		}
		var company model.Company
		for _, c := range matches {
			if c.Name() == name {
				company = c
				break
			}
		}
		if company == nil {
			return eris.Errorf("report: company not found: %s", name)
		}

		outDir := reportOutputDir
		if outDir == "" {
			outDir = cfg.Report.OutputDir
		}

		gen := report.NewGenerator(outDir)
		path, err := gen.Generate(company, sess.User)
		if err != nil {
			return err
		}

		if _, err := st.LogActivity(ctx, model.Activity{
			Action:  model.ActionReport,
			Subject: company.Name(),
			DoneBy:  sess.User.Email,
		}); err != nil {
			zap.L().Warn("activity log write failed", zap.Error(err))
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutputDir, "output", "o", "", "output directory (default from config)")
	rootCmd.AddCommand(reportCmd)
}
