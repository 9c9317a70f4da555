package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nmdsi/sponsor-cli/internal/dataset"
	"github.com/nmdsi/sponsor-cli/internal/model"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Manage training datasets",
	Long:  "Commands for listing uploaded training data, validating and uploading new files, and inspecting the expected format.",
}

// -- datasets list --

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded training datasets, newest first",
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

		datasets, err := client.ListDatasets(ctx)
		if err != nil {
			return eris.Wrap(err, "datasets list")
		}
		if len(datasets) == 0 {
			fmt.Fprintln(os.Stderr, "No datasets uploaded.")
			return nil
		}

		sort.SliceStable(datasets, func(i, j int) bool {
			return datasets[i].UploadedTime().After(datasets[j].UploadedTime())
		})

		formatDatasets(os.Stdout, datasets)
		return nil
	},
}

// -- datasets upload --

var datasetsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Validate and upload a training dataset",
	Long:  "Checks the file's header against the required column set before uploading. CSV and XLSX are accepted.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		result, err := dataset.ValidateFile(path)
		if err != nil {
			return err
		}
		if !result.OK() {
			return eris.Errorf("missing required columns: %s", strings.Join(result.Missing, ", "))
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

		f, err := os.Open(path)
		if err != nil {
			return eris.Wrapf(err, "open %s", path)
		}
		defer f.Close() //nolint:errcheck

		upload, err := client.UploadDataset(ctx, filepath.Base(path), f, sess.User.Email)
		if err != nil {
			return eris.Wrap(err, "datasets upload")
		}

		if _, err := st.LogActivity(ctx, model.Activity{
			Action:  model.ActionUpload,
			Subject: upload.DatasetID,
			DoneBy:  sess.User.Email,
		}); err != nil {
			zap.L().Warn("activity log write failed", zap.Error(err))
		}

		fmt.Printf("Uploaded %s (%d rows) as %s\n", filepath.Base(path), result.NumRows, upload.DatasetID)
		return nil
	},
}

// -- datasets format --

var datasetsFormatCmd = &cobra.Command{
	Use:   "format",
	Short: "Show the required columns and sample rows",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println("Required columns:")
		for _, col := range dataset.RequiredColumns {
			fmt.Printf("  %s\n", col)
		}

		fmt.Println("\nSample rows:")
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(dataset.RequiredColumns, "\t"))
		for _, row := range dataset.SampleRows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	},
}

func formatDatasets(w io.Writer, datasets []model.DatasetRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILENAME\tROWS\tUPLOADED\tBY")
	for _, d := range datasets {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", d.DatasetID, d.Filename, d.NumRows, d.UploadedAt, d.DoneBy)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	datasetsCmd.AddCommand(datasetsListCmd, datasetsUploadCmd, datasetsFormatCmd)
	rootCmd.AddCommand(datasetsCmd)
}
