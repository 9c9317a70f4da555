package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/internal/search"
)

var (
	companiesQuery string
	companiesCity  string
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List or search the company universe",
	Long:  "Lists companies known to the prediction service. With --query, searches by name; matches in the target city sort first.",
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

		var companies []model.Company
		switch {
		case companiesQuery != "":
			companies, err = client.SearchCompanies(ctx, companiesQuery)
		case companiesCity != "":
			companies, err = client.FilterCompanies(ctx, model.FieldCity, companiesCity)
		default:
			companies, err = client.Companies(ctx)
		}
		if err != nil {
			return eris.Wrap(err, "companies")
		}

		companies = search.Prioritize(companies, cfg.University.TargetCity)
		if len(companies) == 0 {
			fmt.Fprintln(os.Stderr, "No companies found.")
			return nil
		}

		formatCompanies(os.Stdout, companies)
		return nil
	},
}

func formatCompanies(w io.Writer, companies []model.Company) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCITY\tREVENUE\tRANKING")
	for _, c := range companies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			c.Name(), c.City(), c.Str(model.FieldAnnualRevenue), c.Str(model.FieldIndustryRanking))
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	companiesCmd.Flags().StringVarP(&companiesQuery, "query", "q", "", "search by company name")
	companiesCmd.Flags().StringVar(&companiesCity, "city", "", "filter by exact city")
	rootCmd.AddCommand(companiesCmd)
}
