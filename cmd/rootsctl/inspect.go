package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/okian/rootsroads/internal/adapters/sheet"
	app "github.com/okian/rootsroads/internal/app"
	"github.com/okian/rootsroads/internal/domain/contributor"
	"github.com/okian/rootsroads/internal/domain/dataset"

	"github.com/spf13/cobra"
)

type inspectResult struct {
	Report    app.Report             `json:"report"`
	Totals    dataset.Totals         `json:"totals"`
	Breakdown []dataset.CountryCount `json:"breakdown"`
}

func newInspectCmd(opts *options) *cobra.Command {
	var (
		url    string
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Fetch the spreadsheet and report what the site would publish",
		Long: `Fetch the survey CSV (or read it from --file), run the consent and name
gates and print how many rows were accepted, the dashboard totals and the
per-country breakdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			rows, err := readRows(ctx, url, file, opts.timeout)
			if err != nil {
				return err
			}
			ds, rep := app.Process(rows, dataset.WithLoadedAt(time.Now()))
			res := inspectResult{Report: rep, Totals: ds.Totals(), Breakdown: ds.CountryBreakdown()}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printInspect(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Published CSV URL (default: configured sheet_url)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read CSV from a local file instead")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

// readRows tokenizes the survey from file when set, otherwise from url
// (default: the configured sheet).
func readRows(ctx context.Context, url, file string, timeout time.Duration) ([]contributor.Row, error) {
	var text string
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		text = string(data)
	} else {
		if url == "" {
			url = defaults().SheetURL
		}
		var err error
		text, err = sheet.NewFetcher(url, sheet.WithTimeout(timeout)).Fetch(ctx)
		if err != nil {
			return nil, err
		}
	}
	_, rows, err := sheet.Tokenize(text)
	return rows, err
}

func printInspect(w io.Writer, res inspectResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "rows\t%d\n", res.Report.Rows)
	fmt.Fprintf(tw, "accepted\t%d\n", res.Report.Accepted)
	fmt.Fprintf(tw, "rejected (consent)\t%d\n", res.Report.RejectedConsent)
	fmt.Fprintf(tw, "rejected (name)\t%d\n", res.Report.RejectedName)
	fmt.Fprintf(tw, "geolocated\t%d\n", res.Report.Geolocated)
	fmt.Fprintf(tw, "\nstudents\t%d\n", res.Totals.Students)
	fmt.Fprintf(tw, "countries\t%d\n", res.Totals.Countries)
	fmt.Fprintf(tw, "stories\t%d\n", res.Totals.Stories)
	if len(res.Breakdown) > 0 {
		fmt.Fprintln(tw)
		for _, c := range res.Breakdown {
			fmt.Fprintf(tw, "  %s\t%d\n", c.Country, c.Count)
		}
	}
	return tw.Flush()
}
