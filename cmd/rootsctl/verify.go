package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ErrMismatch means the server's endpoints disagree about the dataset.
var ErrMismatch = errors.New("dataset mismatch")

type statsBody struct {
	Students  int `json:"students"`
	Countries int `json:"countries"`
	Stories   int `json:"stories"`
}

type contributorsBody struct {
	LoadID string `json:"loadId"`
	Count  int    `json:"count"`
}

func newVerifyCmd(opts *options) *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a running server's stats agree with its contributor list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			base := strings.TrimRight(server, "/")
			var (
				stats  statsBody
				people contributorsBody
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return getJSON(gctx, base+"/api/stats", &stats) })
			g.Go(func() error { return getJSON(gctx, base+"/api/contributors", &people) })
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "load %s: %d contributors, %d stories, %d countries\n",
				people.LoadID, people.Count, stats.Stories, stats.Countries)
			if people.Count != stats.Stories || stats.Students != stats.Stories {
				return fmt.Errorf("%w: contributors=%d students=%d stories=%d",
					ErrMismatch, people.Count, stats.Students, stats.Stories)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:9080", "Server base URL")
	return cmd
}

func getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", url, err)
	}
	return nil
}
