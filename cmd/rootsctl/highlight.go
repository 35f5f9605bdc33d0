package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/okian/rootsroads/internal/adapters/boundary"
	"github.com/okian/rootsroads/internal/domain/geomap"
	"github.com/okian/rootsroads/pkg/logger"

	"github.com/spf13/cobra"
)

// ErrNoOverlay means the country could not be outlined.
var ErrNoOverlay = errors.New("no overlay")

// textSurface prints what a map would draw.
type textSurface struct {
	w io.Writer
}

func (s textSurface) ShowOverlay(b geomap.Boundary) {
	fmt.Fprintf(s.w, "overlay %s (%s), %d bytes of geometry\n", b.Name, b.ID.Code, len(b.Geometry))
}

func (s textSurface) ClearOverlay() {}

func (s textSurface) FitBounds(b geomap.Bounds, paddingPX int) {
	fmt.Fprintf(s.w, "fit south=%.4f west=%.4f north=%.4f east=%.4f padding=%dpx\n",
		b.South, b.West, b.North, b.East, paddingPX)
}

func newHighlightCmd(opts *options) *cobra.Command {
	var (
		baseURL string
		padding int
	)
	cmd := &cobra.Command{
		Use:   "highlight <country>",
		Short: "Resolve a country's outline the way the map does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaults()
			if baseURL == "" {
				baseURL = cfg.BoundaryURL
			}
			client, err := boundary.New(baseURL,
				boundary.WithTimeout(opts.timeout),
				boundary.WithUserAgent(cfg.BoundaryUserAgent),
				boundary.WithLogger(logger.Named("boundary")),
			)
			if err != nil {
				return err
			}

			start := time.Now()
			h := geomap.NewHighlighter(textSurface{w: cmd.OutOrStdout()}, client,
				geomap.WithPadding(padding),
				geomap.WithLogger(logger.Named("highlight")),
			)
			if !h.Highlight(cmd.Context(), args[0]) {
				return fmt.Errorf("%w for %q", ErrNoOverlay, args[0])
			}
			logger.Get().Debug(cmd.Context(), "highlight done", logger.Duration("took", time.Since(start)))
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "boundary-url", "", "Boundary service base URL (default: configured boundary_url)")
	cmd.Flags().IntVar(&padding, "padding", geomap.DefaultPaddingPX, "Padding around the country in pixels")
	return cmd
}
