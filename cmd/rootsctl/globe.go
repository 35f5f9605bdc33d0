package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	app "github.com/okian/rootsroads/internal/app"
	"github.com/okian/rootsroads/internal/domain/globe"

	"github.com/spf13/cobra"
)

// frameWriter prints the first limit frames and then signals done.
type frameWriter struct {
	w     io.Writer
	limit uint64
	done  chan struct{}
	once  sync.Once
}

func (f *frameWriter) Render(fr globe.Frame) {
	if fr.Seq > f.limit {
		return
	}
	fmt.Fprintf(f.w, "frame %d  t=%s  spin=%.4f  tilt=%.4f  pulse=%.3f\n",
		fr.Seq, fr.Elapsed.Round(time.Millisecond), fr.Rotation.Y, fr.Rotation.X, fr.PulseScale)
	if fr.Seq == f.limit {
		f.once.Do(func() { close(f.done) })
	}
}

func newGlobeCmd(opts *options) *cobra.Command {
	var (
		url      string
		file     string
		frames   uint64
		interval time.Duration
		width    int
		height   int
		dragX    float64
		dragY    float64
	)
	cmd := &cobra.Command{
		Use:   "globe",
		Short: "Run the globe animation headless and print its frames",
		Long: `Build the globe scene from the survey, optionally apply a drag gesture,
then run the frame loop and print rotation and marker pulse per frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			rows, err := readRows(ctx, url, file, opts.timeout)
			if err != nil {
				return err
			}
			ds, _ := app.Process(rows)
			scene := globe.NewScene(ds, defaults().GlobeTextureURL, width, height)

			if dragX != 0 || dragY != 0 {
				scene.Controller.PointerDown(0, 0)
				scene.Controller.PointerMove(dragX, dragY)
				scene.Controller.PointerUp()
			}

			out := cmd.OutOrStdout()
			p := scene.Camera.Projection()
			fmt.Fprintf(out, "markers %d  camera fov=%.0f aspect=%.3f\n", len(scene.Markers), p.FOV, p.Aspect)
			for _, m := range scene.Markers {
				fmt.Fprintf(out, "  %-24s x=%+.3f y=%+.3f z=%+.3f\n",
					m.Contributor.Name, m.Position.X, m.Position.Y, m.Position.Z)
			}
			if frames == 0 {
				return nil
			}

			w := &frameWriter{w: out, limit: frames, done: make(chan struct{})}
			loop := globe.NewLoop(scene, w, globe.WithFrameInterval(interval))
			loop.Start(ctx)
			defer loop.Stop()

			select {
			case <-w.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Published CSV URL (default: configured sheet_url)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read CSV from a local file instead")
	cmd.Flags().Uint64Var(&frames, "frames", 10, "Frames to render")
	cmd.Flags().DurationVar(&interval, "interval", globe.DefaultFrameInterval, "Frame interval")
	cmd.Flags().IntVar(&width, "width", 1280, "Viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", 720, "Viewport height in pixels")
	cmd.Flags().Float64Var(&dragX, "drag-x", 0, "Horizontal drag in pixels before the loop starts")
	cmd.Flags().Float64Var(&dragY, "drag-y", 0, "Vertical drag in pixels before the loop starts")
	return cmd
}
