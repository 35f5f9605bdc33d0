// Command rootsctl inspects the survey spreadsheet and a running Roots & Roads
// server from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/rootsroads/internal/config"
	"github.com/okian/rootsroads/pkg/logger"

	"github.com/spf13/cobra"
)

type options struct {
	verbose bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "rootsctl",
		Short:         "Inspect the Roots & Roads dataset and server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if opts.verbose {
				return logger.SetLevelString("debug")
			}
			return logger.SetLevelString("warn")
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Operation timeout")

	root.AddCommand(newInspectCmd(opts))
	root.AddCommand(newVerifyCmd(opts))
	root.AddCommand(newHighlightCmd(opts))
	root.AddCommand(newGlobeCmd(opts))
	return root
}

// defaults reads the server configuration so the CLI points where the server does.
func defaults() *config.Config {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return config.New()
	}
	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "rootsctl:", err)
		os.Exit(1)
	}
}
