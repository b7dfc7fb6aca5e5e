package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/lcss/config"
	"github.com/dhamidi/lcss/format"
)

func newRoundTripCmd(opts *options) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "roundtrip [file...]",
		Short: "Check that parsing and printing reproduces each stylesheet byte for byte",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			files, err := stylesheets(args, cfg)
			if err != nil {
				return err
			}
			return runRoundTrip(cmd.Context(), cfg, files, keepGoing)
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "check every file instead of stopping at the first mismatch")

	return cmd
}

func runRoundTrip(ctx context.Context, cfg *config.Config, files []string, keepGoing bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	var failed atomic.Int32
	for _, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, in, err := parseFile(path, cfg)
			if err != nil {
				return err
			}
			if out := root.String(); out != in.CSS() {
				failed.Add(1)
				fmt.Fprintf(os.Stderr, "%s: round trip mismatch\n%s", cfg.Rel(path), format.Patch(in.CSS(), out))
				if !keepGoing {
					return fmt.Errorf("round trip %s: output differs from input", path)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files differ", n, len(files))
	}
	fmt.Printf("%d files ok\n", len(files))
	return nil
}
