package main

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/lcss/css/parser"
	"github.com/dhamidi/lcss/css/syntax"
	"github.com/dhamidi/lcss/format"
	"github.com/dhamidi/lcss/plugin"
)

func newBenchCmd(opts *options) *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench <file>",
		Short: "Time parsing, printing and the example transformations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("iterations") {
				iterations = cfg.Bench.Iterations
			}
			if iterations < 1 {
				return fmt.Errorf("iterations must be positive, got %d", iterations)
			}
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			return runBench(in.CSS(), iterations)
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 100, "runs per measurement (default from bench.iterations)")

	return cmd
}

type measurement struct {
	name    string
	samples []time.Duration
}

func (m *measurement) time(f func()) {
	start := time.Now()
	f()
	m.samples = append(m.samples, time.Since(start))
}

func (m *measurement) percentile(p int) time.Duration {
	sorted := slices.Clone(m.samples)
	slices.Sort(sorted)
	return sorted[(len(sorted)-1)*p/100]
}

func (m *measurement) average() time.Duration {
	var total time.Duration
	for _, s := range m.samples {
		total += s
	}
	return total / time.Duration(len(m.samples))
}

// checkRoundTrip fails when root does not print back to css.
func checkRoundTrip(root *syntax.Node, css string) error {
	if out := root.String(); out != css {
		return fmt.Errorf("round trip differs from input\n%s", format.Patch(css, out))
	}
	return nil
}

func runBench(css string, iterations int) error {
	root, err := parser.Parse(css)
	if err != nil {
		log.Warningf("%s", err)
	}
	if err := checkRoundTrip(root, css); err != nil {
		return err
	}

	parse := &measurement{name: "parse"}
	stringify := &measurement{name: "stringify"}
	reverse := &measurement{name: "reverse"}
	removeSpaceMut := &measurement{name: "remove_space_mut"}
	removeSpace := &measurement{name: "remove_space"}

	for range iterations {
		parse.time(func() { parser.Parse(css) })
		stringify.time(func() { _ = root.String() })
		reverse.time(func() { plugin.Reverse(root) })
		removeSpaceMut.time(func() {
			tree := root.CloneForUpdate()
			plugin.RemoveSpaceMut(tree.Root())
			_ = tree.String()
		})
		removeSpace.time(func() { plugin.RemoveSpace(root) })
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%d bytes, %d iterations\n", len(css), iterations)
	fmt.Fprintln(w, "operation\tavg\tp50\tp95")
	for _, m := range []*measurement{parse, stringify, reverse, removeSpaceMut, removeSpace} {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.name, m.average(), m.percentile(50), m.percentile(95))
	}
	return w.Flush()
}
