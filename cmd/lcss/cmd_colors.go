package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/lcss/plugin"
)

func newColorsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "colors <file>",
		Short: "List the color values used in declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			root, in, err := parseFile(args[0], cfg)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, c := range plugin.Colors(root) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", in.Position(c.Range.Start), c.Prop, c.Text, c.Value.HexString())
			}
			return w.Flush()
		},
	}
}
