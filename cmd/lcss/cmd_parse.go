package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/lcss/format"
)

func newParseCmd(opts *options) *cobra.Command {
	var outputFormat string
	var strict bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a stylesheet and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			cfg.Strict = cfg.Strict || strict

			if !slices.Contains(format.Names(), outputFormat) {
				return fmt.Errorf("unknown format %q (want one of %s)", outputFormat, strings.Join(format.Names(), ", "))
			}

			root, in, err := parseFile(args[0], cfg)
			if err != nil {
				return err
			}
			if err := format.New(outputFormat, os.Stdout, in).Encode(root); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format: "+strings.Join(format.Names(), ", "))
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unclosed blocks and brackets")

	return cmd
}
