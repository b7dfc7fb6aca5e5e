package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/lcss/css/syntax"
	"github.com/dhamidi/lcss/plugin"
)

func newStripCmd(opts *options) *cobra.Command {
	var mutable bool

	cmd := &cobra.Command{
		Use:   "strip <file>",
		Short: "Print a stylesheet with all whitespace tokens removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transform(opts, args[0], func(root *syntax.Node) string {
				if !mutable {
					return plugin.RemoveSpace(root)
				}
				tree := root.CloneForUpdate()
				n := plugin.RemoveSpaceMut(tree.Root())
				log.Debugf("detached %d space tokens", n)
				return tree.String()
			})
		},
	}

	cmd.Flags().BoolVar(&mutable, "mutable", false, "detach space tokens from a mutable copy instead of filtering")

	return cmd
}

func newReverseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <file>",
		Short: "Print a stylesheet with every property name reversed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transform(opts, args[0], plugin.Reverse)
		},
	}
}

func transform(opts *options, path string, f func(*syntax.Node) string) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	root, _, err := parseFile(path, cfg)
	if err != nil {
		return err
	}
	fmt.Print(f(root))
	return nil
}
