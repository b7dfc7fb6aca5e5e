package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/lcss/css/tokenizer"
	"github.com/dhamidi/lcss/format"
)

func newTokensCmd(opts *options) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a stylesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			tokens, err := tokenizer.New(in, !strict).Tokenize()
			if encErr := format.NewLineEncoder(os.Stdout, in).Encode(tokens); encErr != nil {
				return fmt.Errorf("encode: %w", encErr)
			}
			if err != nil {
				return fmt.Errorf("tokenize %s: %w", in.File(), err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unclosed strings, comments and url()")

	return cmd
}
