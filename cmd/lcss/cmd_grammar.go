package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/lcss/css/grammar"
	"github.com/dhamidi/lcss/css/tokenizer"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF token grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(grammar.Source())
			return nil
		},
	}

	cmd.AddCommand(newGrammarVerifyCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarScanCmd())

	return cmd
}

func newGrammarVerifyCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Parse and verify the built-in grammar or an EBNF file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g ebnf.Grammar
			var err error
			if len(args) == 0 {
				g, err = grammar.Load()
			} else {
				g, err = parseGrammarFile(args[0])
			}
			if err != nil {
				printErrors(err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(err)
				return err
			}
			fmt.Printf("%d productions ok\n", len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func parseGrammarFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ebnf.Parse(filename, f)
}

func newGrammarCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Check that every token of a stylesheet matches the grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			tokens, err := tokenizer.New(in, false).Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize %s: %w", in.File(), err)
			}
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			mismatches := grammar.NewMatcher(g).Check(tokens)
			for _, mm := range mismatches {
				fmt.Printf("%s: %s\n", in.Position(mm.Token.Pos), mm)
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%d of %d tokens do not match the grammar", len(mismatches), len(tokens))
			}
			fmt.Printf("%d tokens ok\n", len(tokens))
			return nil
		},
	}
}

func newGrammarScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file>",
		Short: "Split a stylesheet into lexemes using only the grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			for _, lx := range grammar.NewMatcher(g).Scan(in.CSS()) {
				fmt.Printf("%s\t%d\t%q\n", lx.Kind, lx.Offset, lx.Text)
			}
			return nil
		},
	}
}

func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(os.Stderr, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}
