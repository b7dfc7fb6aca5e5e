package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/lcss/config"
	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/parser"
	"github.com/dhamidi/lcss/css/syntax"
)

// readInput reads a stylesheet from path, or from stdin when path is "-".
func readInput(path string) (*input.Input, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		path = "<stdin>"
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return input.New(string(data), path), nil
}

// parseFile parses path and reports structural faults on stderr. In
// strict mode the first fault is returned as an error.
func parseFile(path string, cfg *config.Config) (*syntax.Node, *input.Input, error) {
	in, err := readInput(path)
	if err != nil {
		return nil, nil, err
	}
	var opts []parser.Option
	if cfg.Strict {
		opts = append(opts, parser.WithStrict())
	}
	p := parser.New(in, opts...)
	err = p.Parse()
	for _, e := range p.Errors() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", e.Position, e.Kind)
	}
	if err != nil && cfg.Strict {
		return p.Root(), in, fmt.Errorf("parse %s: %w", path, err)
	}
	return p.Root(), in, nil
}

// stylesheets returns args, or every stylesheet the configuration
// includes when args is empty.
func stylesheets(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	files, err := cfg.Stylesheets()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no stylesheets under %s", cfg.RootDir)
	}
	return files, nil
}
