package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/lcss/workspace"
)

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			server := workspace.NewLSPServer(version, cfg)
			return server.RunStdio()
		},
	}
}
