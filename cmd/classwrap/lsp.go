package main

import (
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/lsp"
	"github.com/spf13/cobra"
)

func lspCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdio",
		Long: `Run a language server that answers textDocument/formatting and
textDocument/rangeFormatting. Configure it with a "classwrap" settings object:

  {"classwrap": {"hostCommand": "prettier", "options": {"printWidth": 100}}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := lsp.NewServer()
			if err != nil {
				return err
			}
			defer func() { _ = server.Close() }()

			log.Info("Starting language server on stdio")
			return server.RunStdio()
		},
	}
}
