package main

import (
	"fmt"

	"github.com/dhamidi/xmlsp/langserver"
	"github.com/dhamidi/xmlsp/xsd"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := xsd.LoadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("load schema: %w", err)
			}
			server := langserver.NewServer("0.1.0", tree)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "XML schema (.xsd) describing the documents to assist")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
