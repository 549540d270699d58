package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dhamidi/xmlsp/document"
	"github.com/dhamidi/xmlsp/xmlcontext"
	"github.com/dhamidi/xmlsp/xsd"
	"github.com/spf13/cobra"
)

func newContextCmd() *cobra.Command {
	var line int
	var character int
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "context <file>",
		Short: "Resolve the token and ancestor chain at a document position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			var tree *xsd.Tree
			if schemaPath != "" {
				tree, err = xsd.LoadFile(schemaPath)
				if err != nil {
					return fmt.Errorf("load schema: %w", err)
				}
			} else {
				tree = xsd.NewTree(&xsd.Node{Name: "document"})
			}

			svc := xmlcontext.NewService(tree)
			ctx := svc.Resolve(document.New(string(data)), document.Position{Line: line, Character: character})

			out := contextReport{
				Line:          ctx.TargetPosition.Line,
				Character:     ctx.TargetPosition.Character,
				IsEmpty:       ctx.IsEmpty,
				TokenType:     ctx.TokenType.String(),
				TokenName:     ctx.TokenName,
				AncestorStack: ctx.AncestorStack,
			}
			if ctx.Node != nil {
				out.SchemaNode = ctx.Node.Path()
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 0, "zero-based line of the cursor")
	cmd.Flags().IntVarP(&character, "character", "c", 0, "zero-based character of the cursor")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "XML schema (.xsd) for node attachment")

	return cmd
}

type contextReport struct {
	Line          int      `json:"line"`
	Character     int      `json:"character"`
	IsEmpty       bool     `json:"isEmpty"`
	TokenType     string   `json:"tokenType"`
	TokenName     string   `json:"tokenName,omitempty"`
	AncestorStack []string `json:"ancestorStack,omitempty"`
	SchemaNode    string   `json:"schemaNode,omitempty"`
}
