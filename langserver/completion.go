package langserver

import (
	"fmt"
	"strings"

	"github.com/dhamidi/xmlsp/xmlcontext"
	"github.com/dhamidi/xmlsp/xsd"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// completionItems offers schema-derived candidates for the resolved
// context: child element names when the cursor is on a tag or in
// content, the node's attribute names when it is on an attribute key.
// Attribute values are schema-opaque here, so no candidates.
func completionItems(ctx *xmlcontext.Context, tree *xsd.Tree) []protocol.CompletionItem {
	if ctx.IsEmpty {
		return []protocol.CompletionItem{elementItem(tree.Root())}
	}
	if ctx.Node == nil || ctx.IsAttributeValue() {
		return nil
	}

	if ctx.IsAttributeKey() {
		var items []protocol.CompletionItem
		for _, name := range ctx.Node.Attributes {
			items = append(items, attributeItem(ctx.Node, name))
		}
		return items
	}

	var items []protocol.CompletionItem
	for _, child := range ctx.Node.Children {
		items = append(items, elementItem(child))
	}
	return items
}

func elementItem(n *xsd.Node) protocol.CompletionItem {
	kind := protocol.CompletionItemKindClass
	detail := n.Path()
	return protocol.CompletionItem{
		Label:  n.Name,
		Kind:   &kind,
		Detail: &detail,
	}
}

func attributeItem(n *xsd.Node, name string) protocol.CompletionItem {
	kind := protocol.CompletionItemKindProperty
	detail := n.Path() + "/@" + name
	insertText := fmt.Sprintf("%s=\"$1\"", name)
	format := protocol.InsertTextFormatSnippet
	return protocol.CompletionItem{
		Label:            name,
		Kind:             &kind,
		Detail:           &detail,
		InsertText:       &insertText,
		InsertTextFormat: &format,
	}
}

// hoverText renders a short markdown description of the schema node
// behind the resolved token. Empty when nothing resolved.
func hoverText(ctx *xmlcontext.Context) string {
	if ctx.IsEmpty || ctx.TokenType == xmlcontext.TokenUnknown || ctx.Node == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** (%s)\n\n", ctx.TokenName, ctx.TokenType)
	fmt.Fprintf(&sb, "`%s`", ctx.Node.Path())
	if len(ctx.Node.Attributes) > 0 {
		sb.WriteString("\n\nAttributes: ")
		sb.WriteString(strings.Join(ctx.Node.Attributes, ", "))
	}
	return sb.String()
}
