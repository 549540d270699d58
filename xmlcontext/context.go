// Package xmlcontext resolves the syntactic token at a cursor position
// inside an XML document that may be incomplete or malformed, the usual
// state of a document while it is being edited. The result carries the
// token under the cursor, the chain of enclosing elements, and the
// schema node definition associated with the innermost one.
package xmlcontext

import (
	"github.com/dhamidi/xmlsp/document"
	"github.com/dhamidi/xmlsp/xsd"
)

// TokenType classifies the token found at the cursor position.
type TokenType int

const (
	TokenUnknown TokenType = iota
	TokenTag
	TokenAttributeKey
	TokenAttributeValue
)

func (t TokenType) String() string {
	switch t {
	case TokenTag:
		return "tag"
	case TokenAttributeKey:
		return "attribute-key"
	case TokenAttributeValue:
		return "attribute-value"
	default:
		return "unknown"
	}
}

// Context is the result of resolving a cursor position inside an XML
// document. A fresh Context is built per resolution and never reused.
type Context struct {
	// DocumentLine is the raw text of the line containing the cursor.
	DocumentLine string

	// TargetPosition is the queried cursor position.
	TargetPosition document.Position

	// IsEmpty reports that the whole document was empty or
	// whitespace-only; no parse was attempted.
	IsEmpty bool

	// TokenName is the resolved tag name, attribute key, or attribute
	// value text. Meaningful only when TokenType is not TokenUnknown.
	TokenName string

	// TokenType classifies TokenName.
	TokenType TokenType

	// AncestorStack holds the element names enclosing the token, root
	// first, innermost last. The same name may repeat when an element
	// nests under itself.
	AncestorStack []string

	// Node is the schema definition attached after parsing, looked up
	// by the innermost ancestor name. Nil until attachment runs.
	Node *xsd.Node
}

// IsTag reports whether the token in context is an element tag.
func (c *Context) IsTag() bool {
	return c.TokenType == TokenTag
}

// IsAttributeKey reports whether the token in context is an attribute key.
func (c *Context) IsAttributeKey() bool {
	return c.TokenType == TokenAttributeKey
}

// IsAttributeValue reports whether the token in context is an attribute value.
func (c *Context) IsAttributeValue() bool {
	return c.TokenType == TokenAttributeValue
}

// attachNode resolves the schema node for this context. The lookup uses
// only the innermost ancestor name, not the full path, so a name that
// recurs at several schema locations resolves to one definition for
// that name. An empty stack or a failed lookup falls back to the root.
func (c *Context) attachNode(tree *xsd.Tree) {
	if len(c.AncestorStack) == 0 {
		c.Node = tree.Root()
		return
	}
	last := c.AncestorStack[len(c.AncestorStack)-1]
	if n := tree.FindNodeByName(last); n != nil {
		c.Node = n
		return
	}
	c.Node = tree.Root()
}
