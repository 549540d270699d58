package xmlcontext

import (
	"github.com/dhamidi/xmlsp/document"
	"github.com/dhamidi/xmlsp/xsd"
)

// Service resolves cursor positions against one shared schema index.
// The index is read-only, so a single Service is safe for concurrent
// use; every resolution owns its Context and its decoder.
type Service struct {
	tree *xsd.Tree
}

// NewService returns a Service backed by the given schema index.
func NewService(tree *xsd.Tree) *Service {
	return &Service{tree: tree}
}

// Resolve returns the context at the given position inside the
// document. It always returns a value: a document too broken to parse
// yields a context with TokenUnknown, never an error. An empty or
// whitespace-only document short-circuits to an empty context.
func (s *Service) Resolve(doc *document.Document, pos document.Position) *Context {
	ctx := parseContext(doc, pos)
	if ctx.IsEmpty {
		return ctx
	}
	ctx.attachNode(s.tree)
	return ctx
}
