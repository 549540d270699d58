// Package langserver hosts the LSP front end: it keeps document
// snapshots in sync with the editor and answers completion and hover
// requests from resolved XML contexts.
package langserver

import (
	"sync"

	"github.com/dhamidi/xmlsp/document"
	"github.com/dhamidi/xmlsp/xmlcontext"
	"github.com/dhamidi/xmlsp/xsd"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "xmlsp"

type Server struct {
	service *xmlcontext.Service
	tree    *xsd.Tree
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.RWMutex
	documents map[string]*document.Document
}

func NewServer(version string, tree *xsd.Tree) *Server {
	s := &Server{
		service:   xmlcontext.NewService(tree),
		tree:      tree,
		version:   version,
		documents: make(map[string]*document.Document),
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentDidSave:    s.textDocumentDidSave,
		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentHover:      s.textDocumentHover,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	triggerChars := []string{"<", " ", "\""}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: triggerChars,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.updateDocument(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.updateDocument(params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.updateDocument(params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := s.getDocument(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	resolved := s.service.Resolve(doc, fromProtocolPosition(params.Position))
	items := completionItems(resolved, s.tree)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.getDocument(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	resolved := s.service.Resolve(doc, fromProtocolPosition(params.Position))
	value := hoverText(resolved)
	if value == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
	}, nil
}

func (s *Server) updateDocument(uri, text string) {
	s.mu.Lock()
	s.documents[uri] = document.New(text)
	s.mu.Unlock()
}

func (s *Server) getDocument(uri string) *document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[uri]
}

func fromProtocolPosition(pos protocol.Position) document.Position {
	return document.Position{
		Line:      int(pos.Line),
		Character: int(pos.Character),
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
