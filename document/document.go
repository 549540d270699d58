// Package document provides an immutable snapshot of a text document
// with zero-based line/character addressing.
package document

import "strings"

// Position is a zero-based cursor position inside a document.
// Character counts code units within the line's text.
type Position struct {
	Line      int
	Character int
}

// Document is an immutable snapshot of one text document.
type Document struct {
	source string
	lines  []string
}

// New builds a Document from the full source text.
func New(source string) *Document {
	return &Document{
		source: source,
		lines:  splitLines(source),
	}
}

// Source returns the whole document text.
func (d *Document) Source() string {
	return d.source
}

// Lines returns the document's lines without their terminators.
func (d *Document) Lines() []string {
	return d.lines
}

// LineAt returns the text of the zero-based line i, or the empty
// string when i is out of range.
func (d *Document) LineAt(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// splitLines splits on \r\n, \r, or \n. Terminators are not part of
// the returned lines. The empty document has a single empty line.
func splitLines(source string) []string {
	var lines []string
	var sb strings.Builder
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
			lines = append(lines, sb.String())
			sb.Reset()
		case '\r':
			lines = append(lines, sb.String())
			sb.Reset()
			if i+1 < len(source) && source[i+1] == '\n' {
				i++
			}
		default:
			sb.WriteByte(source[i])
		}
	}
	lines = append(lines, sb.String())
	return lines
}
