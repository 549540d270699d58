package xmlcontext

import (
	"testing"

	"github.com/dhamidi/xmlsp/document"
)

func TestRecoveryFromUnterminatedInput(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		line      int
		character int
		wantType  TokenType
		wantName  string
	}{
		{
			name:      "truncated tag",
			source:    `<ro`,
			line:      0,
			character: 3, // right after 'ro'
			wantType:  TokenTag,
			wantName:  "ro",
		},
		{
			name:      "truncated tag, cursor on first letter",
			source:    `<ro`,
			line:      0,
			character: 1,
			wantType:  TokenTag,
			wantName:  "ro",
		},
		{
			name:      "half-typed attribute key",
			source:    `<tool id="x" na`,
			line:      0,
			character: 3, // still on the tag name
			wantType:  TokenTag,
			wantName:  "tool",
		},
		{
			name:      "attribute key on unterminated element",
			source:    `<tool id="x`,
			line:      0,
			character: 7, // on 'd' of id
			wantType:  TokenAttributeKey,
			wantName:  "id",
		},
		{
			name:      "truncated attribute value without closing quote",
			source:    `<tool id="x`,
			line:      0,
			character: 10, // on 'x'
			wantType:  TokenAttributeValue,
			wantName:  "x",
		},
		{
			name:      "second attribute value",
			source:    `<tool id="x" version="1.0`,
			line:      0,
			character: 23, // inside 1.0
			wantType:  TokenAttributeValue,
			wantName:  "1.0",
		},
		{
			name:      "cursor away from any construct stays unknown",
			source:    `<ro`,
			line:      0,
			character: 0, // on '<'
			wantType:  TokenUnknown,
		},
		{
			name:      "unterminated tag on a later line",
			source:    "<root>\n  <chi",
			line:      1,
			character: 4, // on 'h'
			wantType:  TokenTag,
			wantName:  "chi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New(tt.source)
			ctx := parseContext(doc, document.Position{Line: tt.line, Character: tt.character})
			if ctx.TokenType != tt.wantType {
				t.Errorf("TokenType = %v, want %v", ctx.TokenType, tt.wantType)
			}
			if ctx.TokenName != tt.wantName {
				t.Errorf("TokenName = %q, want %q", ctx.TokenName, tt.wantName)
			}
		})
	}
}

// Stack state survives recovery: elements closed before the fault are
// popped, open ones remain.
func TestRecoveryKeepsAncestorStack(t *testing.T) {
	doc := document.New("<root>\n  <done></done>\n  <chi")
	ctx := parseContext(doc, document.Position{Line: 2, Character: 4})

	if ctx.TokenType != TokenTag || ctx.TokenName != "chi" {
		t.Fatalf("token = %v %q, want tag chi", ctx.TokenType, ctx.TokenName)
	}
	want := []string{"root"}
	if !equalStacks(ctx.AncestorStack, want) {
		t.Errorf("AncestorStack = %v, want %v", ctx.AncestorStack, want)
	}
}
