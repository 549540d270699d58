package xmlcontext

import (
	"encoding/xml"
	"errors"
	"regexp"
)

// Patterns used to recover a token from the cursor's line when the
// document cannot be parsed past it. Deliberately narrow: lowercase
// tag and attribute names, word characters and dots in values, the
// closing quote optional to tolerate truncation.
var (
	startTagPattern = regexp.MustCompile(`<([a-z]+)[ \n]?`)
	attrPattern     = regexp.MustCompile(` ([a-z]*)="([\w.]*)"?`)
)

// recoverFromFault is the fault sink of the parse pass. Only one fault
// class is recovered: input ending inside an element the user has not
// finished typing. Any other fault leaves the context unresolved, with
// the ancestor stack reflecting whatever was closed before the fault.
func recoverFromFault(ctx *Context, err error) {
	var syntaxErr *xml.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return
	}
	if syntaxErr.Msg != unterminatedMsg {
		return
	}
	if recoverTag(ctx) {
		return
	}
	recoverAttribute(ctx)
}

// unterminatedMsg is the decoder's wording for input that ends before
// the current element is properly closed.
const unterminatedMsg = "unexpected EOF"

// recoverTag matches a tag-open construct on the cursor's line and
// resolves the context when the cursor sits on the matched name.
func recoverTag(ctx *Context) bool {
	m := startTagPattern.FindStringSubmatchIndex(ctx.DocumentLine)
	if m == nil {
		return false
	}
	target := ctx.TargetPosition.Character
	if m[2] <= target && target <= m[3] {
		ctx.TokenType = TokenTag
		ctx.TokenName = ctx.DocumentLine[m[2]:m[3]]
		return true
	}
	return false
}

// recoverAttribute walks every key="value"-shaped construct on the
// cursor's line, in order, and resolves the context from the first one
// whose key or value span contains the cursor.
func recoverAttribute(ctx *Context) bool {
	target := ctx.TargetPosition.Character
	for _, m := range attrPattern.FindAllStringSubmatchIndex(ctx.DocumentLine, -1) {
		if m[2] <= target && target <= m[3] {
			ctx.TokenType = TokenAttributeKey
			ctx.TokenName = ctx.DocumentLine[m[2]:m[3]]
			return true
		}
		if m[4] <= target && target <= m[5] {
			ctx.TokenType = TokenAttributeValue
			ctx.TokenName = ctx.DocumentLine[m[4]:m[5]]
			return true
		}
	}
	return false
}
