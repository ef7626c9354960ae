package token

import (
	"phpfmt/internal/source"
)

// Token represents a single source token with its location and trivia.
// Leading holds the comments between the previous token and this one, in
// source order. NewlinesBefore counts the newlines between the last leading
// trivia item (or the previous token when there is none) and this token.
type Token struct {
	Kind           Kind
	Span           source.Span
	Text           string
	Leading        []Trivia
	NewlinesBefore int
}

// IsLiteral reports whether the token is a numeric, boolean, null, or
// string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, InterpStringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFunction && t.Kind <= KwNull
}

// IsAssignOp reports whether the token is an assignment operator.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign,
		PercentAssign, DotAssign, CoalesceAssign:
		return true
	default:
		return false
	}
}

// BlankLineBefore reports whether at least one fully blank line separates
// this token (including its leading comments) from the previous token.
func (t Token) BlankLineBefore() bool {
	if len(t.Leading) > 0 {
		return t.Leading[0].NewlinesBefore >= 2
	}
	return t.NewlinesBefore >= 2
}
