package token

import "phpfmt/internal/source"

//go:generate stringer -type=TriviaKind -trimprefix=Trivia

type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota
	TriviaBlockComment
	TriviaDocComment
)

// Trivia is a comment attached to the token that follows it.
// NewlinesBefore counts the source newlines between the previous token (or
// trivia item) and this one; zero means same line, two or more means at
// least one blank line separated them.
type Trivia struct {
	Kind           TriviaKind
	Span           source.Span
	Text           string
	NewlinesBefore int
}

// OwnLine reports whether the comment started on its own line rather than
// trailing code on the same line.
func (t Trivia) OwnLine() bool { return t.NewlinesBefore > 0 }
