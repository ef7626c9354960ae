// Package lexer turns PHP source bytes into a token stream. Comments are
// not tokens: they are collected as leading trivia on the next significant
// token, together with the newline counts the formatter needs to preserve
// blank-line structure.
package lexer

import (
	"fmt"

	"phpfmt/internal/diag"
	"phpfmt/internal/source"
	"phpfmt/internal/token"
)

type Lexer struct {
	file *source.File
	cur  cursor
	opts Options

	sawOpenTag  bool
	sawCloseTag bool
	look        *token.Token

	// pendingNewlines carries newline counts consumed before the lexer
	// decided what it was looking at (open-tag probing).
	pendingNewlines int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		cur:  newCursor(file),
		opts: opts,
	}
}

// Next returns the next significant token with its leading trivia attached.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// Peek returns the upcoming token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

func (lx *Lexer) scan() token.Token {
	if !lx.sawOpenTag {
		if tok, ok := lx.scanOpenTag(); ok {
			return tok
		}
	}
	if lx.sawCloseTag {
		return lx.afterCloseTag()
	}

	leading, newlines := lx.collectLeadingTrivia()

	if lx.cur.eof() {
		return token.Token{
			Kind:           token.EOF,
			Span:           lx.cur.span(lx.cur.off),
			Leading:        leading,
			NewlinesBefore: newlines,
		}
	}

	tok := lx.scanToken()
	tok.Leading = leading
	tok.NewlinesBefore = newlines
	if tok.Kind == token.CloseTag {
		lx.sawCloseTag = true
	}
	return tok
}

// Tokenize runs the lexer over the whole file. The returned slice always
// ends with an EOF token.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// scanOpenTag handles the start of the file. Only pure PHP files are
// supported: the content must open with '<?php' after optional whitespace.
// On a missing tag the lexer reports and proceeds as if the tag were there.
func (lx *Lexer) scanOpenTag() (token.Token, bool) {
	newlines := 0
	for !lx.cur.eof() {
		switch lx.cur.peek() {
		case ' ', '\t':
			lx.cur.bump()
		case '\n':
			newlines++
			lx.cur.bump()
		default:
			goto probed
		}
	}
probed:
	lx.sawOpenTag = true
	start := lx.cur.off
	if lx.cur.has("<?php") && !isIdentContinue(lx.cur.peekAt(5)) {
		lx.cur.bumpN(5)
		return token.Token{
			Kind:           token.OpenTag,
			Span:           lx.cur.span(start),
			Text:           "<?php",
			NewlinesBefore: newlines,
		}, true
	}
	if !lx.cur.eof() {
		lx.report(diag.LexMissingOpenTag, lx.cur.span(start),
			"file does not start with '<?php'")
	}
	lx.pendingNewlines = newlines
	return token.Token{}, false
}

// afterCloseTag consumes the tail of the file past '?>'. Anything other
// than whitespace there is inline HTML, which the formatter does not
// handle.
func (lx *Lexer) afterCloseTag() token.Token {
	for !lx.cur.eof() {
		switch lx.cur.peek() {
		case ' ', '\t', '\n':
			lx.cur.bump()
		default:
			start := lx.cur.off
			lx.cur.bumpN(lx.cur.limit - lx.cur.off)
			lx.report(diag.LexUnknownChar, lx.cur.span(start),
				"content after '?>' is not supported")
			return token.Token{Kind: token.EOF, Span: lx.cur.span(lx.cur.off)}
		}
	}
	return token.Token{Kind: token.EOF, Span: lx.cur.span(lx.cur.off)}
}

// collectLeadingTrivia skips whitespace and gathers comments until the next
// significant token. It returns the comments in source order and the number
// of newlines between the last comment (or the previous token) and whatever
// comes next.
func (lx *Lexer) collectLeadingTrivia() ([]token.Trivia, int) {
	var trivia []token.Trivia
	newlines := lx.pendingNewlines
	lx.pendingNewlines = 0
	for !lx.cur.eof() {
		ch := lx.cur.peek()
		switch {
		case ch == ' ' || ch == '\t':
			lx.cur.bump()
		case ch == '\n':
			newlines++
			lx.cur.bump()
		case ch == '/' && lx.cur.peekAt(1) == '/':
			trivia = append(trivia, lx.scanLineComment(newlines))
			newlines = 0
		case ch == '#':
			trivia = append(trivia, lx.scanLineComment(newlines))
			newlines = 0
		case ch == '/' && lx.cur.peekAt(1) == '*':
			trivia = append(trivia, lx.scanBlockComment(newlines))
			newlines = 0
		default:
			return trivia, newlines
		}
	}
	return trivia, newlines
}

func (lx *Lexer) scanLineComment(newlines int) token.Trivia {
	start := lx.cur.off
	for !lx.cur.eof() && lx.cur.peek() != '\n' {
		lx.cur.bump()
	}
	return token.Trivia{
		Kind:           token.TriviaLineComment,
		Span:           lx.cur.span(start),
		Text:           lx.cur.text(start),
		NewlinesBefore: newlines,
	}
}

func (lx *Lexer) scanBlockComment(newlines int) token.Trivia {
	start := lx.cur.off
	lx.cur.bumpN(2) // /*
	kind := token.TriviaBlockComment
	if lx.cur.peek() == '*' && lx.cur.peekAt(1) != '/' {
		kind = token.TriviaDocComment
	}
	closed := false
	for !lx.cur.eof() {
		if lx.cur.peek() == '*' && lx.cur.peekAt(1) == '/' {
			lx.cur.bumpN(2)
			closed = true
			break
		}
		lx.cur.bump()
	}
	if !closed {
		lx.report(diag.LexUnterminatedBlockComment, lx.cur.span(start),
			"block comment is never closed")
	}
	return token.Trivia{
		Kind:           kind,
		Span:           lx.cur.span(start),
		Text:           lx.cur.text(start),
		NewlinesBefore: newlines,
	}
}

// scanToken scans one significant token. The cursor is known to sit on a
// non-whitespace, non-comment byte.
func (lx *Lexer) scanToken() token.Token {
	ch := lx.cur.peek()
	switch {
	case ch == '$':
		return lx.scanVariable()
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case ch == '\\' && isIdentStart(lx.cur.peekAt(1)):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '.' && isDigit(lx.cur.peekAt(1)):
		return lx.scanNumber()
	case ch == '\'':
		return lx.scanSingleQuoted()
	case ch == '"':
		return lx.scanDoubleQuoted()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) scanVariable() token.Token {
	start := lx.cur.off
	lx.cur.bump() // $
	if !isIdentStart(lx.cur.peek()) {
		tok := lx.makeToken(token.Invalid, start)
		lx.report(diag.LexUnknownChar, tok.Span, "'$' is not followed by a variable name")
		return tok
	}
	for isIdentContinue(lx.cur.peek()) {
		lx.cur.bump()
	}
	return lx.makeToken(token.Variable, start)
}

// scanIdentOrKeyword scans a name, consuming backslash-separated segments
// so qualified names like 'Foo\Bar' and '\DateTime' arrive as one token.
// Keyword lookup applies only to single unqualified segments.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cur.off
	qualified := false
	if lx.cur.peek() == '\\' {
		qualified = true
		lx.cur.bump()
	}
	for {
		for isIdentContinue(lx.cur.peek()) {
			lx.cur.bump()
		}
		if lx.cur.peek() == '\\' && isIdentStart(lx.cur.peekAt(1)) {
			qualified = true
			lx.cur.bump()
			continue
		}
		break
	}
	tok := lx.makeToken(token.Ident, start)
	if !qualified {
		tok.Kind = token.LookupKeyword(tok.Text)
	}
	return tok
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cur.off
	kind := token.IntLit

	if lx.cur.peek() == '0' {
		switch lx.cur.peekAt(1) {
		case 'x', 'X':
			lx.cur.bumpN(2)
			if !lx.digits(isHexDigit) {
				return lx.badNumber(start, "hexadecimal literal has no digits")
			}
			return lx.makeToken(token.IntLit, start)
		case 'b', 'B':
			lx.cur.bumpN(2)
			if !lx.digits(isBinDigit) {
				return lx.badNumber(start, "binary literal has no digits")
			}
			return lx.makeToken(token.IntLit, start)
		case 'o', 'O':
			lx.cur.bumpN(2)
			if !lx.digits(isOctDigit) {
				return lx.badNumber(start, "octal literal has no digits")
			}
			return lx.makeToken(token.IntLit, start)
		}
	}

	lx.digits(isDigit)
	if lx.cur.peek() == '.' && isDigit(lx.cur.peekAt(1)) {
		kind = token.FloatLit
		lx.cur.bump()
		lx.digits(isDigit)
	}
	if ch := lx.cur.peek(); ch == 'e' || ch == 'E' {
		next := lx.cur.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(lx.cur.peekAt(2))) {
			kind = token.FloatLit
			lx.cur.bump()
			if ch := lx.cur.peek(); ch == '+' || ch == '-' {
				lx.cur.bump()
			}
			lx.digits(isDigit)
		}
	}
	return lx.makeToken(kind, start)
}

// digits consumes a run of digits with embedded '_' separators. Returns
// false when no digit was consumed at all.
func (lx *Lexer) digits(valid func(byte) bool) bool {
	any := false
	for {
		ch := lx.cur.peek()
		if valid(ch) {
			any = true
			lx.cur.bump()
			continue
		}
		if ch == '_' && valid(lx.cur.peekAt(1)) {
			lx.cur.bump()
			continue
		}
		return any
	}
}

func (lx *Lexer) badNumber(start uint32, msg string) token.Token {
	tok := lx.makeToken(token.Invalid, start)
	lx.report(diag.LexBadNumber, tok.Span, msg)
	return tok
}

func (lx *Lexer) scanSingleQuoted() token.Token {
	return lx.scanQuoted('\'', token.StringLit)
}

func (lx *Lexer) scanDoubleQuoted() token.Token {
	return lx.scanQuoted('"', token.InterpStringLit)
}

// scanQuoted keeps the literal verbatim, quotes included. Escape sequences
// are not decoded; a backslash merely shields the next byte from ending the
// literal.
func (lx *Lexer) scanQuoted(quote byte, kind token.Kind) token.Token {
	start := lx.cur.off
	lx.cur.bump() // opening quote
	for !lx.cur.eof() {
		ch := lx.cur.bump()
		if ch == '\\' && !lx.cur.eof() {
			lx.cur.bump()
			continue
		}
		if ch == quote {
			return lx.makeToken(kind, start)
		}
	}
	tok := lx.makeToken(kind, start)
	lx.report(diag.LexUnterminatedString, tok.Span, "string literal is never closed")
	return tok
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.cur.off
	ch := lx.cur.bump()

	two := func(next byte, twoKind, oneKind token.Kind) token.Token {
		if lx.cur.peek() == next {
			lx.cur.bump()
			return lx.makeToken(twoKind, start)
		}
		return lx.makeToken(oneKind, start)
	}

	switch ch {
	case '+':
		switch lx.cur.peek() {
		case '+':
			lx.cur.bump()
			return lx.makeToken(token.Inc, start)
		case '=':
			lx.cur.bump()
			return lx.makeToken(token.PlusAssign, start)
		}
		return lx.makeToken(token.Plus, start)
	case '-':
		switch lx.cur.peek() {
		case '-':
			lx.cur.bump()
			return lx.makeToken(token.Dec, start)
		case '=':
			lx.cur.bump()
			return lx.makeToken(token.MinusAssign, start)
		case '>':
			lx.cur.bump()
			return lx.makeToken(token.Arrow, start)
		}
		return lx.makeToken(token.Minus, start)
	case '*':
		switch lx.cur.peek() {
		case '*':
			lx.cur.bump()
			return lx.makeToken(token.StarStar, start)
		case '=':
			lx.cur.bump()
			return lx.makeToken(token.StarAssign, start)
		}
		return lx.makeToken(token.Star, start)
	case '/':
		return two('=', token.SlashAssign, token.Slash)
	case '%':
		return two('=', token.PercentAssign, token.Percent)
	case '.':
		if lx.cur.peek() == '.' && lx.cur.peekAt(1) == '.' {
			lx.cur.bumpN(2)
			return lx.makeToken(token.Ellipsis, start)
		}
		return two('=', token.DotAssign, token.Dot)
	case '=':
		if lx.cur.peek() == '=' {
			lx.cur.bump()
			if lx.cur.peek() == '=' {
				lx.cur.bump()
				return lx.makeToken(token.EqEqEq, start)
			}
			return lx.makeToken(token.EqEq, start)
		}
		return two('>', token.DoubleArrow, token.Assign)
	case '!':
		if lx.cur.peek() == '=' {
			lx.cur.bump()
			if lx.cur.peek() == '=' {
				lx.cur.bump()
				return lx.makeToken(token.BangEqEq, start)
			}
			return lx.makeToken(token.BangEq, start)
		}
		return lx.makeToken(token.Bang, start)
	case '<':
		if lx.cur.peek() == '=' && lx.cur.peekAt(1) == '>' {
			lx.cur.bumpN(2)
			return lx.makeToken(token.Spaceship, start)
		}
		if lx.cur.peek() == '<' {
			lx.cur.bump()
			return lx.makeToken(token.Shl, start)
		}
		return two('=', token.LtEq, token.Lt)
	case '>':
		if lx.cur.peek() == '>' {
			lx.cur.bump()
			return lx.makeToken(token.Shr, start)
		}
		return two('=', token.GtEq, token.Gt)
	case '&':
		return two('&', token.AndAnd, token.Amp)
	case '|':
		return two('|', token.OrOr, token.Pipe)
	case '?':
		switch lx.cur.peek() {
		case '?':
			lx.cur.bump()
			if lx.cur.peek() == '=' {
				lx.cur.bump()
				return lx.makeToken(token.CoalesceAssign, start)
			}
			return lx.makeToken(token.QuestionQuestion, start)
		case '-':
			if lx.cur.peekAt(1) == '>' {
				lx.cur.bumpN(2)
				return lx.makeToken(token.NullArrow, start)
			}
		case '>':
			lx.cur.bump()
			return lx.makeToken(token.CloseTag, start)
		}
		return lx.makeToken(token.Question, start)
	case ':':
		return two(':', token.ColonColon, token.Colon)
	case ';':
		return lx.makeToken(token.Semicolon, start)
	case ',':
		return lx.makeToken(token.Comma, start)
	case '(':
		return lx.makeToken(token.LParen, start)
	case ')':
		return lx.makeToken(token.RParen, start)
	case '{':
		return lx.makeToken(token.LBrace, start)
	case '}':
		return lx.makeToken(token.RBrace, start)
	case '[':
		return lx.makeToken(token.LBracket, start)
	case ']':
		return lx.makeToken(token.RBracket, start)
	case '^':
		return lx.makeToken(token.Caret, start)
	case '~':
		return lx.makeToken(token.Tilde, start)
	case '@':
		return lx.makeToken(token.At, start)
	case '\\':
		return lx.makeToken(token.Backslash, start)
	default:
		tok := lx.makeToken(token.Invalid, start)
		lx.report(diag.LexUnknownChar, tok.Span,
			fmt.Sprintf("unexpected character %q", ch))
		return tok
	}
}

func (lx *Lexer) makeToken(kind token.Kind, start uint32) token.Token {
	return token.Token{
		Kind: kind,
		Span: lx.cur.span(start),
		Text: lx.cur.text(start),
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= 0x80
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func isBinDigit(ch byte) bool { return ch == '0' || ch == '1' }

func isOctDigit(ch byte) bool { return ch >= '0' && ch <= '7' }
