package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// OpenTag represents the '<?php' opening tag.
	OpenTag
	// CloseTag represents the '?>' closing tag.
	CloseTag

	// Ident represents an identifier or unqualified name.
	Ident
	// Variable represents a '$name' variable.
	Variable

	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwFn represents the 'fn' keyword (arrow functions).
	KwFn // fn
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElseif represents the 'elseif' keyword.
	KwElseif // elseif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwForeach represents the 'foreach' keyword.
	KwForeach // foreach
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwEcho represents the 'echo' keyword.
	KwEcho // echo
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwImplements represents the 'implements' keyword.
	KwImplements // implements
	// KwPublic represents the 'public' keyword.
	KwPublic // public
	// KwProtected represents the 'protected' keyword.
	KwProtected // protected
	// KwPrivate represents the 'private' keyword.
	KwPrivate // private
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwInstanceof represents the 'instanceof' keyword.
	KwInstanceof // instanceof
	// KwUse represents the 'use' keyword (imports and closure captures).
	KwUse // use
	// KwNamespace represents the 'namespace' keyword.
	KwNamespace // namespace
	// KwArray represents the legacy 'array' keyword.
	KwArray // array
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false
	// KwNull represents the 'null' literal keyword.
	KwNull // null

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a single-quoted string literal.
	StringLit
	// InterpStringLit represents a double-quoted string literal,
	// possibly containing interpolation; kept verbatim.
	InterpStringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// StarStar represents the exponentiation operator token.
	StarStar // **
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Dot represents the string concatenation operator token.
	Dot // .
	// Assign represents the assignment operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// DotAssign represents the concat assign operator token.
	DotAssign // .=
	// CoalesceAssign represents the null coalescing assign operator token.
	CoalesceAssign // ??=
	// EqEq represents the loose equality operator token.
	EqEq // ==
	// EqEqEq represents the strict equality operator token.
	EqEqEq // ===
	// BangEq represents the loose inequality operator token.
	BangEq // !=
	// BangEqEq represents the strict inequality operator token.
	BangEqEq // !==
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// Spaceship represents the three-way comparison operator token.
	Spaceship // <=>
	// AndAnd represents the logical and operator token.
	AndAnd // &&
	// OrOr represents the logical or operator token.
	OrOr // ||
	// Bang represents the logical not operator token.
	Bang // !
	// Question represents the question operator token.
	Question // ?
	// QuestionQuestion represents the null coalescing operator token.
	QuestionQuestion // ??
	// Colon represents the colon operator token.
	Colon // :
	// ColonColon represents the scope resolution operator token.
	ColonColon // ::
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Arrow represents the object access operator token.
	Arrow // ->
	// NullArrow represents the null-safe object access operator token.
	NullArrow // ?->
	// DoubleArrow represents the key/value arrow token.
	DoubleArrow // =>
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Amp represents the bitwise and / by-reference token.
	Amp // &
	// Pipe represents the bitwise or operator token.
	Pipe // |
	// Caret represents the bitwise xor operator token.
	Caret // ^
	// Tilde represents the bitwise not operator token.
	Tilde // ~
	// Shl represents the shift left operator token.
	Shl // <<
	// Shr represents the shift right operator token.
	Shr // >>
	// Inc represents the increment operator token.
	Inc // ++
	// Dec represents the decrement operator token.
	Dec // --
	// Backslash represents a namespace separator token.
	Backslash // \
	// Ellipsis represents the spread/variadic token.
	Ellipsis // ...
	// At represents the error suppression operator token.
	At // @
)

var kindNames = map[Kind]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	OpenTag:          "OpenTag",
	CloseTag:         "CloseTag",
	Ident:            "Ident",
	Variable:         "Variable",
	KwFunction:       "function",
	KwFn:             "fn",
	KwReturn:         "return",
	KwIf:             "if",
	KwElseif:         "elseif",
	KwElse:           "else",
	KwWhile:          "while",
	KwDo:             "do",
	KwFor:            "for",
	KwForeach:        "foreach",
	KwAs:             "as",
	KwBreak:          "break",
	KwContinue:       "continue",
	KwEcho:           "echo",
	KwClass:          "class",
	KwInterface:      "interface",
	KwExtends:        "extends",
	KwImplements:     "implements",
	KwPublic:         "public",
	KwProtected:      "protected",
	KwPrivate:        "private",
	KwStatic:         "static",
	KwConst:          "const",
	KwNew:            "new",
	KwInstanceof:     "instanceof",
	KwUse:            "use",
	KwNamespace:      "namespace",
	KwArray:          "array",
	KwTrue:           "true",
	KwFalse:          "false",
	KwNull:           "null",
	IntLit:           "IntLit",
	FloatLit:         "FloatLit",
	StringLit:        "StringLit",
	InterpStringLit:  "InterpStringLit",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	StarStar:         "**",
	Slash:            "/",
	Percent:          "%",
	Dot:              ".",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	DotAssign:        ".=",
	CoalesceAssign:   "??=",
	EqEq:             "==",
	EqEqEq:           "===",
	BangEq:           "!=",
	BangEqEq:         "!==",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Spaceship:        "<=>",
	AndAnd:           "&&",
	OrOr:             "||",
	Bang:             "!",
	Question:         "?",
	QuestionQuestion: "??",
	Colon:            ":",
	ColonColon:       "::",
	Semicolon:        ";",
	Comma:            ",",
	Arrow:            "->",
	NullArrow:        "?->",
	DoubleArrow:      "=>",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	Shl:              "<<",
	Shr:              ">>",
	Inc:              "++",
	Dec:              "--",
	Backslash:        "\\",
	Ellipsis:         "...",
	At:               "@",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}
