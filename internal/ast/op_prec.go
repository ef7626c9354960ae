package ast

import "phpfmt/internal/token"

// Binding powers for PHP 8 operators, shared by the parser (precedence
// climbing) and the printer (parenthesis reconstruction). A higher value
// binds tighter. Gaps are deliberate; PHP puts 'instanceof' above '!' but
// below the remaining prefix operators.
const (
	PrecLowest         = 1
	PrecAssign         = 2
	PrecTernary        = 3
	PrecCoalesce       = 4
	PrecOr             = 5
	PrecAnd            = 6
	PrecBitOr          = 7
	PrecBitXor         = 8
	PrecBitAnd         = 9
	PrecEquality       = 10
	PrecRelational     = 11
	PrecConcat         = 12
	PrecShift          = 13
	PrecAdditive       = 14
	PrecMultiplicative = 15
	PrecNot            = 16
	PrecInstanceof     = 17
	PrecUnary          = 18
	PrecPow            = 19
	PrecPostfix        = 20
)

// BinaryPrec returns the binding power of a binary (infix) operator token,
// or 0 when the token is not a binary operator. Assignment and the ternary
// '?' are included since the expression parser treats them as infix.
func BinaryPrec(op token.Kind) int {
	switch op {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.DotAssign,
		token.CoalesceAssign:
		return PrecAssign
	case token.Question:
		return PrecTernary
	case token.QuestionQuestion:
		return PrecCoalesce
	case token.OrOr:
		return PrecOr
	case token.AndAnd:
		return PrecAnd
	case token.Pipe:
		return PrecBitOr
	case token.Caret:
		return PrecBitXor
	case token.Amp:
		return PrecBitAnd
	case token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq, token.Spaceship:
		return PrecEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return PrecRelational
	case token.Dot:
		return PrecConcat
	case token.Shl, token.Shr:
		return PrecShift
	case token.Plus, token.Minus:
		return PrecAdditive
	case token.Star, token.Slash, token.Percent:
		return PrecMultiplicative
	case token.KwInstanceof:
		return PrecInstanceof
	case token.StarStar:
		return PrecPow
	default:
		return 0
	}
}

// RightAssoc reports whether a binary operator groups to the right.
func RightAssoc(op token.Kind) bool {
	switch op {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.DotAssign,
		token.CoalesceAssign, token.QuestionQuestion, token.StarStar,
		token.Question:
		return true
	default:
		return false
	}
}

// UnaryPrec returns the binding power of a prefix operator token, or 0.
func UnaryPrec(op token.Kind) int {
	switch op {
	case token.Bang:
		return PrecNot
	case token.Minus, token.Plus, token.Tilde, token.Inc, token.Dec, token.At:
		return PrecUnary
	default:
		return 0
	}
}
