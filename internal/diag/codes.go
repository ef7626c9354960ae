package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexMissingOpenTag           Code = 1005

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynUnclosedParen      Code = 2004
	SynUnclosedBrace      Code = 2005
	SynUnclosedBracket    Code = 2006
	SynExpectVariable     Code = 2007
	SynBadAssignTarget    Code = 2008
	SynExpectMember       Code = 2009
	SynUnexpectedTopLevel Code = 2010

	// Formatting engine
	FmtUnsupportedNode Code = 3001
	FmtInternal        Code = 3002

	// IO
	IOLoadFileError Code = 4001
)

var codeNames = map[Code]string{
	UnknownCode:                 "UNKNOWN",
	LexUnknownChar:              "LEX_UNKNOWN_CHAR",
	LexUnterminatedString:       "LEX_UNTERMINATED_STRING",
	LexUnterminatedBlockComment: "LEX_UNTERMINATED_BLOCK_COMMENT",
	LexBadNumber:                "LEX_BAD_NUMBER",
	LexMissingOpenTag:           "LEX_MISSING_OPEN_TAG",
	SynUnexpectedToken:          "SYN_UNEXPECTED_TOKEN",
	SynExpectSemicolon:          "SYN_EXPECT_SEMICOLON",
	SynExpectIdentifier:         "SYN_EXPECT_IDENTIFIER",
	SynUnclosedParen:            "SYN_UNCLOSED_PAREN",
	SynUnclosedBrace:            "SYN_UNCLOSED_BRACE",
	SynUnclosedBracket:          "SYN_UNCLOSED_BRACKET",
	SynExpectVariable:           "SYN_EXPECT_VARIABLE",
	SynBadAssignTarget:          "SYN_BAD_ASSIGN_TARGET",
	SynExpectMember:             "SYN_EXPECT_MEMBER",
	SynUnexpectedTopLevel:       "SYN_UNEXPECTED_TOP_LEVEL",
	FmtUnsupportedNode:          "FMT_UNSUPPORTED_NODE",
	FmtInternal:                 "FMT_INTERNAL",
	IOLoadFileError:             "IO_LOAD_FILE",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CODE_%04d", uint16(c))
}

// IsInternal reports whether the code marks an engine bug rather than a
// problem with the user's input.
func (c Code) IsInternal() bool {
	return c == FmtInternal
}
