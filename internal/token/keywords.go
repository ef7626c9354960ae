package token

import "strings"

var keywords = map[string]Kind{
	"function":   KwFunction,
	"fn":         KwFn,
	"return":     KwReturn,
	"if":         KwIf,
	"elseif":     KwElseif,
	"else":       KwElse,
	"while":      KwWhile,
	"do":         KwDo,
	"for":        KwFor,
	"foreach":    KwForeach,
	"as":         KwAs,
	"break":      KwBreak,
	"continue":   KwContinue,
	"echo":       KwEcho,
	"class":      KwClass,
	"interface":  KwInterface,
	"extends":    KwExtends,
	"implements": KwImplements,
	"public":     KwPublic,
	"protected":  KwProtected,
	"private":    KwPrivate,
	"static":     KwStatic,
	"const":      KwConst,
	"new":        KwNew,
	"instanceof": KwInstanceof,
	"use":        KwUse,
	"namespace":  KwNamespace,
	"array":      KwArray,
	"true":       KwTrue,
	"false":      KwFalse,
	"null":       KwNull,
}

// LookupKeyword maps an identifier to its keyword kind, or returns Ident.
// PHP keywords are case-insensitive; the canonical spelling is lowercase.
func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[strings.ToLower(ident)]; ok {
		return kind
	}
	return Ident
}

// KeywordText returns the canonical lowercase spelling of a keyword kind,
// or the empty string for non-keywords.
func KeywordText(k Kind) string {
	if k >= KwFunction && k <= KwNull {
		return kindNames[k]
	}
	return ""
}
