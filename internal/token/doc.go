// Package token defines the token kinds produced by the PHP lexer, along
// with comment trivia carried on the token that follows it.
package token
