// Package style holds the immutable formatting configuration: width,
// indentation, brace placement, trailing commas, and line endings. A
// Config is resolved once per run and shared read-only by every
// formatting task.
package style

import (
	"fmt"
)

// BraceStyle controls where an opening brace is placed.
type BraceStyle string

const (
	// BraceSameLine keeps the opening brace on the line of its construct.
	BraceSameLine BraceStyle = "same_line"
	// BraceNextLine puts the opening brace on its own line.
	BraceNextLine BraceStyle = "next_line"
)

// TrailingComma controls trailing commas in argument, parameter, and
// array lists.
type TrailingComma string

const (
	// TrailingNone never emits trailing commas.
	TrailingNone TrailingComma = "none"
	// TrailingAlways emits a trailing comma whenever the list breaks, and
	// keeps one-element-per-line fills terminated too.
	TrailingAlways TrailingComma = "always"
	// TrailingMultiline emits a trailing comma only for lists that render
	// across multiple lines.
	TrailingMultiline TrailingComma = "multiline"
)

// EndOfLine selects the emitted line separator.
type EndOfLine string

const (
	EOLLF   EndOfLine = "lf"
	EOLCRLF EndOfLine = "crlf"
)

// Config is the resolved style configuration. It must not be mutated once
// a run has started; per-file deviations require a fresh copy.
type Config struct {
	Width          int           `toml:"width"`
	IndentWidth    int           `toml:"indent_width"`
	UseTabs        bool          `toml:"use_tabs"`
	BraceFunctions BraceStyle    `toml:"function_brace_style"`
	BraceClasses   BraceStyle    `toml:"class_brace_style"`
	BraceControl   BraceStyle    `toml:"control_brace_style"`
	TrailingComma  TrailingComma `toml:"trailing_comma"`
	EndOfLine      EndOfLine     `toml:"end_of_line"`
	SingleQuote    bool          `toml:"single_quote"`
}

// Default returns the PSR-leaning defaults: functions and classes open
// their brace on the next line, control structures on the same line.
func Default() *Config {
	return &Config{
		Width:          80,
		IndentWidth:    4,
		UseTabs:        false,
		BraceFunctions: BraceNextLine,
		BraceClasses:   BraceNextLine,
		BraceControl:   BraceSameLine,
		TrailingComma:  TrailingMultiline,
		EndOfLine:      EOLLF,
		SingleQuote:    true,
	}
}

// Validate checks the configuration for nonsensical values.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("style: width must be positive, got %d", c.Width)
	}
	if c.IndentWidth <= 0 {
		return fmt.Errorf("style: indent_width must be positive, got %d", c.IndentWidth)
	}
	for _, b := range []BraceStyle{c.BraceFunctions, c.BraceClasses, c.BraceControl} {
		if b != BraceSameLine && b != BraceNextLine {
			return fmt.Errorf("style: invalid brace style %q", b)
		}
	}
	switch c.TrailingComma {
	case TrailingNone, TrailingAlways, TrailingMultiline:
	default:
		return fmt.Errorf("style: invalid trailing_comma %q", c.TrailingComma)
	}
	switch c.EndOfLine {
	case EOLLF, EOLCRLF:
	default:
		return fmt.Errorf("style: invalid end_of_line %q", c.EndOfLine)
	}
	return nil
}

// Clone returns a copy safe to adjust without touching the original.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}

// Fingerprint returns a stable string identifying every layout-affecting
// option; the format cache keys on it.
func (c *Config) Fingerprint() string {
	return fmt.Sprintf("w%d-i%d-t%v-bf%s-bc%s-bk%s-tc%s-eol%s-sq%v",
		c.Width, c.IndentWidth, c.UseTabs,
		c.BraceFunctions, c.BraceClasses, c.BraceControl,
		c.TrailingComma, c.EndOfLine, c.SingleQuote)
}
