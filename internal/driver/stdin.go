package driver

import (
	"io"

	"phpfmt/internal/style"
)

// FormatStdin formats exactly one stream: everything from r is treated as
// a single PHP source and the formatted form is written to w. Nothing is
// written when the input does not parse.
func FormatStdin(r io.Reader, w io.Writer, opts FormatOptions) error {
	cfg := opts.Style
	if cfg == nil {
		cfg = style.Default()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	formatted, err := formatBytes("<stdin>", data, cfg, opts.MaxDiagnostics)
	if err != nil {
		return err
	}
	_, err = w.Write(formatted)
	return err
}
