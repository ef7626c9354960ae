package diag

// Severity ranks how a diagnostic affects a formatting run. Errors make
// the input unformattable and fail the file; warnings and notes never
// change the output or the exit code.
type Severity uint8

const (
	// SevInfo carries advisory notes, such as normalizations applied.
	SevInfo Severity = iota
	// SevWarning flags suspicious but formattable input.
	SevWarning
	// SevError flags lexical or syntax problems that abort the file.
	SevError
)

// String returns the lowercase label used in CLI diagnostic lines.
func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevInfo:
		return "info"
	default:
		return "unknown"
	}
}
