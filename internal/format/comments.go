package format

import (
	"strings"

	"phpfmt/internal/doc"
	"phpfmt/internal/token"
)

// comment renders one comment verbatim. Multi-line block comments are
// split so the layout engine can re-indent every line; continuation lines
// that start with '*' are re-aligned under the opener the way doc blocks
// are conventionally written.
func (p *printer) comment(c token.Trivia) doc.Doc {
	if !strings.Contains(c.Text, "\n") {
		return doc.Text(c.Text)
	}
	lines := strings.Split(c.Text, "\n")
	parts := doc.Concat{doc.Text(lines[0])}
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "*") {
			trimmed = " " + trimmed
		}
		parts = append(parts, doc.HardLine, doc.Text(trimmed))
	}
	return parts
}

// appendLead emits leading comments, each on its own line, preserving at
// most one blank line between consecutive comments and before the
// annotated construct.
func (p *printer) appendLead(parts doc.Concat, lead []token.Trivia, gap bool) doc.Concat {
	for i, c := range lead {
		if i > 0 {
			if c.NewlinesBefore >= 2 {
				parts = append(parts, doc.LiteralLine)
			}
			parts = append(parts, doc.HardLine)
		}
		parts = append(parts, p.comment(c))
	}
	if len(lead) > 0 {
		if gap {
			parts = append(parts, doc.LiteralLine)
		}
		parts = append(parts, doc.HardLine)
	}
	return parts
}

// appendTrail emits a same-line trailing comment after the construct.
func (p *printer) appendTrail(parts doc.Concat, trail []token.Trivia) doc.Concat {
	for _, c := range trail {
		parts = append(parts, doc.Text(" "), p.comment(c))
	}
	return parts
}
