// Package layout renders a document IR tree into final text under a
// maximum line width, deciding at each group boundary whether to print
// flat or broken.
package layout

import (
	"bytes"

	"github.com/mattn/go-runewidth"

	"phpfmt/internal/doc"
)

// Options carries the layout-relevant slice of the style configuration.
type Options struct {
	Width       int
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

type mode uint8

const (
	modeFlat mode = iota
	modeBreak
)

type cmd struct {
	indent int
	mode   mode
	d      doc.Doc
}

type renderer struct {
	opts   Options
	out    bytes.Buffer
	pos    int
	broken map[doc.GroupID]bool
	stack  []cmd
}

// Render lays out the document and returns the final text. The document is
// never mutated; group break decisions live in a side table local to this
// call, so Render is safe to invoke concurrently on different documents.
func Render(d doc.Doc, opts Options) string {
	r := &renderer{
		opts:   opts.withDefaults(),
		broken: make(map[doc.GroupID]bool),
	}
	propagate(d, r.broken)
	r.stack = append(r.stack, cmd{indent: 0, mode: modeBreak, d: d})
	r.run()
	return r.out.String()
}

// propagate pre-marks every group that contains a forced break (HardLine,
// LiteralLine, BreakParent, or an already-forced nested group) as broken.
// Returns whether the subtree forces its parent to break.
func propagate(d doc.Doc, broken map[doc.GroupID]bool) bool {
	switch n := d.(type) {
	case doc.Text:
		return false
	case doc.Concat:
		forced := false
		for _, item := range n {
			if propagate(item, broken) {
				forced = true
			}
		}
		return forced
	case doc.Indent:
		return propagate(n.Inner, broken)
	case doc.Line:
		return n.Kind == doc.LineHard || n.Kind == doc.LineLiteral
	case doc.Group:
		forced := propagate(n.Inner, broken)
		if n.Break || forced {
			broken[n.ID] = true
		}
		return n.Break || forced
	case doc.IfBreak:
		// Only the flat branch matters: a forced break there would make a
		// flat rendering of the owning group impossible.
		propagate(n.Broken, broken)
		return propagate(n.Flat, broken)
	case doc.Fill:
		forced := false
		for _, item := range n {
			if propagate(item, broken) {
				forced = true
			}
		}
		return forced
	case doc.BreakParent:
		return true
	default:
		return false
	}
}

func (r *renderer) run() {
	for len(r.stack) > 0 {
		c := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]

		switch n := c.d.(type) {
		case doc.Text:
			r.text(string(n))
		case doc.Concat:
			for i := len(n) - 1; i >= 0; i-- {
				r.stack = append(r.stack, cmd{c.indent, c.mode, n[i]})
			}
		case doc.Indent:
			r.stack = append(r.stack, cmd{c.indent + 1, c.mode, n.Inner})
		case doc.Line:
			r.line(n.Kind, c)
		case doc.Group:
			inner := cmd{c.indent, modeFlat, n.Inner}
			if r.broken[n.ID] || !r.fits(inner) {
				r.broken[n.ID] = true
				inner.mode = modeBreak
			}
			r.stack = append(r.stack, inner)
		case doc.IfBreak:
			var isBroken bool
			if n.Group == 0 {
				isBroken = c.mode == modeBreak
			} else {
				isBroken = r.broken[n.Group]
			}
			if isBroken {
				r.stack = append(r.stack, cmd{c.indent, c.mode, n.Broken})
			} else {
				r.stack = append(r.stack, cmd{c.indent, c.mode, n.Flat})
			}
		case doc.Fill:
			r.fill(n, c)
		case doc.BreakParent:
			// no output
		}
	}
}

func (r *renderer) text(s string) {
	r.out.WriteString(s)
	r.pos += runewidth.StringWidth(s)
}

func (r *renderer) line(kind doc.LineKind, c cmd) {
	switch kind {
	case doc.LineLiteral:
		r.newline(0)
	case doc.LineHard:
		r.newline(c.indent)
	case doc.LineDefault:
		if c.mode == modeFlat {
			r.text(" ")
		} else {
			r.newline(c.indent)
		}
	case doc.LineSoft:
		if c.mode == modeBreak {
			r.newline(c.indent)
		}
	}
}

// newline terminates the current line, trimming trailing blanks, and emits
// the indentation for the next one.
func (r *renderer) newline(indent int) {
	trimTrailing(&r.out)
	r.out.WriteByte('\n')
	r.pos = 0
	if indent > 0 {
		if r.opts.UseTabs {
			for i := 0; i < indent; i++ {
				r.out.WriteByte('\t')
			}
		} else {
			for i := 0; i < indent*r.opts.IndentWidth; i++ {
				r.out.WriteByte(' ')
			}
		}
		r.pos = indent * r.opts.IndentWidth
	}
}

func trimTrailing(buf *bytes.Buffer) {
	b := buf.Bytes()
	n := len(b)
	for n > 0 && (b[n-1] == ' ' || b[n-1] == '\t') {
		n--
	}
	buf.Truncate(n)
}

// fill packs alternating content/separator items, keeping consecutive
// pairs on the current line while they fit and wrapping otherwise.
// Earlier placed items are never re-evaluated.
func (r *renderer) fill(items doc.Fill, c cmd) {
	if len(items) == 0 {
		return
	}

	content := items[0]
	contentFlat := cmd{c.indent, modeFlat, content}
	contentFits := r.fits(contentFlat)

	if len(items) == 1 {
		if contentFits {
			r.stack = append(r.stack, contentFlat)
		} else {
			r.stack = append(r.stack, cmd{c.indent, modeBreak, content})
		}
		return
	}

	sep := items[1]
	sepFlat := cmd{c.indent, modeFlat, sep}
	sepBroken := cmd{c.indent, modeBreak, sep}

	if len(items) == 2 {
		if contentFits {
			r.stack = append(r.stack, sepFlat, contentFlat)
		} else {
			r.stack = append(r.stack, sepBroken, cmd{c.indent, modeBreak, content})
		}
		return
	}

	rem := items[2:]
	pairFits := r.fits(cmd{c.indent, modeFlat, doc.Concat{content, sep, rem[0]}})

	switch {
	case pairFits:
		r.stack = append(r.stack, cmd{c.indent, c.mode, rem}, sepFlat, contentFlat)
	case contentFits:
		r.stack = append(r.stack, cmd{c.indent, c.mode, rem}, sepBroken, contentFlat)
	default:
		r.stack = append(r.stack, cmd{c.indent, c.mode, rem}, sepBroken, cmd{c.indent, modeBreak, content})
	}
}

// fits measures whether c renders within the remaining width of the
// current line, stopping early at the first line break or as soon as the
// width is exceeded. Pending commands on the render stack share the line
// with c, so they are measured too, each in its recorded mode; without
// them a group could fit on its own while the text committed after it
// pushes the line past the width.
func (r *renderer) fits(c cmd) bool {
	rest := r.opts.Width - r.pos
	stack := []cmd{c}
	tail := len(r.stack)

	for {
		if rest < 0 {
			return false
		}
		var top cmd
		switch {
		case len(stack) > 0:
			top = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case tail > 0:
			tail--
			top = r.stack[tail]
		default:
			return rest >= 0
		}

		switch n := top.d.(type) {
		case doc.Text:
			rest -= runewidth.StringWidth(string(n))
		case doc.Concat:
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, cmd{top.indent, top.mode, n[i]})
			}
		case doc.Indent:
			stack = append(stack, cmd{top.indent + 1, top.mode, n.Inner})
		case doc.Line:
			switch n.Kind {
			case doc.LineHard, doc.LineLiteral:
				// the line ends here; everything measured so far fit
				return rest >= 0
			case doc.LineDefault:
				if top.mode == modeFlat {
					rest--
				} else {
					return rest >= 0
				}
			case doc.LineSoft:
				if top.mode == modeBreak {
					return rest >= 0
				}
			}
		case doc.Group:
			m := modeFlat
			if n.Break || r.broken[n.ID] {
				m = modeBreak
			}
			stack = append(stack, cmd{top.indent, m, n.Inner})
		case doc.IfBreak:
			var isBroken bool
			if n.Group == 0 {
				isBroken = top.mode == modeBreak
			} else {
				isBroken = r.broken[n.Group]
			}
			if isBroken {
				stack = append(stack, cmd{top.indent, top.mode, n.Broken})
			} else {
				stack = append(stack, cmd{top.indent, top.mode, n.Flat})
			}
		case doc.Fill:
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, cmd{top.indent, top.mode, n[i]})
			}
		case doc.BreakParent:
			// no width
		}
	}
}
