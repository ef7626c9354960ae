// Package doc defines the document intermediate representation produced by
// lowering and consumed by the layout engine.
//
// The IR is a small algebra of printable primitives: literal text,
// concatenation, indentation, line-break variants, break-decision groups,
// conditional content keyed to a group, and fill lists. It is independent
// of PHP syntax; lowering decides what to print, layout decides how to lay
// it out under the width constraint. Trees are immutable once built.
package doc

// GroupID identifies a Group for IfBreak lookups. Zero means "the nearest
// enclosing group" and is never allocated.
type GroupID int32

// Doc is the closed set of document primitives.
type Doc interface {
	isDoc()
}

// Text is literal output with no break opportunities inside.
type Text string

// Concat is an ordered composition of documents.
type Concat []Doc

// Indent raises the indentation level of its subtree by one unit.
type Indent struct {
	Inner Doc
}

// LineKind selects how a Line renders in flat and broken modes.
type LineKind uint8

const (
	// LineDefault renders as a space when flat and a newline+indent when
	// the enclosing group breaks.
	LineDefault LineKind = iota
	// LineSoft renders as nothing when flat and a newline+indent when the
	// enclosing group breaks.
	LineSoft
	// LineHard always renders as a newline+indent and forces every
	// enclosing group to break.
	LineHard
	// LineLiteral always renders as a newline with no indentation; used to
	// preserve blank lines.
	LineLiteral
)

// Line is a break opportunity.
type Line struct {
	Kind LineKind
}

// Group is one atomic break-or-flat decision. The layout engine renders it
// flat when the flat measurement fits the remaining width and the subtree
// has no forced break; otherwise every Line inside (outside nested groups)
// breaks. Break forces broken rendering regardless of width.
type Group struct {
	ID    GroupID
	Inner Doc
	Break bool
}

// IfBreak renders Broken when the referenced group broke and Flat
// otherwise. A zero Group references the nearest enclosing group.
type IfBreak struct {
	Group  GroupID
	Broken Doc
	Flat   Doc
}

// Fill lays out alternating content and separator items, packing as many
// content items per line as fit before wrapping.
type Fill []Doc

// BreakParent produces no output but forces every enclosing group to
// break. HardLine implies it.
type BreakParent struct{}

func (Text) isDoc()        {}
func (Concat) isDoc()      {}
func (Indent) isDoc()      {}
func (Line) isDoc()        {}
func (Group) isDoc()       {}
func (IfBreak) isDoc()     {}
func (Fill) isDoc()        {}
func (BreakParent) isDoc() {}

// Convenience values for the line variants.
var (
	SoftLine    = Line{Kind: LineDefault}
	TightLine   = Line{Kind: LineSoft}
	HardLine    = Line{Kind: LineHard}
	LiteralLine = Line{Kind: LineLiteral}
)

// Nil is the empty document.
var Nil = Concat{}

// IDGen allocates group identifiers for one formatting pass.
type IDGen struct {
	next GroupID
}

// Next returns a fresh non-zero GroupID.
func (g *IDGen) Next() GroupID {
	g.next++
	return g.next
}
