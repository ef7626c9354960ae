package doc

// Helpers used by lowering to assemble documents without littering call
// sites with composite literals.

// Join concatenates parts, dropping empty Concats.
func Join(parts ...Doc) Doc {
	out := make(Concat, 0, len(parts))
	for _, p := range parts {
		if c, ok := p.(Concat); ok && len(c) == 0 {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// GroupOf wraps inner in a Group with a freshly allocated id.
func GroupOf(ids *IDGen, inner ...Doc) Group {
	return Group{ID: ids.Next(), Inner: Join(inner...)}
}

// IndentOf wraps inner in an Indent.
func IndentOf(inner ...Doc) Indent {
	return Indent{Inner: Join(inner...)}
}

// Separated interleaves sep between items.
func Separated(sep Doc, items []Doc) Doc {
	out := make(Concat, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
