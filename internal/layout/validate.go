package layout

import (
	"fmt"

	"phpfmt/internal/doc"
)

// RenderChecked validates the document's group references before
// rendering. A dangling IfBreak reference is a bug in lowering, not a
// property of the input being formatted, so it surfaces as an error here
// instead of corrupting output.
func RenderChecked(d doc.Doc, opts Options) (string, error) {
	defined := make(map[doc.GroupID]bool)
	collectGroups(d, defined)
	if err := checkRefs(d, defined); err != nil {
		return "", err
	}
	return Render(d, opts), nil
}

func collectGroups(d doc.Doc, defined map[doc.GroupID]bool) {
	switch n := d.(type) {
	case doc.Concat:
		for _, item := range n {
			collectGroups(item, defined)
		}
	case doc.Indent:
		collectGroups(n.Inner, defined)
	case doc.Group:
		defined[n.ID] = true
		collectGroups(n.Inner, defined)
	case doc.IfBreak:
		collectGroups(n.Broken, defined)
		collectGroups(n.Flat, defined)
	case doc.Fill:
		for _, item := range n {
			collectGroups(item, defined)
		}
	}
}

func checkRefs(d doc.Doc, defined map[doc.GroupID]bool) error {
	switch n := d.(type) {
	case doc.Concat:
		for _, item := range n {
			if err := checkRefs(item, defined); err != nil {
				return err
			}
		}
	case doc.Indent:
		return checkRefs(n.Inner, defined)
	case doc.Group:
		return checkRefs(n.Inner, defined)
	case doc.IfBreak:
		if n.Group != 0 && !defined[n.Group] {
			return fmt.Errorf("layout: IfBreak references undefined group %d", n.Group)
		}
		if err := checkRefs(n.Broken, defined); err != nil {
			return err
		}
		return checkRefs(n.Flat, defined)
	case doc.Fill:
		for _, item := range n {
			if err := checkRefs(item, defined); err != nil {
				return err
			}
		}
	}
	return nil
}
