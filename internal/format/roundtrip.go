package format

import (
	"bytes"
	"fmt"

	"phpfmt/internal/diag"
	"phpfmt/internal/parser"
	"phpfmt/internal/source"
	"phpfmt/internal/style"
)

// CheckIdempotent formats sf under cfg and verifies the output is a fixed
// point: reparsing and reformatting it must reproduce the same bytes.
func CheckIdempotent(sf *source.File, cfg *style.Config, maxDiag int) (ok bool, msg string) {
	first, err := formatOnce(sf.Path, sf.Content, cfg, maxDiag)
	if err != nil {
		return false, "fmt-check: " + err.Error()
	}
	second, err := formatOnce(sf.Path, first, cfg, maxDiag)
	if err != nil {
		return false, "fmt-check: reformat: " + err.Error()
	}
	if !bytes.Equal(first, second) {
		return false, "fmt-check: output is not a fixed point"
	}
	return true, ""
}

func formatOnce(name string, data []byte, cfg *style.Config, maxDiag int) ([]byte, error) {
	if maxDiag <= 0 {
		maxDiag = 64
	}
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, data)
	bag := diag.NewBag(maxDiag)
	f, ok := parser.ParseFile(fileSet.Get(id), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if !ok || bag.HasErrors() {
		if d, found := bag.FirstError(); found {
			return nil, fmt.Errorf("parse %s: %s", name, d.Message)
		}
		return nil, fmt.Errorf("parse %s failed", name)
	}
	return Format(f, cfg)
}
