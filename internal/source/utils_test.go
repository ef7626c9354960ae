package source

import (
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		changed bool
	}{
		{"", "", false},
		{"abc\n", "abc\n", false},
		{"abc\r\ndef\r\n", "abc\ndef\n", true},
		{"lone\rcarriage", "lone\rcarriage", false},
		{"\r\n\r\n", "\n\n", true},
	}
	for _, tc := range cases {
		got, changed := normalizeCRLF([]byte(tc.in))
		if string(got) != tc.want || changed != tc.changed {
			t.Fatalf("normalizeCRLF(%q) = %q, %v; want %q, %v", tc.in, got, changed, tc.want, tc.changed)
		}
	}
}

func TestRemoveBOM(t *testing.T) {
	got, had := removeBOM([]byte("\xEF\xBB\xBF<?php\n"))
	if !had || string(got) != "<?php\n" {
		t.Fatalf("removeBOM did not strip BOM: %q, %v", got, had)
	}
	got, had = removeBOM([]byte("<?php\n"))
	if had || string(got) != "<?php\n" {
		t.Fatalf("removeBOM modified clean content: %q, %v", got, had)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\n\nxyz")
	idx := buildLineIndex(content)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline itself belongs to line 1
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1}, // empty line
		{7, 4, 1},
		{9, 4, 3},
	}
	for _, tc := range cases {
		got := toLineCol(idx, tc.off)
		if got.Line != tc.line || got.Col != tc.col {
			t.Fatalf("toLineCol(%d) = %d:%d, want %d:%d", tc.off, got.Line, got.Col, tc.line, tc.col)
		}
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.php", []byte("<?php\necho 1;\n"))
	start, _ := fs.Resolve(Span{File: id, Start: 6, End: 10})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("Resolve start = %d:%d, want 2:1", start.Line, start.Col)
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.php", []byte("<?php\r\necho 1;\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "<?php\necho 1;\n" {
		t.Fatalf("AddVirtual did not normalize CRLF: %q", f.Content)
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("FileNormalizedCRLF flag not set")
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("FileVirtual flag not set")
	}
}
