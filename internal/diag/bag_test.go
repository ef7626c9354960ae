package diag

import (
	"testing"

	"phpfmt/internal/source"
)

func TestBagCapAndErrors(t *testing.T) {
	bag := NewBag(2)
	if bag.HasErrors() {
		t.Fatalf("fresh bag should have no errors")
	}
	if !bag.Add(Diagnostic{Severity: SevWarning, Code: LexUnknownChar}) {
		t.Fatalf("first add rejected")
	}
	if !bag.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken}) {
		t.Fatalf("second add rejected")
	}
	if bag.Add(Diagnostic{Severity: SevError, Code: SynExpectSemicolon}) {
		t.Fatalf("add over cap accepted")
	}
	if !bag.HasErrors() {
		t.Fatalf("bag with SevError should report HasErrors")
	}
	if d, ok := bag.FirstError(); !ok || d.Code != SynUnexpectedToken {
		t.Fatalf("FirstError = %v, %v", d, ok)
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := NewBag(8)
	spanAt := func(start uint32) source.Span {
		return source.Span{Start: start, End: start + 1}
	}
	bag.Add(Diagnostic{Severity: SevError, Code: SynExpectSemicolon, Primary: spanAt(10)})
	bag.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: spanAt(2)})
	bag.Add(Diagnostic{Severity: SevWarning, Code: LexUnknownChar, Primary: spanAt(2)})
	bag.Sort()

	items := bag.Items()
	if items[0].Code != SynUnexpectedToken {
		t.Fatalf("expected error at offset 2 first, got %v", items[0].Code)
	}
	if items[1].Code != LexUnknownChar {
		t.Fatalf("expected warning at offset 2 second, got %v", items[1].Code)
	}
	if items[2].Code != SynExpectSemicolon {
		t.Fatalf("expected offset 10 last, got %v", items[2].Code)
	}
}

func TestSeverityLabels(t *testing.T) {
	cases := []struct {
		sev  Severity
		want string
	}{
		{SevInfo, "info"},
		{SevWarning, "warning"},
		{SevError, "error"},
		{Severity(9), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.sev.String(); got != tc.want {
			t.Fatalf("Severity(%d).String() = %q, want %q", tc.sev, got, tc.want)
		}
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	d := Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{Start: 1, End: 2}}
	bag.Add(d)
	bag.Add(d)
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("Dedup left %d items, want 1", bag.Len())
	}
}
