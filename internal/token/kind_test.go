package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"function", KwFunction},
		{"FUNCTION", KwFunction},
		{"Foreach", KwForeach},
		{"null", KwNull},
		{"strlen", Ident},
		{"", Ident},
	}
	for _, tc := range cases {
		if got := LookupKeyword(tc.in); got != tc.want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKeywordText(t *testing.T) {
	if got := KeywordText(KwForeach); got != "foreach" {
		t.Fatalf("KeywordText(KwForeach) = %q", got)
	}
	if got := KeywordText(Plus); got != "" {
		t.Fatalf("KeywordText(Plus) = %q, want empty", got)
	}
}

func TestBlankLineBefore(t *testing.T) {
	tok := Token{NewlinesBefore: 2}
	if !tok.BlankLineBefore() {
		t.Fatalf("expected blank line before token")
	}
	tok = Token{NewlinesBefore: 1}
	if tok.BlankLineBefore() {
		t.Fatalf("single newline should not count as a blank line")
	}
	// A comment's own spacing wins when present.
	tok = Token{NewlinesBefore: 1, Leading: []Trivia{{Kind: TriviaLineComment, NewlinesBefore: 3}}}
	if !tok.BlankLineBefore() {
		t.Fatalf("blank line before leading comment should count")
	}
}
