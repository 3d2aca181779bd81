package lexer_test

import (
	"strings"
	"testing"

	"github.com/nvksv/yaml-core/lexer"
	"github.com/nvksv/yaml-core/token"
)

// TestTokenizeSmoke drains a broad sample of YAML shapes and only checks
// that Tokenize terminates with a well-formed StreamStart/StreamEnd
// bracket, the same shallow smoke check the teacher's own Tokenize test
// runs before any position-specific assertions.
func TestTokenizeSmoke(t *testing.T) {
	sources := []string{
		"null\n",
		"{}\n",
		"v: hi\n",
		"v: \"true\"\n",
		"v: true\n",
		"v: 10\n",
		"v: -10\n",
		"v: 0.1\n",
		"v: .inf\n",
		"v: .nan\n",
		"v:\n- A\n- B\n",
		"v:\n- A\n- |-\n  B\n  C\n",
		"a:\n  b: c\n",
		"a: '-'\n",
		"a: {x: 1}\n",
		"a: [1, 2]\n",
		"a: {b: c, d: e}\n",
		"a: \"1:1\"\n",
		"a: 1.2.3.4\n",
		"a: 'b: c'\n",
		"a: 'Hello #comment'\n",
	}
	for _, src := range sources {
		tks := lexer.Tokenize(src)
		if len(tks) == 0 {
			t.Fatalf("Tokenize(%q) produced no tokens", src)
		}
		if tks[0].Type != token.StreamStartType {
			t.Fatalf("Tokenize(%q)[0] = %s, want StreamStart", src, tks[0].Type)
		}
		if last := tks[len(tks)-1]; last.Type != token.StreamEndType {
			t.Fatalf("Tokenize(%q) last token = %s, want StreamEnd", src, last.Type)
		}
	}
}

type wantToken struct {
	line, column int
	typ          token.Type
	value        string
}

func scalarsOf(t *testing.T, tks token.Tokens) []wantToken {
	t.Helper()
	var got []wantToken
	for _, tk := range tks {
		if tk.Type != token.ScalarType {
			continue
		}
		got = append(got, wantToken{tk.Line, tk.Column, tk.Type, tk.Value})
	}
	return got
}

// TestTokenizeLineColumn checks Marker tracking across a single-line flow
// sequence with nested quoting styles, the scanner concern the teacher's
// own lexer test exists to pin down.
func TestTokenizeLineColumn(t *testing.T) {
	src := `test: ['a', "b", c]`
	tks := lexer.Tokenize(src)
	want := []wantToken{
		{1, 1, token.ScalarType, "test"},
		{1, 8, token.ScalarType, "a"},
		{1, 13, token.ScalarType, "b"},
		{1, 18, token.ScalarType, "c"},
	}
	got := scalarsOf(t, tks)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) scalar count = %d, want %d (%+v)", src, len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].line != w.line || got[i].column != w.column || got[i].value != w.value {
			t.Errorf("scalar %d: got %+v, want %+v", i, got[i], w)
		}
	}
}

// TestTokenizeMultilineFlowScalar checks that a flow-collection value
// folded across lines reports its Marker at the start of the scalar, not
// where folding ends.
func TestTokenizeMultilineFlowScalar(t *testing.T) {
	src := "arr: ['1', 'and\ntwo']\nlast: 'hello'\n"
	tks := lexer.Tokenize(src)
	got := scalarsOf(t, tks)
	want := []wantToken{
		{1, 1, token.ScalarType, "arr"},
		{1, 7, token.ScalarType, "1"},
		{1, 12, token.ScalarType, "and two"},
		{3, 1, token.ScalarType, "last"},
		{3, 7, token.ScalarType, "hello"},
	}
	if len(got) != len(want) {
		t.Fatalf("scalar count = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("scalar %d: got %+v, want %+v", i, got[i], w)
		}
	}
}

// TestTokenizeBlankLineFolding exercises the "collapse runs of blank
// lines to (n-1) newlines" rule across a double-quoted scalar spanning a
// paragraph break.
func TestTokenizeBlankLineFolding(t *testing.T) {
	src := "foo: \"test\n\n\nbar\"\n"
	tks := lexer.Tokenize(src)
	got := scalarsOf(t, tks)
	if len(got) != 2 {
		t.Fatalf("scalar count = %d, want 2 (%+v)", len(got), got)
	}
	if got[1].value != "test\n\nbar" {
		t.Errorf("folded value = %q, want %q", got[1].value, "test\n\nbar")
	}
	if !strings.Contains(got[1].value, "\n\n") {
		t.Errorf("expected two runs of blank-line folding in %q", got[1].value)
	}
}
