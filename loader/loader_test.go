package loader_test

import (
	"testing"

	"github.com/nvksv/yaml-core/ast"
	"github.com/nvksv/yaml-core/loader"
	"github.com/nvksv/yaml-core/parser"
	"github.com/nvksv/yaml-core/scanner"
	"github.com/nvksv/yaml-core/settings"
)

func loadOne(t *testing.T, s settings.Settings, src string) loader.Document {
	t.Helper()
	sc := scanner.NewFromString(src)
	p := parser.New(sc)
	l := loader.New(s)
	if err := l.LoadAll(p); err != nil {
		t.Fatalf("LoadAll(%q): %v", src, err)
	}
	docs := l.Documents()
	if len(docs) == 0 {
		t.Fatalf("LoadAll(%q): no documents produced", src)
	}
	return docs[0]
}

func TestLoadScalarPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want ast.NodeType
	}{
		{"0x1A\n", ast.IntegerNodeType},
		{"0o17\n", ast.IntegerNodeType},
		{"+42\n", ast.IntegerNodeType},
		{"42\n", ast.IntegerNodeType},
		{"3.14\n", ast.RealNodeType},
		{".inf\n", ast.RealNodeType},
		{"-.inf\n", ast.RealNodeType},
		{".nan\n", ast.RealNodeType},
		{"~\n", ast.NullNodeType},
		{"null\n", ast.NullNodeType},
		{"true\n", ast.BooleanNodeType},
		{"false\n", ast.BooleanNodeType},
		{"hello\n", ast.StringNodeType},
	}
	for _, c := range cases {
		doc := loadOne(t, settings.New(), c.src)
		if doc.Root.Type() != c.want {
			t.Errorf("%q: got %s, want %s", c.src, doc.Root.Type(), c.want)
		}
	}
}

func TestLoadFloatValues(t *testing.T) {
	doc := loadOne(t, settings.New(), ".inf\n")
	r, ok := doc.Root.(*ast.RealNode)
	if !ok {
		t.Fatalf("got %T, want *ast.RealNode", doc.Root)
	}
	if r.Text != ".inf" {
		t.Fatalf("Text = %q, want original text preserved", r.Text)
	}

	doc = loadOne(t, settings.New(), ".nan\n")
	if r, ok = doc.Root.(*ast.RealNode); !ok || r.Text != ".nan" {
		t.Fatalf("got %T %v, want *ast.RealNode with text \".nan\"", doc.Root, doc.Root)
	}
}

func TestLoadQuotedScalarNeverResolved(t *testing.T) {
	doc := loadOne(t, settings.New(), "\"42\"\n")
	s, ok := doc.Root.(*ast.StringNode)
	if !ok {
		t.Fatalf("got %T, want *ast.StringNode (quoted scalars are never resolved)", doc.Root)
	}
	if s.Value != "42" {
		t.Fatalf("Value = %q, want %q", s.Value, "42")
	}
}

func TestLoadTaggedScalarOverridesPlain(t *testing.T) {
	doc := loadOne(t, settings.New(), "!!str 42\n")
	s, ok := doc.Root.(*ast.StringNode)
	if !ok {
		t.Fatalf("got %T, want *ast.StringNode (!!str forces string)", doc.Root)
	}
	if s.Value != "42" {
		t.Fatalf("Value = %q, want %q", s.Value, "42")
	}

	bad := loadOne(t, settings.New(), "!!int nope\n")
	if !ast.IsBadValue(bad.Root) {
		t.Fatalf("got %T, want BadValue for an unparseable !!int", bad.Root)
	}
}

func TestLoadSequenceAndMapping(t *testing.T) {
	doc := loadOne(t, settings.New(), "a: 1\nb:\n  - 2\n  - 3\n")
	h, ok := doc.Root.(*ast.HashNode)
	if !ok {
		t.Fatalf("got %T, want *ast.HashNode", doc.Root)
	}
	av, ok := h.Get("a")
	if !ok {
		t.Fatalf("missing key a")
	}
	if i, ok := av.(*ast.IntegerNode); !ok || i.Value != 1 {
		t.Fatalf("a = %v, want integer 1", av)
	}
	bv, ok := h.Get("b")
	if !ok {
		t.Fatalf("missing key b")
	}
	seq, ok := bv.(*ast.ArrayNode)
	if !ok || len(seq.Values) != 2 {
		t.Fatalf("b = %v, want a two-element sequence", bv)
	}
}

func TestLoadAnchorAndAlias(t *testing.T) {
	doc := loadOne(t, settings.New(), "- &x 42\n- *x\n")
	seq, ok := doc.Root.(*ast.ArrayNode)
	if !ok || len(seq.Values) != 2 {
		t.Fatalf("got %T, want a two-element sequence", doc.Root)
	}
	if _, ok := seq.Values[0].(*ast.IntegerNode); !ok {
		t.Fatalf("first element = %T, want *ast.IntegerNode", seq.Values[0])
	}
	al, ok := seq.Values[1].(*ast.AliasNode)
	if !ok {
		t.Fatalf("second element = %T, want *ast.AliasNode", seq.Values[1])
	}
	anchored, ok := doc.Anchors[al.AnchorID]
	if !ok {
		t.Fatalf("alias id %d not registered in Document.Anchors", al.AnchorID)
	}
	if i, ok := anchored.(*ast.IntegerNode); !ok || i.Value != 42 {
		t.Fatalf("anchored node = %v, want integer 42", anchored)
	}
}

func TestLoadUnknownAliasIsFatal(t *testing.T) {
	sc := scanner.NewFromString("- *missing\n")
	p := parser.New(sc)
	l := loader.New(settings.New())
	err := l.LoadAll(p)
	if err == nil {
		t.Fatalf("expected a fatal error for an alias to an anchor that was never introduced")
	}
}

func TestLoadAliasDisallowedByPolicy(t *testing.T) {
	doc := loadOne(t, settings.NewSafe(), "- &x 1\n- *x\n")
	seq, ok := doc.Root.(*ast.ArrayNode)
	if !ok || len(seq.Values) != 2 {
		t.Fatalf("got %T, want a two-element sequence", doc.Root)
	}
	if !ast.IsBadValue(seq.Values[1]) {
		t.Fatalf("got %T, want BadValue: aliases disallowed under safe settings", seq.Values[1])
	}
}

func TestLoadAnchorsResetPerDocument(t *testing.T) {
	sc := scanner.NewFromString("&x 1\n---\n*x\n")
	p := parser.New(sc)
	l := loader.New(settings.New())
	err := l.LoadAll(p)
	if err == nil {
		t.Fatalf("expected a fatal error: an alias from a prior document must not resolve")
	}
}

func TestLoadMultiDocAllowed(t *testing.T) {
	sc := scanner.NewFromString("1\n---\n2\n---\n3\n")
	p := parser.New(sc)
	l := loader.New(settings.New())
	if err := l.LoadAll(p); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if got := len(l.Documents()); got != 3 {
		t.Fatalf("got %d documents, want 3", got)
	}
}

func TestLoadMultiDocDisallowedStopsAtFirst(t *testing.T) {
	sc := scanner.NewFromString("1\n---\n2\n---\n3\n")
	p := parser.New(sc)
	l := loader.New(settings.NewSafe())
	if err := l.LoadAll(p); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if got := len(l.Documents()); got != 1 {
		t.Fatalf("got %d documents, want 1 (multi-document disallowed)", got)
	}
}

func TestLoadDuplicateKeyLastWriteWins(t *testing.T) {
	doc := loadOne(t, settings.New(), "a: 1\na: 2\n")
	h, ok := doc.Root.(*ast.HashNode)
	if !ok {
		t.Fatalf("got %T, want *ast.HashNode", doc.Root)
	}
	v, ok := h.Get("a")
	if !ok {
		t.Fatalf("missing key a")
	}
	if i, ok := v.(*ast.IntegerNode); !ok || i.Value != 2 {
		t.Fatalf("a = %v, want last-write-wins integer 2", v)
	}
}

func TestLoadDuplicateKeyRejected(t *testing.T) {
	sc := scanner.NewFromString("a: 1\na: 2\n")
	p := parser.New(sc)
	s := settings.New()
	s.RejectDuplicateKeys = true
	l := loader.New(s)
	if err := l.LoadAll(p); err == nil {
		t.Fatalf("expected an error for a duplicate mapping key under RejectDuplicateKeys")
	}
}
