package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nvksv/yaml-core/ast"
	"github.com/nvksv/yaml-core/token"
)

func TestHashGetLastWriteWins(t *testing.T) {
	m := &token.Marker{}
	h := ast.Hash(m)
	h.Entries = append(h.Entries,
		ast.MappingEntry{Key: ast.String("a", m), Value: ast.Integer(1, m)},
		ast.MappingEntry{Key: ast.String("a", m), Value: ast.Integer(2, m)},
	)
	v, ok := h.Get("a")
	if !ok {
		t.Fatalf("expected key a to be found")
	}
	if diff := cmp.Diff(int64(2), v.(*ast.IntegerNode).Value); diff != "" {
		t.Fatalf("unexpected value (-want +got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := &token.Marker{}
	arr := ast.Array(m)
	arr.Values = append(arr.Values, ast.String("x", m))

	clone := arr.Clone().(*ast.ArrayNode)
	clone.Values[0].(*ast.StringNode).Value = "mutated"

	if arr.Values[0].(*ast.StringNode).Value != "x" {
		t.Fatalf("mutating the clone must not affect the original")
	}
}

func TestIsBadValue(t *testing.T) {
	if !ast.IsBadValue(nil) {
		t.Fatalf("nil should be treated as BadValue")
	}
	if !ast.IsBadValue(ast.BadValue(&token.Marker{})) {
		t.Fatalf("BadValueNode should report true")
	}
	if ast.IsBadValue(ast.Null(&token.Marker{})) {
		t.Fatalf("NullNode should not report true")
	}
}
