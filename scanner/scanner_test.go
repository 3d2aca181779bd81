package scanner_test

import (
	"testing"

	"github.com/nvksv/yaml-core/scanner"
	"github.com/nvksv/yaml-core/token"
)

func scanAll(t *testing.T, src string) []token.Type {
	t.Helper()
	s := scanner.NewFromString(src)
	var types []token.Type
	for {
		tk, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected scan error: %v", err)
		}
		if tk == nil {
			break
		}
		types = append(types, tk.Type)
	}
	return types
}

func TestScanFlowSequence(t *testing.T) {
	got := scanAll(t, "[1, 2, 3]")
	want := []token.Type{
		token.StreamStartType,
		token.FlowSequenceStartType,
		token.ScalarType,
		token.FlowEntryType,
		token.ScalarType,
		token.FlowEntryType,
		token.ScalarType,
		token.FlowSequenceEndType,
		token.StreamEndType,
	}
	assertTypes(t, want, got)
}

func TestScanBlockMapping(t *testing.T) {
	got := scanAll(t, "a: 1\nb: 2\n")
	want := []token.Type{
		token.StreamStartType,
		token.BlockMappingStartType,
		token.KeyType,
		token.ScalarType,
		token.ValueType,
		token.ScalarType,
		token.KeyType,
		token.ScalarType,
		token.ValueType,
		token.ScalarType,
		token.BlockEndType,
		token.StreamEndType,
	}
	assertTypes(t, want, got)
}

func TestScanAnchorAndAlias(t *testing.T) {
	s := scanner.NewFromString("- &x 42\n- *x\n")
	var names []string
	for {
		tk, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected scan error: %v", err)
		}
		if tk == nil {
			break
		}
		if tk.Type == token.AnchorType || tk.Type == token.AliasType {
			names = append(names, tk.Name)
		}
	}
	if len(names) != 2 || names[0] != "x" || names[1] != "x" {
		t.Fatalf("unexpected anchor/alias names: %v", names)
	}
}

func TestScanUnterminatedSingleQuote(t *testing.T) {
	s := scanner.NewFromString("key: 'oops")
	var lastErr error
	for {
		tk, err := s.Next()
		if err != nil {
			lastErr = err
			break
		}
		if tk == nil {
			break
		}
	}
	if lastErr == nil {
		t.Fatalf("expected a scan error for an unterminated single-quoted scalar")
	}
}

func assertTypes(t *testing.T, want, got []token.Type) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("token count mismatch: want %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("token %d: want %s, got %s (full want=%v got=%v)", i, want[i], got[i], want, got)
		}
	}
}
