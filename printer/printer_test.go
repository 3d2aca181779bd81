package printer_test

import (
	"testing"

	"github.com/nvksv/yaml-core/lexer"
	"github.com/nvksv/yaml-core/printer"
	"github.com/nvksv/yaml-core/token"
)

func firstScalar(tks token.Tokens, nth int) *token.Token {
	n := 0
	for _, tk := range tks {
		if tk.Type != token.ScalarType {
			continue
		}
		if n == nth {
			return tk
		}
		n++
	}
	return nil
}

func Test_Printer_ErrorToken(t *testing.T) {
	src := `---
text: aaaa
text2: bbbb
bool: true
number: 10
anchor: &x 1
alias: *x
`
	tks := lexer.Tokenize(src)
	var p printer.Printer

	t.Run("marks the line containing the scalar", func(t *testing.T) {
		tk := firstScalar(tks, 0) // "text"
		got := p.PrintErrorToken(src, tk, false)
		if got == "" {
			t.Fatal("expected non-empty rendering")
		}
		if !contains(got, ">") || !contains(got, "^") {
			t.Fatalf("expected a '>' marker line and a caret, got:\n%s", got)
		}
	})

	t.Run("anchor and alias tokens both render", func(t *testing.T) {
		for _, typ := range []token.Type{token.AnchorType, token.AliasType} {
			tk := firstOfType(tks, typ)
			if tk == nil {
				t.Fatalf("expected a %s token in the sample source", typ)
			}
			got := p.PrintErrorToken(src, tk, false)
			if got == "" {
				t.Errorf("PrintErrorToken for %s returned empty", typ)
			}
		}
	})

	t.Run("colored output still contains the text", func(t *testing.T) {
		tk := firstScalar(tks, 0)
		got := p.PrintErrorToken(src, tk, true)
		if !contains(got, "text: aaaa") {
			t.Fatalf("expected source text preserved under color, got:\n%s", got)
		}
	})
}

func firstOfType(tks token.Tokens, typ token.Type) *token.Token {
	for _, tk := range tks {
		if tk.Type == typ {
			return tk
		}
	}
	return nil
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestPrinter_PrintTokens_GroupsByLine(t *testing.T) {
	src := "anchor: &x 1\nalias: *x\n"
	tks := lexer.Tokenize(src)
	var p printer.Printer
	got := p.PrintTokens(tks)
	if !contains(got, "anchor") || !contains(got, "alias") {
		t.Fatalf("expected both lines represented, got:\n%s", got)
	}
	// Two source lines, plus the BlockEnd/StreamEnd tokens that sit on
	// line 3 after the trailing newline.
	if countLines(got) != 3 {
		t.Fatalf("expected tokens grouped onto 3 output lines, got %d:\n%s", countLines(got), got)
	}
}

func countLines(s string) int {
	n := 1
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}

func TestPrinter_PrintErrorMessage(t *testing.T) {
	var p printer.Printer
	msg := p.PrintErrorMessage("boom", false)
	if msg != "boom" {
		t.Fatalf("uncolored message should pass through unchanged, got %q", msg)
	}
	colored := p.PrintErrorMessage("boom", true)
	if colored == "boom" {
		t.Fatal("expected colored message to differ from the plain text")
	}
}
