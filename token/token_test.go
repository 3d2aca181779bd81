package token_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nvksv/yaml-core/token"
)

func TestMarkerLess(t *testing.T) {
	a := token.Marker{Line: 1, Column: 1, Index: 0}
	b := token.Marker{Line: 2, Column: 1, Index: 10}
	if !a.Less(b) {
		t.Fatalf("expected %v < %v", a, b)
	}
	if b.Less(a) {
		t.Fatalf("expected %v >= %v", b, a)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		name string
		tok  *token.Token
		want string
	}{
		{
			name: "scalar",
			tok:  &token.Token{Type: token.ScalarType, ScalarStyle: token.PlainStyle, Value: "x"},
			want: `Scalar(Plain)="x"`,
		},
		{
			name: "anchor",
			tok:  &token.Token{Type: token.AnchorType, Name: "a"},
			want: "Anchor(a)",
		},
		{
			name: "tag",
			tok:  &token.Token{Type: token.TagType, Handle: "!!", Suffix: "str"},
			want: "Tag(!!,str)",
		},
		{
			name: "block-end",
			tok:  &token.Token{Type: token.BlockEndType},
			want: "BlockEnd",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.tok.String()); diff != "" {
				t.Fatalf("unexpected string (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokensAdd(t *testing.T) {
	var tks token.Tokens
	tks.Add(&token.Token{Type: token.StreamStartType}, &token.Token{Type: token.StreamEndType})
	if len(tks) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tks))
	}
}
