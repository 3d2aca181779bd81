package yamlerr_test

import (
	"strings"
	"testing"

	"github.com/nvksv/yaml-core/token"
	"github.com/nvksv/yaml-core/yamlerr"
)

func TestScanErrorRendersSourceWindow(t *testing.T) {
	orig := yamlerr.Colored
	yamlerr.Colored = false
	defer func() { yamlerr.Colored = orig }()

	src := "a: 1\nb: [1, 2\n"
	m := token.Marker{Line: 2, Column: 4}
	err := yamlerr.New(m, "expected ',' or ']', found StreamEnd", src)

	got := err.Error()
	if !strings.Contains(got, "[2:4]") {
		t.Fatalf("expected position prefix in %q", got)
	}
	if !strings.Contains(got, "expected ',' or ']'") {
		t.Fatalf("expected message in %q", got)
	}
	if !strings.Contains(got, ">") || !strings.Contains(got, "^") {
		t.Fatalf("expected a printer-rendered source window (marker line + caret), got:\n%s", got)
	}
}

func TestScanErrorWithoutSourceOmitsWindow(t *testing.T) {
	orig := yamlerr.Colored
	yamlerr.Colored = false
	defer func() { yamlerr.Colored = orig }()

	err := yamlerr.New(token.Marker{Line: 1, Column: 1}, "boom", "")
	got := err.Error()
	if strings.Contains(got, "^") {
		t.Fatalf("expected no caret window without source text, got:\n%s", got)
	}
}
