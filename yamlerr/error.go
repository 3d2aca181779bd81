// Package yamlerr defines the single error type shared by the scanner
// and parser (spec.md §7): a fatal, marker-anchored ScanError. It is
// built on golang.org/x/xerrors for stack-frame capture and %+v
// formatting, and renders its message through printer.Printer to show a
// colorized caret under the offending source column, the same mechanism
// the teacher's root errors package uses for its syntaxError — retargeted
// from a *token.Token to a token.Marker plus the original source text,
// since a parser-level failure (an unknown anchor) may need to report
// after the originating token has already been consumed.
package yamlerr

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/nvksv/yaml-core/printer"
	"github.com/nvksv/yaml-core/token"
)

var (
	// Colored controls whether rendered errors include ANSI color
	// escapes. Tests and non-TTY consumers typically set this false.
	Colored = true
	// WithSourceLine controls whether a rendered error includes the
	// offending source line beneath the message.
	WithSourceLine = true
)

// ScanError is the sole error kind raised at the Scanner/Parser
// boundary: lexical failures (bad escapes, unterminated scalars),
// structural failures (unexpected token in a given parser state), and
// parse-time semantic failures (unknown alias). All are fatal; there is
// no local recovery.
type ScanError struct {
	Marker  token.Marker
	Message string
	Source  string // full source text, for caret rendering; may be empty
	frame   xerrors.Frame
}

// New constructs a ScanError anchored at m.
func New(m token.Marker, msg string, source string) *ScanError {
	return &ScanError{Marker: m, Message: msg, Source: source, frame: xerrors.Caller(1)}
}

func (e *ScanError) Error() string {
	pos := fmt.Sprintf("[%d:%d] ", e.Marker.Line, e.Marker.Column)
	msg := fmt.Sprintf("syntax error: %s%s", pos, e.Message)
	var p printer.Printer
	msg = p.PrintErrorMessage(msg, e.Colored())
	if !WithSourceLine || e.Source == "" {
		return msg
	}
	tok := &token.Token{Marker: &e.Marker}
	window := p.PrintErrorToken(e.Source, tok, e.Colored())
	if window == "" {
		return msg
	}
	return fmt.Sprintf("%s\n%s", msg, window)
}

func (e *ScanError) Colored() bool { return Colored }

// FormatError implements xerrors.Formatter so %+v prints a stack frame
// alongside the message, matching the teacher's syntaxError.FormatError.
func (e *ScanError) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}

func (e *ScanError) Format(f fmt.State, verb rune) {
	xerrors.FormatError(e, f, verb)
}
