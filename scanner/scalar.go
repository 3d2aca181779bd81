package scanner

import (
	"fmt"
	"strings"

	"github.com/nvksv/yaml-core/token"
)

// scanPlain scans a plain (unquoted) scalar. It terminates on ':'
// followed by whitespace, on a flow indicator inside flow context, on a
// '#' preceded by whitespace, or when the following non-blank line
// starts left of the scalar's own first column (or begins with "- ",
// "#", "---" or "..."). Continuation lines are compared with the
// scalar's start column, not with the enclosing block's indent. Multi-line plain
// scalars fold single line breaks to a single space and collapse runs of
// blank lines to (n-1) newlines, per spec.md §4.1.
func (s *Scanner) scanPlain() error {
	startCol := s.column
	s.saveSimpleKeyCandidate(false)
	m := s.markerPtr()

	var b strings.Builder
	var origin strings.Builder
	blankRun := 0

	for s.idx < s.size {
		c := s.cur()
		if isBreak(c) {
			if !s.plainContinues(startCol) {
				break
			}
			blankRun += s.consumeFoldedBreaks()
			if blankRun == 1 {
				b.WriteByte(' ')
			} else {
				for i := 0; i < blankRun-1; i++ {
					b.WriteByte('\n')
				}
			}
			blankRun = 0
			continue
		}
		if c == ':' && (isBlankOrBreak(s.peekAt(1)) || s.peekAt(1) == 0) {
			break
		}
		if c == ':' && s.flowLevel > 0 && isFlowIndicator(s.peekAt(1)) {
			break
		}
		if s.flowLevel > 0 && isFlowIndicator(c) {
			break
		}
		if c == '#' && (b.Len() == 0 || isBlank(rune(lastByte(b.String())))) {
			break
		}
		b.WriteRune(c)
		origin.WriteRune(c)
		s.advance(1)
	}

	value := strings.TrimRight(b.String(), " \t")
	s.push(&token.Token{Type: token.ScalarType, Marker: m, ScalarStyle: token.PlainStyle, Value: value, Origin: origin.String()})
	return nil
}

func lastByte(s string) byte {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// plainContinues decides, after hitting a line break, whether the plain
// scalar continues on the following non-blank line.
func (s *Scanner) plainContinues(startCol int) bool {
	save := *s
	s.consumeFoldedBreaksNoSave()
	ok := s.idx < s.size && s.column >= startCol && !s.looksLikeStructuralLineStart()
	*s = save
	return ok
}

func (s *Scanner) consumeFoldedBreaksNoSave() {
	for {
		if isBreak(s.cur()) {
			s.skipBreak()
			s.skipBlanks()
			continue
		}
		break
	}
}

// consumeFoldedBreaks consumes one or more line breaks (and leading
// blanks of subsequent lines) and returns how many breaks were consumed.
func (s *Scanner) consumeFoldedBreaks() int {
	n := 0
	for isBreak(s.cur()) {
		s.skipBreak()
		n++
		s.skipBlanks()
	}
	return n
}

// looksLikeStructuralLineStart reports whether the scanner is currently
// positioned at the start of a line that begins a new block construct
// rather than continuing the current plain scalar.
func (s *Scanner) looksLikeStructuralLineStart() bool {
	if s.matches("---") && s.followedByBlankOrEOF(3) {
		return true
	}
	if s.matches("...") && s.followedByBlankOrEOF(3) {
		return true
	}
	if s.cur() == '-' && isBlankOrBreak(s.peekAt(1)) {
		return true
	}
	if s.cur() == '#' {
		return true
	}
	return false
}

// scanSingleQuoted scans a '...' scalar; '' escapes to a literal '.
func (s *Scanner) scanSingleQuoted() error {
	s.saveSimpleKeyCandidate(false)
	m := s.markerPtr()
	s.advance(1)
	var b strings.Builder
	for {
		if s.idx >= s.size {
			return s.fail("found unexpected end of stream while scanning a single-quoted scalar")
		}
		c := s.cur()
		if c == '\'' {
			if s.peekAt(1) == '\'' {
				b.WriteByte('\'')
				s.advance(2)
				continue
			}
			s.advance(1)
			break
		}
		if isBreak(c) {
			n := s.consumeFoldedBreaks()
			if n == 1 {
				b.WriteByte(' ')
			} else {
				for i := 0; i < n-1; i++ {
					b.WriteByte('\n')
				}
			}
			continue
		}
		b.WriteRune(c)
		s.advance(1)
	}
	s.push(&token.Token{Type: token.ScalarType, Marker: m, ScalarStyle: token.SingleQuotedStyle, Value: b.String()})
	return nil
}

var doubleQuoteEscapes = map[rune]rune{
	'0': 0, 'a': 7, 'b': 8, 't': 9, 'n': 10, 'v': 11, 'f': 12, 'r': 13,
	'e': 27, '"': '"', '\\': '\\', 'N': 0x85, '_': 0xA0, 'L': 0x2028, 'P': 0x2029,
}

// scanDoubleQuoted scans a "..." scalar, supporting the full YAML escape
// set including \xHH, \uHHHH, \UHHHHHHHH, and line-continuation '\' at
// end of line.
func (s *Scanner) scanDoubleQuoted() error {
	s.saveSimpleKeyCandidate(false)
	m := s.markerPtr()
	s.advance(1)
	var b strings.Builder
	for {
		if s.idx >= s.size {
			return s.fail("found unexpected end of stream while scanning a double-quoted scalar")
		}
		c := s.cur()
		if c == '"' {
			s.advance(1)
			break
		}
		if c == '\\' {
			nxt := s.peekAt(1)
			if isBreak(nxt) {
				s.advance(1)
				s.consumeFoldedBreaksNoSave()
				continue
			}
			if r, ok := doubleQuoteEscapes[nxt]; ok {
				b.WriteRune(r)
				s.advance(2)
				continue
			}
			switch nxt {
			case 'x':
				v, width, err := s.readHex(2)
				if err != nil {
					return err
				}
				b.WriteRune(rune(v))
				s.advance(2 + width)
				continue
			case 'u':
				v, width, err := s.readHex(4)
				if err != nil {
					return err
				}
				b.WriteRune(rune(v))
				s.advance(2 + width)
				continue
			case 'U':
				v, width, err := s.readHex(8)
				if err != nil {
					return err
				}
				b.WriteRune(rune(v))
				s.advance(2 + width)
				continue
			default:
				return s.fail(fmt.Sprintf("found unknown escape character %q", nxt))
			}
		}
		if isBreak(c) {
			n := s.consumeFoldedBreaks()
			if n == 1 {
				b.WriteByte(' ')
			} else {
				for i := 0; i < n-1; i++ {
					b.WriteByte('\n')
				}
			}
			continue
		}
		b.WriteRune(c)
		s.advance(1)
	}
	s.push(&token.Token{Type: token.ScalarType, Marker: m, ScalarStyle: token.DoubleQuotedStyle, Value: b.String()})
	return nil
}

func (s *Scanner) readHex(n int) (int64, int, error) {
	var v int64
	for i := 0; i < n; i++ {
		r := s.peekAt(2 + i)
		var d int64
		switch {
		case r >= '0' && r <= '9':
			d = int64(r - '0')
		case r >= 'a' && r <= 'f':
			d = int64(r-'a') + 10
		case r >= 'A' && r <= 'F':
			d = int64(r-'A') + 10
		default:
			return 0, 0, s.fail("found invalid hex escape digit")
		}
		v = v*16 + d
	}
	return v, n, nil
}

// scanBlockScalar scans a literal (|) or folded (>) block scalar,
// honoring the chomping indicator (-, +, default) and an optional
// explicit indentation indicator digit.
func (s *Scanner) scanBlockScalar(folded bool) error {
	s.removeStaleSimpleKey()
	m := s.markerPtr()
	s.advance(1) // '|' or '>'

	chomp := byte(0) // 0 = clip (default), '-' = strip, '+' = keep
	explicitIndent := 0
	for {
		c := s.cur()
		if c == '-' || c == '+' {
			chomp = byte(c)
			s.advance(1)
			continue
		}
		if c >= '1' && c <= '9' {
			explicitIndent = int(c - '0')
			s.advance(1)
			continue
		}
		break
	}
	s.skipBlanks()
	if s.cur() == '#' {
		s.skipToLineEnd()
	}
	if isBreak(s.cur()) {
		s.skipBreak()
	}

	baseIndent := s.currentIndent()
	contentIndent := -1
	if explicitIndent > 0 {
		contentIndent = baseIndent + explicitIndent
	}

	var lines []string
	for {
		lineStart := s.idx
		col := 1
		for isBlank(s.cur()) {
			s.advance(1)
			col++
		}
		if s.idx >= s.size {
			break
		}
		if isBreak(s.cur()) {
			lines = append(lines, "")
			s.skipBreak()
			continue
		}
		if contentIndent < 0 {
			contentIndent = col
		}
		if col < contentIndent {
			s.idx = lineStart
			break
		}
		lineTextStart := s.idx
		s.skipToLineEnd()
		lines = append(lines, string(s.src[lineTextStart:s.idx]))
		if isBreak(s.cur()) {
			s.skipBreak()
		} else {
			break
		}
	}

	var b strings.Builder
	if folded {
		prevBlank := true
		for i, ln := range lines {
			if ln == "" {
				b.WriteByte('\n')
				prevBlank = true
				continue
			}
			if i > 0 && !prevBlank {
				b.WriteByte(' ')
			}
			b.WriteString(ln)
			prevBlank = false
		}
	} else {
		b.WriteString(strings.Join(lines, "\n"))
	}
	text := b.String()
	if len(lines) > 0 {
		text += "\n"
	}

	switch chomp {
	case '-':
		text = strings.TrimRight(text, "\n")
	case '+':
		// keep all trailing newlines as scanned
	default:
		text = strings.TrimRight(text, "\n")
		if len(lines) > 0 {
			text += "\n"
		}
	}

	style := token.LiteralStyle
	if folded {
		style = token.FoldedStyle
	}
	s.push(&token.Token{Type: token.ScalarType, Marker: m, ScalarStyle: style, Value: text})
	return nil
}
