// Package printer renders a token stream or a document tree back to
// text, for the --tokens debugging view and for caret-style error
// reporting in cmd/yamlcat.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/nvksv/yaml-core/ast"
	"github.com/nvksv/yaml-core/token"
)

// Property is the prefix/suffix wrapped around one token's rendered text.
type Property struct {
	Prefix string
	Suffix string
}

// PrintFunc returns the Property to apply to one class of token.
type PrintFunc func() *Property

// Printer renders a token.Tokens stream or an ast.Node tree as text,
// optionally colorized by token class and annotated with line numbers.
type Printer struct {
	LineNumber       bool
	LineNumberFormat func(num int) string
	MapKey           PrintFunc
	Anchor           PrintFunc
	Alias            PrintFunc
	Bool             PrintFunc
	String           PrintFunc
	Number           PrintFunc
}

func defaultLineNumberFormat(num int) string {
	return fmt.Sprintf("%4d | ", num)
}

// SetDefaultColorSet installs the color scheme cmd/yamlcat uses by
// default: magenta for scalars that resolve to bool/number, cyan for
// mapping keys, yellow for anchors/aliases, green for strings.
func (p *Printer) SetDefaultColorSet() {
	p.Bool = func() *Property { return &Property{Prefix: format(color.FgHiMagenta), Suffix: reset} }
	p.Number = func() *Property { return &Property{Prefix: format(color.FgHiMagenta), Suffix: reset} }
	p.MapKey = func() *Property { return &Property{Prefix: format(color.FgHiCyan), Suffix: reset} }
	p.Anchor = func() *Property { return &Property{Prefix: format(color.FgHiYellow), Suffix: reset} }
	p.Alias = func() *Property { return &Property{Prefix: format(color.FgHiYellow), Suffix: reset} }
	p.String = func() *Property { return &Property{Prefix: format(color.FgHiGreen), Suffix: reset} }
}

const escape = "\x1b"

var reset = fmt.Sprintf("%s[%dm", escape, color.Reset)

func format(attr color.Attribute) string {
	return fmt.Sprintf("%s[%dm", escape, attr)
}

// isScalarKey reports whether tokens[i] is a scalar immediately
// followed by a ValueType separator, i.e. it plays the role of a
// mapping key.
func isScalarKey(tokens token.Tokens, i int) bool {
	if tokens[i].Type != token.ScalarType {
		return false
	}
	return i+1 < len(tokens) && tokens[i+1].Type == token.ValueType
}

// looksNumeric reports whether v parses as one of the Core schema's
// numeric literal forms. This is for coloring only; it does not need
// to agree with the loader's own scalar resolution.
func looksNumeric(v string) bool {
	if _, err := strconv.ParseInt(v, 0, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func (p *Printer) property(tokens token.Tokens, i int) *Property {
	tk := tokens[i]
	switch tk.Type {
	case token.AnchorType:
		if p.Anchor != nil {
			return p.Anchor()
		}
	case token.AliasType:
		if p.Alias != nil {
			return p.Alias()
		}
	case token.ScalarType:
		if isScalarKey(tokens, i) {
			if p.MapKey != nil {
				return p.MapKey()
			}
			break
		}
		switch {
		case tk.ScalarStyle == token.SingleQuotedStyle || tk.ScalarStyle == token.DoubleQuotedStyle:
			if p.String != nil {
				return p.String()
			}
		case tk.Value == "true" || tk.Value == "false":
			if p.Bool != nil {
				return p.Bool()
			}
		case looksNumeric(tk.Value):
			if p.Number != nil {
				return p.Number()
			}
		default:
			if p.String != nil {
				return p.String()
			}
		}
	}
	return &Property{}
}

func tokenText(tk *token.Token) string {
	if tk.Origin != "" {
		return tk.Origin
	}
	return tk.String()
}

// PrintTokens renders tokens one-per-line (line-numbered if
// p.LineNumber is set), grouping consecutive tokens that share a
// source line onto one output line.
func (p *Printer) PrintTokens(tokens token.Tokens) string {
	if len(tokens) == 0 {
		return ""
	}
	if p.LineNumber && p.LineNumberFormat == nil {
		p.LineNumberFormat = defaultLineNumberFormat
	}
	var lines []string
	lastLine := -1
	for i, tk := range tokens {
		prop := p.property(tokens, i)
		text := prop.Prefix + tokenText(tk) + prop.Suffix
		line := 0
		if tk.Marker != nil {
			line = tk.Line
		}
		if line != lastLine {
			header := ""
			if p.LineNumber {
				header = p.LineNumberFormat(line)
			}
			lines = append(lines, header+text)
			lastLine = line
		} else {
			lines[len(lines)-1] = lines[len(lines)-1] + " " + text
		}
	}
	return strings.Join(lines, "\n")
}

// PrintNode renders node's document-tree representation.
func (p *Printer) PrintNode(node ast.Node) []byte {
	return []byte(node.String() + "\n")
}

func (p *Printer) PrintErrorMessage(msg string, isColored bool) string {
	if isColored {
		return format(color.FgHiRed) + msg + reset
	}
	return msg
}

// PrintErrorToken renders a source window around tk's position (three
// lines of context on either side), marking the offending line with
// ">" and placing a caret under its column.
func (p *Printer) PrintErrorToken(src string, tk *token.Token, isColored bool) string {
	if tk.Marker == nil {
		return ""
	}
	lines := strings.Split(src, "\n")
	errLine := tk.Line
	minLine := errLine - 3
	if minLine < 1 {
		minLine = 1
	}
	maxLine := errLine + 3
	if maxLine > len(lines) {
		maxLine = len(lines)
	}

	var b strings.Builder
	for n := minLine; n <= maxLine; n++ {
		marker := "  "
		if n == errLine {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%4d | %s\n", marker, n, lines[n-1])
		if n == errLine {
			caret := strings.Repeat(" ", tk.Column-1) + "^"
			if isColored {
				caret = p.PrintErrorMessage(caret, true)
			}
			fmt.Fprintf(&b, "       %s\n", caret)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
