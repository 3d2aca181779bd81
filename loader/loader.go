package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nvksv/yaml-core/ast"
	"github.com/nvksv/yaml-core/parser"
	"github.com/nvksv/yaml-core/settings"
	"github.com/nvksv/yaml-core/token"
	"github.com/nvksv/yaml-core/yamlerr"
)

// Document is one parsed document in a stream, together with the
// anchor registry that resolves any ast.AliasNode it contains. Anchor
// ids are dense and start at 1; they are scoped to the document, not
// the stream (an anchor in one document never resolves an alias in
// another).
type Document struct {
	Root    ast.Node
	Anchors map[int]ast.Node
}

type nodeWithAnchor struct {
	node     ast.Node
	anchorID int
}

// Loader consumes a parser.Parser's event stream and assembles it into
// a Document per YAML document, resolving anchors/aliases and scalar
// tags/styles into concrete ast.Node values along the way. Anchor-name
// resolution itself is the parser's job (parser.Parser owns the
// anchor-name→id registry and fails outright on an alias to an
// unintroduced name); the loader only clones and stores the node
// behind each id the parser already resolved, keyed per document.
type Loader struct {
	settings settings.Settings
	builder  Builder

	docStack []nodeWithAnchor
	keyStack []ast.Node

	idToNode map[int]ast.Node

	docs []Document
	err  error
}

// New returns a Loader using the DefaultBuilder.
func New(s settings.Settings) *Loader {
	return NewWithBuilder(s, DefaultBuilder{})
}

// NewWithBuilder returns a Loader that constructs nodes through b.
func NewWithBuilder(s settings.Settings, b Builder) *Loader {
	return &Loader{settings: s, builder: b}
}

// Documents returns every document assembled so far.
func (l *Loader) Documents() []Document { return l.docs }

// LoadAll drives p to exhaustion (or to the end of the first document,
// if the loader's settings disallow multiple documents), building a
// Document for each one encountered.
func (l *Loader) LoadAll(p *parser.Parser) error {
	for {
		ev, err := p.Next()
		if err != nil {
			return err
		}
		if err := l.onEvent(ev); err != nil {
			return err
		}
		if l.err != nil {
			return l.err
		}
		switch ev.Type {
		case parser.StreamEndEvent:
			return nil
		case parser.DocumentEndEvent:
			if !l.settings.IsMultiDocAllowed() {
				return nil
			}
		}
	}
}

func (l *Loader) onEvent(ev parser.Event) error {
	switch ev.Type {
	case parser.DocumentStartEvent:
		l.idToNode = make(map[int]ast.Node)

	case parser.DocumentEndEvent:
		var content ast.Node
		switch len(l.docStack) {
		case 0:
			content = l.builder.NewBadValue(ev.Marker)
		case 1:
			content = l.docStack[0].node
			l.docStack = l.docStack[:0]
		default:
			return l.fail(ev.Marker, fmt.Sprintf("internal error: %d nodes left open at document end", len(l.docStack)))
		}
		l.docs = append(l.docs, Document{Root: content, Anchors: l.idToNode})

	case parser.SequenceStartEvent:
		l.docStack = append(l.docStack, nodeWithAnchor{node: l.builder.NewSequence(ev.Marker), anchorID: ev.AnchorID})

	case parser.SequenceEndEvent:
		n := len(l.docStack)
		if n == 0 {
			return l.fail(ev.Marker, "unmatched sequence end")
		}
		node := l.docStack[n-1]
		l.docStack = l.docStack[:n-1]
		l.insertNewNode(node, ev.Marker)

	case parser.MappingStartEvent:
		l.docStack = append(l.docStack, nodeWithAnchor{node: l.builder.NewMapping(ev.Marker), anchorID: ev.AnchorID})
		l.keyStack = append(l.keyStack, l.builder.NewBadValue(ev.Marker))

	case parser.MappingEndEvent:
		if len(l.keyStack) == 0 || len(l.docStack) == 0 {
			return l.fail(ev.Marker, "unmatched mapping end")
		}
		l.keyStack = l.keyStack[:len(l.keyStack)-1]
		n := len(l.docStack)
		node := l.docStack[n-1]
		l.docStack = l.docStack[:n-1]
		l.insertNewNode(node, ev.Marker)

	case parser.ScalarEvent:
		node := l.resolveScalar(ev)
		l.insertNewNode(nodeWithAnchor{node: node, anchorID: ev.AnchorID}, ev.Marker)

	case parser.AliasEvent:
		// The parser already failed the parse if ev.AliasID named an
		// anchor that was never introduced; the only policy left for
		// the loader to enforce here is the settings-gated one.
		var node ast.Node
		if l.settings.IsAliasesAllowed() {
			node = l.builder.NewAlias(ev.AliasID, ev.Marker)
		} else {
			node = l.builder.NewBadValue(ev.Marker)
		}
		l.insertNewNode(nodeWithAnchor{node: node}, ev.Marker)
	}
	return nil
}

// resolveScalar implements the Core schema resolution rule: a scalar's
// style determines whether its content is ever interpreted (only plain
// scalars are), and an explicit "!!"-tag on a plain scalar takes
// precedence over the bare-text heuristics in fromPlainText.
func (l *Loader) resolveScalar(ev parser.Event) ast.Node {
	if ev.Style != token.PlainStyle {
		return l.builder.NewString(ev.Value, ev.Marker)
	}
	if ev.HasTag() && ev.TagHandle == "!!" {
		switch ev.TagSuffix {
		case "bool":
			if v, err := strconv.ParseBool(ev.Value); err == nil {
				return l.builder.NewBool(v, ev.Marker)
			}
			return l.builder.NewBadValue(ev.Marker)
		case "int":
			if v, err := strconv.ParseInt(ev.Value, 10, 64); err == nil {
				return l.builder.NewInt(v, ev.Marker)
			}
			return l.builder.NewBadValue(ev.Marker)
		case "float":
			if v, ok := parseCoreFloat(ev.Value); ok {
				return l.builder.NewFloat(ev.Value, v, ev.Marker)
			}
			return l.builder.NewBadValue(ev.Marker)
		case "null":
			if ev.Value == "~" || ev.Value == "null" {
				return l.builder.NewNull(ev.Marker)
			}
			return l.builder.NewBadValue(ev.Marker)
		default:
			return l.builder.NewString(ev.Value, ev.Marker)
		}
	}
	if ev.HasTag() {
		return l.builder.NewString(ev.Value, ev.Marker)
	}
	return l.fromPlainText(ev.Value, ev.Marker)
}

// fromPlainText resolves an untagged plain scalar by the Core schema's
// precedence: hexadecimal, octal, explicitly-signed or bare decimal
// integer, float (including the infinity/nan spellings), then the
// null/bool/string literals.
func (l *Loader) fromPlainText(v string, m token.Marker) ast.Node {
	switch {
	case strings.HasPrefix(v, "0x"):
		if i, err := strconv.ParseInt(v[2:], 16, 64); err == nil {
			return l.builder.NewInt(i, m)
		}
	case strings.HasPrefix(v, "0o"):
		if i, err := strconv.ParseInt(v[2:], 8, 64); err == nil {
			return l.builder.NewInt(i, m)
		}
	case strings.HasPrefix(v, "+"):
		if i, err := strconv.ParseInt(v[1:], 10, 64); err == nil {
			return l.builder.NewInt(i, m)
		}
	default:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return l.builder.NewInt(i, m)
		}
	}
	if f, ok := parseCoreFloat(v); ok {
		return l.builder.NewFloat(v, f, m)
	}
	switch v {
	case "~", "null":
		return l.builder.NewNull(m)
	case "true":
		return l.builder.NewBool(true, m)
	case "false":
		return l.builder.NewBool(false, m)
	default:
		return l.builder.NewString(v, m)
	}
}

func parseCoreFloat(v string) (float64, bool) {
	switch v {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", "NaN", ".NAN":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

// insertNewNode registers node's anchor (if any) and attaches it to
// whatever is open on docStack: the loose top-level node if the stack
// is empty, an append if the parent is a sequence, or the pending-key
// dance if the parent is a mapping (the first child of a mapping-start
// is always a key, the second its value, alternating). The anchor id
// itself was already assigned by the parser when the "&name" token was
// consumed; here it's only a question of whether to keep a clone of
// the finished node behind that id.
func (l *Loader) insertNewNode(n nodeWithAnchor, m token.Marker) {
	if l.settings.IsAliasesAllowed() && n.anchorID != 0 {
		l.idToNode[n.anchorID] = l.builder.Clone(n.node)
	}

	if len(l.docStack) == 0 {
		l.docStack = append(l.docStack, n)
		return
	}

	parent := &l.docStack[len(l.docStack)-1]
	switch p := parent.node.(type) {
	case *ast.ArrayNode:
		p.Values = append(p.Values, n.node)
	case *ast.HashNode:
		i := len(l.keyStack) - 1
		if l.builder.IsBadValue(l.keyStack[i]) {
			l.keyStack[i] = n.node
			return
		}
		key := l.keyStack[i]
		l.keyStack[i] = l.builder.NewBadValue(m)
		if l.settings.RejectDuplicateKeys {
			if sk, ok := key.(*ast.StringNode); ok {
				if _, exists := p.Get(sk.Value); exists {
					l.err = l.fail(m, fmt.Sprintf("duplicate mapping key %q", sk.Value))
					return
				}
			}
		}
		p.Entries = append(p.Entries, ast.MappingEntry{Key: key, Value: n.node})
	}
}

func (l *Loader) fail(m token.Marker, msg string) error {
	return yamlerr.New(m, msg, "")
}
