// Package ast defines the in-memory document tree the loader builds:
// a tagged-variant Node matching spec.md §3's "Document tree (collaborator)"
// exactly, implemented as one concrete type per variant behind a common
// interface, the way goccy/go-yaml implements one concrete struct per
// syntax-node kind behind its ast.Node interface.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvksv/yaml-core/token"
)

// NodeType identifies the concrete kind of a Node.
type NodeType int

const (
	UnknownNodeType NodeType = iota
	NullNodeType
	BooleanNodeType
	IntegerNodeType
	RealNodeType
	StringNodeType
	ArrayNodeType
	HashNodeType
	AliasNodeType
	BadValueNodeType
)

func (t NodeType) String() string {
	switch t {
	case NullNodeType:
		return "Null"
	case BooleanNodeType:
		return "Boolean"
	case IntegerNodeType:
		return "Integer"
	case RealNodeType:
		return "Real"
	case StringNodeType:
		return "String"
	case ArrayNodeType:
		return "Array"
	case HashNodeType:
		return "Hash"
	case AliasNodeType:
		return "Alias"
	case BadValueNodeType:
		return "BadValue"
	}
	return "Unknown"
}

// Node is implemented by every document-tree variant.
type Node interface {
	Type() NodeType
	GetMarker() *token.Marker
	String() string
	// Clone returns an independent deep copy, used by the loader to take
	// an anchor snapshot at anchor-registration time (spec.md §4.3,
	// "Anchor clones").
	Clone() Node
}

type base struct {
	Marker *token.Marker
}

func (b *base) GetMarker() *token.Marker { return b.Marker }

// NullNode represents YAML's null scalar.
type NullNode struct{ base }

func Null(m *token.Marker) *NullNode       { return &NullNode{base{m}} }
func (*NullNode) Type() NodeType           { return NullNodeType }
func (*NullNode) String() string           { return "null" }
func (n *NullNode) Clone() Node            { return Null(n.Marker) }

// BoolNode represents a boolean scalar.
type BoolNode struct {
	base
	Value bool
}

func Bool(v bool, m *token.Marker) *BoolNode { return &BoolNode{base{m}, v} }
func (*BoolNode) Type() NodeType             { return BooleanNodeType }
func (n *BoolNode) String() string           { return strconv.FormatBool(n.Value) }
func (n *BoolNode) Clone() Node              { return Bool(n.Value, n.Marker) }

// IntegerNode represents an integer scalar.
type IntegerNode struct {
	base
	Value int64
}

func Integer(v int64, m *token.Marker) *IntegerNode { return &IntegerNode{base{m}, v} }
func (*IntegerNode) Type() NodeType                 { return IntegerNodeType }
func (n *IntegerNode) String() string               { return strconv.FormatInt(n.Value, 10) }
func (n *IntegerNode) Clone() Node                  { return Integer(n.Value, n.Marker) }

// RealNode represents a float scalar; Text keeps the original token text
// (spec.md §3: "kept as original text to preserve round-trip") rather
// than a reparsed float64, since ".inf"/".nan" and exponent formatting
// would otherwise be lossy.
type RealNode struct {
	base
	Text string
}

func Real(text string, m *token.Marker) *RealNode { return &RealNode{base{m}, text} }
func (*RealNode) Type() NodeType                  { return RealNodeType }
func (n *RealNode) String() string                { return n.Text }
func (n *RealNode) Clone() Node                    { return Real(n.Text, n.Marker) }

// StringNode represents a string scalar.
type StringNode struct {
	base
	Value string
}

func String(v string, m *token.Marker) *StringNode { return &StringNode{base{m}, v} }
func (*StringNode) Type() NodeType                 { return StringNodeType }
func (n *StringNode) String() string               { return n.Value }
func (n *StringNode) Clone() Node                  { return String(n.Value, n.Marker) }

// ArrayNode represents an ordered sequence of nodes.
type ArrayNode struct {
	base
	Values []Node
}

func Array(m *token.Marker) *ArrayNode { return &ArrayNode{base: base{m}} }
func (*ArrayNode) Type() NodeType      { return ArrayNodeType }
func (n *ArrayNode) String() string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (n *ArrayNode) Clone() Node {
	c := Array(n.Marker)
	c.Values = make([]Node, len(n.Values))
	for i, v := range n.Values {
		c.Values[i] = v.Clone()
	}
	return c
}

// MappingEntry is one key/value pair of a Hash, preserving insertion
// order (spec.md §3 invariant: "Hash (insertion-ordered mapping)").
type MappingEntry struct {
	Key   Node
	Value Node
}

// HashNode represents an insertion-ordered mapping.
type HashNode struct {
	base
	Entries []MappingEntry
}

func Hash(m *token.Marker) *HashNode { return &HashNode{base: base{m}} }
func (*HashNode) Type() NodeType     { return HashNodeType }
func (n *HashNode) String() string {
	parts := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key.String(), e.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (n *HashNode) Clone() Node {
	c := Hash(n.Marker)
	c.Entries = make([]MappingEntry, len(n.Entries))
	for i, e := range n.Entries {
		c.Entries[i] = MappingEntry{Key: e.Key.Clone(), Value: e.Value.Clone()}
	}
	return c
}

// Get returns the value associated with a string key, and whether it was
// found. Duplicate keys resolve last-write-wins, matching insertion
// order after the loader's "last write wins" policy (SPEC_FULL.md §9).
func (n *HashNode) Get(key string) (Node, bool) {
	for i := len(n.Entries) - 1; i >= 0; i-- {
		if s, ok := n.Entries[i].Key.(*StringNode); ok && s.Value == key {
			return n.Entries[i].Value, true
		}
	}
	return nil, false
}

// AliasNode refers to a previously anchored node by its dense per-document
// anchor id (spec.md §3). Unlike the pre-distillation original, which
// resolves every alias to an eager deep clone at parse time, the loader
// here leaves AliasNode in the tree and hands back the id-to-node
// registry alongside the document (loader.Document.Anchors), so a large,
// heavily-aliased document is not blown up into a duplicate subtree per
// reference. An alias disallowed by settings resolves to BadValue; an
// alias to an unknown anchor fails the parse, so neither reaches the
// caller as a dangling reference.
type AliasNode struct {
	base
	AnchorID int
}

func Alias(id int, m *token.Marker) *AliasNode { return &AliasNode{base{m}, id} }
func (*AliasNode) Type() NodeType              { return AliasNodeType }
func (n *AliasNode) String() string            { return fmt.Sprintf("*%d", n.AnchorID) }
func (n *AliasNode) Clone() Node               { return Alias(n.AnchorID, n.Marker) }

// BadValueNode is the sentinel for a malformed, missing, or otherwise
// unresolved value; it never aborts the load.
type BadValueNode struct{ base }

func BadValue(m *token.Marker) *BadValueNode { return &BadValueNode{base{m}} }
func (*BadValueNode) Type() NodeType         { return BadValueNodeType }
func (*BadValueNode) String() string         { return "<bad value>" }
func (n *BadValueNode) Clone() Node          { return BadValue(n.Marker) }

// IsBadValue reports whether n is the BadValue sentinel (nil included,
// for defensive callers).
func IsBadValue(n Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(*BadValueNode)
	return ok
}
