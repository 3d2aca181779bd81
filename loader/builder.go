// Package loader assembles the document tree a token stream implies,
// by consuming parser.Event values. It keeps, per document, the node
// behind each anchor id the parser assigned, and owns Core schema
// scalar resolution; it delegates actual node construction to a
// Builder so that an alternate backend (a streaming consumer, an
// arena-backed store for very large documents) can be substituted
// without touching the event-handling logic.
package loader

import (
	"github.com/nvksv/yaml-core/ast"
	"github.com/nvksv/yaml-core/token"
)

// Builder constructs the tree nodes a Loader assembles. Unlike the
// pre-distillation original's builder trait, whose NodeHandle is an
// opaque integer key into an arena (so nodes can be taken, mutated in
// place, and put back under Rust's ownership rules), this Builder's
// handle is simply an ast.Node: Go's interface and pointer semantics
// already let a *ast.ArrayNode or *ast.HashNode be mutated in place by
// any holder of the interface value, so no indirection layer earns its
// keep here.
type Builder interface {
	NewBadValue(m token.Marker) ast.Node
	NewNull(m token.Marker) ast.Node
	NewSequence(m token.Marker) ast.Node
	NewMapping(m token.Marker) ast.Node
	NewFloat(text string, v float64, m token.Marker) ast.Node
	NewInt(v int64, m token.Marker) ast.Node
	NewString(v string, m token.Marker) ast.Node
	NewBool(v bool, m token.Marker) ast.Node
	NewAlias(anchorID int, m token.Marker) ast.Node

	// Clone returns an independent copy of n, used when a node must be
	// retained in both the anchor registry and the tree it was built
	// into.
	Clone(n ast.Node) ast.Node
	IsBadValue(n ast.Node) bool
}

// DefaultBuilder builds ast.Node values directly, with no bookkeeping
// of its own: the handle a caller gets back from NewSequence/NewMapping
// is the very node the Loader later appends children and entries to.
type DefaultBuilder struct{}

func (DefaultBuilder) NewBadValue(m token.Marker) ast.Node { return ast.BadValue(&m) }
func (DefaultBuilder) NewNull(m token.Marker) ast.Node     { return ast.Null(&m) }
func (DefaultBuilder) NewSequence(m token.Marker) ast.Node { return ast.Array(&m) }
func (DefaultBuilder) NewMapping(m token.Marker) ast.Node  { return ast.Hash(&m) }
func (DefaultBuilder) NewFloat(text string, v float64, m token.Marker) ast.Node {
	return ast.Real(text, &m)
}
func (DefaultBuilder) NewInt(v int64, m token.Marker) ast.Node    { return ast.Integer(v, &m) }
func (DefaultBuilder) NewString(v string, m token.Marker) ast.Node { return ast.String(v, &m) }
func (DefaultBuilder) NewBool(v bool, m token.Marker) ast.Node     { return ast.Bool(v, &m) }
func (DefaultBuilder) NewAlias(anchorID int, m token.Marker) ast.Node {
	return ast.Alias(anchorID, &m)
}
func (DefaultBuilder) Clone(n ast.Node) ast.Node   { return n.Clone() }
func (DefaultBuilder) IsBadValue(n ast.Node) bool  { return ast.IsBadValue(n) }
