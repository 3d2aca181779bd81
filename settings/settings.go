// Package settings carries the immutable configuration the loader is
// constructed with: which of the optional behaviors (aliases, multiple
// documents per stream, duplicate-key rejection) are enabled. The
// parser does not take settings.
//
// The original shares this configuration by reference with interior
// mutability (Rust's Rc<RefCell<...>>) across the loader and builder.
// Design Note §9 of SPEC_FULL.md resolves that for a systems rewrite: an
// immutable value passed by reference through construction, since
// nothing in this module mutates settings once a parse has begun.
package settings

// Settings is passed by value; callers needing different behavior
// construct a new Settings rather than mutating one in place.
type Settings struct {
	allowAliases  bool
	allowMultiDoc bool

	// RejectDuplicateKeys is the Design Note §9 "recommend ... exposing
	// a settings flag" answer to the duplicate-mapping-key open
	// question. Off by default: the loader keeps last-write-wins.
	RejectDuplicateKeys bool
}

// New returns permissive defaults: aliases and multiple documents both
// allowed, matching YamlStandardSettings::new().
func New() Settings {
	return Settings{allowAliases: true, allowMultiDoc: true}
}

// NewSafe returns restrictive defaults: aliases and multiple documents
// both disallowed, matching YamlStandardSettings::new_safe().
func NewSafe() Settings {
	return Settings{allowAliases: false, allowMultiDoc: false}
}

// IsAliasesAllowed reports whether the loader keeps aliases as
// ast.AliasNode values resolvable through Document.Anchors (true) or
// replaces them with BadValue (false). The loader does not copy the
// anchored node into the tree in place of an alias.
func (s Settings) IsAliasesAllowed() bool { return s.allowAliases }

// IsMultiDocAllowed reports whether the loader should load every
// document in the stream (true) or only the first, silently discarding
// the rest (false) — the decided answer to SPEC_FULL.md §9's open
// question.
func (s Settings) IsMultiDocAllowed() bool { return s.allowMultiDoc }

// WithAliases returns a copy of s with alias expansion set to allow.
func (s Settings) WithAliases(allow bool) Settings {
	s.allowAliases = allow
	return s
}

// WithMultiDoc returns a copy of s with multi-document loading set to
// allow.
func (s Settings) WithMultiDoc(allow bool) Settings {
	s.allowMultiDoc = allow
	return s
}
