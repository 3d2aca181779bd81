// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser.
package token

import "fmt"

// Marker is a source position: 1-based line, 1-based column, 0-based
// rune (character) index. It is the sole diagnostic anchor carried by
// every token and event.
type Marker struct {
	Line   int
	Column int
	Index  int
}

func (m Marker) String() string {
	return fmt.Sprintf("%d:%d", m.Line, m.Column)
}

// Less reports whether m sorts strictly before o by Index. Markers
// produced by a single scan are expected to be monotonically
// non-decreasing in Index.
func (m Marker) Less(o Marker) bool {
	return m.Index < o.Index
}

// Encoding identifies the detected/declared character encoding of a
// stream. Detection itself is out of scope (the caller supplies decoded
// characters); this only records what StreamStart reports.
type Encoding int

const (
	UnknownEncoding Encoding = iota
	UTF8Encoding
	UTF16LEEncoding
	UTF16BEEncoding
)

func (e Encoding) String() string {
	switch e {
	case UTF8Encoding:
		return "UTF-8"
	case UTF16LEEncoding:
		return "UTF-16LE"
	case UTF16BEEncoding:
		return "UTF-16BE"
	}
	return "unknown"
}

// Style distinguishes the five YAML scalar styles.
type Style int

const (
	NoStyle Style = iota
	PlainStyle
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
)

func (s Style) String() string {
	switch s {
	case PlainStyle:
		return "Plain"
	case SingleQuotedStyle:
		return "SingleQuoted"
	case DoubleQuotedStyle:
		return "DoubleQuoted"
	case LiteralStyle:
		return "Literal"
	case FoldedStyle:
		return "Folded"
	}
	return "None"
}

// Type identifies the kind of token. Unlike the flat enumeration used by
// a CST-oriented scanner, Type carries exactly the variants spec.md §3
// lists: directive/document framing, block and flow collection
// delimiters, the key/value/entry separators, alias/anchor/tag
// properties, and scalars.
type Type int

const (
	UnknownType Type = iota
	StreamStartType
	StreamEndType
	VersionDirectiveType
	TagDirectiveType
	DocumentStartType
	DocumentEndType
	BlockSequenceStartType
	BlockMappingStartType
	BlockEndType
	FlowSequenceStartType
	FlowSequenceEndType
	FlowMappingStartType
	FlowMappingEndType
	FlowEntryType
	BlockEntryType
	KeyType
	ValueType
	AliasType
	AnchorType
	TagType
	ScalarType
)

func (t Type) String() string {
	switch t {
	case StreamStartType:
		return "StreamStart"
	case StreamEndType:
		return "StreamEnd"
	case VersionDirectiveType:
		return "VersionDirective"
	case TagDirectiveType:
		return "TagDirective"
	case DocumentStartType:
		return "DocumentStart"
	case DocumentEndType:
		return "DocumentEnd"
	case BlockSequenceStartType:
		return "BlockSequenceStart"
	case BlockMappingStartType:
		return "BlockMappingStart"
	case BlockEndType:
		return "BlockEnd"
	case FlowSequenceStartType:
		return "FlowSequenceStart"
	case FlowSequenceEndType:
		return "FlowSequenceEnd"
	case FlowMappingStartType:
		return "FlowMappingStart"
	case FlowMappingEndType:
		return "FlowMappingEnd"
	case FlowEntryType:
		return "FlowEntry"
	case BlockEntryType:
		return "BlockEntry"
	case KeyType:
		return "Key"
	case ValueType:
		return "Value"
	case AliasType:
		return "Alias"
	case AnchorType:
		return "Anchor"
	case TagType:
		return "Tag"
	case ScalarType:
		return "Scalar"
	}
	return "Unknown"
}

// Token is a tagged variant: a single Type together with the fields
// relevant to that variant. Unused fields are left zero-valued rather
// than modeled as a sum type, matching the teacher's flat-struct style
// (token.Token in goccy/go-yaml) while keeping the variant set spec.md
// §3 requires.
type Token struct {
	Type Type
	*Marker

	// StreamStart
	Encoding Encoding

	// VersionDirective
	Major, Minor int

	// TagDirective / Tag
	Handle, Prefix string

	// Alias / Anchor
	Name string

	// Tag
	Suffix string

	// Scalar
	ScalarStyle Style
	Value       string

	// Origin is the raw source text the token was scanned from
	// (before escape processing / folding), used for diagnostics.
	Origin string
}

func (t *Token) String() string {
	switch t.Type {
	case ScalarType:
		return fmt.Sprintf("%s(%s)=%q", t.Type, t.ScalarStyle, t.Value)
	case AliasType, AnchorType:
		return fmt.Sprintf("%s(%s)", t.Type, t.Name)
	case TagType:
		return fmt.Sprintf("%s(%s,%s)", t.Type, t.Handle, t.Suffix)
	default:
		return t.Type.String()
	}
}

// Tokens is an ordered collection, kept only for the lexer/printer
// convenience layer; the scanner itself is pull-based and never
// materializes this type.
type Tokens []*Token

func (t *Tokens) Add(tks ...*Token) {
	*t = append(*t, tks...)
}
