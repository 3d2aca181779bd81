package parser

import "github.com/nvksv/yaml-core/token"

// EventType identifies the kind of structural tree delta an Event
// represents.
type EventType int

const (
	NothingEvent EventType = iota
	StreamStartEvent
	StreamEndEvent
	DocumentStartEvent
	DocumentEndEvent
	AliasEvent
	ScalarEvent
	SequenceStartEvent
	SequenceEndEvent
	MappingStartEvent
	MappingEndEvent
)

func (t EventType) String() string {
	switch t {
	case StreamStartEvent:
		return "StreamStart"
	case StreamEndEvent:
		return "StreamEnd"
	case DocumentStartEvent:
		return "DocumentStart"
	case DocumentEndEvent:
		return "DocumentEnd"
	case AliasEvent:
		return "Alias"
	case ScalarEvent:
		return "Scalar"
	case SequenceStartEvent:
		return "SequenceStart"
	case SequenceEndEvent:
		return "SequenceEnd"
	case MappingStartEvent:
		return "MappingStart"
	case MappingEndEvent:
		return "MappingEnd"
	}
	return "Nothing"
}

// Event is a structural tree delta, the parser's unit of output.
//
// Anchor carries the raw anchor name a Scalar/SequenceStart/MappingStart
// node was tagged with ("" means none); AnchorID is the dense id the
// parser assigned it, in the order anchors are introduced within the
// document (0 means no anchor). Alias/AliasID mirror this for an
// AliasEvent: the parser resolves the aliased name against its own
// anchor-name→id registry the moment the alias token is consumed, so an
// AliasEvent always carries a known id — an alias naming an anchor that
// was never introduced fails the parse right there, before an Event is
// ever produced. TagHandle/TagSuffix mirror a consumed Tag token's
// fields when the node carried an explicit tag.
type Event struct {
	Type   EventType
	Marker token.Marker

	Anchor   string
	AnchorID int

	Alias   string
	AliasID int

	TagHandle string
	TagSuffix string
	hasTag    bool

	Style token.Style
	Value string
}

// HasTag reports whether the event's node carried an explicit tag
// property.
func (e Event) HasTag() bool { return e.hasTag }

func emptyScalar(m token.Marker) Event {
	return Event{Type: ScalarEvent, Marker: m, Style: token.PlainStyle, Value: "~"}
}

func emptyScalarWithProps(m token.Marker, anchor string, anchorID int, hasTag bool, handle, suffix string) Event {
	return Event{Type: ScalarEvent, Marker: m, Style: token.PlainStyle, Value: "~", Anchor: anchor, AnchorID: anchorID, hasTag: hasTag, TagHandle: handle, TagSuffix: suffix}
}
