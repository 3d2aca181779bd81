// Package parser turns a token stream into a sequence of structural
// events: stream/document framing, scalar/alias leaves, and
// sequence/mapping start-end brackets. It consumes tokens one at a
// time from a scanner and never materializes the whole stream, using
// an explicit stack of pending continuations in place of recursion so
// that Peek/Next can each produce exactly one event per call.
//
// The state machine mirrors the production/continuation design used by
// the pre-distillation original (a libyaml-family parser): every
// collection start pushes the state that will produce its matching
// end, and every entry separator re-pushes the state that will look
// for the next entry.
package parser

import (
	"fmt"

	"github.com/nvksv/yaml-core/scanner"
	"github.com/nvksv/yaml-core/token"
	"github.com/nvksv/yaml-core/yamlerr"
)

type stateFunc func(*Parser) (Event, error)

// Parser is a one-event-lookahead pull parser over a token stream. It
// owns the anchor-name→id registry for the document it is currently
// inside: ids are dense positive integers, assigned the moment an
// ANCHOR property token is consumed (not when the anchored node
// finishes building), and the registry resets at every document
// boundary. This is what lets a nested anchor such as "&a [1, &b 2]"
// assign id 1 to "a" before recursing into the sequence that
// introduces "b".
type Parser struct {
	sc     *scanner.Scanner
	states []stateFunc

	peekedTok  *token.Token
	havePeeked bool

	peekedEvent  Event
	havePeekedEv bool

	nameToID map[string]int
	nextID   int

	closed bool
}

// New returns a parser reading tokens from sc. The parser does not
// itself know about settings.Settings (alias-disallowed-under-safe-
// settings policy is enforced by the loader, one layer up); it always
// emits the literal event stream a conforming token sequence implies.
// Besides failing on an unexpected token, it fails when an alias names
// an anchor not yet introduced in the current document — a structural
// error independent of any loader policy.
func New(sc *scanner.Scanner) *Parser {
	p := &Parser{sc: sc}
	p.states = []stateFunc{(*Parser).parseStreamStart}
	p.resetAnchors()
	return p
}

func (p *Parser) resetAnchors() {
	p.nameToID = make(map[string]int)
	p.nextID = 0
}

// Peek returns the next event without consuming it. A second Peek (or
// a Peek followed by Next) without an intervening state change returns
// the same event.
func (p *Parser) Peek() (Event, error) {
	if p.havePeekedEv {
		return p.peekedEvent, nil
	}
	ev, err := p.advance()
	if err != nil {
		return Event{}, err
	}
	p.peekedEvent = ev
	p.havePeekedEv = true
	return ev, nil
}

// Next returns and consumes the next event.
func (p *Parser) Next() (Event, error) {
	if p.havePeekedEv {
		p.havePeekedEv = false
		return p.peekedEvent, nil
	}
	return p.advance()
}

func (p *Parser) advance() (Event, error) {
	if len(p.states) == 0 {
		return Event{}, fmt.Errorf("parser: Next called after stream end")
	}
	n := len(p.states)
	state := p.states[n-1]
	p.states = p.states[:n-1]
	return state(p)
}

// --- token lookahead ---

func (p *Parser) peekToken() (*token.Token, error) {
	if p.havePeeked {
		return p.peekedTok, nil
	}
	tk, err := p.sc.Next()
	if err != nil {
		return nil, err
	}
	p.peekedTok = tk
	p.havePeeked = true
	return tk, nil
}

func (p *Parser) nextToken() (*token.Token, error) {
	if p.havePeeked {
		p.havePeeked = false
		tk := p.peekedTok
		p.peekedTok = nil
		return tk, nil
	}
	return p.sc.Next()
}

func (p *Parser) expect(tp token.Type) (*token.Token, error) {
	tk, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	if tk.Type != tp {
		return nil, p.fail(tk.Marker, fmt.Sprintf("expected %s, found %s", tp, tk.Type))
	}
	return tk, nil
}

func (p *Parser) fail(m *token.Marker, msg string) error {
	var mm token.Marker
	if m != nil {
		mm = *m
	}
	return yamlerr.New(mm, msg, "")
}

func (p *Parser) push(s stateFunc) { p.states = append(p.states, s) }

// --- properties (anchor/tag) ---

type properties struct {
	anchor    string
	anchorID  int
	hasTag    bool
	tagHandle string
	tagSuffix string
	marker    token.Marker
}

// consumeProperties consumes an optional ANCHOR and/or TAG token pair,
// in either order, as block/flow node properties. An ANCHOR token's
// name is registered and assigned a dense id immediately, before any
// node it introduces is built or recursed into.
func (p *Parser) consumeProperties() (properties, error) {
	var pr properties
	first, err := p.peekToken()
	if err != nil {
		return pr, err
	}
	pr.marker = *first.Marker
	for i := 0; i < 2; i++ {
		tk, err := p.peekToken()
		if err != nil {
			return pr, err
		}
		switch tk.Type {
		case token.AnchorType:
			if pr.anchor != "" {
				return pr, p.fail(tk.Marker, "found duplicate anchor property")
			}
			tk, _ = p.nextToken()
			pr.anchor = tk.Name
			p.nextID++
			p.nameToID[tk.Name] = p.nextID
			pr.anchorID = p.nextID
		case token.TagType:
			if pr.hasTag {
				return pr, p.fail(tk.Marker, "found duplicate tag property")
			}
			tk, _ = p.nextToken()
			pr.hasTag = true
			pr.tagHandle = tk.Handle
			pr.tagSuffix = tk.Suffix
		default:
			return pr, nil
		}
	}
	return pr, nil
}

// --- stream/document states ---

func (p *Parser) parseStreamStart() (Event, error) { return p.doStreamStart() }

func (p *Parser) doStreamStart() (Event, error) {
	tk, err := p.expect(token.StreamStartType)
	if err != nil {
		return Event{}, err
	}
	p.push(p.documentStartState(true))
	return Event{Type: StreamStartEvent, Marker: *tk.Marker}, nil
}

// documentStartState returns a stateFunc bound to `implicit`, matching
// the original's DocumentStart(implicit) state variant.
func (p *Parser) documentStartState(implicit bool) stateFunc {
	return func(p *Parser) (Event, error) { return p.documentStart(implicit) }
}

func (p *Parser) documentStart(implicit bool) (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}

	for !implicit && (tk.Type == token.DocumentEndType) {
		p.nextToken()
		tk, err = p.peekToken()
		if err != nil {
			return Event{}, err
		}
	}

	if tk.Type == token.StreamEndType {
		p.nextToken()
		p.closed = true
		return Event{Type: StreamEndEvent, Marker: *tk.Marker}, nil
	}

	if tk.Type == token.VersionDirectiveType || tk.Type == token.TagDirectiveType {
		for tk.Type == token.VersionDirectiveType || tk.Type == token.TagDirectiveType {
			p.nextToken()
			tk, err = p.peekToken()
			if err != nil {
				return Event{}, err
			}
		}
		if tk.Type != token.DocumentStartType {
			return Event{}, p.fail(tk.Marker, "expected '---' after directives")
		}
		p.nextToken()
		implicit = false
	} else if tk.Type == token.DocumentStartType {
		p.nextToken()
		implicit = false
		tk, err = p.peekToken()
		if err != nil {
			return Event{}, err
		}
	} else if !implicit {
		return Event{}, p.fail(tk.Marker, "expected '<document start>'")
	}

	p.resetAnchors()
	p.push((*Parser).documentEnd)
	p.push((*Parser).documentContent)
	return Event{Type: DocumentStartEvent, Marker: *tk.Marker}, nil
}

func (p *Parser) documentContent() (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	switch tk.Type {
	case token.VersionDirectiveType, token.TagDirectiveType, token.DocumentStartType,
		token.DocumentEndType, token.StreamEndType:
		return emptyScalar(*tk.Marker), nil
	}
	return p.parseNode(true, false)
}

func (p *Parser) documentEnd() (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	m := *tk.Marker
	if tk.Type == token.DocumentEndType {
		p.nextToken()
	}
	p.push(p.documentStartState(false))
	return Event{Type: DocumentEndEvent, Marker: m}, nil
}

// --- node dispatch ---

// parseNode consumes an optional anchor/tag property pair and then
// dispatches on the following token to a scalar, an alias, or the
// start of a block/flow collection, pushing whatever continuation
// state will close it. block selects whether bare (unbracketed) block
// collections are permitted here; indentless additionally allows a
// block sequence that does not indent past its parent mapping key
// (the "- " entries directly under "key:" idiom).
func (p *Parser) parseNode(block, indentless bool) (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}

	if tk.Type == token.AliasType {
		p.nextToken()
		id, ok := p.nameToID[tk.Name]
		if !ok {
			return Event{}, p.fail(tk.Marker, fmt.Sprintf("while parsing node, found unknown anchor %q", tk.Name))
		}
		return Event{Type: AliasEvent, Marker: *tk.Marker, Alias: tk.Name, AliasID: id}, nil
	}

	pr, err := p.consumeProperties()
	if err != nil {
		return Event{}, err
	}

	tk, err = p.peekToken()
	if err != nil {
		return Event{}, err
	}

	switch {
	case tk.Type == token.ScalarType:
		p.nextToken()
		return Event{
			Type: ScalarEvent, Marker: pr.marker,
			Anchor: pr.anchor, AnchorID: pr.anchorID, hasTag: pr.hasTag, TagHandle: pr.tagHandle, TagSuffix: pr.tagSuffix,
			Style: tk.ScalarStyle, Value: tk.Value,
		}, nil

	case tk.Type == token.FlowSequenceStartType:
		p.nextToken()
		p.push(p.flowSequenceEntryState(true))
		return Event{Type: SequenceStartEvent, Marker: pr.marker, Anchor: pr.anchor, AnchorID: pr.anchorID, hasTag: pr.hasTag, TagHandle: pr.tagHandle, TagSuffix: pr.tagSuffix}, nil

	case tk.Type == token.FlowMappingStartType:
		p.nextToken()
		p.push(p.flowMappingKeyState(true))
		return Event{Type: MappingStartEvent, Marker: pr.marker, Anchor: pr.anchor, AnchorID: pr.anchorID, hasTag: pr.hasTag, TagHandle: pr.tagHandle, TagSuffix: pr.tagSuffix}, nil

	case block && tk.Type == token.BlockSequenceStartType:
		p.nextToken()
		p.push((*Parser).blockSequenceEntry)
		return Event{Type: SequenceStartEvent, Marker: pr.marker, Anchor: pr.anchor, AnchorID: pr.anchorID, hasTag: pr.hasTag, TagHandle: pr.tagHandle, TagSuffix: pr.tagSuffix}, nil

	case block && indentless && tk.Type == token.BlockEntryType:
		p.push((*Parser).indentlessSequenceEntry)
		return Event{Type: SequenceStartEvent, Marker: pr.marker, Anchor: pr.anchor, AnchorID: pr.anchorID, hasTag: pr.hasTag, TagHandle: pr.tagHandle, TagSuffix: pr.tagSuffix}, nil

	case block && tk.Type == token.BlockMappingStartType:
		p.nextToken()
		p.push((*Parser).blockMappingKey)
		return Event{Type: MappingStartEvent, Marker: pr.marker, Anchor: pr.anchor, AnchorID: pr.anchorID, hasTag: pr.hasTag, TagHandle: pr.tagHandle, TagSuffix: pr.tagSuffix}, nil

	case pr.anchor != "" || pr.hasTag:
		// A bare property with no following collection/scalar token
		// stands for an empty (null) scalar, e.g. "key: &a\n".
		return emptyScalarWithProps(pr.marker, pr.anchor, pr.anchorID, pr.hasTag, pr.tagHandle, pr.tagSuffix), nil

	default:
		what := "block"
		if !block {
			what = "flow"
		}
		return Event{}, p.fail(tk.Marker, fmt.Sprintf("expected a %s node, found %s", what, tk.Type))
	}
}

// --- block sequence ---

func (p *Parser) blockSequenceEntry() (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	if tk.Type == token.BlockEntryType {
		p.nextToken()
		nxt, err := p.peekToken()
		if err != nil {
			return Event{}, err
		}
		if nxt.Type == token.BlockEntryType || nxt.Type == token.BlockEndType {
			p.push((*Parser).blockSequenceEntry)
			return emptyScalar(*nxt.Marker), nil
		}
		p.push((*Parser).blockSequenceEntry)
		return p.parseNode(true, false)
	}
	if tk.Type != token.BlockEndType {
		return Event{}, p.fail(tk.Marker, fmt.Sprintf("expected '-' or block end, found %s", tk.Type))
	}
	p.nextToken()
	return Event{Type: SequenceEndEvent, Marker: *tk.Marker}, nil
}

func (p *Parser) indentlessSequenceEntry() (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	if tk.Type != token.BlockEntryType {
		return Event{Type: SequenceEndEvent, Marker: *tk.Marker}, nil
	}
	p.nextToken()
	nxt, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	switch nxt.Type {
	case token.BlockEntryType, token.KeyType, token.ValueType, token.BlockEndType:
		p.push((*Parser).indentlessSequenceEntry)
		return emptyScalar(*nxt.Marker), nil
	}
	p.push((*Parser).indentlessSequenceEntry)
	return p.parseNode(true, false)
}

// --- block mapping ---

func (p *Parser) blockMappingKey() (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	if tk.Type == token.KeyType {
		p.nextToken()
		nxt, err := p.peekToken()
		if err != nil {
			return Event{}, err
		}
		switch nxt.Type {
		case token.KeyType, token.ValueType, token.BlockEndType:
			p.push((*Parser).blockMappingValue)
			return emptyScalar(*nxt.Marker), nil
		}
		p.push((*Parser).blockMappingValue)
		return p.parseNode(true, true)
	}
	if tk.Type != token.BlockEndType {
		return Event{}, p.fail(tk.Marker, fmt.Sprintf("expected a mapping key, found %s", tk.Type))
	}
	p.nextToken()
	return Event{Type: MappingEndEvent, Marker: *tk.Marker}, nil
}

func (p *Parser) blockMappingValue() (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	if tk.Type == token.ValueType {
		p.nextToken()
		nxt, err := p.peekToken()
		if err != nil {
			return Event{}, err
		}
		switch nxt.Type {
		case token.KeyType, token.ValueType, token.BlockEndType:
			p.push((*Parser).blockMappingKey)
			return emptyScalar(*nxt.Marker), nil
		}
		p.push((*Parser).blockMappingKey)
		return p.parseNode(true, true)
	}
	p.push((*Parser).blockMappingKey)
	return emptyScalar(*tk.Marker), nil
}

// --- flow sequence ---

func (p *Parser) flowSequenceEntryState(first bool) stateFunc {
	return func(p *Parser) (Event, error) { return p.flowSequenceEntry(first) }
}

func (p *Parser) flowSequenceEntry(first bool) (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	if tk.Type != token.FlowSequenceEndType {
		if !first {
			if tk.Type != token.FlowEntryType {
				return Event{}, p.fail(tk.Marker, fmt.Sprintf("expected ',' or ']', found %s", tk.Type))
			}
			p.nextToken()
			tk, err = p.peekToken()
			if err != nil {
				return Event{}, err
			}
		}
		if tk.Type == token.KeyType {
			// A "key: value" entry is a single-pair mapping: open it
			// here, and parse its key on the next call.
			p.nextToken()
			p.push(func(p *Parser) (Event, error) {
				nxt, err := p.peekToken()
				if err != nil {
					return Event{}, err
				}
				p.push((*Parser).flowSequenceEntryMappingValueState)
				switch nxt.Type {
				case token.ValueType, token.FlowEntryType, token.FlowSequenceEndType:
					return emptyScalar(*nxt.Marker), nil
				}
				return p.parseNode(false, false)
			})
			return Event{Type: MappingStartEvent, Marker: *tk.Marker}, nil
		}
		if tk.Type != token.FlowSequenceEndType {
			p.push(p.flowSequenceEntryState(false))
			return p.parseNode(false, false)
		}
	}
	p.nextToken()
	return Event{Type: SequenceEndEvent, Marker: *tk.Marker}, nil
}

func (p *Parser) flowSequenceEntryMappingValueState() (Event, error) {
	return p.flowSequenceEntryMappingValue()
}

func (p *Parser) flowSequenceEntryMappingValue() (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	if tk.Type == token.ValueType {
		p.nextToken()
		nxt, err := p.peekToken()
		if err != nil {
			return Event{}, err
		}
		switch nxt.Type {
		case token.FlowEntryType, token.FlowSequenceEndType:
			p.push((*Parser).flowSequenceEntryMappingEndState)
			return emptyScalar(*nxt.Marker), nil
		}
		p.push((*Parser).flowSequenceEntryMappingEndState)
		return p.parseNode(false, false)
	}
	p.push((*Parser).flowSequenceEntryMappingEndState)
	return emptyScalar(*tk.Marker), nil
}

func (p *Parser) flowSequenceEntryMappingEndState() (Event, error) {
	return p.flowSequenceEntryMappingEnd()
}

func (p *Parser) flowSequenceEntryMappingEnd() (Event, error) {
	p.push(p.flowSequenceEntryState(false))
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	return Event{Type: MappingEndEvent, Marker: *tk.Marker}, nil
}

// --- flow mapping ---

func (p *Parser) flowMappingKeyState(first bool) stateFunc {
	return func(p *Parser) (Event, error) { return p.flowMappingKey(first) }
}

func (p *Parser) flowMappingKey(first bool) (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	if tk.Type != token.FlowMappingEndType {
		if !first {
			if tk.Type != token.FlowEntryType {
				return Event{}, p.fail(tk.Marker, fmt.Sprintf("expected ',' or '}', found %s", tk.Type))
			}
			p.nextToken()
			tk, err = p.peekToken()
			if err != nil {
				return Event{}, err
			}
		}
		if tk.Type == token.KeyType {
			p.nextToken()
			nxt, err := p.peekToken()
			if err != nil {
				return Event{}, err
			}
			switch nxt.Type {
			case token.ValueType, token.FlowEntryType, token.FlowMappingEndType:
				p.push(p.flowMappingValueState(false))
				return emptyScalar(*nxt.Marker), nil
			}
			p.push(p.flowMappingValueState(false))
			return p.parseNode(false, false)
		}
		if tk.Type != token.FlowMappingEndType {
			p.push(p.flowMappingValueState(true))
			return p.parseNode(false, false)
		}
	}
	p.nextToken()
	return Event{Type: MappingEndEvent, Marker: *tk.Marker}, nil
}

func (p *Parser) flowMappingValueState(empty bool) stateFunc {
	return func(p *Parser) (Event, error) { return p.flowMappingValue(empty) }
}

func (p *Parser) flowMappingValue(empty bool) (Event, error) {
	tk, err := p.peekToken()
	if err != nil {
		return Event{}, err
	}
	if empty {
		p.push(p.flowMappingKeyState(false))
		return emptyScalar(*tk.Marker), nil
	}
	if tk.Type == token.ValueType {
		p.nextToken()
		nxt, err := p.peekToken()
		if err != nil {
			return Event{}, err
		}
		switch nxt.Type {
		case token.FlowEntryType, token.FlowMappingEndType:
			p.push(p.flowMappingKeyState(false))
			return emptyScalar(*nxt.Marker), nil
		}
		p.push(p.flowMappingKeyState(false))
		return p.parseNode(false, false)
	}
	p.push(p.flowMappingKeyState(false))
	return emptyScalar(*tk.Marker), nil
}
