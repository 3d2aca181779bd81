// Package scanner implements the lexical layer of the YAML 1.2 reader: a
// pull tokenizer that turns a finite rune sequence into a lazily produced
// sequence of token.Token values, honoring block indentation, flow
// nesting, and simple-key lookahead.
package scanner

import (
	"strconv"
	"strings"

	"github.com/nvksv/yaml-core/token"
	"github.com/nvksv/yaml-core/yamlerr"
)

// simpleKeyCandidate records a scalar that may retroactively be
// reinterpreted as a mapping key once a following ':' is seen. tokenIdx
// is the index in the pending token queue at which a Key token must be
// spliced in; it is saved at candidate-creation time because the
// triggering ':' may be scanned many characters later.
type simpleKeyCandidate struct {
	marker    token.Marker
	tokenIdx  int
	possible  bool
	required  bool
	indentCol int
}

// Scanner converts a finite rune sequence into tokens. It owns the
// indentation stack, the simple-key candidate registry, the flow-depth
// counter, and a FIFO queue of tokens produced ahead of where Next() has
// read to (a block scalar header or a retroactively discovered Key token
// may require several characters of lookahead before they can be
// emitted).
type Scanner struct {
	src  []rune
	idx  int
	size int

	line   int
	column int

	indents []int // ascending stack of block indentation columns

	// simpleKeys holds one slot per nesting level: index 0 is the
	// block-context candidate, indices 1.. are flow-collection levels.
	simpleKeys []simpleKeyCandidate
	flowLevel  int

	queue []*token.Token

	streamStarted bool
	streamEnded   bool
	err           error
}

// New constructs a Scanner over src. The caller supplies already-decoded
// characters; encoding detection is out of scope.
func New(src []rune) *Scanner {
	return &Scanner{
		src:    src,
		size:   len(src),
		line:   1,
		column: 1,
	}
}

// NewFromString is a convenience constructor over a decoded string.
func NewFromString(src string) *Scanner {
	return New([]rune(src))
}

func (s *Scanner) mark() token.Marker {
	return token.Marker{Line: s.line, Column: s.column, Index: s.idx}
}

// Mark returns the scanner's current read position. Because of
// lookahead this may lie past the most recently returned token.
func (s *Scanner) Mark() token.Marker {
	return s.mark()
}

// Err retrieves the latched scan failure, if any; once set, every later
// Next call returns it as (nil, err).
func (s *Scanner) Err() error {
	return s.err
}

// StreamStarted reports whether the StreamStart token has already been
// produced.
func (s *Scanner) StreamStarted() bool {
	return s.streamStarted
}

// StreamEnded reports whether the StreamEnd token has already been
// produced.
func (s *Scanner) StreamEnded() bool {
	return s.streamEnded
}

// Next advances the scanner and returns the next token, or (nil, nil) at
// end of stream (StreamEnd having already been delivered) or (nil, err)
// on a latched scan failure.
func (s *Scanner) Next() (*token.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	// While a simple-key candidate is unresolved, a Key token may still
	// have to be spliced in ahead of queued tokens, so keep them queued.
	for len(s.queue) == 0 || s.simpleKeyPending() {
		if s.streamEnded {
			if len(s.queue) == 0 {
				return nil, nil
			}
			break
		}
		if err := s.fetchMore(); err != nil {
			s.err = err
			return nil, err
		}
	}
	tk := s.queue[0]
	s.queue = s.queue[1:]
	return tk, nil
}

func (s *Scanner) fail(msg string) error {
	return yamlerr.New(s.mark(), msg, string(s.src))
}

func (s *Scanner) push(tk *token.Token) {
	s.queue = append(s.queue, tk)
}

func (s *Scanner) cur() rune {
	if s.idx >= s.size {
		return 0
	}
	return s.src[s.idx]
}

func (s *Scanner) peekAt(off int) rune {
	if s.idx+off >= s.size {
		return 0
	}
	return s.src[s.idx+off]
}

func (s *Scanner) advance(n int) {
	for i := 0; i < n; i++ {
		if s.idx >= s.size {
			return
		}
		if s.src[s.idx] == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.idx++
	}
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

func isBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

func isBlankOrBreak(r rune) bool {
	return isBlank(r) || isBreak(r) || r == 0
}

func isFlowIndicator(r rune) bool {
	switch r {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

func (s *Scanner) skipToLineEnd() {
	for s.idx < s.size && !isBreak(s.cur()) {
		s.advance(1)
	}
}

func (s *Scanner) skipBreak() {
	if s.cur() == '\r' && s.peekAt(1) == '\n' {
		s.advance(2)
		return
	}
	if isBreak(s.cur()) {
		s.advance(1)
	}
}

// skipBlanks consumes inline whitespace (spaces and tabs). It does not
// consume comments or the line break itself.
func (s *Scanner) skipBlanks() {
	for isBlank(s.cur()) {
		s.advance(1)
	}
}

func (s *Scanner) currentIndent() int {
	if len(s.indents) == 0 {
		return -1
	}
	return s.indents[len(s.indents)-1]
}

// unrollIndent pops block levels while the stack's top exceeds column,
// emitting one BlockEnd per popped level, as spec.md §4.1 requires.
func (s *Scanner) unrollIndent(column int) {
	if s.flowLevel > 0 {
		return
	}
	for len(s.indents) > 0 && s.indents[len(s.indents)-1] > column {
		s.indents = s.indents[:len(s.indents)-1]
		s.push(&token.Token{Type: token.BlockEndType, Marker: s.markerPtr()})
	}
}

func (s *Scanner) markerPtr() *token.Marker {
	m := s.mark()
	return &m
}

// rollIndent pushes a new block level and emits the synthetic
// collection-start token when column exceeds the current indent.
// Returns true if a new level was opened.
func (s *Scanner) rollIndent(column int, kind token.Type) bool {
	if s.flowLevel > 0 {
		return false
	}
	if column <= s.currentIndent() {
		return false
	}
	s.indents = append(s.indents, column)
	s.push(&token.Token{Type: kind, Marker: s.markerPtr()})
	return true
}

func (s *Scanner) simpleKeySlot() int {
	return s.flowLevel
}

func (s *Scanner) ensureSimpleKeySlots() {
	for len(s.simpleKeys) <= s.flowLevel {
		s.simpleKeys = append(s.simpleKeys, simpleKeyCandidate{})
	}
}

func (s *Scanner) removeStaleSimpleKey() {
	slot := s.simpleKeySlot()
	if slot < len(s.simpleKeys) && s.simpleKeys[slot].possible {
		if s.simpleKeys[slot].required {
			s.err = s.fail("could not find expected ':'")
		}
		s.simpleKeys[slot].possible = false
	}
}

// simpleKeyPending reports whether a candidate at the current or an
// enclosing level is still possible.
func (s *Scanner) simpleKeyPending() bool {
	for i := 0; i <= s.flowLevel && i < len(s.simpleKeys); i++ {
		if s.simpleKeys[i].possible {
			return true
		}
	}
	return false
}

func (s *Scanner) saveSimpleKeyCandidate(required bool) {
	s.ensureSimpleKeySlots()
	slot := s.simpleKeySlot()
	s.simpleKeys[slot] = simpleKeyCandidate{
		marker:    s.mark(),
		tokenIdx:  len(s.queue),
		possible:  true,
		required:  required,
		indentCol: s.column,
	}
}

// resolveSimpleKey splices a Key token in at the saved candidate
// position (token ordering for the queue not yet flushed), preceded by a
// BlockMappingStart if this key opens a new block level, and clears the
// candidate.
func (s *Scanner) resolveSimpleKey() bool {
	slot := s.simpleKeySlot()
	if slot >= len(s.simpleKeys) || !s.simpleKeys[slot].possible {
		return false
	}
	cand := s.simpleKeys[slot]
	s.simpleKeys[slot].possible = false

	keyTok := &token.Token{Type: token.KeyType, Marker: &token.Marker{
		Line: cand.marker.Line, Column: cand.marker.Column, Index: cand.marker.Index,
	}}
	spliced := []*token.Token{keyTok}
	if s.flowLevel == 0 && s.rollIndent(cand.indentCol-1, token.BlockMappingStartType) {
		// rollIndent appended the BlockMappingStart at the queue end;
		// move it in front of the Key token, at the key's position.
		start := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]
		start.Marker = &token.Marker{Line: cand.marker.Line, Column: cand.marker.Column, Index: cand.marker.Index}
		spliced = []*token.Token{start, keyTok}
	}
	idx := cand.tokenIdx
	if idx > len(s.queue) {
		idx = len(s.queue)
	}
	s.queue = append(s.queue[:idx], append(spliced, s.queue[idx:]...)...)
	return true
}

// fetchMore scans forward until at least one token has been pushed onto
// the queue, or the stream has ended.
func (s *Scanner) fetchMore() error {
	if !s.streamStarted {
		s.streamStarted = true
		s.push(&token.Token{Type: token.StreamStartType, Marker: s.markerPtr(), Encoding: token.UTF8Encoding})
		return nil
	}

	s.skipBlanks()
	for s.cur() == '#' {
		s.skipToLineEnd()
		s.skipBlanks()
	}

	if s.idx >= s.size {
		s.unrollIndent(-1)
		s.removeStaleSimpleKeyAllLevels()
		s.queue = append(s.queue, &token.Token{Type: token.StreamEndType, Marker: s.markerPtr()})
		s.streamEnded = true
		return nil
	}

	atLineStart := s.column == 1

	switch {
	case s.cur() == '\n' || s.cur() == '\r':
		s.skipBreak()
		if s.flowLevel == 0 {
			s.removeStaleSimpleKey()
		}
		return nil
	case atLineStart && s.column == 1 && s.matches("---") && s.followedByBlankOrEOF(3):
		return s.scanDocumentMarker(token.DocumentStartType, "---")
	case atLineStart && s.matches("...") && s.followedByBlankOrEOF(3):
		return s.scanDocumentMarker(token.DocumentEndType, "...")
	case s.cur() == '%' && atLineStart:
		return s.scanDirective()
	case s.cur() == '-' && s.flowLevel == 0 && (isBlankOrBreak(s.peekAt(1))):
		return s.scanBlockEntry()
	case s.cur() == '?' && s.flowLevel == 0 && isBlankOrBreak(s.peekAt(1)):
		return s.scanExplicitKey()
	case s.cur() == ':' && (isBlankOrBreak(s.peekAt(1)) || (s.flowLevel > 0 && isFlowIndicator(s.peekAt(1)))):
		return s.scanValue()
	case s.cur() == '[':
		return s.scanFlowCollectionStart(token.FlowSequenceStartType, "[")
	case s.cur() == '{':
		return s.scanFlowCollectionStart(token.FlowMappingStartType, "{")
	case s.cur() == ']':
		return s.scanFlowCollectionEnd(token.FlowSequenceEndType)
	case s.cur() == '}':
		return s.scanFlowCollectionEnd(token.FlowMappingEndType)
	case s.cur() == ',':
		return s.scanFlowEntry()
	case s.cur() == '&':
		return s.scanAnchorOrAlias(token.AnchorType)
	case s.cur() == '*':
		return s.scanAnchorOrAlias(token.AliasType)
	case s.cur() == '!':
		return s.scanTag()
	case s.cur() == '|':
		return s.scanBlockScalar(false)
	case s.cur() == '>':
		return s.scanBlockScalar(true)
	case s.cur() == '\'':
		return s.scanSingleQuoted()
	case s.cur() == '"':
		return s.scanDoubleQuoted()
	default:
		return s.scanPlain()
	}
}

func (s *Scanner) removeStaleSimpleKeyAllLevels() {
	for i := range s.simpleKeys {
		if s.simpleKeys[i].possible && s.simpleKeys[i].required {
			s.err = s.fail("could not find expected ':'")
		}
		s.simpleKeys[i].possible = false
	}
}

func (s *Scanner) matches(lit string) bool {
	for i, r := range lit {
		if s.peekAt(i) != r {
			return false
		}
	}
	return true
}

func (s *Scanner) followedByBlankOrEOF(off int) bool {
	r := s.peekAt(off)
	return r == 0 || isBlank(r) || isBreak(r)
}

func (s *Scanner) scanDocumentMarker(typ token.Type, lit string) error {
	s.unrollIndent(-1)
	s.removeStaleSimpleKeyAllLevels()
	m := s.markerPtr()
	s.advance(len(lit))
	s.push(&token.Token{Type: typ, Marker: m, Origin: lit})
	return nil
}

func (s *Scanner) scanDirective() error {
	m := s.markerPtr()
	s.advance(1) // '%'
	start := s.idx
	for s.idx < s.size && !isBlankOrBreak(s.cur()) {
		s.advance(1)
	}
	name := string(s.src[start:s.idx])
	s.skipBlanks()
	valStart := s.idx
	s.skipToLineEnd()
	rest := strings.TrimSpace(string(s.src[valStart:s.idx]))
	switch name {
	case "YAML":
		major, minor := 1, 2
		if parts := strings.SplitN(rest, ".", 2); len(parts) == 2 {
			if v, err := strconv.Atoi(parts[0]); err == nil {
				major = v
			}
			if v, err := strconv.Atoi(parts[1]); err == nil {
				minor = v
			}
		}
		s.push(&token.Token{Type: token.VersionDirectiveType, Marker: m, Major: major, Minor: minor})
	case "TAG":
		fields := strings.Fields(rest)
		handle, prefix := "", ""
		if len(fields) > 0 {
			handle = fields[0]
		}
		if len(fields) > 1 {
			prefix = fields[1]
		}
		s.push(&token.Token{Type: token.TagDirectiveType, Marker: m, Handle: handle, Prefix: prefix})
	default:
		// unknown directives are recognized but not semantically
		// validated, per spec.md §4.1.
	}
	return nil
}

func (s *Scanner) scanBlockEntry() error {
	s.removeStaleSimpleKey()
	s.rollIndent(s.column, token.BlockSequenceStartType)
	m := s.markerPtr()
	s.advance(1)
	s.push(&token.Token{Type: token.BlockEntryType, Marker: m, Origin: "-"})
	return nil
}

func (s *Scanner) scanExplicitKey() error {
	s.removeStaleSimpleKey()
	s.rollIndent(s.column, token.BlockMappingStartType)
	m := s.markerPtr()
	s.advance(1)
	s.push(&token.Token{Type: token.KeyType, Marker: m, Origin: "?"})
	return nil
}

func (s *Scanner) scanValue() error {
	if !s.resolveSimpleKey() {
		s.rollIndent(s.column, token.BlockMappingStartType)
	}
	m := s.markerPtr()
	s.advance(1)
	s.push(&token.Token{Type: token.ValueType, Marker: m, Origin: ":"})
	return nil
}

func (s *Scanner) scanFlowCollectionStart(typ token.Type, lit string) error {
	s.saveSimpleKeyCandidateIfPossible(false)
	s.flowLevel++
	m := s.markerPtr()
	s.advance(1)
	s.push(&token.Token{Type: typ, Marker: m, Origin: lit})
	return nil
}

func (s *Scanner) saveSimpleKeyCandidateIfPossible(required bool) {
	s.saveSimpleKeyCandidate(required)
}

func (s *Scanner) scanFlowCollectionEnd(typ token.Type) error {
	s.removeStaleSimpleKey()
	if s.flowLevel > 0 {
		s.flowLevel--
	}
	m := s.markerPtr()
	s.advance(1)
	s.push(&token.Token{Type: typ, Marker: m})
	return nil
}

func (s *Scanner) scanFlowEntry() error {
	s.removeStaleSimpleKey()
	m := s.markerPtr()
	s.advance(1)
	s.push(&token.Token{Type: token.FlowEntryType, Marker: m, Origin: ","})
	return nil
}

const nameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

func isNameChar(r rune) bool {
	return strings.ContainsRune(nameChars, r)
}

func (s *Scanner) scanAnchorOrAlias(typ token.Type) error {
	s.removeStaleSimpleKey()
	m := s.markerPtr()
	s.advance(1)
	start := s.idx
	for s.idx < s.size && isNameChar(s.cur()) {
		s.advance(1)
	}
	name := string(s.src[start:s.idx])
	if name == "" {
		return s.fail("did not find expected anchor/alias name")
	}
	s.push(&token.Token{Type: typ, Marker: m, Name: name})
	return nil
}

func (s *Scanner) scanTag() error {
	s.removeStaleSimpleKey()
	m := s.markerPtr()
	s.advance(1) // '!'
	if s.cur() == '<' {
		s.advance(1)
		start := s.idx
		for s.idx < s.size && s.cur() != '>' {
			s.advance(1)
		}
		uri := string(s.src[start:s.idx])
		if s.cur() == '>' {
			s.advance(1)
		}
		s.push(&token.Token{Type: token.TagType, Marker: m, Handle: "!", Suffix: uri})
		return nil
	}
	start := s.idx
	for s.idx < s.size && isNameChar(s.cur()) {
		s.advance(1)
	}
	first := string(s.src[start:s.idx])
	if s.cur() == '!' {
		s.advance(1)
		suffixStart := s.idx
		for s.idx < s.size && (isNameChar(s.cur()) || s.cur() == '/' || s.cur() == '%' || s.cur() == '.') {
			s.advance(1)
		}
		suffix := string(s.src[suffixStart:s.idx])
		s.push(&token.Token{Type: token.TagType, Marker: m, Handle: "!" + first + "!", Suffix: suffix})
		return nil
	}
	s.push(&token.Token{Type: token.TagType, Marker: m, Handle: "!", Suffix: first})
	return nil
}
