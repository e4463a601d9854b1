package cliconfig

import (
	"fmt"

	"github.com/coregx/coregex"
)

// tokenPattern matches exactly one token at the very start of the
// remaining input: an identifier, a decimal number, or one of the four
// punctuation characters the grammar uses. Anchoring with ^ turns a
// general-purpose regex search into "classify and consume the next
// token", the same compile-once-scan-many idiom coregex documents for
// itself — this is the only regular expression in the parser; the
// recursive nesting of eng(heur(options)) is handled by plain recursive
// descent, which a regular expression cannot describe.
var tokenPattern = coregex.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*|[0-9]+(\.[0-9]+)?|[(),=])`)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string
}

// tokenizer scans a selector expression into tokens on demand. It has no
// internal lookahead buffer: peek() snapshots and restores pos around a
// call to next(), so arbitrary lookahead is just "save pos, call next()
// some number of times, restore pos if you don't want to keep it".
type tokenizer struct {
	input string
	pos   int
}

func newTokenizer(input string) *tokenizer {
	return &tokenizer{input: input}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func (tz *tokenizer) skipSpace() {
	for tz.pos < len(tz.input) && isSpaceByte(tz.input[tz.pos]) {
		tz.pos++
	}
}

// next consumes and returns the next token, or (nil, nil) at end of
// input.
func (tz *tokenizer) next() (*token, error) {
	tz.skipSpace()
	if tz.pos >= len(tz.input) {
		return nil, nil
	}
	remaining := tz.input[tz.pos:]
	loc := tokenPattern.FindStringIndex(remaining)
	if loc == nil || loc[0] != 0 {
		return nil, fmt.Errorf("%w: at %q", ErrUnexpectedToken, remaining)
	}
	text := remaining[loc[0]:loc[1]]
	tz.pos += loc[1]

	kind := tokIdent
	switch text {
	case "(", ")", ",", "=":
		kind = tokPunct
	default:
		if isDigitToken(text) {
			kind = tokNumber
		}
	}
	return &token{kind: kind, text: text}, nil
}

// peek reports the next token without consuming it.
func (tz *tokenizer) peek() (*token, error) {
	save := tz.pos
	tok, err := tz.next()
	tz.pos = save
	return tok, err
}

func isDigitToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
