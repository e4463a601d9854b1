package planio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coregx/ahocorasick"
)

// SchemaVersion is the preprocessor stream schema version this reader
// understands. A stream declaring any other version is rejected with
// ErrVersionMismatch before any section content is interpreted.
const SchemaVersion int32 = 3

// sectionMarkers lists every begin_X/end_X token the stream may contain.
// A single Aho-Corasick automaton is built once over this set and reused
// for every magic-word check and every section skip, rather than
// comparing each token against the marker list with per-call string
// equality.
var sectionMarkers = []string{
	"begin_version", "end_version",
	"begin_metric", "end_metric",
	"begin_variable", "end_variable",
	"begin_mutex_group", "end_mutex_group",
	"begin_state", "end_state",
	"begin_goal", "end_goal",
	"begin_operator", "end_operator",
	"begin_rule", "end_rule",
	"begin_SG", "end_SG",
	"begin_DTG", "end_DTG",
	"begin_CG", "end_CG",
}

func buildMarkerAutomaton() (*ahocorasick.Automaton, error) {
	b := ahocorasick.NewBuilder()
	for _, m := range sectionMarkers {
		b.AddPattern([]byte(m))
	}
	return b.Build()
}

// isMagic reports whether tok is exactly one of sectionMarkers — a match
// spanning the whole token, not merely a substring hit (a marker could
// otherwise be mistaken for a prefix of some unrelated token).
func isMagic(automaton *ahocorasick.Automaton, tok string) bool {
	b := []byte(tok)
	m := automaton.Find(b, 0)
	return m != nil && m.Start == 0 && m.End == len(b)
}

// lexer tokenizes the stream the way the original C++ reader does: `>>`
// style whitespace-delimited tokens for markers, counts and values, and
// getline-style "rest of the current line" reads for names and fact
// strings (which may themselves contain spaces).
type lexer struct {
	br     *bufio.Reader
	marker *ahocorasick.Automaton
}

func newLexer(r io.Reader, marker *ahocorasick.Automaton) *lexer {
	return &lexer{br: bufio.NewReader(r), marker: marker}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

// token reads one whitespace-delimited token, skipping any leading
// whitespace (including newlines).
func (lx *lexer) token() (string, error) {
	for {
		b, err := lx.br.ReadByte()
		if err != nil {
			return "", err
		}
		if !isSpace(b) {
			if err := lx.br.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
	}
	var buf bytes.Buffer
	for {
		b, err := lx.br.ReadByte()
		if err != nil {
			if err == io.EOF && buf.Len() > 0 {
				break
			}
			return "", err
		}
		if isSpace(b) {
			if err := lx.br.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		buf.WriteByte(b)
	}
	return buf.String(), nil
}

func (lx *lexer) intToken() (int32, error) {
	tok, err := lx.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedInt, tok, err)
	}
	return int32(v), nil
}

// line reads the remainder of the current line after skipping any
// leading whitespace including newlines — the `in >> ws; getline(...)`
// idiom the original format uses for names and fact strings, which may
// contain embedded spaces that token() would split on.
func (lx *lexer) line() (string, error) {
	for {
		b, err := lx.br.ReadByte()
		if err != nil {
			return "", err
		}
		if !isSpace(b) {
			if err := lx.br.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
	}
	s, err := lx.br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (lx *lexer) expectMagic(want string) error {
	tok, err := lx.token()
	if err != nil {
		return fmt.Errorf("planio: reading magic %q: %w", want, err)
	}
	if !isMagic(lx.marker, tok) || tok != want {
		return fmt.Errorf("%w: expected %q, got %q", ErrBadMagic, want, tok)
	}
	return nil
}

// skipSection discards tokens up to and including the matching end
// marker, tolerating arbitrarily nested begin_X/end_X pairs inside: it
// tracks a nesting depth over every marker token the automaton
// recognizes, rather than assuming the skipped section's internal
// grammar. Used for the begin_SG/end_SG, begin_DTG/end_DTG and
// begin_CG/end_CG trailer blocks, whose content this reader never
// interprets (the successor generator and the causal/transition graphs
// they encode are rebuilt locally from the operators already read).
func (lx *lexer) skipSection(endMarker string) error {
	depth := 0
	for {
		tok, err := lx.token()
		if err != nil {
			return fmt.Errorf("planio: skipping to %q: %w", endMarker, err)
		}
		if !isMagic(lx.marker, tok) {
			continue
		}
		switch {
		case tok == endMarker && depth == 0:
			return nil
		case strings.HasPrefix(tok, "begin_"):
			depth++
		case strings.HasPrefix(tok, "end_"):
			if depth == 0 {
				return fmt.Errorf("%w: unexpected %q while skipping to %q", ErrBadMagic, tok, endMarker)
			}
			depth--
		}
	}
}
