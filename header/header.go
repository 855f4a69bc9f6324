// Package header serializes and parses the tag table and symbol table that
// precede the packed XMLS body, so that a fresh decoder can rebuild both
// dictionaries before it touches any of the binary payload that follows.
//
// The header is plain ASCII text; it is concatenated in front of the XMLS
// byte body before the whole buffer is handed to the DEFLATE backend, and
// split back off after inflation. Its grammar is self-delimiting (an
// explicit tag count, then an explicit symbol count), so Parse never needs a
// length prefix or relies on UTF-8 validity to find the boundary.
package header

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/oggstr/xflate/errs"
	"github.com/oggstr/xflate/symtab"
	"github.com/oggstr/xflate/tagtab"
)

const (
	tagHeaderByte = 'E'
	symHeaderByte = 'C'
	sep           = ' '
)

// Format renders tags and syms as:
//
//	E <tag_count> <tag> <tag> ... C <code_width> <sym_count> <syms concatenated>
//
// with a trailing space, matching the grammar Parse expects.
func Format(tags *tagtab.Table, syms *symtab.Table) []byte {
	tagList := tags.Tags()
	symList := syms.Symbols()

	out := make([]byte, 0, 64)
	out = append(out, tagHeaderByte, sep)
	out = append(out, strconv.Itoa(len(tagList))...)
	out = append(out, sep)

	for _, tag := range tagList {
		out = append(out, tag...)
		out = append(out, sep)
	}

	out = append(out, symHeaderByte, sep)
	out = append(out, strconv.Itoa(int(syms.CodeWidth()))...)
	out = append(out, sep)
	out = append(out, strconv.Itoa(len(symList))...)
	out = append(out, sep)

	for _, s := range symList {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], s)
		out = append(out, buf[:n]...)
	}

	out = append(out, sep)

	return out
}

// Parse reads a header off the front of data and returns the rebuilt tag and
// symbol tables plus the unconsumed remainder (the packed XMLS body).
func Parse(data []byte) (tags *tagtab.Table, syms *symtab.Table, rest []byte, err error) {
	p := &scanner{data: data}

	if err := p.expectByte(tagHeaderByte); err != nil {
		return nil, nil, nil, err
	}
	if err := p.expectByte(sep); err != nil {
		return nil, nil, nil, err
	}

	tagCount, err := p.readInt()
	if err != nil {
		return nil, nil, nil, err
	}

	tagNames := make([]string, 0, tagCount)
	for i := 0; i < tagCount; i++ {
		name, err := p.readUntilSep()
		if err != nil {
			return nil, nil, nil, err
		}
		tagNames = append(tagNames, name)
	}

	if err := p.expectByte(symHeaderByte); err != nil {
		return nil, nil, nil, err
	}
	if err := p.expectByte(sep); err != nil {
		return nil, nil, nil, err
	}

	codeWidth, err := p.readInt()
	if err != nil {
		return nil, nil, nil, err
	}

	symCount, err := p.readInt()
	if err != nil {
		return nil, nil, nil, err
	}

	symRunes, err := p.readRunes(symCount)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := p.expectByte(sep); err != nil {
		return nil, nil, nil, err
	}

	tagTable, err := tagtab.FromTags(tagNames)
	if err != nil {
		return nil, nil, nil, err
	}

	symTable, err := symtab.FromSymbols(uint8(codeWidth), symRunes)
	if err != nil {
		return nil, nil, nil, err
	}

	return tagTable, symTable, data[p.pos:], nil
}

// scanner is a minimal forward-only byte cursor; unlike internal/cursor it
// operates on raw bytes (the header mixes ASCII grammar bytes with
// variable-length UTF-8 rune literals) rather than decoded runes.
type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) expectByte(want byte) error {
	if s.pos >= len(s.data) {
		return fmt.Errorf("%w: expected %q, got end of input", errs.ErrHeaderMalformed, want)
	}

	got := s.data[s.pos]
	if got != want {
		return fmt.Errorf("%w: expected %q, got %q", errs.ErrHeaderMalformed, want, got)
	}

	s.pos++

	return nil
}

// readUntilSep reads bytes up to (and consuming) the next separator byte.
func (s *scanner) readUntilSep() (string, error) {
	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] != sep {
		s.pos++
	}

	if s.pos >= len(s.data) {
		return "", fmt.Errorf("%w: unterminated field", errs.ErrHeaderMalformed)
	}

	field := string(s.data[start:s.pos])
	s.pos++ // consume the separator

	return field, nil
}

func (s *scanner) readInt() (int, error) {
	field, err := s.readUntilSep()
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid integer %q", errs.ErrHeaderMalformed, field)
	}

	return n, nil
}

// readRunes decodes exactly n Unicode scalars from the current position,
// with no separators between them (the count alone delimits the run).
func (s *scanner) readRunes(n int) ([]rune, error) {
	out := make([]rune, 0, n)

	for i := 0; i < n; i++ {
		if s.pos >= len(s.data) {
			return nil, fmt.Errorf("%w: truncated symbol list", errs.ErrHeaderMalformed)
		}

		r, size := utf8.DecodeRune(s.data[s.pos:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid UTF-8 in symbol list", errs.ErrHeaderMalformed)
		}

		out = append(out, r)
		s.pos += size
	}

	return out, nil
}
