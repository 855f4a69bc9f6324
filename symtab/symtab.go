// Package symtab implements the XMLN symbol table: a bijection between
// content characters and fixed-width decimal codes.
//
// Codes are assigned in insertion order starting at 1; the all-zero code
// (e.g. "00" at code_width 2) is never issued because XMLN reserves the bare
// glyph '0' as the closing-tag marker. See SPEC_FULL.md section 9.
package symtab

import (
	"fmt"

	"github.com/oggstr/xflate/errs"
)

// Table is a symbol table for a given code_width. The zero value is not
// usable; construct one with New or FromSymbols.
type Table struct {
	encoder   map[rune]string
	decoder   map[string]rune
	order     []rune
	codeWidth uint8
}

// New creates an empty symbol table with the given code_width, which must be
// in [1,9].
func New(codeWidth uint8) (*Table, error) {
	if codeWidth < 1 || codeWidth > 9 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCodeWidth, codeWidth)
	}

	return &Table{
		encoder:   make(map[rune]string),
		decoder:   make(map[string]rune),
		codeWidth: codeWidth,
	}, nil
}

// FromSymbols rebuilds a table from an explicit, ordered character list, as
// produced by a header codec's parse step. Each symbol is assigned the code
// its position implies (first symbol -> code 1).
func FromSymbols(codeWidth uint8, symbols []rune) (*Table, error) {
	t, err := New(codeWidth)
	if err != nil {
		return nil, err
	}

	for _, s := range symbols {
		if _, err := t.Encode(s); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// CodeWidth returns the fixed digit width of every code this table issues.
func (t *Table) CodeWidth() uint8 {
	return t.codeWidth
}

// Count returns the number of distinct symbols currently in the table.
func (t *Table) Count() int {
	return len(t.order)
}

// capacity is the largest code this table's width can represent, 10^width-1.
func (t *Table) capacity() int {
	cap := 1
	for i := uint8(0); i < t.codeWidth; i++ {
		cap *= 10
	}

	return cap - 1
}

// Encode returns the fixed-width decimal code for c, inserting it with the
// next available code if it has not been seen before.
//
// Returns errs.ErrSymbolTableOverflow if c is new and the table is already
// at capacity (10^code_width - 1 symbols).
func (t *Table) Encode(c rune) (string, error) {
	if code, ok := t.encoder[c]; ok {
		return code, nil
	}

	next := len(t.order) + 1
	if next > t.capacity() {
		return "", fmt.Errorf("%w: cannot add symbol %q at width %d", errs.ErrSymbolTableOverflow, c, t.codeWidth)
	}

	code := fmt.Sprintf("%0*d", t.codeWidth, next)
	t.encoder[c] = code
	t.decoder[code] = c
	t.order = append(t.order, c)

	return code, nil
}

// Decode returns the character mapped to code, and whether it was found.
//
// Decode panics if len(code) != CodeWidth(): a mismatched code length is a
// caller contract violation (the decoder must always slice XMLN text into
// CodeWidth()-sized chunks before calling Decode), not a recoverable error.
func (t *Table) Decode(code string) (rune, bool) {
	if len(code) != int(t.codeWidth) {
		panic(fmt.Sprintf("symtab: Decode called with code length %d, want %d", len(code), t.codeWidth))
	}

	c, ok := t.decoder[code]

	return c, ok
}

// Symbols returns every symbol currently in the table, in insertion order.
func (t *Table) Symbols() []rune {
	out := make([]rune, len(t.order))
	copy(out, t.order)

	return out
}
