// Package tagtab implements the XMLN tag table: a bijection between
// element/attribute names and sequential uint16 codes, assigned in
// insertion order starting at 0.
package tagtab

import (
	"fmt"

	"github.com/oggstr/xflate/errs"
)

// Table maps element and attribute names to uint16 codes.
type Table struct {
	encoder map[string]uint16
	decoder map[uint16]string
	order   []string
}

// New creates an empty tag table.
func New() *Table {
	return &Table{
		encoder: make(map[string]uint16),
		decoder: make(map[uint16]string),
	}
}

// FromTags rebuilds a table from an explicit, ordered name list, as produced
// by a header codec's parse step. Each name is assigned the code its
// position implies (first name -> code 0).
func FromTags(tags []string) (*Table, error) {
	t := New()
	for _, tag := range tags {
		if _, err := t.Encode(tag); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Encode returns the code for tag, inserting it with the next available
// code (len(table)) if it has not been seen before.
func (t *Table) Encode(tag string) (uint16, error) {
	if code, ok := t.encoder[tag]; ok {
		return code, nil
	}

	if len(t.order) > 0xFFFF {
		return 0, fmt.Errorf("%w: cannot add tag %q", errs.ErrTagTableOverflow, tag)
	}

	code := uint16(len(t.order)) //nolint:gosec // bounded by the check above
	t.encoder[tag] = code
	t.decoder[code] = tag
	t.order = append(t.order, tag)

	return code, nil
}

// Decode returns the name mapped to code, and whether it was found.
func (t *Table) Decode(code uint16) (string, bool) {
	name, ok := t.decoder[code]

	return name, ok
}

// Count returns the number of distinct names currently in the table.
func (t *Table) Count() int {
	return len(t.order)
}

// Tags returns every name currently in the table, in insertion order.
func (t *Table) Tags() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)

	return out
}
