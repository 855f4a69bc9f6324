// Package xmls packs and unpacks XMLN text, a string over a fixed 13-glyph
// alphabet, into bytes: each glyph maps to a nibble in [0x1,0xD] and pairs
// of nibbles are packed into a byte, high nibble first.
package xmls

import (
	"fmt"

	"github.com/oggstr/xflate/errs"
)

// Alphabet is every glyph XMLN text may contain, in nibble order 0x1..0xD.
const Alphabet = " TA0123456789"

var glyphToNibble = map[rune]byte{
	' ': 0x1,
	'T': 0x2,
	'A': 0x3,
	'0': 0x4,
	'1': 0x5,
	'2': 0x6,
	'3': 0x7,
	'4': 0x8,
	'5': 0x9,
	'6': 0xA,
	'7': 0xB,
	'8': 0xC,
	'9': 0xD,
}

var nibbleToGlyph = [0xE]rune{
	0x1: ' ',
	0x2: 'T',
	0x3: 'A',
	0x4: '0',
	0x5: '1',
	0x6: '2',
	0x7: '3',
	0x8: '4',
	0x9: '5',
	0xA: '6',
	0xB: '7',
	0xC: '8',
	0xD: '9',
}

// Encode packs XMLN text into XMLS bytes. Every pair of glyphs becomes one
// byte, high nibble first; a trailing unpaired glyph is packed with a zero
// low nibble.
func Encode(xmln string) ([]byte, error) {
	runes := []rune(xmln)
	out := make([]byte, 0, (len(runes)+1)/2)

	for i := 0; i < len(runes); i += 2 {
		hi, err := encodeNibble(runes[i])
		if err != nil {
			return nil, err
		}

		var lo byte
		if i+1 < len(runes) {
			lo, err = encodeNibble(runes[i+1])
			if err != nil {
				return nil, err
			}
		}

		out = append(out, hi<<4|lo)
	}

	return out, nil
}

// Decode unpacks XMLS bytes back into XMLN text. A zero nibble is treated as
// padding and skipped, which tolerates a trailing padding nibble on the last
// byte (and, harmlessly, a leading one, since XMLN text never contains a
// literal NUL nibble).
func Decode(data []byte) (string, error) {
	out := make([]rune, 0, len(data)*2)

	for _, b := range data {
		hi, lo := b>>4, b&0x0F

		if hi != 0 {
			g, err := decodeNibble(hi)
			if err != nil {
				return "", err
			}
			out = append(out, g)
		}

		if lo != 0 {
			g, err := decodeNibble(lo)
			if err != nil {
				return "", err
			}
			out = append(out, g)
		}
	}

	return string(out), nil
}

func encodeNibble(r rune) (byte, error) {
	n, ok := glyphToNibble[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidGlyph, r)
	}

	return n, nil
}

func decodeNibble(n byte) (rune, error) {
	if n == 0 || n > 0xD {
		return 0, fmt.Errorf("%w: 0x%X", errs.ErrInvalidNibble, n)
	}

	return nibbleToGlyph[n], nil
}
