package xmls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_PairsGlyphs(t *testing.T) {
	// 'T' -> 0x2, '0' -> 0x4
	b, err := Encode("T0")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x24}, b)
}

func TestEncode_OddTrailingGlyphPadsLowNibble(t *testing.T) {
	// 'T' -> 0x2, padded low nibble 0x0
	b, err := Encode("T")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x20}, b)
}

func TestEncode_RejectsGlyphOutsideAlphabet(t *testing.T) {
	_, err := Encode("x")
	require.Error(t, err)
}

func TestDecode_SkipsZeroNibblePadding(t *testing.T) {
	s, err := Decode([]byte{0x20})
	require.NoError(t, err)
	assert.Equal(t, "T", s)
}

func TestDecode_RejectsNibbleOutOfRange(t *testing.T) {
	_, err := Decode([]byte{0xEE})
	require.Error(t, err)
}

func TestRoundTrip_EveryGlyph(t *testing.T) {
	for _, s := range []string{
		"",
		"T0 A1",
		"T0 A1 01 02 0",
		"0123456789",
		" TA0123456789",
	} {
		encoded, err := Encode(s)
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, s, decoded, "round trip for %q", s)
	}
}

func TestEncode_NibbleAlphabetClosure(t *testing.T) {
	b, err := Encode(Alphabet)
	require.NoError(t, err)

	for i, by := range b {
		hi, lo := by>>4, by&0x0F
		assert.GreaterOrEqual(t, hi, byte(0x1))
		assert.LessOrEqual(t, hi, byte(0xD))

		isLast := i == len(b)-1
		if !isLast {
			assert.GreaterOrEqual(t, lo, byte(0x1))
		}
		assert.LessOrEqual(t, lo, byte(0xD))
	}
}
