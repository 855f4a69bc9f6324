// Package xmln implements the XMLN stage: translating a stream of XML parse
// events into (and back from) a textual intermediate drawn from a 13-glyph
// alphabet, threading a tag table and a symbol table along the way.
//
// See SPEC_FULL.md section 4.D/4.E for the full grammar and decoder
// disambiguation rules; this file holds the pieces encoder.go and
// decoder.go share.
package xmln

// Token kinds, for documentation purposes; the grammar itself is
// recognized positionally by encoder.go/decoder.go rather than through an
// explicit token type, matching the original implementation.
//
//	OpenTag  := 'T' <u16 decimal>
//	AttrName := 'A' <u16 decimal>
//	Text     := <symbol-code>+
//	Close    := '0'
const (
	openTagGlyph = 'T'
	attrGlyph    = 'A'
	closeGlyph   = '0'
	spaceGlyph   = ' '
)

// qualifiedName renders an XML name as "prefix:local" when a prefix is
// present, or bare "local" otherwise.
func qualifiedName(prefix, local string) string {
	if prefix == "" {
		return local
	}

	return prefix + ":" + local
}
