// Package errs defines the sentinel errors returned by every stage of the
// xflate pipeline. Call sites wrap these with fmt.Errorf("%w: detail", ...)
// so callers can test failure classes with errors.Is rather than matching on
// message text.
package errs

import "errors"

// Symbol table (component A).
var (
	// ErrSymbolTableOverflow is returned when encoding a symbol would exceed
	// the table's code_width capacity (10^code_width - 1 symbols).
	ErrSymbolTableOverflow = errors.New("symbol table overflow")
	// ErrInvalidCodeWidth is returned when a symbol table is constructed with
	// a code_width outside [1,9].
	ErrInvalidCodeWidth = errors.New("invalid code width")
)

// Tag table (component B).
var (
	// ErrTagTableOverflow is returned when encoding a tag would exceed the
	// uint16 code space.
	ErrTagTableOverflow = errors.New("tag table overflow")
)

// XMLN (components D, E).
var (
	ErrUnsupportedEvent  = errors.New("unsupported XML construct")
	ErrUnknownTagCode    = errors.New("unknown tag code")
	ErrUnknownSymbolCode = errors.New("unknown symbol code")
	ErrMalformedToken    = errors.New("malformed XMLN token")
	ErrStackUnderflow    = errors.New("closing tag with no matching open tag")
	ErrUnexpectedGlyph   = errors.New("unexpected character in XMLN stream")
)

// XMLS (component C).
var (
	ErrInvalidGlyph  = errors.New("character outside the 13-glyph XMLN alphabet")
	ErrInvalidNibble = errors.New("nibble outside the valid XMLS range")
)

// Header codec (component F).
var (
	ErrHeaderMalformed = errors.New("malformed XMLS header")
)

// XMLB backend (component G).
var (
	ErrBackendCompress   = errors.New("XMLB compression failed")
	ErrBackendDecompress = errors.New("XMLB decompression failed")
)

// Pre-scan (component I).
var (
	ErrPreScanUnsupported = errors.New("unsupported XML construct during pre-scan")
)

// Pipeline (component H).
var (
	// ErrHeadersRequired is returned when a Config disables a header that
	// the decoder has no other way to reconstruct; see spec.md section 9.
	ErrHeadersRequired = errors.New("tag and symbol headers cannot be disabled")
)
