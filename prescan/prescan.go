// Package prescan implements the independent SAX pass that sizes the symbol
// table before the real XMLN encode: it counts the distinct Unicode scalars
// that will need a symbol code (content text and attribute values, not
// element/attribute names) and recommends a code_width of ceil(log10(count)),
// clamped to [1,9]. At an exact power of ten (10, 100, ...) that width's
// capacity of 10^width-1 codes is one short of the count.
package prescan

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/oggstr/xflate/errs"
)

// Result is the outcome of a pre-scan.
type Result struct {
	// UniqueCount is the number of distinct Unicode scalars observed in
	// character data and attribute values.
	UniqueCount int
	// RecommendedCodeWidth is advisory: encoding with it still fails if the
	// actual run uses more distinct symbols than its capacity allows, e.g.
	// when UniqueCount is an exact power of ten, or because the document is
	// later mutated between scan and encode.
	RecommendedCodeWidth uint8
}

// Scan reads a well-formed XML document from r and returns the distinct
// Unicode scalar count plus a recommended code_width.
//
// Scan rejects the same constructs Encode does (comments, directives,
// unsupported processing instructions) since it must walk the identical
// event stream to produce a meaningful count.
func Scan(r io.Reader) (Result, error) {
	dec := xml.NewDecoder(r)
	seen := make(map[rune]struct{})

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s", errs.ErrPreScanUnsupported, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			for _, attr := range t.Attr {
				addRunes(seen, attr.Value)
			}

		case xml.CharData:
			addRunes(seen, string(t))

		case xml.ProcInst:
			if !strings.EqualFold(t.Target, "xml") {
				return Result{}, fmt.Errorf("%w: processing instruction %q", errs.ErrPreScanUnsupported, t.Target)
			}

		case xml.Comment:
			return Result{}, fmt.Errorf("%w: comment", errs.ErrPreScanUnsupported)

		case xml.Directive:
			return Result{}, fmt.Errorf("%w: directive/DTD", errs.ErrPreScanUnsupported)
		}
	}

	count := len(seen)

	return Result{
		UniqueCount:          count,
		RecommendedCodeWidth: recommendWidth(count),
	}, nil
}

func addRunes(seen map[rune]struct{}, s string) {
	for _, r := range s {
		seen[r] = struct{}{}
	}
}

// recommendWidth mirrors the original implementation's ceil(log10(n))
// formula, clamped to the symbol table's valid [1,9] range. log10(n) is
// undefined at n=0 and evaluates to exactly the next power-of-ten boundary
// at n=1 (ceil(log10(1)) == 0), so both cases are clamped up to the minimum
// width of 1 rather than recommending a table that cannot hold even one
// unreserved code.
func recommendWidth(n int) uint8 {
	if n <= 1 {
		return 1
	}

	width := uint8(math.Ceil(math.Log10(float64(n))))
	if width < 1 {
		width = 1
	}
	if width > 9 {
		width = 9
	}

	return width
}
