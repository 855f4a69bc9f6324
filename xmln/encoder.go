package xmln

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oggstr/xflate/errs"
	"github.com/oggstr/xflate/internal/pool"
)

// SymbolEncoder is the subset of symtab.Table the XMLN encoder needs.
type SymbolEncoder interface {
	Encode(r rune) (string, error)
}

// TagEncoder is the subset of tagtab.Table the XMLN encoder needs.
type TagEncoder interface {
	Encode(name string) (uint16, error)
}

// Encode reads a well-formed XML document from r and translates it into
// XMLN text, growing symTable and tagTable as new symbols and names are
// encountered.
//
// Comments, processing instructions (other than the XML declaration
// itself) and DTDs are rejected with errs.ErrUnsupportedEvent, per spec.md
// section 1's Non-goals. CDATA sections are also a declared Non-goal, but
// encoding/xml's tokenizer transparently unwraps CDATA into ordinary
// character data before it ever reaches this loop, so such input is
// silently treated as text rather than rejected.
func Encode(r io.Reader, symTable SymbolEncoder, tagTable TagEncoder) (string, error) {
	dec := xml.NewDecoder(r)

	buf := pool.Get()
	defer pool.Put(buf)

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %s", errs.ErrUnsupportedEvent, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := encodeStartElement(buf, t, symTable, tagTable); err != nil {
				return "", err
			}

		case xml.EndElement:
			buf.WriteByte(spaceGlyph)
			buf.WriteByte(closeGlyph)

		case xml.CharData:
			if err := encodeText(buf, string(t), symTable); err != nil {
				return "", err
			}

		case xml.ProcInst:
			// The XML declaration ("<?xml version=...?>") surfaces as a
			// ProcInst with Target "xml"; that is this format's
			// StartDocument event and carries no output. Any other
			// processing instruction is unsupported.
			if !strings.EqualFold(t.Target, "xml") {
				return "", fmt.Errorf("%w: processing instruction %q", errs.ErrUnsupportedEvent, t.Target)
			}

		case xml.Comment:
			return "", fmt.Errorf("%w: comment", errs.ErrUnsupportedEvent)

		case xml.Directive:
			return "", fmt.Errorf("%w: directive/DTD", errs.ErrUnsupportedEvent)
		}
	}

	out := strings.TrimLeft(string(buf.Bytes()), string(spaceGlyph))

	return out, nil
}

// encodeStartElement writes " T<code>" followed by " A<code>" and, for a
// non-empty value, " <text>" for each attribute, in received order.
func encodeStartElement(buf *pool.ByteBuffer, t xml.StartElement, symTable SymbolEncoder, tagTable TagEncoder) error {
	name := qualifiedName(t.Name.Space, t.Name.Local)

	code, err := tagTable.Encode(name)
	if err != nil {
		return fmt.Errorf("failed to encode tag %q: %w", name, err)
	}

	buf.WriteByte(spaceGlyph)
	buf.WriteByte(openTagGlyph)
	buf.WriteString(strconv.FormatUint(uint64(code), 10))

	for _, attr := range t.Attr {
		attrName := qualifiedName(attr.Name.Space, attr.Name.Local)

		attrCode, err := tagTable.Encode(attrName)
		if err != nil {
			return fmt.Errorf("failed to encode attribute %q: %w", attrName, err)
		}

		buf.WriteByte(spaceGlyph)
		buf.WriteByte(attrGlyph)
		buf.WriteString(strconv.FormatUint(uint64(attrCode), 10))

		if err := encodeText(buf, attr.Value, symTable); err != nil {
			return err
		}
	}

	return nil
}

// encodeText writes a single Text token: a leading space followed by the
// concatenation of each character's fixed-width symbol code. An empty
// string writes nothing (not even the leading space), matching attribute
// values of length zero producing no text token at all.
func encodeText(buf *pool.ByteBuffer, text string, symTable SymbolEncoder) error {
	if text == "" {
		return nil
	}

	buf.WriteByte(spaceGlyph)

	for _, c := range text {
		code, err := symTable.Encode(c)
		if err != nil {
			return fmt.Errorf("failed to encode symbol %q: %w", c, err)
		}
		buf.WriteString(code)
	}

	return nil
}
