package xmln

import (
	"fmt"
	"strconv"

	"github.com/oggstr/xflate/errs"
	"github.com/oggstr/xflate/internal/cursor"
	"github.com/oggstr/xflate/internal/pool"
)

// SymbolDecoder is the subset of symtab.Table the XMLN decoder needs.
type SymbolDecoder interface {
	Decode(code string) (rune, bool)
	CodeWidth() uint8
}

// TagDecoder is the subset of tagtab.Table the XMLN decoder needs.
type TagDecoder interface {
	Decode(code uint16) (string, bool)
}

// Decode parses XMLN text back into XML text, using symTable and tagTable
// (already rebuilt by the header codec) to resolve codes. The tables are
// read-only here.
//
// The only structural ambiguity in the grammar is between the closing-tag
// token (the single glyph '0' followed by a space or end of input) and a
// text token that happens to start with digit '0' (possible whenever
// code_width > 1 and a symbol's code has a leading zero, e.g. "01"). Both
// cases are disambiguated the same way throughout this function: a lone '0'
// immediately followed by another digit is never a complete token, so it is
// always the start of a text run, never a close marker.
func Decode(xmln string, symTable SymbolDecoder, tagTable TagDecoder) (string, error) {
	cur := cursor.New(xmln)

	out := pool.Get()
	defer pool.Put(out)

	var stack []string

	for !cur.Done() {
		c, _ := cur.Peek(0)

		switch {
		case c == ' ':
			cur.Next()

		case c == 'T':
			if err := decodeOpenTag(cur, out, tagTable, &stack); err != nil {
				return "", err
			}

		case c == 'A':
			if err := decodeAttr(cur, out, symTable, tagTable); err != nil {
				return "", err
			}

		case c == '0' && !nextIsDigit(cur):
			cur.Next()

			name, ok := pop(&stack)
			if !ok {
				return "", fmt.Errorf("%w: stray closing tag", errs.ErrStackUnderflow)
			}

			out.WriteByte('<')
			out.WriteByte('/')
			out.WriteString(name)
			out.WriteByte('>')

		case c >= '0' && c <= '9':
			text, err := decodeText(cur, symTable)
			if err != nil {
				return "", err
			}
			out.WriteString(text)

		default:
			return "", fmt.Errorf("%w: %q", errs.ErrUnexpectedGlyph, c)
		}
	}

	return string(out.Bytes()), nil
}

// nextIsDigit reports whether the character one position ahead of the
// cursor's current '0' is itself a digit, i.e. whether the current '0' is
// the leading digit of a longer code rather than the complete closing
// token.
func nextIsDigit(cur *cursor.Cursor) bool {
	n, ok := cur.Peek(1)

	return ok && n >= '0' && n <= '9'
}

func pop(stack *[]string) (string, bool) {
	if len(*stack) == 0 {
		return "", false
	}

	n := len(*stack) - 1
	name := (*stack)[n]
	*stack = (*stack)[:n]

	return name, true
}

// decodeOpenTag handles a 'T<code>' token: it pushes the tag's name on the
// stack and writes "<name", deferring the closing '>' if a following 'A'
// token indicates attributes are coming.
func decodeOpenTag(cur *cursor.Cursor, out *pool.ByteBuffer, tagTable TagDecoder, stack *[]string) error {
	cur.Next() // consume 'T'

	codeStr := cur.ConsumeUntilSpace()
	if codeStr == "" {
		return fmt.Errorf("%w: empty tag code", errs.ErrMalformedToken)
	}

	code, err := strconv.ParseUint(codeStr, 10, 16)
	if err != nil {
		return fmt.Errorf("%w: invalid tag code %q", errs.ErrMalformedToken, codeStr)
	}

	name, ok := tagTable.Decode(uint16(code))
	if !ok {
		return fmt.Errorf("%w: %d", errs.ErrUnknownTagCode, code)
	}

	out.WriteByte('<')
	out.WriteString(name)
	*stack = append(*stack, name)

	if n, ok := cur.Peek(1); !ok || n != 'A' {
		out.WriteByte('>')
	}

	return nil
}

// decodeAttr handles an 'A<code>' token: it decodes the attribute name,
// looks ahead to determine whether a text value follows, and writes
// ` name="value"`, closing the opening tag's '>' if no further attribute
// follows.
func decodeAttr(cur *cursor.Cursor, out *pool.ByteBuffer, symTable SymbolDecoder, tagTable TagDecoder) error {
	cur.Next() // consume 'A'

	codeStr := cur.ConsumeUntilSpace()
	if codeStr == "" {
		return fmt.Errorf("%w: empty attribute code", errs.ErrMalformedToken)
	}

	code, err := strconv.ParseUint(codeStr, 10, 16)
	if err != nil {
		return fmt.Errorf("%w: invalid attribute code %q", errs.ErrMalformedToken, codeStr)
	}

	name, ok := tagTable.Decode(uint16(code))
	if !ok {
		return fmt.Errorf("%w: %d", errs.ErrUnknownTagCode, code)
	}

	value := ""
	if attrValuePresent(cur) {
		cur.Next() // consume the separator space before the value

		value, err = decodeText(cur, symTable)
		if err != nil {
			return err
		}
	}

	out.WriteByte(' ')
	out.WriteString(name)
	out.WriteString(`="`)
	out.WriteString(value)
	out.WriteByte('"')

	if n, ok := cur.Peek(1); !ok || n != 'A' {
		out.WriteByte('>')
	}

	return nil
}

// attrValuePresent decides, from the cursor sitting at the separator space
// right after an attribute's code, whether a text token follows (true) or
// the attribute has an empty value because the next token is another
// attribute or the element's close marker (false).
func attrValuePresent(cur *cursor.Cursor) bool {
	p1, ok1 := cur.Peek(1)
	if !ok1 || p1 < '0' || p1 > '9' {
		return false
	}

	if p1 != '0' {
		return true
	}

	// p1 == '0': ambiguous between the close marker and a leading-zero
	// multi-digit code. It's a value only if another digit follows.
	p2, ok2 := cur.Peek(2)

	return ok2 && p2 >= '0' && p2 <= '9'
}

// decodeText consumes a run of digits up to the next space/EOF, splits it
// into CodeWidth()-sized chunks, and decodes each chunk via symTable.
func decodeText(cur *cursor.Cursor, symTable SymbolDecoder) (string, error) {
	run := cur.ConsumeUntilSpace()

	width := int(symTable.CodeWidth())
	if width == 0 || len(run)%width != 0 {
		return "", fmt.Errorf("%w: text run %q is not a multiple of code width %d", errs.ErrMalformedToken, run, width)
	}

	out := make([]rune, 0, len(run)/width)
	for i := 0; i < len(run); i += width {
		chunk := run[i : i+width]

		c, ok := symTable.Decode(chunk)
		if !ok {
			return "", fmt.Errorf("%w: %q", errs.ErrUnknownSymbolCode, chunk)
		}
		out = append(out, c)
	}

	return string(out), nil
}
