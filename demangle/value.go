package demangle

import (
	"fmt"
	"strings"
)

// value parses a template value argument at the cursor. tag is the tag
// byte of the value's type, which selects integer suffixes, character
// widths and the associative-array form. name carries the rendered
// type name for struct literals.
func (d *demangler) value(b *buffer, name string, tag byte) error {
	if d.pos >= len(d.input) {
		return ErrTruncated
	}

	switch c := d.peek(); {
	case c == 'n': // null value
		d.pos++
		b.writeString("null")
		return nil

	case c == 'N': // negative integer
		d.pos++
		b.writeByte('-')
		return d.integerValue(b, tag)

	case c == 'i':
		d.pos++
		return d.integerValue(b, tag)

	case isDigit(c):
		// Early D2 frontends encoded numbers without the 'i' marker;
		// bare digits remain accepted.
		return d.integerValue(b, tag)

	case c == 'e': // real value
		d.pos++
		return d.realValue(b)

	case c == 'c': // complex value
		d.pos++
		if err := d.realValue(b); err != nil {
			return err
		}
		b.writeByte('+')
		if d.peek() != 'c' {
			return ErrInvalidMangled
		}
		d.pos++
		if err := d.realValue(b); err != nil {
			return err
		}
		b.writeByte('i')
		return nil

	case c == 'a' || c == 'w' || c == 'd': // string value
		return d.stringValue(b)

	case c == 'A': // array or associative array value
		d.pos++
		if tag == 'H' {
			return d.assocArrayLiteral(b)
		}
		return d.arrayLiteral(b)

	case c == 'S': // struct value
		d.pos++
		return d.structLiteral(b, name)

	case c == 'f': // function literal symbol
		d.pos++
		if !d.hasPrefix("_D") || !d.isSymbolName(d.pos+2) {
			return ErrInvalidMangled
		}
		return d.parseMangle(b)
	}

	return ErrInvalidMangled
}

// integerValue parses an integral value whose rendering depends on the
// type tag: character types become quoted literals, bool becomes
// true/false, and the fixed-width integer types carry D literal
// suffixes.
func (d *demangler) integerValue(b *buffer, tag byte) error {
	switch tag {
	case 'a', 'u', 'w':
		// Character value.
		val, err := d.number()
		if err != nil {
			return err
		}

		b.writeByte('\'')
		if tag == 'a' && val >= 0x20 && val < 0x7f {
			b.writeByte(byte(val))
		} else {
			switch tag {
			case 'a':
				b.writeString(fmt.Sprintf("\\x%02x", val))
			case 'u':
				b.writeString(fmt.Sprintf("\\u%04x", val))
			case 'w':
				b.writeString(fmt.Sprintf("\\U%08x", val))
			}
		}
		b.writeByte('\'')
		return nil

	case 'b':
		// Boolean value.
		val, err := d.number()
		if err != nil {
			return err
		}
		if val != 0 {
			b.writeString("true")
		} else {
			b.writeString("false")
		}
		return nil
	}

	// Integer value: the digits pass through verbatim.
	if !isDigit(d.peek()) {
		return ErrInvalidMangled
	}
	start := d.pos
	for isDigit(d.peek()) {
		d.pos++
	}
	b.writeString(d.input[start:d.pos])

	switch tag {
	case 'h', 't', 'k': // ubyte, ushort, uint
		b.writeByte('u')
	case 'l': // long
		b.writeByte('L')
	case 'm': // ulong
		b.writeString("uL")
	}
	return nil
}

// realValue parses a real value in hexadecimal form
//
//	[N] HexDigit HexDigits P [N] Digits
//
// rendered as [-]0xH.HHHp[-]DDD, or one of the literals NAN, INF and
// NINF.
func (d *demangler) realValue(b *buffer) error {
	rest := d.input[d.pos:]
	switch {
	case strings.HasPrefix(rest, "NAN"):
		b.writeString("NaN")
		d.pos += 3
		return nil
	case strings.HasPrefix(rest, "NINF"):
		b.writeString("-Inf")
		d.pos += 4
		return nil
	case strings.HasPrefix(rest, "INF"):
		b.writeString("Inf")
		d.pos += 3
		return nil
	}

	if d.peek() == 'N' {
		d.pos++
		b.writeByte('-')
	}

	b.writeString("0x")
	if !isHexDigit(d.peek()) {
		return ErrInvalidMangled
	}
	b.writeByte(d.consume())
	b.writeByte('.')

	for isHexDigit(d.peek()) {
		b.writeByte(d.consume())
	}

	if d.peek() != 'P' {
		return ErrInvalidMangled
	}
	d.pos++
	b.writeByte('p')

	if d.peek() == 'N' {
		d.pos++
		b.writeByte('-')
	}
	for isDigit(d.peek()) {
		b.writeByte(d.consume())
	}
	return nil
}

// stringValue parses a hex-coded string literal: a width tag, the
// character count, '_', then two hex digits per byte. Whitespace and
// control characters are escaped; other non-printable bytes render as
// \xNN using the digits from the input.
func (d *demangler) stringValue(b *buffer) error {
	tag := d.consume()

	n, err := d.number()
	if err != nil {
		return err
	}
	if d.peek() != '_' {
		return ErrInvalidMangled
	}
	d.pos++

	b.writeByte('"')
	for i := uint64(0); i < n; i++ {
		hexPos := d.pos
		val, err := d.hexPair()
		if err != nil {
			return err
		}

		switch val {
		case ' ':
			b.writeByte(' ')
		case '\t':
			b.writeString("\\t")
		case '\n':
			b.writeString("\\n")
		case '\r':
			b.writeString("\\r")
		case '\f':
			b.writeString("\\f")
		case '\v':
			b.writeString("\\v")
		default:
			if isPrintable(val) {
				b.writeByte(val)
			} else {
				b.writeString("\\x")
				b.writeString(d.input[hexPos : hexPos+2])
			}
		}
	}
	b.writeByte('"')

	if tag != 'a' {
		b.writeByte(tag)
	}
	return nil
}

// arrayLiteral parses a count-prefixed array literal.
func (d *demangler) arrayLiteral(b *buffer) error {
	n, err := d.number()
	if err != nil {
		return err
	}

	b.writeByte('[')
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			b.writeString(", ")
		}
		if err := d.value(b, "", 0); err != nil {
			return err
		}
	}
	b.writeByte(']')
	return nil
}

// assocArrayLiteral parses a count-prefixed associative array literal
// of key:value pairs.
func (d *demangler) assocArrayLiteral(b *buffer) error {
	n, err := d.number()
	if err != nil {
		return err
	}

	b.writeByte('[')
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			b.writeString(", ")
		}
		if err := d.value(b, "", 0); err != nil {
			return err
		}
		b.writeByte(':')
		if err := d.value(b, "", 0); err != nil {
			return err
		}
	}
	b.writeByte(']')
	return nil
}

// structLiteral parses a count-prefixed struct literal, rendered with
// the peeked type name.
func (d *demangler) structLiteral(b *buffer, name string) error {
	n, err := d.number()
	if err != nil {
		return err
	}

	b.writeString(name)
	b.writeByte('(')
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			b.writeString(", ")
		}
		if err := d.value(b, "", 0); err != nil {
			return err
		}
	}
	b.writeByte(')')
	return nil
}
