package demangle

import "strings"

// templateLengthUnknown marks a template instance that appeared
// without a length prefix.
const templateLengthUnknown = -1

// templateInstance parses a template instance name at the cursor:
//
//	TemplateInstanceName:
//	    Number __T LName TemplateArgs Z
//	    Number __U LName TemplateArgs Z
//
// length is the decoded prefix, or templateLengthUnknown when the
// instance appeared bare. A length prefix must match the consumed span
// exactly.
func (d *demangler) templateInstance(b *buffer, length int) error {
	start := d.pos

	if !d.isSymbolName(d.pos + 3) {
		return ErrInvalidMangled
	}
	d.pos += 3

	// Template identifier.
	if err := d.parseIdentifier(b); err != nil {
		return err
	}

	args := newBuffer(32)
	if err := d.templateArgs(args); err != nil {
		return err
	}

	b.writeString("!(")
	b.writeString(args.String())
	b.writeByte(')')

	if length != templateLengthUnknown && d.pos-start != length {
		return ErrInvalidMangled
	}

	// Specials buried in the argument list do not make the instance
	// itself artificial.
	d.artificial = false
	return nil
}

// templateArgs parses the comma-separated template argument list,
// terminated by 'Z'.
func (d *demangler) templateArgs(b *buffer) error {
	n := 0
	for d.pos < len(d.input) {
		if d.peek() == 'Z' {
			// End of parameter list.
			d.pos++
			return nil
		}

		if n != 0 {
			b.writeString(", ")
		}
		n++

		// A specialised argument carries an 'H' prefix with no
		// rendering of its own.
		if d.peek() == 'H' {
			d.pos++
		}

		switch d.peek() {
		case 'S': // symbol parameter
			d.pos++
			if err := d.templateSymbolParam(b); err != nil {
				return err
			}

		case 'T': // type parameter
			d.pos++
			if err := d.parseType(b); err != nil {
				return err
			}

		case 'V': // value parameter
			d.pos++

			// Peek at the type tag; a back reference is followed to
			// the tag byte of its target without consuming it here.
			tag := d.peek()
			if tag == 'Q' {
				target, err := d.peekBackrefTarget()
				if err != nil {
					return err
				}
				tag = d.charAt(target)
			}

			// The parsed type is only rendered for struct literals,
			// where it names the struct.
			name := newBuffer(32)
			if err := d.parseType(name); err != nil {
				return err
			}
			if err := d.value(b, name.String(), tag); err != nil {
				return err
			}

		case 'X': // externally mangled parameter
			d.pos++
			m, err := d.number()
			if err != nil {
				return err
			}
			if uint64(d.remaining()) < m {
				return ErrTruncated
			}
			b.writeString(d.input[d.pos : d.pos+int(m)])
			d.pos += int(m)

		default:
			return ErrInvalidMangled
		}
	}
	return ErrTruncated
}

// peekBackrefTarget resolves the back reference at the cursor without
// consuming it.
func (d *demangler) peekBackrefTarget() (int, error) {
	save := d.pos
	target, err := d.backrefTarget()
	d.pos = save
	return target, err
}

// templateSymbolParam parses a symbol template parameter: a nested
// mangled name, a back reference, or a length-prefixed qualified name.
func (d *demangler) templateSymbolParam(b *buffer) error {
	if d.hasPrefix("_D") && d.isSymbolName(d.pos+2) {
		return d.parseMangle(b)
	}

	if d.peek() == 'Q' {
		return d.parseQualified(b, false)
	}

	digStart := d.pos
	if _, err := d.number(); err != nil {
		return err
	}
	digEnd := d.pos

	// The symbol is a qualified name and so itself starts with a
	// length digit, which the number decode above swallowed. Work
	// backwards from the full digit run, giving trailing digits back
	// to the symbol, until a split parses cleanly and consumes exactly
	// its declared length.
	saved := b.len()
	for split := digEnd; split > digStart; split-- {
		want := 0
		for _, c := range []byte(d.input[digStart:split]) {
			want = want*10 + int(c-'0')
		}
		if want == 0 || want > len(d.input)-split {
			continue
		}

		d.pos = split
		var err error
		switch {
		case isDigit(d.input[split]):
			err = d.parseQualified(b, false)
		case strings.HasPrefix(d.input[split:], "_D") && d.isSymbolName(split+2):
			err = d.parseMangle(b)
		default:
			err = ErrInvalidMangled
		}
		if err == nil && d.pos-split == want {
			return nil
		}
		b.truncate(saved)
	}

	// No match on any combination.
	return ErrInvalidMangled
}
