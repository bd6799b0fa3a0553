package demangle

import "strings"

// parseQualified parses a qualified name at the cursor:
//
//	QualifiedName:
//	    SymbolFunctionName
//	    SymbolFunctionName QualifiedName
//	SymbolFunctionName:
//	    SymbolName
//	    SymbolName TypeFunctionNoReturn
//	    SymbolName M TypeFunctionNoReturn
//	    SymbolName M TypeModifiers TypeFunctionNoReturn
//
// Identifiers are joined by '.'. A nested function carries its
// argument types after the symbol, with the return type left to the
// enclosing mangle.
// suffixModifiers selects whether 'this'-parameter type modifiers are
// rendered after the argument list; type-position references (class,
// struct, enum) suppress them.
func (d *demangler) parseQualified(b *buffer, suffixModifiers bool) error {
	n := 0
	for {
		if d.peek() == '0' {
			// Runs of '0' are anonymous symbols with no rendering.
			for d.peek() == '0' {
				d.pos++
			}
		} else {
			if n != 0 {
				b.writeByte('.')
			}
			n++

			if err := d.parseIdentifier(b); err != nil {
				return err
			}

			// A nested function encodes its argument types here.
			// Probe for them; if the probe fails or runs off the end
			// of the input, the bytes belonged to the trailing
			// declaration type instead and the identifier stands
			// alone.
			if c := d.peek(); c == 'M' || isCallConvention(c) {
				start := d.pos
				saved := b.len()
				mods := newBuffer(32)

				ok := true
				if d.peek() == 'M' {
					// Skip over 'this' parameter and save its type
					// modifiers for appending at the end if needed.
					d.pos++
					if err := d.typeModifiers(mods); err != nil {
						ok = false
					}
				}
				if ok {
					if err := d.functionTypeNoReturn(b, nil, nil); err != nil {
						ok = false
					}
				}
				if ok && suffixModifiers {
					b.writeString(mods.String())
				}
				if !ok || d.pos >= len(d.input) {
					d.pos = start
					b.truncate(saved)
				}
			}
		}

		if !d.isSymbolName(d.pos) {
			return nil
		}
	}
}

// isSymbolName reports whether the bytes at pos begin a symbol name:
// a length-prefixed identifier, a lengthless template instance, or a
// back reference resolving to one.
func (d *demangler) isSymbolName(pos int) bool {
	if pos >= len(d.input) {
		return false
	}
	c := d.input[pos]
	if isDigit(c) {
		return true
	}
	rest := d.input[pos:]
	if strings.HasPrefix(rest, "__T") || strings.HasPrefix(rest, "__U") {
		return true
	}
	if c != 'Q' {
		return false
	}

	save := d.pos
	d.pos = pos + 1
	off, err := d.backrefOffset()
	d.pos = save
	if err != nil || off > pos {
		return false
	}
	return isDigit(d.input[pos-off])
}

// parseIdentifier parses one symbol name at the cursor.
func (d *demangler) parseIdentifier(b *buffer) error {
	d.artificial = false

	if d.pos >= len(d.input) {
		return ErrTruncated
	}

	if d.peek() == 'Q' {
		return d.symbolBackref(b)
	}

	// May be a template instance without a length prefix.
	if d.hasPrefix("__T") || d.hasPrefix("__U") {
		return d.templateInstance(b, templateLengthUnknown)
	}

	n, err := d.number()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidMangled
	}
	if uint64(d.remaining()) < n {
		return ErrTruncated
	}
	length := int(n)

	// May be a template instance with a length prefix.
	if length >= 5 && (d.hasPrefix("__T") || d.hasPrefix("__U")) {
		return d.templateInstance(b, length)
	}

	// A declaration that would collide with another of the same name
	// in the same function gets a fake `__Sddd' parent inserted to
	// keep the mangle unique. It carries no meaning of its own.
	if length >= 4 && d.hasPrefix("__S") {
		p := d.pos + 3
		for p < d.pos+length && isDigit(d.input[p]) {
			p++
		}
		if p == d.pos+length {
			// Skip over the fake parent.
			d.pos += length
			return d.parseIdentifier(b)
		}
		// Else demangle it as a plain identifier.
	}

	return d.parseLName(b, length)
}

// parseLName renders the plain identifier of the given length at the
// cursor, with special treatment for compiler-generated symbols. The
// prepend forms transform the qualified name emitted so far and own
// the trailing 'Z' of the mangled name.
func (d *demangler) parseLName(b *buffer, length int) error {
	rest := d.input[d.pos:]

	switch length {
	case 6:
		switch {
		case strings.HasPrefix(rest, "__ctor"):
			// Constructor symbol for a class/struct.
			b.writeString("this")
			d.pos += length
			return nil
		case strings.HasPrefix(rest, "__dtor"):
			// Destructor symbol for a class/struct.
			b.writeString("~this")
			d.pos += length
			return nil
		case strings.HasPrefix(rest, "__initZ"):
			// The static initializer for a given symbol.
			d.prependSpecial(b, "initializer for ")
			d.pos += length + 1
			return nil
		case strings.HasPrefix(rest, "__vtblZ"):
			// The vtable symbol for a given class.
			d.prependSpecial(b, "vtable for ")
			d.pos += length + 1
			return nil
		}

	case 7:
		if strings.HasPrefix(rest, "__ClassZ") {
			// The classinfo symbol for a given class.
			d.prependSpecial(b, "ClassInfo for ")
			d.pos += length + 1
			return nil
		}

	case 10:
		if strings.HasPrefix(rest, "__postblitMFZ") {
			// The postblit symbol for a struct.
			b.writeString("this(this)")
			d.pos += length + 3
			return nil
		}

	case 11:
		if strings.HasPrefix(rest, "__InterfaceZ") {
			// The interface symbol for a given class.
			d.prependSpecial(b, "Interface for ")
			d.pos += length + 1
			return nil
		}

	case 12:
		if strings.HasPrefix(rest, "__ModuleInfoZ") {
			// The ModuleInfo symbol for a given module.
			d.prependSpecial(b, "ModuleInfo for ")
			d.pos += length + 1
			return nil
		}
	}

	b.writeString(d.input[d.pos : d.pos+length])
	d.pos += length
	return nil
}

// prependSpecial injects prefix in front of the emitted qualified name
// and drops the trailing byte, which is either the '.' separator
// appended before this identifier or the prefix's own padding space.
func (d *demangler) prependSpecial(b *buffer, prefix string) {
	b.prepend(prefix)
	b.truncate(b.len() - 1)
	d.artificial = true
}

// backrefTarget decodes the back reference at the cursor, including
// its 'Q' sigil, and returns the absolute offset it resolves to. The
// offset is always strictly before the 'Q'.
func (d *demangler) backrefTarget() (int, error) {
	qpos := d.pos
	d.pos++
	off, err := d.backrefOffset()
	if err != nil {
		return 0, err
	}
	if off > qpos {
		return 0, ErrBackref
	}
	return qpos - off, nil
}

// symbolBackref parses an identifier back reference at the cursor.
// The target is always a simple length-prefixed identifier.
func (d *demangler) symbolBackref(b *buffer) error {
	target, err := d.backrefTarget()
	if err != nil {
		return err
	}
	resume := d.pos

	d.pos = target
	n, err := d.number()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidMangled
	}
	if uint64(d.remaining()) < n {
		return ErrTruncated
	}
	if err := d.parseLName(b, int(n)); err != nil {
		return err
	}

	d.pos = resume
	return nil
}

// typeBackref parses a type back reference at the cursor. isFunction
// selects the function-type parser for delegate targets. Each nested
// resolution must point strictly before the previous one, so chains of
// back references cannot recurse forever.
func (d *demangler) typeBackref(b *buffer, isFunction bool) error {
	if d.pos >= d.lastBackref {
		return ErrBackref
	}
	saved := d.lastBackref
	d.lastBackref = d.pos
	defer func() { d.lastBackref = saved }()

	target, err := d.backrefTarget()
	if err != nil {
		return err
	}
	resume := d.pos

	d.pos = target
	if isFunction {
		err = d.functionType(b)
	} else {
		err = d.parseType(b)
	}
	if err != nil {
		return err
	}

	d.pos = resume
	return nil
}
