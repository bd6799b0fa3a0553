package demangle

// parseType parses one type at the cursor and appends its source form.
// Unknown tags are a hard failure; nothing is skipped.
func (d *demangler) parseType(b *buffer) error {
	if d.pos >= len(d.input) {
		return ErrTruncated
	}

	switch d.peek() {
	case 'O': // shared(T)
		d.pos++
		b.writeString("shared(")
		if err := d.parseType(b); err != nil {
			return err
		}
		b.writeByte(')')
		return nil

	case 'x': // const(T)
		d.pos++
		b.writeString("const(")
		if err := d.parseType(b); err != nil {
			return err
		}
		b.writeByte(')')
		return nil

	case 'y': // immutable(T)
		d.pos++
		b.writeString("immutable(")
		if err := d.parseType(b); err != nil {
			return err
		}
		b.writeByte(')')
		return nil

	case 'N':
		d.pos++
		switch d.peek() {
		case 'g': // wild(T)
			d.pos++
			b.writeString("inout(")
			if err := d.parseType(b); err != nil {
				return err
			}
			b.writeByte(')')
			return nil
		case 'h': // vector(T)
			d.pos++
			b.writeString("__vector(")
			if err := d.parseType(b); err != nil {
				return err
			}
			b.writeByte(')')
			return nil
		case 'n': // typeof(*null)
			d.pos++
			b.writeString("typeof(*null)")
			return nil
		}
		return ErrInvalidMangled

	case 'A': // dynamic array (T[])
		d.pos++
		if err := d.parseType(b); err != nil {
			return err
		}
		b.writeString("[]")
		return nil

	case 'G': // static array (T[N])
		d.pos++
		numStart := d.pos
		for isDigit(d.peek()) {
			d.pos++
		}
		num := d.input[numStart:d.pos]
		if err := d.parseType(b); err != nil {
			return err
		}
		b.writeByte('[')
		b.writeString(num)
		b.writeByte(']')
		return nil

	case 'H': // associative array (V[K])
		d.pos++
		key := newBuffer(32)
		if err := d.parseType(key); err != nil {
			return err
		}
		if err := d.parseType(b); err != nil {
			return err
		}
		b.writeByte('[')
		b.writeString(key.String())
		b.writeByte(']')
		return nil

	case 'P': // pointer (T*)
		d.pos++
		if !isCallConvention(d.peek()) {
			if err := d.parseType(b); err != nil {
				return err
			}
			b.writeByte('*')
			return nil
		}
		// A pointer to a function spells "function", with no '*'.
		if err := d.functionType(b); err != nil {
			return err
		}
		b.writeString("function")
		return nil

	case 'F', 'U', 'W', 'V', 'R', 'Y': // function type
		if err := d.functionType(b); err != nil {
			return err
		}
		b.writeString("function")
		return nil

	case 'C', 'S', 'E', 'T': // class, struct, enum, typedef
		d.pos++
		return d.parseQualified(b, false)

	case 'D': // delegate
		d.pos++
		mods := newBuffer(32)
		if err := d.typeModifiers(mods); err != nil {
			return err
		}

		var err error
		if d.peek() == 'Q' {
			// Back referenced function type.
			err = d.typeBackref(b, true)
		} else {
			err = d.functionType(b)
		}
		if err != nil {
			return err
		}

		b.writeString("delegate")
		b.writeString(mods.String())
		return nil

	case 'B': // tuple
		d.pos++
		return d.parseTuple(b)

	// Basic types.
	case 'n':
		d.pos++
		b.writeString("typeof(null)")
		return nil
	case 'v':
		d.pos++
		b.writeString("void")
		return nil
	case 'g':
		d.pos++
		b.writeString("byte")
		return nil
	case 'h':
		d.pos++
		b.writeString("ubyte")
		return nil
	case 's':
		d.pos++
		b.writeString("short")
		return nil
	case 't':
		d.pos++
		b.writeString("ushort")
		return nil
	case 'i':
		d.pos++
		b.writeString("int")
		return nil
	case 'k':
		d.pos++
		b.writeString("uint")
		return nil
	case 'l':
		d.pos++
		b.writeString("long")
		return nil
	case 'm':
		d.pos++
		b.writeString("ulong")
		return nil
	case 'f':
		d.pos++
		b.writeString("float")
		return nil
	case 'd':
		d.pos++
		b.writeString("double")
		return nil
	case 'e':
		d.pos++
		b.writeString("real")
		return nil

	// Imaginary types.
	case 'o':
		d.pos++
		b.writeString("ifloat")
		return nil
	case 'p':
		d.pos++
		b.writeString("idouble")
		return nil
	case 'j':
		d.pos++
		b.writeString("ireal")
		return nil

	// Complex types.
	case 'q':
		d.pos++
		b.writeString("cfloat")
		return nil
	case 'r':
		d.pos++
		b.writeString("cdouble")
		return nil
	case 'c':
		d.pos++
		b.writeString("creal")
		return nil

	// Other types.
	case 'b':
		d.pos++
		b.writeString("bool")
		return nil
	case 'a':
		d.pos++
		b.writeString("char")
		return nil
	case 'u':
		d.pos++
		b.writeString("wchar")
		return nil
	case 'w':
		d.pos++
		b.writeString("dchar")
		return nil

	case 'z':
		d.pos++
		switch d.peek() {
		case 'i':
			d.pos++
			b.writeString("cent")
			return nil
		case 'k':
			d.pos++
			b.writeString("ucent")
			return nil
		}
		return ErrInvalidMangled

	case 'Q': // back referenced type
		return d.typeBackref(b, false)
	}

	return ErrInvalidMangled
}

// typeModifiers parses the modifiers of a 'this' parameter or delegate
// type. shared and inout may combine with further modifiers.
func (d *demangler) typeModifiers(b *buffer) error {
	switch d.peek() {
	case 'x': // const
		d.pos++
		b.writeString(" const")
		return nil
	case 'y': // immutable
		d.pos++
		b.writeString(" immutable")
		return nil
	case 'O': // shared
		d.pos++
		b.writeString(" shared")
		return d.typeModifiers(b)
	case 'N':
		if d.charAt(d.pos+1) != 'g' {
			return ErrInvalidMangled
		}
		d.pos += 2
		b.writeString(" inout")
		return d.typeModifiers(b)
	}
	return nil
}

// parseTuple parses a tuple type: a count followed by that many types.
func (d *demangler) parseTuple(b *buffer) error {
	n, err := d.number()
	if err != nil {
		return err
	}

	b.writeString("tuple(")
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			b.writeString(", ")
		}
		if err := d.parseType(b); err != nil {
			return err
		}
	}
	b.writeByte(')')
	return nil
}
