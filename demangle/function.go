package demangle

// isCallConvention reports whether c begins an encoded function type.
func isCallConvention(c byte) bool {
	switch c {
	case 'F', 'U', 'V', 'W', 'R', 'Y':
		return true
	}
	return false
}

// callConvention parses the calling convention tag at the cursor.
// The default D convention 'F' renders nothing.
func (d *demangler) callConvention(b *buffer) error {
	switch d.peek() {
	case 'F':
		d.pos++
	case 'U':
		d.pos++
		b.writeString("extern(C) ")
	case 'W':
		d.pos++
		b.writeString("extern(Windows) ")
	case 'V':
		d.pos++
		b.writeString("extern(Pascal) ")
	case 'R':
		d.pos++
		b.writeString("extern(C++) ")
	case 'Y':
		d.pos++
		b.writeString("extern(Objective-C) ")
	default:
		return ErrInvalidMangled
	}
	return nil
}

// attributes parses the function attribute digraphs at the cursor.
// Each attribute renders with a trailing space. Unknown digraphs fail;
// Ng, Nh, Nk and Nn are not attributes here and hand the 'N' back to
// the parameter list.
func (d *demangler) attributes(b *buffer) error {
	for d.peek() == 'N' {
		d.pos++
		switch d.peek() {
		case 'a': // pure
			d.pos++
			b.writeString("pure ")
		case 'b': // nothrow
			d.pos++
			b.writeString("nothrow ")
		case 'c': // ref
			d.pos++
			b.writeString("ref ")
		case 'd': // @property
			d.pos++
			b.writeString("@property ")
		case 'e': // @trusted
			d.pos++
			b.writeString("@trusted ")
		case 'f': // @safe
			d.pos++
			b.writeString("@safe ")
		case 'i': // @nogc
			d.pos++
			b.writeString("@nogc ")
		case 'j': // return
			d.pos++
			b.writeString("return ")
		case 'l': // scope
			d.pos++
			b.writeString("scope ")
		case 'm': // @live
			d.pos++
			b.writeString("@live ")
		case 'g', 'h', 'k', 'n':
			// Ng, Nh, Nk and Nn introduce parameters, not
			// attributes. Hand the 'N' back to the parameter list.
			d.pos--
			return nil
		default:
			return ErrInvalidMangled
		}
	}
	return nil
}

// functionArgs parses the parameter list at the cursor, terminated by
// one of 'X' (variadic T...), 'Y' (variadic T, ...) or 'Z' (fixed).
func (d *demangler) functionArgs(b *buffer) error {
	n := 0
	for d.pos < len(d.input) {
		switch d.peek() {
		case 'X': // (variadic T t...) style
			d.pos++
			b.writeString("...")
			return nil
		case 'Y': // (variadic T t, ...) style
			d.pos++
			if n != 0 {
				b.writeString(", ")
			}
			b.writeString("...")
			return nil
		case 'Z': // normal function
			d.pos++
			return nil
		}

		if n != 0 {
			b.writeString(", ")
		}
		n++

		if d.peek() == 'M' { // scope(T)
			d.pos++
			b.writeString("scope ")
		}
		if d.peek() == 'N' && d.charAt(d.pos+1) == 'k' { // return(T)
			d.pos += 2
			b.writeString("return ")
		}

		switch d.peek() {
		case 'I': // in(T)
			d.pos++
			b.writeString("in ")
			if d.peek() == 'K' { // in ref(T)
				d.pos++
				b.writeString("ref ")
			}
		case 'J': // out(T)
			d.pos++
			b.writeString("out ")
		case 'K': // ref(T)
			d.pos++
			b.writeString("ref ")
		case 'L': // lazy(T)
			d.pos++
			b.writeString("lazy ")
		}

		if err := d.parseType(b); err != nil {
			return err
		}
	}
	return ErrTruncated
}

// functionTypeNoReturn parses a function type up to but excluding the
// return type. A nil destination discards that part, which is how the
// qualified-name suffix drops calling conventions and attributes.
func (d *demangler) functionTypeNoReturn(args, call, attr *buffer) error {
	dump := newBuffer(32)

	callDst := call
	if callDst == nil {
		callDst = dump
	}
	if err := d.callConvention(callDst); err != nil {
		return err
	}

	attrDst := attr
	if attrDst == nil {
		attrDst = dump
	}
	if err := d.attributes(attrDst); err != nil {
		return err
	}

	if args == nil {
		return d.functionArgs(dump)
	}
	args.writeByte('(')
	if err := d.functionArgs(args); err != nil {
		return err
	}
	args.writeByte(')')
	return nil
}

// functionType parses a full function type. The mangled order is
//
//	CallConvention FuncAttrs Arguments ArgClose Type
//
// and the demangled form is re-ordered to be
//
//	CallConvention Type Arguments FuncAttrs
func (d *demangler) functionType(b *buffer) error {
	if d.pos >= len(d.input) {
		return ErrTruncated
	}

	attr := newBuffer(32)
	args := newBuffer(32)
	typ := newBuffer(32)

	if err := d.functionTypeNoReturn(args, b, attr); err != nil {
		return err
	}

	// Function return type.
	if err := d.parseType(typ); err != nil {
		return err
	}

	b.writeString(typ.String())
	b.writeString(args.String())
	b.writeByte(' ')
	b.writeString(attr.String())
	return nil
}
