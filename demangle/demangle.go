// Package demangle converts D programming language mangled symbol
// names into human-readable form, following the name mangling scheme
// documented at https://dlang.org/spec/abi.html#name_mangling.
package demangle

import (
	"errors"
	"strings"

	"github.com/dlang-tools/dfilt/internal/scan"
)

// Errors
var (
	ErrInvalidMangled = errors.New("demangle: invalid mangled name")
	ErrTruncated      = errors.New("demangle: truncated mangled name")
	ErrOverflow       = errors.New("demangle: number overflow")
	ErrBackref        = errors.New("demangle: invalid back-reference")
)

// Demangle converts a D mangled symbol name to readable form.
// The input must begin with the "_D" prefix; any malformed, truncated
// or unknown encoding fails as a whole. No partial output is returned.
func Demangle(mangled string) (string, error) {
	if !strings.HasPrefix(mangled, "_D") {
		return "", ErrInvalidMangled
	}

	if mangled == "_Dmain" {
		return "D main", nil
	}

	d := newDemangler(mangled)
	b := newBuffer(1024)
	if err := d.parseMangle(b); err != nil {
		return "", err
	}

	// Trailing bytes the grammar did not account for fail the whole
	// symbol.
	if d.pos != len(d.input) || b.len() == 0 {
		return "", ErrInvalidMangled
	}
	return b.String(), nil
}

// IsMangled reports whether name looks like a D mangled symbol.
func IsMangled(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "_D")
}

// Filter rewrites s, replacing every symbol token that demangles with
// its demangled form. All other bytes pass through unchanged.
func Filter(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	sc := scan.NewScanner(s)
	for {
		tok, ok := sc.Next()
		if !ok {
			break
		}
		if tok.Symbol {
			if demangled, err := Demangle(tok.Text); err == nil {
				out.WriteString(demangled)
				continue
			}
		}
		out.WriteString(tok.Text)
	}
	return out.String()
}

// demangler holds parser state.
type demangler struct {
	input string // the mangled symbol being demangled
	pos   int    // cursor into input

	// Exclusive upper bound on where a type back-reference may point.
	// Shrinks across nested resolutions, which bounds chains of
	// back-references.
	lastBackref int

	// Set when the last identifier was a compiler-generated special
	// that already consumed the artificial 'Z' terminator.
	artificial bool
}

func newDemangler(input string) *demangler {
	return &demangler{
		input:       input,
		lastBackref: len(input),
	}
}

// parseMangle parses a full mangled name at the cursor:
//
//	MangledName:
//	    _D QualifiedName Type
//	    _D QualifiedName Z
//
// The trailing type is a declaration or return type, never a function
// type; the signature proper already appeared inside the qualified
// name, so the trailing type is parsed for validity and discarded.
func (d *demangler) parseMangle(b *buffer) error {
	d.pos += 2

	if err := d.parseQualified(b, true); err != nil {
		return err
	}

	// Specials like __initZ own their trailing 'Z'.
	if d.artificial {
		d.artificial = false
		return nil
	}

	// A bare 'Z' marks an artificial symbol without a type.
	if d.peek() == 'Z' {
		d.pos++
		return nil
	}

	// Discard the declaration or return type.
	return d.parseType(newBuffer(32))
}

// Helper methods

func (d *demangler) peek() byte {
	if d.pos >= len(d.input) {
		return 0
	}
	return d.input[d.pos]
}

func (d *demangler) charAt(i int) byte {
	if i < 0 || i >= len(d.input) {
		return 0
	}
	return d.input[i]
}

func (d *demangler) consume() byte {
	if d.pos >= len(d.input) {
		return 0
	}
	c := d.input[d.pos]
	d.pos++
	return c
}

func (d *demangler) remaining() int {
	if d.pos >= len(d.input) {
		return 0
	}
	return len(d.input) - d.pos
}

func (d *demangler) hasPrefix(s string) bool {
	return strings.HasPrefix(d.input[d.pos:], s)
}
