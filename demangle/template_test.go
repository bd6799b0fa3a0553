package demangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemangleTemplates(t *testing.T) {
	tests := []struct {
		name     string
		mangled  string
		expected string
	}{
		{
			name:     "type argument",
			mangled:  "_D8demangle11__T4testTiZ4testFZv",
			expected: "demangle.test!(int).test()",
		},
		{
			name:     "without length prefix",
			mangled:  "_D8demangle__T4testTiZ4testFZv",
			expected: "demangle.test!(int).test()",
		},
		{
			name:     "variadic template",
			mangled:  "_D8demangle__U4testTiZ4testFZv",
			expected: "demangle.test!(int).test()",
		},
		{
			name:     "multiple type arguments",
			mangled:  "_D8demangle13__T4testTiTaZ4testFZv",
			expected: "demangle.test!(int, char).test()",
		},
		{
			name:     "specialised argument prefix is dropped",
			mangled:  "_D8demangle12__T4testHTiZ4testFZv",
			expected: "demangle.test!(int).test()",
		},
		{
			name:     "externally mangled argument",
			mangled:  "_D8demangle13__T4testX2abZ4testFZv",
			expected: "demangle.test!(ab).test()",
		},
		{
			name:     "symbol argument",
			mangled:  "_D8demangle14__T3fooS43barZ3fooFZv",
			expected: "demangle.foo!(bar).foo()",
		},
		{
			name:     "qualified symbol argument",
			mangled:  "_D8demangle24__T3fooS138demangle3barZ3fooFZv",
			expected: "demangle.foo!(demangle.bar).foo()",
		},
		{
			name:     "mangled symbol argument",
			mangled:  "_D8demangle27__T3fooS_D8demangle3barFZvZ3fooFZv",
			expected: "demangle.foo!(demangle.bar()).foo()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			demangled, err := Demangle(tt.mangled)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, demangled)
		})
	}
}

func TestDemangleTemplateValues(t *testing.T) {
	tests := []struct {
		name     string
		mangled  string
		expected string
	}{
		{
			name:     "integer",
			mangled:  "_D8demangle12__T3fooVii5Z3fooFZv",
			expected: "demangle.foo!(5).foo()",
		},
		{
			name:     "integer without marker",
			mangled:  "_D8demangle11__T3fooVi5Z3fooFZv",
			expected: "demangle.foo!(5).foo()",
		},
		{
			name:     "negative integer",
			mangled:  "_D8demangle13__T3fooViN42Z3fooFZv",
			expected: "demangle.foo!(-42).foo()",
		},
		{
			name:     "uint suffix",
			mangled:  "_D8demangle13__T3fooVki42Z3fooFZv",
			expected: "demangle.foo!(42u).foo()",
		},
		{
			name:     "long suffix",
			mangled:  "_D8demangle13__T3fooVli42Z3fooFZv",
			expected: "demangle.foo!(42L).foo()",
		},
		{
			name:     "ulong suffix",
			mangled:  "_D8demangle13__T3fooVmi42Z3fooFZv",
			expected: "demangle.foo!(42uL).foo()",
		},
		{
			name:     "true",
			mangled:  "_D8demangle12__T3fooVbi1Z3fooFZv",
			expected: "demangle.foo!(true).foo()",
		},
		{
			name:     "false",
			mangled:  "_D8demangle12__T3fooVbi0Z3fooFZv",
			expected: "demangle.foo!(false).foo()",
		},
		{
			name:     "null",
			mangled:  "_D8demangle12__T3fooVPinZ3fooFZv",
			expected: "demangle.foo!(null).foo()",
		},
		{
			name:     "printable character",
			mangled:  "_D8demangle13__T3fooVai97Z3fooFZv",
			expected: "demangle.foo!('a').foo()",
		},
		{
			name:     "control character",
			mangled:  "_D8demangle13__T3fooVai10Z3fooFZv",
			expected: "demangle.foo!('\\x0a').foo()",
		},
		{
			name:     "wide character",
			mangled:  "_D8demangle15__T3fooVui1000Z3fooFZv",
			expected: "demangle.foo!('\\u03e8').foo()",
		},
		{
			name:     "double wide character",
			mangled:  "_D8demangle17__T3fooVwi100000Z3fooFZv",
			expected: "demangle.foo!('\\U000186a0').foo()",
		},
		{
			name:     "string",
			mangled:  "_D8demangle19__T3fooVaa3_666f6fZ3fooFZv",
			expected: "demangle.foo!(\"foo\").foo()",
		},
		{
			name:     "wide string suffix",
			mangled:  "_D8demangle18__T3fooVAuw2_4142Z3fooFZv",
			expected: "demangle.foo!(\"AB\"w).foo()",
		},
		{
			name:     "escaped string",
			mangled:  "_D8demangle15__T3fooVaa1_09Z3fooFZv",
			expected: "demangle.foo!(\"\\t\").foo()",
		},
		{
			name:     "hex escaped string keeps input digits",
			mangled:  "_D8demangle15__T3fooVaa1_1BZ3fooFZv",
			expected: "demangle.foo!(\"\\x1B\").foo()",
		},
		{
			name:     "real",
			mangled:  "_D8demangle15__T3fooVeeA8P2Z3fooFZv",
			expected: "demangle.foo!(0xA.8p2).foo()",
		},
		{
			name:     "negative real with negative exponent",
			mangled:  "_D8demangle16__T3fooVeeN8PN2Z3fooFZv",
			expected: "demangle.foo!(-0x8.p-2).foo()",
		},
		{
			name:     "nan",
			mangled:  "_D8demangle14__T3fooVeeNANZ3fooFZv",
			expected: "demangle.foo!(NaN).foo()",
		},
		{
			name:     "infinity",
			mangled:  "_D8demangle14__T3fooVeeINFZ3fooFZv",
			expected: "demangle.foo!(Inf).foo()",
		},
		{
			name:     "negative infinity",
			mangled:  "_D8demangle15__T3fooVeeNINFZ3fooFZv",
			expected: "demangle.foo!(-Inf).foo()",
		},
		{
			name:     "complex",
			mangled:  "_D8demangle18__T3fooVqc8P0c8P0Z3fooFZv",
			expected: "demangle.foo!(0x8.p0+0x8.p0i).foo()",
		},
		{
			name:     "array literal",
			mangled:  "_D8demangle17__T3fooVAiA2i1i2Z3fooFZv",
			expected: "demangle.foo!([1, 2]).foo()",
		},
		{
			name:     "associative array literal",
			mangled:  "_D8demangle22__T3fooVHiiA2i1i2i3i4Z3fooFZv",
			expected: "demangle.foo!([1:2, 3:4]).foo()",
		},
		{
			name:     "struct literal",
			mangled:  "_D8demangle29__T3fooVS8demangle3BarS2i1i2Z3fooFZv",
			expected: "demangle.foo!(demangle.Bar(1, 2)).foo()",
		},
		{
			name:     "function literal",
			mangled:  "_D8demangle32__T3fooVPFZvf_D8demangle3barFZvZ3fooFZv",
			expected: "demangle.foo!(demangle.bar()).foo()",
		},
		{
			name:     "value type through back reference",
			mangled:  "_D8demangle13__T3fooVQni5Z3fooFZv",
			expected: "demangle.foo!(5).foo()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			demangled, err := Demangle(tt.mangled)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, demangled)
		})
	}
}
