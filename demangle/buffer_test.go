package demangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferAppend(t *testing.T) {
	b := newBuffer(8)
	b.writeString("foo")
	b.writeByte('.')
	b.writeString("bar")
	assert.Equal(t, "foo.bar", b.String())
	assert.Equal(t, 7, b.len())
}

func TestBufferPrepend(t *testing.T) {
	b := newBuffer(8)
	b.writeString("demangle.Foo")
	b.prepend("vtable for ")
	assert.Equal(t, "vtable for demangle.Foo", b.String())
}

func TestBufferPrependEmpty(t *testing.T) {
	b := newBuffer(8)
	b.prepend("initializer for ")
	assert.Equal(t, "initializer for ", b.String())
}

func TestBufferPrependGrows(t *testing.T) {
	// Prepending past the initial capacity must keep content intact.
	b := newBuffer(2)
	b.writeString("abc")
	b.prepend("0123456789")
	assert.Equal(t, "0123456789abc", b.String())
}

func TestBufferTruncate(t *testing.T) {
	b := newBuffer(8)
	b.writeString("foo.bar")
	pos := b.len()
	b.writeString(".baz")
	b.truncate(pos)
	assert.Equal(t, "foo.bar", b.String())

	b.truncate(0)
	assert.Equal(t, "", b.String())
}
