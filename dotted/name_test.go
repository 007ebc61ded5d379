package dotted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternCanonicalization(t *testing.T) {
	in := NewInterner()

	a := in.Intern("java.lang.String")
	b := in.Intern("java.lang.String")
	require.NotNil(t, a)
	assert.Same(t, a, b, "interning the same flat string twice must return the identical node")
	assert.True(t, a.Equal(b))

	c := in.Intern("java.lang.Object")
	assert.False(t, a.Equal(c))
}

func TestInternSharesPrefixes(t *testing.T) {
	in := NewInterner()

	str := in.Intern("java.lang.String")
	obj := in.Intern("java.lang.Object")

	// both chains share the "java" and "java.lang" nodes
	assert.Same(t, str.parent.parent, obj.parent.parent)
	assert.Same(t, str.parent, obj.parent)
}

func TestInternInternalMatchesDottedForm(t *testing.T) {
	in := NewInterner()

	dotted := in.Intern("java.lang.String")
	internal := in.InternInternal("java/lang/String")

	assert.True(t, dotted.Equal(internal))
	assert.Equal(t, "java.lang.String", internal.String())
	// same interner, same chain => identical node
	assert.Same(t, dotted, internal)
}

func TestSimpleAndSharedInteroperate(t *testing.T) {
	in := NewInterner()
	shared := in.Intern("pkg.Ann")
	simple := NewSimple("pkg.Ann")

	assert.True(t, shared.Equal(simple))
	assert.True(t, simple.Equal(shared))
	assert.Equal(t, shared.String(), simple.String())
}

func TestLocalComponent(t *testing.T) {
	in := NewInterner()
	n := in.Intern("java.lang.String")
	assert.Equal(t, "String", n.Local())

	simple := NewSimple("pkg.Outer")
	assert.Equal(t, "Outer", simple.Local())

	single := in.Intern("Foo")
	assert.Equal(t, "Foo", single.Local())
	assert.Equal(t, "Foo", single.String())
}

func TestRenderDotted(t *testing.T) {
	in := NewInterner()
	n := in.InternComponent(in.InternComponent(nil, "pkg"), "A")
	assert.Equal(t, "pkg.A", RenderDotted(n))
}

func TestNilNameRendersEmpty(t *testing.T) {
	var n *Name
	assert.Equal(t, "", n.String())
	assert.Equal(t, "", n.Local())
	assert.False(t, n.Equal(NewSimple("x")))
}
