package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jandex/dotted"
)

// classBuilder assembles raw class file bytes by hand, the way these
// tests stand in for real .class fixtures.
type classBuilder struct {
	buf []byte
}

func (b *classBuilder) u1(v byte) { b.buf = append(b.buf, v) }

func (b *classBuilder) u2(v uint16) { b.buf = append(b.buf, byte(v>>8), byte(v)) }

func (b *classBuilder) u4(v uint32) {
	b.buf = append(b.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (b *classBuilder) bytes(raw []byte) { b.buf = append(b.buf, raw...) }

// cpBuilder accumulates constant pool entries and reports the 1-based
// index assigned to each, so callers can wire up references as they go.
type cpBuilder struct {
	entries [][]byte
}

func (cb *cpBuilder) utf8(s string) uint16 {
	e := []byte{tagUTF8}
	e = append(e, byte(len(s)>>8), byte(len(s)))
	e = append(e, []byte(s)...)
	cb.entries = append(cb.entries, e)
	return uint16(len(cb.entries))
}

func (cb *cpBuilder) class(nameIdx uint16) uint16 {
	e := []byte{tagClass, byte(nameIdx >> 8), byte(nameIdx)}
	cb.entries = append(cb.entries, e)
	return uint16(len(cb.entries))
}

func (cb *cpBuilder) integer(v int32) uint16 {
	u := uint32(v)
	e := []byte{tagInteger, byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	cb.entries = append(cb.entries, e)
	return uint16(len(cb.entries))
}

func (b *classBuilder) writeCP(cb *cpBuilder) {
	b.u2(uint16(len(cb.entries) + 1))
	for _, e := range cb.entries {
		b.bytes(e)
	}
}

func buildMinimalClass(t *testing.T) []byte {
	t.Helper()
	cb := &cpBuilder{}
	nameIdx := cb.utf8("Example")
	thisIdx := cb.class(nameIdx)
	superNameIdx := cb.utf8("java/lang/Object")
	superIdx := cb.class(superNameIdx)

	var b classBuilder
	b.u4(classMagic)
	b.u2(0) // minor
	b.u2(52) // major
	b.writeCP(cb)
	b.u2(0x0021) // access_flags: public | super
	b.u2(thisIdx)
	b.u2(superIdx)
	b.u2(0) // interfaces_count
	b.u2(0) // fields_count
	b.u2(0) // methods_count
	b.u2(0) // attributes_count
	return b.buf
}

func TestReadClassMinimal(t *testing.T) {
	data := buildMinimalClass(t)
	interner := dotted.NewInterner()

	class, anns, err := ReadClass(data, interner)
	require.NoError(t, err)
	assert.Empty(t, anns)
	assert.Equal(t, "Example", class.Name.String())
	require.NotNil(t, class.Super)
	assert.Equal(t, "java.lang.Object", class.Super.String())
	assert.Equal(t, AccPublic|AccSuper, class.AccessFlags)
}

func TestReadClassRejectsBadMagic(t *testing.T) {
	data := buildMinimalClass(t)
	data[0] = 0x00
	interner := dotted.NewInterner()
	_, _, err := ReadClass(data, interner)
	require.Error(t, err)
}

// buildClassWithFieldAnnotation builds a class with a single field that
// carries one RuntimeVisibleAnnotations entry with one int-valued
// element, exercising field parsing, attribute dispatch, and element
// value decoding end to end.
func buildClassWithFieldAnnotation(t *testing.T) []byte {
	t.Helper()
	cb := &cpBuilder{}
	nameIdx := cb.utf8("Example")
	thisIdx := cb.class(nameIdx)
	superNameIdx := cb.utf8("java/lang/Object")
	superIdx := cb.class(superNameIdx)

	fieldNameIdx := cb.utf8("count")
	fieldDescIdx := cb.utf8("I")

	attrNameIdx := cb.utf8(attrRuntimeVisibleAnnotations)
	annTypeIdx := cb.utf8("LExample$Tag;")
	elemNameIdx := cb.utf8("value")
	intConstIdx := cb.integer(7)

	var b classBuilder
	b.u4(classMagic)
	b.u2(0)
	b.u2(52)
	b.writeCP(cb)
	b.u2(0x0021)
	b.u2(thisIdx)
	b.u2(superIdx)
	b.u2(0) // interfaces

	b.u2(1) // fields_count
	b.u2(0x0002) // access_flags: private
	b.u2(fieldNameIdx)
	b.u2(fieldDescIdx)
	b.u2(1) // attributes_count

	// RuntimeVisibleAnnotations attribute body, built separately so its
	// length prefix can be computed.
	var attr classBuilder
	attr.u2(1) // num_annotations
	attr.u2(annTypeIdx)
	attr.u2(1) // num_element_value_pairs
	attr.u2(elemNameIdx)
	attr.u1('I')
	attr.u2(intConstIdx)

	b.u2(attrNameIdx)
	b.u4(uint32(len(attr.buf)))
	b.bytes(attr.buf)

	b.u2(0) // methods_count
	b.u2(0) // class attributes_count
	return b.buf
}

// buildClassWithClassAndFieldAnnotation builds a class carrying both a
// class-level RuntimeVisibleAnnotations entry and a field-level one of
// the same annotation type, so the emitted order between the two can be
// asserted directly against the bytes ReadClass actually parses.
func buildClassWithClassAndFieldAnnotation(t *testing.T) []byte {
	t.Helper()
	cb := &cpBuilder{}
	nameIdx := cb.utf8("Example")
	thisIdx := cb.class(nameIdx)
	superNameIdx := cb.utf8("java/lang/Object")
	superIdx := cb.class(superNameIdx)

	fieldNameIdx := cb.utf8("count")
	fieldDescIdx := cb.utf8("I")

	attrNameIdx := cb.utf8(attrRuntimeVisibleAnnotations)
	annTypeIdx := cb.utf8("LExample$Tag;")
	elemNameIdx := cb.utf8("value")
	fieldConstIdx := cb.integer(7)
	classConstIdx := cb.integer(42)

	var b classBuilder
	b.u4(classMagic)
	b.u2(0)
	b.u2(52)
	b.writeCP(cb)
	b.u2(0x0021)
	b.u2(thisIdx)
	b.u2(superIdx)
	b.u2(0) // interfaces

	b.u2(1) // fields_count
	b.u2(0x0002)
	b.u2(fieldNameIdx)
	b.u2(fieldDescIdx)
	b.u2(1) // attributes_count

	var fieldAttr classBuilder
	fieldAttr.u2(1) // num_annotations
	fieldAttr.u2(annTypeIdx)
	fieldAttr.u2(1) // num_element_value_pairs
	fieldAttr.u2(elemNameIdx)
	fieldAttr.u1('I')
	fieldAttr.u2(fieldConstIdx)

	b.u2(attrNameIdx)
	b.u4(uint32(len(fieldAttr.buf)))
	b.bytes(fieldAttr.buf)

	b.u2(0) // methods_count

	b.u2(1) // class attributes_count

	var classAttr classBuilder
	classAttr.u2(1) // num_annotations
	classAttr.u2(annTypeIdx)
	classAttr.u2(1) // num_element_value_pairs
	classAttr.u2(elemNameIdx)
	classAttr.u1('I')
	classAttr.u2(classConstIdx)

	b.u2(attrNameIdx)
	b.u4(uint32(len(classAttr.buf)))
	b.bytes(classAttr.buf)

	return b.buf
}

// TestReadClassEmitsClassLevelAnnotationsBeforeMembers pins the order
// ReadClass must produce for a type carrying both a class-level and a
// field-level instance of the same annotation: the class-level instance
// first, matching the order later lookups (Index.GetAnnotations) rely on.
func TestReadClassEmitsClassLevelAnnotationsBeforeMembers(t *testing.T) {
	data := buildClassWithClassAndFieldAnnotation(t)
	interner := dotted.NewInterner()

	class, anns, err := ReadClass(data, interner)
	require.NoError(t, err)
	require.Len(t, anns, 2)

	require.NotNil(t, anns[0].Target)
	assert.Equal(t, TargetClass, anns[0].Target.Kind)
	v, ok := anns[0].Value("value")
	require.True(t, ok)
	n, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(42), n)

	require.NotNil(t, anns[1].Target)
	assert.Equal(t, TargetField, anns[1].Target.Kind)
	require.Len(t, class.Fields, 1)
	assert.Same(t, class.Fields[0], anns[1].Target.Field)
}

func TestReadClassFieldAnnotation(t *testing.T) {
	data := buildClassWithFieldAnnotation(t)
	interner := dotted.NewInterner()

	class, anns, err := ReadClass(data, interner)
	require.NoError(t, err)
	require.Len(t, class.Fields, 1)
	require.Len(t, anns, 1)

	a := anns[0]
	assert.Equal(t, "Example$Tag", a.Type.String())
	require.NotNil(t, a.Target)
	assert.Equal(t, TargetField, a.Target.Kind)
	assert.Same(t, class.Fields[0], a.Target.Field)

	v, ok := a.Value("value")
	require.True(t, ok)
	n, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(7), n)
}
