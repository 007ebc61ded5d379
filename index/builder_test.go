package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jandex/classfile"
	"jandex/dotted"
)

func classNamed(in *dotted.Interner, name string, super string, ifaces ...string) *classfile.ClassDescriptor {
	c := &classfile.ClassDescriptor{Name: in.Intern(name)}
	if super != "" {
		c.Super = in.Intern(super)
	}
	for _, i := range ifaces {
		c.Interfaces = append(c.Interfaces, in.Intern(i))
	}
	return c
}

func TestBuilderSubclassAndImplementorEdges(t *testing.T) {
	in := dotted.NewInterner()
	a := classNamed(in, "pkg.A", "pkg.B", "pkg.I")

	b := NewBuilder(Strict)
	require.NoError(t, b.Append(a, nil))

	idx := b.Build()
	subs := idx.GetKnownDirectSubclasses("pkg.B")
	require.Equal(t, 1, subs.Len())
	assert.Same(t, a, subs.At(0))

	impls := idx.GetKnownDirectImplementors("pkg.I")
	require.Equal(t, 1, impls.Len())
	assert.Same(t, a, impls.At(0))

	assert.Equal(t, 0, idx.GetAnnotations("pkg.Ann").Len())

	got, ok := idx.GetClassByName("pkg.A")
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestBuilderClassLevelAndFieldAnnotations(t *testing.T) {
	in := dotted.NewInterner()
	a := classNamed(in, "pkg.A", "pkg.B")
	field := &classfile.FieldDescriptor{Owner: a, Name: "f"}
	a.Fields = []*classfile.FieldDescriptor{field}

	classAnn := &classfile.Annotation{
		Type:   in.Intern("pkg.Ann"),
		Target: classfile.NewClassTarget(a),
		Values: []classfile.Value{
			classfile.NewIntValue("x", 42),
			classfile.NewStringValue("name", "hi"),
		},
	}
	fieldAnn := &classfile.Annotation{
		Type:   in.Intern("pkg.Ann"),
		Target: classfile.NewFieldTarget(field),
	}

	b := NewBuilder(Strict)
	require.NoError(t, b.Append(a, []*classfile.Annotation{classAnn, fieldAnn}))

	idx := b.Build()
	list := idx.GetAnnotations("pkg.Ann")
	require.Equal(t, 2, list.Len())

	first := list.At(0)
	assert.Equal(t, classfile.TargetClass, first.Target.Kind)
	assert.Same(t, a, first.Target.Class)
	require.Len(t, first.Values, 2)
	n, err := first.Values[0].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(42), n)

	second := list.At(1)
	assert.Equal(t, classfile.TargetField, second.Target.Kind)
	assert.Same(t, field, second.Target.Field)
	assert.Empty(t, second.Values)
}

func TestBuilderParameterAnnotations(t *testing.T) {
	in := dotted.NewInterner()
	a := classNamed(in, "pkg.A", "")
	m := &classfile.MethodDescriptor{Owner: a, Name: "m"}
	a.Methods = []*classfile.MethodDescriptor{m}

	anns := []*classfile.Annotation{
		{Type: in.Intern("pkg.Q"), Target: classfile.NewParameterTarget(m, 0)},
		{Type: in.Intern("pkg.R"), Target: classfile.NewParameterTarget(m, 1)},
		{Type: in.Intern("pkg.Q"), Target: classfile.NewParameterTarget(m, 1)},
	}

	b := NewBuilder(Strict)
	require.NoError(t, b.Append(a, anns))
	idx := b.Build()

	qList := idx.GetAnnotations("pkg.Q")
	require.Equal(t, 2, qList.Len())
	assert.Equal(t, 0, qList.At(0).Target.ParamIndex)
	assert.Equal(t, 1, qList.At(1).Target.ParamIndex)

	rList := idx.GetAnnotations("pkg.R")
	require.Equal(t, 1, rList.Len())
	assert.Equal(t, 1, rList.At(0).Target.ParamIndex)
}

func TestBuilderStrictDuplicateClassFails(t *testing.T) {
	in := dotted.NewInterner()
	first := classNamed(in, "pkg.A", "")
	second := classNamed(in, "pkg.A", "")

	b := NewBuilder(Strict)
	require.NoError(t, b.Append(first, nil))
	err := b.Append(second, nil)
	require.Error(t, err)

	var dup *DuplicateClassError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "pkg.A", dup.Name)
}

func TestBuilderLenientDuplicateClassReplaces(t *testing.T) {
	in := dotted.NewInterner()
	first := classNamed(in, "pkg.A", "")
	second := classNamed(in, "pkg.A", "")

	b := NewBuilder(Lenient)
	require.NoError(t, b.Append(first, nil))
	require.NoError(t, b.Append(second, nil))
	assert.Equal(t, 1, b.Replacements())

	idx := b.Build()
	got, ok := idx.GetClassByName("pkg.A")
	require.True(t, ok)
	assert.Same(t, second, got)
}
