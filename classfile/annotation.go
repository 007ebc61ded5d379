package classfile

import "jandex/dotted"

// TargetKind discriminates what kind of program element an Annotation
// is attached to.
type TargetKind int

const (
	TargetClass TargetKind = iota
	TargetField
	TargetMethod
	TargetParameter
)

func (k TargetKind) String() string {
	switch k {
	case TargetClass:
		return "class"
	case TargetField:
		return "field"
	case TargetMethod:
		return "method"
	case TargetParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Target is a tagged union identifying the exact program element an
// Annotation decorates. Exactly one of Class, Field, Method is non-nil,
// selected by Kind; ParamIndex is additionally populated when
// Kind == TargetParameter, naming the zero-based parameter position
// within Method's descriptor.
type Target struct {
	Kind TargetKind

	Class  *ClassDescriptor
	Field  *FieldDescriptor
	Method *MethodDescriptor

	ParamIndex int
}

// NewClassTarget builds a Target pointing at a class declaration.
func NewClassTarget(c *ClassDescriptor) *Target {
	return &Target{Kind: TargetClass, Class: c}
}

// NewFieldTarget builds a Target pointing at a field declaration.
func NewFieldTarget(f *FieldDescriptor) *Target {
	return &Target{Kind: TargetField, Field: f}
}

// NewMethodTarget builds a Target pointing at a method declaration.
func NewMethodTarget(m *MethodDescriptor) *Target {
	return &Target{Kind: TargetMethod, Method: m}
}

// NewParameterTarget builds a Target pointing at one formal parameter
// of a method.
func NewParameterTarget(m *MethodDescriptor, paramIndex int) *Target {
	return &Target{Kind: TargetParameter, Method: m, ParamIndex: paramIndex}
}

// Annotation is one parsed RuntimeVisible/InvisibleAnnotation (or
// parameter annotation) entry: the annotation interface it instantiates,
// the program element it decorates, and its element-value pairs in
// declaration order.
type Annotation struct {
	Type   *dotted.Name
	Target *Target
	Values []Value
}

// Value looks up a named element value, returning ok=false when the
// annotation has no such element (the caller should then fall back to
// the annotation interface's declared default, which this package does
// not resolve since it never loads the interface's own class file).
func (a *Annotation) Value(name string) (Value, bool) {
	for _, v := range a.Values {
		if v.Name == name {
			return v, true
		}
	}
	return Value{}, false
}
