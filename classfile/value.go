package classfile

import "jandex/dotted"

// ValueKind discriminates the tagged variant of an annotation Value.
// It is distinct from Type's Kind, which classifies field/method/class
// types rather than annotation element values.
type ValueKind int

const (
	VByte ValueKind = iota
	VShort
	VInt
	VLong
	VChar
	VFloat
	VDouble
	VBoolean
	VString
	VClass
	VEnum
	VNested
	VArray
)

func (k ValueKind) String() string {
	switch k {
	case VByte:
		return "byte"
	case VShort:
		return "short"
	case VInt:
		return "int"
	case VLong:
		return "long"
	case VChar:
		return "char"
	case VFloat:
		return "float"
	case VDouble:
		return "double"
	case VBoolean:
		return "boolean"
	case VString:
		return "string"
	case VClass:
		return "class"
	case VEnum:
		return "enum"
	case VNested:
		return "nested"
	case VArray:
		return "array"
	default:
		return "unknown"
	}
}

func (k ValueKind) isNumeric() bool {
	switch k {
	case VByte, VShort, VInt, VLong, VChar, VFloat, VDouble:
		return true
	default:
		return false
	}
}

// Value is an immutable, tagged annotation element value. Name is the
// annotation parameter name, or "" when the value is an element of an
// enclosing array.
//
// Integral kinds (byte, short, int, long, char, boolean) are stored
// exactly in numI; long in particular needs the full 64 bits of
// precision a float64 cannot carry. Float and double are stored in
// numF. Widening/narrowing between the two representations happens in
// the accessors, not at construction time.
type Value struct {
	Name string
	Kind ValueKind

	numI int64   // VByte, VShort, VInt, VLong, VChar, VBoolean
	numF float64 // VFloat, VDouble

	str string // VString

	cls Type // VClass

	enumType  *dotted.Name // VEnum
	enumConst string       // VEnum

	nested *Annotation // VNested

	arr []Value // VArray
}

func newIntegral(name string, kind ValueKind, v int64) Value {
	return Value{Name: name, Kind: kind, numI: v}
}

func newFloating(name string, kind ValueKind, v float64) Value {
	return Value{Name: name, Kind: kind, numF: v}
}

// NewByteValue constructs a byte-kinded Value.
func NewByteValue(name string, v int8) Value { return newIntegral(name, VByte, int64(v)) }

// NewShortValue constructs a short-kinded Value.
func NewShortValue(name string, v int16) Value { return newIntegral(name, VShort, int64(v)) }

// NewIntValue constructs an int-kinded Value.
func NewIntValue(name string, v int32) Value { return newIntegral(name, VInt, int64(v)) }

// NewLongValue constructs a long-kinded Value, preserving the full
// 64-bit value exactly.
func NewLongValue(name string, v int64) Value { return newIntegral(name, VLong, v) }

// NewCharValue constructs a char-kinded Value.
func NewCharValue(name string, v uint16) Value { return newIntegral(name, VChar, int64(v)) }

// NewFloatValue constructs a float-kinded Value.
func NewFloatValue(name string, v float32) Value { return newFloating(name, VFloat, float64(v)) }

// NewDoubleValue constructs a double-kinded Value. The original this
// design is drawn from spells this constructor "createDouleValue"
// (sic); jandex uses the correct spelling throughout.
func NewDoubleValue(name string, v float64) Value { return newFloating(name, VDouble, v) }

// NewBooleanValue constructs a boolean-kinded Value.
func NewBooleanValue(name string, v bool) Value {
	n := int64(0)
	if v {
		n = 1
	}
	return newIntegral(name, VBoolean, n)
}

// NewStringValue constructs a string-kinded Value.
func NewStringValue(name, v string) Value {
	return Value{Name: name, Kind: VString, str: v}
}

// NewClassValue constructs a class-kinded Value wrapping a Type.
func NewClassValue(name string, t Type) Value {
	return Value{Name: name, Kind: VClass, cls: t}
}

// NewEnumValue constructs an enum-kinded Value.
func NewEnumValue(name string, typeName *dotted.Name, constName string) Value {
	return Value{Name: name, Kind: VEnum, enumType: typeName, enumConst: constName}
}

// NewNestedValue constructs a nested-annotation-kinded Value.
func NewNestedValue(name string, a *Annotation) Value {
	return Value{Name: name, Kind: VNested, nested: a}
}

// NewArrayValue constructs an array-kinded Value wrapping an ordered,
// homogeneous (per JLS, except for the empty case) sequence of values.
func NewArrayValue(name string, elems []Value) Value {
	return Value{Name: name, Kind: VArray, arr: elems}
}

func (v Value) invalidAccess(want ValueKind) error {
	return &InvalidAnnotationValueAccessError{Want: want, Have: v.Kind}
}

// asInt64 returns the value's exact integral representation, going
// through numI directly for integral kinds (so a long round-trips
// exactly) and truncating a float/double toward zero otherwise, the
// way a Java numeric cast does.
func (v Value) asInt64() int64 {
	switch v.Kind {
	case VFloat, VDouble:
		return int64(v.numF)
	default:
		return v.numI
	}
}

// asFloat64 returns the value's floating-point representation, widening
// an integral kind to float64 exactly for anything that fits (a long
// outside float64's 53-bit mantissa loses precision here, matching
// Java's own long -> double widening conversion).
func (v Value) asFloat64() float64 {
	switch v.Kind {
	case VFloat, VDouble:
		return v.numF
	default:
		return float64(v.numI)
	}
}

// AsByte returns the value narrowed to byte. Succeeds for any numeric
// kind except boolean, truncating toward zero the way a Java numeric
// cast does.
func (v Value) AsByte() (int8, error) {
	if !v.Kind.isNumeric() {
		return 0, v.invalidAccess(VByte)
	}
	return int8(v.asInt64()), nil
}

// AsShort returns the value narrowed to short.
func (v Value) AsShort() (int16, error) {
	if !v.Kind.isNumeric() {
		return 0, v.invalidAccess(VShort)
	}
	return int16(v.asInt64()), nil
}

// AsInt returns the value narrowed to int32: double/float -> int
// truncates toward zero, matching a Java numeric cast.
func (v Value) AsInt() (int32, error) {
	if !v.Kind.isNumeric() {
		return 0, v.invalidAccess(VInt)
	}
	return int32(v.asInt64()), nil
}

// AsLong returns the value widened to int64. For VLong this is the
// exact stored value, with no detour through a floating-point type.
func (v Value) AsLong() (int64, error) {
	if !v.Kind.isNumeric() {
		return 0, v.invalidAccess(VLong)
	}
	return v.asInt64(), nil
}

// AsChar returns the value narrowed to a UTF-16 code unit.
func (v Value) AsChar() (uint16, error) {
	if !v.Kind.isNumeric() {
		return 0, v.invalidAccess(VChar)
	}
	return uint16(v.asInt64()), nil
}

// AsFloat returns the value widened/narrowed to float32.
func (v Value) AsFloat() (float32, error) {
	if !v.Kind.isNumeric() {
		return 0, v.invalidAccess(VFloat)
	}
	return float32(v.asFloat64()), nil
}

// AsDouble returns the value widened to float64.
func (v Value) AsDouble() (float64, error) {
	if !v.Kind.isNumeric() {
		return 0, v.invalidAccess(VDouble)
	}
	return v.asFloat64(), nil
}

// AsBoolean returns the underlying boolean. Unlike the other numeric
// accessors, boolean does not participate in widening with the other
// seven numeric kinds, mirroring Java's own prohibition on
// boolean<->numeric casts.
func (v Value) AsBoolean() (bool, error) {
	if v.Kind != VBoolean {
		return false, v.invalidAccess(VBoolean)
	}
	return v.numI != 0, nil
}

// AsString returns the underlying string.
func (v Value) AsString() (string, error) {
	if v.Kind != VString {
		return "", v.invalidAccess(VString)
	}
	return v.str, nil
}

// AsClass returns the underlying Type.
func (v Value) AsClass() (Type, error) {
	if v.Kind != VClass {
		return Type{}, v.invalidAccess(VClass)
	}
	return v.cls, nil
}

// AsEnum returns the enum's type name and constant name.
func (v Value) AsEnum() (typeName *dotted.Name, constName string, err error) {
	if v.Kind != VEnum {
		return nil, "", v.invalidAccess(VEnum)
	}
	return v.enumType, v.enumConst, nil
}

// AsNested returns the wrapped nested annotation instance.
func (v Value) AsNested() (*Annotation, error) {
	if v.Kind != VNested {
		return nil, v.invalidAccess(VNested)
	}
	return v.nested, nil
}

// AsArray returns the wrapped ordered sequence of values.
func (v Value) AsArray() ([]Value, error) {
	if v.Kind != VArray {
		return nil, v.invalidAccess(VArray)
	}
	return v.arr, nil
}
