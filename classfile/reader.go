package classfile

import "jandex/dotted"

const classMagic = 0xCAFEBABE

const (
	attrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	attrRuntimeInvisibleAnnotations           = "RuntimeInvisibleAnnotations"
	attrRuntimeVisibleParameterAnnotations    = "RuntimeVisibleParameterAnnotations"
	attrRuntimeInvisibleParameterAnnotations  = "RuntimeInvisibleParameterAnnotations"
)

// ReadClass parses one class file's bytes in a single pass, returning
// its structural descriptor and every annotation attached anywhere
// within it (on the class itself, its fields, its methods, or their
// parameters). interner is used to canonicalize every dotted name
// produced during the parse, so callers that share an interner across
// many calls get component-sharing across the whole set of classes.
func ReadClass(data []byte, interner *dotted.Interner) (*ClassDescriptor, []*Annotation, error) {
	c := newCursor(data)

	magic, err := c.u4()
	if err != nil {
		return nil, nil, err
	}
	if magic != classMagic {
		return nil, nil, malformed("bad magic number %#08x", magic)
	}

	if err := c.skip(2); err != nil { // minor_version
		return nil, nil, err
	}
	if err := c.skip(2); err != nil { // major_version
		return nil, nil, err
	}

	cp, err := parseConstantPool(c, interner)
	if err != nil {
		return nil, nil, err
	}

	accessFlags, err := c.u2()
	if err != nil {
		return nil, nil, err
	}

	thisClassIdx, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	thisName, err := cp.ReadClassName(thisClassIdx)
	if err != nil {
		return nil, nil, err
	}

	superClassIdx, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	var superName *dotted.Name
	if superClassIdx != 0 {
		superName, err = cp.ReadClassName(superClassIdx)
		if err != nil {
			return nil, nil, err
		}
	}

	ifaceCount, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	interfaces := make([]*dotted.Name, 0, ifaceCount)
	for i := uint16(0); i < ifaceCount; i++ {
		idx, err := c.u2()
		if err != nil {
			return nil, nil, err
		}
		n, err := cp.ReadClassName(idx)
		if err != nil {
			return nil, nil, err
		}
		interfaces = append(interfaces, n)
	}

	class := &ClassDescriptor{
		Name:        thisName,
		Super:       superName,
		Interfaces:  interfaces,
		AccessFlags: accessFlags,
	}

	var memberAnnotations []*Annotation

	fieldCount, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	class.Fields = make([]*FieldDescriptor, 0, fieldCount)
	for i := uint16(0); i < fieldCount; i++ {
		fd, anns, err := readMember(c, cp, interner, class, nil, false)
		if err != nil {
			return nil, nil, err
		}
		field := &FieldDescriptor{
			Owner:       class,
			Name:        fd.name,
			Type:        fd.fieldType,
			AccessFlags: fd.accessFlags,
		}
		class.Fields = append(class.Fields, field)
		retarget(anns, NewFieldTarget(field))
		memberAnnotations = append(memberAnnotations, anns...)
	}

	methodCount, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	class.Methods = make([]*MethodDescriptor, 0, methodCount)
	for i := uint16(0); i < methodCount; i++ {
		md, anns, err := readMember(c, cp, interner, class, nil, true)
		if err != nil {
			return nil, nil, err
		}
		method := &MethodDescriptor{
			Owner:       class,
			Name:        md.name,
			Return:      md.methodReturn,
			Params:      md.methodParams,
			AccessFlags: md.accessFlags,
		}
		class.Methods = append(class.Methods, method)
		retarget(anns, NewMethodTarget(method))
		memberAnnotations = append(memberAnnotations, anns...)

		// paramAnnotations is keyed 0..n-1; walk it by index so parameter
		// annotations come out in parameter order, not map order.
		for pIdx := 0; pIdx < len(md.paramAnnotations); pIdx++ {
			paramAnns := md.paramAnnotations[pIdx]
			retarget(paramAnns, NewParameterTarget(method, pIdx))
			memberAnnotations = append(memberAnnotations, paramAnns...)
		}
	}

	classAttrCount, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	classLevelAnns, err := readAttributes(c, cp, interner, classAttrCount)
	if err != nil {
		return nil, nil, err
	}
	retarget(classLevelAnns, NewClassTarget(class))

	// Class-level annotations are emitted ahead of field/method
	// annotations even though attributes[] is the last section of the
	// class file physically: the class itself is the first thing a
	// reader visits conceptually, and spec scenario S2 pins this order
	// (the class-level instance before the field-level one) for
	// annotations sharing the same type.
	annotations := append(classLevelAnns, memberAnnotations...)

	return class, annotations, nil
}

// retarget stamps every annotation in anns with target, used once the
// owning ClassDescriptor/FieldDescriptor/MethodDescriptor has been
// fully constructed.
func retarget(anns []*Annotation, target *Target) {
	for _, a := range anns {
		a.Target = target
	}
}

// member holds the fields common to field_info and method_info that
// readMember extracts before the caller builds the final descriptor
// (which needs an Owner back-reference readMember cannot supply).
type member struct {
	accessFlags uint16
	name        string

	fieldType Type // valid when isMethod == false

	methodParams []Type // valid when isMethod == true
	methodReturn Type

	paramAnnotations map[int][]*Annotation
}

func readMember(c *cursor, cp *ConstantPool, interner *dotted.Interner, _ *ClassDescriptor, _ *MethodDescriptor, isMethod bool) (*member, []*Annotation, error) {
	accessFlags, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	nameIdx, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	name, err := cp.ReadUTF8(nameIdx)
	if err != nil {
		return nil, nil, err
	}
	descIdx, err := c.u2()
	if err != nil {
		return nil, nil, err
	}
	descriptor, err := cp.ReadUTF8(descIdx)
	if err != nil {
		return nil, nil, err
	}

	m := &member{accessFlags: accessFlags, name: name}
	if isMethod {
		params, ret, err := parseMethodDescriptor(descriptor, interner)
		if err != nil {
			return nil, nil, err
		}
		m.methodParams = params
		m.methodReturn = ret
	} else {
		t, err := parseFieldType(descriptor, interner)
		if err != nil {
			return nil, nil, err
		}
		m.fieldType = t
	}

	attrCount, err := c.u2()
	if err != nil {
		return nil, nil, err
	}

	var anns []*Annotation
	m.paramAnnotations = make(map[int][]*Annotation)

	for i := uint16(0); i < attrCount; i++ {
		nameIdx, err := c.u2()
		if err != nil {
			return nil, nil, err
		}
		attrName, err := cp.ReadUTF8(nameIdx)
		if err != nil {
			return nil, nil, err
		}
		length, err := c.u4()
		if err != nil {
			return nil, nil, err
		}

		switch attrName {
		case attrRuntimeVisibleAnnotations, attrRuntimeInvisibleAnnotations:
			parsed, err := parseAnnotationsAttribute(c, cp, interner)
			if err != nil {
				return nil, nil, err
			}
			anns = append(anns, parsed...)

		case attrRuntimeVisibleParameterAnnotations, attrRuntimeInvisibleParameterAnnotations:
			perParam, err := parseParameterAnnotationsAttribute(c, cp, interner)
			if err != nil {
				return nil, nil, err
			}
			for idx, list := range perParam {
				m.paramAnnotations[idx] = append(m.paramAnnotations[idx], list...)
			}

		default:
			if err := c.skip(int(length)); err != nil {
				return nil, nil, err
			}
		}
	}

	return m, anns, nil
}

// readAttributes reads count top-level attribute_info entries,
// returning every annotation found among any RuntimeVisible/Invisible
// Annotations attribute and skipping all others.
func readAttributes(c *cursor, cp *ConstantPool, interner *dotted.Interner, count uint16) ([]*Annotation, error) {
	var anns []*Annotation
	for i := uint16(0); i < count; i++ {
		nameIdx, err := c.u2()
		if err != nil {
			return nil, err
		}
		attrName, err := cp.ReadUTF8(nameIdx)
		if err != nil {
			return nil, err
		}
		length, err := c.u4()
		if err != nil {
			return nil, err
		}

		switch attrName {
		case attrRuntimeVisibleAnnotations, attrRuntimeInvisibleAnnotations:
			parsed, err := parseAnnotationsAttribute(c, cp, interner)
			if err != nil {
				return nil, err
			}
			anns = append(anns, parsed...)
		default:
			if err := c.skip(int(length)); err != nil {
				return nil, err
			}
		}
	}
	return anns, nil
}

func parseAnnotationsAttribute(c *cursor, cp *ConstantPool, interner *dotted.Interner) ([]*Annotation, error) {
	count, err := c.u2()
	if err != nil {
		return nil, err
	}
	out := make([]*Annotation, 0, count)
	for i := uint16(0); i < count; i++ {
		a, err := parseAnnotation(c, cp, interner)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func parseParameterAnnotationsAttribute(c *cursor, cp *ConstantPool, interner *dotted.Interner) (map[int][]*Annotation, error) {
	numParams, err := c.u1()
	if err != nil {
		return nil, err
	}
	out := make(map[int][]*Annotation, numParams)
	for p := 0; p < int(numParams); p++ {
		anns, err := parseAnnotationsAttribute(c, cp, interner)
		if err != nil {
			return nil, err
		}
		out[p] = anns
	}
	return out, nil
}

// parseAnnotation parses one annotation structure per JVMS §4.7.16.
// The returned Annotation's Target is left nil; the caller fills it in
// once the owning descriptor exists.
func parseAnnotation(c *cursor, cp *ConstantPool, interner *dotted.Interner) (*Annotation, error) {
	typeIdx, err := c.u2()
	if err != nil {
		return nil, err
	}
	typeDescriptor, err := cp.ReadUTF8(typeIdx)
	if err != nil {
		return nil, err
	}
	typeRef, err := decodeClassValueType(typeDescriptor, interner)
	if err != nil {
		return nil, err
	}

	pairCount, err := c.u2()
	if err != nil {
		return nil, err
	}
	values := make([]Value, 0, pairCount)
	for i := uint16(0); i < pairCount; i++ {
		nameIdx, err := c.u2()
		if err != nil {
			return nil, err
		}
		elemName, err := cp.ReadUTF8(nameIdx)
		if err != nil {
			return nil, err
		}
		v, err := parseElementValue(c, cp, interner, elemName)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return &Annotation{Type: typeRef.Name, Values: values}, nil
}

// parseElementValue parses one element_value structure, tag-dispatched
// per JVMS §4.7.16.1. name is attached to the returned Value; pass ""
// for elements nested inside an array_value.
func parseElementValue(c *cursor, cp *ConstantPool, interner *dotted.Interner, name string) (Value, error) {
	tag, err := c.u1()
	if err != nil {
		return Value{}, err
	}

	switch tag {
	case 'B':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadInt(idx)
		if err != nil {
			return Value{}, err
		}
		return NewByteValue(name, int8(v)), nil

	case 'S':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadInt(idx)
		if err != nil {
			return Value{}, err
		}
		return NewShortValue(name, int16(v)), nil

	case 'I':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadInt(idx)
		if err != nil {
			return Value{}, err
		}
		return NewIntValue(name, v), nil

	case 'J':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadLong(idx)
		if err != nil {
			return Value{}, err
		}
		return NewLongValue(name, v), nil

	case 'C':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadInt(idx)
		if err != nil {
			return Value{}, err
		}
		return NewCharValue(name, uint16(v)), nil

	case 'F':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadFloat(idx)
		if err != nil {
			return Value{}, err
		}
		return NewFloatValue(name, v), nil

	case 'D':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadDouble(idx)
		if err != nil {
			return Value{}, err
		}
		return NewDoubleValue(name, v), nil

	case 'Z':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadInt(idx)
		if err != nil {
			return Value{}, err
		}
		return NewBooleanValue(name, v != 0), nil

	case 's':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		v, err := cp.ReadUTF8(idx)
		if err != nil {
			return Value{}, err
		}
		return NewStringValue(name, v), nil

	case 'c':
		idx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		descriptor, err := cp.ReadUTF8(idx)
		if err != nil {
			return Value{}, err
		}
		t, err := decodeClassValueType(descriptor, interner)
		if err != nil {
			return Value{}, err
		}
		return NewClassValue(name, t), nil

	case 'e':
		typeIdx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		constIdx, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		typeDescriptor, err := cp.ReadUTF8(typeIdx)
		if err != nil {
			return Value{}, err
		}
		t, err := decodeClassValueType(typeDescriptor, interner)
		if err != nil {
			return Value{}, err
		}
		constName, err := cp.ReadUTF8(constIdx)
		if err != nil {
			return Value{}, err
		}
		return NewEnumValue(name, t.Name, constName), nil

	case '@':
		nested, err := parseAnnotation(c, cp, interner)
		if err != nil {
			return Value{}, err
		}
		return NewNestedValue(name, nested), nil

	case '[':
		count, err := c.u2()
		if err != nil {
			return Value{}, err
		}
		elems := make([]Value, 0, count)
		for i := uint16(0); i < count; i++ {
			e, err := parseElementValue(c, cp, interner, "")
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, e)
		}
		return NewArrayValue(name, elems), nil

	default:
		return Value{}, malformed("unknown element_value tag %q", rune(tag))
	}
}
