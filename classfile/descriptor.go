package classfile

import "jandex/dotted"

// ClassDescriptor is the parsed shape of one class file: its identity,
// inheritance edges, and ordered member lists. Each ClassDescriptor is
// the sole owner of the annotation-target slot referenced by any
// Annotation attached to it, to one of its Fields, or to one of its
// Methods.
type ClassDescriptor struct {
	Name        *dotted.Name
	Super       *dotted.Name // nil only for java.lang.Object
	Interfaces  []*dotted.Name
	AccessFlags uint16
	Fields      []*FieldDescriptor
	Methods     []*MethodDescriptor
}

// FieldDescriptor describes one field declared directly on a class.
type FieldDescriptor struct {
	Owner       *ClassDescriptor
	Name        string
	Type        Type
	AccessFlags uint16
}

// MethodDescriptor describes one method (or constructor) declared
// directly on a class.
type MethodDescriptor struct {
	Owner       *ClassDescriptor
	Name        string
	Return      Type
	Params      []Type
	AccessFlags uint16
}

// Access flag bits, mirrored verbatim from JVMS §4.1/§4.5/§4.6 — the
// reader passes these through without interpreting them beyond storage.
const (
	AccPublic       uint16 = 0x0001
	AccPrivate      uint16 = 0x0002
	AccProtected    uint16 = 0x0004
	AccStatic       uint16 = 0x0008
	AccFinal        uint16 = 0x0010
	AccSuper        uint16 = 0x0020
	AccSynchronized uint16 = 0x0020
	AccVolatile     uint16 = 0x0040
	AccBridge       uint16 = 0x0040
	AccTransient    uint16 = 0x0080
	AccVarargs      uint16 = 0x0080
	AccNative       uint16 = 0x0100
	AccInterface    uint16 = 0x0200
	AccAbstract     uint16 = 0x0400
	AccStrict       uint16 = 0x0800
	AccSynthetic    uint16 = 0x1000
	AccAnnotation   uint16 = 0x2000
	AccEnum         uint16 = 0x4000
	AccModule       uint16 = 0x8000
)
