package classfile

import "fmt"

// MalformedClassFileError is returned whenever a class file cannot be
// parsed because it violates the JVMS §4 binary format: a bad magic
// number, an unknown constant-pool tag, a reserved Long/Double slot
// read as if live, a tag-to-accessor mismatch, an illegal MUTF-8
// sequence, a bad type descriptor, or an attribute shorter than its
// declared payload requires.
type MalformedClassFileError struct {
	Reason string
}

func (e *MalformedClassFileError) Error() string {
	return "malformed class file: " + e.Reason
}

func malformed(format string, args ...interface{}) error {
	return &MalformedClassFileError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidAnnotationValueAccessError is returned by a Value accessor when
// called against a value of the wrong kind (e.g. AsInt on a string
// value). This is a contract error at the read surface, not a parse
// error; the index and the value it came from remain valid.
type InvalidAnnotationValueAccessError struct {
	Want ValueKind
	Have ValueKind
}

func (e *InvalidAnnotationValueAccessError) Error() string {
	return fmt.Sprintf("invalid annotation value access: want %s, have %s", e.Want, e.Have)
}
