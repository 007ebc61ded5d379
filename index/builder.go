package index

import "jandex/classfile"

// Mode selects how Builder.Append reacts to a duplicate class name.
type Mode int

const (
	// Strict fails the build the first time two class files declare the
	// same canonical name.
	Strict Mode = iota
	// Lenient lets the later class file's descriptor replace the
	// earlier one, counting the replacement instead of failing.
	Lenient
)

// Builder accumulates per-class results across many class-file reads
// and freezes them into an Index. It is single-writer: the caller may
// run independent Builders over disjoint class subsets concurrently
// and merge the resulting Indexes itself, but one Builder must not be
// mutated from more than one goroutine at a time.
type Builder struct {
	mode Mode

	classes      map[string]*classfile.ClassDescriptor
	subclasses   map[string][]*classfile.ClassDescriptor
	implementors map[string][]*classfile.ClassDescriptor
	annotations  map[string][]*classfile.Annotation

	replacements int
}

// NewBuilder returns an empty Builder operating under mode.
func NewBuilder(mode Mode) *Builder {
	return &Builder{
		mode:         mode,
		classes:      make(map[string]*classfile.ClassDescriptor),
		subclasses:   make(map[string][]*classfile.ClassDescriptor),
		implementors: make(map[string][]*classfile.ClassDescriptor),
		annotations:  make(map[string][]*classfile.Annotation),
	}
}

// Append records one class file's parse result. In Strict mode, a
// class name already present in this build is a DuplicateClassError.
// In Lenient mode the new descriptor replaces the old one and the
// replacement is counted, visible via Replacements.
func (b *Builder) Append(class *classfile.ClassDescriptor, anns []*classfile.Annotation) error {
	name := class.Name.String()
	if _, exists := b.classes[name]; exists {
		if b.mode == Strict {
			return &DuplicateClassError{Name: name}
		}
		b.replacements++
	}
	b.classes[name] = class

	if class.Super != nil {
		superName := class.Super.String()
		b.subclasses[superName] = append(b.subclasses[superName], class)
	}

	for _, iface := range class.Interfaces {
		ifaceName := iface.String()
		b.implementors[ifaceName] = append(b.implementors[ifaceName], class)
	}

	for _, a := range anns {
		typeName := a.Type.String()
		b.annotations[typeName] = append(b.annotations[typeName], a)
	}

	return nil
}

// Replacements returns how many times a later Append in Lenient mode
// replaced an earlier class of the same name.
func (b *Builder) Replacements() int { return b.replacements }

// Build freezes the accumulated maps into an immutable Index and
// relinquishes the Builder's ownership of them. The Builder must not
// be used again afterward.
func (b *Builder) Build() *Index {
	idx := &Index{
		classes:      make(map[string]*classfile.ClassDescriptor, len(b.classes)),
		subclasses:   make(map[string]List[*classfile.ClassDescriptor], len(b.subclasses)),
		implementors: make(map[string]List[*classfile.ClassDescriptor], len(b.implementors)),
		annotations:  make(map[string]List[*classfile.Annotation], len(b.annotations)),
	}
	for k, v := range b.classes {
		idx.classes[k] = v
	}
	for k, v := range b.subclasses {
		idx.subclasses[k] = newList(append([]*classfile.ClassDescriptor(nil), v...))
	}
	for k, v := range b.implementors {
		idx.implementors[k] = newList(append([]*classfile.ClassDescriptor(nil), v...))
	}
	for k, v := range b.annotations {
		idx.annotations[k] = newList(append([]*classfile.Annotation(nil), v...))
	}
	return idx
}
