package index

import "jandex/classfile"

// Index is the frozen, read-only product of a Builder. Every map and
// every List it hands out is immutable; concurrent readers need no
// locking.
type Index struct {
	classes      map[string]*classfile.ClassDescriptor
	subclasses   map[string]List[*classfile.ClassDescriptor]
	implementors map[string]List[*classfile.ClassDescriptor]
	annotations  map[string]List[*classfile.Annotation]
}

// GetAnnotations returns every annotation instance of the given
// (dotted, fully-qualified) annotation type name, in scan order. The
// returned List is empty, never nil, when name was never seen.
func (idx *Index) GetAnnotations(name string) List[*classfile.Annotation] {
	return idx.annotations[name]
}

// GetKnownDirectSubclasses returns the direct subclasses of name
// observed during the scan. Transitive closure is the caller's
// responsibility.
func (idx *Index) GetKnownDirectSubclasses(name string) List[*classfile.ClassDescriptor] {
	return idx.subclasses[name]
}

// GetKnownDirectImplementors returns the classes (or interfaces) whose
// interfaces[] table named the given interface. An interface I1 that
// extends I2 is recorded here under I2, not under subclasses.
func (idx *Index) GetKnownDirectImplementors(name string) List[*classfile.ClassDescriptor] {
	return idx.implementors[name]
}

// GetClassByName returns the scanned ClassDescriptor for name, if any.
func (idx *Index) GetClassByName(name string) (*classfile.ClassDescriptor, bool) {
	c, ok := idx.classes[name]
	return c, ok
}

// GetKnownClasses returns every scanned class descriptor. Order is
// unspecified across map iteration; callers needing scan order should
// instead use the per-relation Lists.
func (idx *Index) GetKnownClasses() []*classfile.ClassDescriptor {
	out := make([]*classfile.ClassDescriptor, 0, len(idx.classes))
	for _, c := range idx.classes {
		out = append(out, c)
	}
	return out
}
