// Package dotted canonicalizes Java fully-qualified names into shared,
// component-decomposed nodes. A Name is either a component-shared node,
// reused across every qualified name that passes through the same
// Interner and shares a prefix, or a simple leaf built directly from a
// flat string without going through the intern chain.
package dotted

import "strings"

// Name represents a Java qualified name such as "java.lang.String".
// Names are immutable once constructed and safe for concurrent reads.
type Name struct {
	parent *Name
	local  string

	// simple is true for a Name built by NewSimple, bypassing the
	// component chain. Equality and hashing still compare by rendered
	// dotted form, so simple and component-shared names interoperate.
	simple bool
	flat   string
}

// NewSimple wraps a flat dotted string without interning it. Useful for
// one-off names that do not need to be shared across a build (e.g. a
// sentinel or a name constructed outside of any Interner).
func NewSimple(flat string) *Name {
	return &Name{simple: true, flat: flat}
}

// String renders the fully dotted form of the name, e.g. "java.lang.String".
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	if n.simple {
		return n.flat
	}
	if n.parent == nil {
		return n.local
	}
	return n.parent.String() + "." + n.local
}

// Local returns the last component of the name, e.g. "String" for
// "java.lang.String".
func (n *Name) Local() string {
	if n == nil {
		return ""
	}
	if n.simple {
		if i := strings.LastIndexByte(n.flat, '.'); i >= 0 {
			return n.flat[i+1:]
		}
		return n.flat
	}
	return n.local
}

// Equal reports structural equality: two names are equal iff their
// rendered dotted forms match, regardless of whether either was built
// via the interner or via NewSimple.
func (n *Name) Equal(o *Name) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	return n.String() == o.String()
}
