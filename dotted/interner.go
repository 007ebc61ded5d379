package dotted

import "strings"

// componentKey identifies a single (parent, local) pair in the intern
// table. The root level uses a nil parent.
type componentKey struct {
	parent *Name
	local  string
}

// Interner canonicalizes qualified names into shared, component-decomposed
// Name nodes. It is scoped to one index build: construct one per Builder,
// populate it monotonically while classes are read, and discard it once
// the build is frozen. An Interner is not safe for concurrent writers;
// the build phase is single-writer per the core's concurrency model.
type Interner struct {
	components map[componentKey]*Name
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{components: make(map[componentKey]*Name)}
}

// InternComponent composes parent and local into a canonical, shared Name
// node, reusing an existing node if this exact (parent, local) pair has
// already been interned. This is the direct composition path used while
// parsing internal (slash-delimited) names from a class file's constant
// pool, avoiding a re-split of strings that already arrive pre-split.
func (in *Interner) InternComponent(parent *Name, local string) *Name {
	key := componentKey{parent: parent, local: local}
	if n, ok := in.components[key]; ok {
		return n
	}
	n := &Name{parent: parent, local: local}
	in.components[key] = n
	return n
}

// Intern splits flat on "." and returns the component-shared chain,
// reusing existing nodes from the intern table wherever a prefix has
// already been seen. Interning is idempotent: repeated calls with the
// same flat string return the same *Name.
func (in *Interner) Intern(flat string) *Name {
	if flat == "" {
		return nil
	}
	var cur *Name
	for _, part := range strings.Split(flat, ".") {
		cur = in.InternComponent(cur, part)
	}
	return cur
}

// InternInternal interns a slash-delimited internal class name (as found
// in the constant pool's Class entries, e.g. "java/lang/String"),
// composing directly via InternComponent rather than re-splitting an
// already-dotted string.
func (in *Interner) InternInternal(internalName string) *Name {
	if internalName == "" {
		return nil
	}
	var cur *Name
	for _, part := range strings.Split(internalName, "/") {
		cur = in.InternComponent(cur, part)
	}
	return cur
}

// RenderDotted walks n's parent chain, concatenating components with ".".
// It is equivalent to n.String() and is provided as a standalone function
// per the interner's documented contract.
func RenderDotted(n *Name) string {
	return n.String()
}
