package index

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"jandex/classfile"
)

// PrintAnnotations writes a diagnostic dump of every annotation this
// index recorded to w: an "annotation-type:" header per distinct
// annotation type (sorted for reproducible output), one indented
// "Class:|Field:|Method:|Parameter: <target>" line per instance, and
// an optional parenthesized "(name = value, ...)" line when the
// instance carries values.
func (idx *Index) PrintAnnotations(w io.Writer) {
	types := make([]string, 0, len(idx.annotations))
	for t := range idx.annotations {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		fmt.Fprintf(w, "%s:\n", t)
		list := idx.annotations[t]
		for i := 0; i < list.Len(); i++ {
			a := list.At(i)
			fmt.Fprintf(w, "    %s\n", renderTarget(a.Target))
			if len(a.Values) > 0 {
				fmt.Fprintf(w, "        (%s)\n", renderValuePairs(a.Values))
			}
		}
	}
}

// PrintSubclasses writes a "superclass:" header per distinct
// superclass name (sorted) followed by an indented line per direct
// subclass name, in scan order.
func (idx *Index) PrintSubclasses(w io.Writer) {
	supers := make([]string, 0, len(idx.subclasses))
	for s := range idx.subclasses {
		supers = append(supers, s)
	}
	sort.Strings(supers)

	for _, s := range supers {
		fmt.Fprintf(w, "%s:\n", s)
		list := idx.subclasses[s]
		for i := 0; i < list.Len(); i++ {
			fmt.Fprintf(w, "    %s\n", list.At(i).Name.String())
		}
	}
}

// jsonAnnotation is the "format: json" rendering of one annotation
// instance: the same information PrintAnnotations prints as text.
type jsonAnnotation struct {
	Target string            `json:"target"`
	Values map[string]string `json:"values,omitempty"`
}

// jsonDump is the top-level "format: json" document, mirroring
// PrintAnnotations and PrintSubclasses' grouping.
type jsonDump struct {
	Annotations map[string][]jsonAnnotation `json:"annotations"`
	Subclasses  map[string][]string         `json:"subclasses"`
}

// PrintJSON writes the same annotation and subclass data as
// PrintAnnotations/PrintSubclasses, as a single indented JSON document.
func (idx *Index) PrintJSON(w io.Writer) error {
	dump := jsonDump{
		Annotations: make(map[string][]jsonAnnotation, len(idx.annotations)),
		Subclasses:  make(map[string][]string, len(idx.subclasses)),
	}

	for t, list := range idx.annotations {
		entries := make([]jsonAnnotation, 0, list.Len())
		for i := 0; i < list.Len(); i++ {
			a := list.At(i)
			values := make(map[string]string, len(a.Values))
			for _, v := range a.Values {
				values[v.Name] = renderValue(v)
			}
			entries = append(entries, jsonAnnotation{Target: renderTarget(a.Target), Values: values})
		}
		dump.Annotations[t] = entries
	}

	for s, list := range idx.subclasses {
		names := make([]string, 0, list.Len())
		for i := 0; i < list.Len(); i++ {
			names = append(names, list.At(i).Name.String())
		}
		dump.Subclasses[s] = names
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}

func renderTarget(t *classfile.Target) string {
	if t == nil {
		return "(nested, no target)"
	}
	switch t.Kind {
	case classfile.TargetClass:
		return "Class: " + t.Class.Name.String()
	case classfile.TargetField:
		return fmt.Sprintf("Field: %s.%s", t.Field.Owner.Name.String(), t.Field.Name)
	case classfile.TargetMethod:
		return fmt.Sprintf("Method: %s.%s", t.Method.Owner.Name.String(), t.Method.Name)
	case classfile.TargetParameter:
		return fmt.Sprintf("Parameter: %s.%s(%d)", t.Method.Owner.Name.String(), t.Method.Name, t.ParamIndex)
	default:
		return "(unknown target)"
	}
}

// renderTypeName renders a Class-value's element type name. Name is
// only populated for KindClass; primitive and void class literals
// (e.g. int.class, void.class) carry their identity in Kind/Prim
// instead, so those are rendered from there.
func renderTypeName(t classfile.Type) string {
	switch t.Kind {
	case classfile.KindClass:
		return t.Name.String()
	case classfile.KindVoid:
		return "void"
	default:
		return primitiveNames[t.Prim]
	}
}

var primitiveNames = map[classfile.Primitive]string{
	classfile.PrimByte:    "byte",
	classfile.PrimShort:   "short",
	classfile.PrimInt:     "int",
	classfile.PrimLong:    "long",
	classfile.PrimChar:    "char",
	classfile.PrimFloat:   "float",
	classfile.PrimDouble:  "double",
	classfile.PrimBoolean: "boolean",
}

func renderValuePairs(values []classfile.Value) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%s = %s", v.Name, renderValue(v)))
	}
	return strings.Join(parts, ", ")
}

func renderValue(v classfile.Value) string {
	switch v.Kind {
	case classfile.VString:
		s, _ := v.AsString()
		return fmt.Sprintf("%q", s)
	case classfile.VClass:
		t, _ := v.AsClass()
		return renderTypeName(t) + strings.Repeat("[]", t.ArrayDim)
	case classfile.VEnum:
		typeName, constName, _ := v.AsEnum()
		return typeName.String() + "." + constName
	case classfile.VNested:
		n, _ := v.AsNested()
		return fmt.Sprintf("@%s(%s)", n.Type.String(), renderValuePairs(n.Values))
	case classfile.VArray:
		elems, _ := v.AsArray()
		parts := make([]string, 0, len(elems))
		for _, e := range elems {
			parts = append(parts, renderValue(e))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case classfile.VBoolean:
		b, _ := v.AsBoolean()
		return fmt.Sprintf("%t", b)
	case classfile.VFloat:
		f, _ := v.AsFloat()
		return fmt.Sprintf("%g", f)
	case classfile.VDouble:
		d, _ := v.AsDouble()
		return fmt.Sprintf("%g", d)
	default:
		n, _ := v.AsLong()
		return fmt.Sprintf("%d", n)
	}
}
