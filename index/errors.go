package index

import "fmt"

// DuplicateClassError is returned by Builder.Append in strict mode when
// two class files declare the same canonical name within one build.
type DuplicateClassError struct {
	Name string
}

func (e *DuplicateClassError) Error() string {
	return fmt.Sprintf("duplicate class %q within one index build", e.Name)
}
