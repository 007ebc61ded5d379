package main

import "testing"

func TestClassFileIncluded(t *testing.T) {
	defer func() {
		scanIncludeGlobs = nil
		scanExcludeGlobs = nil
	}()

	scanIncludeGlobs = nil
	scanExcludeGlobs = nil
	if !classFileIncluded("com/example/Foo.class") {
		t.Fatal("expected no filters to include everything")
	}

	scanIncludeGlobs = []string{"com/example/*.class"}
	scanExcludeGlobs = nil
	if !classFileIncluded("com/example/Foo.class") {
		t.Fatal("expected include glob to match")
	}
	if classFileIncluded("com/other/Bar.class") {
		t.Fatal("expected include glob to reject a non-matching entry")
	}

	scanIncludeGlobs = nil
	scanExcludeGlobs = []string{"*Test.class"}
	if classFileIncluded("FooTest.class") {
		t.Fatal("expected exclude glob to reject a matching entry")
	}
	if !classFileIncluded("Foo.class") {
		t.Fatal("expected exclude glob to leave non-matching entries included")
	}
}
