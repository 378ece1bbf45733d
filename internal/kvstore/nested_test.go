package kvstore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitPath(t *testing.T) {
	checkSplit := func(path string, expected []string) {
		if got := SplitPath(path); !cmp.Equal(got, expected) {
			t.Fatalf("SplitPath(%q) = %v, expected %v", path, got, expected)
		}
	}

	checkSplit("a.b.c", []string{"a", "b", "c"})
	checkSplit("a/b/c", []string{"a", "b", "c"})
	checkSplit("a.b/c", []string{"a", "b", "c"})
	checkSplit("a..b//c.", []string{"a", "b", "c"})

	for _, path := range []string{"", ".", "//"} {
		if got := SplitPath(path); len(got) != 0 {
			t.Fatalf("SplitPath(%q) = %v, expected no segments", path, got)
		}
	}
}

func TestSetNestedRoundTrip(t *testing.T) {
	doc := SetNested(Document{}, []string{"a", "b", "c"}, 42)

	value, ok := GetNested(doc, []string{"a", "b", "c"})
	if !ok || value != 42 {
		t.Fatalf("Round trip failed: %v (ok=%v)", value, ok)
	}
}

func TestSetNestedDoesNotMutateInput(t *testing.T) {
	original := Document{"a": Document{"b": 1}, "x": "y"}
	updated := SetNested(original, []string{"a", "b"}, 2)

	if value, _ := GetNested(original, []string{"a", "b"}); value != 1 {
		t.Fatalf("Input document was mutated: a.b = %v", value)
	}
	if value, _ := GetNested(updated, []string{"a", "b"}); value != 2 {
		t.Fatalf("Updated document has wrong value: a.b = %v", value)
	}
	if value, _ := GetNested(updated, []string{"x"}); value != "y" {
		t.Fatal("Sibling key lost during set")
	}
}

func TestSetNestedReplacesNonObjects(t *testing.T) {
	doc := Document{"a": "scalar"}
	updated := SetNested(doc, []string{"a", "b"}, 7)

	if value, ok := GetNested(updated, []string{"a", "b"}); !ok || value != 7 {
		t.Fatalf("Expected scalar to be replaced by an object, got %v", value)
	}
}

func TestDeleteNested(t *testing.T) {
	doc := Document{
		"a": Document{"b": 1, "keep": 2},
		"x": "y",
	}

	updated := DeleteNested(doc, []string{"a", "b"})

	if _, ok := GetNested(updated, []string{"a", "b"}); ok {
		t.Fatal("Deleted leaf is still present")
	}
	if value, _ := GetNested(updated, []string{"a", "keep"}); value != 2 {
		t.Fatal("Sibling leaf was removed")
	}
	if value, _ := GetNested(updated, []string{"x"}); value != "y" {
		t.Fatal("Unrelated key was removed")
	}
	// The input is untouched.
	if value, _ := GetNested(doc, []string{"a", "b"}); value != 1 {
		t.Fatal("Input document was mutated by delete")
	}
}

func TestDeleteNestedAbsentPath(t *testing.T) {
	doc := Document{"a": Document{"b": 1}}

	checkUnchanged := func(path []string) {
		updated := DeleteNested(doc, path)
		if !cmp.Equal(updated, doc) {
			t.Fatalf("Delete of absent path %v changed the document", path)
		}
	}

	checkUnchanged([]string{"a", "missing"})
	checkUnchanged([]string{"missing", "b"})
	checkUnchanged([]string{"a", "b", "c"})
	checkUnchanged(nil)
}

func TestGetNestedThroughNonObject(t *testing.T) {
	doc := Document{"a": []interface{}{1, 2}}

	if _, ok := GetNested(doc, []string{"a", "0"}); ok {
		t.Fatal("Expected lookup through a list to fail")
	}
	if value, ok := GetNested(doc, nil); !ok || !cmp.Equal(value, doc) {
		t.Fatal("Empty path must return the document itself")
	}
}
