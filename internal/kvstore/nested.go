package kvstore

import "strings"

// Document is a decoded JSON object.
type Document = map[string]interface{}

// SplitPath splits a nested-path expression into segments. Both dot and
// slash notation are accepted; empty segments are dropped.
func SplitPath(path string) []string {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '/'
	})
	return segments
}

// GetNested walks path into value and reports whether every segment was
// present. Intermediate non-objects terminate the walk.
func GetNested(value interface{}, path []string) (interface{}, bool) {
	current := value
	for _, segment := range path {
		obj, ok := current.(Document)
		if !ok {
			return nil, false
		}
		child, found := obj[segment]
		if !found {
			return nil, false
		}
		current = child
	}
	return current, true
}

// SetNested returns a new document with value placed at path, creating
// intermediate objects as needed. The input document is never modified:
// maps along the touched path are copied, untouched subtrees are shared.
func SetNested(doc Document, path []string, value interface{}) Document {
	if len(path) == 0 {
		return doc
	}

	out := copyDocument(doc)
	current := out
	for _, segment := range path[:len(path)-1] {
		child, ok := current[segment].(Document)
		if !ok {
			child = Document{}
		} else {
			child = copyDocument(child)
		}
		current[segment] = child
		current = child
	}
	current[path[len(path)-1]] = value
	return out
}

// DeleteNested returns a new document with the leaf at path removed. An
// absent path (or a non-object parent) leaves the document as is.
func DeleteNested(doc Document, path []string) Document {
	if len(path) == 0 {
		return doc
	}

	parent, ok := GetNested(doc, path[:len(path)-1])
	if !ok {
		return doc
	}
	obj, ok := parent.(Document)
	if !ok {
		return doc
	}
	if _, found := obj[path[len(path)-1]]; !found {
		return doc
	}

	out := copyDocument(doc)
	current := out
	for _, segment := range path[:len(path)-1] {
		child := copyDocument(current[segment].(Document))
		current[segment] = child
		current = child
	}
	delete(current, path[len(path)-1])
	return out
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
