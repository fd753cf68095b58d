// Package docpath provides dotted-path access into the raw nested
// document, such as "guildID.memberID.money". The functions are pure
// and hold no state beyond the document passed in.
package docpath

import "strings"

// Get traverses the path and returns the value at its end. The second
// return value is false if any intermediate key is absent.
func Get(doc map[string]any, path string) (any, bool) {
	keys := strings.Split(path, ".")
	current := doc
	for i, key := range keys {
		value, ok := current[key]
		if !ok {
			return nil, false
		}
		if i == len(keys)-1 {
			return value, true
		}
		next, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// Set stores the value at the path, creating intermediate maps as
// needed, and returns the document for the caller to persist.
func Set(doc map[string]any, path string, value any) map[string]any {
	if doc == nil {
		doc = make(map[string]any)
	}
	keys := strings.Split(path, ".")
	current := doc
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[key] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
	return doc
}

// Has reports whether a value exists at the path.
func Has(doc map[string]any, path string) bool {
	_, ok := Get(doc, path)
	return ok
}
