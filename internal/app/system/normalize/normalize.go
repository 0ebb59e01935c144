// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address so the unique constraint in
// PostgreSQL is case-insensitive in practice.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace from a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Tag lowercases and trims a post tag so tag search matches regardless of
// how the author typed it.
func Tag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tags normalizes a tag list, dropping empties and duplicates while
// preserving first-seen order.
func Tags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		t = Tag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
