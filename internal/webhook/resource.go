package webhook

import "strings"

// Resource is the resource object of a notification.
type Resource map[string]any

// Lookup walks path through nested objects (string keys) and arrays (int
// indexes).
func (r Resource) Lookup(path ...any) (any, bool) {
	var node any = map[string]any(r)
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := node.(map[string]any)
			if !ok {
				return nil, false
			}
			if node, ok = m[key]; !ok {
				return nil, false
			}
		case int:
			s, ok := node.([]any)
			if !ok || key < 0 || key >= len(s) {
				return nil, false
			}
			node = s[key]
		default:
			return nil, false
		}
	}
	return node, true
}

// String returns the string at path, "" when missing or not a string.
func (r Resource) String(path ...any) string {
	v, ok := r.Lookup(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Link returns the href of the first HATEOAS link with the given rel.
func (r Resource) Link(rel string) string {
	links, ok := r["links"].([]any)
	if !ok {
		return ""
	}
	for _, l := range links {
		link, ok := l.(map[string]any)
		if !ok {
			continue
		}
		if link["rel"] == rel {
			href, _ := link["href"].(string)
			return href
		}
	}
	return ""
}

// LinkID returns the last path segment of the link with the given rel.
func (r Resource) LinkID(rel string) string {
	href := strings.TrimRight(r.Link(rel), "/")
	if href == "" {
		return ""
	}
	return href[strings.LastIndex(href, "/")+1:]
}
