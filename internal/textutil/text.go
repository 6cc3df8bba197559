// Package textutil holds the small text and tree helpers shared by the
// normalizer, the search client and the quiz generator. The upstream law
// API has gone through several schema generations that disagree on key
// casing and array-vs-scalar shapes, so everything here is tolerant by
// default.
package textutil

import (
	"strings"
	"unicode"
)

// NormalizeWhitespace collapses every run of whitespace to a single
// space and trims the result. Empty input yields "".
func NormalizeWhitespace(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// EnsureArray lifts a decoded JSON value into a slice: nil becomes an
// empty slice, a slice is returned as-is and anything else becomes a
// one-element slice. Idempotent by construction.
func EnsureArray(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	default:
		return []any{t}
	}
}

// FirstMatchingKey returns the value of the first key on obj that
// matches any candidate name, compared case-insensitively. The second
// return is false when obj is not a map or no candidate matches.
func FirstMatchingKey(obj any, candidates ...string) (any, bool) {
	m, ok := obj.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, candidate := range candidates {
		if v, ok := m[candidate]; ok {
			return v, true
		}
		for key, v := range m {
			if strings.EqualFold(key, candidate) {
				return v, true
			}
		}
	}
	return nil, false
}

// StripTags removes HTML/XML tags from s. Upstream search snippets embed
// highlight tags that must not leak into normalized summaries.
func StripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
