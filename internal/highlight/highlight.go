// Package highlight wraps keyword matches in statute text with <mark>
// tags. Matching happens on NFKC-normalized runes so that full-width
// digits and half-width keywords find each other, while the emitted
// spans always come from the original text.
package highlight

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Boundary controls whether ASCII word boundaries are enforced.
type Boundary int

const (
	BoundaryNone Boundary = iota
	BoundaryWord
)

// Options tune a highlight pass.
type Options struct {
	CaseSensitive bool
	Boundary      Boundary
	// MaxMatches caps the number of wrapped matches; zero means no cap.
	MaxMatches int
}

type span struct {
	start int
	end   int
}

// unit is one NFKC-normalized rune together with the byte span of the
// original rune it came from. One original rune may expand to several
// units (e.g. ㍻), all pointing back at the same span.
type unit struct {
	r    rune
	span span
}

func normalizeUnits(text string, caseSensitive bool) []unit {
	units := make([]unit, 0, len(text))
	byteOffset := 0
	for _, r := range text {
		size := len(string(r))
		s := span{start: byteOffset, end: byteOffset + size}
		byteOffset += size
		for _, nr := range norm.NFKC.String(string(r)) {
			if !caseSensitive {
				nr = toLower(nr)
			}
			units = append(units, unit{r: nr, span: s})
		}
	}
	return units
}

func normalizeKeyword(keyword string, caseSensitive bool) []rune {
	normalized := []rune(norm.NFKC.String(keyword))
	if caseSensitive {
		return normalized
	}
	for i, r := range normalized {
		normalized[i] = toLower(r)
	}
	return normalized
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return []rune(strings.ToLower(string(r)))[0]
}

func isASCIIWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// Keyword wraps every match of keyword inside text with <mark> tags.
// Blank keywords and texts pass through untouched.
func Keyword(text, keyword string, opts Options) string {
	if text == "" || strings.TrimSpace(keyword) == "" {
		return text
	}

	kw := normalizeKeyword(keyword, opts.CaseSensitive)
	if len(kw) == 0 {
		return text
	}

	units := normalizeUnits(text, opts.CaseSensitive)
	var matches []span

	for i := 0; i+len(kw) <= len(units); {
		if opts.MaxMatches > 0 && len(matches) >= opts.MaxMatches {
			break
		}
		if !matchesAt(units, kw, i) {
			i++
			continue
		}
		if opts.Boundary == BoundaryWord {
			if (i > 0 && isASCIIWordRune(units[i-1].r)) ||
				(i+len(kw) < len(units) && isASCIIWordRune(units[i+len(kw)].r)) {
				i += len(kw)
				continue
			}
		}
		start := units[i].span.start
		end := units[i+len(kw)-1].span.end
		if start == end {
			i += len(kw)
			continue
		}
		matches = append(matches, span{start: start, end: end})
		i += len(kw)
	}

	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	cursor := 0
	for _, m := range matches {
		if m.start < cursor {
			// A compatibility expansion can map two adjacent matches onto
			// overlapping source spans; keep the first one.
			continue
		}
		if cursor < m.start {
			b.WriteString(text[cursor:m.start])
		}
		b.WriteString("<mark>")
		b.WriteString(text[m.start:m.end])
		b.WriteString("</mark>")
		cursor = m.end
	}
	b.WriteString(text[cursor:])
	return b.String()
}

// Keywords applies Keyword for each entry in order.
func Keywords(text string, keywords []string, opts Options) string {
	for _, keyword := range keywords {
		text = Keyword(text, keyword, opts)
	}
	return text
}

func matchesAt(units []unit, kw []rune, at int) bool {
	for j, r := range kw {
		if units[at+j].r != r {
			return false
		}
	}
	return true
}
