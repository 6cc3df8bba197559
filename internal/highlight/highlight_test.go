package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordBasic(t *testing.T) {
	got := Keyword("民法とは私法の一般法である。", "民法", Options{})
	assert.Equal(t, "<mark>民法</mark>とは私法の一般法である。", got)
}

func TestKeywordNoMatchPassesThrough(t *testing.T) {
	text := "刑法の条文"
	assert.Equal(t, text, Keyword(text, "民法", Options{}))
	assert.Equal(t, text, Keyword(text, "   ", Options{}))
	assert.Equal(t, "", Keyword("", "民法", Options{}))
}

func TestKeywordFullWidthDigits(t *testing.T) {
	// NFKC folds full-width digits, so a half-width keyword matches and
	// the original full-width span is the one wrapped.
	got := Keyword("第１２条を参照", "12", Options{})
	assert.Equal(t, "第<mark>１２</mark>条を参照", got)

	// And the reverse direction.
	got = Keyword("article 12 applies", "１２", Options{})
	assert.Equal(t, "article <mark>12</mark> applies", got)
}

func TestKeywordCaseInsensitiveByDefault(t *testing.T) {
	got := Keyword("The Civil Code", "civil", Options{})
	assert.Equal(t, "The <mark>Civil</mark> Code", got)

	got = Keyword("The Civil Code", "civil", Options{CaseSensitive: true})
	assert.Equal(t, "The Civil Code", got)
}

func TestKeywordWordBoundary(t *testing.T) {
	// Inside an ASCII word the match is rejected.
	got := Keyword("foobar and bar", "bar", Options{Boundary: BoundaryWord})
	assert.Equal(t, "foobar and <mark>bar</mark>", got)

	// Without boundary enforcement both occurrences wrap.
	got = Keyword("foobar and bar", "bar", Options{})
	assert.Equal(t, "foo<mark>bar</mark> and <mark>bar</mark>", got)

	// CJK text has no ASCII word boundary, so boundary mode is a no-op.
	got = Keyword("民法民法", "民法", Options{Boundary: BoundaryWord})
	assert.Equal(t, "<mark>民法</mark><mark>民法</mark>", got)
}

func TestKeywordMaxMatches(t *testing.T) {
	got := Keyword("a b a b a", "a", Options{MaxMatches: 2})
	assert.Equal(t, "<mark>a</mark> b <mark>a</mark> b a", got)
}

func TestKeywords(t *testing.T) {
	got := Keywords("民法と商法", []string{"民法", "商法"}, Options{})
	assert.Equal(t, "<mark>民法</mark>と<mark>商法</mark>", got)
}
