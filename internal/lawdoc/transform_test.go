package lawdoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

// taggedLawFixture is a current-generation law_full_text tree: one
// article with a bare paragraph, and a second article whose paragraph
// carries both a lead-in sentence and an item.
const taggedLawFixture = `{
	"tag": "Law",
	"children": [{
		"tag": "LawBody",
		"children": [{
			"tag": "MainProvision",
			"children": [
				{
					"tag": "Article", "attr": {"Num": "1"},
					"children": [
						{"tag": "ArticleTitle", "children": ["第1条"]},
						{"tag": "Paragraph", "attr": {"Num": "1"}, "children": [
							{"tag": "ParagraphSentence", "children": [
								{"tag": "Sentence", "children": ["この法律は基本原則を定める。"]}
							]}
						]}
					]
				},
				{
					"tag": "Article", "attr": {"Num": "2"},
					"children": [
						{"tag": "ArticleTitle", "children": ["第2条"]},
						{"tag": "Paragraph", "attr": {"Num": "1"}, "children": [
							{"tag": "ParagraphSentence", "children": [
								{"tag": "Sentence", "children": ["次の各号は condition を定める。"]}
							]},
							{"tag": "Item", "attr": {"Num": "1"}, "children": [
								{"tag": "ItemTitle", "children": ["一"]},
								{"tag": "ItemSentence", "children": [
									{"tag": "Sentence", "children": ["第一の condition を満たすこと。"]}
								]}
							]}
						]}
					]
				}
			]
		}]
	}]
}`

func TestTransformLawBodyTagged(t *testing.T) {
	body := decodeJSON(t, taggedLawFixture)
	result := TransformLawBody("129AC0000000089", body)

	require.Len(t, result.Articles, 2)
	assert.Equal(t, "第1条", result.Articles[0].ArticleNumber)
	assert.Equal(t, "第2条", result.Articles[1].ArticleNumber)

	require.Len(t, result.Provisions, 3)
	paths := make([]string, 0, len(result.Provisions))
	for _, p := range result.Provisions {
		assert.NotEmpty(t, p.Text)
		assert.Equal(t, "129AC0000000089", p.LawID)
		paths = append(paths, p.Path)
	}
	assert.Contains(t, paths, "第1条 第1項")
	assert.Contains(t, paths, "第2条 第1項")
	assert.Contains(t, paths, "第2条 第1項 第1号")
}

func TestTransformLawBodyIsPure(t *testing.T) {
	body := decodeJSON(t, taggedLawFixture)
	first := TransformLawBody("law-1", body)
	second := TransformLawBody("law-1", body)
	assert.Equal(t, first, second)
}

func TestTransformLawBodyLegacy(t *testing.T) {
	body := decodeJSON(t, `{
		"article": [
			{
				"articleNumber": "第1条",
				"paragraph": {
					"paragraphNumber": "1",
					"paragraphSentence": {"sentence": "前段の本文。"},
					"item": [
						{"itemNumber": "1", "itemSentence": {"sentence": "第一の要件。"}},
						{"itemNumber": "2", "itemSentence": {"sentence": "第二の要件。"}}
					]
				}
			},
			{"articleNumber": "第2条", "articleTitle": "目的"}
		]
	}`)

	result := TransformLawBody("legacy-law", body)
	require.Len(t, result.Articles, 2)
	require.Len(t, result.Articles[0].Paragraphs, 1)
	assert.Len(t, result.Articles[0].Paragraphs[0].Items, 2)

	// Two items, the lead-in paragraph text, and the article fallback.
	require.Len(t, result.Provisions, 4)
	assert.Equal(t, "第1条 第1項 第1号", result.Provisions[0].Path)
	assert.Equal(t, "第1条 第1項 第2号", result.Provisions[1].Path)
	assert.Equal(t, "第1条 第1項", result.Provisions[2].Path)

	// Article without paragraphs falls back to its title text.
	assert.Equal(t, "第2条", result.Provisions[3].Path)
	assert.Equal(t, "目的", result.Provisions[3].Text)
}

func TestTransformLawBodyMissingBody(t *testing.T) {
	result := TransformLawBody("law-1", nil)
	assert.Empty(t, result.Articles)
	assert.Empty(t, result.Provisions)
}

func TestTransformDedupesProvisions(t *testing.T) {
	body := decodeJSON(t, `{
		"article": {
			"articleNumber": "第1条",
			"paragraph": [
				{"paragraphNumber": "1", "paragraphSentence": {"sentence": "同一の本文。"}},
				{"paragraphNumber": "1", "paragraphSentence": {"sentence": "同一の本文。"}}
			]
		}
	}`)

	result := TransformLawBody("law-1", body)
	require.Len(t, result.Provisions, 1)
	assert.Equal(t, "第1条 第1項", result.Provisions[0].Path)
}

func TestBuildPathKeepsExistingCounters(t *testing.T) {
	assert.Equal(t, "第1条 第2項 第3号", buildPath("第1条", "2", "3"))
	// Values already carrying the counter suffix are not double-wrapped.
	assert.Equal(t, "第1条 第2項", buildPath("第1条", "第2項", ""))
}

func TestArticleNumberFallbacks(t *testing.T) {
	// No number or title tags: the Num attribute wins, then the
	// untitled placeholder.
	body := decodeJSON(t, `{
		"tag": "LawBody",
		"children": [
			{"tag": "Article", "attr": {"Num": "5"}, "children": []},
			{"tag": "Article", "children": []}
		]
	}`)

	result := TransformLawBody("law-1", body)
	require.Len(t, result.Articles, 2)
	assert.Equal(t, "5", result.Articles[0].ArticleNumber)
	assert.Equal(t, "無題", result.Articles[1].ArticleNumber)
}
