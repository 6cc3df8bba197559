package textutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeNode(t *testing.T, raw string) *Node {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	n := NodeFromValue(v)
	require.NotNil(t, n)
	return n
}

func TestNodeFromValue(t *testing.T) {
	n := decodeNode(t, `{
		"tag": "Article",
		"attr": {"Num": 2},
		"children": [
			{"tag": "ArticleTitle", "children": ["第二条"]},
			"stray text"
		]
	}`)

	assert.Equal(t, "Article", n.Tag)
	assert.Equal(t, "2", n.Attribute("num"))
	require.Len(t, n.Children, 2)
	assert.Equal(t, "第二条", n.ChildByTag("articletitle").TextContent())

	assert.Nil(t, NodeFromValue("plain string"))
	assert.Nil(t, NodeFromValue(map[string]any{"lawName": "民法"}))
}

func TestLooksLikeNode(t *testing.T) {
	node := map[string]any{"tag": "Law", "children": []any{}}
	assert.True(t, LooksLikeNode(node))
	assert.True(t, LooksLikeNode([]any{node}))
	assert.False(t, LooksLikeNode(map[string]any{"article": []any{}}))
	assert.False(t, LooksLikeNode([]any{"just", "strings"}))
}

func TestDescendantsBreadthFirst(t *testing.T) {
	n := decodeNode(t, `{
		"tag": "LawBody",
		"children": [
			{"tag": "MainProvision", "children": [
				{"tag": "Article", "attr": {"Num": "1"}, "children": []},
				{"tag": "Chapter", "children": [
					{"tag": "Article", "attr": {"Num": "2"}, "children": []}
				]}
			]}
		]
	}`)

	articles := n.Descendants("Article")
	require.Len(t, articles, 2)
	assert.Equal(t, "1", articles[0].Attribute("Num"))
	assert.Equal(t, "2", articles[1].Attribute("Num"))
}

func TestFindFirstDepthFirst(t *testing.T) {
	n := decodeNode(t, `{
		"tag": "Paragraph",
		"children": [
			{"tag": "ParagraphSentence", "children": [
				{"tag": "Sentence", "children": ["本文"]}
			]}
		]
	}`)

	sentence := n.FindFirst("Sentence")
	require.NotNil(t, sentence)
	assert.Equal(t, "本文", sentence.TextContent())
	assert.Nil(t, n.FindFirst("Item"))
}

func TestTextContentJoinsLeaves(t *testing.T) {
	n := decodeNode(t, `{
		"tag": "Sentence",
		"children": ["前段", {"tag": "Ruby", "children": ["かな"]}, "  後段  "]
	}`)
	assert.Equal(t, "前段 かな 後段", n.TextContent())
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "text", Stringify("  text  "))
	assert.Equal(t, "3", Stringify(float64(3)))
	assert.Equal(t, "2.5", Stringify(2.5))
	assert.Equal(t, "true", Stringify(true))
}
