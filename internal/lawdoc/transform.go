// Package lawdoc normalizes upstream law payloads into the canonical
// document model. The upstream API has two generations: a legacy
// XML-derived shape with plain nested objects keyed by element name,
// and the current shape whose law body is a tagged tree of
// {tag, attr, children} nodes. Both are reduced to the same articles
// plus a flat list of addressable provisions.
package lawdoc

import (
	"strings"

	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/textutil"
)

const untitledArticle = "無題"

var (
	articleKeys       = []string{"Article", "article"}
	articleNumberKeys = []string{"ArticleNumber", "articleNumber", "ArticleNum", "articleNum"}
	articleTitleKeys  = []string{"ArticleTitle", "articleTitle"}
	paragraphKeys     = []string{"Paragraph", "paragraph"}
	paragraphNumKeys  = []string{"ParagraphNumber", "paragraphNumber", "ParagraphNum", "paragraphNum"}
	paragraphTextKeys = []string{"ParagraphSentence", "paragraphSentence", "ParagraphText", "paragraphText"}
	itemKeys          = []string{"Item", "item"}
	itemNumberKeys    = []string{"ItemNumber", "itemNumber", "ItemNum", "itemNum"}
	itemTextKeys      = []string{"ItemSentence", "itemSentence", "ItemText", "itemText"}
	sentenceKeys      = []string{"Sentence", "sentence"}
)

// TransformResult carries both views of one law body.
type TransformResult struct {
	Articles   []model.Article
	Provisions []model.Provision
}

// TransformLawBody converts a law body of either dialect into articles
// and flattened provisions. A missing body yields empty slices, never an
// error. The dialect is detected once here; the traversals themselves
// are shape-pure.
func TransformLawBody(lawID string, body any) TransformResult {
	if body == nil {
		return TransformResult{Articles: []model.Article{}, Provisions: []model.Provision{}}
	}

	var articles []model.Article
	if node, ok := asTaggedBody(body); ok {
		articles = articlesFromTagged(node)
	} else {
		articles = articlesFromLegacy(body)
	}

	return TransformResult{
		Articles:   articles,
		Provisions: emitProvisions(lawID, articles),
	}
}

// asTaggedBody resolves body to the node the Article lookup should start
// from: the LawBody under a Law root when present, otherwise the node
// itself.
func asTaggedBody(body any) (*textutil.Node, bool) {
	if !textutil.LooksLikeNode(body) {
		return nil, false
	}
	root := textutil.NodeFromValue(body)
	if root == nil {
		for _, entry := range textutil.EnsureArray(body) {
			if root = textutil.NodeFromValue(entry); root != nil {
				break
			}
		}
	}
	if root == nil {
		return nil, false
	}
	if law := root.FindFirst("Law"); law != nil {
		root = law
	}
	if lawBody := root.FindFirst("LawBody"); lawBody != nil {
		root = lawBody
	}
	return root, true
}

// --- tagged-tree dialect -------------------------------------------------

func articlesFromTagged(body *textutil.Node) []model.Article {
	var articles []model.Article
	// Articles nest inside grouping tags (MainProvision, Chapter, ...),
	// so collect descendants rather than direct children.
	for _, articleNode := range body.Descendants("Article") {
		// Number tags first, then the title tag: the current upstream
		// schema often carries only ArticleTitle plus a Num attribute.
		articleNumber := firstTagText(articleNode, articleNumberKeys)
		if articleNumber == "" {
			articleNumber = firstTagText(articleNode, articleTitleKeys)
		}
		if articleNumber == "" {
			articleNumber = articleNode.Attribute("Num")
		}
		if articleNumber == "" {
			articleNumber = untitledArticle
		}
		articleTitle := firstTagText(articleNode, articleTitleKeys)

		var paragraphs []model.Paragraph
		for _, paragraphNode := range childNodes(articleNode, "Paragraph") {
			paragraphNumber := firstTagText(paragraphNode, paragraphNumKeys)
			if paragraphNumber == "" {
				paragraphNumber = paragraphNode.Attribute("Num")
			}
			if paragraphNumber == "" {
				paragraphNumber = "1"
			}

			var items []model.Item
			for _, itemNode := range childNodes(paragraphNode, "Item") {
				itemNumber := firstTagText(itemNode, itemNumberKeys)
				if itemNumber == "" {
					itemNumber = itemNode.Attribute("Num")
				}
				if itemNumber == "" {
					itemNumber = "1"
				}
				items = append(items, model.Item{
					ItemNumber: itemNumber,
					Text:       sentenceText(itemNode, itemTextKeys),
					SubItems:   subItemsFromTagged(itemNode),
				})
			}

			paragraphs = append(paragraphs, model.Paragraph{
				ParagraphNumber: paragraphNumber,
				Text:            sentenceText(paragraphNode, paragraphTextKeys),
				Items:           items,
			})
		}

		articles = append(articles, model.Article{
			ArticleNumber: articleNumber,
			ArticleTitle:  articleTitle,
			Paragraphs:    paragraphs,
		})
	}
	return articles
}

// subItemsFromTagged reads one level of Subitem children; deeper nesting
// is flattened into the item text by TextContent elsewhere.
func subItemsFromTagged(itemNode *textutil.Node) []model.Item {
	var subItems []model.Item
	for _, subNode := range childNodes(itemNode, "Subitem1") {
		number := subNode.Attribute("Num")
		if number == "" {
			number = "1"
		}
		text := sentenceText(subNode, []string{"Subitem1Sentence"})
		if text == "" {
			text = textutil.NormalizeWhitespace(subNode.TextContent())
		}
		subItems = append(subItems, model.Item{ItemNumber: number, Text: text})
	}
	return subItems
}

func childNodes(n *textutil.Node, tag string) []*textutil.Node {
	var out []*textutil.Node
	for _, child := range n.Children {
		if cn, ok := child.(*textutil.Node); ok && strings.EqualFold(cn.Tag, tag) {
			out = append(out, cn)
		}
	}
	return out
}

// firstTagText resolves a value across candidate tag names, taking the
// first tag with non-empty text content.
func firstTagText(n *textutil.Node, tags []string) string {
	for _, tag := range tags {
		if child := n.ChildByTag(tag); child != nil {
			if text := textutil.NormalizeWhitespace(child.TextContent()); text != "" {
				return text
			}
		}
	}
	return ""
}

// sentenceText finds the sentence wrapper for a paragraph or item by
// depth-first search and flattens its text content.
func sentenceText(n *textutil.Node, wrapperTags []string) string {
	for _, tag := range wrapperTags {
		if wrapper := n.FindFirst(tag); wrapper != nil && wrapper != n {
			if text := textutil.NormalizeWhitespace(wrapper.TextContent()); text != "" {
				return text
			}
		}
	}
	return ""
}

// --- legacy flat-object dialect ------------------------------------------

func articlesFromLegacy(body any) []model.Article {
	raw, _ := textutil.FirstMatchingKey(body, articleKeys...)
	var articles []model.Article
	for _, articleRaw := range textutil.EnsureArray(raw) {
		articleNumber := legacyString(articleRaw, articleNumberKeys)
		if articleNumber == "" {
			articleNumber = untitledArticle
		}
		articleTitle := legacyString(articleRaw, articleTitleKeys)

		paragraphsRaw, _ := textutil.FirstMatchingKey(articleRaw, paragraphKeys...)
		var paragraphs []model.Paragraph
		for _, paragraphRaw := range textutil.EnsureArray(paragraphsRaw) {
			paragraphNumber := legacyString(paragraphRaw, paragraphNumKeys)
			if paragraphNumber == "" {
				paragraphNumber = "1"
			}

			itemsRaw, _ := textutil.FirstMatchingKey(paragraphRaw, itemKeys...)
			var items []model.Item
			for _, itemRaw := range textutil.EnsureArray(itemsRaw) {
				itemNumber := legacyString(itemRaw, itemNumberKeys)
				if itemNumber == "" {
					itemNumber = "1"
				}
				items = append(items, model.Item{
					ItemNumber: itemNumber,
					Text:       legacySentence(itemRaw, itemTextKeys),
				})
			}

			paragraphs = append(paragraphs, model.Paragraph{
				ParagraphNumber: paragraphNumber,
				Text:            legacySentence(paragraphRaw, paragraphTextKeys),
				Items:           items,
			})
		}

		articles = append(articles, model.Article{
			ArticleNumber: articleNumber,
			ArticleTitle:  articleTitle,
			Paragraphs:    paragraphs,
		})
	}
	return articles
}

func legacyString(source any, keys []string) string {
	v, ok := textutil.FirstMatchingKey(source, keys...)
	if !ok {
		return ""
	}
	return textutil.Stringify(v)
}

// legacySentence resolves sentence text through one level of nested
// sentence wrapper ({ParagraphSentence: {Sentence: "..."}}).
func legacySentence(source any, keys []string) string {
	v, ok := textutil.FirstMatchingKey(source, keys...)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return textutil.NormalizeWhitespace(s)
	}
	if nested, ok := textutil.FirstMatchingKey(v, sentenceKeys...); ok {
		if s, ok := nested.(string); ok {
			return textutil.NormalizeWhitespace(s)
		}
	}
	return ""
}

// --- provision emission (shared by both dialects) -------------------------

// emitProvisions flattens articles into addressable provisions. A
// paragraph with items still gets its own provision when it carries
// lead-in text: the overview sentence is independently citable, so the
// paragraph-level and item-level provisions deliberately coexist.
func emitProvisions(lawID string, articles []model.Article) []model.Provision {
	var provisions []model.Provision
	for _, article := range articles {
		if len(article.Paragraphs) == 0 {
			text := article.ArticleTitle
			if text == "" {
				text = article.ArticleNumber
			}
			provisions = append(provisions, model.Provision{
				LawID:         lawID,
				ArticleNumber: article.ArticleNumber,
				Text:          text,
				Path:          buildPath(article.ArticleNumber, "", ""),
			})
			continue
		}
		for _, paragraph := range article.Paragraphs {
			for _, item := range paragraph.Items {
				provisions = append(provisions, model.Provision{
					LawID:           lawID,
					ArticleNumber:   article.ArticleNumber,
					ParagraphNumber: paragraph.ParagraphNumber,
					ItemNumber:      item.ItemNumber,
					Text:            item.Text,
					Path:            buildPath(article.ArticleNumber, paragraph.ParagraphNumber, item.ItemNumber),
				})
			}
			if len(paragraph.Items) == 0 || paragraph.Text != "" {
				provisions = append(provisions, model.Provision{
					LawID:           lawID,
					ArticleNumber:   article.ArticleNumber,
					ParagraphNumber: paragraph.ParagraphNumber,
					Text:            paragraph.Text,
					Path:            buildPath(article.ArticleNumber, paragraph.ParagraphNumber, ""),
				})
			}
		}
	}
	return dedupeProvisions(provisions)
}

func buildPath(article, paragraph, item string) string {
	parts := []string{article}
	if paragraph != "" {
		parts = append(parts, formatCounter(paragraph, "項"))
	}
	if item != "" {
		parts = append(parts, formatCounter(item, "号"))
	}
	return strings.Join(parts, " ")
}

// formatCounter renders 第{n}項 / 第{n}号 unless the stored value already
// carries the counter suffix.
func formatCounter(value, counter string) string {
	if strings.Contains(value, counter) {
		return value
	}
	return "第" + value + counter
}

// dedupeProvisions drops empty-text entries and duplicates on the
// composite path:text key, preserving first-seen order.
func dedupeProvisions(list []model.Provision) []model.Provision {
	seen := make(map[string]struct{}, len(list))
	out := make([]model.Provision, 0, len(list))
	for _, entry := range list {
		if entry.Text == "" {
			continue
		}
		key := entry.Path + ":" + entry.Text
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	return out
}
