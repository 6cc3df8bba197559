package lawdoc

import (
	"strconv"
	"strings"

	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/textutil"
)

// SearchPage is the dialect-independent part of a search response; the
// client layers page math and timing on top.
type SearchPage struct {
	TotalCount int
	Results    []model.LawSummary
}

// NormalizeSearch converts a parsed search payload of either generation
// into a SearchPage. Hits missing a law id are skipped rather than
// failing the whole page.
func NormalizeSearch(raw any) SearchPage {
	if items, ok := textutil.FirstMatchingKey(raw, "items"); ok {
		return searchFromCurrent(raw, items)
	}
	return searchFromLegacy(raw)
}

// searchFromCurrent handles the total_count/items[] shape. Snippet
// sentences carry embedded highlight tags that are stripped here.
func searchFromCurrent(raw, items any) SearchPage {
	page := SearchPage{TotalCount: intField(raw, "total_count", "totalCount")}
	for _, item := range textutil.EnsureArray(items) {
		lawInfo, _ := textutil.FirstMatchingKey(item, "law_info")
		revisionInfo, _ := textutil.FirstMatchingKey(item, "revision_info")

		lawID := stringField(lawInfo, lawIDKeys)
		if lawID == "" {
			continue
		}
		lawName := stringField(revisionInfo, lawNameKeys)
		if lawName == "" {
			lawName = stringField(lawInfo, lawNameKeys)
		}
		if lawName == "" {
			continue
		}

		summary := model.LawSummary{
			LawID:            lawID,
			LawName:          lawName,
			LawNumber:        stringField(lawInfo, lawNumKeys),
			PromulgationDate: stringField(lawInfo, promDateKeys),
			LawType:          stringField(revisionInfo, lawTypeKeys),
			Categories:       categoriesField(revisionInfo),
		}
		if summary.LawType == "" {
			summary.LawType = stringField(lawInfo, lawTypeKeys)
		}

		if sentences, ok := textutil.FirstMatchingKey(item, "sentences"); ok {
			for _, sentence := range textutil.EnsureArray(sentences) {
				text, _ := textutil.FirstMatchingKey(sentence, "text")
				snippet := textutil.NormalizeWhitespace(textutil.StripTags(textutil.Stringify(text)))
				if snippet != "" {
					summary.Highlights = append(summary.Highlights, snippet)
				}
			}
		}

		page.Results = append(page.Results, summary)
	}
	if page.TotalCount == 0 {
		page.TotalCount = len(page.Results)
	}
	return page
}

// searchFromLegacy handles the result/laws/law[] shape.
func searchFromLegacy(raw any) SearchPage {
	root := raw
	if wrapped, ok := textutil.FirstMatchingKey(raw, "eGovLawSearchResult", "ELawsSearchResult"); ok {
		root = wrapped
	}

	var page SearchPage
	if resultNode, ok := textutil.FirstMatchingKey(root, "result", "Result"); ok {
		page.TotalCount = intField(resultNode, "numberOfResults", "NumberOfResults", "totalCount")
	}

	lawsNode, _ := textutil.FirstMatchingKey(root, "laws", "Laws")
	entries, _ := textutil.FirstMatchingKey(lawsNode, "law", "Law")
	for _, entry := range textutil.EnsureArray(entries) {
		lawID := stringField(entry, lawIDKeys)
		lawName := stringField(entry, lawNameKeys)
		if lawID == "" || lawName == "" {
			continue
		}
		page.Results = append(page.Results, model.LawSummary{
			LawID:            lawID,
			LawName:          lawName,
			LawNumber:        stringField(entry, lawNumKeys),
			PromulgationDate: stringField(entry, promDateKeys),
			LawType:          stringField(entry, lawTypeKeys),
		})
	}
	if page.TotalCount == 0 {
		page.TotalCount = len(page.Results)
	}
	return page
}

func intField(source any, keys ...string) int {
	v, ok := textutil.FirstMatchingKey(source, keys...)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
