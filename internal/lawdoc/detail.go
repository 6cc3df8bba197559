package lawdoc

import (
	"fmt"

	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/textutil"
)

var (
	lawIDKeys    = []string{"lawId", "LawId", "LawID", "law_id"}
	lawNameKeys  = []string{"lawName", "LawName", "law_title", "lawTitle"}
	lawNumKeys   = []string{"lawNo", "LawNo", "lawNumber", "LawNumber", "law_num"}
	promDateKeys = []string{"promulgationDate", "PromulgationDate", "promulgation_date"}
	lawTypeKeys  = []string{"lawType", "LawType", "law_type"}
)

// NormalizeDetail converts a parsed detail payload of either generation
// into a LawDetail. The raw payload is retained for diagnostics.
func NormalizeDetail(raw any) (*model.LawDetail, error) {
	if lawInfo, ok := textutil.FirstMatchingKey(raw, "law_info"); ok {
		return detailFromCurrent(raw, lawInfo)
	}
	return detailFromLegacy(raw)
}

// detailFromCurrent handles the law_info/revision_info/law_full_text
// shape.
func detailFromCurrent(raw, lawInfo any) (*model.LawDetail, error) {
	lawID := stringField(lawInfo, lawIDKeys)
	if lawID == "" {
		return nil, fmt.Errorf("law detail payload is missing law_id")
	}

	revisionInfo, _ := textutil.FirstMatchingKey(raw, "revision_info")
	lawName := stringField(revisionInfo, lawNameKeys)
	if lawName == "" {
		lawName = stringField(lawInfo, lawNameKeys)
	}
	if lawName == "" {
		return nil, fmt.Errorf("law detail payload is missing law_title")
	}

	detail := &model.LawDetail{
		LawID:            lawID,
		LawName:          lawName,
		LawNumber:        stringField(lawInfo, lawNumKeys),
		PromulgationDate: stringField(lawInfo, promDateKeys),
		LawType:          stringField(lawInfo, lawTypeKeys),
		Categories:       categoriesField(revisionInfo),
		Raw:              raw,
	}

	fullText, _ := textutil.FirstMatchingKey(raw, "law_full_text", "lawFullText")
	result := TransformLawBody(lawID, fullText)
	detail.Articles = result.Articles
	detail.Provisions = result.Provisions
	return detail, nil
}

// detailFromLegacy handles the first-generation shape: an optional
// eGovLawDetail wrapper around a law node with a lawBody.
func detailFromLegacy(raw any) (*model.LawDetail, error) {
	root := raw
	if wrapped, ok := textutil.FirstMatchingKey(raw, "eGovLawDetail", "ELawsLawDetail"); ok {
		root = wrapped
	}
	lawNode, ok := textutil.FirstMatchingKey(root, "law", "Law")
	if !ok {
		return nil, fmt.Errorf("law detail payload is missing law node")
	}

	lawID := stringField(lawNode, lawIDKeys)
	if lawID == "" {
		return nil, fmt.Errorf("law detail payload is missing lawId")
	}
	lawName := stringField(lawNode, lawNameKeys)
	if lawName == "" {
		return nil, fmt.Errorf("law detail payload is missing lawName")
	}

	detail := &model.LawDetail{
		LawID:            lawID,
		LawName:          lawName,
		LawNumber:        stringField(lawNode, lawNumKeys),
		PromulgationDate: stringField(lawNode, promDateKeys),
		LawType:          stringField(lawNode, lawTypeKeys),
		Raw:              raw,
	}

	lawBody, _ := textutil.FirstMatchingKey(lawNode, "lawBody", "LawBody")
	result := TransformLawBody(lawID, lawBody)
	detail.Articles = result.Articles
	detail.Provisions = result.Provisions
	return detail, nil
}

func stringField(source any, keys []string) string {
	v, ok := textutil.FirstMatchingKey(source, keys...)
	if !ok {
		return ""
	}
	return textutil.NormalizeWhitespace(textutil.Stringify(v))
}

func categoriesField(source any) []string {
	v, ok := textutil.FirstMatchingKey(source, "category", "categories")
	if !ok {
		return nil
	}
	var out []string
	for _, entry := range textutil.EnsureArray(v) {
		if s := textutil.NormalizeWhitespace(textutil.Stringify(entry)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
