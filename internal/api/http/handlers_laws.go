package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hourei/hourei-backend/internal/api/respond"
	"github.com/hourei/hourei-backend/internal/highlight"
	"github.com/hourei/hourei-backend/internal/lawapi"
	"github.com/hourei/hourei-backend/internal/model"
)

// LawsHandler is the HTTP transport over the upstream law client.
type LawsHandler struct {
	client *lawapi.Client
	// rand feeds the random-provision endpoint; nil means math/rand.
	rand func() float64
}

func NewLawsHandler(client *lawapi.Client) *LawsHandler {
	return &LawsHandler{client: client}
}

// SetRand overrides the random source; used by tests.
func (h *LawsHandler) SetRand(randFn func() float64) { h.rand = randFn }

// SearchLaws GET /api/laws/search
func (h *LawsHandler) SearchLaws(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := model.SearchParams{
		Keyword:              query.Get("keyword"),
		LawName:              query.Get("lawName"),
		Category:             query.Get("category"),
		PromulgationDateFrom: query.Get("promulgationDateFrom"),
		PromulgationDateTo:   query.Get("promulgationDateTo"),
		Sort:                 model.SortOrder(query.Get("sort")),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		params.Page = page
	}
	if pageSize, err := strconv.Atoi(query.Get("pageSize")); err == nil {
		params.PageSize = pageSize
	}

	result, err := h.client.SearchLaws(r.Context(), params)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	// Snippets arrive tag-stripped from normalization; re-mark the
	// client's keyword so the caller can render matches directly.
	if params.Keyword != "" {
		for i, law := range result.Results {
			marked := make([]string, len(law.Highlights))
			for j, snippet := range law.Highlights {
				marked[j] = highlight.Keyword(snippet, params.Keyword, highlight.Options{})
			}
			result.Results[i].Highlights = marked
		}
	}
	respond.WriteJSON(w, http.StatusOK, result)
}

// GetLaw GET /api/laws/{lawId}
func (h *LawsHandler) GetLaw(w http.ResponseWriter, r *http.Request) {
	detail, err := h.client.GetLawByID(r.Context(), mux.Vars(r)["lawId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, detail)
}

// RandomProvision GET /api/laws/{lawId}/provisions/random
func (h *LawsHandler) RandomProvision(w http.ResponseWriter, r *http.Request) {
	detail, err := h.client.GetLawByID(r.Context(), mux.Vars(r)["lawId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	provision, err := lawapi.PickRandomProvision(detail, h.rand)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"lawId":     detail.LawID,
		"lawName":   detail.LawName,
		"provision": provision,
	})
}

// ProvisionsByKeyword GET /api/laws/{lawId}/provisions?keyword=
func (h *LawsHandler) ProvisionsByKeyword(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		respond.WriteBadRequest(w, "keyword query parameter is required")
		return
	}
	detail, err := h.client.GetLawByID(r.Context(), mux.Vars(r)["lawId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	matched := lawapi.ExtractProvisionsByKeyword(detail, keyword)
	provisions := make([]highlightedProvision, len(matched))
	for i, p := range matched {
		provisions[i] = highlightedProvision{
			Provision:       p,
			HighlightedText: highlight.Keyword(p.Text, keyword, highlight.Options{}),
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"lawId":      detail.LawID,
		"lawName":    detail.LawName,
		"keyword":    keyword,
		"provisions": provisions,
		"count":      len(provisions),
	})
}

// highlightedProvision decorates a provision with a <mark>-wrapped copy
// of its text for direct rendering.
type highlightedProvision struct {
	model.Provision
	HighlightedText string `json:"highlightedText"`
}
