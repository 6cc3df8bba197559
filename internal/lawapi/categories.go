package lawapi

// categoryCodes maps human-facing category labels to upstream category
// codes. Fixed reference data reproduced from the upstream conventions;
// some categories deliberately share a code (行政法 and 行政手続法 both
// resolve through 013), so the overlap must not be "cleaned up".
var categoryCodes = map[string][]string{
	"憲法":    {"001"},
	"行政法":   {"013"},
	"行政手続法": {"013", "014"},
	"民法":    {"024"},
	"商法":    {"025"},
	"会社法":   {"025", "026"},
	"金融法":   {"027"},
	"刑法":    {"038"},
	"著作権法":  {"042"},
	"労働法":   {"045"},
}

// resolveCategoryCodes returns the upstream codes for a search request:
// explicit codes win, otherwise the label is looked up. Unknown labels
// resolve to nothing rather than failing the search.
func resolveCategoryCodes(label string, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if codes, ok := categoryCodes[label]; ok {
		return codes
	}
	return nil
}
