package model

// SortOrder selects how search results are ordered by the upstream API.
type SortOrder string

const (
	SortRelevance        SortOrder = "relevance"
	SortPromulgationDate SortOrder = "promulgationDate"
	SortLawNumber        SortOrder = "lawNumber"
)

// SearchParams captures a law search request. A request must resolve to a
// non-empty keyword (Keyword, joined Keywords, or LawName) before any
// network call is made.
type SearchParams struct {
	Keyword              string    `json:"keyword,omitempty"`
	Keywords             []string  `json:"keywords,omitempty"`
	LawName              string    `json:"lawName,omitempty"`
	Category             string    `json:"category,omitempty"`
	CategoryCodes        []string  `json:"categoryCodes,omitempty"`
	PromulgationDateFrom string    `json:"promulgationDateFrom,omitempty"`
	PromulgationDateTo   string    `json:"promulgationDateTo,omitempty"`
	Page                 int       `json:"page,omitempty"`
	PageSize             int       `json:"pageSize,omitempty"`
	Sort                 SortOrder `json:"sort,omitempty"`
}

// LawSummary is one hit in a search result.
type LawSummary struct {
	LawID            string   `json:"lawId"`
	LawName          string   `json:"lawName"`
	LawNumber        string   `json:"lawNumber,omitempty"`
	PromulgationDate string   `json:"promulgationDate,omitempty"`
	LawType          string   `json:"lawType,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Highlights       []string `json:"highlights,omitempty"`
}

// LawsSearchResult is a normalized page of search hits.
type LawsSearchResult struct {
	TotalCount      int           `json:"totalCount"`
	Page            int           `json:"page"`
	PageSize        int           `json:"pageSize"`
	HasNext         bool          `json:"hasNext"`
	HasPrevious     bool          `json:"hasPrevious"`
	ExecutionTimeMs int64         `json:"executionTimeMs"`
	Query           *SearchParams `json:"query,omitempty"`
	Results         []LawSummary  `json:"results"`
}

// LawDetail is one normalized statute. It is created fresh on every
// successful normalize call and treated as immutable afterwards.
type LawDetail struct {
	LawID            string      `json:"lawId"`
	LawName          string      `json:"lawName"`
	LawNumber        string      `json:"lawNumber,omitempty"`
	PromulgationDate string      `json:"promulgationDate,omitempty"`
	LawType          string      `json:"lawType,omitempty"`
	Categories       []string    `json:"categories,omitempty"`
	Articles         []Article   `json:"articles"`
	Provisions       []Provision `json:"provisions"`

	// Raw retains the parsed upstream payload for diagnostics.
	Raw any `json:"-"`
}

// Article is a numbered article with its ordered paragraphs.
type Article struct {
	ArticleNumber string      `json:"articleNumber"`
	ArticleTitle  string      `json:"articleTitle,omitempty"`
	Paragraphs    []Paragraph `json:"paragraphs"`
}

// Paragraph is a numbered paragraph with a text body and ordered items.
type Paragraph struct {
	ParagraphNumber string `json:"paragraphNumber"`
	Text            string `json:"text"`
	Items           []Item `json:"items"`
}

// Item is a numbered item. SubItems cover one optional level of nesting.
type Item struct {
	ItemNumber string `json:"itemNumber"`
	Text       string `json:"text"`
	SubItems   []Item `json:"subItems,omitempty"`
}

// Provision is the flattened, addressable unit of statute text. Within a
// LawDetail every path is unique and Text is non-empty.
type Provision struct {
	LawID           string `json:"lawId"`
	ArticleNumber   string `json:"articleNumber"`
	ParagraphNumber string `json:"paragraphNumber,omitempty"`
	ItemNumber      string `json:"itemNumber,omitempty"`
	Text            string `json:"text"`
	Path            string `json:"path"`
}

// QuizDifficulty governs how many terms the generator masks.
type QuizDifficulty string

const (
	DifficultyEasy   QuizDifficulty = "easy"
	DifficultyNormal QuizDifficulty = "normal"
	DifficultyHard   QuizDifficulty = "hard"
)

// QuizQuestion is a generated four-choice question.
type QuizQuestion struct {
	ID          string       `json:"id"`
	Prompt      string       `json:"prompt"`
	Choices     []string     `json:"choices"`
	AnswerIndex int          `json:"answerIndex"`
	MaskedText  string       `json:"maskedText,omitempty"`
	Blanks      []string     `json:"blanks,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
	Metadata    QuizMetadata `json:"metadata"`
}

// QuizMetadata links a generated question back to its source entry.
type QuizMetadata struct {
	LawID         string         `json:"lawId"`
	LawName       string         `json:"lawName"`
	ArticleNumber string         `json:"articleNumber"`
	Category      string         `json:"category"`
	Difficulty    QuizDifficulty `json:"difficulty"`
	SourceURL     string         `json:"sourceUrl,omitempty"`
}
