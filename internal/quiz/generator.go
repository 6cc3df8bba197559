package quiz

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/random"
)

// Mode selects how a question is produced.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeAuto   Mode = "auto"
	ModeMixed  Mode = "mixed"
)

// maskPlaceholder replaces a masked term in the statute text.
const maskPlaceholder = "[ 〇〇 ]"

// tokenPattern matches masking candidates: runs of CJK ideographs,
// katakana, ASCII letters or digits long enough to be meaningful terms.
var tokenPattern = regexp.MustCompile(`[一-龠々〆ヶ]{2,}|[ァ-ヶー]{3,}|[A-Za-z]{4,}|[0-9]{2,}`)

// stopWords are grammatical fragments the tokenizer must not offer as
// masking candidates.
var stopWords = map[string]struct{}{
	"こと":  {},
	"ため":  {},
	"する":  {},
	"おいて": {},
	"もの":  {},
	"場合":  {},
	"その他": {},
}

// Options configure one generation call.
type Options struct {
	Category   string
	Difficulty model.QuizDifficulty
	Mode       Mode
	// Rand returns a value in [0, 1); defaults to math/rand.Float64.
	Rand func() float64
}

// Generator produces questions from a bank.
type Generator struct {
	bank *Bank
}

// NewGenerator wraps the given bank.
func NewGenerator(bank *Bank) *Generator {
	return &Generator{bank: bank}
}

// TokenizeCandidates extracts masking candidates from statute text,
// de-duplicated preserving first occurrence.
func TokenizeCandidates(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, token := range tokenPattern.FindAllString(text, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// MaskTerms replaces the first occurrence of each term with the
// placeholder, in the given order. Each term is replaced exactly once.
func MaskTerms(text string, terms []string) string {
	for _, term := range terms {
		text = strings.Replace(text, term, maskPlaceholder, 1)
	}
	return text
}

// Generate produces one question according to opts. The entry is drawn
// uniformly from the entries matching the category filter.
func (g *Generator) Generate(opts Options) (*model.QuizQuestion, error) {
	randFn := opts.Rand
	if randFn == nil {
		randFn = rand.Float64
	}
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyNormal
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeMixed
	}

	entries := g.bank.EntriesByCategory(opts.Category)
	if len(entries) == 0 {
		return nil, model.ErrNoBankEntries
	}
	entry := entries[0]
	if len(entries) > 1 {
		picked, err := random.FromSlice(entries, randFn)
		if err != nil {
			return nil, err
		}
		entry = picked
	}

	switch mode {
	case ModeManual:
		return g.buildManual(entry)
	case ModeAuto:
		question, err := g.buildAutomatic(entry, difficulty, randFn)
		if err != nil && entry.Manual != nil {
			return g.buildManual(entry)
		}
		return question, err
	default:
		if entry.Manual != nil && randFn() < 0.5 {
			return g.buildManual(entry)
		}
		return g.buildAutomatic(entry, difficulty, randFn)
	}
}

func (g *Generator) buildManual(entry BankEntry) (*model.QuizQuestion, error) {
	if entry.Manual == nil {
		return nil, model.ErrNoManualPreset
	}
	preset := entry.Manual
	return &model.QuizQuestion{
		ID:          fmt.Sprintf("quiz-%s-%s", entry.ID, uuid.NewString()),
		Prompt:      preset.Prompt,
		Choices:     append([]string(nil), preset.Choices...),
		AnswerIndex: preset.AnswerIndex,
		MaskedText:  preset.MaskedText,
		Blanks:      append([]string(nil), preset.Blanks...),
		Explanation: preset.Explanation,
		Metadata: model.QuizMetadata{
			LawID:         entry.LawID,
			LawName:       entry.LawName,
			ArticleNumber: entry.ArticleNumber,
			Category:      entry.Category,
			Difficulty:    entry.Difficulty,
			SourceURL:     entry.SourceURL,
		},
	}, nil
}

func (g *Generator) buildAutomatic(entry BankEntry, difficulty model.QuizDifficulty, randFn func() float64) (*model.QuizQuestion, error) {
	terms := pickTermsForMasking(entry, difficulty, randFn)
	if len(terms) == 0 {
		return nil, fmt.Errorf("no masking terms available for entry %s", entry.ID)
	}
	maskedText := MaskTerms(entry.Text, terms)
	choices, answerIndex := g.buildChoices(terms, entry, randFn)

	prompt := fmt.Sprintf("%s（%s）の本文の[ 〇〇 ]に当てはまる語句はどれか。", entry.LawName, entry.ArticleNumber)
	if len(terms) > 1 {
		prompt = fmt.Sprintf("%s（%s）の本文中にある二箇所の[ 〇〇 ]に当てはまる語句の組み合わせはどれか。", entry.LawName, entry.ArticleNumber)
	}

	return &model.QuizQuestion{
		ID:          fmt.Sprintf("quiz-auto-%s-%s", entry.ID, uuid.NewString()),
		Prompt:      prompt,
		Choices:     choices,
		AnswerIndex: answerIndex,
		MaskedText:  maskedText,
		Blanks:      terms,
		Metadata: model.QuizMetadata{
			LawID:         entry.LawID,
			LawName:       entry.LawName,
			ArticleNumber: entry.ArticleNumber,
			Category:      entry.Category,
			Difficulty:    difficulty,
			SourceURL:     entry.SourceURL,
		},
	}, nil
}

// pickTermsForMasking unions curated keywords with tokenized candidates,
// shuffles and takes as many terms as the difficulty allows: hard masks
// two when more than one candidate exists, everything else masks one.
func pickTermsForMasking(entry BankEntry, difficulty model.QuizDifficulty, randFn func() float64) []string {
	seen := make(map[string]struct{})
	var pool []string
	for _, word := range entry.Keywords {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		pool = append(pool, word)
	}
	for _, word := range TokenizeCandidates(entry.Text) {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		pool = append(pool, word)
	}
	if len(pool) == 0 {
		return nil
	}

	blanks := 1
	if difficulty == model.DifficultyHard && len(pool) > 1 {
		blanks = 2
	}
	shuffled := random.Shuffle(pool, randFn)
	if blanks > len(shuffled) {
		blanks = len(shuffled)
	}
	return shuffled[:blanks]
}

// buildChoices assembles the correct label plus three non-colliding
// distractors and shuffles the four.
func (g *Generator) buildChoices(correctTerms []string, entry BankEntry, randFn func() float64) ([]string, int) {
	correctLabel := strings.Join(correctTerms, "／")

	seen := make(map[string]struct{})
	var pool []string
	add := func(word string) {
		if _, dup := seen[word]; dup {
			return
		}
		seen[word] = struct{}{}
		pool = append(pool, word)
	}
	for _, word := range entry.Distractors {
		add(word)
	}
	for _, word := range entry.Keywords {
		add(word)
	}
	for _, word := range g.bank.DistractorPool(entry.Category, entry.LawID) {
		add(word)
	}

	shuffledPool := random.Shuffle(pool, randFn)
	filtered := shuffledPool[:0]
	for _, word := range shuffledPool {
		if !contains(correctTerms, word) {
			filtered = append(filtered, word)
		}
	}

	var distractors []string
	if len(correctTerms) > 1 {
		// Same-arity tuples joined like the correct label.
		for len(distractors) < 3 && len(filtered) >= len(correctTerms) {
			slice := filtered[:len(correctTerms)]
			filtered = filtered[len(correctTerms):]
			label := strings.Join(slice, "／")
			if label != correctLabel && !contains(distractors, label) {
				distractors = append(distractors, label)
			}
		}
	} else {
		for _, candidate := range filtered {
			if candidate == correctLabel || contains(distractors, candidate) {
				continue
			}
			distractors = append(distractors, candidate)
			if len(distractors) == 3 {
				break
			}
		}
	}

	// Synthesize filler labels when the pool cannot produce three. A
	// numeric suffix resolves collisions with the correct label or an
	// existing distractor, keeping the loop bounded.
	for suffix := 0; len(distractors) < 3; {
		filler := fmt.Sprintf("選択肢%c", rune('A'+len(distractors)))
		if suffix > 0 {
			filler += strconv.Itoa(suffix)
		}
		if filler == correctLabel || contains(distractors, filler) {
			suffix++
			continue
		}
		distractors = append(distractors, filler)
		suffix = 0
	}

	combined := random.Shuffle(append([]string{correctLabel}, distractors...), randFn)
	answerIndex := 0
	for i, label := range combined {
		if label == correctLabel {
			answerIndex = i
			break
		}
	}
	return combined, answerIndex
}

// EnsureValid checks the question contract: exactly four distinct
// choices and an in-range answer index. A violation is a programming
// error in generation, not user input.
func EnsureValid(q *model.QuizQuestion) error {
	if q == nil || len(q.Choices) != 4 {
		return fmt.Errorf("quiz question must provide exactly four choices: %w", model.ErrValidation)
	}
	seen := make(map[string]struct{}, len(q.Choices))
	for _, choice := range q.Choices {
		if _, dup := seen[choice]; dup {
			return fmt.Errorf("quiz choices must be unique: %w", model.ErrValidation)
		}
		seen[choice] = struct{}{}
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
		return fmt.Errorf("answer index out of bounds: %w", model.ErrValidation)
	}
	return nil
}

// ModeForDifficulty biases the generation mode by difficulty: easy
// favors manual presets, hard favors synthesis.
func ModeForDifficulty(difficulty model.QuizDifficulty, randFn func() float64) Mode {
	if randFn == nil {
		randFn = rand.Float64
	}
	switch difficulty {
	case model.DifficultyEasy:
		if randFn() < 0.7 {
			return ModeManual
		}
		return ModeMixed
	case model.DifficultyHard:
		if randFn() < 0.6 {
			return ModeAuto
		}
		return ModeMixed
	default:
		return ModeMixed
	}
}

func contains(list []string, target string) bool {
	for _, entry := range list {
		if entry == target {
			return true
		}
	}
	return false
}
