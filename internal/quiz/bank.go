// Package quiz generates fill-in-the-blank questions from a curated
// bank of statute excerpts. The bank is static reference data embedded
// at build time; it is never mutated at runtime.
package quiz

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hourei/hourei-backend/internal/model"
)

//go:embed bank.yaml
var bankYAML []byte

// ManualPreset is a hand-authored question attached to a bank entry.
type ManualPreset struct {
	Prompt      string   `yaml:"prompt" json:"prompt"`
	MaskedText  string   `yaml:"maskedText" json:"maskedText"`
	Blanks      []string `yaml:"blanks" json:"blanks"`
	Choices     []string `yaml:"choices" json:"choices"`
	AnswerIndex int      `yaml:"answerIndex" json:"answerIndex"`
	Explanation string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// BankEntry is one curated statute excerpt.
type BankEntry struct {
	ID            string               `yaml:"id" json:"id"`
	LawID         string               `yaml:"lawId" json:"lawId"`
	LawName       string               `yaml:"lawName" json:"lawName"`
	ArticleNumber string               `yaml:"articleNumber" json:"articleNumber"`
	Category      string               `yaml:"category" json:"category"`
	Difficulty    model.QuizDifficulty `yaml:"difficulty" json:"difficulty"`
	Text          string               `yaml:"text" json:"text"`
	SourceURL     string               `yaml:"sourceUrl,omitempty" json:"sourceUrl,omitempty"`
	Keywords      []string             `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Distractors   []string             `yaml:"distractors,omitempty" json:"distractors,omitempty"`
	Manual        *ManualPreset        `yaml:"manual,omitempty" json:"manual,omitempty"`
}

// Bank is an injectable, read-only collection of entries.
type Bank struct {
	entries []BankEntry
}

// NewBank wraps the given entries.
func NewBank(entries []BankEntry) *Bank {
	return &Bank{entries: entries}
}

// DefaultBank parses the embedded bank data. The embedded file is part
// of the build, so a parse failure is a programming error.
func DefaultBank() *Bank {
	bank, err := loadBank(bankYAML)
	if err != nil {
		panic(fmt.Sprintf("quiz: embedded bank is invalid: %v", err))
	}
	return bank
}

func loadBank(raw []byte) (*Bank, error) {
	var doc struct {
		Entries []BankEntry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return NewBank(doc.Entries), nil
}

// Categories lists the distinct categories in first-seen order.
func (b *Bank) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, entry := range b.entries {
		if _, ok := seen[entry.Category]; ok {
			continue
		}
		seen[entry.Category] = struct{}{}
		out = append(out, entry.Category)
	}
	return out
}

// EntriesByCategory returns entries matching category, or every entry
// when category is empty.
func (b *Bank) EntriesByCategory(category string) []BankEntry {
	if category == "" {
		out := make([]BankEntry, len(b.entries))
		copy(out, b.entries)
		return out
	}
	var out []BankEntry
	for _, entry := range b.entries {
		if entry.Category == category {
			out = append(out, entry)
		}
	}
	return out
}

// DistractorPool collects keywords and distractors across entries of the
// given category (every entry when empty), excluding entries with the
// given law id. Order follows the bank, de-duplicated.
func (b *Bank) DistractorPool(category, excludeLawID string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(word string) {
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	for _, entry := range b.entries {
		if category != "" && entry.Category != category {
			continue
		}
		if excludeLawID != "" && entry.LawID == excludeLawID {
			continue
		}
		for _, word := range entry.Keywords {
			add(word)
		}
		for _, word := range entry.Distractors {
			add(word)
		}
	}
	return out
}

// PresetEntries returns the entries that carry a manual preset.
func (b *Bank) PresetEntries() []BankEntry {
	var out []BankEntry
	for _, entry := range b.entries {
		if entry.Manual != nil {
			out = append(out, entry)
		}
	}
	return out
}
