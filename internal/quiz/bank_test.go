package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBankLoads(t *testing.T) {
	bank := DefaultBank()
	entries := bank.EntriesByCategory("")
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		assert.NotEmpty(t, entry.ID)
		assert.NotEmpty(t, entry.LawID)
		assert.NotEmpty(t, entry.LawName)
		assert.NotEmpty(t, entry.Text)
		if entry.Manual != nil {
			assert.Len(t, entry.Manual.Choices, 4, "preset %s must carry four choices", entry.ID)
			assert.GreaterOrEqual(t, entry.Manual.AnswerIndex, 0)
			assert.Less(t, entry.Manual.AnswerIndex, len(entry.Manual.Choices))
		}
	}

	assert.NotEmpty(t, bank.PresetEntries())
	assert.NotEmpty(t, bank.Categories())
}

func TestEntriesByCategory(t *testing.T) {
	bank := NewBank(testEntries())

	assert.Len(t, bank.EntriesByCategory(""), 2)
	civil := bank.EntriesByCategory("民事")
	require.Len(t, civil, 1)
	assert.Equal(t, "civil-90", civil[0].ID)
	assert.Empty(t, bank.EntriesByCategory("存在しない"))
}

func TestDistractorPoolExcludesLaw(t *testing.T) {
	bank := NewBank(testEntries())

	pool := bank.DistractorPool("", "129AC0000000089")
	assert.NotContains(t, pool, "公の秩序")
	assert.Contains(t, pool, "死刑")
	assert.Contains(t, pool, "罰金")

	// Category filter narrows the source entries.
	pool = bank.DistractorPool("民事", "")
	assert.Contains(t, pool, "無効")
	assert.NotContains(t, pool, "罰金")
}
