package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/quiz"
)

func TestPickBankLawDeduplicatesAndBoostsMajorSix(t *testing.T) {
	entries := []quiz.BankEntry{
		{LawID: "129AC0000000089", LawName: "民法"},
		{LawID: "129AC0000000089", LawName: "民法"},
		{LawID: "322AC0000000049", LawName: "労働基準法"},
	}

	// 民法 carries the boosted weight 3 against 労働基準法's 1, so the
	// cutover sits at 3 of 4.
	picked, err := pickBankLaw(entries, func() float64 { return 0.7 })
	require.NoError(t, err)
	assert.Equal(t, "129AC0000000089", picked.lawID)

	picked, err = pickBankLaw(entries, func() float64 { return 0.8 })
	require.NoError(t, err)
	assert.Equal(t, "労働基準法", picked.lawName)
}

func TestPickBankLawFromEmbeddedBank(t *testing.T) {
	picked, err := pickBankLaw(quiz.DefaultBank().EntriesByCategory(""), func() float64 { return 0 })
	require.NoError(t, err)
	assert.NotEmpty(t, picked.lawID)
	assert.NotEmpty(t, picked.lawName)
}

func TestPickBankLawEmptyPool(t *testing.T) {
	_, err := pickBankLaw(nil, nil)
	assert.ErrorIs(t, err, model.ErrEmptyPool)
}
