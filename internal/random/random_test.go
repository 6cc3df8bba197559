package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourei/hourei-backend/internal/model"
)

func firstPick() func() float64 {
	return func() float64 { return 0 }
}

func TestPickUniqueCyclesThroughPool(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	history := make(map[string]struct{})

	// Four picks with a deterministic source draw each item exactly once.
	seen := make(map[string]int)
	for i := 0; i < 4; i++ {
		result, err := PickUnique(items, UniqueOptions[string]{History: history, Rand: firstPick()})
		require.NoError(t, err)
		seen[result.Value]++
		history = result.History
	}
	assert.Len(t, seen, 4)
	for item, count := range seen {
		assert.Equal(t, 1, count, "item %s drawn more than once", item)
	}

	// The fifth pick resets the history and starts a new cycle.
	result, err := PickUnique(items, UniqueOptions[string]{History: history, Rand: firstPick()})
	require.NoError(t, err)
	assert.Equal(t, "a", result.Value)
	assert.Len(t, result.History, 1)
}

func TestPickUniqueDisallowReset(t *testing.T) {
	history := map[string]struct{}{"a": {}}
	_, err := PickUnique([]string{"a"}, UniqueOptions[string]{
		History:       history,
		DisallowReset: true,
	})
	assert.ErrorIs(t, err, model.ErrPoolExhausted)
}

func TestPickUniqueEmptyPool(t *testing.T) {
	_, err := PickUnique(nil, UniqueOptions[string]{})
	assert.ErrorIs(t, err, model.ErrEmptyPool)
}

func TestPickUniqueCustomKey(t *testing.T) {
	type prov struct{ Path string }
	items := []prov{{Path: "第1条"}, {Path: "第2条"}}

	result, err := PickUnique(items, UniqueOptions[prov]{
		KeyFn: func(p prov) string { return p.Path },
		Rand:  firstPick(),
	})
	require.NoError(t, err)
	_, ok := result.History["第1条"]
	assert.True(t, ok)
}

func TestPickWeightedMajorSixMultiplier(t *testing.T) {
	items := []WeightedItem[string]{
		{Value: "minor", Weight: 1, LawName: "軽犯罪法"},
		{Value: "major", Weight: 1, LawName: "民法"},
	}

	// Weights become 1 and 10; a threshold draw past the first weight
	// lands on the boosted entry.
	got, err := PickWeighted(items, WeightedOptions[string]{
		MajorSixMultiplier: 10,
		Rand:               func() float64 { return 0.5 }, // threshold 5.5 of 11
	})
	require.NoError(t, err)
	assert.Equal(t, "major", got)
}

func TestPickWeightedDropsNonPositiveWeights(t *testing.T) {
	items := []WeightedItem[string]{
		{Value: "dropped", Weight: -1},
		{Value: "kept", Weight: 2},
	}
	got, err := PickWeighted(items, WeightedOptions[string]{Rand: firstPick()})
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}

func TestPickWeightedZeroTotal(t *testing.T) {
	items := []WeightedItem[string]{{Value: "a", Weight: -5}}
	_, err := PickWeighted(items, WeightedOptions[string]{})
	assert.ErrorIs(t, err, model.ErrZeroWeight)
}

func TestPickWeightedEmpty(t *testing.T) {
	_, err := PickWeighted(nil, WeightedOptions[string]{})
	assert.ErrorIs(t, err, model.ErrEmptyPool)
}

func TestPickWeightedDefaultWeightAndLawNameFn(t *testing.T) {
	type law struct{ Name string }
	items := []WeightedItem[law]{
		{Value: law{Name: "刑法"}},
		{Value: law{Name: "漁業法"}},
	}
	// With the multiplier the first entry carries 6 of 7 total weight.
	got, err := PickWeighted(items, WeightedOptions[law]{
		MajorSixMultiplier: 6,
		LawNameFn:          func(l law) string { return l.Name },
		Rand:               func() float64 { return 0.8 }, // threshold 5.6
	})
	require.NoError(t, err)
	assert.Equal(t, "刑法", got.Name)
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	out := Shuffle(items, func() float64 { return 0.99 })
	assert.ElementsMatch(t, items, out)
	// The input slice is untouched.
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
}

func TestFromSlice(t *testing.T) {
	got, err := FromSlice([]string{"x", "y"}, func() float64 { return 0.9 })
	require.NoError(t, err)
	assert.Equal(t, "y", got)

	_, err = FromSlice[string](nil, nil)
	assert.ErrorIs(t, err, model.ErrEmptyPool)
}
