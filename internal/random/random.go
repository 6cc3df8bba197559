// Package random implements the sampling strategies shared by the draw
// feature and the quiz generator. The random source is always injected
// as a function so callers and tests can make every pick reproducible.
package random

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/hourei/hourei-backend/internal/model"
)

// MajorSixLaws is the fixed curated set of foundational statutes given
// elevated weight in the draw feature.
var MajorSixLaws = map[string]struct{}{
	"日本国憲法": {},
	"民法":    {},
	"商法":    {},
	"民事訴訟法": {},
	"刑法":    {},
	"刑事訴訟法": {},
}

// DefaultKey renders a value as a history key: strings pass through,
// everything else is serialized structurally.
func DefaultKey(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}

// UniqueOptions configure PickUnique.
type UniqueOptions[T any] struct {
	// History holds keys already drawn; mutated in place. A nil history
	// starts empty.
	History map[string]struct{}
	// KeyFn defaults to DefaultKey.
	KeyFn func(T) string
	// AllowReset clears the history instead of failing once every item
	// has been drawn. Defaults to true; set DisallowReset to opt out.
	DisallowReset bool
	// Rand returns a value in [0, 1). Defaults to math/rand.Float64.
	Rand func() float64
}

// UniqueResult carries the pick and the (mutated) history.
type UniqueResult[T any] struct {
	Value   T
	History map[string]struct{}
}

// PickUnique draws an item not yet present in the history. When the
// pool is exhausted the history resets and the full pool becomes
// eligible again, unless resets are disallowed, in which case
// model.ErrPoolExhausted is returned.
func PickUnique[T any](items []T, opts UniqueOptions[T]) (UniqueResult[T], error) {
	var zero UniqueResult[T]
	if len(items) == 0 {
		return zero, model.ErrEmptyPool
	}

	history := opts.History
	if history == nil {
		history = make(map[string]struct{})
	}
	keyFn := opts.KeyFn
	if keyFn == nil {
		keyFn = func(v T) string { return DefaultKey(v) }
	}
	randFn := opts.Rand
	if randFn == nil {
		randFn = rand.Float64
	}

	pool := make([]T, 0, len(items))
	for _, item := range items {
		if _, seen := history[keyFn(item)]; !seen {
			pool = append(pool, item)
		}
	}
	if len(pool) == 0 {
		if opts.DisallowReset {
			return zero, model.ErrPoolExhausted
		}
		for k := range history {
			delete(history, k)
		}
		pool = append(pool, items...)
	}

	index := int(randFn() * float64(len(pool)))
	if index >= len(pool) {
		index = len(pool) - 1
	}
	value := pool[index]
	history[keyFn(value)] = struct{}{}
	return UniqueResult[T]{Value: value, History: history}, nil
}

// WeightedItem pairs a value with an optional explicit weight and law
// name override.
type WeightedItem[T any] struct {
	Value   T
	Weight  float64
	LawName string
}

// WeightedOptions configure PickWeighted.
type WeightedOptions[T any] struct {
	// DefaultWeight applies to entries with a zero weight. Defaults to 1.
	DefaultWeight float64
	// MajorSixMultiplier scales entries whose resolved law name is one
	// of the major six statutes. Defaults to 1.
	MajorSixMultiplier float64
	// LawNameFn resolves a law name from a value when the entry carries
	// none.
	LawNameFn func(T) string
	// Rand returns a value in [0, 1). Defaults to math/rand.Float64.
	Rand func() float64
}

// PickWeighted performs cumulative-sum weighted selection. Entries whose
// weight is not positive after the major-six multiplier are excluded;
// when the total weight is zero model.ErrZeroWeight is returned.
func PickWeighted[T any](items []WeightedItem[T], opts WeightedOptions[T]) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, model.ErrEmptyPool
	}

	defaultWeight := opts.DefaultWeight
	if defaultWeight == 0 {
		defaultWeight = 1
	}
	multiplier := opts.MajorSixMultiplier
	if multiplier == 0 {
		multiplier = 1
	}
	randFn := opts.Rand
	if randFn == nil {
		randFn = rand.Float64
	}

	type weighted struct {
		value  T
		weight float64
	}
	normalized := make([]weighted, 0, len(items))
	total := 0.0
	for _, item := range items {
		weight := item.Weight
		if weight == 0 {
			weight = defaultWeight
		}
		lawName := item.LawName
		if lawName == "" && opts.LawNameFn != nil {
			lawName = opts.LawNameFn(item.Value)
		}
		if _, major := MajorSixLaws[lawName]; major {
			weight *= multiplier
		}
		if weight <= 0 {
			continue
		}
		normalized = append(normalized, weighted{value: item.Value, weight: weight})
		total += weight
	}
	if total <= 0 {
		return zero, model.ErrZeroWeight
	}

	threshold := randFn() * total
	cumulative := 0.0
	for _, entry := range normalized {
		cumulative += entry.weight
		if threshold <= cumulative {
			return entry.value, nil
		}
	}
	return normalized[len(normalized)-1].value, nil
}

// Shuffle returns a copy of items in Fisher-Yates order driven by the
// supplied random source.
func Shuffle[T any](items []T, randFn func() float64) []T {
	if randFn == nil {
		randFn = rand.Float64
	}
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(randFn() * float64(i+1))
		if j > i {
			j = i
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// FromSlice picks a uniform random element.
func FromSlice[T any](items []T, randFn func() float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, model.ErrEmptyPool
	}
	if randFn == nil {
		randFn = rand.Float64
	}
	index := int(randFn() * float64(len(items)))
	if index >= len(items) {
		index = len(items) - 1
	}
	return items[index], nil
}
