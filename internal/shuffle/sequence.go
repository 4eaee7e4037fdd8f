// Package shuffle implements weighted anti-clustering shuffles.
//
// A Sequence expands weighted items into a slot table, randomizes it, and then
// repairs the result so that equal items are spread apart. A Nested composition
// applies the same idea on two levels: buckets (e.g. artists) are spread apart,
// and items inside each bucket are spread apart.
package shuffle

import (
	"errors"
	"iter"
	"math"
	"math/rand/v2"
)

// MaxSlots is the largest slot table a Sequence accepts.
const MaxSlots = math.MaxInt32

// repairPasses is the number of extra sweeps run after the first one while the
// chain bound stays positive.
const repairPasses = 4

var (
	// ErrNegativeWeight is returned when an item is added with a negative weight.
	ErrNegativeWeight = errors.New("shuffle: negative weight")
	// ErrTooManySlots is returned when an add would grow the slot table past MaxSlots.
	ErrTooManySlots = errors.New("shuffle: too many slots")
)

// Sequence holds weighted items and a slot table referencing them.
// Every entry of order is a valid index into items; AddN is the only writer
// that introduces new entries, and shuffling only permutes them.
type Sequence[T any] struct {
	items   []T
	order   []int
	maxSame int
}

// NewSequence creates an empty sequence.
func NewSequence[T any]() *Sequence[T] {
	return &Sequence[T]{maxSame: 1}
}

// Add adds item with weight 1.
func (s *Sequence[T]) Add(item T) error {
	return s.AddN(item, 1)
}

// AddN adds item so that it occupies weight slots.
// A zero weight registers the item but it never appears in the output.
func (s *Sequence[T]) AddN(item T, weight int) error {
	if weight < 0 {
		return ErrNegativeWeight
	}
	if weight > MaxSlots-len(s.order) {
		return ErrTooManySlots
	}
	if s.maxSame < 1 {
		s.maxSame = 1
	}
	s.maxSame = max(s.maxSame, weight)

	idx := len(s.items)
	s.items = append(s.items, item)
	for range weight {
		s.order = append(s.order, idx)
	}
	return nil
}

// Shuffle randomizes the slot table and then spreads out equal items.
// Equal items are kept at least maxLookahead slots apart where the weight
// distribution allows it; the repair is a bounded heuristic, so heavily skewed
// weights may still leave some runs.
func (s *Sequence[T]) Shuffle(r *rand.Rand, maxLookahead int) {
	n := len(s.order)
	if n == 0 {
		return
	}
	r.Shuffle(n, func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})

	lookahead := min(maxLookahead, n/max(s.maxSame, 1))
	if lookahead < 2 {
		return
	}
	s.repair(lookahead)
	if lookahead > 2 && s.hasAdjacentRepeat() {
		s.repair(2)
	}
}

// repair runs one full sweep and then keeps sweeping while the decaying chain
// bound is positive, for at most repairPasses more passes.
func (s *Sequence[T]) repair(lookahead int) {
	n := len(s.order)
	chain := 0
	for i := range n {
		chain = max(chain-1, s.sweep(i, lookahead))
	}
	for range repairPasses {
		for i := range n {
			if chain < 1 {
				return
			}
			chain = max(chain-1, s.sweep(i, lookahead))
		}
	}
}

// sweep makes the lookahead-1 slots after i differ from slot i, pulling
// replacements from an advancing swap pointer. It returns how far the pointer
// moved, or 0 if nothing was swapped.
func (s *Sequence[T]) sweep(i, lookahead int) int {
	n := len(s.order)
	curr := s.order[i]
	swp := i
	hit := false
	for j := i + 1; j < i+lookahead; j++ {
		pos := j % n
		swp++
		for tries := 0; s.order[pos] == curr && tries < n; tries++ {
			hit = true
			swp++
			k := swp % n
			s.order[pos], s.order[k] = s.order[k], s.order[pos]
		}
	}
	if !hit {
		return 0
	}
	return swp - i
}

func (s *Sequence[T]) hasAdjacentRepeat() bool {
	for i := 1; i < len(s.order); i++ {
		if s.order[i] == s.order[i-1] {
			return true
		}
	}
	return false
}

// Get returns the item at slot index, or false if index is out of range.
func (s *Sequence[T]) Get(index int) (T, bool) {
	if index < 0 || index >= len(s.order) {
		var zero T
		return zero, false
	}
	return s.items[s.order[index]], true
}

// Len returns the total number of slots.
func (s *Sequence[T]) Len() int {
	return len(s.order)
}

// IsEmpty reports whether the sequence has no slots.
func (s *Sequence[T]) IsEmpty() bool {
	return len(s.order) == 0
}

// All yields the items in slot order. Without a prior Shuffle this is the
// insertion order with each item repeated by its weight.
func (s *Sequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, idx := range s.order {
			if !yield(s.items[idx]) {
				return
			}
		}
	}
}

// Values returns the items in slot order.
func (s *Sequence[T]) Values() []T {
	out := make([]T, 0, len(s.order))
	for item := range s.All() {
		out = append(out, item)
	}
	return out
}
