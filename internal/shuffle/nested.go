package shuffle

import (
	"iter"
	"math/rand/v2"
)

// Nested interleaves several inner sequences (buckets).
// The outer sequence holds one entry per bucket, weighted by the bucket's
// length, so "which bucket next" is shuffled and spread out on its own.
// Inner sequences are owned by the Nested value and must not be modified after
// being added.
type Nested[T any] struct {
	buckets []*Sequence[T]
	outer   Sequence[int]
}

// NewNested creates an empty nested composition.
func NewNested[T any]() *Nested[T] {
	return &Nested[T]{outer: Sequence[int]{maxSame: 1}}
}

// Add registers bucket with an outer weight equal to its length.
func (n *Nested[T]) Add(bucket *Sequence[T]) error {
	if err := n.outer.AddN(len(n.buckets), bucket.Len()); err != nil {
		return err
	}
	n.buckets = append(n.buckets, bucket)
	return nil
}

// Shuffle shuffles every bucket and then the bucket order.
func (n *Nested[T]) Shuffle(r *rand.Rand, maxLookahead int) {
	for _, b := range n.buckets {
		b.Shuffle(r, maxLookahead)
	}
	n.outer.Shuffle(r, maxLookahead)
}

// All yields the flattened order: each outer slot emits the next unconsumed
// item of its bucket. Every call starts from fresh cursors.
func (n *Nested[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		cursors := make([]int, len(n.buckets))
		for b := range n.outer.All() {
			item, ok := n.buckets[b].Get(cursors[b])
			cursors[b]++
			if !ok {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Values returns the flattened order.
func (n *Nested[T]) Values() []T {
	out := make([]T, 0, n.Len())
	for item := range n.All() {
		out = append(out, item)
	}
	return out
}

// Len returns the total number of items across all buckets.
func (n *Nested[T]) Len() int {
	return n.outer.Len()
}

// Buckets returns the number of registered buckets.
func (n *Nested[T]) Buckets() int {
	return len(n.buckets)
}
