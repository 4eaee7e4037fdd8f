package shuffle

import "iter"

// Counter accumulates repeated occurrences of identical items.
type Counter[T comparable] struct {
	counts map[T]int
}

// NewCounter creates an empty counter.
func NewCounter[T comparable]() *Counter[T] {
	return &Counter[T]{counts: make(map[T]int)}
}

// Add counts one occurrence of item.
func (c *Counter[T]) Add(item T) {
	c.AddN(item, 1)
}

// AddN counts n occurrences of item. n <= 0 is a no-op.
func (c *Counter[T]) AddN(item T, n int) {
	if n <= 0 {
		return
	}
	c.counts[item] += n
}

// Count returns the number of occurrences recorded for item.
func (c *Counter[T]) Count(item T) int {
	return c.counts[item]
}

// Len returns the number of distinct items.
func (c *Counter[T]) Len() int {
	return len(c.counts)
}

// All yields every (item, count) pair. Order is unspecified.
func (c *Counter[T]) All() iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		for item, n := range c.counts {
			if !yield(item, n) {
				return
			}
		}
	}
}
