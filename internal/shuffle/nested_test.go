package shuffle

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weighted struct {
	item   string
	weight int
}

func buildNested(t *testing.T, buckets ...[]weighted) *Nested[string] {
	t.Helper()
	n := NewNested[string]()
	for _, b := range buckets {
		s := NewSequence[string]()
		for _, w := range b {
			require.NoError(t, s.AddN(w.item, w.weight))
		}
		require.NoError(t, n.Add(s))
	}
	return n
}

func TestNested_Empty(t *testing.T) {
	n := NewNested[string]()

	n.Shuffle(newRand(1), 10)

	assert.Empty(t, n.Values())
	assert.Equal(t, 0, n.Len())
	assert.Equal(t, 0, n.Buckets())
}

func TestNested_EmptyBucket(t *testing.T) {
	n := buildNested(t,
		nil,
		[]weighted{{"x", 1}, {"y", 1}},
	)

	n.Shuffle(newRand(1), 10)

	assert.Equal(t, 2, n.Buckets())
	assert.ElementsMatch(t, []string{"x", "y"}, n.Values())
}

func TestNested_TwoBuckets(t *testing.T) {
	for seed := range uint64(50) {
		n := buildNested(t,
			[]weighted{{"x", 1}, {"y", 1}},
			[]weighted{{"z", 1}, {"w", 1}},
		)

		n.Shuffle(newRand(seed), 10)

		got := n.Values()
		require.Len(t, got, 4)
		require.ElementsMatch(t, []string{"x", "y", "z", "w"}, got)
	}
}

func TestNested_WeightedBuckets(t *testing.T) {
	n := buildNested(t,
		[]weighted{{"x", 1}, {"y", 1}},
		[]weighted{{"z", 2}, {"w", 2}},
	)

	n.Shuffle(newRand(3), 10)

	got := n.Values()
	assert.Len(t, got, 6)
	assert.Equal(t, map[string]int{"x": 1, "y": 1, "z": 2, "w": 2}, countItems(got))
}

func TestNested_LengthLaw(t *testing.T) {
	buckets := [][]weighted{
		{{"a1", 3}, {"a2", 1}},
		{{"b1", 1}},
		{{"c1", 2}, {"c2", 2}, {"c3", 1}},
		{{"d1", 4}},
	}
	want := map[string]int{}
	total := 0
	for _, b := range buckets {
		for _, w := range b {
			want[w.item] += w.weight
			total += w.weight
		}
	}

	for seed := range uint64(100) {
		n := buildNested(t, buckets...)
		n.Shuffle(newRand(seed), 10)

		require.Equal(t, total, n.Len())
		got := n.Values()
		require.Len(t, got, total)
		require.Equal(t, want, countItems(got))
	}
}

func TestNested_BucketsSpreadOut(t *testing.T) {
	for seed := range uint64(200) {
		n := NewNested[int]()
		for i := range 4 {
			s := NewSequence[int]()
			require.NoError(t, s.AddN(i, 4))
			require.NoError(t, n.Add(s))
		}

		n.Shuffle(newRand(seed), 10)

		got := n.Values()
		require.Len(t, got, 16)
		if adjacentRepeats(got) > 0 {
			t.Fatalf("seed %d: adjacent repeat in %v", seed, got)
		}
	}
}

func TestNested_IterationIsStable(t *testing.T) {
	n := buildNested(t,
		[]weighted{{"x", 2}, {"y", 1}},
		[]weighted{{"z", 1}, {"w", 3}},
		[]weighted{{"v", 2}},
	)
	n.Shuffle(newRand(8), 10)

	first := slices.Collect(n.All())
	second := slices.Collect(n.All())
	assert.Equal(t, first, second)
}

func TestNested_ReshuffleKeepsContents(t *testing.T) {
	n := buildNested(t,
		[]weighted{{"x", 2}, {"y", 1}},
		[]weighted{{"z", 1}, {"w", 3}},
	)
	r := newRand(2)

	n.Shuffle(r, 10)
	first := countItems(n.Values())
	n.Shuffle(r, 10)
	second := countItems(n.Values())

	assert.Equal(t, first, second)
}

func TestNested_ConcurrentIteration(t *testing.T) {
	n := buildNested(t,
		[]weighted{{"x", 2}, {"y", 1}},
		[]weighted{{"z", 1}, {"w", 3}},
	)
	n.Shuffle(newRand(4), 10)
	want := n.Values()

	results := make(chan []string, 4)
	for range 4 {
		go func() { results <- n.Values() }()
	}
	for range 4 {
		assert.Equal(t, want, <-results)
	}
}
