package shuffle

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := NewCounter[int]()
	c.Add(0)
	c.Add(2)
	c.AddN(5, 10)
	c.AddN(0, 2)
	c.AddN(7, 0)
	c.AddN(8, -3)

	assert.Equal(t, map[int]int{0: 3, 2: 1, 5: 10}, maps.Collect(c.All()))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 3, c.Count(0))
	assert.Equal(t, 0, c.Count(7))
}

func TestCounter_AllIsRepeatable(t *testing.T) {
	c := NewCounter[string]()
	c.Add("a")
	c.AddN("b", 4)

	assert.Equal(t, maps.Collect(c.All()), maps.Collect(c.All()))
}

func TestCounter_AllStopsEarly(t *testing.T) {
	c := NewCounter[int]()
	for i := range 10 {
		c.Add(i)
	}

	seen := 0
	for range c.All() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}
