package ops

import (
	"testing"

	"github.com/stvp/assert"
)

func collect(n, k int) [][]int {
	var out [][]int
	c := newCombinations(n, k)
	for {
		idx, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, idx)
	}
}

func TestCombinationsOrder(t *testing.T) {
	assert.Equal(t, collect(4, 2), [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
	assert.Equal(t, collect(3, 3), [][]int{{0, 1, 2}})
	assert.Equal(t, collect(3, 1), [][]int{{0}, {1}, {2}})
}

func TestCombinationsDegenerate(t *testing.T) {
	assert.Equal(t, len(collect(3, 0)), 0)
	assert.Equal(t, len(collect(2, 3)), 0)
	assert.Equal(t, len(collect(0, 1)), 0)
}

func TestCombinationsCount(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for k := 1; k <= n; k++ {
			assert.Equal(t, len(collect(n, k)), binomial(n, k, 1<<30))
		}
	}
}

func TestBinomialSaturates(t *testing.T) {
	assert.Equal(t, binomial(5, 2, 100), 10)
	assert.Equal(t, binomial(60, 30, 1000), 1000)
	assert.Equal(t, binomial(3, 4, 100), 0)
}
