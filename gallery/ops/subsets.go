package ops

// combinations walks the k-element index subsets of [0, n) in
// lexicographic order: the first element is fixed while the rest vary.
type combinations struct {
	n, k int
	idx  []int
	done bool
}

func newCombinations(n, k int) *combinations {
	c := &combinations{n: n, k: k, done: k <= 0 || k > n}
	if !c.done {
		c.idx = make([]int, k)
		for i := range c.idx {
			c.idx[i] = i
		}
	}
	return c
}

// Next returns the next subset, or false once all have been produced.
// The returned slice is a copy and may be retained.
func (c *combinations) Next() ([]int, bool) {
	if c.done {
		return nil, false
	}
	out := append([]int(nil), c.idx...)

	// advance: find the rightmost index that can still move right
	i := c.k - 1
	for i >= 0 && c.idx[i] == c.n-c.k+i {
		i--
	}
	if i < 0 {
		c.done = true
	} else {
		c.idx[i]++
		for j := i + 1; j < c.k; j++ {
			c.idx[j] = c.idx[j-1] + 1
		}
	}
	return out, true
}

// binomial returns C(n, k), saturating at limit so large term lists do
// not overflow.
func binomial(n, k, limit int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
		if r >= limit {
			return limit
		}
	}
	return r
}
