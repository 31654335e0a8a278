package miner

import "sort"

// Counts accumulates value frequencies during mining
type Counts map[string]int

// Add increments the count for a value
func (c Counts) Add(value string) {
	c[value]++
}

// TopN returns the n most frequent values, ranked by descending count
// with ties broken alphabetically. n <= 0 means no limit.
func (c Counts) TopN(n int) []string {
	values := make([]string, 0, len(c))
	for v := range c {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if c[values[i]] != c[values[j]] {
			return c[values[i]] > c[values[j]]
		}
		return values[i] < values[j]
	})
	if n > 0 && len(values) > n {
		values = values[:n]
	}
	return values
}

// AtLeast returns all values with count >= minCount, sorted ascending
func (c Counts) AtLeast(minCount int) []string {
	var values []string
	for v, n := range c {
		if n >= minCount {
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

// sortedCopy returns the values sorted ascending, for schema vocabularies
// that are frequency-filtered first and alphabetical in the final document
func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
