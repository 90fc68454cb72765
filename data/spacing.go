package data

import "sort"

// Spacing is one entry of a frequency table of time differences.
type Spacing struct {
	Dt    float64
	Count int
}

// NewSpacingTable counts how often each difference occurs. The table is ordered
// by ascending Dt. Differences are compared exactly.
func NewSpacingTable(diffs []float64) []Spacing {
	counts := make(map[float64]int, len(diffs))
	for _, dt := range diffs {
		counts[dt]++
	}
	table := make([]Spacing, 0, len(counts))
	for dt, count := range counts {
		table = append(table, Spacing{Dt: dt, Count: count})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Dt < table[j].Dt })
	return table
}

// MostFrequent returns the spacing with the highest count. On ties the
// smallest spacing wins. An empty table yields a unit spacing.
func MostFrequent(table []Spacing) float64 {
	if len(table) == 0 {
		return 1
	}
	best := table[0]
	for _, s := range table[1:] {
		if s.Count > best.Count {
			best = s
		}
	}
	return best.Dt
}
