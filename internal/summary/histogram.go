package summary

import (
	"cmp"
	"maps"
	"slices"
)

// Value is the accumulated quantity held by a histogram bin.
type Value interface {
	~int64 | ~float64
}

// Histogram maps a bin key to an accumulated value.
type Histogram[K cmp.Ordered, V Value] map[K]V

// Size histograms are keyed by file size in whole megabytes (rounded up),
// year histograms by the four-digit modification year.
type (
	SizeCounts  = Histogram[int64, int64]
	SizeStorage = Histogram[int64, float64]
	YearCounts  = Histogram[string, int64]
	YearStorage = Histogram[string, float64]
)

// Entry is a single histogram bin.
type Entry[K cmp.Ordered, V Value] struct {
	// Key is the bin key.
	Key K `json:"key"`
	// Value is the accumulated value of the bin.
	Value V `json:"value"`
}

// Add accumulates v into the bin at key.
func (h Histogram[K, V]) Add(key K, v V) {
	h[key] += v
}

// Sum returns the total of all bins.
func (h Histogram[K, V]) Sum() V {
	var total V
	for _, v := range h {
		total += v
	}

	return total
}

// Entries returns the bins sorted by ascending key.
func (h Histogram[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, len(h))
	for _, k := range slices.Sorted(maps.Keys(h)) {
		entries = append(entries, Entry[K, V]{Key: k, Value: h[k]})
	}

	return entries
}

// Clone returns an independent copy of the histogram.
func (h Histogram[K, V]) Clone() Histogram[K, V] {
	return maps.Clone(h)
}

// Rebin coarsens a size histogram in place until it holds at most maxEntries bins.
// The bin width starts at 1 and doubles on every pass; each pass moves every bin
// to floor(key/width)*width, adding its value into whatever is already there.
// Values are conserved exactly, only key resolution is lost. A histogram that is
// already small enough is left untouched. maxEntries below 1 is treated as 1.
func Rebin[V Value](h Histogram[int64, V], maxEntries int) {
	maxEntries = max(maxEntries, 1)

	binSize := int64(1)
	for len(h) > maxEntries {
		binSize *= 2

		for _, k := range slices.Collect(maps.Keys(h)) {
			coarse := (k / binSize) * binSize
			if coarse == k {
				continue
			}

			h[coarse] += h[k]
			delete(h, k)
		}
	}
}
