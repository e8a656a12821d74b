package summary

import (
	"math"
	"testing"
)

func TestRebin_NoOpWhenSmall(t *testing.T) {
	h := SizeCounts{1: 3, 7: 2, 250: 1}
	want := h.Clone()

	Rebin(h, 3)

	if len(h) != len(want) {
		t.Fatalf("expected %d bins, got %d", len(want), len(h))
	}

	for k, v := range want {
		if h[k] != v {
			t.Errorf("bin %d: expected %d, got %d", k, v, h[k])
		}
	}
}

func TestRebin_SixtyKeys(t *testing.T) {
	h := make(SizeCounts)
	h[1] = 10
	h[2] = 8

	for k := int64(3); k <= 60; k++ {
		h[k] = 1
	}

	if len(h) != 60 {
		t.Fatalf("fixture should have 60 bins, has %d", len(h))
	}

	before := h.Sum()

	Rebin(h, DefaultMaxEntries)

	if len(h) > DefaultMaxEntries {
		t.Errorf("expected at most %d bins, got %d", DefaultMaxEntries, len(h))
	}

	if got := h.Sum(); got != before {
		t.Errorf("expected sum %d after rebin, got %d", before, got)
	}

	// One doubling pass: width 2 maps 1->0, 2->2, 3->2, ..., 60->60.
	expected := SizeCounts{0: 10, 2: 9, 60: 1}
	for k, v := range expected {
		if h[k] != v {
			t.Errorf("bin %d: expected %d, got %d", k, v, h[k])
		}
	}

	for k := range h {
		if k%2 != 0 {
			t.Errorf("bin %d is not a multiple of the bin width 2", k)
		}
	}
}

func TestRebin_ConservesValues(t *testing.T) {
	tests := []struct {
		name       string
		keys       int64
		stride     int64
		maxEntries int
	}{
		{"dense", 500, 1, 50},
		{"sparse", 200, 37, 10},
		{"single bin budget", 100, 3, 1},
		{"zero budget", 20, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make(SizeCounts)
			storage := make(SizeStorage)

			for i := int64(0); i < tt.keys; i++ {
				k := i * tt.stride
				counts[k] = i%7 + 1
				storage[k] = float64(i%13) + 0.123
			}

			countSum := counts.Sum()
			storageSum := storage.Sum()

			Rebin(counts, tt.maxEntries)
			Rebin(storage, tt.maxEntries)

			limit := max(tt.maxEntries, 1)
			if len(counts) > limit || len(storage) > limit {
				t.Errorf("expected at most %d bins, got %d and %d", limit, len(counts), len(storage))
			}

			if got := counts.Sum(); got != countSum {
				t.Errorf("count sum: expected %d, got %d", countSum, got)
			}

			if got := storage.Sum(); math.Abs(got-storageSum) > 1e-6 {
				t.Errorf("storage sum: expected %f, got %f", storageSum, got)
			}
		})
	}
}

func TestRebin_Repeated(t *testing.T) {
	h := make(SizeCounts)
	for k := int64(1); k <= 300; k++ {
		h[k] = 2
	}

	Rebin(h, 50)
	first := h.Clone()

	Rebin(h, 50)

	if len(h) != len(first) {
		t.Fatalf("second rebin changed bin count from %d to %d", len(first), len(h))
	}

	for k, v := range first {
		if h[k] != v {
			t.Errorf("bin %d: expected %d, got %d", k, v, h[k])
		}
	}

	// Adding more bins and rebinning again continues from the coarsened state.
	for k := int64(301); k <= 1000; k++ {
		h[k] = 1
	}

	total := h.Sum()

	Rebin(h, 50)

	if len(h) > 50 {
		t.Errorf("expected at most 50 bins, got %d", len(h))
	}

	if h.Sum() != total {
		t.Errorf("expected sum %d, got %d", total, h.Sum())
	}
}

func TestHistogram_Entries(t *testing.T) {
	h := YearCounts{"2021": 4, "1999": 1, "2010": 2}

	entries := h.Entries()

	want := []string{"1999", "2010", "2021"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}

	for i, e := range entries {
		if e.Key != want[i] {
			t.Errorf("entry %d: expected key %s, got %s", i, want[i], e.Key)
		}

		if e.Value != h[e.Key] {
			t.Errorf("entry %s: expected value %d, got %d", e.Key, h[e.Key], e.Value)
		}
	}
}
