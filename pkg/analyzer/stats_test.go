package analyzer

import (
	"math"
	"testing"
)

func TestCountRangeInclusiveEdges(t *testing.T) {
	ts := []int64{100, 200, 300}

	tests := []struct {
		name     string
		min, max int64
		want     int
	}{
		{"all inside", 0, 400, 3},
		{"lower edge counts", 100, 150, 1},
		{"upper edge counts", 150, 200, 1},
		{"single point range", 200, 200, 1},
		{"none inside", 301, 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countRange(ts, tt.min, tt.max); got != tt.want {
				t.Errorf("countRange(%d, %d) = %d, want %d", tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestDistributeBinCount(t *testing.T) {
	start := int64(0)
	end := int64(6 * 3600)
	width := int64(3600)

	got := distribute(nil, start, end, width)
	if len(got) != 6 {
		t.Fatalf("expected 6 bins for a 6 hour window with 1 hour bins, got %d", len(got))
	}
}

func TestDistributeCountsPerBin(t *testing.T) {
	// One mention in the first hour, three in the fifth.
	ts := []int64{10, 4*3600 + 1, 4*3600 + 2, 4*3600 + 3}

	got := distribute(ts, 0, 6*3600, 3600)
	want := []int{1, 0, 0, 0, 3, 0}
	if len(got) != len(want) {
		t.Fatalf("expected %d bins, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bin %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDistributeSharedEdgeCountsTwice(t *testing.T) {
	// A mention exactly on the edge between bin 0 and bin 1 appears in both.
	ts := []int64{3600}

	got := distribute(ts, 0, 2*3600, 3600)
	if len(got) != 2 {
		t.Fatalf("expected 2 bins, got %d", len(got))
	}
	if got[0] != 1 || got[1] != 1 {
		t.Errorf("expected the edge mention in both bins, got %v", got)
	}
}

func TestDistributeDegenerateInput(t *testing.T) {
	if got := distribute(nil, 100, 100, 3600); len(got) != 0 {
		t.Errorf("empty window should produce no bins, got %v", got)
	}
	if got := distribute(nil, 0, 100, 0); len(got) != 0 {
		t.Errorf("zero bin width should produce no bins, got %v", got)
	}
}

func TestStdev(t *testing.T) {
	tests := []struct {
		name         string
		distribution []int
		want         float64
	}{
		{"all zero", []int{0, 0, 0, 0, 0, 0}, 0},
		{"constant", []int{5, 5, 5}, 0},
		{"two values", []int{2, 4}, math.Sqrt(2)},
		{"fewer than two bins", []int{7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stdev(tt.distribution)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("stdev(%v) = %f, want %f", tt.distribution, got, tt.want)
			}
		})
	}
}

func TestStdevSpike(t *testing.T) {
	// The reference spike shape: a quiet baseline with one huge bin.
	got := stdev([]int{5, 6, 4, 5, 600, 5})
	if got <= 100 {
		t.Errorf("expected deviation well above 100, got %f", got)
	}
}
