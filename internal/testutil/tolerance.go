package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// Direction selects the ordering checked by RequireMonotonic.
type Direction int

const (
	NonDecreasing Direction = iota
	StrictlyIncreasing
	StrictlyDecreasing
)

func (d Direction) String() string {
	switch d {
	case StrictlyIncreasing:
		return "strictly increasing"
	case StrictlyDecreasing:
		return "strictly decreasing"
	default:
		return "non-decreasing"
	}
}

// RequireMonotonic fails t at the first adjacent pair violating dir.
func RequireMonotonic(t *testing.T, data []float64, dir Direction) {
	t.Helper()
	if i, ok := firstViolation(data, dir); !ok {
		t.Fatalf("not %s at index %d: %v -> %v", dir, i, data[i-1], data[i])
	}
}

func firstViolation(data []float64, dir Direction) (int, bool) {
	for i := 1; i < len(data); i++ {
		prev, cur := data[i-1], data[i]
		var ok bool
		switch dir {
		case StrictlyIncreasing:
			ok = cur > prev
		case StrictlyDecreasing:
			ok = cur < prev
		default:
			ok = cur >= prev
		}
		if !ok {
			return i, false
		}
	}
	return 0, true
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
