package window

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synthtab/internal/testutil"
)

func TestGenerateLengthAndFinite(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}
			testutil.RequireFinite(t, w)
		})
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if w := Generate(TypeHann, -3); w != nil {
		t.Fatalf("Generate(-3) = %v, want nil", w)
	}
}

func TestHannSymmetric(t *testing.T) {
	w := Generate(TypeHann, 33)
	if w[0] != 0 || w[32] != 0 {
		t.Fatalf("edges = %v %v, want 0", w[0], w[32])
	}
	if math.Abs(w[16]-1) > 1e-15 {
		t.Fatalf("center = %v, want 1", w[16])
	}
	for i := range w {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-15 {
			t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[len(w)-1-i])
		}
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())
	if b[0] != 0 {
		t.Fatalf("periodic start = %v, want 0", b[0])
	}
	if b[15] == 0 || a[15] != 0 {
		t.Fatalf("periodic end = %v, symmetric end = %v", b[15], a[15])
	}
	if math.Abs(b[8]-1) > 1e-15 {
		t.Fatalf("periodic center = %v, want 1", b[8])
	}
}

func TestHannKernelEnvelope(t *testing.T) {
	const order = 7.0
	if got := Hann(0, order); got != 1 {
		t.Fatalf("Hann(0) = %v, want 1", got)
	}
	edge := Hann(math.Pi*order/2, order)
	if math.Abs(edge) > 1e-15 {
		t.Fatalf("Hann at kernel edge = %v, want 0", edge)
	}
	for d := 0.0; d < 3.5; d += 0.125 {
		l, r := Hann(-math.Pi*d, order), Hann(math.Pi*d, order)
		if l != r {
			t.Fatalf("envelope asymmetric at d=%v: %v vs %v", d, l, r)
		}
	}
}

func TestApplyMatchesGenerate(t *testing.T) {
	buf := make([]float64, 32)
	for i := range buf {
		buf[i] = float64(i + 1)
	}
	want := Generate(TypeHann, len(buf))
	for i := range want {
		want[i] *= float64(i + 1)
	}
	Apply(TypeHann, buf)
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)
}

func TestHalvesSplitFullWindow(t *testing.T) {
	for _, n := range []int{1, 8, 33} {
		full := Generate(TypeHann, 2*n)
		testutil.RequireSliceNearlyEqual(t, Generate(TypeHann, n, WithRisingHalf()), full[:n], 0)
		testutil.RequireSliceNearlyEqual(t, Generate(TypeHann, n, WithFallingHalf()), full[n:], 0)
	}

	buf := []float64{2, 2, 2, 2}
	Apply(TypeHann, buf, WithFallingHalf())
	if buf[3] != 0 || !(buf[0] > buf[1] && buf[1] > buf[2] && buf[2] > buf[3]) {
		t.Fatalf("falling half = %v, want decreasing to 0", buf)
	}
}

func TestHannExactAgreesWithHann(t *testing.T) {
	const order = 7.0
	for d := -3.5; d <= 3.5; d += 1.0 / 64 {
		arg := math.Pi * d
		if a, b := HannExact(arg, order), Hann(arg, order); math.Abs(a-b) > 1e-15 {
			t.Fatalf("d=%v: HannExact = %v, Hann = %v", d, a, b)
		}
	}
	if HannExact(0, order) != 1 {
		t.Fatalf("HannExact(0) = %v, want 1", HannExact(0, order))
	}
}

func TestApplyRectangularIsIdentity(t *testing.T) {
	buf := []float64{0.5, -1, 2}
	Apply(TypeRectangular, buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0.5, -1, 2}, 0)
}

func BenchmarkApply(b *testing.B) {
	buf := make([]float64, 4096)
	b.ReportAllocs()
	for b.Loop() {
		Apply(TypeHann, buf)
	}
}
