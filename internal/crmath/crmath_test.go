package crmath

import (
	"math"
	"testing"
)

func TestCorrectlyRounded(t *testing.T) {
	pi := math.Pi
	step := pi / 2 / 1001

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		// The C library rounds these four the other way.
		{"Exp2(296/1200)", Exp2(296.0 / 1200), 0x1.2fbc03e6dba1ep+0},
		{"Exp10(-1322/200)", Exp10(1322.0 / -200), 0x1.0792865f315ebp-22},
		{"Sin(217 step)", Sin(217 * step), 0x1.55feb416c0d9dp-2},
		{"Sin(650 step)", Sin(650 * step), 0x1.b44756cac1c5bp-1},

		{"Sin(pi)", Sin(pi), 0x1.1a62633145c07p-53},
		{"Sin(-3pi)", Sin(-3 * pi), -0x1.a79394c9e8a0ap-52},
		{"Cos(pi/2)", Cos(pi / 2), 0x1.1a62633145c07p-54},
		{"Cos(pi)", Cos(pi), -1},
		{"Cos(0)", Cos(0), 1},
		{"Exp2(0.5)", Exp2(0.5), 0x1.6a09e667f3bcdp+0},
		{"Exp2(10)", Exp2(10), 1024},
		{"Exp10(-2)", Exp10(-2), 0.01},
		{"Log(2)", Log(2), 0x1.62e42fefa39efp-1},
		{"Log10(100)", Log10(100), 2},
		{"Log10(1000)", Log10(1000), 3},
		{"Log10(0.5)", Log10(0.5), -0x1.34413509f79ffp-2},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %v (%x), want %v (%x)", tc.name, tc.got, tc.got, tc.want, tc.want)
		}
	}
}

func TestSpecialValues(t *testing.T) {
	if got := Sin(0); got != 0 || math.Signbit(got) {
		t.Errorf("Sin(0) = %v", got)
	}
	if got := Sin(math.Copysign(0, -1)); got != 0 || !math.Signbit(got) {
		t.Errorf("Sin(-0) = %v", got)
	}
	if got := Exp2(0); got != 1 {
		t.Errorf("Exp2(0) = %v", got)
	}
	for name, v := range map[string]float64{
		"Sin(NaN)":  Sin(math.NaN()),
		"Cos(Inf)":  Cos(math.Inf(1)),
		"Log(-1)":   Log(-1),
		"Log10(-1)": Log10(-1),
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN", name, v)
		}
	}
	if got := Log10(0); !math.IsInf(got, -1) {
		t.Errorf("Log10(0) = %v, want -Inf", got)
	}
}

// ulps returns the distance between a and b in units in the last place.
func ulps(a, b float64) int {
	n := 0
	for a != b && n < 100 {
		a = math.Nextafter(a, b)
		n++
	}
	return n
}

func TestAgreesWithMath(t *testing.T) {
	for i := 1; i < 200; i++ {
		x := float64(i) / 137
		for _, c := range []struct {
			name      string
			got, want float64
		}{
			{"Exp2", Exp2(x), math.Exp2(x)},
			{"Exp10", Exp10(-x), math.Pow(10, -x)},
			{"Log", Log(x), math.Log(x)},
			{"Log10", Log10(x), math.Log10(x)},
			{"Sin", Sin(x), math.Sin(x)},
			{"Cos", Cos(x), math.Cos(x)},
		} {
			if d := ulps(c.got, c.want); d > 2 {
				t.Fatalf("%s(%v) = %v, math gives %v (%d ulps)", c.name, x, c.got, c.want, d)
			}
		}
	}
}

func TestSinSymmetry(t *testing.T) {
	for i := 1; i < 100; i++ {
		x := float64(i) * 0.113
		if Sin(-x) != -Sin(x) {
			t.Fatalf("Sin(-%v) != -Sin(%v)", x, x)
		}
		if Cos(-x) != Cos(x) {
			t.Fatalf("Cos(-%v) != Cos(%v)", x, x)
		}
	}
}

func BenchmarkSin(b *testing.B) {
	for b.Loop() {
		Sin(2.5)
	}
}

func BenchmarkExp10(b *testing.B) {
	for b.Loop() {
		Exp10(-3.7)
	}
}
