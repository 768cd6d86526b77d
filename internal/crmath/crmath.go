// Package crmath evaluates the elementary functions used by the table
// generators in 50-digit decimal arithmetic and rounds once to float64.
//
// Exp2, Exp10, Log, Sin and Cos return the float64 nearest to the exact
// result. Log10 keeps the C library's reduction (k·log10(2) split into a
// high and a low part, plus ln(m)/ln(10)) over a correctly rounded ln(m),
// because the consuming engine's reference tables were produced that way.
//
// Inputs are converted to decimal exactly, so the only rounding happens on
// the way back to float64.
package crmath

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// precision is the working precision in decimal digits.
const precision = 50

const piDigits = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798"

// fdlibm log10 constants.
const (
	invLn10    = 4.34294481903251816668e-01
	log10Of2Hi = 3.01029995663611771306e-01
	log10Of2Lo = 3.69423907715893078616e-13
)

var (
	ctx    = newContext()
	pi     = mustParse(piDigits)
	halfPi = quo(pi, apd.New(2, 0))
	ln2    = ln(apd.New(2, 0))
	ln10   = ln(apd.New(10, 0))
)

func newContext() *apd.Context {
	c := apd.BaseContext.WithPrecision(precision)
	c.Rounding = apd.RoundHalfEven
	return c
}

// Exp2 returns 2**y.
func Exp2(y float64) float64 {
	return expScaled(y, ln2, math.Exp2)
}

// Exp10 returns 10**y.
func Exp10(y float64) float64 {
	return expScaled(y, ln10, func(y float64) float64 { return math.Pow(10, y) })
}

// Log returns the natural logarithm of x.
func Log(x float64) float64 {
	if !(x > 0) || math.IsInf(x, 1) {
		return math.Log(x)
	}
	ed := apd.MakeErrDecimal(ctx)
	var d apd.Decimal
	ed.Ln(&d, exact(x))
	return toFloat(&ed, &d, math.Log(x))
}

// Log10 returns the base-10 logarithm of x.
func Log10(x float64) float64 {
	if !(x > 0) || math.IsInf(x, 1) {
		return math.Log10(x)
	}
	// x = m * 2**k with m in [1, 2) for x >= 1 and in [0.5, 1) otherwise.
	m, e := math.Frexp(x)
	if e > 0 {
		m *= 2
		e--
	}
	k := float64(e)
	// Each product is rounded on its own; no fused multiply-add.
	z := float64(k*log10Of2Lo) + float64(invLn10*Log(m))
	return z + float64(k*log10Of2Hi)
}

// Sin returns the sine of the radian argument x.
func Sin(x float64) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return math.Sin(x)
	}
	ed := apd.MakeErrDecimal(ctx)
	s := sin(&ed, exact(x))
	return toFloat(&ed, s, math.Sin(x))
}

// Cos returns the cosine of the radian argument x.
func Cos(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.Cos(x)
	}
	ed := apd.MakeErrDecimal(ctx)
	var arg apd.Decimal
	ed.Sub(&arg, halfPi, exact(math.Abs(x)))
	s := sin(&ed, &arg)
	return toFloat(&ed, s, math.Cos(x))
}

func expScaled(y float64, lnBase *apd.Decimal, fallback func(float64) float64) float64 {
	if y == 0 {
		return 1
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return fallback(y)
	}
	ed := apd.MakeErrDecimal(ctx)
	var arg, d apd.Decimal
	ed.Mul(&arg, exact(y), lnBase)
	ed.Exp(&d, &arg)
	return toFloat(&ed, &d, fallback(y))
}

// sin reduces x by the nearest multiple of π to |r| <= π/2 and sums the
// Taylor series until the next term falls below the working precision
// relative to the sum.
func sin(ed *apd.ErrDecimal, x *apd.Decimal) *apd.Decimal {
	var ratio, q, qPi, r apd.Decimal
	ed.Quo(&ratio, x, pi)
	ed.RoundToIntegralValue(&q, &ratio)
	ed.Mul(&qPi, &q, pi)
	ed.Sub(&r, x, &qPi)

	sum := new(apd.Decimal).Set(&r)
	if r.IsZero() {
		return sum
	}
	var r2, prod, next, acc apd.Decimal
	term := new(apd.Decimal).Set(&r)
	ed.Mul(&r2, &r, &r)
	for n := int64(1); ed.Err() == nil; n++ {
		ed.Mul(&prod, term, &r2)
		ed.Quo(&next, &prod, apd.New(-(2*n)*(2*n+1), 0))
		ed.Add(&acc, sum, &next)
		term.Set(&next)
		sum.Set(&acc)
		if next.IsZero() || adjusted(&next) < adjusted(sum)-precision {
			break
		}
	}
	if odd(&q) {
		sum.Neg(sum)
	}
	return sum
}

// adjusted returns the exponent of d in scientific notation.
func adjusted(d *apd.Decimal) int64 {
	return int64(d.Exponent) + d.NumDigits() - 1
}

func odd(q *apd.Decimal) bool {
	n, err := q.Int64()
	return err == nil && n%2 != 0
}

// exact returns the decimal expansion of x without rounding. A float64 of
// magnitude at least 2**-200 has fewer than 260 significant decimal digits.
func exact(x float64) *apd.Decimal {
	d, _, err := apd.NewFromString(strconv.FormatFloat(x, 'e', 260, 64))
	if err != nil {
		panic("crmath: " + err.Error())
	}
	reduced, _ := new(apd.Decimal).Reduce(d)
	return reduced
}

// toFloat rounds d to the nearest float64. fallback is returned if the
// decimal evaluation reported an error, which only happens for arguments
// outside the ranges the generators use.
func toFloat(ed *apd.ErrDecimal, d *apd.Decimal, fallback float64) float64 {
	if ed.Err() != nil {
		return fallback
	}
	f, err := d.Float64()
	if err != nil {
		return fallback
	}
	return f
}

func mustParse(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic("crmath: " + err.Error())
	}
	return d
}

func quo(x, y *apd.Decimal) *apd.Decimal {
	ed := apd.MakeErrDecimal(ctx)
	var d apd.Decimal
	ed.Quo(&d, x, y)
	if err := ed.Err(); err != nil {
		panic("crmath: " + err.Error())
	}
	return &d
}

func ln(x *apd.Decimal) *apd.Decimal {
	ed := apd.MakeErrDecimal(ctx)
	var d apd.Decimal
	ed.Ln(&d, x)
	if err := ed.Err(); err != nil {
		panic("crmath: " + err.Error())
	}
	return &d
}
