package univariate

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/stretchr/testify/require"

	"github.com/sumcheck-labs/gkr-argument/field"
)

func fe(v int64) field.Element {
	var e field.Element
	e.SetInt64(v)
	return e
}

func pair(x, y int64) [2]field.Element {
	return [2]field.Element{fe(x), fe(y)}
}

// TestInterpolationHalfwayPoint is the exact scenario 6 from the spec:
// interpolating through (0,0),(1,2) must evaluate to 1 at x = 1/2.
func TestInterpolationHalfwayPoint(t *testing.T) {
	assert := require.New(t)

	poly := InterpolateLagrange([][2]field.Element{pair(0, 0), pair(1, 2)})

	var half field.Element
	half.SetInt64(2)
	half.Inverse(&half)

	got := poly.Evaluate(half)
	assert.Equal(fe(1).String(), got.String())
}

// TestInterpolationQuadratic reproduces the second half of scenario 6:
// interpolating (0,0),(1,5),(2,14) yields 3x + 2x^2, evaluating to 14 at x=2.
func TestInterpolationQuadratic(t *testing.T) {
	assert := require.New(t)

	poly := InterpolateLagrange([][2]field.Element{pair(0, 0), pair(1, 5), pair(2, 14)})

	assert.Equal(fe(0).String(), poly.Evaluate(fe(0)).String())
	assert.Equal(fe(5).String(), poly.Evaluate(fe(1)).String())
	assert.Equal(fe(14).String(), poly.Evaluate(fe(2)).String())
}

func TestDenseAddPadsShorterOperand(t *testing.T) {
	assert := require.New(t)

	a := NewDense([]field.Element{fe(1), fe(2), fe(3)})
	b := NewDense([]field.Element{fe(10)})

	sum := a.Add(b)
	assert.Equal(fe(11).String(), sum.Coeffs[0].String())
	assert.Equal(fe(2).String(), sum.Coeffs[1].String())
	assert.Equal(fe(3).String(), sum.Coeffs[2].String())
}

func TestDenseMulSchoolbookMatchesDirectEvaluation(t *testing.T) {
	assert := require.New(t)

	// (1 + x) * (2 + 3x) = 2 + 5x + 3x^2
	a := NewDense([]field.Element{fe(1), fe(1)})
	b := NewDense([]field.Element{fe(2), fe(3)})

	c := a.MulSchoolbook(b)
	assert.Equal(fe(2).String(), c.Coeffs[0].String())
	assert.Equal(fe(5).String(), c.Coeffs[1].String())
	assert.Equal(fe(3).String(), c.Coeffs[2].String())
}

func TestDivideWithRemainder(t *testing.T) {
	assert := require.New(t)

	// (x^2 - 1) / (x - 1) = x + 1, remainder 0
	p := NewDense([]field.Element{fe(-1), fe(0), fe(1)})
	q := NewDense([]field.Element{fe(-1), fe(1)})

	quotient, remainder := p.DivideWithRemainder(q)
	assert.Equal(fe(1).String(), quotient.Coeffs[0].String())
	assert.Equal(fe(1).String(), quotient.Coeffs[1].String())
	assert.True(isZeroSlice(remainder.Coeffs))
}

// TestFFTRoundTrip checks IFFT(FFT(coeffs)) == coeffs (padded), the
// property-style FFT round-trip law.
func TestFFTRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("IFFT(FFT(p)) == p for power-of-two-padded coefficients", gopter.ForAll(
		func(vals []int64) bool {
			coeffs := make([]field.Element, len(vals))
			for i, v := range vals {
				coeffs[i] = fe(v)
			}
			n := nextPowerOfTwo(len(coeffs))
			if n == 0 {
				n = 1
			}
			domain := NewDomain(n)
			evals := domain.ToEvaluations(coeffs)
			back := domain.ToCoefficients(evals)

			padded := padTo(coeffs, n)
			for i := range padded {
				if !padded[i].Equal(&back[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(8, gen.Int64Range(-1000, 1000)),
	))

	properties.TestingRun(t)
}

