/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package univariate implements dense coefficient-form and evaluation-form
// univariate polynomials, interconvertible by NTT over the bn254 scalar
// field. Sumcheck round polynomials live here, along with long division
// (DivideWithRemainder) over a single variable.
package univariate

import (
	"github.com/sumcheck-labs/gkr-argument/field"
)

// Dense is a polynomial in coefficient form: Coeffs[i] is the coefficient of
// x^i. Trailing zeros are semantically insignificant.
type Dense struct {
	Coeffs []field.Element
}

// NewDense wraps coeffs without trimming; Degree treats trailing zeros as
// insignificant. Dense defines no equality method.
func NewDense(coeffs []field.Element) *Dense {
	return &Dense{Coeffs: coeffs}
}

// Zero returns the zero polynomial.
func Zero() *Dense {
	return &Dense{Coeffs: []field.Element{field.Zero()}}
}

// Degree returns the index of the last non-zero coefficient, 0 for the zero
// polynomial.
func (p *Dense) Degree() int {
	for i := len(p.Coeffs) - 1; i > 0; i-- {
		if !p.Coeffs[i].IsZero() {
			return i
		}
	}
	return 0
}

// Evaluate computes Sigma coeffs[i] * point^i by Horner's method.
func (p *Dense) Evaluate(point field.Element) field.Element {
	result := field.Zero()
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &point)
		result.Add(&result, &p.Coeffs[i])
	}
	return result
}

// Add returns p + q, pointwise on coefficients, padding the shorter operand
// with zeros.
func (p *Dense) Add(q *Dense) *Dense {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		var a, b field.Element
		if i < len(p.Coeffs) {
			a = p.Coeffs[i]
		}
		if i < len(q.Coeffs) {
			b = q.Coeffs[i]
		}
		out[i].Add(&a, &b)
	}
	return &Dense{Coeffs: out}
}

// MulSchoolbook multiplies p and q by the O(n*m) schoolbook method.
func (p *Dense) MulSchoolbook(q *Dense) *Dense {
	if isZeroSlice(p.Coeffs) || isZeroSlice(q.Coeffs) {
		return Zero()
	}
	out := make([]field.Element, len(p.Coeffs)+len(q.Coeffs)-1)
	for i, a := range p.Coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.Coeffs {
			var term field.Element
			term.Mul(&a, &b)
			out[i+j].Add(&out[i+j], &term)
		}
	}
	return &Dense{Coeffs: out}
}

// Mul multiplies p and q, using the NTT over the scalar field's
// multiplicative subgroup when the result's size makes it worthwhile and
// falling back to schoolbook multiplication otherwise. This stands in for
// the source's floating-point complex-FFT multiplication, which is unsound
// for field-sized coefficients; the field itself admits a suitable
// root-of-unity subgroup, so the NTT substitution applies directly.
func (p *Dense) Mul(q *Dense) *Dense {
	resultLen := len(p.Coeffs) + len(q.Coeffs) - 1
	if resultLen <= 0 {
		return Zero()
	}
	if resultLen < 64 {
		return p.MulSchoolbook(q)
	}
	return p.mulNTT(q, resultLen)
}

func (p *Dense) mulNTT(q *Dense, resultLen int) *Dense {
	n := nextPowerOfTwo(resultLen)

	a := padTo(p.Coeffs, n)
	b := padTo(q.Coeffs, n)

	domain := NewDomain(n)
	evalsA := domain.ToEvaluations(a)
	evalsB := domain.ToEvaluations(b)

	evalsC := make([]field.Element, n)
	for i := range evalsC {
		evalsC[i].Mul(&evalsA[i], &evalsB[i])
	}

	c := domain.ToCoefficients(evalsC)
	return &Dense{Coeffs: c[:resultLen]}
}

// DivideWithRemainder performs long division of p by q over the field,
// returning (quotient, remainder) such that p = quotient*q + remainder and
// deg(remainder) < deg(q). Panics if q is the zero polynomial.
func (p *Dense) DivideWithRemainder(q *Dense) (*Dense, *Dense) {
	if isZeroSlice(q.Coeffs) {
		panic("univariate: division by the zero polynomial")
	}

	remainder := append([]field.Element(nil), p.Coeffs...)
	qDeg := q.Degree()
	var qLeadInv field.Element
	qLeadInv.Inverse(&q.Coeffs[qDeg])

	if isZeroSlice(remainder) {
		return Zero(), Zero()
	}

	quotientLen := 0
	if pDeg := (&Dense{Coeffs: remainder}).Degree(); pDeg >= qDeg {
		quotientLen = pDeg - qDeg + 1
	}
	quotient := make([]field.Element, quotientLen)

	for {
		rd := (&Dense{Coeffs: remainder}).Degree()
		if isZeroSlice(remainder) || rd < qDeg {
			break
		}
		var coeff field.Element
		coeff.Mul(&remainder[rd], &qLeadInv)
		shift := rd - qDeg
		quotient[shift] = coeff

		for i := 0; i <= qDeg; i++ {
			var term field.Element
			term.Mul(&coeff, &q.Coeffs[i])
			remainder[shift+i].Sub(&remainder[shift+i], &term)
		}
	}

	return &Dense{Coeffs: quotient}, &Dense{Coeffs: remainder}
}

// InterpolateLagrange returns the unique polynomial of degree <= len(points)-1
// passing through every (x, y) pair in points. xs must be pairwise distinct;
// this is a structural precondition, and InterpolateLagrange panics if two
// xs coincide.
func InterpolateLagrange(points [][2]field.Element) *Dense {
	n := len(points)
	result := Zero()

	for i := 0; i < n; i++ {
		basis := &Dense{Coeffs: []field.Element{field.One()}}
		var denom field.Element
		denom.SetOne()

		xi := points[i][0]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			xj := points[j][0]

			var negXj field.Element
			negXj.Neg(&xj)
			term := &Dense{Coeffs: []field.Element{negXj, field.One()}} // (x - xj)
			basis = basis.MulSchoolbook(term)

			var diff field.Element
			diff.Sub(&xi, &xj)
			denom.Mul(&denom, &diff)
		}

		if denom.IsZero() {
			panic("univariate: interpolation points must have distinct x-coordinates")
		}
		var denomInv field.Element
		denomInv.Inverse(&denom)

		var coeff field.Element
		coeff.Mul(&points[i][1], &denomInv)

		scaled := make([]field.Element, len(basis.Coeffs))
		for k, c := range basis.Coeffs {
			scaled[k].Mul(&c, &coeff)
		}

		result = result.Add(&Dense{Coeffs: scaled})
	}

	return result
}

func isZeroSlice(s []field.Element) bool {
	for _, e := range s {
		if !e.IsZero() {
			return false
		}
	}
	return true
}

func padTo(s []field.Element, n int) []field.Element {
	out := make([]field.Element, n)
	copy(out, s)
	return out
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
