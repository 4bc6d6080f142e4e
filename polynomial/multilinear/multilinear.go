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

// Package multilinear implements multilinear extensions in evaluation form
// over the Boolean hypercube {0,1}^n, and their composed (product) form used
// by sumcheck and GKR. Index k in the evaluation table corresponds to the
// variable assignment whose most significant bit is variable 0.
package multilinear

import (
	"golang.org/x/exp/slices"

	"github.com/sumcheck-labs/gkr-argument/field"
)

// Multilinear is the evaluation-form representation of a multilinear
// extension: a length-2^n table of values on {0,1}^n. Every read operation
// is pure; partial evaluation produces a new, shorter polynomial.
type Multilinear struct {
	NVars int
	Evals []field.Element
}

// New builds a Multilinear from its evaluation table. Panics if the length
// is not a power of two.
func New(evals []field.Element) *Multilinear {
	if !field.IsPowerOfTwo(len(evals)) {
		panic("multilinear: number of evaluations must be a power of 2")
	}
	return &Multilinear{NVars: field.Log2(len(evals)), Evals: evals}
}

// AdditiveIdentity is the zero multilinear on 2^numVars points.
func AdditiveIdentity(numVars int) *Multilinear {
	return New(make([]field.Element, 1<<numVars))
}

// IsZero reports whether every evaluation is the field's zero element.
func (m *Multilinear) IsZero() bool {
	for _, e := range m.Evals {
		if !e.IsZero() {
			return false
		}
	}
	return true
}

// PartialEvaluate evaluates variable variableIndex at point, halving the
// table. Evaluation-table indices are ordered so that variable 0 is the most
// significant bit; pairing on variableIndex therefore pairs indices that
// differ in bit position (NVars-1-variableIndex), combining them as
// point*evals[j] + (1-point)*evals[i] with i supplying the zero-bit half and
// j the one-bit half, walked in order within each block.
func (m *Multilinear) PartialEvaluate(point field.Element, variableIndex int) *Multilinear {
	bitPos := m.NVars - 1 - variableIndex
	blockSize := 1 << (bitPos + 1)
	half := blockSize / 2

	result := make([]field.Element, len(m.Evals)/2)
	one := field.One()
	var oneMinusPoint field.Element
	oneMinusPoint.Sub(&one, &point)

	out := 0
	for blockStart := 0; blockStart < len(m.Evals); blockStart += blockSize {
		for offset := 0; offset < half; offset++ {
			i := blockStart + offset
			j := blockStart + offset + half

			var termLow, termHigh field.Element
			termLow.Mul(&oneMinusPoint, &m.Evals[i])
			termHigh.Mul(&point, &m.Evals[j])
			result[out].Add(&termLow, &termHigh)
			out++
		}
	}

	return &Multilinear{NVars: m.NVars - 1, Evals: result}
}

// PartialEvaluateMany applies PartialEvaluate repeatedly, left to right,
// pairing points[i] with variableIndices[i]. Each step sees the relabeled
// polynomial produced by the previous step. points and variableIndices must
// have the same length.
func (m *Multilinear) PartialEvaluateMany(points []field.Element, variableIndices []int) *Multilinear {
	if len(points) != len(variableIndices) {
		panic("multilinear: points and variableIndices length mismatch")
	}
	result := m
	for i := range points {
		result = result.PartialEvaluate(points[i], variableIndices[i])
	}
	return result
}

// Evaluate fully evaluates m at r by repeatedly partial-evaluating variable 0.
func (m *Multilinear) Evaluate(r []field.Element) field.Element {
	if len(r) != m.NVars {
		panic("multilinear: number of evaluation points must match number of variables")
	}
	result := m
	for i := range r {
		result = result.PartialEvaluate(r[i], 0)
	}
	return result.Evals[0]
}

// AddDistinct builds the polynomial on NVars+rhs.NVars variables whose value
// table is evals[i] + rhs.evals[j] in row-major order with the receiver
// varying slower, representing W(b) + W'(c) as a multilinear in (b, c).
func (m *Multilinear) AddDistinct(rhs *Multilinear) *Multilinear {
	n, k := len(m.Evals), len(rhs.Evals)
	out := make([]field.Element, n*k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			out[i*k+j].Add(&m.Evals[i], &rhs.Evals[j])
		}
	}
	return New(out)
}

// MulDistinct is AddDistinct with multiplication instead of addition.
func (m *Multilinear) MulDistinct(rhs *Multilinear) *Multilinear {
	n, k := len(m.Evals), len(rhs.Evals)
	out := make([]field.Element, n*k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			out[i*k+j].Mul(&m.Evals[i], &rhs.Evals[j])
		}
	}
	return New(out)
}

// AddToFront lifts m to NVars+k variables that are ignored and placed most
// significant (in front): the whole table is replicated 2^k times.
func (m *Multilinear) AddToFront(k int) *Multilinear {
	reps := 1 << k
	n := len(m.Evals)
	out := make([]field.Element, reps*n)
	for r := 0; r < reps; r++ {
		copy(out[r*n:(r+1)*n], m.Evals)
	}
	return New(out)
}

// AddToBack lifts m to NVars+k variables that are ignored and placed least
// significant (in back): every element is replicated 2^k times in place.
func (m *Multilinear) AddToBack(k int) *Multilinear {
	reps := 1 << k
	n := len(m.Evals)
	out := make([]field.Element, n*reps)
	for i, e := range m.Evals {
		for r := 0; r < reps; r++ {
			out[i*reps+r] = e
		}
	}
	return New(out)
}

// DuplicateEvaluation returns v concatenated with itself, the evaluation
// table of a multilinear with one extra (ignored, most significant)
// variable over v. v is cloned so the result shares no backing array with
// the caller's slice.
func DuplicateEvaluation(v []field.Element) *Multilinear {
	out := slices.Clone(v)
	out = append(out, v...)
	return New(out)
}

// SplitAndSum produces the length-2 multilinear [sum of the first half,
// sum of the second half], the linear round polynomial basic sumcheck
// communicates per round.
func (m *Multilinear) SplitAndSum() *Multilinear {
	mid := len(m.Evals) / 2
	first := field.Zero()
	for _, e := range m.Evals[:mid] {
		first.Add(&first, &e)
	}
	second := field.Zero()
	for _, e := range m.Evals[mid:] {
		second.Add(&second, &e)
	}
	return New([]field.Element{first, second})
}

// SumOverHypercube returns the sum of all evaluations.
func (m *Multilinear) SumOverHypercube() field.Element {
	sum := field.Zero()
	for _, e := range m.Evals {
		sum.Add(&sum, &e)
	}
	return sum
}

// ToBytes is the canonical byte serialization: per-element big-endian
// encodings concatenated in evaluation order.
func (m *Multilinear) ToBytes() []byte {
	return field.ConcatBytes(m.Evals)
}

// Add returns the pointwise sum of two equal-length multilinears.
func (m *Multilinear) Add(rhs *Multilinear) *Multilinear {
	out := make([]field.Element, len(m.Evals))
	for i := range m.Evals {
		out[i].Add(&m.Evals[i], &rhs.Evals[i])
	}
	return &Multilinear{NVars: m.NVars, Evals: out}
}
