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

package multilinear

import (
	"github.com/sumcheck-labs/gkr-argument/field"
)

// Composed is a product of multilinears sharing the same number of
// variables: its value at a point is the elementwise product of its
// factors' values.
type Composed struct {
	Factors []*Multilinear
}

// NewComposed wraps factors, which must be nonempty and share NVars.
func NewComposed(factors []*Multilinear) *Composed {
	if len(factors) == 0 {
		panic("multilinear: composed polynomial must have at least one factor")
	}
	n := factors[0].NVars
	for _, f := range factors {
		if f.NVars != n {
			panic("multilinear: composed factors must share the same number of variables")
		}
	}
	return &Composed{Factors: factors}
}

// NVars returns the shared number of variables across factors.
func (c *Composed) NVars() int {
	return c.Factors[0].NVars
}

// MaxDegree is the number of factors: every factor is multilinear, so the
// univariate projection in any one variable has degree exactly this.
func (c *Composed) MaxDegree() int {
	return len(c.Factors)
}

// Evaluate computes the product of each factor's evaluation at r.
func (c *Composed) Evaluate(r []field.Element) field.Element {
	result := field.One()
	for _, f := range c.Factors {
		v := f.Evaluate(r)
		result.Mul(&result, &v)
	}
	return result
}

// PartialEvaluate maps PartialEvaluate over every factor.
func (c *Composed) PartialEvaluate(point field.Element, variableIndex int) *Composed {
	out := make([]*Multilinear, len(c.Factors))
	for i, f := range c.Factors {
		out[i] = f.PartialEvaluate(point, variableIndex)
	}
	return &Composed{Factors: out}
}

// ElementWiseProduct returns [Pi_k factor_k.Evals[i] for i in 0..2^NVars],
// the per-point product used inside sumcheck to compute round sums.
func (c *Composed) ElementWiseProduct() []field.Element {
	length := len(c.Factors[0].Evals)
	out := make([]field.Element, length)
	for i := 0; i < length; i++ {
		p := field.One()
		for _, f := range c.Factors {
			p.Mul(&p, &f.Evals[i])
		}
		out[i] = p
	}
	return out
}

// ToBytes concatenates the byte serializations of every factor, the
// composed-polynomial identity the transcript absorbs in non-partial
// sumcheck.
func (c *Composed) ToBytes() []byte {
	var out []byte
	for _, f := range c.Factors {
		out = append(out, f.ToBytes()...)
	}
	return out
}
