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

// Package gkr implements the GKR layered-circuit sumcheck protocol: a
// prover reduces a claim about a circuit's output layer to a claim about
// its input, one layer at a time, via multi-composed sumcheck over each
// layer's add/mul wiring multilinears. Package gkr also implements the
// succinct variant, which closes the final input-layer claim with a
// multilinear KZG opening instead of handing the verifier the raw input.
package gkr

import (
	"github.com/sumcheck-labs/gkr-argument/circuit"
	"github.com/sumcheck-labs/gkr-argument/field"
	"github.com/sumcheck-labs/gkr-argument/polynomial/multilinear"
	"github.com/sumcheck-labs/gkr-argument/sumcheck"
	"github.com/sumcheck-labs/gkr-argument/transcript"
)

// Proof is a classical GKR proof: one sumcheck transcript and one (W(r_b),
// W(r_c)) pair per circuit layer, plus the (possibly zero-padded) output
// layer multilinear the verifier reduces its first claim against.
type Proof struct {
	SumcheckProofs []*sumcheck.ComposedProof
	WbEvaluations  []field.Element
	WcEvaluations  []field.Element
	W0             *multilinear.Multilinear
}

// padOutputLayer pads a single-gate output layer with one trailing zero, so
// its multilinear extension has at least one variable. Canonical circuits
// (circuit.Random) always hit this case at layer 0.
func padOutputLayer(vals []field.Element) []field.Element {
	if len(vals) == 1 {
		return append([]field.Element{vals[0]}, field.Zero())
	}
	return vals
}

// combineAlphaBeta returns the pointwise combination alpha*a + beta*b of two
// equal-shaped multilinears, the alpha/beta-weighted wiring identity every
// inner-layer reduction sumchecks against.
func combineAlphaBeta(a, b *multilinear.Multilinear, alpha, beta field.Element) *multilinear.Multilinear {
	out := make([]field.Element, len(a.Evals))
	for i := range a.Evals {
		var ta, tb field.Element
		ta.Mul(&alpha, &a.Evals[i])
		tb.Mul(&beta, &b.Evals[i])
		out[i].Add(&ta, &tb)
	}
	return &multilinear.Multilinear{NVars: a.NVars, Evals: out}
}

// repeatIndex0 returns a slice of n zeros, the variableIndices argument to
// PartialEvaluateMany when repeatedly collapsing variable 0.
func repeatIndex0(n int) []int {
	return make([]int, n)
}

// Prove runs the classical GKR protocol over circuit c on input x, returning
// a proof the circuit's claimed output (recoverable from proof.W0) is
// consistent with x.
func Prove(c *circuit.Circuit, x []field.Element) *Proof {
	proof, _, _, _, _ := proveCore(c, x)
	return proof
}

// proveCore builds the classical proof and also returns the final reduction
// state (rb, rc, alpha, beta); the succinct variant opens the input-layer
// commitment at rb and rc.
func proveCore(c *circuit.Circuit, x []field.Element) (proof *Proof, rb, rc []field.Element, alpha, beta field.Element) {
	t := transcript.New()

	eval := c.Evaluate(x)
	w0 := multilinear.New(padOutputLayer(eval[0]))
	t.Commit(w0.ToBytes())

	nR := t.ChallengeFieldN(w0.NVars)
	claim := w0.Evaluate(nR)

	add0, mul0 := c.AddMultMLE(0)
	w1 := multilinear.New(eval[1])

	sc1, wb1, wc1, a1, b1, rb1, rc1, claim1 := proveLayerOne(add0, mul0, w1, nR, claim, t)

	sumcheckProofs := []*sumcheck.ComposedProof{sc1}
	wbS := []field.Element{wb1}
	wcS := []field.Element{wc1}

	claim, alpha, beta, rb, rc = claim1, a1, b1, rb1, rc1

	numLayers := len(c.Layers)
	for layerIndex := 2; layerIndex <= numLayers; layerIndex++ {
		addPrev, mulPrev := c.AddMultMLE(layerIndex - 1)
		wi := multilinear.New(eval[layerIndex])

		sci, wb, wc, newAlpha, newBeta, newRb, newRc, newClaim :=
			proveInnerLayer(addPrev, mulPrev, wi, rb, rc, alpha, beta, claim, t)

		sumcheckProofs = append(sumcheckProofs, sci)
		wbS = append(wbS, wb)
		wcS = append(wcS, wc)

		claim, alpha, beta, rb, rc = newClaim, newAlpha, newBeta, newRb, newRc
	}

	proof = &Proof{SumcheckProofs: sumcheckProofs, WbEvaluations: wbS, WcEvaluations: wcS, W0: w0}
	return proof, rb, rc, alpha, beta
}

// proveLayerOne reduces the output-layer claim (at n_r) to a claim about
// layer 1, the degenerate first reduction seeded by a single random point
// rather than an alpha/beta-weighted pair.
func proveLayerOne(addMLE, mulMLE, w1 *multilinear.Multilinear, nR []field.Element, claim field.Element, t *transcript.Transcript) (
	proof *sumcheck.ComposedProof, wb, wc, alpha, beta field.Element, rb, rc []field.Element, newClaim field.Element,
) {
	addBC := addMLE.PartialEvaluateMany(nR, repeatIndex0(len(nR)))
	mulBC := mulMLE.PartialEvaluateMany(nR, repeatIndex0(len(nR)))

	wAddW := w1.AddDistinct(w1)
	wMulW := w1.MulDistinct(w1)

	fAdd := multilinear.NewComposed([]*multilinear.Multilinear{addBC, wAddW})
	fMul := multilinear.NewComposed([]*multilinear.Multilinear{mulBC, wMulW})

	proof, challenges := sumcheck.ProveMultiComposedPartial([]*multilinear.Composed{fAdd, fMul}, claim, t)

	half := len(challenges) / 2
	rb, rc = challenges[:half], challenges[half:]

	wb = w1.Evaluate(rb)
	wc = w1.Evaluate(rc)

	ab := t.ChallengeFieldN(2)
	alpha, beta = ab[0], ab[1]

	var t1, t2 field.Element
	t1.Mul(&alpha, &wb)
	t2.Mul(&beta, &wc)
	newClaim.Add(&t1, &t2)

	return proof, wb, wc, alpha, beta, rb, rc, newClaim
}

// proveInnerLayer reduces the claim carried from the previous layer (at
// rbPrev, rcPrev under weights alpha, beta) to a claim about layer wi.
func proveInnerLayer(addMLE, mulMLE, wi *multilinear.Multilinear, rbPrev, rcPrev []field.Element, alpha, beta, claim field.Element, t *transcript.Transcript) (
	proof *sumcheck.ComposedProof, wb, wc, newAlpha, newBeta field.Element, rb, rc []field.Element, newClaim field.Element,
) {
	addRb := addMLE.PartialEvaluateMany(rbPrev, repeatIndex0(len(rbPrev)))
	mulRb := mulMLE.PartialEvaluateMany(rbPrev, repeatIndex0(len(rbPrev)))
	addRc := addMLE.PartialEvaluateMany(rcPrev, repeatIndex0(len(rcPrev)))
	mulRc := mulMLE.PartialEvaluateMany(rcPrev, repeatIndex0(len(rcPrev)))

	combinedAdd := combineAlphaBeta(addRb, addRc, alpha, beta)
	combinedMul := combineAlphaBeta(mulRb, mulRc, alpha, beta)

	wAddW := wi.AddDistinct(wi)
	wMulW := wi.MulDistinct(wi)

	fAdd := multilinear.NewComposed([]*multilinear.Multilinear{combinedAdd, wAddW})
	fMul := multilinear.NewComposed([]*multilinear.Multilinear{combinedMul, wMulW})

	proof, challenges := sumcheck.ProveMultiComposedPartial([]*multilinear.Composed{fAdd, fMul}, claim, t)

	half := len(challenges) / 2
	rb, rc = challenges[:half], challenges[half:]

	wb = wi.Evaluate(rb)
	wc = wi.Evaluate(rc)

	ab := t.ChallengeFieldN(2)
	newAlpha, newBeta = ab[0], ab[1]

	var t1, t2 field.Element
	t1.Mul(&newAlpha, &wb)
	t2.Mul(&newBeta, &wc)
	newClaim.Add(&t1, &t2)

	return proof, wb, wc, newAlpha, newBeta, rb, rc, newClaim
}
