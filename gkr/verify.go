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

package gkr

import (
	"github.com/sumcheck-labs/gkr-argument/circuit"
	"github.com/sumcheck-labs/gkr-argument/field"
	"github.com/sumcheck-labs/gkr-argument/polynomial/multilinear"
	"github.com/sumcheck-labs/gkr-argument/sumcheck"
	"github.com/sumcheck-labs/gkr-argument/transcript"
)

// Verify checks proof against circuit c and input x: that proof.W0 really is
// (a zero-padded copy of) c's output on x, and that every layer's sumcheck
// correctly reduces one layer's claim to the next, down to x itself.
func Verify(c *circuit.Circuit, x []field.Element, proof *Proof) bool {
	claim, alpha, beta, rb, rc, ok := verifyCore(c, proof)
	if !ok {
		return false
	}

	wIn := multilinear.New(x)
	vb := wIn.Evaluate(rb)
	vc := wIn.Evaluate(rc)

	var t1, t2, want field.Element
	t1.Mul(&alpha, &vb)
	t2.Mul(&beta, &vc)
	want.Add(&t1, &t2)

	return want.Equal(&claim)
}

// verifyCore replays proof's transcript against c, through the last layer
// reduction but stopping short of the final input-layer check: classical
// Verify evaluates the raw input directly, while VerifySuccinct instead
// opens a KZG commitment to it. Returns ok=false the instant any layer's
// sumcheck or per-round consistency check fails.
func verifyCore(c *circuit.Circuit, proof *Proof) (claim, alpha, beta field.Element, rb, rc []field.Element, ok bool) {
	numLayers := len(c.Layers)
	if len(proof.SumcheckProofs) != numLayers || len(proof.WbEvaluations) != numLayers || len(proof.WcEvaluations) != numLayers {
		return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
	}

	t := transcript.New()
	t.Commit(proof.W0.ToBytes())

	nR := t.ChallengeFieldN(proof.W0.NVars)
	claim = proof.W0.Evaluate(nR)

	add0, mul0 := c.AddMultMLE(0)

	claim, alpha, beta, rb, rc, ok = verifyLayerOne(
		add0, mul0, proof.SumcheckProofs[0], nR, claim, t,
		proof.WbEvaluations[0], proof.WcEvaluations[0],
	)
	if !ok {
		return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
	}

	for i := 1; i < numLayers; i++ {
		layerIndex := i + 1
		addPrev, mulPrev := c.AddMultMLE(layerIndex - 1)

		claim, alpha, beta, rb, rc, ok = verifyInnerLayer(
			addPrev, mulPrev, proof.SumcheckProofs[i], rb, rc, alpha, beta, claim, t,
			proof.WbEvaluations[i], proof.WcEvaluations[i],
		)
		if !ok {
			return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
		}
	}

	return claim, alpha, beta, rb, rc, true
}

// verifyLayerOne mirrors proveLayerOne: it checks the sumcheck transcript
// against the claimed sum, then the oracle check that ties the sumcheck's
// final subclaim back to the wiring identity fbc(b,c) = add(n_r,b,c)*(wb+wc)
// + mul(n_r,b,c)*(wb*wc), before squeezing the next layer's alpha, beta.
func verifyLayerOne(addMLE, mulMLE *multilinear.Multilinear, proof *sumcheck.ComposedProof, nR []field.Element, claim field.Element, t *transcript.Transcript, wb, wc field.Element) (
	newClaim, alpha, beta field.Element, rb, rc []field.Element, ok bool,
) {
	if !proof.Sum.Equal(&claim) {
		return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
	}

	subClaim, ok := sumcheck.VerifyMultiComposedPartial(proof, t)
	if !ok {
		return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
	}

	rbc := concat(nR, subClaim.Challenges)
	addBC := addMLE.Evaluate(rbc)
	mulBC := mulMLE.Evaluate(rbc)

	if !fbcEval(addBC, mulBC, wb, wc).Equal(&subClaim.Sum) {
		return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
	}

	half := len(subClaim.Challenges) / 2
	rb, rc = subClaim.Challenges[:half], subClaim.Challenges[half:]

	ab := t.ChallengeFieldN(2)
	alpha, beta = ab[0], ab[1]

	newClaim = combinedClaim(alpha, beta, wb, wc)
	return newClaim, alpha, beta, rb, rc, true
}

// verifyInnerLayer mirrors proveInnerLayer: the oracle check generalizes
// verifyLayerOne's to an alpha/beta-weighted pair of evaluation points
// carried over from the previous layer's reduction.
func verifyInnerLayer(addMLE, mulMLE *multilinear.Multilinear, proof *sumcheck.ComposedProof, rbPrev, rcPrev []field.Element, alpha, beta, claim field.Element, t *transcript.Transcript, wb, wc field.Element) (
	newClaim, newAlpha, newBeta field.Element, rb, rc []field.Element, ok bool,
) {
	if !proof.Sum.Equal(&claim) {
		return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
	}

	subClaim, ok := sumcheck.VerifyMultiComposedPartial(proof, t)
	if !ok {
		return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
	}

	rbFull := concat(rbPrev, subClaim.Challenges)
	rcFull := concat(rcPrev, subClaim.Challenges)

	addAtRb := addMLE.Evaluate(rbFull)
	addAtRc := addMLE.Evaluate(rcFull)
	mulAtRb := mulMLE.Evaluate(rbFull)
	mulAtRc := mulMLE.Evaluate(rcFull)

	var addCombined, mulCombined, x1, x2 field.Element
	x1.Mul(&alpha, &addAtRb)
	x2.Mul(&beta, &addAtRc)
	addCombined.Add(&x1, &x2)

	x1.Mul(&alpha, &mulAtRb)
	x2.Mul(&beta, &mulAtRc)
	mulCombined.Add(&x1, &x2)

	if !fbcEval(addCombined, mulCombined, wb, wc).Equal(&subClaim.Sum) {
		return field.Zero(), field.Zero(), field.Zero(), nil, nil, false
	}

	half := len(subClaim.Challenges) / 2
	rb, rc = subClaim.Challenges[:half], subClaim.Challenges[half:]

	ab := t.ChallengeFieldN(2)
	newAlpha, newBeta = ab[0], ab[1]

	newClaim = combinedClaim(newAlpha, newBeta, wb, wc)
	return newClaim, newAlpha, newBeta, rb, rc, true
}

func fbcEval(addVal, mulVal, wb, wc field.Element) field.Element {
	var sumWbWc, prodWbWc, addTerm, mulTerm, out field.Element
	sumWbWc.Add(&wb, &wc)
	prodWbWc.Mul(&wb, &wc)
	addTerm.Mul(&addVal, &sumWbWc)
	mulTerm.Mul(&mulVal, &prodWbWc)
	out.Add(&addTerm, &mulTerm)
	return out
}

func combinedClaim(alpha, beta, wb, wc field.Element) field.Element {
	var t1, t2, out field.Element
	t1.Mul(&alpha, &wb)
	t2.Mul(&beta, &wc)
	out.Add(&t1, &t2)
	return out
}

func concat(a, b []field.Element) []field.Element {
	out := make([]field.Element, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
