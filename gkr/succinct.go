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
	kzg "github.com/sumcheck-labs/gkr-argument/kzg/multilinear"
	"github.com/sumcheck-labs/gkr-argument/kzg/trustedsetup"
	"github.com/sumcheck-labs/gkr-argument/polynomial/multilinear"
)

// SuccinctProof is a classical Proof plus a KZG commitment to the
// (zero-padded) input layer and two opening proofs, at r_b and r_c, closing
// the final reduction without handing the verifier the raw input.
type SuccinctProof struct {
	Proof
	Commitment kzg.Digest
	OpeningB   *kzg.Proof
	OpeningC   *kzg.Proof
}

// ProveSuccinct runs the classical reduction, then commits the input x
// (zero-padded up to srs's variable count) and opens it at the final r_b,
// r_c points, themselves zero-padded to the same width.
func ProveSuccinct(c *circuit.Circuit, x []field.Element, srs *trustedsetup.SRS) *SuccinctProof {
	proof, rb, rc, _, _ := proveCore(c, x)

	n := srs.NumVars()
	liftedEvals := padValuesToWidth(x, n)
	lifted := multilinear.New(liftedEvals)

	commit := kzg.Commit(lifted, srs)

	rbPadded := padPointToWidth(rb, n)
	rcPadded := padPointToWidth(rc, n)

	openingB := kzg.Open(lifted, rbPadded, srs)
	openingC := kzg.Open(lifted, rcPadded, srs)

	return &SuccinctProof{Proof: *proof, Commitment: commit, OpeningB: openingB, OpeningC: openingC}
}

// VerifySuccinct mirrors Verify, but closes the final reduction with two KZG
// opening checks instead of a direct evaluation of the raw input. Per this
// module's resolution of the upstream fail-open defect, either opening
// failing verification rejects the proof immediately: the final equality
// check never runs against a KZG failure silently defaulted to zero.
func VerifySuccinct(c *circuit.Circuit, proof *SuccinctProof, srs *trustedsetup.SRS) bool {
	claim, alpha, beta, rb, rc, ok := verifyCore(c, &proof.Proof)
	if !ok {
		return false
	}

	n := srs.NumVars()
	rbPadded := padPointToWidth(rb, n)
	rcPadded := padPointToWidth(rc, n)

	if !kzg.Verify(proof.Commitment, rbPadded, proof.OpeningB, srs) {
		return false
	}
	if !kzg.Verify(proof.Commitment, rcPadded, proof.OpeningC, srs) {
		return false
	}

	var t1, t2, want field.Element
	t1.Mul(&alpha, &proof.OpeningB.Evaluation)
	t2.Mul(&beta, &proof.OpeningC.Evaluation)
	want.Add(&t1, &t2)

	return want.Equal(&claim)
}

// padValuesToWidth zero-extends an evaluation table to 2^numVars entries.
// The original table occupies the prefix where every newly introduced,
// most-significant variable is fixed at 0; the multilinear extension of the
// zero-extended table therefore agrees with the original polynomial's
// evaluations everywhere those new variables are set to 0.
func padValuesToWidth(vals []field.Element, numVars int) []field.Element {
	size := 1 << numVars
	if len(vals) == size {
		return vals
	}
	out := make([]field.Element, size)
	copy(out, vals)
	return out
}

// padPointToWidth prepends zero coordinates for the new, most-significant
// variables padValuesToWidth introduces, so evaluating the lifted
// polynomial at the padded point reproduces the original polynomial's
// evaluation at r.
func padPointToWidth(r []field.Element, numVars int) []field.Element {
	extra := numVars - len(r)
	if extra <= 0 {
		return r
	}
	out := make([]field.Element, numVars)
	copy(out[extra:], r)
	return out
}
