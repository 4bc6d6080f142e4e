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

// Package sumcheck implements the basic sumcheck protocol on a single
// multilinear and the multi-composed sumcheck protocol GKR drives at every
// layer, both as a Fiat-Shamir transcript-bound prover/verifier pair.
package sumcheck

import (
	"github.com/sumcheck-labs/gkr-argument/field"
	"github.com/sumcheck-labs/gkr-argument/polynomial/multilinear"
	"github.com/sumcheck-labs/gkr-argument/transcript"
)

// Proof is a basic-sumcheck transcript: one round polynomial per variable,
// each represented as the length-2 multilinear [g_i(0), g_i(1)] SplitAndSum
// produces, plus the claimed total sum.
type Proof struct {
	RoundPolys []*multilinear.Multilinear
	Sum        field.Element
}

// CalculatePolySum returns the sum of poly's evaluations over the Boolean
// hypercube, the claim a basic-sumcheck prover starts from.
func CalculatePolySum(poly *multilinear.Multilinear) field.Element {
	return poly.SumOverHypercube()
}

// Prove runs the basic sumcheck prover on poly against the claimed sum,
// returning the proof and the challenge vector (r_0,...,r_{n-1}) at which the
// verifier's final oracle check is made.
func Prove(poly *multilinear.Multilinear, sum field.Element) (*Proof, []field.Element) {
	t := transcript.New()
	t.Commit(field.Bytes(sum))

	current := poly
	roundPolys := make([]*multilinear.Multilinear, 0, poly.NVars)
	challenges := make([]field.Element, 0, poly.NVars)

	for i := 0; i < poly.NVars; i++ {
		roundPoly := current.SplitAndSum()
		roundPolys = append(roundPolys, roundPoly)

		t.Commit(roundPoly.ToBytes())
		r := t.ChallengeField()
		challenges = append(challenges, r)

		current = current.PartialEvaluate(r, 0)
	}

	return &Proof{RoundPolys: roundPolys, Sum: sum}, challenges
}

// Verify checks proof against poly: every round's g_i(0)+g_i(1) must match
// the running claim, and the final claim must equal poly evaluated at the
// reconstructed challenge vector. Returns false on any mismatch; never
// panics on a malformed proof from an untrusted prover.
func Verify(poly *multilinear.Multilinear, proof *Proof) bool {
	if len(proof.RoundPolys) != poly.NVars {
		return false
	}

	t := transcript.New()
	t.Commit(field.Bytes(proof.Sum))

	claim := proof.Sum
	challenges := make([]field.Element, 0, poly.NVars)

	for _, roundPoly := range proof.RoundPolys {
		if len(roundPoly.Evals) != 2 {
			return false
		}

		var evalSum field.Element
		evalSum.Add(&roundPoly.Evals[0], &roundPoly.Evals[1])
		if !evalSum.Equal(&claim) {
			return false
		}

		t.Commit(roundPoly.ToBytes())
		r := t.ChallengeField()
		challenges = append(challenges, r)

		claim = roundPoly.Evaluate([]field.Element{r})
	}

	final := poly.Evaluate(challenges)
	return final.Equal(&claim)
}
