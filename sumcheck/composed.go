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

package sumcheck

import (
	"github.com/sumcheck-labs/gkr-argument/field"
	"github.com/sumcheck-labs/gkr-argument/polynomial/multilinear"
	"github.com/sumcheck-labs/gkr-argument/polynomial/univariate"
	"github.com/sumcheck-labs/gkr-argument/transcript"
)

// ComposedProof is a multi-composed-sumcheck transcript: one round
// polynomial per variable (degree <= max_k max_degree(C_k)), plus the
// claimed total sum.
type ComposedProof struct {
	RoundPolys []*univariate.Dense
	Sum        field.Element
}

// SubClaim is the outcome of replaying a proof's transcript without an
// oracle check: the final claim and the challenge vector it was reduced to.
// GKR's enclosing verifier consumes this directly instead of re-deriving the
// challenges itself.
type SubClaim struct {
	Sum        field.Element
	Challenges []field.Element
}

// CalculatePolySumMulti sums every composed polynomial's hypercube sum.
func CalculatePolySumMulti(polys []*multilinear.Composed) field.Element {
	sum := field.Zero()
	for _, p := range polys {
		for _, e := range p.ElementWiseProduct() {
			sum.Add(&sum, &e)
		}
	}
	return sum
}

func composedsToBytes(polys []*multilinear.Composed) []byte {
	var out []byte
	for _, p := range polys {
		out = append(out, p.ToBytes()...)
	}
	return out
}

// ProveMultiComposed runs multi-composed sumcheck on polys against sum,
// absorbing the composed-polynomial identity into a fresh transcript before
// the claimed sum. Use this for a standalone proof; use ProveMultiComposedPartial
// when an enclosing protocol (GKR) has already bound these identities through
// its own transcript.
func ProveMultiComposed(polys []*multilinear.Composed, sum field.Element) (*ComposedProof, []field.Element) {
	t := transcript.New()
	t.Commit(composedsToBytes(polys))
	return proveMultiComposedInternal(polys, sum, t)
}

// ProveMultiComposedPartial is ProveMultiComposed without the initial
// composed-polynomial-identity absorb, for use inside a protocol (GKR) whose
// own transcript discipline already committed to those identities.
func ProveMultiComposedPartial(polys []*multilinear.Composed, sum field.Element, t *transcript.Transcript) (*ComposedProof, []field.Element) {
	return proveMultiComposedInternal(polys, sum, t)
}

func proveMultiComposedInternal(polys []*multilinear.Composed, sum field.Element, t *transcript.Transcript) (*ComposedProof, []field.Element) {
	t.Commit(field.Bytes(sum))

	nVars := polys[0].NVars()
	current := polys
	roundPolys := make([]*univariate.Dense, 0, nVars)
	challenges := make([]field.Element, 0, nVars)

	for round := 0; round < nVars; round++ {
		roundPoly := univariate.Zero()

		for _, p := range current {
			d := p.MaxDegree()
			points := make([][2]field.Element, d+1)
			for i := 0; i <= d; i++ {
				var x field.Element
				x.SetInt64(int64(i))

				partial := p.PartialEvaluate(x, 0)
				s := field.Zero()
				for _, e := range partial.ElementWiseProduct() {
					s.Add(&s, &e)
				}
				points[i] = [2]field.Element{x, s}
			}

			roundIPoly := univariate.InterpolateLagrange(points)
			roundPoly = roundPoly.Add(roundIPoly)
		}

		t.Commit(roundPolyToBytes(roundPoly))
		r := t.ChallengeField()

		next := make([]*multilinear.Composed, len(current))
		for i, p := range current {
			next[i] = p.PartialEvaluate(r, 0)
		}
		current = next

		roundPolys = append(roundPolys, roundPoly)
		challenges = append(challenges, r)
	}

	return &ComposedProof{RoundPolys: roundPolys, Sum: sum}, challenges
}

// roundPolyToBytes is the round-polynomial transcript format: the
// coefficient byte string, lowest degree first. Evaluation form never
// reaches the transcript.
func roundPolyToBytes(p *univariate.Dense) []byte {
	return field.ConcatBytes(p.Coeffs)
}

// VerifyMultiComposed checks proof against polys end to end: the transcript
// replay (VerifyMultiComposedPartial) plus the final oracle check
// Sigma_k polys[k].evaluate(challenges) == claim.
func VerifyMultiComposed(polys []*multilinear.Composed, proof *ComposedProof) bool {
	t := transcript.New()
	t.Commit(composedsToBytes(polys))

	subClaim, ok := verifyMultiComposedInternal(proof, t)
	if !ok {
		return false
	}

	polySum := field.Zero()
	for _, p := range polys {
		v := p.Evaluate(subClaim.Challenges)
		polySum.Add(&polySum, &v)
	}

	return polySum.Equal(&subClaim.Sum)
}

// VerifyMultiComposedPartial replays proof's transcript without an oracle
// check, returning the resulting sub-claim. The second return is false if
// any round's consistency check failed, in which case the SubClaim is
// meaningless and must not be used.
func VerifyMultiComposedPartial(proof *ComposedProof, t *transcript.Transcript) (*SubClaim, bool) {
	return verifyMultiComposedInternal(proof, t)
}

func verifyMultiComposedInternal(proof *ComposedProof, t *transcript.Transcript) (*SubClaim, bool) {
	t.Commit(field.Bytes(proof.Sum))

	claim := proof.Sum
	challenges := make([]field.Element, 0, len(proof.RoundPolys))

	for _, roundPoly := range proof.RoundPolys {
		zero := field.Zero()
		one := field.One()
		var evalSum field.Element
		evalSum.Add(roundPolyEval(roundPoly, zero), roundPolyEval(roundPoly, one))
		if !evalSum.Equal(&claim) {
			return nil, false
		}

		t.Commit(roundPolyToBytes(roundPoly))
		r := t.ChallengeField()
		challenges = append(challenges, r)

		claim = roundPoly.Evaluate(r)
	}

	return &SubClaim{Sum: claim, Challenges: challenges}, true
}

func roundPolyEval(p *univariate.Dense, at field.Element) *field.Element {
	v := p.Evaluate(at)
	return &v
}
