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

// Package multilinear implements the multilinear KZG polynomial commitment
// scheme: commit, sequential-quotient opening, and pairing verification
// against a trustedsetup.SRS.
package multilinear

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/sumcheck-labs/gkr-argument/field"
	"github.com/sumcheck-labs/gkr-argument/kzg/trustedsetup"
	"github.com/sumcheck-labs/gkr-argument/polynomial/multilinear"
)

// Digest is a commitment to a multilinear polynomial.
type Digest = bn254.G1Affine

// Proof is the output of Open: the claimed evaluation and one G1 opening
// proof per variable.
type Proof struct {
	Evaluation field.Element
	Openings   []bn254.G1Affine
}

// Commit computes Sigma_k evals[k] * srs.TauG1[k]. Panics if the polynomial's
// evaluation count disagrees with the setup's, a structural precondition on
// trusted inputs rather than a verifier-facing rejection.
func Commit(m *multilinear.Multilinear, srs *trustedsetup.SRS) Digest {
	if len(m.Evals) != len(srs.TauG1) {
		panic("multilinear: polynomial length disagrees with trusted setup size")
	}

	var commit Digest
	_, err := commit.MultiExp(srs.TauG1, m.Evals, multiExpConfig)
	if err != nil {
		panic("multilinear: commitment multi-exponentiation failed: " + err.Error())
	}
	return commit
}

// Open produces a KZG opening proof of m at points, sequentially peeling off
// one variable per round: at round i, quotient_i = d(M)/dx_0 (the finite
// difference M(1,.)-M(0,.), independent of x_0), remainder_i =
// M(points[i],.) becomes next round's polynomial, and lifted_i lifts
// quotient_i back up to m.NVars ignored-MSB variables so every per-round
// commitment inhabits the same domain as the original commitment (the last
// round's quotient is a bare scalar, duplicated into one variable before the
// same lift). Panics if len(points) != m.NVars, a structural precondition.
func Open(m *multilinear.Multilinear, points []field.Element, srs *trustedsetup.SRS) *Proof {
	if len(points) != m.NVars {
		panic("multilinear: number of opening points must match number of variables")
	}

	evaluation := m.Evaluate(points)
	n := m.NVars

	openings := make([]bn254.G1Affine, n)
	poly := m

	for i, r := range points {
		one := field.One()
		zero := field.Zero()

		f1 := poly.PartialEvaluate(one, 0)
		f0 := poly.PartialEvaluate(zero, 0)
		quotient := f1.Add(negate(f0))

		remainder := poly.PartialEvaluate(r, 0)

		var lifted *multilinear.Multilinear
		if i != n-1 {
			lifted = quotient.AddToFront(i + 1)
		} else {
			duplicated := multilinear.DuplicateEvaluation(quotient.Evals)
			lifted = duplicated.AddToFront(n - 1)
		}

		openings[i] = Commit(lifted, srs)
		poly = remainder
	}

	if poly.NVars != 0 || !poly.Evals[0].Equal(&evaluation) {
		panic("multilinear: evaluation and final remainder mismatch")
	}

	return &Proof{Evaluation: evaluation, Openings: openings}
}

// Verify checks that commit opens to proof.Evaluation at points: e(C -
// g1*v, g2) == Pi_i e(proof.Openings[i], srs.TauG2[i] - g2*points[i]).
// Returns false on any deviation; never panics on an untrusted proof.
func Verify(commit Digest, points []field.Element, proof *Proof, srs *trustedsetup.SRS) bool {
	if len(points) != len(proof.Openings) || len(points) != srs.NumVars() {
		return false
	}

	_, _, g1, g2 := bn254.Generators()

	var v bn254.G1Affine
	v.ScalarMultiplication(&g1, toBigInt(proof.Evaluation))

	var commitMinusV bn254.G1Affine
	commitMinusV.Sub(&commit, &v)

	p1s := make([]bn254.G1Affine, 0, len(points)+1)
	p2s := make([]bn254.G2Affine, 0, len(points)+1)

	p1s = append(p1s, commitMinusV)
	p2s = append(p2s, g2)

	for i, r := range points {
		var rInG2 bn254.G2Affine
		rInG2.ScalarMultiplication(&g2, toBigInt(r))

		var tauMinusR bn254.G2Affine
		tauMinusR.Sub(&srs.TauG2[i], &rInG2)

		var negOpening bn254.G1Affine
		negOpening.Neg(&proof.Openings[i])

		p1s = append(p1s, negOpening)
		p2s = append(p2s, tauMinusR)
	}

	ok, err := bn254.PairingCheck(p1s, p2s)
	if err != nil {
		return false
	}
	return ok
}

var multiExpConfig = ecc.MultiExpConfig{ScalarsMont: true}

func negate(m *multilinear.Multilinear) *multilinear.Multilinear {
	out := make([]field.Element, len(m.Evals))
	for i, e := range m.Evals {
		out[i].Neg(&e)
	}
	return &multilinear.Multilinear{NVars: m.NVars, Evals: out}
}

func toBigInt(e field.Element) *big.Int {
	var b big.Int
	e.ToBigIntRegular(&b)
	return &b
}
