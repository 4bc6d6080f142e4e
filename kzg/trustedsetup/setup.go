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

// Package trustedsetup generates the structured reference string the
// multilinear KZG scheme commits against: tau_g1[k] = g1*L_k(tau) for every
// point k of the Boolean hypercube, and tau_g2[j] = g2*tau_j for every
// coordinate of the secret evaluation point tau.
package trustedsetup

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/rs/zerolog/log"

	"github.com/sumcheck-labs/gkr-argument/field"
)

// SRS is the structured reference string for an n-variable multilinear KZG
// commitment: len(TauG1) == 2^n, len(TauG2) == n.
type SRS struct {
	TauG1 []bn254.G1Affine
	TauG2 []bn254.G2Affine
}

// NumVars is the number of variables this SRS supports.
func (s *SRS) NumVars() int {
	return len(s.TauG2)
}

// Setup builds the SRS for the secret evaluation point tau; tau must never
// be retained once Setup returns, as per any trusted-setup ceremony.
func Setup(tau []field.Element) *SRS {
	log.Info().Int("n_vars", len(tau)).Msg("generating multilinear KZG trusted setup")

	g1, g2 := generatorG1(), generatorG2()

	lagrangeValues := lagrangeBasisValues(tau)
	tauG1 := make([]bn254.G1Affine, len(lagrangeValues))
	for k, l := range lagrangeValues {
		tauG1[k].ScalarMultiplication(&g1, toBigInt(l))
	}

	tauG2 := make([]bn254.G2Affine, len(tau))
	for j, t := range tau {
		tauG2[j].ScalarMultiplication(&g2, toBigInt(t))
	}

	log.Info().Msg("trusted setup generation complete")

	return &SRS{TauG1: tauG1, TauG2: tauG2}
}

// lagrangeBasisValues returns L_k(tau) for every k in 0..2^len(tau), where
// L_k(tau) = Pi_{i: bit_i(k)=1} tau_i * Pi_{i: bit_i(k)=0} (1-tau_i), walking
// the Boolean hypercube in the same MSB-first bit order the rest of this
// module uses for multilinear evaluation tables.
func lagrangeBasisValues(tau []field.Element) []field.Element {
	n := len(tau)
	size := 1 << n
	out := make([]field.Element, size)

	for k := 0; k < size; k++ {
		acc := field.One()
		for i := 0; i < n; i++ {
			bitPos := n - 1 - i
			bit := (k >> bitPos) & 1

			var factor field.Element
			if bit == 1 {
				factor = tau[i]
			} else {
				one := field.One()
				factor.Sub(&one, &tau[i])
			}
			acc.Mul(&acc, &factor)
		}
		out[k] = acc
	}

	return out
}

func generatorG1() bn254.G1Affine {
	_, _, g1, _ := bn254.Generators()
	return g1
}

func generatorG2() bn254.G2Affine {
	_, _, _, g2 := bn254.Generators()
	return g2
}

func toBigInt(e field.Element) *big.Int {
	var b big.Int
	e.ToBigIntRegular(&b)
	return &b
}
