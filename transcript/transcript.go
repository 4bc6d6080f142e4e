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

// Package transcript implements the Fiat-Shamir transcript shared by every
// interactive-turned-non-interactive protocol in this module: sumcheck, GKR,
// and the succinct variant's KZG challenges all thread a *Transcript through
// prove/verify so randomness is a deterministic function of prior messages.
package transcript

import (
	"crypto/sha256"
	"hash"

	"github.com/sumcheck-labs/gkr-argument/field"
)

// Transcript absorbs prover messages and squeezes verifier challenges via
// SHA-256. Challenge re-absorbs its own output digest so that two
// consecutive challenge squeezes, with nothing committed between them, still
// yield distinct values.
type Transcript struct {
	h hash.Hash
}

// New returns an empty transcript. Two transcripts on which the same byte
// sequence is committed and challenged produce identical challenge
// sequences, independent of which side (prover or verifier) holds them.
func New() *Transcript {
	return &Transcript{h: sha256.New()}
}

// Commit absorbs b into the running hash state.
func (t *Transcript) Commit(b []byte) {
	t.h.Write(b)
}

// Challenge finalizes the current hash state, returns the 32-byte digest,
// and re-absorbs that digest so the next challenge (with no intervening
// commit) is deterministic yet distinct from this one.
func (t *Transcript) Challenge() []byte {
	digest := t.h.Sum(nil)
	t.h.Reset()
	t.h.Write(digest)
	return digest
}

// ChallengeField squeezes a challenge and reduces it into the scalar field
// by interpreting the digest as a big-endian integer modulo the field order.
func (t *Transcript) ChallengeField() field.Element {
	return field.FromBytesModOrder(t.Challenge())
}

// ChallengeFieldN returns n independent field challenges via n sequential
// calls to ChallengeField.
func (t *Transcript) ChallengeFieldN(n int) []field.Element {
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = t.ChallengeField()
	}
	return out
}
