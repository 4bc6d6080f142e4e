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

// Package field fixes the scalar field used throughout this module to
// bn254.fr and supplies the canonical byte-encoding conventions the rest of
// the stack (transcript, multilinear, univariate, KZG) absorb and emit.
package field

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is the scalar field element type shared by every package in this
// module.
type Element = fr.Element

// Bytes is the canonical big-endian fixed-width encoding of a field element.
func Bytes(e Element) []byte {
	b := e.Bytes()
	return b[:]
}

// ConcatBytes concatenates the canonical encodings of es in order.
func ConcatBytes(es []Element) []byte {
	out := make([]byte, 0, len(es)*fr.Bytes)
	for _, e := range es {
		out = append(out, Bytes(e)...)
	}
	return out
}

// FromBytesModOrder reduces an arbitrary byte string modulo the field order,
// matching the transcript's evaluate_challenge_into_field contract. The
// reduction is not uniform over F; callers accept the resulting small
// statistical gap, per this module's Fiat-Shamir design.
func FromBytesModOrder(b []byte) Element {
	var e Element
	e.SetBytes(b)
	return e
}

// One returns the multiplicative identity.
func One() Element {
	return One1
}

// One1 is a shared constant for the multiplicative identity.
var One1 = func() Element {
	var e Element
	e.SetOne()
	return e
}()

// Zero returns the additive identity.
func Zero() Element {
	var e Element
	return e
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns k such that 1<<k == n. Panics if n is not a power of two.
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		panic("field: value is not a power of 2")
	}
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}
