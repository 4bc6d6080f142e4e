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

package univariate

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/sumcheck-labs/gkr-argument/field"
)

// Domain wraps gnark-crypto's NTT domain, giving get_root_of_unity(n) and
// forward/inverse transform in the natural (non-bit-reversed) index order
// that the rest of this module works in.
type Domain struct {
	d *fft.Domain
}

// NewDomain returns the NTT domain of size n, n a power of two. Panics (via
// gnark-crypto) if the field has no subgroup of that size.
func NewDomain(n int) *Domain {
	return &Domain{d: fft.NewDomain(uint64(n))}
}

// Cardinality is the domain's size, 2^k.
func (d *Domain) Cardinality() int {
	return int(d.d.Cardinality)
}

// Generator is the primitive Cardinality-th root of unity generating the
// domain, i.e. get_root_of_unity(Cardinality).
func (d *Domain) Generator() field.Element {
	return d.d.Generator
}

// ToEvaluations forward-transforms coeffs (coefficient form, natural order,
// padded/truncated to Cardinality()) into values on the domain, values[i] =
// P(generator^i), in natural order.
func (d *Domain) ToEvaluations(coeffs []field.Element) []field.Element {
	a := padTo(coeffs, d.Cardinality())
	d.d.FFT(a, fft.DIF)
	fft.BitReverse(a)
	return a
}

// ToCoefficients inverse-transforms values (natural order, one per domain
// point) back into coefficient form, natural order.
func (d *Domain) ToCoefficients(values []field.Element) []field.Element {
	a := padTo(values, d.Cardinality())
	d.d.FFTInverse(a, fft.DIF)
	fft.BitReverse(a)
	return a
}

// Evaluation is a polynomial stored as values on the multiplicative subgroup
// generated by domain.Generator(), values[i] = P(generator^i).
type Evaluation struct {
	Values []field.Element
	Domain *Domain
}

// NewEvaluation wraps values together with the domain they were sampled on.
// len(values) must equal domain.Cardinality().
func NewEvaluation(values []field.Element, domain *Domain) *Evaluation {
	if len(values) != domain.Cardinality() {
		panic("univariate: evaluation-form length must match domain cardinality")
	}
	return &Evaluation{Values: values, Domain: domain}
}

// ToCoefficients performs the inverse FFT, returning the coefficient-form
// polynomial this evaluation-form polynomial represents.
func (e *Evaluation) ToCoefficients() *Dense {
	return &Dense{Coeffs: e.Domain.ToCoefficients(e.Values)}
}

// ToEvaluation forward-transforms p onto domain.
func (p *Dense) ToEvaluation(domain *Domain) *Evaluation {
	return &Evaluation{Values: domain.ToEvaluations(p.Coeffs), Domain: domain}
}
