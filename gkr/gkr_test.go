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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sumcheck-labs/gkr-argument/circuit"
	"github.com/sumcheck-labs/gkr-argument/field"
	"github.com/sumcheck-labs/gkr-argument/kzg/trustedsetup"
)

func fe(v int64) field.Element {
	var e field.Element
	e.SetInt64(v)
	return e
}

func fes(vs ...int64) []field.Element {
	out := make([]field.Element, len(vs))
	for i, v := range vs {
		out[i] = fe(v)
	}
	return out
}

func gate(op circuit.Op, a, b int) circuit.Gate {
	return circuit.Gate{Op: op, Inputs: [2]int{a, b}}
}

// twoLayerCircuit is test_gkr_protocol_1: a 2-layer circuit over a 4-element
// input, layer 0 a single Mul gate, layer 1 an Add and a Mul gate.
func twoLayerCircuit() *circuit.Circuit {
	layer0 := circuit.Layer{Gates: []circuit.Gate{gate(circuit.Mul, 0, 1)}}
	layer1 := circuit.Layer{Gates: []circuit.Gate{
		gate(circuit.Add, 0, 1),
		gate(circuit.Mul, 2, 3),
	}}
	return circuit.New([]circuit.Layer{layer0, layer1})
}

func TestGKRProveVerifyTwoLayerCircuit(t *testing.T) {
	assert := require.New(t)

	c := twoLayerCircuit()
	input := fes(2, 3, 4, 5)

	proof := Prove(c, input)
	assert.True(Verify(c, input, proof))
}

func TestGKRRejectsWrongInput(t *testing.T) {
	assert := require.New(t)

	c := twoLayerCircuit()
	input := fes(2, 3, 4, 5)
	wrongInput := fes(2, 3, 4, 6)

	proof := Prove(c, input)
	assert.False(Verify(c, wrongInput, proof))
}

// fourLayerCircuit is test_gkr_protocol_2: a 4-layer circuit over a
// 16-element input whose output is 224.
func fourLayerCircuit() *circuit.Circuit {
	layer0 := circuit.Layer{Gates: []circuit.Gate{gate(circuit.Add, 0, 1)}}
	layer1 := circuit.Layer{Gates: []circuit.Gate{
		gate(circuit.Mul, 0, 1),
		gate(circuit.Add, 2, 3),
	}}
	layer2 := circuit.Layer{Gates: []circuit.Gate{
		gate(circuit.Add, 0, 1),
		gate(circuit.Mul, 2, 3),
		gate(circuit.Mul, 4, 5),
		gate(circuit.Mul, 6, 7),
	}}
	layer3 := circuit.Layer{Gates: []circuit.Gate{
		gate(circuit.Mul, 0, 1),
		gate(circuit.Mul, 2, 3),
		gate(circuit.Mul, 4, 5),
		gate(circuit.Add, 6, 7),
		gate(circuit.Mul, 8, 9),
		gate(circuit.Add, 10, 11),
		gate(circuit.Mul, 12, 13),
		gate(circuit.Mul, 14, 15),
	}}
	return circuit.New([]circuit.Layer{layer0, layer1, layer2, layer3})
}

func TestGKRFourLayerCircuitOutputAndProof(t *testing.T) {
	assert := require.New(t)

	c := fourLayerCircuit()
	input := fes(2, 1, 3, 1, 4, 1, 2, 2, 3, 3, 4, 4, 2, 3, 3, 4)

	eval := c.Evaluate(input)
	assert.Equal(fe(224).String(), eval[0][0].String())

	proof := Prove(c, input)
	assert.True(Verify(c, input, proof))
}

func TestGKRSuccinctRoundTripAccepts(t *testing.T) {
	assert := require.New(t)

	c := twoLayerCircuit()
	input := fes(2, 3, 4, 5)

	srs := trustedsetup.Setup(fes(2, 3))
	proof := ProveSuccinct(c, input, srs)

	assert.True(VerifySuccinct(c, proof, srs))
}

func TestGKRSuccinctRejectsTamperedOpening(t *testing.T) {
	assert := require.New(t)

	c := twoLayerCircuit()
	input := fes(2, 3, 4, 5)

	srs := trustedsetup.Setup(fes(2, 3))
	proof := ProveSuccinct(c, input, srs)

	var tampered field.Element
	tampered.Add(&proof.OpeningB.Evaluation, &field.One1)
	proof.OpeningB.Evaluation = tampered

	assert.False(VerifySuccinct(c, proof, srs))
}
