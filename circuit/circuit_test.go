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

package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/sumcheck-labs/gkr-argument/field"
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

// two-layer circuit: layer 0 = Mul(0,1), layer 1 = Add(0,1), Mul(2,3).
func twoLayerCircuit() *Circuit {
	return New([]Layer{
		{Gates: []Gate{{Op: Mul, Inputs: [2]int{0, 1}}}},
		{Gates: []Gate{{Op: Add, Inputs: [2]int{0, 1}}, {Op: Mul, Inputs: [2]int{2, 3}}}},
	})
}

func TestCircuitEvaluate(t *testing.T) {
	assert := require.New(t)

	c := twoLayerCircuit()
	x := fes(2, 3, 4, 5)
	layerValues := c.Evaluate(x)

	assert.Len(layerValues, 3)
	// layer 1: 2+3=5, 4*5=20
	assert.True(layerValues[1][0].Equal(ptr(fe(5))))
	assert.True(layerValues[1][1].Equal(ptr(fe(20))))
	// layer 0 (output): 5*20=100
	assert.True(layerValues[0][0].Equal(ptr(fe(100))))
	// trailing entry is the raw input
	assert.True(slices.Equal(x, layerValues[2]))
}

func ptr(e field.Element) *field.Element { return &e }

func TestCircuitEvaluateUnrecognizedOpPanics(t *testing.T) {
	assert := require.New(t)

	c := New([]Layer{{Gates: []Gate{{Op: Op(99), Inputs: [2]int{0, 1}}}}})
	assert.Panics(func() { c.Evaluate(fes(1, 2)) })
}

func TestRandomCircuitShape(t *testing.T) {
	assert := require.New(t)

	c := Random(4)
	assert.Len(c.Layers, 4)
	for i, layer := range c.Layers {
		assert.Len(layer.Gates, 1<<i)
		wantOp := Add
		if i%2 == 1 {
			wantOp = Mul
		}
		for _, g := range layer.Gates {
			assert.Equal(wantOp, g.Op)
		}
	}
}

func TestAddMultMLEMatchesWiring(t *testing.T) {
	assert := require.New(t)

	c := twoLayerCircuit()
	addMLE, mulMLE := c.AddMultMLE(1)

	// layer 1, gate 0 is Add(0,1): a=0, inputA=0, inputB=1, aWidth=1, bWidth=2
	// bit string "0" + "00" + "01" = "00001" -> index 1
	one := field.One()
	evalAt := func(idx int) field.Element {
		bits := make([]field.Element, addMLE.NVars)
		for i := 0; i < addMLE.NVars; i++ {
			shift := addMLE.NVars - 1 - i
			if (idx>>shift)&1 == 1 {
				bits[i] = one
			}
		}
		return addMLE.Evaluate(bits)
	}
	got := evalAt(1)
	assert.True(got.Equal(&one))

	mulEvalAt := func(idx int) field.Element {
		bits := make([]field.Element, mulMLE.NVars)
		for i := 0; i < mulMLE.NVars; i++ {
			shift := mulMLE.NVars - 1 - i
			if (idx>>shift)&1 == 1 {
				bits[i] = one
			}
		}
		return mulMLE.Evaluate(bits)
	}
	// gate 1 is Mul(2,3): a=1, inputA=2(="10"), inputB=3(="11")
	// bit string "1" + "10" + "11" = "11011" -> index 27
	got = mulEvalAt(27)
	assert.True(got.Equal(&one))

	// a wiring MLE with at least one gate wired in is never the zero
	// polynomial.
	assert.False(addMLE.IsZero())
	assert.False(mulMLE.IsZero())
}

// TestEvaluateLayerParallelMatchesSequential drives a layer wide enough to
// cross parallelGateThreshold and checks the goroutine-chunked path agrees
// with the plain sequential loop it replaces above the threshold.
func TestEvaluateLayerParallelMatchesSequential(t *testing.T) {
	assert := require.New(t)

	n := parallelGateThreshold + 17
	gates := make([]Gate, n)
	current := make([]field.Element, 2*n)
	for i := range current {
		current[i] = fe(int64(i + 1))
	}
	for j := range gates {
		op := Add
		if j%2 == 1 {
			op = Mul
		}
		gates[j] = Gate{Op: op, Inputs: [2]int{2 * j, 2*j + 1}}
	}
	layer := Layer{Gates: gates}

	wantSeq := make([]field.Element, n)
	for j, g := range gates {
		wantSeq[j] = applyGate(g, current[g.Inputs[0]], current[g.Inputs[1]])
	}

	gotParallel := make([]field.Element, n)
	evaluateLayer(layer, current, gotParallel)

	assert.True(slices.Equal(wantSeq, gotParallel))
}
