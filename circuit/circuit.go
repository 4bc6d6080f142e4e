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

// Package circuit implements layered arithmetic circuits: add/mul gate
// layers, bottom-up evaluation, and the per-layer wiring multilinears GKR
// reduces each layer's claim against.
package circuit

import (
	"runtime"
	"sync"

	"github.com/sumcheck-labs/gkr-argument/field"
	"github.com/sumcheck-labs/gkr-argument/polynomial/multilinear"
)

// parallelGateThreshold is the smallest layer width at which chunking gate
// evaluation across goroutines pays for its own scheduling overhead.
const parallelGateThreshold = 1 << 12

// Op is a gate operation.
type Op int

const (
	Add Op = iota
	Mul
)

// Gate is a single gate: an operation over two indices into the next layer's
// output vector (or, for the last layer, the circuit's input vector).
type Gate struct {
	Op     Op
	Inputs [2]int
}

// Layer is an ordered list of gates. Its length must be a power of two.
type Layer struct {
	Gates []Gate
}

// Circuit is an ordered list of layers; layer 0 is the output layer, layer
// len(Layers)-1 is closest to the input.
type Circuit struct {
	Layers []Layer
}

// New wraps layers into a Circuit.
func New(layers []Layer) *Circuit {
	return &Circuit{Layers: layers}
}

func applyGate(g Gate, op1, op2 field.Element) field.Element {
	var out field.Element
	switch g.Op {
	case Add:
		out.Add(&op1, &op2)
	case Mul:
		out.Mul(&op1, &op2)
	default:
		panic("circuit: unrecognized gate operation")
	}
	return out
}

// Evaluate runs the circuit bottom-up on input x: the closest-to-input layer
// consumes x, each subsequent layer (moving toward the output) consumes the
// previous step's output vector. It returns len(Layers)+1 value vectors:
// index 0 is the output layer, index len(Layers)-1 is the layer closest to
// input, and the final, appended entry is x itself — GKR's reduction chain
// treats the raw input as one layer deeper than the last gate layer, since
// that layer's gates read directly from x.
func (c *Circuit) Evaluate(x []field.Element) [][]field.Element {
	layerValues := make([][]field.Element, len(c.Layers)+1)
	layerValues[len(c.Layers)] = x

	current := x
	for i := len(c.Layers) - 1; i >= 0; i-- {
		layer := c.Layers[i]
		out := make([]field.Element, len(layer.Gates))
		evaluateLayer(layer, current, out)
		layerValues[i] = out
		current = out
	}

	return layerValues
}

// evaluateLayer fills out[j] = applyGate(layer.Gates[j], ...) for every gate.
// Gates within a layer read only from current and write disjoint indices of
// out, so the work splits across goroutines with no synchronization beyond
// a join — the same level-chunking shape as a DAG's per-level solve step,
// specialized to circuit layers whose dependency structure is already known
// rather than discovered.
func evaluateLayer(layer Layer, current, out []field.Element) {
	n := len(layer.Gates)
	if n < parallelGateThreshold {
		for j, g := range layer.Gates {
			out[j] = applyGate(g, current[g.Inputs[0]], current[g.Inputs[1]])
		}
		return
	}

	nbWorkers := runtime.NumCPU()
	chunk := (n + nbWorkers - 1) / nbWorkers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				g := layer.Gates[j]
				out[j] = applyGate(g, current[g.Inputs[0]], current[g.Inputs[1]])
			}
		}(start, end)
	}
	wg.Wait()
}

// sizeOfMLENVarsAtLayer returns the number of variables add_i/mul_i need at
// layerIndex: a + 2b where a = log2(#gates at layerIndex) and b =
// log2(#inputs to layerIndex) under the canonical shape (2^layerIndex gates
// over 2^(layerIndex+1) inputs), with the exceptional case of layer 0 padded
// to n_vars = 3 when the output layer holds a single gate.
func sizeOfMLENVarsAtLayer(layerIndex int) int {
	if layerIndex == 0 {
		return 3
	}
	return layerIndex + 2*(layerIndex+1)
}

// binaryString zero-pads index's binary representation to bitCount bits.
// bitCount of 0 is treated as 1.
func binaryString(index, bitCount int) string {
	if bitCount == 0 {
		bitCount = 1
	}
	bits := make([]byte, bitCount)
	for i := bitCount - 1; i >= 0; i-- {
		if index&1 == 1 {
			bits[i] = '1'
		} else {
			bits[i] = '0'
		}
		index >>= 1
	}
	return string(bits)
}

// transformLabelToIndex bit-concatenates (gate index a-width, input-a
// b-width, input-b b-width), MSB-first, and interprets the result as a
// binary integer: the flat index into add_i/mul_i's evaluation table.
func transformLabelToIndex(aWidth, bWidth int, gateIndex, inputA, inputB int) int {
	s := binaryString(gateIndex, aWidth) + binaryString(inputA, bWidth) + binaryString(inputB, bWidth)
	idx := 0
	for _, c := range s {
		idx <<= 1
		if c == '1' {
			idx |= 1
		}
	}
	return idx
}

// AddMultMLE builds the add_i and mul_i wiring multilinears for the layer at
// layerIndex. The gate-index and input-index field widths follow the
// canonical shape (a = layerIndex, b = layerIndex+1); callers building
// non-canonically-shaped circuits must keep gate/input indices within those
// widths, per the protocol's fixed width convention.
func (c *Circuit) AddMultMLE(layerIndex int) (addMLE, mulMLE *multilinear.Multilinear) {
	layer := c.Layers[layerIndex]

	nVars := sizeOfMLENVarsAtLayer(layerIndex)
	size := 1 << nVars

	aWidth := layerIndex
	bWidth := layerIndex + 1

	addEvals := make([]field.Element, size)
	mulEvals := make([]field.Element, size)
	one := field.One()

	for j, g := range layer.Gates {
		idx := transformLabelToIndex(aWidth, bWidth, j, g.Inputs[0], g.Inputs[1])
		switch g.Op {
		case Add:
			addEvals[idx] = one
		case Mul:
			mulEvals[idx] = one
		}
	}

	return multilinear.New(addEvals), multilinear.New(mulEvals)
}

// Random builds the canonical layered circuit used by the source's test
// fixtures and benchmarks: numLayers layers, layer i having 2^i gates over
// 2^(i+1) inputs, alternating Add/Mul by layer parity, each gate wired to
// inputs (2*j, 2*j+1).
func Random(numLayers int) *Circuit {
	layers := make([]Layer, numLayers)
	for i := 0; i < numLayers; i++ {
		numGates := 1 << i
		gates := make([]Gate, numGates)
		op := Add
		if i%2 == 1 {
			op = Mul
		}
		for j := 0; j < numGates; j++ {
			gates[j] = Gate{Op: op, Inputs: [2]int{2 * j, 2*j + 1}}
		}
		layers[i] = Layer{Gates: gates}
	}
	return New(layers)
}
