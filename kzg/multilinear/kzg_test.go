package multilinear

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sumcheck-labs/gkr-argument/field"
	"github.com/sumcheck-labs/gkr-argument/kzg/trustedsetup"
	"github.com/sumcheck-labs/gkr-argument/polynomial/multilinear"
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

// TestKZGRoundTripAccepts is the spec's scenario 3: a 3-variable multilinear
// committed under a trusted setup at (2,3,4), opened at (5,9,6), verifies.
func TestKZGRoundTripAccepts(t *testing.T) {
	assert := require.New(t)

	proverPoints := fes(2, 3, 4)
	verifierPoints := fes(5, 9, 6)

	poly := multilinear.New(fes(0, 7, 0, 5, 0, 7, 4, 9))

	srs := trustedsetup.Setup(proverPoints)
	commit := Commit(poly, srs)

	proof := Open(poly, verifierPoints, srs)
	assert.True(Verify(commit, verifierPoints, proof, srs))
}

// TestKZGRejectsTamperedSetup is the spec's scenario 3 tamper case:
// verifying the same commitment and proof against a setup generated from a
// different tau must reject.
func TestKZGRejectsTamperedSetup(t *testing.T) {
	assert := require.New(t)

	proverPoints := fes(12, 9, 28, 40)
	tamperedPoints := fes(12, 19, 28, 40)
	verifierPoints := fes(54, 90, 76, 160)

	// 4ac + 10bc + 2cd - 12ad
	poly := multilinear.New(fes(
		0, 0, 0, 2,
		0, 0, 10, 12,
		0, -12, 4, -6,
		0, -12, 14, 4,
	))

	srs := trustedsetup.Setup(proverPoints)
	tamperedSRS := trustedsetup.Setup(tamperedPoints)

	commit := Commit(poly, srs)
	proof := Open(poly, verifierPoints, srs)

	assert.True(Verify(commit, verifierPoints, proof, srs))
	assert.False(Verify(commit, verifierPoints, proof, tamperedSRS))
}

func TestKZGRejectsWrongCommitment(t *testing.T) {
	assert := require.New(t)

	points := fes(2, 3, 4)
	poly := multilinear.New(fes(0, 7, 0, 5, 0, 7, 4, 9))
	other := multilinear.New(fes(1, 7, 0, 5, 0, 7, 4, 9))

	srs := trustedsetup.Setup(points)
	proof := Open(poly, points, srs)

	wrongCommit := Commit(other, srs)
	assert.False(Verify(wrongCommit, points, proof, srs))
}
