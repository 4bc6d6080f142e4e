package trustedsetup

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/require"

	"github.com/sumcheck-labs/gkr-argument/field"
)

func fe(v int64) field.Element {
	var e field.Element
	e.SetInt64(v)
	return e
}

// TestLagrangeBasisValuesMatchDirectFormula is the spec's scenario 3 setup:
// tau = (2,3,4) over 3 variables, matching
// check_for_zero_and_one/generate_array_of_points's numeric fixture.
func TestLagrangeBasisValuesMatchDirectFormula(t *testing.T) {
	assert := require.New(t)

	tau := []field.Element{fe(2), fe(3), fe(4)}
	values := lagrangeBasisValues(tau)

	assert.Len(values, 8)
	assert.Equal(fe(-6).String(), values[0].String())
	assert.Equal(fe(8).String(), values[1].String())
	assert.Equal(fe(9).String(), values[2].String())
	assert.Equal(fe(-12).String(), values[3].String())
	assert.Equal(fe(12).String(), values[4].String())
	assert.Equal(fe(-16).String(), values[5].String())
	assert.Equal(fe(-18).String(), values[6].String())
	assert.Equal(fe(24).String(), values[7].String())
}

func TestSetupProducesExpectedLengths(t *testing.T) {
	assert := require.New(t)

	tau := []field.Element{fe(2), fe(3), fe(4)}
	srs := Setup(tau)

	assert.Len(srs.TauG1, 8)
	assert.Len(srs.TauG2, 3)
	assert.Equal(3, srs.NumVars())

	g1, g2 := generatorG1(), generatorG2()
	assert.NotEqual(bn254.G1Affine{}, g1)
	assert.NotEqual(bn254.G2Affine{}, g2)
}
