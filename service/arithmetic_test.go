package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestVerifierCoherenceArithmetiqueSkipsOnMissing(t *testing.T) {
	check := VerifierCoherenceArithmetique(nil, floatPtr(2300), nil, nil, 10.0)
	assert.True(t, check.Skip)
	assert.Equal(t, "Manque Brut ou Net", check.Reason)

	check = VerifierCoherenceArithmetique(floatPtr(3000), nil, nil, nil, 10.0)
	assert.True(t, check.Skip)
}

func TestVerifierCoherenceArithmetiqueFlagsDrift(t *testing.T) {
	check := VerifierCoherenceArithmetique(floatPtr(3000), floatPtr(2500), floatPtr(600), floatPtr(0), 10.0)

	assert.False(t, check.Skip)
	assert.Equal(t, 2400.0, check.NetCalcule)
	assert.Equal(t, 100.0, check.Ecart)
	assert.True(t, check.Anomalie)
	assert.Contains(t, check.Details, "3000.00")
	assert.Contains(t, check.Details, "2400.00")
}

func TestVerifierCoherenceArithmetiqueWithinTolerance(t *testing.T) {
	check := VerifierCoherenceArithmetique(floatPtr(3000), floatPtr(2395), floatPtr(600), floatPtr(0), 10.0)

	assert.False(t, check.Skip)
	assert.Equal(t, 5.0, check.Ecart)
	assert.False(t, check.Anomalie)
}

func TestVerifierCoherenceArithmetiqueDefaultsMissingDeductions(t *testing.T) {
	// cotisations and PAS default to zero when not extracted
	check := VerifierCoherenceArithmetique(floatPtr(3000), floatPtr(3000), nil, nil, 10.0)

	assert.False(t, check.Skip)
	assert.Equal(t, 3000.0, check.NetCalcule)
	assert.Equal(t, 0.0, check.Ecart)
	assert.False(t, check.Anomalie)
}
