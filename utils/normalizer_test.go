package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "netapayer", NormalizeKey("Net à payer :"))
	assert.Equal(t, "salairebrut", NormalizeKey("SALAIRE BRUT"))
	assert.Equal(t, "prelevementalasource", NormalizeKey("Prélèvement à la source"))
	assert.Equal(t, "exonerations", NormalizeKey("Exonérations"))
	assert.Equal(t, "periodedu01012026", NormalizeKey("Période du 01/01/2026"))
	assert.Equal(t, "", NormalizeKey("  --- "))
	assert.Equal(t, "", NormalizeKey(""))
}

func TestParseFrenchAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1 234,56", 1234.56},
		{"1.234,56 €", 1234.56},
		{"1234,56", 1234.56},
		{"1 234.56", 1234.56},
		{"2 300,00 €", 2300.00},
		{"EUR 45,67", 45.67},
		{"1 823,03", 1823.03},
		{"3000", 3000},
		{"  302,40  ", 302.40},
		{"-150,25", -150.25},
	}

	for _, tc := range tests {
		value := ParseFrenchAmount(tc.input)
		require.NotNil(t, value, "expected %q to parse", tc.input)
		assert.Equal(t, tc.expected, *value, "input %q", tc.input)
	}
}

func TestParseFrenchAmountInvalid(t *testing.T) {
	invalid := []string{"", "abc", "€", "12,34,56", "1.2.3", " , "}

	for _, input := range invalid {
		assert.Nil(t, ParseFrenchAmount(input), "input %q", input)
	}
}
