package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"+46701234567", true},
		{"46701234567", true},
		{"+46 70 123 45 67", true},
		{"+", false},
		{"", false},
		{"   ", false},
		{"+46-70-123", false},
		{"phone", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			require.Equal(t, tt.valid, phoneValueValid(tt.value))
		})
	}
}

func TestValidateNoSpaces(t *testing.T) {
	require.True(t, noSpacesValueValid("manager"))
	require.True(t, noSpacesValueValid("a b"))
	require.False(t, noSpacesValueValid("   "))
	require.False(t, noSpacesValueValid(""))
}
