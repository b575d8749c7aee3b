package otp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.Regexp(t, `^\d{6}$`, code)
		seen[code] = true
	}
	// 20 draws over a six-digit space should not collapse to one value
	require.Greater(t, len(seen), 1)
}
