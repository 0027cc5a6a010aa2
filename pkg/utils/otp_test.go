package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCode(t *testing.T) {
	t.Run("always six digits in range", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			code, err := GenerateOTPCode()
			require.NoError(t, err)
			require.Len(t, code, 6)

			n, err := strconv.Atoi(code)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 100000)
			assert.LessOrEqual(t, n, 999999)
		}
	})

	t.Run("codes vary", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			code, err := GenerateOTPCode()
			require.NoError(t, err)
			seen[code] = true
		}
		// 50 draws from 900k values colliding down to one would mean a
		// broken generator.
		assert.Greater(t, len(seen), 1)
	})
}
