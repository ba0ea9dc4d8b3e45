package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWalkCode_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateWalkCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestCodesMatch(t *testing.T) {
	assert.True(t, codesMatch("042913", "042913"))
	assert.False(t, codesMatch("042913", "042914"))
	assert.False(t, codesMatch("", "042913"))
	assert.False(t, codesMatch("42913", "042913"))
}
