//go:build unit

package couponcode_test

import (
	"regexp"
	"strings"
	"testing"

	"couponbot/internal/pkg/couponcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9-]+$`)

	t.Run("shape", func(t *testing.T) {
		code, err := couponcode.Generate()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(code, couponcode.Prefix))
		assert.Len(t, code, len(couponcode.Prefix)+10)
		assert.Regexp(t, pattern, code)
	})

	t.Run("codes do not repeat across a batch", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			code, err := couponcode.Generate()
			require.NoError(t, err)
			_, dup := seen[code]
			require.False(t, dup, "generated duplicate code %s", code)
			seen[code] = struct{}{}
		}
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "COUPON-ABC123", couponcode.Normalize("  coupon-abc123 "))
	assert.Equal(t, "COUPON-ABC123", couponcode.Normalize("COUPON-ABC123"))
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "issued code", code: "COUPON-X7R2MQ09ZK", want: true},
		{name: "plain alphanumeric", code: "ABC123", want: true},
		{name: "empty", code: "", want: false},
		{name: "lower case slips past normalization", code: "coupon-abc", want: false},
		{name: "whitespace inside", code: "COUPON ABC", want: false},
		{name: "sql-ish injection attempt", code: "COUPON';--", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, couponcode.IsWellFormed(tt.code))
		})
	}
}
