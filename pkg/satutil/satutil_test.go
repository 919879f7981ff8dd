package satutil_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nimbuswallet/nimbusd/pkg/satutil"
)

func TestToBTC(t *testing.T) {
	tests := []struct {
		name     string
		sats     uint64
		expected string
	}{
		{"one_btc", 100_000_000, "1"},
		{"one_sat", 1, "0.00000001"},
		{"zero", 0, "0"},
		{"sixty_one_k", 61_000, "0.00061"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tt.expected)
			require.NoError(t, err)
			require.True(t, satutil.ToBTC(tt.sats).Equal(expected))
		})
	}
}

func TestFeeRateSatsPerVByte(t *testing.T) {
	rate := satutil.FeeRateSatsPerVByte(500, 250)
	require.True(t, rate.Equal(decimal.NewFromInt(2)))

	require.True(t, satutil.FeeRateSatsPerVByte(500, 0).IsZero())
	require.True(t, satutil.FeeRateSatsPerVByte(0, 140).IsZero())
}
