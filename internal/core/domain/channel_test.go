package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

func uintPtr(v uint64) *uint64 { return &v }

func TestChannelBalance(t *testing.T) {
	ch := domain.Channel{
		ID:                              "chan1",
		CapacitySat:                     100_000,
		CounterpartyBalanceSat:          40_000,
		OutboundCapacitySat:             60_000,
		InboundCapacitySat:              40_000,
		UnspendablePunishmentReserveSat: uintPtr(1_000),
		IsReady:                         true,
	}

	b := ch.Balance()
	require.Equal(t, uint64(61_000), b.SpendingTotalSat)
	require.Equal(t, uint64(60_000), b.SpendingAvailableSat)
	require.Equal(t, uint64(41_000), b.ReceivingTotalSat)
	require.Equal(t, uint64(40_000), b.ReceivingAvailableSat)
}

func TestChannelBalanceInvariants(t *testing.T) {
	tests := []struct {
		name    string
		channel domain.Channel
	}{
		{
			name: "with_reserve",
			channel: domain.Channel{
				CapacitySat:                     200_000,
				CounterpartyBalanceSat:          50_000,
				OutboundCapacitySat:             147_000,
				InboundCapacitySat:              47_000,
				UnspendablePunishmentReserveSat: uintPtr(3_000),
			},
		},
		{
			name: "without_reserve",
			channel: domain.Channel{
				CapacitySat:            50_000,
				CounterpartyBalanceSat: 50_000,
				InboundCapacitySat:     49_000,
			},
		},
		{
			name:    "empty_channel",
			channel: domain.Channel{},
		},
		{
			name: "counterparty_owns_everything",
			channel: domain.Channel{
				CapacitySat:            25_000,
				CounterpartyBalanceSat: 25_000,
				InboundCapacitySat:     24_000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.channel.Balance()
			require.LessOrEqual(t, b.SpendingAvailableSat, b.SpendingTotalSat)
			require.LessOrEqual(t, b.ReceivingAvailableSat, b.ReceivingTotalSat)
		})
	}
}

func TestChannelReserveDefaultsToZero(t *testing.T) {
	ch := domain.Channel{
		CapacitySat:            10_000,
		CounterpartyBalanceSat: 4_000,
		OutboundCapacitySat:    6_000,
	}
	require.Zero(t, ch.ReserveSat())
	require.Equal(t, uint64(6_000), ch.Balance().SpendingTotalSat)
}

func TestChannelReserveLocked(t *testing.T) {
	ch := domain.Channel{
		CapacitySat:                     100_000,
		CounterpartyBalanceSat:          40_000,
		OutboundCapacitySat:             59_000,
		UnspendablePunishmentReserveSat: uintPtr(1_000),
	}
	// local balance 60k, outbound 59k, 1k locked by the reserve.
	require.Equal(t, uint64(1_000), ch.ReserveLockedSat())

	// never negative even on inconsistent snapshots.
	ch.OutboundCapacitySat = 70_000
	require.Zero(t, ch.ReserveLockedSat())
	ch.CounterpartyBalanceSat = 200_000
	require.Zero(t, ch.LocalBalanceSat())
}
