package domain

// Channel is the immutable snapshot of a Lightning channel as reported by the
// node runtime. Capacity is always the sum of the local and counterparty
// sides, reserves included.
type Channel struct {
	ID                     string
	FundingTxID            string
	CapacitySat            uint64
	CounterpartyBalanceSat uint64
	OutboundCapacitySat    uint64
	InboundCapacitySat     uint64
	// UnspendablePunishmentReserveSat is nil when the node has not computed
	// the reserve yet, which happens for channels still pending confirmation.
	UnspendablePunishmentReserveSat *uint64
	IsReady                         bool
	IsUsable                        bool
}

// ChannelBalance is the four-way decomposition of a single channel's
// capacity. It is derived on demand and never stored.
type ChannelBalance struct {
	SpendingTotalSat      uint64
	SpendingAvailableSat  uint64
	ReceivingTotalSat     uint64
	ReceivingAvailableSat uint64
}

// ReserveSat returns the punishment reserve, defaulting to zero when the node
// has not reported one.
func (c Channel) ReserveSat() uint64 {
	if c.UnspendablePunishmentReserveSat == nil {
		return 0
	}
	return *c.UnspendablePunishmentReserveSat
}

// LocalBalanceSat returns the local side of the channel, reserve included.
func (c Channel) LocalBalanceSat() uint64 {
	if c.CounterpartyBalanceSat > c.CapacitySat {
		return 0
	}
	return c.CapacitySat - c.CounterpartyBalanceSat
}

// ReserveLockedSat returns the portion of the local balance locked by the
// punishment reserve, ie. the part counted in the wallet total but not
// spendable over Lightning.
func (c Channel) ReserveLockedSat() uint64 {
	local := c.LocalBalanceSat()
	if c.OutboundCapacitySat > local {
		return 0
	}
	return local - c.OutboundCapacitySat
}

// Balance maps the channel snapshot to its spendable/reserved/receivable
// decomposition. Pure and idempotent, safe to call once per channel per
// balance computation.
func (c Channel) Balance() ChannelBalance {
	reserve := c.ReserveSat()
	return ChannelBalance{
		SpendingTotalSat:      c.OutboundCapacitySat + reserve,
		SpendingAvailableSat:  c.OutboundCapacitySat,
		ReceivingTotalSat:     c.LocalReceivingTotalSat(),
		ReceivingAvailableSat: c.InboundCapacitySat,
	}
}

// LocalReceivingTotalSat is the counterparty side plus the local reserve,
// the theoretical ceiling of what the channel could receive.
func (c Channel) LocalReceivingTotalSat() uint64 {
	return c.CounterpartyBalanceSat + c.ReserveSat()
}
