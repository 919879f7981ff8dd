package application

import (
	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
	"github.com/nimbuswallet/nimbusd/pkg/satutil"
)

// NormalizeOnchainTx converts a raw on-chain transaction into an
// ActivityItem. The fee is folded into the amount of sent items so the value
// always reflects the total debit. Malformed records are normalized with
// zero placeholders rather than rejected: partial history beats a broken
// feed.
func NormalizeOnchainTx(tx ports.TxInfo) domain.ActivityItem {
	direction := domain.DirectionReceived
	amount := tx.ValueSat
	if tx.IsSend {
		direction = domain.DirectionSent
		amount = tx.ValueSat + tx.FeeSat
	}

	timestamp := tx.Timestamp
	if timestamp < 0 {
		timestamp = 0
	}

	item := domain.ActivityItem{
		ID:        tx.TxID,
		Kind:      domain.ActivityKindOnchain,
		Direction: direction,
		ValueSat:  amount,
		FeeSat:    tx.FeeSat,
		Timestamp: timestamp,
		Exists:    tx.Exists,
		Onchain: &domain.OnchainDetails{
			TxID:                tx.TxID,
			Confirmed:           tx.BlockHeight > 0,
			ConfirmedAt:         tx.ConfirmedAt,
			FeeRateSatsPerVByte: satutil.FeeRateSatsPerVByte(tx.FeeSat, tx.VSizeVBytes),
			IsBoosted:           tx.IsBoosted,
			ReplacedTxID:        tx.ReplacedTxID,
		},
	}

	if !tx.Exists {
		item.Note = domain.VanishedTxNote
	}
	return item
}

// NormalizeLightningPayment converts a raw Lightning payment into an
// ActivityItem, with the same sign convention as on-chain items: the routing
// fee is part of the debit of sent payments.
func NormalizeLightningPayment(p ports.PaymentInfo) domain.ActivityItem {
	direction := domain.DirectionReceived
	amount := p.AmountSat
	if p.IsSend {
		direction = domain.DirectionSent
		amount = p.AmountSat + p.FeeSat
	}

	status := p.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}

	timestamp := p.Timestamp
	if timestamp < 0 {
		timestamp = 0
	}

	return domain.ActivityItem{
		ID:        p.PaymentHash,
		Kind:      domain.ActivityKindLightning,
		Direction: direction,
		ValueSat:  amount,
		FeeSat:    p.FeeSat,
		Timestamp: timestamp,
		Exists:    true,
		Note:      p.Message,
		Lightning: &domain.LightningDetails{
			PaymentHash: p.PaymentHash,
			Status:      status,
			Message:     p.Message,
		},
	}
}
