package domain

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"
)

const (
	// TransferTypeOpen moves on-chain funds into a new channel.
	TransferTypeOpen TransferType = "open"
	// TransferTypeCoopClose moves channel funds back on-chain cooperatively.
	TransferTypeCoopClose TransferType = "coop-close"
	// TransferTypeForceClose moves channel funds back on-chain unilaterally,
	// leaving them claimable until the timelock expires.
	TransferTypeForceClose TransferType = "force-close"

	// TransferStatusPending is the status of a transfer whose on-chain leg has
	// not been confirmed yet.
	TransferStatusPending TransferStatus = "pending"
	// TransferStatusDone is the status of a settled transfer.
	TransferStatusDone TransferStatus = "done"
)

// TransferType discriminates the direction of a transfer between the on-chain
// and Lightning layers.
type TransferType string

// TransferStatus represents the lifecycle state of a transfer.
type TransferStatus string

func (t TransferType) IsValid() bool {
	switch t {
	case TransferTypeOpen, TransferTypeCoopClose, TransferTypeForceClose:
		return true
	}
	return false
}

// ToSpending reports whether the transfer moves funds toward the Lightning
// layer.
func (t TransferType) ToSpending() bool {
	return t == TransferTypeOpen
}

// Transfer correlates an on-chain transaction (or a channel-purchase order)
// with the channel open or close it funds. Records are append-only, a
// resolution only flips the status.
type Transfer struct {
	ID        string
	Type      TransferType
	Status    TransferStatus
	AmountSat uint64
	TxID      string
	ChannelID string
	CreatedAt int64
}

// NewTransfer returns a pending transfer for the given type and amount.
// The txid is optional and may be learned later through an LSP order.
func NewTransfer(tt TransferType, amountSat int64, txid string) (*Transfer, error) {
	if !tt.IsValid() {
		return nil, ErrInvalidTransferType
	}
	if amountSat <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Transfer{
		ID:        uuid.New().String(),
		Type:      tt,
		Status:    TransferStatusPending,
		AmountSat: uint64(amountSat),
		TxID:      txid,
		CreatedAt: time.Now().Unix(),
	}, nil
}

// IsPending reports whether the transfer still awaits settlement.
func (t *Transfer) IsPending() bool {
	return t.Status == TransferStatusPending
}

// Settle transitions the transfer to done, recording the channel that
// resolved it when known. Settling an already settled transfer is a no-op so
// late resolution events are harmless.
func (t *Transfer) Settle(channelID string) {
	if !t.IsPending() {
		return
	}
	t.Status = TransferStatusDone
	if channelID != "" {
		t.ChannelID = channelID
	}
}

// Key returns the storage key of the transfer.
func (t Transfer) Key() string {
	buf := []byte(fmt.Sprintf("%s:%s", t.Type, t.ID))
	return hex.EncodeToString(btcutil.Hash160(buf))
}
