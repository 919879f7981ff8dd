package domain

import "github.com/shopspring/decimal"

const (
	ActivityKindOnchain   ActivityKind = "onchain"
	ActivityKindLightning ActivityKind = "lightning"

	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"

	// VanishedTxNote marks history entries whose underlying transaction has
	// disappeared from the chain, eg. after a reorg or an RBF replacement.
	// The entry is kept so a history line the user has already seen never
	// silently vanishes.
	VanishedTxNote = "transaction no longer found on chain"
)

// ActivityKind discriminates the two variants of an ActivityItem.
type ActivityKind string

// Direction is the sign of an activity item from the wallet's point of view.
type Direction string

// PaymentStatus is the lifecycle state of a Lightning payment.
type PaymentStatus string

// ActivityItem is the single representation all transaction sources are
// normalized to. Exactly one of Onchain and Lightning is set, matching Kind.
type ActivityItem struct {
	ID        string
	Kind      ActivityKind
	Direction Direction
	// ValueSat carries the normalized amount: the total debit, fee included,
	// for sent items, the amount credited for received ones.
	ValueSat  uint64
	FeeSat    uint64
	Timestamp int64
	// Exists is false when the underlying transaction has disappeared from
	// the chain. Such items stay in the feed with VanishedTxNote set.
	Exists bool
	// IsTransfer is true for items correlated with a transfer record. Their
	// direction and fee display are suppressed in favor of transfer-specific
	// messaging.
	IsTransfer bool
	Note       string

	Onchain   *OnchainDetails
	Lightning *LightningDetails
}

// OnchainDetails holds the on-chain only fields of an ActivityItem.
type OnchainDetails struct {
	TxID        string
	Confirmed   bool
	ConfirmedAt int64
	// FeeRateSatsPerVByte is the fee rate of the confirming transaction,
	// which for a boosted item is the child or replacement, not the original.
	FeeRateSatsPerVByte decimal.Decimal
	// IsBoosted marks an unconfirmed item that has been fee-bumped, so
	// confirmation-time estimates can differ from plain unconfirmed items.
	IsBoosted    bool
	ReplacedTxID string
}

// LightningDetails holds the Lightning only fields of an ActivityItem.
type LightningDetails struct {
	PaymentHash string
	Status      PaymentStatus
	Message     string
}

// TxID returns the on-chain transaction id backing the item, empty for
// Lightning items.
func (a ActivityItem) TxID() string {
	if a.Onchain == nil {
		return ""
	}
	return a.Onchain.TxID
}
