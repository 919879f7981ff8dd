package application

import (
	"context"
	"time"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
)

const (
	DirectionFilterAll      DirectionFilter = ""
	DirectionFilterSent     DirectionFilter = "sent"
	DirectionFilterReceived DirectionFilter = "received"
	// DirectionFilterOther matches items with neither a clean sent nor
	// received classification, ie. transfers between the wallet's own layers.
	DirectionFilterOther DirectionFilter = "other"
)

// DirectionFilter restricts an activity query by the sign of the items.
type DirectionFilter string

// BalanceSnapshot is the consistent, multi-dimensional view of the wallet's
// funds at a given snapshot version. All figures are satoshis.
type BalanceSnapshot struct {
	OnchainSat   uint64 `json:"onchainSat"`
	SpendingSat  uint64 `json:"spendingSat"`
	ReserveSat   uint64 `json:"reserveSat"`
	ClaimableSat uint64 `json:"claimableSat"`
	// LightningSat is the sum of spending, reserve and claimable.
	LightningSat                 uint64 `json:"lightningSat"`
	PendingTransferToSpendingSat uint64 `json:"pendingTransferToSpendingSat"`
	PendingTransferToSavingsSat  uint64 `json:"pendingTransferToSavingsSat"`
	// TotalSat is onchain + spending + reserve + pending transfers to
	// spending. A transfer amount is never counted twice: the chain source
	// excludes it from the on-chain figure the moment its spend broadcasts.
	TotalSat uint64 `json:"totalSat"`
}

// ActivityFilter restricts an activity feed query. Dimensions compose as a
// conjunction, tags within their dimension as a disjunction.
type ActivityFilter struct {
	// Kinds restricts by item kind, empty meaning both.
	Kinds []domain.ActivityKind
	// Direction restricts by sign, empty meaning all.
	Direction DirectionFilter
	// IncludeTransfers keeps transfer-classified items in the feed.
	IncludeTransfers bool
	// Tags keeps items whose tag set intersects this one, empty meaning all.
	Tags []string
}

// FeedEntry is one element of the activity feed: either a date category
// marker or an activity item.
type FeedEntry struct {
	Label string               `json:"label,omitempty"`
	Item  *domain.ActivityItem `json:"item,omitempty"`
}

// IsLabel reports whether the entry is a date category marker.
func (e FeedEntry) IsLabel() bool {
	return e.Item == nil
}

// SnapshotSet bundles one consistent read of every collaborator. Derivations
// always compute from a fully fetched set, never from a mix of old and new
// external state.
type SnapshotSet struct {
	Version   uint64
	FetchedAt time.Time

	OnchainBalanceSat uint64
	Utxos             []ports.Utxo
	Transactions      []ports.TxInfo

	Channels     []domain.Channel
	ClaimableSat uint64
	Payments     []ports.PaymentInfo

	Orders []ports.OrderInfo
}

// SnapshotProvider hands out the most recently completed snapshot set and
// re-fetches it on demand.
type SnapshotProvider interface {
	// Current returns the latest fully fetched set, nil before the first
	// successful refresh.
	Current() *SnapshotSet
	// Refresh re-fetches every collaborator and swaps the current set
	// atomically. Concurrent calls are collapsed into one fetch.
	Refresh(ctx context.Context) (*SnapshotSet, error)
}
