package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

// BalanceService computes the consistent balance view across the on-chain
// wallet, the Lightning channels and the in-flight transfers.
type BalanceService interface {
	GetBalanceSnapshot(ctx context.Context) (*BalanceSnapshot, error)
	// OnTransfersChanged invalidates cached balances after a transfer
	// mutation.
	OnTransfersChanged()
}

// ChannelOpenedConsumer hands out, at most once per recomputation cycle, the
// fact that a channel-open notification was observed. Consuming it triggers
// the transient suppression of pending open transfers: the amount is already
// reflected in the new channel's spendable balance and counting the pending
// transfer too would flash a doubled figure.
type ChannelOpenedConsumer interface {
	ConsumeChannelOpened() bool
}

type balanceService struct {
	provider     SnapshotProvider
	transferRepo domain.TransferRepository
	listener     ChannelOpenedConsumer
	cache        *balanceCache
}

// NewBalanceService returns a BalanceService computing from the given
// snapshot provider and transfer repository. The listener may be nil when no
// node event stream is wired, eg. in tests.
func NewBalanceService(
	provider SnapshotProvider,
	transferRepo domain.TransferRepository,
	listener ChannelOpenedConsumer,
) BalanceService {
	return &balanceService{
		provider:     provider,
		transferRepo: transferRepo,
		listener:     listener,
		cache:        newBalanceCache(),
	}
}

func (b *balanceService) GetBalanceSnapshot(ctx context.Context) (*BalanceSnapshot, error) {
	set := b.provider.Current()
	if set == nil {
		var err error
		if set, err = b.provider.Refresh(ctx); err != nil && set == nil {
			return nil, ErrSnapshotUnavailable
		}
	}

	pending, err := b.transferRepo.GetPendingTransfers(ctx)
	if err != nil {
		log.Warnf("trying to list pending transfers: %s", err)
		pending = nil
	}

	suppressPendingOpen := false
	if b.listener != nil {
		suppressPendingOpen = b.listener.ConsumeChannelOpened()
	}

	key := balanceCacheKey(set, pending, suppressPendingOpen)
	if cached, ok := b.cache.get(set.Version, key); ok {
		return cached, nil
	}

	snapshot := ComputeBalance(set, pending, suppressPendingOpen)
	b.cache.put(set.Version, key, &snapshot)
	return &snapshot, nil
}

func (b *balanceService) OnTransfersChanged() {
	b.cache.invalidate()
}

// ComputeBalance derives the balance snapshot from one consistent snapshot
// set. Pure: same inputs, same figures. A nil set yields the all-zero
// snapshot.
func ComputeBalance(
	set *SnapshotSet,
	pendingTransfers []domain.Transfer,
	suppressPendingOpen bool,
) BalanceSnapshot {
	if set == nil {
		return BalanceSnapshot{}
	}

	var spending, reserve uint64
	for _, ch := range set.Channels {
		if !ch.IsReady {
			continue
		}
		spending += ch.Balance().SpendingAvailableSat
		reserve += ch.ReserveLockedSat()
	}

	var toSpending, toSavings uint64
	for _, t := range pendingTransfers {
		if !t.IsPending() {
			continue
		}
		if t.Type.ToSpending() {
			toSpending += t.AmountSat
		} else if t.Type == domain.TransferTypeCoopClose {
			toSavings += t.AmountSat
		}
	}
	if suppressPendingOpen {
		toSpending = 0
	}

	claimable := set.ClaimableSat
	return BalanceSnapshot{
		OnchainSat:                   set.OnchainBalanceSat,
		SpendingSat:                  spending,
		ReserveSat:                   reserve,
		ClaimableSat:                 claimable,
		LightningSat:                 spending + reserve + claimable,
		PendingTransferToSpendingSat: toSpending,
		PendingTransferToSavingsSat:  toSavings,
		TotalSat:                     set.OnchainBalanceSat + spending + reserve + toSpending,
	}
}
