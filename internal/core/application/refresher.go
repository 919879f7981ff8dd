package application

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
	"github.com/nimbuswallet/nimbusd/pkg/circuitbreaker"
)

type refresher struct {
	chainSvc ports.ChainSource
	nodeSvc  ports.NodeSource
	lspSvc   ports.LspSource

	cb    *gobreaker.CircuitBreaker
	group singleflight.Group

	lock    sync.RWMutex
	current *SnapshotSet
	version uint64
}

// NewSnapshotProvider returns a SnapshotProvider pulling from the given
// collaborators. The LSP source may be nil when no channel-purchase service
// is configured.
func NewSnapshotProvider(
	chainSvc ports.ChainSource,
	nodeSvc ports.NodeSource,
	lspSvc ports.LspSource,
) SnapshotProvider {
	return &refresher{
		chainSvc: chainSvc,
		nodeSvc:  nodeSvc,
		lspSvc:   lspSvc,
		cb:       circuitbreaker.NewCircuitBreaker("snapshot-refresh"),
	}
}

func (r *refresher) Current() *SnapshotSet {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.current
}

// Refresh fetches a new snapshot set. Concurrent calls collapse into a
// single fetch and all receive the same result, so a refresh triggered while
// one is in flight is idempotent. On failure the previous set is retained
// and returned along with the error: a stale figure beats no figure.
func (r *refresher) Refresh(ctx context.Context) (*SnapshotSet, error) {
	res, err, _ := r.group.Do("refresh", func() (interface{}, error) {
		return r.fetchAll(ctx)
	})
	if err != nil {
		refreshErrorCounter.Inc()
		log.Warnf("trying to refresh snapshots: %s", err)
		return r.Current(), err
	}

	set := res.(*SnapshotSet)
	r.lock.Lock()
	// the set becomes current only once fully fetched, readers never see a
	// partially updated mix of old and new external state.
	if r.current == nil || set.Version > r.current.Version {
		r.current = set
	} else {
		log.Debugf("dropping snapshot set %d: %s", set.Version, domain.ErrStaleData)
		set = r.current
	}
	r.lock.Unlock()
	return set, nil
}

func (r *refresher) fetchAll(ctx context.Context) (*SnapshotSet, error) {
	start := time.Now()

	res, err := r.cb.Execute(func() (interface{}, error) {
		set := &SnapshotSet{
			Version:   atomic.AddUint64(&r.version, 1),
			FetchedAt: start,
		}

		var err error
		if set.OnchainBalanceSat, err = r.chainSvc.OnchainBalanceSat(ctx); err != nil {
			return nil, err
		}
		if set.Utxos, err = r.chainSvc.Utxos(ctx); err != nil {
			return nil, err
		}
		if set.Transactions, err = r.chainSvc.Transactions(ctx); err != nil {
			return nil, err
		}
		if set.Channels, err = r.nodeSvc.Channels(ctx); err != nil {
			return nil, err
		}
		if set.ClaimableSat, err = r.nodeSvc.ClaimableBalanceSat(ctx); err != nil {
			return nil, err
		}
		if set.Payments, err = r.nodeSvc.Payments(ctx); err != nil {
			return nil, err
		}
		if r.lspSvc != nil {
			if set.Orders, err = r.lspSvc.Orders(ctx); err != nil {
				return nil, err
			}
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}

	refreshCounter.Inc()
	refreshDuration.Observe(time.Since(start).Seconds())
	return res.(*SnapshotSet), nil
}
