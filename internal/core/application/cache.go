package application

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

// balanceCache memoizes computed balance snapshots, keyed by a hash of the
// inputs that produced them. Entries of a superseded snapshot version are
// dropped on the first write of a newer one, so the cache never serves a
// figure computed from replaced external state.
type balanceCache struct {
	lock    sync.Mutex
	version uint64
	entries map[string]*BalanceSnapshot
}

func newBalanceCache() *balanceCache {
	return &balanceCache{entries: map[string]*BalanceSnapshot{}}
}

func (c *balanceCache) get(version uint64, key string) (*BalanceSnapshot, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if version != c.version {
		return nil, false
	}
	snapshot, ok := c.entries[key]
	return snapshot, ok
}

func (c *balanceCache) put(version uint64, key string, snapshot *BalanceSnapshot) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if version != c.version {
		if version < c.version {
			return
		}
		c.version = version
		c.entries = map[string]*BalanceSnapshot{}
	}
	c.entries[key] = snapshot
}

func (c *balanceCache) invalidate() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.entries = map[string]*BalanceSnapshot{}
}

// balanceCacheKey hashes everything a balance computation depends on: the
// snapshot version, the pending transfer set and the suppression flag.
func balanceCacheKey(
	set *SnapshotSet, pending []domain.Transfer, suppressPendingOpen bool,
) string {
	buf := []byte(fmt.Sprintf("%d|%t|", set.Version, suppressPendingOpen))
	for _, t := range pending {
		buf = append(buf, []byte(fmt.Sprintf("%s:%s:%d|", t.ID, t.Status, t.AmountSat))...)
	}
	return hex.EncodeToString(btcutil.Hash160(buf))
}
