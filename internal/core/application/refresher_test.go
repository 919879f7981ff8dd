package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nimbuswallet/nimbusd/internal/core/application"
	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
)

func TestRefresh(t *testing.T) {
	chainSvc := &mockChainSource{}
	chainSvc.On("OnchainBalanceSat", mock.Anything).Return(uint64(200_000), nil)
	chainSvc.On("Utxos", mock.Anything).Return([]ports.Utxo{
		{TxID: "txa", ValueSat: 200_000, BlockHeight: 800_000},
	}, nil)
	chainSvc.On("Transactions", mock.Anything).Return([]ports.TxInfo{}, nil)

	nodeSvc := newFakeNodeSource()
	nodeSvc.channels = []domain.Channel{{ID: "chan1", IsReady: true}}
	nodeSvc.claimableSat = 5_000

	provider := application.NewSnapshotProvider(
		chainSvc, nodeSvc, fakeLspSource{orders: []ports.OrderInfo{{ID: "o1"}}},
	)
	require.Nil(t, provider.Current())

	set, err := provider.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, set)
	require.Equal(t, uint64(200_000), set.OnchainBalanceSat)
	require.Equal(t, uint64(5_000), set.ClaimableSat)
	require.Len(t, set.Channels, 1)
	require.Len(t, set.Orders, 1)
	require.Equal(t, set, provider.Current())

	next, err := provider.Refresh(context.Background())
	require.NoError(t, err)
	require.Greater(t, next.Version, set.Version)
}

func TestRefreshKeepsPreviousSetOnError(t *testing.T) {
	chainSvc := &mockChainSource{}
	chainSvc.On("OnchainBalanceSat", mock.Anything).
		Return(uint64(100_000), nil).Once()
	chainSvc.On("Utxos", mock.Anything).Return([]ports.Utxo{}, nil).Once()
	chainSvc.On("Transactions", mock.Anything).Return([]ports.TxInfo{}, nil).Once()
	chainSvc.On("OnchainBalanceSat", mock.Anything).
		Return(uint64(0), errors.New("electrum unreachable"))

	provider := application.NewSnapshotProvider(chainSvc, newFakeNodeSource(), nil)

	set, err := provider.Refresh(context.Background())
	require.NoError(t, err)

	// the failing refresh reports the error but the previous set survives.
	stale, err := provider.Refresh(context.Background())
	require.Error(t, err)
	require.Equal(t, set, stale)
	require.Equal(t, set, provider.Current())
}

func TestConcurrentRefreshesAreIdempotent(t *testing.T) {
	chainSvc := &mockChainSource{}
	chainSvc.On("OnchainBalanceSat", mock.Anything).Return(uint64(1_000), nil)
	chainSvc.On("Utxos", mock.Anything).Return([]ports.Utxo{}, nil)
	chainSvc.On("Transactions", mock.Anything).Return([]ports.TxInfo{}, nil)

	provider := application.NewSnapshotProvider(chainSvc, newFakeNodeSource(), nil)

	var wg sync.WaitGroup
	sets := make([]*application.SnapshotSet, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, err := provider.Refresh(context.Background())
			require.NoError(t, err)
			sets[i] = set
		}(i)
	}
	wg.Wait()

	// whatever the interleaving, every caller got a fully fetched set and
	// the provider settled on the newest one.
	current := provider.Current()
	require.NotNil(t, current)
	for _, set := range sets {
		require.NotNil(t, set)
		require.LessOrEqual(t, set.Version, current.Version)
	}
}
