package application_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/nimbuswallet/nimbusd/internal/core/application"
	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
)

// **** ChainSource ****

type mockChainSource struct {
	mock.Mock
}

func (m *mockChainSource) OnchainBalanceSat(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockChainSource) Utxos(ctx context.Context) ([]ports.Utxo, error) {
	args := m.Called(ctx)

	var res []ports.Utxo
	if a := args.Get(0); a != nil {
		res = a.([]ports.Utxo)
	}
	return res, args.Error(1)
}

func (m *mockChainSource) Transactions(ctx context.Context) ([]ports.TxInfo, error) {
	args := m.Called(ctx)

	var res []ports.TxInfo
	if a := args.Get(0); a != nil {
		res = a.([]ports.TxInfo)
	}
	return res, args.Error(1)
}

// **** NodeSource ****

type fakeNodeSource struct {
	channels     []domain.Channel
	payments     []ports.PaymentInfo
	claimableSat uint64
	events       chan ports.NodeEvent
}

func newFakeNodeSource() *fakeNodeSource {
	return &fakeNodeSource{events: make(chan ports.NodeEvent, 10)}
}

func (f *fakeNodeSource) Channels(_ context.Context) ([]domain.Channel, error) {
	return f.channels, nil
}

func (f *fakeNodeSource) Payments(_ context.Context) ([]ports.PaymentInfo, error) {
	return f.payments, nil
}

func (f *fakeNodeSource) ClaimableBalanceSat(_ context.Context) (uint64, error) {
	return f.claimableSat, nil
}

func (f *fakeNodeSource) EventChannel() <-chan ports.NodeEvent {
	return f.events
}

// **** LspSource ****

type fakeLspSource struct {
	orders []ports.OrderInfo
}

func (f fakeLspSource) Orders(_ context.Context) ([]ports.OrderInfo, error) {
	return f.orders, nil
}

// **** SnapshotProvider ****

type fakeSnapshotProvider struct {
	lock sync.Mutex
	set  *application.SnapshotSet
}

func (f *fakeSnapshotProvider) Current() *application.SnapshotSet {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.set
}

func (f *fakeSnapshotProvider) Refresh(_ context.Context) (*application.SnapshotSet, error) {
	return f.Current(), nil
}

// **** ChannelOpenedConsumer ****

type fakeChannelOpenedConsumer struct {
	opened bool
}

func (f *fakeChannelOpenedConsumer) ConsumeChannelOpened() bool {
	opened := f.opened
	f.opened = false
	return opened
}

// **** TransferObserver ****

type countingObserver struct {
	notified int
}

func (c *countingObserver) OnTransfersChanged() {
	c.notified++
}
