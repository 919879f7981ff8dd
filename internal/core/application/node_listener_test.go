package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nimbuswallet/nimbusd/internal/core/application"
	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
	"github.com/nimbuswallet/nimbusd/internal/infrastructure/storage/db/inmemory"
)

func TestNodeListenerConsumesChannelOpened(t *testing.T) {
	dbManager := inmemory.NewDbManager()
	transferSvc := application.NewTransferService(dbManager.TransferRepository())
	nodeSvc := newFakeNodeSource()
	listener := application.NewNodeListener(nodeSvc, transferSvc)
	ctx := context.Background()

	transfer, err := transferSvc.RecordTransferStart(
		ctx, domain.TransferTypeOpen, 50_000, "txa",
	)
	require.NoError(t, err)

	listener.ObserveNode()
	defer listener.StopObserveNode()

	nodeSvc.events <- ports.ChannelEvent{
		EventType:   ports.ChannelOpened,
		ChannelID:   "chan1",
		FundingTxID: "txa",
	}

	// the event settles the transfer and arms the one-shot suppression flag.
	require.Eventually(t, func() bool {
		found, err := dbManager.TransferRepository().GetTransfer(ctx, transfer.ID)
		return err == nil && found.Status == domain.TransferStatusDone
	}, time.Second, 10*time.Millisecond)

	require.Eventually(
		t, listener.ConsumeChannelOpened, time.Second, 10*time.Millisecond,
	)
	require.False(t, listener.ConsumeChannelOpened())
}

func TestNodeListenerResolvesTransferEvents(t *testing.T) {
	dbManager := inmemory.NewDbManager()
	transferSvc := application.NewTransferService(dbManager.TransferRepository())
	nodeSvc := newFakeNodeSource()
	listener := application.NewNodeListener(nodeSvc, transferSvc)
	ctx := context.Background()

	transfer, err := transferSvc.RecordTransferStart(
		ctx, domain.TransferTypeCoopClose, 20_000, "",
	)
	require.NoError(t, err)

	listener.ObserveNode()
	defer listener.StopObserveNode()

	nodeSvc.events <- ports.TransferEvent{TransferID: transfer.ID}

	require.Eventually(t, func() bool {
		found, err := dbManager.TransferRepository().GetTransfer(ctx, transfer.ID)
		return err == nil && found.Status == domain.TransferStatusDone
	}, time.Second, 10*time.Millisecond)

	// a closed-channel notification must not arm the suppression flag.
	require.False(t, listener.ConsumeChannelOpened())
}
