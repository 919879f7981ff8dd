package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nimbuswallet/nimbusd/internal/core/application"
	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/infrastructure/storage/db/inmemory"
)

func TestRecordTransferStart(t *testing.T) {
	dbManager := inmemory.NewDbManager()
	observer := &countingObserver{}
	svc := application.NewTransferService(dbManager.TransferRepository(), observer)
	ctx := context.Background()

	transfer, err := svc.RecordTransferStart(
		ctx, domain.TransferTypeOpen, 50_000, "txa",
	)
	require.NoError(t, err)
	require.True(t, transfer.IsPending())
	require.Equal(t, 1, observer.notified)

	_, err = svc.RecordTransferStart(ctx, domain.TransferTypeOpen, 0, "")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.RecordTransferStart(ctx, domain.TransferTypeOpen, -5, "")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	require.Equal(t, 1, observer.notified)
}

func TestResolveTransferIsIdempotent(t *testing.T) {
	dbManager := inmemory.NewDbManager()
	svc := application.NewTransferService(dbManager.TransferRepository())
	ctx := context.Background()

	transfer, err := svc.RecordTransferStart(
		ctx, domain.TransferTypeOpen, 50_000, "txa",
	)
	require.NoError(t, err)

	require.NoError(t, svc.ResolveTransfer(ctx, transfer.ID))
	found, err := dbManager.TransferRepository().GetTransfer(ctx, transfer.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusDone, found.Status)

	// a second resolution is a no-op, not an error.
	require.NoError(t, svc.ResolveTransfer(ctx, transfer.ID))
	found, err = dbManager.TransferRepository().GetTransfer(ctx, transfer.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusDone, found.Status)

	// resolving something that never existed is a no-op too.
	require.NoError(t, svc.ResolveTransfer(ctx, "unknown"))
}

func TestResolveTransferForChannel(t *testing.T) {
	dbManager := inmemory.NewDbManager()
	svc := application.NewTransferService(dbManager.TransferRepository())
	ctx := context.Background()

	byTxid, err := svc.RecordTransferStart(
		ctx, domain.TransferTypeOpen, 50_000, "txa",
	)
	require.NoError(t, err)
	unrelated, err := svc.RecordTransferStart(
		ctx, domain.TransferTypeOpen, 10_000, "txb",
	)
	require.NoError(t, err)

	require.NoError(t, svc.ResolveTransferForChannel(ctx, "chan1", "txa"))

	found, err := dbManager.TransferRepository().GetTransfer(ctx, byTxid.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusDone, found.Status)
	require.Equal(t, "chan1", found.ChannelID)

	found, err = dbManager.TransferRepository().GetTransfer(ctx, unrelated.ID)
	require.NoError(t, err)
	require.True(t, found.IsPending())
}

func TestPendingTransfersByType(t *testing.T) {
	dbManager := inmemory.NewDbManager()
	svc := application.NewTransferService(dbManager.TransferRepository())
	ctx := context.Background()

	_, err := svc.RecordTransferStart(ctx, domain.TransferTypeOpen, 10_000, "")
	require.NoError(t, err)
	_, err = svc.RecordTransferStart(ctx, domain.TransferTypeCoopClose, 20_000, "")
	require.NoError(t, err)

	all, err := svc.PendingTransfers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	opens, err := svc.PendingTransfers(ctx, domain.TransferTypeOpen)
	require.NoError(t, err)
	require.Len(t, opens, 1)
	require.Equal(t, domain.TransferTypeOpen, opens[0].Type)

	closes, err := svc.PendingTransfers(
		ctx, domain.TransferTypeCoopClose, domain.TransferTypeForceClose,
	)
	require.NoError(t, err)
	require.Len(t, closes, 1)
}

func TestResolveTransferEmptyRef(t *testing.T) {
	dbManager := inmemory.NewDbManager()
	svc := application.NewTransferService(dbManager.TransferRepository())

	err := svc.ResolveTransfer(context.Background(), "")
	require.ErrorIs(t, err, application.ErrEmptyTransferRef)
}
