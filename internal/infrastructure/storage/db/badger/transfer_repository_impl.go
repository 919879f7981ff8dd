package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

type transferRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTransferRepositoryImpl initialize a badger implementation of the
// domain.TransferRepository
func NewTransferRepositoryImpl(store *badgerhold.Store) domain.TransferRepository {
	return transferRepositoryImpl{store}
}

func (r transferRepositoryImpl) AddTransfer(
	ctx context.Context, transfer *domain.Transfer,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxInsert(tx, transfer.ID, transfer)
	} else {
		err = r.store.Insert(transfer.ID, transfer)
	}
	if err != nil && err != badgerhold.ErrKeyExists {
		return err
	}
	return nil
}

func (r transferRepositoryImpl) GetTransfer(
	ctx context.Context, id string,
) (*domain.Transfer, error) {
	var transfer domain.Transfer
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, id, &transfer)
	} else {
		err = r.store.Get(id, &transfer)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

func (r transferRepositoryImpl) GetAllTransfers(
	ctx context.Context,
) ([]domain.Transfer, error) {
	return r.findTransfers(ctx, nil)
}

func (r transferRepositoryImpl) GetPendingTransfers(
	ctx context.Context,
) ([]domain.Transfer, error) {
	query := badgerhold.Where("Status").Eq(domain.TransferStatusPending)
	return r.findTransfers(ctx, query)
}

func (r transferRepositoryImpl) UpdateTransfer(
	ctx context.Context,
	id string,
	updateFn func(t *domain.Transfer) (*domain.Transfer, error),
) error {
	transfer, err := r.GetTransfer(ctx, id)
	if err != nil {
		return err
	}

	updated, err := updateFn(transfer)
	if err != nil {
		return err
	}

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.store.TxUpdate(tx, id, updated)
	}
	return r.store.Update(id, updated)
}

func (r transferRepositoryImpl) findTransfers(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Transfer, error) {
	var transfers []domain.Transfer
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &transfers, query)
	} else {
		err = r.store.Find(&transfers, query)
	}
	if err != nil {
		return nil, err
	}
	return transfers, nil
}
