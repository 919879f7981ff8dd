package inmemory

import (
	"context"
	"sync"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

type transferInmemoryStore struct {
	transfers map[string]*domain.Transfer
	locker    *sync.Mutex
}

type transferRepositoryImpl struct {
	store *transferInmemoryStore
}

// newTransferRepositoryImpl returns a new in-memory TransferRepository
// implementation.
func newTransferRepositoryImpl(store *transferInmemoryStore) domain.TransferRepository {
	return &transferRepositoryImpl{store}
}

func (r transferRepositoryImpl) AddTransfer(
	_ context.Context, transfer *domain.Transfer,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.transfers[transfer.ID]; ok {
		return nil
	}
	clone := *transfer
	r.store.transfers[transfer.ID] = &clone
	return nil
}

func (r transferRepositoryImpl) GetTransfer(
	_ context.Context, id string,
) (*domain.Transfer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	transfer, ok := r.store.transfers[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	clone := *transfer
	return &clone, nil
}

func (r transferRepositoryImpl) GetAllTransfers(
	_ context.Context,
) ([]domain.Transfer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	transfers := make([]domain.Transfer, 0, len(r.store.transfers))
	for _, t := range r.store.transfers {
		transfers = append(transfers, *t)
	}
	return transfers, nil
}

func (r transferRepositoryImpl) GetPendingTransfers(
	_ context.Context,
) ([]domain.Transfer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	pending := make([]domain.Transfer, 0)
	for _, t := range r.store.transfers {
		if t.IsPending() {
			pending = append(pending, *t)
		}
	}
	return pending, nil
}

func (r transferRepositoryImpl) UpdateTransfer(
	_ context.Context,
	id string,
	updateFn func(t *domain.Transfer) (*domain.Transfer, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	current, ok := r.store.transfers[id]
	if !ok {
		return domain.ErrTransferNotFound
	}

	clone := *current
	updated, err := updateFn(&clone)
	if err != nil {
		return err
	}
	r.store.transfers[id] = updated
	return nil
}
