package inmemory

import (
	"context"
	"sync"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
)

// DbManager is the in-memory implementation of the ports.DbManager
// interface, meant for tests and ephemeral runs.
type DbManager struct {
	transferStore *transferInmemoryStore
	tagStore      *tagInmemoryStore

	transferRepository domain.TransferRepository
	tagRepository      domain.TagRepository
}

// NewDbManager returns an empty in-memory DbManager.
func NewDbManager() *DbManager {
	transferStore := &transferInmemoryStore{
		transfers: map[string]*domain.Transfer{},
		locker:    &sync.Mutex{},
	}
	tagStore := &tagInmemoryStore{
		tags:   map[string][]string{},
		locker: &sync.Mutex{},
	}
	return &DbManager{
		transferStore:      transferStore,
		tagStore:           tagStore,
		transferRepository: newTransferRepositoryImpl(transferStore),
		tagRepository:      newTagRepositoryImpl(tagStore),
	}
}

func (d *DbManager) TransferRepository() domain.TransferRepository {
	return d.transferRepository
}

func (d *DbManager) TagRepository() domain.TagRepository {
	return d.tagRepository
}

func (d *DbManager) Close() {}

// RunTransaction implements the DbManager interface. Every in-memory
// mutation is already atomic, the handler just runs with the given context.
func (d *DbManager) RunTransaction(
	ctx context.Context,
	_ bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return handler(ctx)
}

var _ ports.DbManager = (*DbManager)(nil)
