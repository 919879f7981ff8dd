package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
)

// DbManager holds the badgerhold stores in a single data structure.
type DbManager struct {
	TransferStore *badgerhold.Store
	TagStore      *badgerhold.Store

	transferRepository domain.TransferRepository
	tagRepository      domain.TagRepository
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. Transfers and tags get
// a dedicated directory each.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	transferDb, err := createDb(baseDbDir+"/transfers", logger)
	if err != nil {
		return nil, fmt.Errorf("opening transfers db: %w", err)
	}

	tagDb, err := createDb(baseDbDir+"/tags", logger)
	if err != nil {
		return nil, fmt.Errorf("opening tags db: %w", err)
	}

	manager := &DbManager{
		TransferStore: transferDb,
		TagStore:      tagDb,
	}
	manager.transferRepository = NewTransferRepositoryImpl(transferDb)
	manager.tagRepository = NewTagRepositoryImpl(tagDb)
	return manager, nil
}

func (d *DbManager) TransferRepository() domain.TransferRepository {
	return d.transferRepository
}

func (d *DbManager) TagRepository() domain.TagRepository {
	return d.tagRepository
}

func (d *DbManager) Close() {
	d.TransferStore.Close()
	d.TagStore.Close()
}

// RunTransaction runs the handler inside a badger transaction on the
// transfer store, made available to the repositories through the context.
func (d *DbManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := d.TransferStore.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, "tx", tx))
	if err != nil {
		return nil, err
	}
	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}

var _ ports.DbManager = (*DbManager)(nil)
