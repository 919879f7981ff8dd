package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

// TagEntry is the storage representation of one activity's tag set.
type TagEntry struct {
	ActivityID string
	Tags       []string
}

type tagRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTagRepositoryImpl initialize a badger implementation of the
// domain.TagRepository
func NewTagRepositoryImpl(store *badgerhold.Store) domain.TagRepository {
	return tagRepositoryImpl{store}
}

func (r tagRepositoryImpl) AddTag(
	ctx context.Context, activityID, tag string,
) error {
	entry, err := r.getEntry(ctx, activityID)
	if err != nil {
		return err
	}
	if entry == nil {
		entry = &TagEntry{ActivityID: activityID}
	}

	for _, t := range entry.Tags {
		if t == tag {
			return nil
		}
	}
	entry.Tags = append(entry.Tags, tag)
	return r.upsertEntry(ctx, entry)
}

func (r tagRepositoryImpl) RemoveTag(
	ctx context.Context, activityID, tag string,
) error {
	entry, err := r.getEntry(ctx, activityID)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}

	next := make([]string, 0, len(entry.Tags))
	for _, t := range entry.Tags {
		if t != tag {
			next = append(next, t)
		}
	}
	// no empty tag sets: dropping the last tag drops the entry.
	if len(next) == 0 {
		return r.deleteEntry(ctx, activityID)
	}
	entry.Tags = next
	return r.upsertEntry(ctx, entry)
}

func (r tagRepositoryImpl) GetTags(
	ctx context.Context, activityID string,
) ([]string, error) {
	entry, err := r.getEntry(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return entry.Tags, nil
}

func (r tagRepositoryImpl) GetAllTags(
	ctx context.Context,
) (map[string][]string, error) {
	var entries []TagEntry
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &entries, nil)
	} else {
		err = r.store.Find(&entries, nil)
	}
	if err != nil {
		return nil, err
	}

	all := make(map[string][]string, len(entries))
	for _, e := range entries {
		all[e.ActivityID] = e.Tags
	}
	return all, nil
}

func (r tagRepositoryImpl) getEntry(
	ctx context.Context, activityID string,
) (*TagEntry, error) {
	var entry TagEntry
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, activityID, &entry)
	} else {
		err = r.store.Get(activityID, &entry)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r tagRepositoryImpl) upsertEntry(ctx context.Context, entry *TagEntry) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.store.TxUpsert(tx, entry.ActivityID, entry)
	}
	return r.store.Upsert(entry.ActivityID, entry)
}

func (r tagRepositoryImpl) deleteEntry(ctx context.Context, activityID string) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.store.TxDelete(tx, activityID, TagEntry{})
	}
	return r.store.Delete(activityID, TagEntry{})
}
