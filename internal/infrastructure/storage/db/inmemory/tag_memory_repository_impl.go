package inmemory

import (
	"context"
	"sync"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

type tagInmemoryStore struct {
	tags   map[string][]string
	locker *sync.Mutex
}

type tagRepositoryImpl struct {
	store *tagInmemoryStore
}

// newTagRepositoryImpl returns a new in-memory TagRepository implementation.
func newTagRepositoryImpl(store *tagInmemoryStore) domain.TagRepository {
	return &tagRepositoryImpl{store}
}

func (r tagRepositoryImpl) AddTag(
	_ context.Context, activityID, tag string,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	for _, t := range r.store.tags[activityID] {
		if t == tag {
			return nil
		}
	}
	r.store.tags[activityID] = append(r.store.tags[activityID], tag)
	return nil
}

func (r tagRepositoryImpl) RemoveTag(
	_ context.Context, activityID, tag string,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	current := r.store.tags[activityID]
	next := make([]string, 0, len(current))
	for _, t := range current {
		if t != tag {
			next = append(next, t)
		}
	}
	// no empty tag sets: dropping the last tag drops the entry.
	if len(next) == 0 {
		delete(r.store.tags, activityID)
		return nil
	}
	r.store.tags[activityID] = next
	return nil
}

func (r tagRepositoryImpl) GetTags(
	_ context.Context, activityID string,
) ([]string, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	current, ok := r.store.tags[activityID]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), current...), nil
}

func (r tagRepositoryImpl) GetAllTags(
	_ context.Context,
) (map[string][]string, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	all := make(map[string][]string, len(r.store.tags))
	for id, tags := range r.store.tags {
		all[id] = append([]string(nil), tags...)
	}
	return all, nil
}
