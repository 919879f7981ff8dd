package domain

import "context"

// TagRepository is the abstraction for any kind of database intended to
// persist the activity tag map. Tags are unique per activity and the
// repository never keeps empty tag sets: removing the last tag of an
// activity removes its entry entirely.
type TagRepository interface {
	// AddTag adds a tag to the given activity, ignoring duplicates.
	AddTag(ctx context.Context, activityID, tag string) error
	// RemoveTag removes a tag from the given activity. Removing a tag that
	// is not set is a no-op.
	RemoveTag(ctx context.Context, activityID, tag string) error
	// GetTags returns the tags of the given activity, nil when it has none.
	GetTags(ctx context.Context, activityID string) ([]string, error)
	// GetAllTags returns the whole tag map keyed by activity id.
	GetAllTags(ctx context.Context) (map[string][]string, error)
}
