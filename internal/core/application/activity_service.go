package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

// ActivityService merges every transaction source into the single,
// chronologically grouped, taggable activity feed.
type ActivityService interface {
	// GetActivityFeed returns the filtered feed as an ordered sequence of
	// date category markers and activity items. Deterministic given the same
	// snapshots and the same wall-clock date.
	GetActivityFeed(ctx context.Context, filter ActivityFilter) ([]FeedEntry, error)
	AddTag(ctx context.Context, activityID, tag string) error
	RemoveTag(ctx context.Context, activityID, tag string) error
	GetTags(ctx context.Context, activityID string) ([]string, error)
}

type activityService struct {
	provider     SnapshotProvider
	transferRepo domain.TransferRepository
	tagRepo      domain.TagRepository
	now          func() time.Time
}

// NewActivityService returns an ActivityService computing from the given
// snapshot provider and repositories.
func NewActivityService(
	provider SnapshotProvider,
	transferRepo domain.TransferRepository,
	tagRepo domain.TagRepository,
) ActivityService {
	return &activityService{
		provider:     provider,
		transferRepo: transferRepo,
		tagRepo:      tagRepo,
		now:          time.Now,
	}
}

func (s *activityService) GetActivityFeed(
	ctx context.Context, filter ActivityFilter,
) ([]FeedEntry, error) {
	set := s.provider.Current()
	if set == nil {
		var err error
		if set, err = s.provider.Refresh(ctx); err != nil && set == nil {
			return nil, ErrSnapshotUnavailable
		}
	}

	// settled transfers keep correlating their funding txid, a channel-open
	// transaction must not degrade to a plain send once the channel is ready.
	transfers, err := s.transferRepo.GetAllTransfers(ctx)
	if err != nil {
		log.Warnf("trying to list transfers: %s", err)
		transfers = nil
	}

	onchain := make([]domain.ActivityItem, 0, len(set.Transactions))
	for _, tx := range set.Transactions {
		onchain = append(onchain, NormalizeOnchainTx(tx))
	}
	lightning := make([]domain.ActivityItem, 0, len(set.Payments))
	for _, p := range set.Payments {
		lightning = append(lightning, NormalizeLightningPayment(p))
	}

	merged := MergeActivity(onchain, lightning, transfers, set.Orders)

	tags, err := s.tagRepo.GetAllTags(ctx)
	if err != nil {
		log.Warnf("trying to load tag map: %s", err)
		tags = nil
	}

	filtered := FilterActivity(merged, filter, tags)
	return GroupActivity(filtered, s.now()), nil
}

func (s *activityService) AddTag(ctx context.Context, activityID, tag string) error {
	if activityID == "" {
		return ErrEmptyActivityID
	}
	if tag == "" {
		return domain.ErrEmptyTag
	}
	return s.tagRepo.AddTag(ctx, activityID, tag)
}

func (s *activityService) RemoveTag(ctx context.Context, activityID, tag string) error {
	if activityID == "" {
		return ErrEmptyActivityID
	}
	if tag == "" {
		return domain.ErrEmptyTag
	}
	return s.tagRepo.RemoveTag(ctx, activityID, tag)
}

func (s *activityService) GetTags(ctx context.Context, activityID string) ([]string, error) {
	if activityID == "" {
		return nil, ErrEmptyActivityID
	}
	return s.tagRepo.GetTags(ctx, activityID)
}
