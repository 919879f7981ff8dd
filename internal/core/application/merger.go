package application

import (
	"sort"
	"time"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
)

const (
	LabelToday     = "today"
	LabelYesterday = "yesterday"
	LabelThisMonth = "this month"
	LabelThisYear  = "this year"
	LabelEarlier   = "earlier"

	transferToSpendingNote = "transfer to spending balance"
	transferToSavingsNote  = "transfer to savings balance"
)

// MergeActivity concatenates normalized on-chain and Lightning items and
// correlates them with the given transfer records. An on-chain item whose
// txid matches a transfer, or the funding txid of a channel-purchase order,
// is re-classified as a transfer, and a pending transfer whose funding
// transaction is not in the wallet yet (a channel purchase paid through an
// LSP) is synthesized as its own item. A correlated txid never yields two
// entries.
func MergeActivity(
	onchain, lightning []domain.ActivityItem,
	transfers []domain.Transfer,
	orders []ports.OrderInfo,
) []domain.ActivityItem {
	transfersByTxid := make(map[string]domain.Transfer)
	for _, t := range transfers {
		if t.TxID != "" {
			transfersByTxid[t.TxID] = t
		}
	}
	// an order's funding txid correlates a purchase even before its transfer
	// record has learned it.
	orderTxids := make(map[string]struct{})
	for _, o := range orders {
		if o.FundingTxID != "" {
			orderTxids[o.FundingTxID] = struct{}{}
		}
	}

	merged := make([]domain.ActivityItem, 0, len(onchain)+len(lightning))
	seenTxids := make(map[string]struct{})

	for _, item := range onchain {
		txid := item.TxID()
		if transfer, ok := transfersByTxid[txid]; ok {
			item.IsTransfer = true
			item.Note = transferNote(transfer.Type)
			seenTxids[txid] = struct{}{}
		} else if _, ok := orderTxids[txid]; ok {
			item.IsTransfer = true
			item.Note = transferNote(domain.TransferTypeOpen)
			seenTxids[txid] = struct{}{}
		}
		merged = append(merged, item)
	}

	merged = append(merged, lightning...)

	// Pending transfers without a visible wallet transaction still deserve a
	// history line, eg. a purchased channel whose funding tx is the LSP's.
	for _, t := range transfers {
		if !t.IsPending() || t.TxID == "" {
			continue
		}
		if _, ok := seenTxids[t.TxID]; ok {
			continue
		}
		merged = append(merged, domain.ActivityItem{
			ID:         t.ID,
			Kind:       domain.ActivityKindOnchain,
			Direction:  domain.DirectionSent,
			ValueSat:   t.AmountSat,
			Timestamp:  t.CreatedAt,
			Exists:     true,
			IsTransfer: true,
			Note:       transferNote(t.Type),
			Onchain:    &domain.OnchainDetails{TxID: t.TxID},
		})
		seenTxids[t.TxID] = struct{}{}
	}

	SortActivity(merged)
	return merged
}

// SortActivity orders items by descending timestamp, ties broken by id so
// the feed is deterministic.
func SortActivity(items []domain.ActivityItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Timestamp != items[j].Timestamp {
			return items[i].Timestamp > items[j].Timestamp
		}
		return items[i].ID < items[j].ID
	})
}

// FilterActivity applies the filter as a conjunction of its dimensions. The
// tags map is the current tag map keyed by activity id.
func FilterActivity(
	items []domain.ActivityItem,
	filter ActivityFilter,
	tags map[string][]string,
) []domain.ActivityItem {
	out := make([]domain.ActivityItem, 0, len(items))
	for _, item := range items {
		if !matchesKind(item, filter.Kinds) {
			continue
		}
		if item.IsTransfer && !filter.IncludeTransfers {
			continue
		}
		if !matchesDirection(item, filter.Direction) {
			continue
		}
		if !matchesTags(item, filter.Tags, tags) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesKind(item domain.ActivityItem, kinds []domain.ActivityKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if item.Kind == k {
			return true
		}
	}
	return false
}

func matchesDirection(item domain.ActivityItem, direction DirectionFilter) bool {
	switch direction {
	case DirectionFilterAll:
		return true
	case DirectionFilterOther:
		// transfers move funds between the wallet's own layers, they are
		// neither a clean send nor a clean receive.
		return item.IsTransfer
	case DirectionFilterSent:
		return !item.IsTransfer && item.Direction == domain.DirectionSent
	case DirectionFilterReceived:
		return !item.IsTransfer && item.Direction == domain.DirectionReceived
	}
	return false
}

func matchesTags(item domain.ActivityItem, want []string, tags map[string][]string) bool {
	if len(want) == 0 {
		return true
	}
	itemTags := tags[item.ID]
	for _, w := range want {
		for _, t := range itemTags {
			if w == t {
				return true
			}
		}
	}
	return false
}

// GroupActivity partitions items into date buckets computed against the
// given wall-clock time, emitting each non-empty bucket as a label marker
// followed by its items. Bucket boundaries are local calendar days, not
// rolling 24h windows. The transform is pure: same items and same now, same
// buckets.
func GroupActivity(items []domain.ActivityItem, now time.Time) []FeedEntry {
	startOfDay := time.Date(
		now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location(),
	)
	startOfYesterday := startOfDay.AddDate(0, 0, -1)
	startOfMonth := time.Date(
		now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location(),
	)
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	buckets := map[string][]domain.ActivityItem{}
	for _, item := range items {
		ts := time.Unix(item.Timestamp, 0).In(now.Location())
		switch {
		case !ts.Before(startOfDay):
			buckets[LabelToday] = append(buckets[LabelToday], item)
		case !ts.Before(startOfYesterday):
			buckets[LabelYesterday] = append(buckets[LabelYesterday], item)
		case !ts.Before(startOfMonth):
			buckets[LabelThisMonth] = append(buckets[LabelThisMonth], item)
		case !ts.Before(startOfYear):
			buckets[LabelThisYear] = append(buckets[LabelThisYear], item)
		default:
			buckets[LabelEarlier] = append(buckets[LabelEarlier], item)
		}
	}

	labels := []string{
		LabelToday, LabelYesterday, LabelThisMonth, LabelThisYear, LabelEarlier,
	}
	entries := make([]FeedEntry, 0, len(items)+len(labels))
	for _, label := range labels {
		bucket := buckets[label]
		if len(bucket) == 0 {
			continue
		}
		entries = append(entries, FeedEntry{Label: label})
		for i := range bucket {
			entries = append(entries, FeedEntry{Item: &bucket[i]})
		}
	}
	return entries
}

func transferNote(tt domain.TransferType) string {
	if tt.ToSpending() {
		return transferToSpendingNote
	}
	return transferToSavingsNote
}
