// Package dedup collapses duplicate placement rows. CRM exports repeat a
// placement once per approached carrier; the pipeline keeps one
// representative per placement ID and records the carrier variants on it.
package dedup

import (
	"sort"

	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
	"github.com/SafeGiantJacket/renewaldesk/pkg/scoring"
)

// statusPriority ranks placement statuses for representative selection.
// Unrecognized statuses rank alongside Declined.
var statusPriority = map[string]int{
	"Quote":       3,
	"Submitted":   2,
	"No Response": 1,
	"Declined":    0,
}

// Deduplicate groups records by exact placement ID and merges each group of
// two or more into one representative record. Size-one groups pass through
// untouched. Records with an empty placement ID all share one group; that
// matches the upstream CRM behavior and is intentional.
//
// Output order follows map iteration and is not guaranteed to match input
// order.
func Deduplicate(records []*placement.Record) []*placement.Record {
	groups := make(map[string][]*placement.Record)
	for _, rec := range records {
		groups[rec.PlacementID] = append(groups[rec.PlacementID], rec)
	}

	result := make([]*placement.Record, 0, len(groups))
	for _, group := range groups {
		if len(group) == 1 {
			result = append(result, group[0])
			continue
		}
		result = append(result, merge(group))
	}
	return result
}

// merge picks the group's representative and annotates it with the carrier
// variants seen across the group.
func merge(group []*placement.Record) *placement.Record {
	sorted := make([]*placement.Record, len(group))
	copy(sorted, group)

	// Highest status priority first; same status resolves to the highest
	// premium, which indicates the most recent quote.
	sort.SliceStable(sorted, func(i, j int) bool {
		pi := statusPriority[sorted[i].PlacementStatus]
		pj := statusPriority[sorted[j].PlacementStatus]
		if pi != pj {
			return pi > pj
		}
		return sorted[i].TotalPremium > sorted[j].TotalPremium
	})

	primary := sorted[0]

	// Collect carrier variants in input order, one per distinct
	// (carrier group, total premium) pair.
	type variantKey struct {
		carrier string
		premium float64
	}
	seen := make(map[variantKey]bool)
	variants := make([]placement.CarrierVariant, 0, len(group))
	for _, rec := range group {
		key := variantKey{carrier: rec.CarrierGroup, premium: rec.TotalPremium}
		if seen[key] {
			continue
		}
		seen[key] = true
		variants = append(variants, placement.CarrierVariant{
			CarrierGroup:     rec.CarrierGroup,
			TotalPremium:     rec.TotalPremium,
			CommissionAmount: rec.CommissionAmount,
			Limit:            rec.Limit,
		})
	}

	primary.CarrierVariants = variants
	primary.DuplicateCount = len(group)
	primary.HasMultipleQuotes = len(variants) > 1

	// Merge does not change score-relevant fields, but recompute anyway so
	// the representative's breakdown can never go stale.
	scoring.Apply(primary)

	return primary
}
