// Package dedup collapses a batch of candidate tokens and flags the ones that
// already exist as contacts of the tenant.
package dedup

import (
	"context"

	"leadscout/internal/identity/models"
	"leadscout/internal/identity/ports"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/strings"
)

type Deduplicator struct {
	index ports.ContactIndex
}

func New(index ports.ContactIndex) *Deduplicator {
	return &Deduplicator{index: index}
}

// Build returns one review item per distinct normalized value, in first
// occurrence order. The contact index is queried once for the whole batch.
// A lookup failure yields no items.
func (d *Deduplicator) Build(ctx context.Context, tenantID id.TenantID, tokens []models.CandidateToken) ([]models.ReviewItem, error) {
	unique := strings.DedupeBy(tokens, models.CandidateToken.NormalizedValue)
	if len(unique) == 0 {
		return []models.ReviewItem{}, nil
	}

	values := make([]string, len(unique))
	for i, t := range unique {
		values[i] = t.NormalizedValue()
	}

	existing, err := d.index.LookupByNormalizedValues(ctx, tenantID, values)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "contact lookup failed")
	}

	items := make([]models.ReviewItem, len(unique))
	for i, t := range unique {
		item := models.ReviewItem{Candidate: t}
		if contactID, ok := existing[values[i]]; ok {
			cid := contactID
			item.IsDuplicate = true
			item.ExistingContactID = &cid
		}
		item.Selected = !item.IsDuplicate
		items[i] = item
	}
	return items, nil
}
