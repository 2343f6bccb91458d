// Package review holds the human selection step between deduplication and
// import. Duplicates can never be selected.
package review

import (
	"fmt"

	"leadscout/internal/identity/models"
	dErrors "leadscout/pkg/domain-errors"
)

// Batch is not safe for concurrent use; the owning session serializes access.
type Batch struct {
	items []models.ReviewItem
}

// NewBatch copies items and selects every non-duplicate.
func NewBatch(items []models.ReviewItem) *Batch {
	b := &Batch{items: make([]models.ReviewItem, len(items))}
	for i, it := range items {
		it.Selected = !it.IsDuplicate
		b.items[i] = it
	}
	return b
}

// Toggle flips the selection of the item at index.
func (b *Batch) Toggle(index int) error {
	if index < 0 || index >= len(b.items) {
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("review item %d not found", index))
	}
	if b.items[index].IsDuplicate {
		return dErrors.New(dErrors.CodeInvariantViolation, "duplicate contacts cannot be selected")
	}
	b.items[index].Selected = !b.items[index].Selected
	return nil
}

// SelectAll selects every non-duplicate item.
func (b *Batch) SelectAll() {
	for i := range b.items {
		b.items[i].Selected = !b.items[i].IsDuplicate
	}
}

func (b *Batch) ClearAll() {
	for i := range b.items {
		b.items[i].Selected = false
	}
}

// Items returns a copy of the batch in display order.
func (b *Batch) Items() []models.ReviewItem {
	out := make([]models.ReviewItem, len(b.items))
	copy(out, b.items)
	return out
}

// Selected returns the selected candidates in display order.
func (b *Batch) Selected() []models.CandidateToken {
	out := make([]models.CandidateToken, 0, len(b.items))
	for _, it := range b.items {
		if it.Selected {
			out = append(out, it.Candidate)
		}
	}
	return out
}

func (b *Batch) SelectedCount() int {
	n := 0
	for _, it := range b.items {
		if it.Selected {
			n++
		}
	}
	return n
}

func (b *Batch) Len() int {
	return len(b.items)
}

// Clone returns an independent copy of the batch.
func (b *Batch) Clone() *Batch {
	if b == nil {
		return nil
	}
	return &Batch{items: b.Items()}
}
