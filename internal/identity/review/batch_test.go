package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout/internal/identity/models"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
)

func items() []models.ReviewItem {
	existing := id.NewContactID()
	return []models.ReviewItem{
		{Candidate: models.CandidateToken{RawValue: "@ana", Kind: models.TokenHandle}},
		{Candidate: models.CandidateToken{RawValue: "Joel Jota", Kind: models.TokenDisplayName}, IsDuplicate: true, ExistingContactID: &existing, Selected: true},
		{Candidate: models.CandidateToken{RawValue: "@bo", Kind: models.TokenHandle}},
	}
}

func assertNoSelectedDuplicates(t *testing.T, b *Batch) {
	t.Helper()
	for _, it := range b.Items() {
		if it.IsDuplicate {
			assert.False(t, it.Selected, "duplicate %q selected", it.Candidate.RawValue)
		}
	}
}

func TestNewBatch_DefaultSelection(t *testing.T) {
	b := NewBatch(items())

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2, b.SelectedCount())
	assertNoSelectedDuplicates(t, b)
	assert.Equal(t, []models.CandidateToken{
		{RawValue: "@ana", Kind: models.TokenHandle},
		{RawValue: "@bo", Kind: models.TokenHandle},
	}, b.Selected())
}

func TestToggle(t *testing.T) {
	b := NewBatch(items())

	require.NoError(t, b.Toggle(0))
	assert.False(t, b.Items()[0].Selected)
	require.NoError(t, b.Toggle(0))
	assert.True(t, b.Items()[0].Selected)

	err := b.Toggle(1)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	assertNoSelectedDuplicates(t, b)

	for _, idx := range []int{-1, 3} {
		err := b.Toggle(idx)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	}
}

func TestSelectAllAndClear(t *testing.T) {
	b := NewBatch(items())

	b.ClearAll()
	assert.Equal(t, 0, b.SelectedCount())
	assert.Empty(t, b.Selected())

	b.SelectAll()
	assert.Equal(t, 2, b.SelectedCount())
	assertNoSelectedDuplicates(t, b)
}

func TestItemsReturnsCopy(t *testing.T) {
	b := NewBatch(items())

	view := b.Items()
	view[0].Selected = false
	view[1].Selected = true

	assert.True(t, b.Items()[0].Selected)
	assert.False(t, b.Items()[1].Selected)

	clone := b.Clone()
	require.NoError(t, clone.Toggle(0))
	assert.True(t, b.Items()[0].Selected)
	assert.Nil(t, (*Batch)(nil).Clone())
}

func TestEmptyBatch(t *testing.T) {
	b := NewBatch(nil)
	assert.Equal(t, 0, b.SelectedCount())
	assert.Empty(t, b.Items())
	b.SelectAll()
	assert.Empty(t, b.Selected())
}
