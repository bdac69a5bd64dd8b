package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/examprep/selection/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemCall struct {
	filter models.ItemFilter
	limit  int
}

// fakeItems answers category-scoped queries from byCategory and
// section-scoped queries from bySection.
type fakeItems struct {
	byCategory []models.Item
	bySection  []models.Item
	err        error
	calls      []itemCall
}

func (f *fakeItems) GetItems(_ context.Context, filter models.ItemFilter, limit int) ([]models.Item, error) {
	f.calls = append(f.calls, itemCall{filter: filter, limit: limit})
	if f.err != nil {
		return nil, f.err
	}
	if len(filter.CategoryIDs) > 0 {
		return f.byCategory, nil
	}
	return f.bySection, nil
}

func TestResolveItemsUsesSelectedCategories(t *testing.T) {
	items := &fakeItems{byCategory: []models.Item{{ID: 10, CategoryID: 1}, {ID: 11, CategoryID: 2}}}
	r := New(items, nil)

	cats := []models.Category{{ID: 1}, {ID: 2}}
	got, err := r.ResolveItems(context.Background(), "bio", cats, []int64{7}, 5)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.Len(t, items.calls, 1)
	assert.Equal(t, []int64{1, 2}, items.calls[0].filter.CategoryIDs)
	assert.Equal(t, []int64{7}, items.calls[0].filter.ExcludeIDs)
	assert.Equal(t, 10, items.calls[0].limit)
}

func TestResolveItemsFallsBackToSection(t *testing.T) {
	items := &fakeItems{bySection: []models.Item{{ID: 20, CategoryID: 9, Section: "bio"}}}
	r := New(items, nil)

	got, err := r.ResolveItems(context.Background(), "bio", []models.Category{{ID: 1}}, []int64{3, 4}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(20), got[0].ID)

	require.Len(t, items.calls, 2)
	fallback := items.calls[1]
	assert.Empty(t, fallback.filter.CategoryIDs)
	assert.Equal(t, "bio", fallback.filter.Section)
	assert.Equal(t, []int64{3, 4}, fallback.filter.ExcludeIDs, "fallback keeps exclusions")
	assert.Equal(t, 5, fallback.limit)
}

func TestResolveItemsWithoutCategoriesServesSection(t *testing.T) {
	items := &fakeItems{bySection: []models.Item{{ID: 1}, {ID: 2}}}
	r := New(items, nil)

	got, err := r.ResolveItems(context.Background(), models.AllSections, nil, nil, 4)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	require.Len(t, items.calls, 1)
	assert.Equal(t, 4, items.calls[0].limit)
}

func TestResolveItemsEmptyIsNotAnError(t *testing.T) {
	r := New(&fakeItems{}, nil)

	got, err := r.ResolveItems(context.Background(), "bio", []models.Category{{ID: 1}}, nil, 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveItemsCounts(t *testing.T) {
	items := &fakeItems{byCategory: []models.Item{{ID: 1}}}
	r := New(items, nil)

	_, err := r.ResolveItems(context.Background(), "bio", []models.Category{{ID: 1}}, nil, -1)
	assert.ErrorIs(t, err, ErrNegativeItemCount)

	got, err := r.ResolveItems(context.Background(), "bio", []models.Category{{ID: 1}}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, items.calls, "zero items per category should not query")
}

func TestResolveItemsPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	r := New(&fakeItems{err: boom}, nil)

	_, err := r.ResolveItems(context.Background(), "bio", []models.Category{{ID: 1}}, nil, 5)
	assert.ErrorIs(t, err, boom)
}

func TestTaskCount(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{0, 0},
		{0.9, 0},
		{1, 1},
		{2.7, 2},
		{8, 8},
	}
	for _, tt := range tests {
		got, err := TaskCount(tt.hours)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("TaskCount(%v) = %d, want %d", tt.hours, got, tt.want)
		}
	}

	_, err := TaskCount(-0.5)
	assert.ErrorIs(t, err, ErrNegativeHours)
}
