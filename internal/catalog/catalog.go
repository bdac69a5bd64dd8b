package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/examprep/selection/internal/models"
	"golang.org/x/sync/singleflight"
)

type CategoryLister interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Catalog serves the category taxonomy and topic mapping from memory. The
// taxonomy is loaded once on first use and only replaced by Refresh, so
// readers never observe a partially built snapshot.
type Catalog struct {
	lister  CategoryLister
	mapping *TopicMapping

	group singleflight.Group
	mu    sync.RWMutex
	snap  *snapshot
}

type snapshot struct {
	categories []models.Category
	byID       map[int64]models.Category
	sections   map[string]bool
}

func New(lister CategoryLister, mapping *TopicMapping) *Catalog {
	return &Catalog{lister: lister, mapping: mapping}
}

func (c *Catalog) Mapping() *TopicMapping {
	return c.mapping
}

// GetCategories returns the cached categories passing filter, in id order.
func (c *Catalog) GetCategories(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(snap.categories))
	for _, cat := range snap.categories {
		if filter.Matches(cat) {
			out = append(out, cat)
		}
	}
	return out, nil
}

// Category looks up one category by id.
func (c *Catalog) Category(ctx context.Context, id int64) (models.Category, bool, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return models.Category{}, false, err
	}
	cat, ok := snap.byID[id]
	return cat, ok, nil
}

// HasSection reports whether any category belongs to section.
func (c *Catalog) HasSection(ctx context.Context, section string) (bool, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	return snap.sections[section], nil
}

// Sections lists the known sections in sorted order.
func (c *Catalog) Sections(ctx context.Context) ([]string, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(snap.sections))
	for s := range snap.sections {
		out = append(out, s)
	}
	slices.Sort(out)
	return out, nil
}

// Refresh reloads the taxonomy from storage and swaps it in atomically.
func (c *Catalog) Refresh(ctx context.Context) error {
	snap, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return nil
}

func (c *Catalog) load(ctx context.Context) (*snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	// Shared by every waiter; detached from the first caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("categories", func() (interface{}, error) {
		c.mu.RLock()
		existing := c.snap
		c.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		fresh, err := c.fetch(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.snap = fresh
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

func (c *Catalog) fetch(ctx context.Context) (*snapshot, error) {
	categories, err := c.lister.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	snap := &snapshot{
		categories: categories,
		byID:       make(map[int64]models.Category, len(categories)),
		sections:   make(map[string]bool),
	}
	for _, cat := range categories {
		snap.byID[cat.ID] = cat
		snap.sections[cat.Section] = true
	}
	return snap, nil
}
