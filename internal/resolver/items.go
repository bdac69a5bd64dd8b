package resolver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/examprep/selection/internal/bandit"
	"github.com/examprep/selection/internal/logger"
	"github.com/examprep/selection/internal/metrics"
	"github.com/examprep/selection/internal/models"
)

var (
	ErrNegativeItemCount = errors.New("items per category must not be negative")
	ErrNegativeHours     = errors.New("hours must not be negative")
)

type ItemSource interface {
	GetItems(ctx context.Context, filter models.ItemFilter, limit int) ([]models.Item, error)
}

type TopicIndex interface {
	TopicsFor(code string) []string
}

type Resolver struct {
	items         ItemSource
	topics        TopicIndex
	source        bandit.Source
	taskItemCount int
	log           *logger.Logger
}

type Option func(*Resolver)

func WithSource(src bandit.Source) Option {
	return func(r *Resolver) { r.source = src }
}

// WithTaskItemCount sets the item count printed on external topic tasks.
func WithTaskItemCount(n int) Option {
	return func(r *Resolver) { r.taskItemCount = n }
}

func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

const DefaultTaskItemCount = 10

func New(items ItemSource, topics TopicIndex, opts ...Option) *Resolver {
	r := &Resolver{
		items:         items,
		topics:        topics,
		source:        bandit.NewSource(),
		taskItemCount: DefaultTaskItemCount,
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveItems returns unseen items for the selected categories, capped at
// itemsPerCategory per category. When that pool is empty it retries across
// the whole section with the same exclusions and cap.
func (r *Resolver) ResolveItems(ctx context.Context, section string, categories []models.Category, excludeIDs []int64, itemsPerCategory int) ([]models.Item, error) {
	if itemsPerCategory < 0 {
		return nil, ErrNegativeItemCount
	}
	if itemsPerCategory == 0 {
		return []models.Item{}, nil
	}

	limit := itemsPerCategory * max(len(categories), 1)

	if len(categories) > 0 {
		ids := make([]int64, len(categories))
		for i, c := range categories {
			ids[i] = c.ID
		}
		items, err := r.items.GetItems(ctx, models.ItemFilter{CategoryIDs: ids, ExcludeIDs: excludeIDs}, limit)
		if err != nil {
			return nil, fmt.Errorf("resolve items: %w", err)
		}
		if len(items) > 0 {
			return items, nil
		}
	}

	metrics.ItemFallbacks.Inc()
	r.log.Debug("item pool empty, broadening to section", "section", section, "categories", len(categories))

	items, err := r.items.GetItems(ctx, models.ItemFilter{Section: section, ExcludeIDs: excludeIDs}, limit)
	if err != nil {
		return nil, fmt.Errorf("resolve section items: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// TaskCount converts allocated study hours into whole tasks.
func TaskCount(hours float64) (int, error) {
	if math.IsNaN(hours) || hours < 0 {
		return 0, ErrNegativeHours
	}
	return int(math.Floor(hours)), nil
}
