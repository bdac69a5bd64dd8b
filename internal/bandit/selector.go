package bandit

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/examprep/selection/internal/models"
	"golang.org/x/sync/errgroup"
)

// MaxExplorationWidth caps the uniform exploration term so the Thompson
// sample always carries at least 70% of the blended score.
const MaxExplorationWidth = 0.3

type Mode string

const (
	ModeBlend    Mode = "blend"
	ModeThompson Mode = "thompson"
)

var (
	ErrNegativeCount = errors.New("count must not be negative")
	ErrInvalidWidth  = errors.New("exploration width out of range")
	ErrUnknownMode   = errors.New("unknown selection mode")
)

type CategorySource interface {
	GetCategories(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error)
}

type ProfileSource interface {
	GetKnowledgeProfiles(ctx context.Context, userID int64, filter models.ProfileFilter) ([]models.KnowledgeProfile, error)
}

// Options tune one selection call.
type Options struct {
	Mode                     Mode
	Width                    float64
	ExcludeContentCategories []string
}

// Arm is one category with its posterior parameters and the score drawn for
// it in the current pass.
type Arm struct {
	Category models.Category
	Alpha    float64
	Beta     float64
	Sample   float64
}

type Selector struct {
	categories CategorySource
	profiles   ProfileSource
	sampler    Sampler
	source     Source
}

func NewSelector(categories CategorySource, profiles ProfileSource, sampler Sampler, source Source) *Selector {
	if sampler == nil {
		sampler = NormalSampler{}
	}
	if source == nil {
		source = NewSource()
	}
	return &Selector{
		categories: categories,
		profiles:   profiles,
		sampler:    sampler,
		source:     source,
	}
}

func ValidateWidth(w float64) error {
	if math.IsNaN(w) || w < 0 || w > MaxExplorationWidth {
		return fmt.Errorf("%w: %v not in [0, %v]", ErrInvalidWidth, w, MaxExplorationWidth)
	}
	return nil
}

// SelectCategories returns up to count categories in scope, weakest
// estimated mastery first. Categories without a profile stay eligible with
// a uniform Beta(1,1) prior.
func (s *Selector) SelectCategories(ctx context.Context, userID int64, section string, count int, opts Options) ([]models.Category, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if count == 0 {
		if _, err := normalize(opts); err != nil {
			return nil, err
		}
		return []models.Category{}, nil
	}

	ranked, err := s.RankCategories(ctx, userID, section, opts)
	if err != nil {
		return nil, err
	}
	return ranked[:min(count, len(ranked))], nil
}

// RankCategories orders every category in scope, weakest first, for callers
// that consume the ranking until some other quota is met.
func (s *Selector) RankCategories(ctx context.Context, userID int64, section string, opts Options) ([]models.Category, error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	var (
		categories []models.Category
		profiles   []models.KnowledgeProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categories.GetCategories(gctx, models.CategoryFilter{
			Section:                  section,
			ExcludeContentCategories: opts.ExcludeContentCategories,
		})
		if err != nil {
			return fmt.Errorf("get categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profiles, err = s.profiles.GetKnowledgeProfiles(gctx, userID, models.ProfileFilter{Section: section})
		if err != nil {
			return fmt.Errorf("get knowledge profiles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := Rank(s.source.New(), BuildArms(categories, profiles), s.sampler, opts)
	out := make([]models.Category, len(ranked))
	for i, arm := range ranked {
		out[i] = arm.Category
	}
	return out, nil
}

func normalize(opts Options) (Options, error) {
	if opts.Mode == "" {
		opts.Mode = ModeBlend
	}
	if opts.Mode != ModeBlend && opts.Mode != ModeThompson {
		return opts, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}
	if err := ValidateWidth(opts.Width); err != nil {
		return opts, err
	}
	return opts, nil
}

// BuildArms pairs each category with its Laplace-smoothed posterior.
// Profiles for categories outside the list are ignored.
func BuildArms(categories []models.Category, profiles []models.KnowledgeProfile) []Arm {
	byCategory := make(map[int64]models.KnowledgeProfile, len(profiles))
	for _, p := range profiles {
		byCategory[p.CategoryID] = p
	}

	seen := make(map[int64]bool, len(categories))
	arms := make([]Arm, 0, len(categories))
	for _, c := range categories {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		arm := Arm{Category: c, Alpha: 1, Beta: 1}
		if p, ok := byCategory[c.ID]; ok {
			arm.Alpha = float64(p.CorrectAnswers) + 1
			arm.Beta = float64(p.Incorrect()) + 1
		}
		arms = append(arms, arm)
	}
	return arms
}

// Rank samples every arm, shuffles, then stable-sorts ascending by sample.
// The shuffle breaks ties that a sparse prior would otherwise resolve in
// storage order on every call.
func Rank(r *rand.Rand, arms []Arm, sampler Sampler, opts Options) []Arm {
	ranked := slices.Clone(arms)
	for i := range ranked {
		ts := sampler.Sample(r, ranked[i].Alpha, ranked[i].Beta)
		if opts.Mode == ModeThompson {
			ranked[i].Sample = ts
			continue
		}
		ranked[i].Sample = ts*(1-opts.Width) + r.Float64()*opts.Width
	}

	r.Shuffle(len(ranked), func(i, j int) {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	})
	slices.SortStableFunc(ranked, func(a, b Arm) int {
		return cmp.Compare(a.Sample, b.Sample)
	})
	return ranked
}
