package mastery

import (
	"context"
	"errors"
	"fmt"

	"github.com/examprep/selection/internal/logger"
	"github.com/examprep/selection/internal/metrics"
	"github.com/examprep/selection/internal/models"
)

var ErrInconsistentResponses = errors.New("inconsistent response counts")

type ResponseSource interface {
	GetResponsesGroupedByCategory(ctx context.Context, userID int64) ([]models.ResponseGroup, error)
}

type ProfileWriter interface {
	UpsertKnowledgeProfile(ctx context.Context, userID, categoryID int64, f models.ProfileFields) error
}

type CategoryResolver interface {
	Category(ctx context.Context, id int64) (models.Category, bool, error)
}

// ProfileUpdate is one recomputed row ready to upsert.
type ProfileUpdate struct {
	CategoryID int64
	Fields     models.ProfileFields
}

type Updater struct {
	responses  ResponseSource
	profiles   ProfileWriter
	categories CategoryResolver
	log        *logger.Logger
}

func NewUpdater(responses ResponseSource, profiles ProfileWriter, categories CategoryResolver, log *logger.Logger) *Updater {
	if log == nil {
		log = logger.Nop()
	}
	return &Updater{
		responses:  responses,
		profiles:   profiles,
		categories: categories,
		log:        log,
	}
}

// Recompute rebuilds every knowledge profile the user has responses for and
// returns how many rows were written. A user with no categorized responses
// writes nothing.
func (u *Updater) Recompute(ctx context.Context, userID int64) (int, error) {
	groups, err := u.responses.GetResponsesGroupedByCategory(ctx, userID)
	if err != nil {
		metrics.MasteryRecomputes.WithLabelValues("error").Inc()
		return 0, err
	}

	codes := make(map[int64]string, len(groups))
	if u.categories != nil {
		for _, g := range groups {
			cat, ok, err := u.categories.Category(ctx, g.CategoryID)
			if err != nil {
				metrics.MasteryRecomputes.WithLabelValues("error").Inc()
				return 0, fmt.Errorf("resolve category %d: %w", g.CategoryID, err)
			}
			if ok {
				codes[g.CategoryID] = cat.ContentCategory
			}
		}
	}

	updates, err := ComputeProfiles(groups, codes)
	if err != nil {
		metrics.MasteryRecomputes.WithLabelValues("error").Inc()
		return 0, err
	}

	for i, up := range updates {
		if err := u.profiles.UpsertKnowledgeProfile(ctx, userID, up.CategoryID, up.Fields); err != nil {
			metrics.MasteryRecomputes.WithLabelValues("error").Inc()
			metrics.ProfilesUpserted.Add(float64(i))
			return i, err
		}
	}

	metrics.MasteryRecomputes.WithLabelValues("ok").Inc()
	metrics.ProfilesUpserted.Add(float64(len(updates)))
	u.log.Debug("mastery recomputed", "user_id", userID, "profiles", len(updates))
	return len(updates), nil
}

// ComputeProfiles turns grouped responses into profile rows. codes maps a
// category id to its content category; content mastery pools every group
// sharing a code and is left nil for categories without one.
func ComputeProfiles(groups []models.ResponseGroup, codes map[int64]string) ([]ProfileUpdate, error) {
	type tally struct{ correct, total int }
	pooled := make(map[string]tally)
	for _, g := range groups {
		if g.Correct < 0 || g.Total < g.Correct {
			return nil, fmt.Errorf("%w: category %d has %d correct of %d", ErrInconsistentResponses, g.CategoryID, g.Correct, g.Total)
		}
		if code, ok := codes[g.CategoryID]; ok {
			t := pooled[code]
			t.correct += g.Correct
			t.total += g.Total
			pooled[code] = t
		}
	}

	updates := make([]ProfileUpdate, 0, len(groups))
	for _, g := range groups {
		f := models.ProfileFields{
			CorrectAnswers: g.Correct,
			TotalAttempts:  g.Total,
			LastAttemptAt:  timePtr(g.LastAttemptAt),
			ConceptMastery: Laplace(g.Correct, g.Total),
		}
		if code, ok := codes[g.CategoryID]; ok {
			t := pooled[code]
			content := Laplace(t.correct, t.total)
			f.ContentMastery = &content
		}
		updates = append(updates, ProfileUpdate{CategoryID: g.CategoryID, Fields: f})
	}
	return updates, nil
}
