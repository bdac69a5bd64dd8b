package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/examprep/selection/internal/bandit"
	"github.com/examprep/selection/internal/logger"
	"github.com/examprep/selection/internal/metrics"
	"github.com/examprep/selection/internal/models"
	"github.com/examprep/selection/internal/resolver"
)

type CategorySelector interface {
	SelectCategories(ctx context.Context, userID int64, section string, count int, opts bandit.Options) ([]models.Category, error)
	RankCategories(ctx context.Context, userID int64, section string, opts bandit.Options) ([]models.Category, error)
}

type ItemResolver interface {
	ResolveItems(ctx context.Context, section string, categories []models.Category, excludeIDs []int64, itemsPerCategory int) ([]models.Item, error)
	FillTopics(ranked []models.Category, alreadyChosen []string, want int) []models.Task
}

type CatalogReader interface {
	HasSection(ctx context.Context, section string) (bool, error)
	GetCategories(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error)
}

// metricType bounds the selection_type label to the known types.
func metricType(t models.SelectionType) string {
	if !models.ValidSelectionTypes[t] {
		return "unknown"
	}
	return string(t)
}

type MasteryRecomputer interface {
	Recompute(ctx context.Context, userID int64) (int, error)
}

// Widths holds the exploration width used by each selection type.
type Widths struct {
	Questions float64
	Rooms     float64
	Tasks     float64
}

func (w Widths) For(t models.SelectionType) float64 {
	switch t {
	case models.SelectRooms:
		return w.Rooms
	case models.SelectTasks:
		return w.Tasks
	default:
		return w.Questions
	}
}

type Service struct {
	selector CategorySelector
	resolver ItemResolver
	catalog  CatalogReader
	mastery  MasteryRecomputer
	widths   Widths
	mode     bandit.Mode
	log      *logger.Logger
}

func NewService(selector CategorySelector, res ItemResolver, catalog CatalogReader, mastery MasteryRecomputer, widths Widths, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		selector: selector,
		resolver: res,
		catalog:  catalog,
		mastery:  mastery,
		widths:   widths,
		mode:     bandit.ModeBlend,
		log:      log,
	}
}

// SetMode switches the scoring mode for every selection type.
func (s *Service) SetMode(mode bandit.Mode) {
	s.mode = mode
}

// ── Selection ───────────────────────────────────────────

// Select runs one pass: validate, rank categories weakest first, then
// resolve items or topic tasks for the selection type.
func (s *Service) Select(ctx context.Context, req models.SelectionRequest) (*models.SelectionResult, error) {
	start := time.Now()
	if req.SelectionType == "" {
		req.SelectionType = models.SelectQuestions
	}
	typ := metricType(req.SelectionType)

	result, err := s.selectPass(ctx, req)

	metrics.SelectionDuration.WithLabelValues(typ).Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, ErrInvalidInput):
		metrics.SelectionRequests.WithLabelValues(typ, "invalid").Inc()
		return nil, err
	case err != nil:
		metrics.SelectionRequests.WithLabelValues(typ, "error").Inc()
		s.log.Error("selection failed", "user_id", req.UserID, "section", req.Section, "selection_type", req.SelectionType, "error", err)
		return nil, err
	case len(result.SelectedCategories) == 0:
		metrics.SelectionRequests.WithLabelValues(typ, "empty").Inc()
	default:
		metrics.SelectionRequests.WithLabelValues(typ, "ok").Inc()
	}
	metrics.CategoriesSelected.Observe(float64(len(result.SelectedCategories)))

	s.log.Debug("selection served",
		"user_id", req.UserID,
		"section", req.Section,
		"selection_type", req.SelectionType,
		"categories", len(result.SelectedCategories),
		"questions", len(result.Questions),
		"tasks", len(result.Tasks),
	)
	return result, nil
}

func (s *Service) selectPass(ctx context.Context, req models.SelectionRequest) (*models.SelectionResult, error) {
	count, err := s.validate(ctx, &req)
	if err != nil {
		return nil, err
	}

	opts := bandit.Options{
		Mode:                     s.mode,
		Width:                    s.widths.For(req.SelectionType),
		ExcludeContentCategories: req.ExcludeContentCategories,
	}
	if req.SelectionType == models.SelectTasks {
		return s.selectTasks(ctx, req, count, opts)
	}

	categories, err := s.selector.SelectCategories(ctx, req.UserID, req.Section, count, opts)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}

	result := &models.SelectionResult{SelectedCategories: categories}
	if req.SelectionType == models.SelectQuestions {
		items, err := s.resolver.ResolveItems(ctx, req.Section, categories, req.ExcludeIDs, req.ItemsPerCategory)
		if err != nil {
			return nil, err
		}
		result.Questions = items
	}
	return result, nil
}

// selectTasks walks the full ranking so a category whose topics are already
// claimed hands its slot to the next weakest one. Only categories that
// produced a task are reported.
func (s *Service) selectTasks(ctx context.Context, req models.SelectionRequest, count int, opts bandit.Options) (*models.SelectionResult, error) {
	result := &models.SelectionResult{SelectedCategories: []models.Category{}, Tasks: []models.Task{}}
	if count == 0 {
		return result, nil
	}

	ranked, err := s.selector.RankCategories(ctx, req.UserID, req.Section, opts)
	if err != nil {
		return nil, fmt.Errorf("rank categories: %w", err)
	}

	result.Tasks = s.resolver.FillTopics(ranked, nil, count)
	contributed := make(map[int64]bool, len(result.Tasks))
	for _, task := range result.Tasks {
		contributed[task.CategoryID] = true
	}
	for _, c := range ranked {
		if contributed[c.ID] {
			result.SelectedCategories = append(result.SelectedCategories, c)
		}
	}
	return result, nil
}

// validate applies defaults in place and returns the number of categories
// to rank.
func (s *Service) validate(ctx context.Context, req *models.SelectionRequest) (int, error) {
	if !models.ValidSelectionTypes[req.SelectionType] {
		return 0, invalid("selection_type", "must be 'questions', 'rooms', or 'tasks'")
	}
	if req.Section == "" {
		return 0, invalid("section", "is required")
	}
	if err := s.checkSection(ctx, req.Section); err != nil {
		return 0, err
	}
	if req.Count < 0 {
		return 0, invalid("count", "must not be negative")
	}
	if req.Count > models.MaxCategoryCount {
		return 0, invalid("count", "must be at most %d", models.MaxCategoryCount)
	}
	if req.Count == 0 {
		req.Count = models.DefaultCategoryCount
	}
	if req.ItemsPerCategory < 0 {
		return 0, invalid("items_per_category", "must not be negative")
	}
	if req.ItemsPerCategory > models.MaxItemsPerCategory {
		return 0, invalid("items_per_category", "must be at most %d", models.MaxItemsPerCategory)
	}
	if req.ItemsPerCategory == 0 {
		req.ItemsPerCategory = models.DefaultItemsPerCategory
	}

	count := req.Count
	if req.Hours != nil {
		if *req.Hours > models.MaxHours {
			return 0, invalid("hours", "must be at most %d", models.MaxHours)
		}
		n, err := resolver.TaskCount(*req.Hours)
		if err != nil {
			return 0, invalid("hours", "must not be negative")
		}
		if req.SelectionType == models.SelectTasks {
			count = n
		}
	}
	return count, nil
}

func (s *Service) checkSection(ctx context.Context, section string) error {
	if section == models.AllSections {
		return nil
	}
	ok, err := s.catalog.HasSection(ctx, section)
	if err != nil {
		return fmt.Errorf("check section: %w", err)
	}
	if !ok {
		return invalid("section", "unknown section %q", section)
	}
	return nil
}

// ── Catalog ─────────────────────────────────────────────

func (s *Service) Categories(ctx context.Context, section string) ([]models.Category, error) {
	if section == "" {
		section = models.AllSections
	}
	if err := s.checkSection(ctx, section); err != nil {
		return nil, err
	}
	categories, err := s.catalog.GetCategories(ctx, models.CategoryFilter{Section: section})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// ── Mastery ─────────────────────────────────────────────

func (s *Service) RecomputeMastery(ctx context.Context, userID int64) (*models.RecomputeResponse, error) {
	n, err := s.mastery.Recompute(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recompute mastery: %w", err)
	}
	return &models.RecomputeResponse{UserID: userID, ProfilesUpdated: n}, nil
}
