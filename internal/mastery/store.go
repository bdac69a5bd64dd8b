package mastery

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/examprep/selection/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Responses ───────────────────────────────────────────

// GetResponsesGroupedByCategory rolls a user's categorized responses up
// per category. Responses without a category are skipped.
func (s *Store) GetResponsesGroupedByCategory(ctx context.Context, userID int64) ([]models.ResponseGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category_id,
		        COUNT(*) FILTER (WHERE is_correct),
		        COUNT(*),
		        MAX(answered_at)
		 FROM user_responses
		 WHERE user_id = $1 AND category_id IS NOT NULL
		 GROUP BY category_id
		 ORDER BY category_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get grouped responses: %w", err)
	}
	defer rows.Close()

	var groups []models.ResponseGroup
	for rows.Next() {
		var g models.ResponseGroup
		if err := rows.Scan(&g.CategoryID, &g.Correct, &g.Total, &g.LastAttemptAt); err != nil {
			return nil, fmt.Errorf("scan response group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ── Knowledge Profiles ──────────────────────────────────

// UpsertKnowledgeProfile writes the recomputed aggregate in one statement.
// Concurrent recomputes for the same row resolve last-writer-wins.
func (s *Store) UpsertKnowledgeProfile(ctx context.Context, userID, categoryID int64, f models.ProfileFields) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO knowledge_profiles
		 (user_id, category_id, correct_answers, total_attempts, last_attempt_at,
		  concept_mastery, content_mastery, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		 ON CONFLICT (user_id, category_id)
		 DO UPDATE SET correct_answers = EXCLUDED.correct_answers,
		               total_attempts  = EXCLUDED.total_attempts,
		               last_attempt_at = EXCLUDED.last_attempt_at,
		               concept_mastery = EXCLUDED.concept_mastery,
		               content_mastery = EXCLUDED.content_mastery,
		               updated_at      = NOW()`,
		userID, categoryID, f.CorrectAnswers, f.TotalAttempts, f.LastAttemptAt,
		f.ConceptMastery, f.ContentMastery,
	)
	if err != nil {
		return fmt.Errorf("upsert knowledge profile: %w", err)
	}
	return nil
}

// GetKnowledgeProfiles returns a user's profiles, restricted to one
// section unless the filter is empty or "all".
func (s *Store) GetKnowledgeProfiles(ctx context.Context, userID int64, filter models.ProfileFilter) ([]models.KnowledgeProfile, error) {
	section := filter.Section
	if section == models.AllSections {
		section = ""
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT kp.user_id, kp.category_id, kp.correct_answers, kp.total_attempts,
		        kp.last_attempt_at, kp.concept_mastery, kp.content_mastery
		 FROM knowledge_profiles kp
		 JOIN categories c ON c.id = kp.category_id
		 WHERE kp.user_id = $1 AND ($2 = '' OR c.section = $2)
		 ORDER BY kp.category_id`,
		userID, section,
	)
	if err != nil {
		return nil, fmt.Errorf("get knowledge profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.KnowledgeProfile
	for rows.Next() {
		var p models.KnowledgeProfile
		var last sql.NullTime
		var content sql.NullFloat64
		if err := rows.Scan(&p.UserID, &p.CategoryID, &p.CorrectAnswers, &p.TotalAttempts,
			&last, &p.ConceptMastery, &content); err != nil {
			return nil, fmt.Errorf("scan knowledge profile: %w", err)
		}
		if last.Valid {
			t := last.Time
			p.LastAttemptAt = &t
		}
		if content.Valid {
			v := content.Float64
			p.ContentMastery = &v
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func timePtr(t time.Time) *time.Time {
	return &t
}
