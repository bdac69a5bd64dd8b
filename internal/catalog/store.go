package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/examprep/selection/internal/models"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListCategories returns the full taxonomy ordered by id.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.GetCategories(ctx, models.CategoryFilter{})
}

func (s *Store) GetCategories(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	section := filter.Section
	if section == models.AllSections {
		section = ""
	}
	excluded := filter.ExcludeContentCategories
	if excluded == nil {
		excluded = []string{}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, section, subject_category, content_category, concept_category
		 FROM categories
		 WHERE ($1 = '' OR section = $1)
		   AND NOT (content_category = ANY($2))
		 ORDER BY id`,
		section, pq.Array(excluded),
	)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Section, &c.SubjectCategory, &c.ContentCategory, &c.ConceptCategory); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
