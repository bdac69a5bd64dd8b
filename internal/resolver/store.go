package resolver

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

// GetItems returns up to limit servable items matching filter, easiest first.
func (s *Store) GetItems(ctx context.Context, filter models.ItemFilter, limit int) ([]models.Item, error) {
	section := filter.Section
	if section == models.AllSections {
		section = ""
	}
	categoryIDs := filter.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []int64{}
	}
	excludeIDs := filter.ExcludeIDs
	if excludeIDs == nil {
		excludeIDs = []int64{}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category_id, section, kind, difficulty, prompt
		 FROM items
		 WHERE (cardinality($1::bigint[]) = 0 OR category_id = ANY($1::bigint[]))
		   AND NOT (id = ANY($2::bigint[]))
		   AND ($3 = '' OR section = $3)
		 ORDER BY difficulty ASC, id
		 LIMIT $4`,
		pq.Array(categoryIDs), pq.Array(excludeIDs), section, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Section, &it.Kind, &it.Difficulty, &it.Prompt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
