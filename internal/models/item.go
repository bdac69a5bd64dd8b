package models

type ItemKind string

const (
	ItemQuestion  ItemKind = "question"
	ItemFlashcard ItemKind = "flashcard"
)

// Item is a stored practice unit belonging to exactly one category.
type Item struct {
	ID         int64    `json:"id"`
	CategoryID int64    `json:"category_id"`
	Section    string   `json:"section"`
	Kind       ItemKind `json:"kind"`
	Difficulty int      `json:"difficulty"`
	Prompt     string   `json:"prompt"`
}

// ItemFilter scopes an item query. Empty CategoryIDs means no category
// restriction; empty Section (or AllSections) means no section restriction.
type ItemFilter struct {
	CategoryIDs []int64
	ExcludeIDs  []int64
	Section     string
}

// Task is a generated reference to an external item bank topic.
type Task struct {
	Topic           string `json:"topic"`
	Label           string `json:"label"`
	CategoryID      int64  `json:"category_id"`
	ContentCategory string `json:"content_category"`
	ItemCount       int    `json:"item_count"`
}
