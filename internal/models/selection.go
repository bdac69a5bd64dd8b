package models

type SelectionType string

const (
	SelectQuestions SelectionType = "questions"
	SelectRooms     SelectionType = "rooms"
	SelectTasks     SelectionType = "tasks"
)

var ValidSelectionTypes = map[SelectionType]bool{
	SelectQuestions: true,
	SelectRooms:     true,
	SelectTasks:     true,
}

const (
	DefaultCategoryCount    = 3
	DefaultItemsPerCategory = 5

	MaxCategoryCount    = 100
	MaxItemsPerCategory = 100
	MaxHours            = 168
)

// SelectionRequest is the input to one selection pass. Zero Count and
// ItemsPerCategory fall back to the defaults.
type SelectionRequest struct {
	UserID                   int64         `json:"-"`
	Section                  string        `json:"section"`
	ExcludeIDs               []int64       `json:"exclude_ids"`
	ExcludeContentCategories []string      `json:"exclude_content_categories"`
	SelectionType            SelectionType `json:"selection_type"`
	Count                    int           `json:"count"`
	ItemsPerCategory         int           `json:"items_per_category"`
	Hours                    *float64      `json:"hours,omitempty"`
}

type SelectionResult struct {
	SelectedCategories []Category `json:"selected_categories"`
	Questions          []Item     `json:"questions,omitempty"`
	Tasks              []Task     `json:"tasks,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
