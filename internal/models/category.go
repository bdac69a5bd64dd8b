package models

// AllSections selects across every exam section.
const AllSections = "all"

// Category is one leaf of the section -> subject -> content -> concept
// taxonomy. ContentCategory holds the code the external topic bank maps to
// (for example "1A").
type Category struct {
	ID              int64  `json:"id"`
	Section         string `json:"section"`
	SubjectCategory string `json:"subject_category"`
	ContentCategory string `json:"content_category"`
	ConceptCategory string `json:"concept_category"`
}

type CategoryFilter struct {
	Section                  string
	ExcludeContentCategories []string
}

// Matches reports whether c passes the filter. An empty Section or
// AllSections matches every section.
func (f CategoryFilter) Matches(c Category) bool {
	if f.Section != "" && f.Section != AllSections && c.Section != f.Section {
		return false
	}
	for _, code := range f.ExcludeContentCategories {
		if c.ContentCategory == code {
			return false
		}
	}
	return true
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}
