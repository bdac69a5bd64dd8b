package models

import "time"

// KnowledgeProfile is the per (user, category) aggregate of attempt history.
type KnowledgeProfile struct {
	UserID         int64      `json:"user_id"`
	CategoryID     int64      `json:"category_id"`
	CorrectAnswers int        `json:"correct_answers"`
	TotalAttempts  int        `json:"total_attempts"`
	LastAttemptAt  *time.Time `json:"last_attempt_at,omitempty"`
	ConceptMastery float64    `json:"concept_mastery"`
	ContentMastery *float64   `json:"content_mastery,omitempty"`
}

// Incorrect returns the number of missed attempts.
func (p KnowledgeProfile) Incorrect() int {
	return p.TotalAttempts - p.CorrectAnswers
}

type ProfileFilter struct {
	Section string
}

// ProfileFields are the aggregate columns written on upsert.
type ProfileFields struct {
	CorrectAnswers int
	TotalAttempts  int
	LastAttemptAt  *time.Time
	ConceptMastery float64
	ContentMastery *float64
}

// ResponseRecord is one answered item, owned by the answer-recording service.
type ResponseRecord struct {
	UserID           int64     `json:"user_id"`
	CategoryID       *int64    `json:"category_id,omitempty"`
	IsCorrect        bool      `json:"is_correct"`
	TimeSpentSeconds float64   `json:"time_spent_seconds"`
	AnsweredAt       time.Time `json:"answered_at"`
}

// ResponseGroup is the per-category rollup of a user's responses.
type ResponseGroup struct {
	CategoryID    int64
	Correct       int
	Total         int
	LastAttemptAt time.Time
}

type RecomputeResponse struct {
	UserID          int64 `json:"user_id"`
	ProfilesUpdated int   `json:"profiles_updated"`
}
