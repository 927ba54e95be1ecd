package models

import "database/sql"

// Feedback represents a review of a visited location
type Feedback struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Location  string `json:"location"`
	VisitDate string `json:"visitDate"` // Free text, not validated as a date
	Rating    int    `json:"rating"`    // Expected 1-5, not enforced
	Category  string `json:"category"`
	Comment   string `json:"comment"`
	Recommend string `json:"recommend"`
	CreatedAt string `json:"createdAt"`
}

// FeedbackWithAuthor is a feedback row joined with its author's name.
// Author is null when the referenced user no longer exists.
type FeedbackWithAuthor struct {
	Feedback
	Author sql.NullString `json:"author"`
}

// AuthorName returns the joined author name or an empty string for orphaned feedback
func (f FeedbackWithAuthor) AuthorName() string {
	if !f.Author.Valid {
		return ""
	}
	return f.Author.String
}

// FeedbackRequest represents the feedback submission form
type FeedbackRequest struct {
	UserID    int    `json:"uid" validate:"required"`
	Location  string `json:"location" validate:"required"`
	VisitDate string `json:"visitDate" validate:"required"`
	Rating    int    `json:"rating"`
	Category  string `json:"category" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
	Recommend string `json:"recommend" validate:"required"`
}
