package models

import "database/sql"

// MinRating and MaxRating bound the histogram buckets
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackAnalysis holds aggregate statistics over all feedback
type FeedbackAnalysis struct {
	// Ratings[i] is the number of feedback rows with rating i+1
	Ratings       [MaxRating]int `json:"ratings"`
	TotalFeedback int            `json:"totalFeedback"`
	AverageRating float64        `json:"avgRating"`
	PlacesCount   int            `json:"placesCount"`
}

// FeedbackTotals holds the scalar aggregates read from the feedback table.
// AverageRating is null when the table is empty.
type FeedbackTotals struct {
	Count             int
	AverageRating     sql.NullFloat64
	DistinctLocations int
}
