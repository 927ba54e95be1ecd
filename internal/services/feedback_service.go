package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/touristfeedback/backend/internal/models"
	"go.uber.org/zap"
)

// FeedbackRepository is the interface that wraps methods for Feedback table data access
type FeedbackRepository interface {
	// Method Create inserts a new feedback row; its ID is set on success.
	Create(ctx context.Context, feedback *models.Feedback) error
	// Method ListByUser retrieves all feedback of a user, newest first, joined with the author's name.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListByUser(ctx context.Context, userID int) ([]models.FeedbackWithAuthor, error)
	// Method RatingCounts retrieves the number of feedback rows per rating value over the whole table.
	RatingCounts(ctx context.Context) (map[int]int, error)
	// Method Totals retrieves row count, average rating and distinct location count over the whole table.
	Totals(ctx context.Context) (*models.FeedbackTotals, error)
}

// timestampLayout matches the stored created_at format (UTC, microseconds, no zone suffix)
const timestampLayout = "2006-01-02T15:04:05.000000"

type feedbackService struct {
	repo   FeedbackRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(repo FeedbackRepository, logger *zap.Logger) *feedbackService {
	return &feedbackService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Submit stores a feedback row stamped with the current UTC time.
//
// Rating bounds and the visit date format are not checked, and identical
// submissions are stored as separate rows.
func (s *feedbackService) Submit(ctx context.Context, req *models.FeedbackRequest) (*models.Feedback, error) {
	feedback := &models.Feedback{
		UserID:    req.UserID,
		Location:  req.Location,
		VisitDate: req.VisitDate,
		Rating:    req.Rating,
		Category:  req.Category,
		Comment:   req.Comment,
		Recommend: req.Recommend,
		CreatedAt: s.now().UTC().Format(timestampLayout),
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}

	s.logger.Info("feedback submitted", zap.Int("feedbackId", feedback.ID), zap.Int("userId", feedback.UserID))
	return feedback, nil
}

// ListByUser retrieves a user's feedback history, newest first
func (s *feedbackService) ListByUser(ctx context.Context, userID int) ([]models.FeedbackWithAuthor, error) {
	feedbacks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return feedbacks, nil
}

// Analyze computes statistics over all feedback, regardless of author.
//
// Ratings outside 1..5 are left out of the histogram but still count towards
// the total and the average. The average is 0 when there is no feedback.
func (s *feedbackService) Analyze(ctx context.Context) (*models.FeedbackAnalysis, error) {
	counts, err := s.repo.RatingCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze feedback: %w", err)
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze feedback: %w", err)
	}

	analysis := &models.FeedbackAnalysis{
		TotalFeedback: totals.Count,
		PlacesCount:   totals.DistinctLocations,
	}

	for rating, count := range counts {
		if rating >= models.MinRating && rating <= models.MaxRating {
			analysis.Ratings[rating-1] = count
		}
	}

	if totals.AverageRating.Valid {
		analysis.AverageRating = roundTo(totals.AverageRating.Float64, 2)
	}

	return analysis, nil
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.RoundToEven(value*factor) / factor
}
