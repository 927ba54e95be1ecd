package services

import (
	"context"
	"fmt"

	"github.com/touristfeedback/backend/internal/models"
	"go.uber.org/zap"
)

// FeedbackAdminRepository is the interface that wraps Feedback table methods used by administrators
type FeedbackAdminRepository interface {
	// Method ListAll retrieves all feedback, newest first, joined with the author's name.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListAll(ctx context.Context) ([]models.FeedbackWithAuthor, error)
	// Method Delete removes a feedback row by ID.
	//
	// Deleting an ID that does not exist is not an error.
	Delete(ctx context.Context, feedbackID int) error
}

type adminService struct {
	repo   FeedbackAdminRepository
	logger *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(repo FeedbackAdminRepository, logger *zap.Logger) *adminService {
	return &adminService{
		repo:   repo,
		logger: logger,
	}
}

// ListFeedback retrieves all feedback, newest first
func (s *adminService) ListFeedback(ctx context.Context) ([]models.FeedbackWithAuthor, error) {
	feedbacks, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return feedbacks, nil
}

// DeleteFeedback removes a feedback row unconditionally
func (s *adminService) DeleteFeedback(ctx context.Context, feedbackID int) error {
	if err := s.repo.Delete(ctx, feedbackID); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	s.logger.Info("feedback deleted", zap.Int("feedbackId", feedbackID))
	return nil
}
