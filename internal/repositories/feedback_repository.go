package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/touristfeedback/backend/internal/models"
	"go.uber.org/zap"
)

type feedbackRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *sql.DB, logger *zap.Logger) *feedbackRepository {
	return &feedbackRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new feedback row
func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (user_id, location, visit_date, rating, category, comment, recommend, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		feedback.UserID,
		feedback.Location,
		feedback.VisitDate,
		feedback.Rating,
		feedback.Category,
		feedback.Comment,
		feedback.Recommend,
		feedback.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create feedback", zap.Error(err))
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	feedback.ID = int(id)
	return nil
}

// feedbackWithAuthorQuery joins feedback with the author's name; the join is LEFT
// so feedback from missing users is still listed
const feedbackWithAuthorQuery = `
	SELECT f.id, f.user_id, f.location, f.visit_date, f.rating, f.category, f.comment, f.recommend, f.created_at, u.fullname
	FROM feedback f
	LEFT JOIN users u ON f.user_id = u.id
`

// ListByUser retrieves a user's feedback, newest first
func (r *feedbackRepository) ListByUser(ctx context.Context, userID int) ([]models.FeedbackWithAuthor, error) {
	query := feedbackWithAuthorQuery + `
	WHERE f.user_id = ?
	ORDER BY f.id DESC
	`

	return r.list(ctx, query, userID)
}

// ListAll retrieves all feedback, newest first
func (r *feedbackRepository) ListAll(ctx context.Context) ([]models.FeedbackWithAuthor, error) {
	query := feedbackWithAuthorQuery + `
	ORDER BY f.id DESC
	`

	return r.list(ctx, query)
}

func (r *feedbackRepository) list(ctx context.Context, query string, args ...any) ([]models.FeedbackWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query feedback", zap.Error(err))
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var feedbacks []models.FeedbackWithAuthor
	for rows.Next() {
		var f models.FeedbackWithAuthor
		var userID, rating sql.NullInt64
		var location, visitDate, category, comment, recommend, createdAt sql.NullString
		if err := rows.Scan(
			&f.ID,
			&userID,
			&location,
			&visitDate,
			&rating,
			&category,
			&comment,
			&recommend,
			&createdAt,
			&f.Author,
		); err != nil {
			r.logger.Error("failed to scan feedback", zap.Error(err))
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		f.UserID = int(userID.Int64)
		f.Location = location.String
		f.VisitDate = visitDate.String
		f.Rating = int(rating.Int64)
		f.Category = category.String
		f.Comment = comment.String
		f.Recommend = recommend.String
		f.CreatedAt = createdAt.String
		feedbacks = append(feedbacks, f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return feedbacks, nil
}

// Delete removes a feedback row by ID. Deleting a missing ID is not an error.
func (r *feedbackRepository) Delete(ctx context.Context, feedbackID int) error {
	query := `DELETE FROM feedback WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, feedbackID); err != nil {
		r.logger.Error("failed to delete feedback", zap.Error(err), zap.Int("feedbackId", feedbackID))
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	return nil
}

// RatingCounts returns the number of feedback rows per rating value.
// Rows with a null rating are skipped.
func (r *feedbackRepository) RatingCounts(ctx context.Context) (map[int]int, error) {
	query := `SELECT rating, COUNT(*) FROM feedback GROUP BY rating`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query rating counts", zap.Error(err))
		return nil, fmt.Errorf("failed to query rating counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var rating sql.NullInt64
		var count int
		if err := rows.Scan(&rating, &count); err != nil {
			r.logger.Error("failed to scan rating count", zap.Error(err))
			return nil, fmt.Errorf("failed to scan rating count: %w", err)
		}
		if rating.Valid {
			counts[int(rating.Int64)] = count
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// Totals returns the row count, average rating and distinct location count
func (r *feedbackRepository) Totals(ctx context.Context) (*models.FeedbackTotals, error) {
	query := `SELECT COUNT(*), AVG(rating), COUNT(DISTINCT location) FROM feedback`

	totals := &models.FeedbackTotals{}
	err := r.db.QueryRowContext(ctx, query).Scan(&totals.Count, &totals.AverageRating, &totals.DistinctLocations)
	if err != nil {
		r.logger.Error("failed to query feedback totals", zap.Error(err))
		return nil, fmt.Errorf("failed to query feedback totals: %w", err)
	}

	return totals, nil
}
