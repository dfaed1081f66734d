package repository

import (
	"context"
	"fmt"

	"github.com/placelist/placelist/internal/model"
)

// ratingSQL is the aggregate expression over review rows aliased as rv.
// ROUND(numeric, 1) rounds half away from zero.
const ratingSQL = `COALESCE(ROUND(AVG(rv.review_score), 1), 0)::float8, COUNT(rv.id)`

// CreateReview inserts a review. A missing place or user yields ErrReferenceNotFound.
func (r *Repository) CreateReview(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO review (id_place, id_user, review_text, review_score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		review.PlaceID,
		review.UserID,
		review.Text,
		review.Score,
	).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListReviewsByPlace returns the reviews of a place with author usernames,
// oldest first.
func (r *Repository) ListReviewsByPlace(ctx context.Context, placeID int64) ([]model.Review, error) {
	query := `
		SELECT rv.id, rv.id_place, rv.id_user, rv.review_text, rv.review_score, rv.created_at, u.username
		FROM review rv
		JOIN users u ON u.id = rv.id_user
		WHERE rv.id_place = $1
		ORDER BY rv.created_at, rv.id
	`

	rows, err := r.pool.Query(ctx, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.PlaceID,
			&rv.UserID,
			&rv.Text,
			&rv.Score,
			&rv.CreatedAt,
			&rv.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// GetPlaceRating computes the review aggregate of a place on read.
func (r *Repository) GetPlaceRating(ctx context.Context, placeID int64) (model.Rating, error) {
	query := `SELECT ` + ratingSQL + ` FROM review rv WHERE rv.id_place = $1`

	var rating model.Rating
	if err := r.pool.QueryRow(ctx, query, placeID).Scan(&rating.Average, &rating.Total); err != nil {
		return model.Rating{}, fmt.Errorf("failed to compute rating: %w", err)
	}

	return rating, nil
}
