package service

import (
	"context"
	"errors"

	"github.com/placelist/placelist/internal/metrics"
	"github.com/placelist/placelist/internal/model"
	"github.com/placelist/placelist/internal/repository"
)

// ReviewStore is the persistence ReviewService depends on.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *model.Review) error
	ListReviewsByPlace(ctx context.Context, placeID int64) ([]model.Review, error)
}

// ReviewService handles review business logic.
type ReviewService struct {
	store   ReviewStore
	metrics metrics.Recorder
}

// NewReviewService creates a new ReviewService.
func NewReviewService(store ReviewStore, recorder metrics.Recorder) *ReviewService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ReviewService{store: store, metrics: recorder}
}

// AddReviewInput defines input for adding a review. Nil means absent.
type AddReviewInput struct {
	PlaceID *int64
	UserID  *int64
	Text    *string
	Score   *int
}

// Add stores a review. Every field must be present; a score of zero is valid
// but empty text is not.
func (s *ReviewService) Add(ctx context.Context, in AddReviewInput) (*model.Review, error) {
	if in.PlaceID == nil || in.UserID == nil || in.Text == nil || in.Score == nil ||
		*in.Text == "" || *in.PlaceID <= 0 || *in.UserID <= 0 {
		return nil, invalidInput("All fields are required")
	}

	review := &model.Review{
		PlaceID: *in.PlaceID,
		UserID:  *in.UserID,
		Text:    *in.Text,
		Score:   *in.Score,
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, invalidInput("Place or user does not exist")
		}
		return nil, err
	}

	s.metrics.IncReviewCreated()
	return review, nil
}

// ListByPlace returns the reviews of a place with author usernames.
// An unknown place has no reviews.
func (s *ReviewService) ListByPlace(ctx context.Context, placeID int64) ([]model.Review, error) {
	return s.store.ListReviewsByPlace(ctx, placeID)
}
