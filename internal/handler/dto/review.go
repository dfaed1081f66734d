package dto

import "github.com/placelist/placelist/internal/model"

// AddReviewRequest is the body of POST /api/review.
type AddReviewRequest struct {
	IDPlace     *Int    `json:"id_place"`
	IDUser      *Int    `json:"id_user"`
	ReviewText  *string `json:"review_text"`
	ReviewScore *Int    `json:"review_score"`
}

// ReviewResponse is a review with its author's username.
type ReviewResponse struct {
	ID          int64  `json:"id"`
	IDPlace     int64  `json:"id_place"`
	IDUser      int64  `json:"id_user"`
	ReviewText  string `json:"review_text"`
	ReviewScore int    `json:"review_score"`
	CreatedAt   string `json:"created_at"`
	Username    string `json:"username"`
}

// ReviewsResponse wraps the reviews of a place.
type ReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// ToReviewResponses converts reviews, formatting dates as DD/MM/YYYY.
func ToReviewResponses(reviews []model.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = ReviewResponse{
			ID:          r.ID,
			IDPlace:     r.PlaceID,
			IDUser:      r.UserID,
			ReviewText:  r.Text,
			ReviewScore: r.Score,
			CreatedAt:   r.CreatedAt.Format(model.DateLayout),
			Username:    r.Username,
		}
	}
	return out
}
