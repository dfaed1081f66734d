package model

import "time"

// Review is an immutable user review of a place.
type Review struct {
	ID        int64     `json:"id"`
	PlaceID   int64     `json:"id_place"`
	UserID    int64     `json:"id_user"`
	Text      string    `json:"review_text"`
	Score     int       `json:"review_score"`
	CreatedAt time.Time `json:"created_at"`
	// Username of the author, filled by joined reads.
	Username string `json:"username,omitempty"`
}

// Rating is the derived review aggregate of a place.
type Rating struct {
	Average float64 `json:"average_rating"`
	Total   int64   `json:"total_reviews"`
}

// AverageRating returns sum/count rounded to one decimal, half away from zero.
// It returns 0 when count is 0. Integer arithmetic keeps it in step with
// Postgres ROUND(numeric, 1).
func AverageRating(sum, count int64) float64 {
	if count <= 0 {
		return 0
	}
	n := sum * 10
	q, r := n/count, n%count
	if r < 0 {
		r = -r
	}
	if 2*r >= count {
		if n < 0 {
			q--
		} else {
			q++
		}
	}
	return float64(q) / 10
}
