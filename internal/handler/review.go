package handler

import (
	"log/slog"
	"net/http"

	"github.com/placelist/placelist/internal/handler/dto"
	"github.com/placelist/placelist/internal/service"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// Add handles POST /api/review.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := service.AddReviewInput{
		PlaceID: dto.IntPtr(req.IDPlace),
		UserID:  dto.IntPtr(req.IDUser),
		Text:    req.ReviewText,
	}
	if req.ReviewScore != nil {
		score := int(*req.ReviewScore)
		in.Score = &score
	}

	review, err := h.reviews.Add(r.Context(), in)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("review_created",
		"review_id", review.ID,
		"place_id", review.PlaceID,
		"user_id", review.UserID,
	)

	writeMessage(w, http.StatusCreated, "Review added successfully")
}

// ListByPlace handles GET /api/reviews/{place_id}.
func (h *ReviewHandler) ListByPlace(w http.ResponseWriter, r *http.Request) {
	placeID, ok := idParam(r, "place_id")
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}

	reviews, err := h.reviews.ListByPlace(r.Context(), placeID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReviewsResponse{
		Reviews: dto.ToReviewResponses(reviews),
	})
}
