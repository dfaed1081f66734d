package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/placelist/placelist/internal/handler/dto"
	"github.com/placelist/placelist/internal/service"
)

// PlaceHandler handles HTTP requests for places.
type PlaceHandler struct {
	places *service.PlaceService
	logger *slog.Logger
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(places *service.PlaceService, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{places: places, logger: logger}
}

// Create handles POST /api/place-data.
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	place, err := h.places.Create(r.Context(), service.CreatePlaceInput{
		PlaceID:     dto.TextPtr(req.PlaceID),
		Name:        req.DisplayName,
		Latitude:    dto.FloatPtr(req.Lat),
		Longitude:   dto.FloatPtr(req.Lon),
		Address:     req.Address,
		Categories:  req.Categories,
		Description: req.Description,
		WorkHours:   req.WorkHours,
		Website:     req.URL,
		Phone:       req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlaceExists) {
			// The frontend matches on this exact body.
			writeJSON(w, http.StatusConflict, dto.MessageResponse{
				Message: "Данное заведение уже записано в базе",
				Status:  "place_id exists",
			})
			return
		}
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("place_created",
		"place_id", place.ID,
		"has_external_id", place.PlaceID != nil,
	)

	writeMessage(w, http.StatusCreated, "Успешная запись ;)")
}

// List handles GET /api/places.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.places.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	if listing.Filtered {
		writeJSON(w, http.StatusOK, dto.PlacesResponse{
			Places: listing.Matches,
			Status: dto.StatusSuccess,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.PlacesResponse{
		Places: dto.ToPlaceResponses(listing.All),
	})
}

// Get handles GET /api/place/{id}.
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "PLACE_NOT_FOUND", "Place not found")
		return
	}

	place, err := h.places.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PlaceEnvelope{
		Place: dto.ToPlaceDetailResponse(place.Place, place.Rating),
	})
}

// Update handles PUT /api/place/{id}.
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "PLACE_NOT_FOUND", "Place not found")
		return
	}

	var req dto.UpdatePlaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	place, err := h.places.Update(r.Context(), id, req.ToModel())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("place_updated", "place_id", place.ID)

	writeJSON(w, http.StatusOK, dto.UpdatePlaceResponse{
		Message: "Place updated successfully",
		Place:   dto.ToUpdatedPlace(place),
	})
}
