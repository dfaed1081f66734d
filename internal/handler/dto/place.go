package dto

import "github.com/placelist/placelist/internal/model"

// CreatePlaceRequest is the body of POST /api/place-data. Field names follow
// the geocoder payload the frontend forwards.
type CreatePlaceRequest struct {
	PlaceID     *Text    `json:"place_id"`
	DisplayName *string  `json:"display_name"`
	Lat         *Float   `json:"lat"`
	Lon         *Float   `json:"lon"`
	Address     *string  `json:"address"`
	Categories  []string `json:"categories"`
	Description *string  `json:"description"`
	WorkHours   *string  `json:"work_hours"`
	URL         *string  `json:"url"`
	Phone       *string  `json:"phone"`
}

// UpdatePlaceRequest is the body of PUT /api/place/{id}. Omitted or null
// fields keep their stored values.
type UpdatePlaceRequest struct {
	Name        *string   `json:"name"`
	Address     *string   `json:"address"`
	Category    *[]string `json:"category"`
	Description *string   `json:"description"`
	WorkHours   *string   `json:"work_hours"`
	Website     *string   `json:"website"`
	Phone       *string   `json:"phone"`
}

// ToModel converts the request into a partial update.
func (r UpdatePlaceRequest) ToModel() model.PlaceUpdate {
	return model.PlaceUpdate{
		Name:        r.Name,
		Address:     r.Address,
		Category:    r.Category,
		Description: r.Description,
		WorkHours:   r.WorkHours,
		Website:     r.Website,
		Phone:       r.Phone,
	}
}

// PlaceResponse is the full place record.
type PlaceResponse struct {
	ID          int64    `json:"id"`
	PlaceID     *string  `json:"place_id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Address     string   `json:"address"`
	Category    []string `json:"category"`
	Description string   `json:"description"`
	WorkHours   string   `json:"work_hours"`
	Website     string   `json:"website"`
	Phone       string   `json:"phone"`
}

// PlaceDetailResponse is a place with its review aggregate.
type PlaceDetailResponse struct {
	PlaceResponse
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// UpdatedPlace is the place echoed back after an update.
type UpdatedPlace struct {
	ID          int64    `json:"id"`
	PlaceID     *string  `json:"place_id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Category    []string `json:"category"`
	Description string   `json:"description"`
	WorkHours   string   `json:"work_hours"`
	Website     string   `json:"website"`
	Phone       string   `json:"phone"`
}

// PlacesResponse wraps a place listing. Status is only set on filtered
// listings.
type PlacesResponse struct {
	Places any    `json:"places"`
	Status string `json:"status,omitempty"`
}

// PlaceEnvelope wraps a single place.
type PlaceEnvelope struct {
	Place *PlaceDetailResponse `json:"place"`
}

// UpdatePlaceResponse is returned by PUT /api/place/{id}.
type UpdatePlaceResponse struct {
	Message string        `json:"message"`
	Place   *UpdatedPlace `json:"place"`
}

// RatedPlaceResponse is a list entry annotated with its review aggregate.
type RatedPlaceResponse struct {
	model.PlaceSummary
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// ToPlaceResponse converts a Place model to PlaceResponse.
func ToPlaceResponse(p *model.Place) PlaceResponse {
	category := p.Category
	if category == nil {
		category = []string{}
	}
	return PlaceResponse{
		ID:          p.ID,
		PlaceID:     p.PlaceID,
		Name:        p.Name,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Address:     p.Address,
		Category:    category,
		Description: p.Description,
		WorkHours:   p.WorkHours,
		Website:     p.Website,
		Phone:       p.Phone,
	}
}

// ToPlaceResponses converts a slice of places.
func ToPlaceResponses(places []*model.Place) []PlaceResponse {
	out := make([]PlaceResponse, len(places))
	for i, p := range places {
		out[i] = ToPlaceResponse(p)
	}
	return out
}

// ToPlaceDetailResponse attaches a rating to a place.
func ToPlaceDetailResponse(p *model.Place, rating model.Rating) *PlaceDetailResponse {
	return &PlaceDetailResponse{
		PlaceResponse: ToPlaceResponse(p),
		AverageRating: rating.Average,
		TotalReviews:  rating.Total,
	}
}

// ToUpdatedPlace converts a Place model to the update echo.
func ToUpdatedPlace(p *model.Place) *UpdatedPlace {
	full := ToPlaceResponse(p)
	return &UpdatedPlace{
		ID:          full.ID,
		PlaceID:     full.PlaceID,
		Name:        full.Name,
		Address:     full.Address,
		Category:    full.Category,
		Description: full.Description,
		WorkHours:   full.WorkHours,
		Website:     full.Website,
		Phone:       full.Phone,
	}
}

// ToRatedPlaceResponses flattens rated places for list views.
func ToRatedPlaceResponses(places []model.RatedPlace) []RatedPlaceResponse {
	out := make([]RatedPlaceResponse, len(places))
	for i, p := range places {
		out[i] = RatedPlaceResponse{
			PlaceSummary:  p.PlaceSummary,
			AverageRating: p.Average,
			TotalReviews:  p.Total,
		}
	}
	return out
}
