package dto

import "github.com/placelist/placelist/internal/model"

// CreateListRequest is the body of POST /api/lists.
type CreateListRequest struct {
	ListName string `json:"list_name"`
}

// AddPlaceRequest is the body of POST /api/lists/{id}/places.
type AddPlaceRequest struct {
	PlaceID *Int `json:"place_id"`
}

// AddMemberRequest is the body of POST /api/lists/{id}/users.
type AddMemberRequest struct {
	Username string `json:"username"`
}

// ListResponse is a list in the caller's overview.
type ListResponse struct {
	ID        int64  `json:"id"`
	ListName  string `json:"list_name"`
	CreatedAt string `json:"created_at"`
}

// ListsResponse wraps the caller's lists.
type ListsResponse struct {
	Lists  []ListResponse `json:"lists"`
	Status string         `json:"status"`
}

// ListDetailResponse is a list with its places and members.
type ListDetailResponse struct {
	ListResponse
	Places []model.PlaceSummary `json:"places"`
	Users  []model.ListMember   `json:"users"`
}

// ListEnvelope wraps a single list.
type ListEnvelope struct {
	List   *ListDetailResponse `json:"list"`
	Status string              `json:"status"`
}

// ListPlacesResponse wraps the rated places of a list.
type ListPlacesResponse struct {
	Places []RatedPlaceResponse `json:"places"`
	Status string               `json:"status"`
}

// ListUsersResponse wraps the members of a list.
type ListUsersResponse struct {
	Users  []model.ListMember `json:"users"`
	Status string             `json:"status"`
}

// MemberResponse acknowledges an added member.
type MemberResponse struct {
	Message string           `json:"message"`
	User    model.ListMember `json:"user"`
	Status  string           `json:"status"`
}

// ToListResponse converts a List model, formatting created_at as DD/MM/YYYY.
func ToListResponse(l model.List) ListResponse {
	return ListResponse{
		ID:        l.ID,
		ListName:  l.Name,
		CreatedAt: l.CreatedAt.Format(model.DateLayout),
	}
}

// ToListResponses converts a slice of lists.
func ToListResponses(lists []model.List) []ListResponse {
	out := make([]ListResponse, len(lists))
	for i, l := range lists {
		out[i] = ToListResponse(l)
	}
	return out
}

// ToListDetailResponse converts list details.
func ToListDetailResponse(d *model.ListDetails) *ListDetailResponse {
	places := d.Places
	if places == nil {
		places = []model.PlaceSummary{}
	}
	users := d.Users
	if users == nil {
		users = []model.ListMember{}
	}
	return &ListDetailResponse{
		ListResponse: ToListResponse(d.List),
		Places:       places,
		Users:        users,
	}
}

// ListCreatedResponse acknowledges a created list.
type ListCreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	Status  string `json:"status"`
}
