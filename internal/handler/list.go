package handler

import (
	"log/slog"
	"net/http"

	"github.com/placelist/placelist/internal/auth"
	"github.com/placelist/placelist/internal/handler/dto"
	"github.com/placelist/placelist/internal/service"
)

// ListHandler handles HTTP requests for lists, their places and members.
type ListHandler struct {
	lists  *service.ListService
	logger *slog.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(lists *service.ListService, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: lists, logger: logger}
}

// currentUser returns the authenticated user. Routes using it sit behind
// the token middleware, so a miss means a wiring error; it is still
// answered with 401.
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "Token is missing")
	}
	return userID, ok
}

// listID parses the {id} parameter, answering 404 when it is not an ID.
func listID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "LIST_NOT_FOUND", "List not found")
	}
	return id, ok
}

// Mine handles GET /api/lists.
func (h *ListHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	lists, err := h.lists.ListForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListsResponse{
		Lists:  dto.ToListResponses(lists),
		Status: dto.StatusSuccess,
	})
}

// Create handles POST /api/lists.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateListRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	list, err := h.lists.Create(r.Context(), userID, req.ListName)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("list_created", "list_id", list.ID, "user_id", userID)

	writeJSON(w, http.StatusCreated, dto.ListCreatedResponse{
		Message: "List created successfully",
		ID:      list.ID,
		Status:  dto.StatusSuccess,
	})
}

// Get handles GET /api/lists/{id}.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := listID(w, r)
	if !ok {
		return
	}

	details, err := h.lists.GetDetails(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEnvelope{
		List:   dto.ToListDetailResponse(details),
		Status: dto.StatusSuccess,
	})
}

// Places handles GET /api/lists/{id}/places.
func (h *ListHandler) Places(w http.ResponseWriter, r *http.Request) {
	id, ok := listID(w, r)
	if !ok {
		return
	}

	places, err := h.lists.ListPlaces(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPlacesResponse{
		Places: dto.ToRatedPlaceResponses(places),
		Status: dto.StatusSuccess,
	})
}

// AddPlace handles POST /api/lists/{id}/places.
func (h *ListHandler) AddPlace(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	id, ok := listID(w, r)
	if !ok {
		return
	}

	var req dto.AddPlaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var placeID int64
	if req.PlaceID != nil {
		placeID = int64(*req.PlaceID)
	}

	if err := h.lists.AddPlace(r.Context(), id, placeID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("list_place_added", "list_id", id, "place_id", placeID)

	writeMessage(w, http.StatusCreated, "Place added to list successfully")
}

// RemovePlace handles DELETE /api/lists/{id}/places/{place_id}.
func (h *ListHandler) RemovePlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := listID(w, r)
	if !ok {
		return
	}
	placeID, ok := idParam(r, "place_id")
	if !ok {
		writeError(w, http.StatusNotFound, "LIST_PLACE_NOT_FOUND", "Place is not in the list")
		return
	}

	if err := h.lists.RemovePlace(r.Context(), userID, id, placeID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("list_place_removed", "list_id", id, "place_id", placeID, "user_id", userID)

	writeMessage(w, http.StatusOK, "Place removed from list successfully")
}

// Users handles GET /api/lists/{id}/users.
func (h *ListHandler) Users(w http.ResponseWriter, r *http.Request) {
	id, ok := listID(w, r)
	if !ok {
		return
	}

	users, err := h.lists.ListUsers(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListUsersResponse{
		Users:  users,
		Status: dto.StatusSuccess,
	})
}

// AddMember handles POST /api/lists/{id}/users.
func (h *ListHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := listID(w, r)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	member, err := h.lists.AddMember(r.Context(), userID, id, req.Username)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("list_member_added", "list_id", id, "member_id", member.UserID, "user_id", userID)

	writeJSON(w, http.StatusCreated, dto.MemberResponse{
		Message: "User added to list successfully",
		User:    *member,
		Status:  dto.StatusSuccess,
	})
}

// RemoveMember handles DELETE /api/lists/{id}/users/{user_id}.
func (h *ListHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := listID(w, r)
	if !ok {
		return
	}
	memberID, ok := idParam(r, "user_id")
	if !ok {
		writeError(w, http.StatusNotFound, "MEMBER_NOT_FOUND", "User is not a member of the list")
		return
	}

	if err := h.lists.RemoveMember(r.Context(), userID, id, memberID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("list_member_removed", "list_id", id, "member_id", memberID, "user_id", userID)

	writeMessage(w, http.StatusOK, "User removed from list successfully")
}
