// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/placelist/placelist/internal/handler/dto"
	"github.com/placelist/placelist/internal/service"
)

// Handler serves the endpoints that have no dependencies.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Home is the welcome endpoint.
// GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the backend!",
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; nothing useful can be done on failure.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Message: message,
		Status:  dto.StatusError,
		Code:    code,
	})
}

// writeMessage writes a success acknowledgement.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.MessageResponse{
		Message: message,
		Status:  dto.StatusSuccess,
	})
}

// decodeJSON reads the request body into dst. On failure it writes the
// error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
		return false
	}

	writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
	return false
}

// idParam parses a positive integer URL parameter. IDs are SERIAL columns,
// so anything beyond int32 cannot name a row.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var inputErr *service.InputError

	switch {
	case errors.As(err, &inputErr):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", inputErr.Message)
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid input")

	// Duplicates are reported as 400 to existing clients.
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "USERNAME_TAKEN", "Username already exists")
	case errors.Is(err, service.ErrPlaceAlreadyInList):
		writeError(w, http.StatusBadRequest, "PLACE_ALREADY_IN_LIST", "Place is already in the list")
	case errors.Is(err, service.ErrAlreadyMember):
		writeError(w, http.StatusBadRequest, "ALREADY_MEMBER", "User is already a member of the list")
	case errors.Is(err, service.ErrLastAdmin):
		writeError(w, http.StatusBadRequest, "LAST_ADMIN", "Cannot remove the last admin of the list")
	case errors.Is(err, service.ErrPlaceExists):
		writeError(w, http.StatusConflict, "PLACE_EXISTS", "Place already exists")

	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")

	case errors.Is(err, service.ErrNotListAdmin):
		writeError(w, http.StatusForbidden, "NOT_LIST_ADMIN", "Only list admins can do this")
	case errors.Is(err, service.ErrNotListMember):
		writeError(w, http.StatusForbidden, "NOT_LIST_MEMBER", "Only list members can do this")

	case errors.Is(err, service.ErrPlaceNotFound):
		writeError(w, http.StatusNotFound, "PLACE_NOT_FOUND", "Place not found")
	case errors.Is(err, service.ErrListNotFound):
		writeError(w, http.StatusNotFound, "LIST_NOT_FOUND", "List not found")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrListPlaceNotFound):
		writeError(w, http.StatusNotFound, "LIST_PLACE_NOT_FOUND", "Place is not in the list")
	case errors.Is(err, service.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, "MEMBER_NOT_FOUND", "User is not a member of the list")

	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
