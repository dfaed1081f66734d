package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody matches the handler error envelope.
type errorBody struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
}

// writeJSONError writes an error in the API's JSON envelope.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Message: message,
		Status:  "error",
		Code:    code,
	})
}
