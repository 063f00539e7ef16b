package response

import (
	"encoding/json"
	"net/http"

	"github.com/onk/blogchecker/internal/model"
)

// Response is the envelope used for errors
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// WriteJSON writes any value as JSON with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(body)
}

// WriteEntries writes the filtered entries as a bare JSON array.
// A nil slice is written as [].
func WriteEntries(w http.ResponseWriter, entries []model.FilteredEntry) error {
	if entries == nil {
		entries = []model.FilteredEntry{}
	}
	return WriteJSON(w, http.StatusOK, entries)
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, Response{
		Status: "error",
		Error:  message,
	})
}

func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message)
}

func WriteMethodNotAllowed(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusMethodNotAllowed, message)
}

func WriteUnprocessable(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnprocessableEntity, message)
}

func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message)
}

func WriteBadGateway(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadGateway, message)
}

func WriteGatewayTimeout(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusGatewayTimeout, message)
}
