package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/siteworkhq/sitework/internal/apperr"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeErr classifies err and renders it. Operational errors keep their safe
// message; everything else is logged server-side and masked as a generic
// internal error so schema or logic details never leak to callers.
func writeErr(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal && e.Err != nil {
		log.Printf("internal error: %v", e.Err)
	}
	writeError(w, e.HTTPStatus(), e.Message, e.Code)
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
