package httpx

import (
	"encoding/json"
	"net/http"
)

// NoCache marks a response as uncacheable. Applied to every page that can
// reflect session state, so a shared cache never serves one user's view to
// another.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteJSON serializes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
