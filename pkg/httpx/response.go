package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// WriteJSON writes v as a non-cacheable JSON response with the given status.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteStatus writes the identity provider error shape
// {"status":code,"message":message}.
func WriteStatus(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}{code, message})
}

// NoCache marks the response as non-cacheable. Required for anything
// carrying a credential.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// ParseSpaceDelimitedFields splits a space separated list such as an OAuth
// scope parameter. Blank input yields nil.
func ParseSpaceDelimitedFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
