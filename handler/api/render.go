package api

import (
	"encoding/json"
	"net/http"
)

func render(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func renderErr(w http.ResponseWriter, status int, msg string) {
	render(w, status, map[string]any{"error": msg})
}
