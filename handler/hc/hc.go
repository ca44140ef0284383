package hc

import (
	"encoding/json"
	"net/http"

	"github.com/thaongo/openbank-hub/core"
)

func Handler(version string, accounts core.AccountStore) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"banks":      accounts.Banks(r.Context()),
			"totalUsers": accounts.TotalUsers(r.Context()),
			"version":    version,
		})
	}

	return http.HandlerFunc(fn)
}
