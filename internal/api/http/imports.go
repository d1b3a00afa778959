package http

import (
	"encoding/json"
	"net/http"

	"github.com/mind-engage/qbank/internal/importlog"
)

// RecentImportsHandler lists the newest import_log entries, most
// recent first (?limit=N).
func RecentImportsHandler(repo *importlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := repo.Recent(r.Context(), parseIntDefault(r.URL.Query().Get("limit"), 50))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entries)
	}
}
