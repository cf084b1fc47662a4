package api

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"

	"fs-api/internal/logger"
	"fs-api/internal/refdata"
	"fs-api/internal/store"

	"github.com/redis/go-redis/v9"
)

// Request bodies are small polygon documents; anything larger is rejected
// before decoding.
const maxBodyBytes = 8 << 20

// BuildRoutes returns a mux with the API endpoints. A separate ServeMux keeps
// the entrypoint free to mount it under any base path.
// Constraints: st and rc may be nil; stats then report zeros and caching is
// skipped.
func BuildRoutes(st *store.Store, rc *redis.Client, ref *refdata.RefLayer) *http.ServeMux {
	cacheTTL := 0
	if s := os.Getenv("CHECK_CACHE_TTL_S"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cacheTTL = n
		}
	}

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		out, err := CheckGeoJSON(r.Context(), rc, ref, body, cacheTTL)
		if err != nil {
			logger.L().Debug("check_bad_request", "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if st != nil {
			aoi := r.URL.Query().Get("aoi")
			if aoi == "" {
				aoi = "adhoc"
			}
			codes, names := splitReport(out)
			if err := st.InsertCheck(r.Context(), aoi, codes, names); err != nil {
				logger.L().Error("check_audit_error", "err", err)
			}
			_ = st.IncrStats(r.Context())
		}
		writeJSON(w, out)
	})

	apiMux.HandleFunc("/states", func(w http.ResponseWriter, r *http.Request) {
		type stateInfo struct {
			Code string `json:"fs"`
			Name string `json:"federal_state"`
		}
		out := make([]stateInfo, 0, len(ref.States))
		for _, s := range ref.States {
			out = append(out, stateInfo{Code: s.Code, Name: s.Name})
		}
		writeJSON(w, out)
	})

	apiMux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		var t store.Totals
		if st != nil {
			t, _ = st.GetTotals(r.Context())
		}
		writeJSON(w, map[string]any{"total": t.Total, "today": t.Today})
	})

	return apiMux
}

// No-match audits keep empty report columns; the sentinel stays an output
// concern.
func splitReport(out *CheckResponse) ([]string, []string) {
	var codes, names []string
	for _, m := range out.Matches {
		codes = append(codes, m.Code)
		names = append(names, m.Name)
	}
	return codes, names
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	_ = json.NewEncoder(w).Encode(v)
}
