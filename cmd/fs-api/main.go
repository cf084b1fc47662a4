// Service entrypoint: reads configuration, wires dependencies and serves the
// classification API; route registration lives in internal/api.
package main

import (
	"context"
	"net/http"
	"os"

	"fs-api/internal/api"
	"fs-api/internal/logger"
	"fs-api/internal/mapset"
	"fs-api/internal/metrics"
	"fs-api/internal/middleware"
	"fs-api/internal/migrate"
	"fs-api/internal/refdata"
	"fs-api/internal/store"
	"fs-api/internal/utils"
	"fs-api/internal/version"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	l.Info("fs_api_start", "version", version.Version, "commit", version.Commit)

	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}

	// Postgres is optional; without it checks are served but not audited.
	var st *store.Store
	if os.Getenv("PG_ENABLE") == "true" {
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			l.Error("db_open_error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			l.Error("db_ping_error", "err", err)
			os.Exit(1)
		}
		if err := migrate.EnsureSchema(db); err != nil {
			l.Error("schema_error", "err", err)
			os.Exit(1)
		}
		st = store.AttachDB(db)
		l.Info("db_open_ok")
	} else {
		l.Info("db_disabled")
	}

	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else if err := rc.Ping(context.Background()).Err(); err != nil {
		l.Error("redis_ping_error", "err", err)
	} else {
		l.Info("redis_ping_ok")
	}

	ref, err := loadReference(st)
	if err != nil {
		l.Error("refdata_load_error", "err", err)
		os.Exit(1)
	}
	metrics.RefReloadsTotal.Inc()
	if m, err := refdata.LoadManifest(); err == nil {
		if unknown := m.UnknownCodes(ref); len(unknown) > 0 {
			l.Warn("ref_unknown_codes", "codes", unknown)
		}
	}
	l.Info("refdata_ready", "states", len(ref.States))

	mux := http.NewServeMux()
	apiMux := api.BuildRoutes(st, rc, ref)
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler)
	l.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		l.Error("serve_error", "err", err)
		os.Exit(1)
	}
}

// loadReference builds the reference layer from the configured source:
// REF_SOURCE=db reads Postgres, anything else reads the mapset layer.
func loadReference(st *store.Store) (*refdata.RefLayer, error) {
	if os.Getenv("REF_SOURCE") == "db" && st != nil {
		return refdata.FromStore(context.Background(), st)
	}
	ms, err := mapset.Open(mapset.DefaultDir())
	if err != nil {
		return nil, err
	}
	ref := os.Getenv("FS_BOUNDARIES")
	if ref == "" {
		ref = "federal_states"
	}
	fc, err := ms.ReadLayer(ref)
	if err != nil {
		return nil, err
	}
	return refdata.FromLayer(fc)
}
