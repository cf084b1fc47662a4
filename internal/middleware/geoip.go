// Client-origin enrichment from a local MaxMind database.
// Background: access logs for a boundary service are more useful with the
// caller's country/city attached; resolution is purely local, no outbound
// calls, and a missing database disables the feature.
package middleware

import (
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"fs-api/internal/logger"

	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
)

var (
	geoOnce sync.Once
	geoDB   *geoip2.Reader
)

// openGeoDB opens GEOIP_DB_PATH once per process. The raw reader is opened
// first to surface the build epoch in the log before the typed reader takes
// over.
func openGeoDB() *geoip2.Reader {
	geoOnce.Do(func() {
		path := os.Getenv("GEOIP_DB_PATH")
		if path == "" {
			return
		}
		raw, err := maxminddb.Open(path)
		if err != nil {
			logger.L().Error("geoip_open_error", "path", path, "err", err)
			return
		}
		built := time.Unix(int64(raw.Metadata.BuildEpoch), 0).UTC()
		logger.L().Info("geoip_db_ok", "type", raw.Metadata.DatabaseType, "built", built.Format("2006-01-02"))
		_ = raw.Close()
		db, err := geoip2.Open(path)
		if err != nil {
			logger.L().Error("geoip_open_error", "path", path, "err", err)
			return
		}
		geoDB = db
	})
	return geoDB
}

// GeoEnrich logs the caller's origin when a GeoIP database is configured.
// Lookup failures never block the request.
func GeoEnrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if db := openGeoDB(); db != nil {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if ip := net.ParseIP(host); ip != nil {
				if rec, err := db.City(ip); err == nil {
					logger.L().Debug("client_geo",
						"ip", host,
						"country", rec.Country.IsoCode,
						"city", rec.City.Names["en"],
					)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
