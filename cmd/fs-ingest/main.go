// Boundary importer: fetches a federal-state GeoJSON dataset and loads it
// into PostgreSQL for the database-backed reference source.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"fs-api/internal/ingest"
	"fs-api/internal/logger"
	"fs-api/internal/migrate"
	"fs-api/internal/utils"
	"fs-api/pkg/geojson"

	"github.com/joho/godotenv"
)

// Dataset source: SRC_FILE wins over SRC_URL so an operator can stage a
// vetted local copy; the URL default points at the public geoBoundaries
// ADM1 dataset for Germany. Features must either carry the FS/FEDERAL_STATE
// reference attributes or a scheme ingest.NormalizeSchema understands, like
// the geoBoundaries shapeISO/shapeName pair.
func fetchDataset() ([]byte, error) {
	if path := os.Getenv("SRC_FILE"); path != "" {
		return os.ReadFile(path)
	}
	url := os.Getenv("SRC_URL")
	if url == "" {
		url = "https://www.geoboundaries.org/data/geoBoundaries-3_0_0/DEU/ADM1/geoBoundaries-3_0_0-DEU-ADM1.geojson"
	}
	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	b, err := fetchDataset()
	if err != nil {
		l.Error("fetch_error", "err", err)
		os.Exit(1)
	}
	fc, err := geojson.Decode(b)
	if err != nil {
		l.Error("decode_error", "err", err)
		os.Exit(1)
	}
	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := migrate.EnsureSchema(db); err != nil {
		l.Error("schema_error", "err", err)
		os.Exit(1)
	}
	tag := os.Getenv("SOURCE_TAG")
	if tag == "" {
		tag = "geoboundaries"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := ingest.ImportBoundaries(ctx, db, fc, tag); err != nil {
		l.Error("ingest_error", "err", err)
		os.Exit(1)
	}
}
