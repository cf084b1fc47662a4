package migrate

import (
	"database/sql"

	"fs-api/internal/logger"
)

// EnsureSchema creates the tables and indexes on first run so ingest and
// queries can proceed.
// Constraints: IF NOT EXISTS everywhere to coexist with prior structures;
// only the minimal required schema is created.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _fs_states (
            id SERIAL PRIMARY KEY,
            fs TEXT NOT NULL,
            federal_state TEXT NOT NULL
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_fs_code ON _fs_states(fs)`,
		`CREATE TABLE IF NOT EXISTS _fs_geometries (
            id SERIAL PRIMARY KEY,
            state_id INT NOT NULL REFERENCES _fs_states(id),
            part INT NOT NULL DEFAULT 0,
            geom TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_fs_geom_state ON _fs_geometries(state_id, part)`,
		`CREATE TABLE IF NOT EXISTS _fs_checks (
            id UUID PRIMARY KEY,
            aoi TEXT NOT NULL,
            fs TEXT NOT NULL,
            federal_state TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_fs_checks_created ON _fs_checks(created_at)`,
		`CREATE TABLE IF NOT EXISTS _fs_stats_total (
            id INT PRIMARY KEY,
            total_checks BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS _fs_stats_daily (
            day DATE PRIMARY KEY,
            checks BIGINT NOT NULL DEFAULT 0
        )`,
		`INSERT INTO _fs_stats_total(id, total_checks)
         VALUES(1, 0)
         ON CONFLICT (id) DO NOTHING`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
