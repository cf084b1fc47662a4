// Package store: PostgreSQL access layer for boundary data, check audit
// records and usage statistics.
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fs-api/internal/logger"

	"github.com/google/uuid"
)

// Store holds the connection pool and provides query/audit access.
type Store struct {
	db *sql.DB
}

// AttachDB wraps a pool opened by utils.OpenPostgresFromEnv; the store never
// opens or closes connections itself.
func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// StateRow is one federal state with its geometry parts as raw GeoJSON
// geometry documents, ordered by part index.
type StateRow struct {
	ID         int
	Code       string
	Name       string
	Geometries []string
}

// LoadStates reads the full reference set in stable record order.
func (s *Store) LoadStates(ctx context.Context) ([]StateRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, fs, federal_state FROM _fs_states ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var states []StateRow
	index := map[int]int{}
	for rows.Next() {
		var r StateRow
		if err := rows.Scan(&r.ID, &r.Code, &r.Name); err != nil {
			return nil, err
		}
		index[r.ID] = len(states)
		states = append(states, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	grows, err := s.db.QueryContext(ctx, `SELECT state_id, geom FROM _fs_geometries ORDER BY state_id, part`)
	if err != nil {
		return nil, err
	}
	defer grows.Close()
	for grows.Next() {
		var sid int
		var geom string
		if err := grows.Scan(&sid, &geom); err != nil {
			return nil, err
		}
		if i, ok := index[sid]; ok {
			states[i].Geometries = append(states[i].Geometries, geom)
		}
	}
	if err := grows.Err(); err != nil {
		return nil, err
	}
	logger.L().Debug("states_load_ok", "count", len(states))
	return states, nil
}

// UpsertState writes one dictionary row and returns its id.
func (s *Store) UpsertState(ctx context.Context, tx *sql.Tx, code, name string) (int, error) {
	var id int
	err := tx.QueryRowContext(ctx,
		`INSERT INTO _fs_states(fs, federal_state) VALUES($1,$2)
		 ON CONFLICT (fs) DO UPDATE SET federal_state=EXCLUDED.federal_state
		 RETURNING id`, code, name).Scan(&id)
	return id, err
}

// ReplaceGeometries swaps the geometry parts of one state inside the caller's
// transaction.
func (s *Store) ReplaceGeometries(ctx context.Context, tx *sql.Tx, stateID int, geoms []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM _fs_geometries WHERE state_id=$1`, stateID); err != nil {
		return err
	}
	for i, g := range geoms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO _fs_geometries(state_id, part, geom) VALUES($1,$2,$3)`,
			stateID, i, g); err != nil {
			return err
		}
	}
	return nil
}

// InsertCheck appends one audit record for a served classification.
func (s *Store) InsertCheck(ctx context.Context, aoi string, codes, names []string) error {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO _fs_checks(id, aoi, fs, federal_state, created_at) VALUES($1,$2,$3,$4,$5)`,
		id.String(), aoi, strings.Join(codes, ","), strings.Join(names, ","), time.Now().UTC())
	if err == nil {
		logger.L().Debug("check_audit_ok", "id", id.String(), "aoi", aoi)
	}
	return err
}

// IncrStats bumps the served-check counters.
func (s *Store) IncrStats(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE _fs_stats_total SET total_checks = total_checks + 1 WHERE id = 1`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO _fs_stats_daily(day, checks) VALUES(CURRENT_DATE, 1)
		 ON CONFLICT (day) DO UPDATE SET checks = _fs_stats_daily.checks + 1`)
	return err
}

type Totals struct {
	Total int64
	Today int64
}

// GetTotals reads the served-check counters.
func (s *Store) GetTotals(ctx context.Context) (Totals, error) {
	var t Totals
	if err := s.db.QueryRowContext(ctx,
		`SELECT total_checks FROM _fs_stats_total WHERE id = 1`).Scan(&t.Total); err != nil && err != sql.ErrNoRows {
		return t, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT checks FROM _fs_stats_daily WHERE day = CURRENT_DATE`).Scan(&t.Today); err != nil && err != sql.ErrNoRows {
		return t, err
	}
	return t, nil
}
