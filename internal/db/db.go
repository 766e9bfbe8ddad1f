// Package db persists corridor analysis runs to a local sqlite database.
//
// Each run stores the summary row plus its per-station results and the
// detected obstacles, so earlier analyses can be listed and re-inspected
// without re-reading the height raster.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned by lookup methods when no run has the given id.
var ErrRunNotFound = errors.New("run not found")

type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the sqlite database at path and applies all
// pending schema migrations.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	d := &DB{db}
	if err := d.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// Run is the stored form of one corridor analysis.
type Run struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Profile         string    `json:"profile"`
	BladeLength     float64   `json:"blade_length_m"`
	VehicleWidth    float64   `json:"vehicle_width_m"`
	RequiredHeight  float64   `json:"required_height_m"`
	Spacing         float64   `json:"spacing_m"`
	TotalLength     float64   `json:"total_length_m"`
	StationCount    int       `json:"station_count"`
	MaxWidth        float64   `json:"max_width_m"`
	ObstacleCount   int       `json:"obstacle_count"`
	WorstExceedance float64   `json:"worst_exceedance_m"`
	NoDataStations  int       `json:"no_data_stations"`
	Cancelled       bool      `json:"cancelled"`
	EnvelopeGeoJSON string    `json:"envelope_geojson,omitempty"`

	Stations  []StationRow  `json:"stations,omitempty"`
	Obstacles []ObstacleRow `json:"obstacles,omitempty"`
}

// Passable reports whether the stored run found the corridor clear.
func (r *Run) Passable() bool {
	return r.ObstacleCount == 0 && !r.Cancelled
}

// StationRow is one sampled station of a stored run. MaxHeight and
// MeanHeight are nil when the raster held no usable value there.
// CurveRadius uses -1 to mean a straight (infinite-radius) station.
type StationRow struct {
	Station     int      `json:"station"`
	Distance    float64  `json:"distance_m"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	CurveRadius float64  `json:"curve_radius_m"`
	HalfWidth   float64  `json:"half_width_m"`
	Sweep       float64  `json:"sweep_m"`
	MaxHeight   *float64 `json:"max_height_m,omitempty"`
	MeanHeight  *float64 `json:"mean_height_m,omitempty"`
	ClearanceOK bool     `json:"clearance_ok"`
}

// ObstacleRow is one blocked station of a stored run.
type ObstacleRow struct {
	Station    int     `json:"station"`
	Distance   float64 `json:"distance_m"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	MaxHeight  float64 `json:"max_height_m"`
	Exceedance float64 `json:"exceedance_m"`
}

// InsertRun stores a run with its stations and obstacles in one transaction.
func (db *DB) InsertRun(ctx context.Context, run *Run) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run insert: %w", err)
	}
	defer tx.Rollback()

	envelope := sql.NullString{String: run.EnvelopeGeoJSON, Valid: run.EnvelopeGeoJSON != ""}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, profile, blade_length, vehicle_width, required_height,
			spacing, total_length, station_count, max_width,
			obstacle_count, worst_exceedance, no_data_stations,
			cancelled, envelope_geojson
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Profile, run.BladeLength, run.VehicleWidth, run.RequiredHeight,
		run.Spacing, run.TotalLength, run.StationCount, run.MaxWidth,
		run.ObstacleCount, run.WorstExceedance, run.NoDataStations,
		run.Cancelled, envelope,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stationStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stations (
			run_id, station, distance, x, y, curve_radius,
			half_width, sweep, max_height, mean_height, clearance_ok
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare station insert: %w", err)
	}
	defer stationStmt.Close()

	for _, st := range run.Stations {
		_, err := stationStmt.ExecContext(ctx,
			run.ID, st.Station, st.Distance, st.X, st.Y, st.CurveRadius,
			st.HalfWidth, st.Sweep, nullFloat(st.MaxHeight), nullFloat(st.MeanHeight),
			st.ClearanceOK,
		)
		if err != nil {
			return fmt.Errorf("insert station %d of run %s: %w", st.Station, run.ID, err)
		}
	}

	for _, ob := range run.Obstacles {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO obstacles (
				run_id, station, distance, x, y, max_height, exceedance
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, ob.Station, ob.Distance, ob.X, ob.Y, ob.MaxHeight, ob.Exceedance,
		)
		if err != nil {
			return fmt.Errorf("insert obstacle at station %d of run %s: %w", ob.Station, run.ID, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns up to limit run summaries, newest first. Stations and
// obstacles are not populated; use GetRun for the full record.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, created_at, profile, blade_length, vehicle_width,
		       required_height, spacing, total_length, station_count,
		       max_width, obstacle_count, worst_exceedance,
		       no_data_stations, cancelled
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		err := rows.Scan(&r.ID, &r.CreatedAt, &r.Profile, &r.BladeLength,
			&r.VehicleWidth, &r.RequiredHeight, &r.Spacing, &r.TotalLength,
			&r.StationCount, &r.MaxWidth, &r.ObstacleCount, &r.WorstExceedance,
			&r.NoDataStations, &r.Cancelled)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns the full stored run, including stations and obstacles.
func (db *DB) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	var envelope sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT id, created_at, profile, blade_length, vehicle_width,
		       required_height, spacing, total_length, station_count,
		       max_width, obstacle_count, worst_exceedance,
		       no_data_stations, cancelled, envelope_geojson
		FROM runs WHERE id = ?`, id).Scan(
		&r.ID, &r.CreatedAt, &r.Profile, &r.BladeLength, &r.VehicleWidth,
		&r.RequiredHeight, &r.Spacing, &r.TotalLength, &r.StationCount,
		&r.MaxWidth, &r.ObstacleCount, &r.WorstExceedance,
		&r.NoDataStations, &r.Cancelled, &envelope)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	r.EnvelopeGeoJSON = envelope.String

	if r.Stations, err = db.runStations(ctx, id); err != nil {
		return nil, err
	}
	if r.Obstacles, err = db.runObstacles(ctx, id); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRun removes a run and, via cascading foreign keys, its stations
// and obstacles.
func (db *DB) DeleteRun(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

func (db *DB) runStations(ctx context.Context, id string) ([]StationRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT station, distance, x, y, curve_radius, half_width, sweep,
		       max_height, mean_height, clearance_ok
		FROM stations WHERE run_id = ? ORDER BY station`, id)
	if err != nil {
		return nil, fmt.Errorf("stations of run %s: %w", id, err)
	}
	defer rows.Close()

	var stations []StationRow
	for rows.Next() {
		var st StationRow
		var maxH, meanH sql.NullFloat64
		err := rows.Scan(&st.Station, &st.Distance, &st.X, &st.Y, &st.CurveRadius,
			&st.HalfWidth, &st.Sweep, &maxH, &meanH, &st.ClearanceOK)
		if err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		if maxH.Valid {
			v := maxH.Float64
			st.MaxHeight = &v
		}
		if meanH.Valid {
			v := meanH.Float64
			st.MeanHeight = &v
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

func (db *DB) runObstacles(ctx context.Context, id string) ([]ObstacleRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT station, distance, x, y, max_height, exceedance
		FROM obstacles WHERE run_id = ? ORDER BY station`, id)
	if err != nil {
		return nil, fmt.Errorf("obstacles of run %s: %w", id, err)
	}
	defer rows.Close()

	var obstacles []ObstacleRow
	for rows.Next() {
		var ob ObstacleRow
		err := rows.Scan(&ob.Station, &ob.Distance, &ob.X, &ob.Y, &ob.MaxHeight, &ob.Exceedance)
		if err != nil {
			return nil, fmt.Errorf("scan obstacle: %w", err)
		}
		obstacles = append(obstacles, ob)
	}
	return obstacles, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil || math.IsNaN(*v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
