package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sitescapr/sitescapr-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS zone_indices (
	name                            TEXT PRIMARY KEY,
	latitude                        REAL NOT NULL,
	longitude                       REAL NOT NULL,
	income_index                    REAL NOT NULL,
	foot_traffic_proxy              REAL NOT NULL,
	population_density_index        REAL NOT NULL,
	competition_index               REAL NOT NULL,
	commercial_rent_index           REAL NOT NULL,
	accessibility_penalty           REAL NOT NULL,
	area_growth_trend               REAL NOT NULL,
	vacancy_rate_improvement        REAL NOT NULL,
	infrastructure_investment_index REAL NOT NULL,
	last_updated                    DATETIME NOT NULL DEFAULT (datetime('now')),
	last_news_summary               TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_zone_indices_last_updated ON zone_indices(last_updated);
`

const zoneColumns = `name, latitude, longitude,
	income_index, foot_traffic_proxy, population_density_index,
	competition_index, commercial_rent_index, accessibility_penalty,
	area_growth_trend, vacancy_rate_improvement, infrastructure_investment_index,
	last_updated, last_news_summary`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListZones(ctx context.Context) ([]model.ZoneRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+zoneColumns+` FROM zone_indices ORDER BY name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list zones")
	}
	defer rows.Close()

	var zones []model.ZoneRecord
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan zone")
		}
		zones = append(zones, *z)
	}
	return zones, eris.Wrap(rows.Err(), "sqlite: list zones iterate")
}

func (s *SQLiteStore) GetZone(ctx context.Context, name string) (*model.ZoneRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+zoneColumns+` FROM zone_indices WHERE name = ?`,
		name,
	)
	z, err := scanZone(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get zone %s", name)
	}
	return z, nil
}

func (s *SQLiteStore) SeedZones(ctx context.Context, zones []model.ZoneRecord) (int, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, eris.Wrap(err, "sqlite: begin seed")
	}
	defer tx.Rollback() //nolint:errcheck

	var inserted, skipped int
	now := time.Now().UTC()
	for i := range zones {
		z := &zones[i]
		res, err := tx.ExecContext(ctx,
			`INSERT INTO zone_indices (`+zoneColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(name) DO NOTHING`,
			z.Name, z.Latitude, z.Longitude,
			z.IncomeIndex, z.FootTrafficProxy, z.PopulationDensityIndex,
			z.CompetitionIndex, z.CommercialRentIndex, z.AccessibilityPenalty,
			z.AreaGrowthTrend, z.VacancyRateImprovement, z.InfrastructureInvestmentIndex,
			now, "",
		)
		if err != nil {
			return 0, 0, eris.Wrapf(err, "sqlite: seed zone %s", z.Name)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, 0, eris.Wrap(err, "sqlite: seed rows affected")
		}
		if n > 0 {
			inserted++
		} else {
			skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, eris.Wrap(err, "sqlite: commit seed")
	}
	return inserted, skipped, nil
}

func (s *SQLiteStore) ApplyDelta(ctx context.Context, name string, delta model.IndexDelta, summary string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, eris.Wrap(err, "sqlite: begin delta")
	}
	defer tx.Rollback() //nolint:errcheck

	row := tx.QueryRowContext(ctx,
		`SELECT `+zoneColumns+` FROM zone_indices WHERE name = ?`,
		name,
	)
	z, err := scanZone(row)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "sqlite: load zone %s", name)
	}

	vals := applyDeltas(z.IndexValues(), delta.Values())

	// One UPDATE carries all nine indices plus provenance so a reader can
	// never observe a partially applied delta. Provenance is refreshed
	// even when every delta is zero; the pipeline status read depends on
	// that.
	_, err = tx.ExecContext(ctx,
		`UPDATE zone_indices SET
			income_index = ?, foot_traffic_proxy = ?, population_density_index = ?,
			competition_index = ?, commercial_rent_index = ?, accessibility_penalty = ?,
			area_growth_trend = ?, vacancy_rate_improvement = ?, infrastructure_investment_index = ?,
			last_updated = ?, last_news_summary = ?
		 WHERE name = ?`,
		vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7], vals[8],
		time.Now().UTC(), summary, name,
	)
	if err != nil {
		return false, eris.Wrapf(err, "sqlite: apply delta %s", name)
	}

	if err := tx.Commit(); err != nil {
		return false, eris.Wrap(err, "sqlite: commit delta")
	}
	return true, nil
}

func (s *SQLiteStore) LastPipelineRun(ctx context.Context) (*model.PipelineRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, last_updated, last_news_summary FROM zone_indices
		 WHERE last_news_summary != ''
		 ORDER BY last_updated DESC LIMIT 1`,
	)

	var run model.PipelineRun
	err := row.Scan(&run.Area, &run.LastUpdated, &run.Summary)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: last pipeline run")
	}
	return &run, nil
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanZone(row scannable) (*model.ZoneRecord, error) {
	var z model.ZoneRecord
	err := row.Scan(
		&z.Name, &z.Latitude, &z.Longitude,
		&z.IncomeIndex, &z.FootTrafficProxy, &z.PopulationDensityIndex,
		&z.CompetitionIndex, &z.CommercialRentIndex, &z.AccessibilityPenalty,
		&z.AreaGrowthTrend, &z.VacancyRateImprovement, &z.InfrastructureInvestmentIndex,
		&z.LastUpdated, &z.LastNewsSummary,
	)
	if err != nil {
		return nil, err
	}
	return &z, nil
}
