package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sitescapr/sitescapr-cli/internal/db"
	"github.com/sitescapr/sitescapr-cli/internal/model"
)

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS zone_indices (
	name                            TEXT PRIMARY KEY,
	latitude                        DOUBLE PRECISION NOT NULL,
	longitude                       DOUBLE PRECISION NOT NULL,
	income_index                    DOUBLE PRECISION NOT NULL,
	foot_traffic_proxy              DOUBLE PRECISION NOT NULL,
	population_density_index        DOUBLE PRECISION NOT NULL,
	competition_index               DOUBLE PRECISION NOT NULL,
	commercial_rent_index           DOUBLE PRECISION NOT NULL,
	accessibility_penalty           DOUBLE PRECISION NOT NULL,
	area_growth_trend               DOUBLE PRECISION NOT NULL,
	vacancy_rate_improvement        DOUBLE PRECISION NOT NULL,
	infrastructure_investment_index DOUBLE PRECISION NOT NULL,
	last_updated                    TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_news_summary               TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_zone_indices_last_updated ON zone_indices(last_updated);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) ListZones(ctx context.Context) ([]model.ZoneRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+zoneColumns+` FROM zone_indices ORDER BY name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list zones")
	}
	defer rows.Close()

	var zones []model.ZoneRecord
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan zone")
		}
		zones = append(zones, *z)
	}
	return zones, eris.Wrap(rows.Err(), "postgres: list zones iterate")
}

func (s *PostgresStore) GetZone(ctx context.Context, name string) (*model.ZoneRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+zoneColumns+` FROM zone_indices WHERE name = $1`,
		name,
	)
	z, err := scanZone(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get zone %s", name)
	}
	return z, nil
}

func (s *PostgresStore) SeedZones(ctx context.Context, zones []model.ZoneRecord) (int, int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, 0, eris.Wrap(err, "postgres: begin seed")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var inserted, skipped int
	now := time.Now().UTC()
	for i := range zones {
		z := &zones[i]
		tag, err := tx.Exec(ctx,
			`INSERT INTO zone_indices (`+zoneColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			 ON CONFLICT (name) DO NOTHING`,
			z.Name, z.Latitude, z.Longitude,
			z.IncomeIndex, z.FootTrafficProxy, z.PopulationDensityIndex,
			z.CompetitionIndex, z.CommercialRentIndex, z.AccessibilityPenalty,
			z.AreaGrowthTrend, z.VacancyRateImprovement, z.InfrastructureInvestmentIndex,
			now, "",
		)
		if err != nil {
			return 0, 0, eris.Wrapf(err, "postgres: seed zone %s", z.Name)
		}
		if tag.RowsAffected() > 0 {
			inserted++
		} else {
			skipped++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, eris.Wrap(err, "postgres: commit seed")
	}
	return inserted, skipped, nil
}

func (s *PostgresStore) ApplyDelta(ctx context.Context, name string, delta model.IndexDelta, summary string) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, eris.Wrap(err, "postgres: begin delta")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// FOR UPDATE serializes concurrent deltas against the same zone;
	// deltas on different zones proceed in parallel.
	row := tx.QueryRow(ctx,
		`SELECT `+zoneColumns+` FROM zone_indices WHERE name = $1 FOR UPDATE`,
		name,
	)
	z, err := scanZone(row)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "postgres: load zone %s", name)
	}

	vals := applyDeltas(z.IndexValues(), delta.Values())

	_, err = tx.Exec(ctx,
		`UPDATE zone_indices SET
			income_index = $1, foot_traffic_proxy = $2, population_density_index = $3,
			competition_index = $4, commercial_rent_index = $5, accessibility_penalty = $6,
			area_growth_trend = $7, vacancy_rate_improvement = $8, infrastructure_investment_index = $9,
			last_updated = $10, last_news_summary = $11
		 WHERE name = $12`,
		vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7], vals[8],
		time.Now().UTC(), summary, name,
	)
	if err != nil {
		return false, eris.Wrapf(err, "postgres: apply delta %s", name)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, eris.Wrap(err, "postgres: commit delta")
	}
	return true, nil
}

func (s *PostgresStore) LastPipelineRun(ctx context.Context) (*model.PipelineRun, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT name, last_updated, last_news_summary FROM zone_indices
		 WHERE last_news_summary != ''
		 ORDER BY last_updated DESC LIMIT 1`,
	)

	var run model.PipelineRun
	err := row.Scan(&run.Area, &run.LastUpdated, &run.Summary)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: last pipeline run")
	}
	return &run, nil
}
