package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sitescapr/sitescapr-cli/internal/dataset"
	"github.com/sitescapr/sitescapr-cli/internal/store"
)

// openStore opens the configured store backend, runs migrations, and seeds
// the bundled reference dataset when the table is empty.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := openStoreNoSeed(ctx)
	if err != nil {
		return nil, err
	}

	zones, err := st.ListZones(ctx)
	if err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	if len(zones) == 0 {
		inserted, _, err := st.SeedZones(ctx, dataset.Zones())
		if err != nil {
			st.Close() //nolint:errcheck
			return nil, eris.Wrap(err, "store: seed on open")
		}
		zap.L().Info("seeded empty store from reference dataset",
			zap.Int("zones", inserted),
		)
	}

	return st, nil
}

// openStoreNoSeed opens the configured store backend and runs migrations
// without touching the zone table.
func openStoreNoSeed(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.Store.Driver {
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.Path)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}

	return st, nil
}
