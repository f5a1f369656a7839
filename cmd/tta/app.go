package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"tta-cards/internal/config"
	"tta-cards/internal/repositories"
	"tta-cards/internal/repositories/collection"
	"tta-cards/internal/usecases"
	"tta-cards/internal/utils/cardDB"
)

// app guarda as dependências montadas, compartilhadas por todos os comandos
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	catalog  *cardDB.CardDB
	useCases *usecases.UseCases
	closers  []io.Closer
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, seed uint64) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	backend, err := a.openBackend(ctx)
	if err != nil {
		return nil, err
	}

	a.catalog = cardDB.New(cfg.Catalog.Source,
		cardDB.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
		cardDB.WithStableIDs(cfg.Catalog.StableFallbackIDs),
		cardDB.WithLogger(logger),
	)

	repos := repositories.New(a.catalog, collection.New(backend, cfg.Storage.Key, logger))

	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	logger.Debug("rng seeded", "seed", seed)

	a.useCases = usecases.New(repos, rng, logger)
	return a, nil
}

func (a *app) openBackend(ctx context.Context) (collection.Backend, error) {
	st := a.cfg.Storage
	switch st.Driver {
	case config.DriverMemory:
		a.logger.Warn("memory storage selected, the collection is lost on exit")
		return collection.NewMemoryBackend(), nil
	case config.DriverRedis:
		b, err := collection.DialRedis(ctx, st.Redis.Address, st.Redis.Password, st.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, b)
		return b, nil
	case config.DriverSqlite:
		b, err := collection.OpenSqlite(st.Sqlite.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, b)
		return b, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", st.Driver)
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}
