package usecases

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"tta-cards/internal/models"
	"tta-cards/internal/repositories"
)

type UseCases struct {
	repos  *repositories.Repositories
	rng    RNG
	logger *slog.Logger

	// ativa enquanto um pacote é aberto e revelado
	busy atomic.Bool

	poolsMU sync.Mutex
	pools   models.Pools
}

func New(repos *repositories.Repositories, rng RNG, logger *slog.Logger) *UseCases {
	if logger == nil {
		logger = slog.Default()
	}
	return &UseCases{
		repos:  repos,
		rng:    rng,
		logger: logger,
	}
}

// Cards retorna o catálogo
func (u *UseCases) Cards(ctx context.Context) ([]models.Card, error) {
	return u.repos.Card.LoadCards(ctx)
}

// Pools retorna o catálogo agrupado por raridade. Montado uma vez por carga
// bem-sucedida; cada raridade vazia gera um warn nessa hora.
func (u *UseCases) Pools(ctx context.Context) (models.Pools, error) {
	u.poolsMU.Lock()
	defer u.poolsMU.Unlock()

	if u.pools != nil {
		return u.pools, nil
	}

	cards, err := u.repos.Card.LoadCards(ctx)
	if err != nil {
		return nil, err
	}

	pools := BuildPools(cards)
	for _, r := range pools.Empty() {
		u.logger.Warn("no cards found for rarity", "rarity", r)
	}
	if dropped := len(cards) - pools.Size(); dropped > 0 {
		u.logger.Debug("cards without a known rarity left out of pools", "count", dropped)
	}

	u.pools = pools
	return pools, nil
}

// PoolSizes retorna o tamanho de cada pool na ordem das raridades
func (u *UseCases) PoolSizes(ctx context.Context) ([]models.PoolSize, error) {
	pools, err := u.Pools(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PoolSize, 0, len(models.Rarities()))
	for _, r := range models.Rarities() {
		out = append(out, models.PoolSize{Rarity: r, Size: len(pools[r])})
	}
	return out, nil
}
