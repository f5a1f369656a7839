package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"tta-cards/internal/models"
)

// RevealFunc apresenta um booster aberto. Roda com a flag de ocupado ainda
// ativa, então outra abertura durante a revelação é recusada. Revelação
// cancelada não é erro, o pacote já foi registrado.
type RevealFunc func(ctx context.Context, b models.Booster) error

// OpenBooster abre um pacote, registra as cartas na coleção e depois entrega
// o booster pro reveal (que pode ser nil). Só uma abertura por vez; chamada
// concorrente falha com models.ErrPackInProgress.
func (u *UseCases) OpenBooster(ctx context.Context, reveal RevealFunc) (models.Booster, error) {
	if !u.busy.CompareAndSwap(false, true) {
		return models.Booster{}, models.ErrPackInProgress
	}
	defer u.busy.Store(false)

	pools, err := u.Pools(ctx)
	if err != nil {
		return models.Booster{}, err
	}

	// rng só é usado aqui, protegido pela flag de ocupado
	pulls, err := OpenPack(pools, u.rng)
	if err != nil {
		u.logger.Error("pack draw failed", "error", err)
		return models.Booster{}, fmt.Errorf("open pack: %w", err)
	}

	booster := models.Booster{BID: ulid.Make().String(), Booster: pulls}

	if err := u.repos.Collection.Add(ctx, booster.IDs()); err != nil {
		return models.Booster{}, fmt.Errorf("add to collection: %w", err)
	}
	u.logger.Info("pack opened", "pack_id", booster.BID, "rare_slots", rareSlotSummary(pulls))

	if reveal != nil {
		err := reveal(ctx, booster)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// as cartas já estão salvas
			u.logger.Info("reveal interrupted", "pack_id", booster.BID, "error", err)
		default:
			return booster, fmt.Errorf("reveal: %w", err)
		}
	}
	return booster, nil
}

// Opening informa se tem pacote sendo aberto agora
func (u *UseCases) Opening() bool {
	return u.busy.Load()
}

func rareSlotSummary(cards []models.Card) []string {
	var out []string
	for _, c := range cards {
		if c.Rarity != models.Common && c.Rarity != models.Uncommon {
			out = append(out, string(c.Rarity))
		}
	}
	return out
}
