package usecases

import (
	"fmt"

	"tta-cards/internal/models"
)

// BuildPools agrupa as cartas por raridade. Carta com raridade desconhecida
// fica de fora; as cinco raridades sempre aparecem, mesmo vazias.
func BuildPools(cards []models.Card) models.Pools {
	pools := make(models.Pools, len(models.Rarities()))
	for _, r := range models.Rarities() {
		pools[r] = []models.Card{}
	}
	for _, c := range cards {
		if !c.Rarity.Valid() {
			continue
		}
		pools[c.Rarity] = append(pools[c.Rarity], c)
	}
	return pools
}

// RollRareSlot sorteia a raridade de um slot raro:
// 1% ultra x rare, 10% legendary, 89% rare.
func RollRareSlot(rng RNG) models.CardRarity {
	r := rng.Float64()
	switch {
	case r < 0.01:
		return models.UltraXRare
	case r < 0.11:
		return models.Legendary
	default:
		return models.Rare
	}
}

// OpenPack sorteia 8 comuns, 5 incomuns e 2 slots raros, com reposição,
// e devolve embaralhado.
func OpenPack(pools models.Pools, rng RNG) ([]models.Card, error) {
	pulls := make([]models.Card, 0, models.CardsPerPack)

	draw := func(r models.CardRarity, n int) error {
		for range n {
			c, err := pickOne(pools, r, rng)
			if err != nil {
				return err
			}
			pulls = append(pulls, c)
		}
		return nil
	}

	if err := draw(models.Common, models.CommonsPerPack); err != nil {
		return nil, err
	}
	if err := draw(models.Uncommon, models.UncommonsPerPack); err != nil {
		return nil, err
	}
	for range models.RareSlotsPerPack {
		if err := draw(RollRareSlot(rng), 1); err != nil {
			return nil, err
		}
	}

	shuffle(pulls, rng)
	return pulls, nil
}

func pickOne(pools models.Pools, r models.CardRarity, rng RNG) (models.Card, error) {
	pool := pools[r]
	if len(pool) == 0 {
		return models.Card{}, fmt.Errorf("%w: %s", models.ErrEmptyPool, r)
	}
	return pool[rng.IntN(len(pool))], nil
}

// Fisher-Yates, no lugar
func shuffle(cards []models.Card, rng RNG) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
