package models

// cartas por slot
const (
	CommonsPerPack   = 8
	UncommonsPerPack = 5
	RareSlotsPerPack = 2
	CardsPerPack     = CommonsPerPack + UncommonsPerPack + RareSlotsPerPack
)

// Pools agrupa o catálogo por raridade. As cinco raridades sempre existem.
type Pools map[CardRarity][]Card

// Empty retorna as raridades sem carta, em ordem
func (p Pools) Empty() []CardRarity {
	var out []CardRarity
	for _, r := range Rarities() {
		if len(p[r]) == 0 {
			out = append(out, r)
		}
	}
	return out
}

// Size é o número de cartas somando todos os pools
func (p Pools) Size() int {
	n := 0
	for _, cards := range p {
		n += len(cards)
	}
	return n
}

// Booster é o resultado de uma abertura de pacote
type Booster struct {
	BID     string `json:"id"`
	Booster []Card `json:"cards"`
}

// IDs retorna os ids das cartas na ordem da revelação
func (b Booster) IDs() []string {
	ids := make([]string, len(b.Booster))
	for i, c := range b.Booster {
		ids[i] = c.ID
	}
	return ids
}

type PoolSize struct {
	Rarity CardRarity `json:"rarity"`
	Size   int        `json:"size"`
}
