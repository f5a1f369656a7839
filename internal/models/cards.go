package models

import "strings"

// CardRarity é a raridade da carta. Valores desconhecidos ficam na carta como
// vieram mas nunca entram num pool.
type CardRarity string

const (
	Common     CardRarity = "common"
	Uncommon   CardRarity = "uncommon"
	Rare       CardRarity = "rare"
	Legendary  CardRarity = "legendary"
	UltraXRare CardRarity = "ultra x rare"
)

// Rarities retorna as cinco raridades da menor pra maior
func Rarities() []CardRarity {
	return []CardRarity{Common, Uncommon, Rare, Legendary, UltraXRare}
}

// ParseRarity deixa s minúsculo e diz se é uma das raridades
func ParseRarity(s string) (CardRarity, bool) {
	r := CardRarity(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r CardRarity) Valid() bool {
	switch r {
	case Common, Uncommon, Rare, Legendary, UltraXRare:
		return true
	}
	return false
}

// Card é uma entrada do catálogo já normalizada. Não muda depois da carga.
type Card struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Rarity    CardRarity `json:"rarity"`
	ImageFile string     `json:"image_file"`
	Image     string     `json:"image"`
	ImageURL  string     `json:"image_url"`
}

// RawCard é o registro como aparece no documento do catálogo; todo campo é
// opcional e pode ter qualquer tipo escalar.
type RawCard struct {
	ID           any
	Name         any
	Rarity       any
	ImageFile    any
	ImageFileAlt any
	Image        any
}
