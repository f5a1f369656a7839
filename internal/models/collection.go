package models

// Collection mapeia id da carta pra quantidade
type Collection map[string]int

// Count retorna a quantidade do id, 0 se não tiver
func (c Collection) Count(id string) int {
	return c[id]
}

// TierSummary agrega a coleção de uma raridade
type TierSummary struct {
	Rarity CardRarity `json:"rarity"`
	Total  int        `json:"total"`
	Unique int        `json:"unique"`
}

type SortMode string

const (
	SortNameAsc   SortMode = "name-asc"
	SortNameDesc  SortMode = "name-desc"
	SortCountDesc SortMode = "count-desc"
	SortCountAsc  SortMode = "count-asc"
)

// ListQuery guarda os controles da listagem: aba, busca, só possuídas e ordenação
type ListQuery struct {
	Rarity    CardRarity
	Search    string
	OwnedOnly bool
	Sort      SortMode
}

// ListEntry é uma linha da listagem
type ListEntry struct {
	Card  Card `json:"card"`
	Count int  `json:"count"`
}
