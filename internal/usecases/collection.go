package usecases

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tta-cards/internal/models"
)

// Collection retorna as quantidades salvas
func (u *UseCases) Collection(ctx context.Context) models.Collection {
	return u.repos.Collection.Read(ctx)
}

// ClearCollection apaga a coleção inteira
func (u *UseCases) ClearCollection(ctx context.Context) error {
	if err := u.repos.Collection.Clear(ctx); err != nil {
		return err
	}
	u.logger.Info("collection cleared")
	return nil
}

// Summary agrega a coleção atual por raridade
func (u *UseCases) Summary(ctx context.Context) ([]models.TierSummary, error) {
	cards, err := u.repos.Card.LoadCards(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(cards, u.repos.Collection.Read(ctx)), nil
}

// ListCards aplica q no catálogo contra a coleção atual
func (u *UseCases) ListCards(ctx context.Context, q models.ListQuery) ([]models.ListEntry, error) {
	cards, err := u.repos.Card.LoadCards(ctx)
	if err != nil {
		return nil, err
	}
	return List(cards, u.repos.Collection.Read(ctx), q), nil
}

// Summarize retorna, por raridade, o total de cópias e quantas cartas
// distintas a coleção tem. Cartas fora das cinco raridades são ignoradas.
func Summarize(cards []models.Card, col models.Collection) []models.TierSummary {
	idx := make(map[models.CardRarity]int, len(models.Rarities()))
	out := make([]models.TierSummary, 0, len(models.Rarities()))
	for i, r := range models.Rarities() {
		idx[r] = i
		out = append(out, models.TierSummary{Rarity: r})
	}

	for _, c := range cards {
		i, ok := idx[c.Rarity]
		if !ok {
			continue
		}
		n := col.Count(c.ID)
		out[i].Total += n
		if n > 0 {
			out[i].Unique++
		}
	}
	return out
}

// List filtra por raridade, depois pela busca no nome (sem diferenciar
// maiúsculas), depois pelo filtro de possuídas, e ordena. Empate de quantidade
// desempata pelo nome crescente.
func List(cards []models.Card, col models.Collection, q models.ListQuery) []models.ListEntry {
	rarity := q.Rarity
	if rarity == "" {
		rarity = models.Common
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.ListEntry, 0)
	for _, c := range cards {
		if c.Rarity != rarity {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		n := col.Count(c.ID)
		if q.OwnedOnly && n <= 0 {
			continue
		}
		out = append(out, models.ListEntry{Card: c, Count: n})
	}

	sortEntries(out, q.Sort)
	return out
}

func sortEntries(entries []models.ListEntry, mode models.SortMode) {
	// Collator tem buffers internos, um por chamada
	coll := collate.New(language.Und)
	byName := func(a, b models.ListEntry) int {
		return coll.CompareString(a.Card.Name, b.Card.Name)
	}

	switch mode {
	case models.SortCountDesc:
		slices.SortStableFunc(entries, func(a, b models.ListEntry) int {
			if a.Count != b.Count {
				return b.Count - a.Count
			}
			return byName(a, b)
		})
	case models.SortCountAsc:
		slices.SortStableFunc(entries, func(a, b models.ListEntry) int {
			if a.Count != b.Count {
				return a.Count - b.Count
			}
			return byName(a, b)
		})
	case models.SortNameDesc:
		slices.SortStableFunc(entries, func(a, b models.ListEntry) int {
			return byName(b, a)
		})
	default:
		slices.SortStableFunc(entries, byName)
	}
}

// ParseSortMode converte o valor de ordenação do usuário; qualquer coisa
// desconhecida ordena por nome crescente.
func ParseSortMode(s string) models.SortMode {
	switch m := models.SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case models.SortNameDesc, models.SortCountDesc, models.SortCountAsc:
		return m
	}
	return models.SortNameAsc
}
