package repositories

import (
	"context"

	"tta-cards/internal/models"
)

// CardRepository é o catálogo só leitura, carregado uma vez
type CardRepository interface {
	LoadCards(ctx context.Context) ([]models.Card, error)
}

// CollectionRepository persiste as quantidades. Read nunca falha; Add só
// incrementa.
type CollectionRepository interface {
	Read(ctx context.Context) models.Collection
	Add(ctx context.Context, ids []string) error
	Clear(ctx context.Context) error
}

type Repositories struct {
	Card       CardRepository
	Collection CollectionRepository
}

func New(card CardRepository, collection CollectionRepository) *Repositories {
	return &Repositories{
		Card:       card,
		Collection: collection,
	}
}
