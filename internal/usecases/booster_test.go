package usecases

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"tta-cards/internal/models"
	"tta-cards/internal/repositories"
	"tta-cards/internal/repositories/collection"
)

type stubCards struct {
	cards []models.Card
	err   error
	calls atomic.Int32
}

func (s *stubCards) LoadCards(context.Context) ([]models.Card, error) {
	s.calls.Add(1)
	return s.cards, s.err
}

func newTestUseCases(cards *stubCards) (*UseCases, *collection.Collection) {
	col := collection.New(collection.NewMemoryBackend(), "", nil)
	repos := repositories.New(cards, col)
	return New(repos, rand.New(rand.NewPCG(5, 6)), nil), col
}

func TestOpenBooster_AddsPullsToCollection(t *testing.T) {
	ctx := context.Background()
	uc, col := newTestUseCases(&stubCards{cards: catalog(2)})

	booster, err := uc.OpenBooster(ctx, nil)
	if err != nil {
		t.Fatalf("OpenBooster: %v", err)
	}
	if booster.BID == "" {
		t.Error("expected a booster id")
	}
	if len(booster.Booster) != models.CardsPerPack {
		t.Fatalf("expected %d cards, got %d", models.CardsPerPack, len(booster.Booster))
	}

	want := map[string]int{}
	for _, id := range booster.IDs() {
		want[id]++
	}
	got := col.Read(ctx)
	for id, n := range want {
		if got[id] != n {
			t.Errorf("%s: expected count %d, got %d", id, n, got[id])
		}
	}
	total := 0
	for _, n := range got {
		total += n
	}
	if total != models.CardsPerPack {
		t.Errorf("expected %d owned copies, got %d", models.CardsPerPack, total)
	}
}

func TestOpenBooster_RefusedWhileRevealing(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(&stubCards{cards: catalog(2)})

	var nestedErr error
	var sawBusy bool
	_, err := uc.OpenBooster(ctx, func(ctx context.Context, _ models.Booster) error {
		sawBusy = uc.Opening()
		_, nestedErr = uc.OpenBooster(ctx, nil)
		return nil
	})
	if err != nil {
		t.Fatalf("OpenBooster: %v", err)
	}
	if !sawBusy {
		t.Error("expected Opening() to report true during reveal")
	}
	if !errors.Is(nestedErr, models.ErrPackInProgress) {
		t.Errorf("expected ErrPackInProgress, got %v", nestedErr)
	}
	if uc.Opening() {
		t.Error("busy flag should be released after the reveal")
	}

	// next open works again
	if _, err := uc.OpenBooster(ctx, nil); err != nil {
		t.Errorf("second OpenBooster: %v", err)
	}
}

func TestOpenBooster_RevealErrorKeepsPulls(t *testing.T) {
	ctx := context.Background()
	uc, col := newTestUseCases(&stubCards{cards: catalog(1)})
	boom := errors.New("terminal closed")

	booster, err := uc.OpenBooster(ctx, func(context.Context, models.Booster) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected reveal error, got %v", err)
	}
	if len(booster.Booster) != models.CardsPerPack {
		t.Error("booster should still be returned")
	}
	if len(col.Read(ctx)) == 0 {
		t.Error("pulls should already be in the collection")
	}
}

func TestOpenBooster_EmptyPoolLeavesCollection(t *testing.T) {
	ctx := context.Background()
	var cards []models.Card
	for _, c := range catalog(1) {
		if c.Rarity != models.Common {
			cards = append(cards, c)
		}
	}
	uc, col := newTestUseCases(&stubCards{cards: cards})

	_, err := uc.OpenBooster(ctx, nil)
	if !errors.Is(err, models.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if len(col.Read(ctx)) != 0 {
		t.Error("a failed open must not touch the collection")
	}
	if uc.Opening() {
		t.Error("busy flag should be released after a failure")
	}
}

func TestOpenBooster_CatalogError(t *testing.T) {
	uc, _ := newTestUseCases(&stubCards{err: models.ErrCatalogLoad})

	if _, err := uc.OpenBooster(context.Background(), nil); !errors.Is(err, models.ErrCatalogLoad) {
		t.Fatalf("expected ErrCatalogLoad, got %v", err)
	}
}

func TestPools_BuiltOnce(t *testing.T) {
	ctx := context.Background()
	stub := &stubCards{cards: catalog(2)}
	uc, _ := newTestUseCases(stub)

	for range 3 {
		if _, err := uc.Pools(ctx); err != nil {
			t.Fatalf("Pools: %v", err)
		}
	}
	if n := stub.calls.Load(); n != 1 {
		t.Errorf("expected catalog loaded once, got %d", n)
	}

	sizes, err := uc.PoolSizes(ctx)
	if err != nil {
		t.Fatalf("PoolSizes: %v", err)
	}
	for i, r := range models.Rarities() {
		if sizes[i].Rarity != r || sizes[i].Size != 2 {
			t.Errorf("row %d: expected %s/2, got %+v", i, r, sizes[i])
		}
	}
}

func TestSummaryAndClear(t *testing.T) {
	ctx := context.Background()
	uc, col := newTestUseCases(&stubCards{cards: []models.Card{
		{ID: "a", Name: "A", Rarity: models.Rare},
		{ID: "b", Name: "B", Rarity: models.Rare},
	}})
	if err := col.Add(ctx, []string{"a", "a", "b"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	sum, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum[2].Total != 3 || sum[2].Unique != 2 {
		t.Errorf("unexpected rare summary %+v", sum[2])
	}

	if err := uc.ClearCollection(ctx); err != nil {
		t.Fatalf("ClearCollection: %v", err)
	}
	if got := uc.Collection(ctx); len(got) != 0 {
		t.Errorf("expected empty collection, got %v", got)
	}
}

func TestOpenBooster_CancelledRevealKeepsPack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	uc, col := newTestUseCases(&stubCards{cards: catalog(1)})

	booster, err := uc.OpenBooster(ctx, func(ctx context.Context, _ models.Booster) error {
		cancel()
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("a cancelled reveal should not fail the open, got %v", err)
	}
	if len(booster.Booster) != models.CardsPerPack {
		t.Error("booster should be returned")
	}
	if len(col.Read(context.Background())) == 0 {
		t.Error("pulls should be in the collection")
	}
}
