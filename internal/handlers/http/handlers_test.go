package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tta-cards/internal/models"
	"tta-cards/internal/repositories"
	"tta-cards/internal/repositories/collection"
	"tta-cards/internal/usecases"
)

type stubCards struct {
	cards []models.Card
	err   error
}

func (s stubCards) LoadCards(context.Context) ([]models.Card, error) {
	return s.cards, s.err
}

func testCatalog() []models.Card {
	var cards []models.Card
	for _, r := range models.Rarities() {
		for i := range 2 {
			cards = append(cards, models.Card{
				ID:     fmt.Sprintf("%s-%d", r, i),
				Name:   fmt.Sprintf("Card %d", i),
				Rarity: r,
			})
		}
	}
	return cards
}

func newTestRouter(t *testing.T, cards stubCards, opts Options) (*gin.Engine, *collection.Collection) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	col := collection.New(collection.NewMemoryBackend(), "", nil)
	uc := usecases.New(repositories.New(cards, col), rand.New(rand.NewPCG(9, 9)), nil)
	return New(uc, opts, nil).Router(), col
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, stubCards{cards: testCatalog()}, Options{})

	rec := do(r, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody[map[string]any](t, rec)
	if body["status"] != "OK" || body["cards"] != float64(10) || body["opening"] != false {
		t.Errorf("unexpected body %v", body)
	}
	if rec.Header().Get(headerRequestID) == "" {
		t.Error("expected a request id header")
	}
}

func TestHealth_CatalogDown(t *testing.T) {
	r, _ := newTestRouter(t, stubCards{err: models.ErrCatalogLoad}, Options{})

	if rec := do(r, http.MethodGet, "/health"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	rec := do(r, http.MethodGet, "/cards")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body := decodeBody[models.ErrorResponse](t, rec); body.Type != "catalog" {
		t.Errorf("unexpected error body %+v", body)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	r, _ := newTestRouter(t, stubCards{cards: testCatalog()}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(headerRequestID); got != "abc-123" {
		t.Errorf("expected caller id to be echoed, got %q", got)
	}
}

func TestPools(t *testing.T) {
	r, _ := newTestRouter(t, stubCards{cards: testCatalog()}, Options{})

	rec := do(r, http.MethodGet, "/pools")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	sizes := decodeBody[[]models.PoolSize](t, rec)
	if len(sizes) != 5 || sizes[0].Rarity != models.Common || sizes[4].Rarity != models.UltraXRare {
		t.Errorf("unexpected pools %+v", sizes)
	}
}

func TestOpenPack(t *testing.T) {
	r, col := newTestRouter(t, stubCards{cards: testCatalog()}, Options{})

	rec := do(r, http.MethodPost, "/packs")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	booster := decodeBody[models.Booster](t, rec)
	if booster.BID == "" || len(booster.Booster) != models.CardsPerPack {
		t.Fatalf("unexpected booster %+v", booster)
	}

	total := 0
	for _, n := range col.Read(context.Background()) {
		total += n
	}
	if total != models.CardsPerPack {
		t.Errorf("expected %d owned copies, got %d", models.CardsPerPack, total)
	}
}

func TestOpenPack_EmptyPool(t *testing.T) {
	r, _ := newTestRouter(t, stubCards{cards: []models.Card{{ID: "c", Name: "C", Rarity: models.Common}}}, Options{})

	rec := do(r, http.MethodPost, "/packs")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCollectionEndpoints(t *testing.T) {
	r, col := newTestRouter(t, stubCards{cards: testCatalog()}, Options{})
	ctx := context.Background()
	if err := col.Add(ctx, []string{"rare-0", "rare-0", "rare-1", "common-1"}); err != nil {
		t.Fatal(err)
	}

	rec := do(r, http.MethodGet, "/collection")
	if got := decodeBody[map[string]int](t, rec); got["rare-0"] != 2 {
		t.Errorf("unexpected collection %v", got)
	}

	rec = do(r, http.MethodGet, "/collection/summary")
	summary := decodeBody[[]models.TierSummary](t, rec)
	if summary[2].Rarity != models.Rare || summary[2].Total != 3 || summary[2].Unique != 2 {
		t.Errorf("unexpected rare summary %+v", summary[2])
	}

	rec = do(r, http.MethodGet, "/collection/cards?rarity=rare&sort=count-desc")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	entries := decodeBody[[]models.ListEntry](t, rec)
	if len(entries) != 2 || entries[0].Card.ID != "rare-0" || entries[0].Count != 2 {
		t.Errorf("unexpected listing %+v", entries)
	}

	rec = do(r, http.MethodGet, "/collection/cards?owned=true")
	entries = decodeBody[[]models.ListEntry](t, rec)
	if len(entries) != 1 || entries[0].Card.ID != "common-1" {
		t.Errorf("expected only the owned common, got %+v", entries)
	}

	rec = do(r, http.MethodDelete, "/collection")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := col.Read(ctx); len(got) != 0 {
		t.Errorf("expected empty collection, got %v", got)
	}
}

func TestListCards_BadQuery(t *testing.T) {
	r, _ := newTestRouter(t, stubCards{cards: testCatalog()}, Options{})

	for _, target := range []string{
		"/collection/cards?rarity=mythic",
		"/collection/cards?owned=maybe",
	} {
		if rec := do(r, http.MethodGet, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestImagesAndCors(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "rare"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "rare", "a.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, _ := newTestRouter(t, stubCards{cards: testCatalog()}, Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		ImagesDir:      dir,
	})

	rec := do(r, http.MethodGet, "/images/rare/a.png")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "png") {
		t.Errorf("expected image, got %d %q", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected cors header, got %q", got)
	}
}
