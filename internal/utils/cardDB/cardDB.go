package cardDB

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"tta-cards/internal/models"
)

// CardDB carrega a lista de cartas uma vez por processo e entrega o mesmo
// resultado (cartas ou erro) pra todo mundo.
type CardDB struct {
	source     string
	httpClient *http.Client
	stableIDs  bool
	logger     *slog.Logger

	mu    sync.Mutex
	done  chan struct{}
	cards []models.Card
	err   error
}

type Option func(*CardDB)

// WithHTTPClient define o client usado pra fontes http(s)
func WithHTTPClient(c *http.Client) Option {
	return func(cd *CardDB) { cd.httpClient = c }
}

// WithStableIDs deriva os ids de fallback do conteúdo do registro em vez de
// gerar aleatórios.
func WithStableIDs(stable bool) Option {
	return func(cd *CardDB) { cd.stableIDs = stable }
}

func WithLogger(l *slog.Logger) Option {
	return func(cd *CardDB) { cd.logger = l }
}

// New cria o loader pra source, caminho de arquivo ou URL http(s)
func New(source string, opts ...Option) *CardDB {
	cd := &CardDB{
		source:     source,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(cd)
	}
	return cd
}

func (cd *CardDB) Source() string {
	return cd.source
}

// LoadCards retorna o catálogo normalizado. A primeira chamada dispara a
// busca; quem chega durante ela espera o mesmo resultado. Carga que falhou
// continua falha enquanto o CardDB existir.
func (cd *CardDB) LoadCards(ctx context.Context) ([]models.Card, error) {
	cd.mu.Lock()
	if cd.done == nil {
		cd.done = make(chan struct{})
		go cd.load(context.WithoutCancel(ctx))
	}
	done := cd.done
	cd.mu.Unlock()

	select {
	case <-done:
		return cd.cards, cd.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (cd *CardDB) load(ctx context.Context) {
	defer close(cd.done)

	raw, err := cd.fetch(ctx)
	if err != nil {
		cd.err = fmt.Errorf("%w: %w", models.ErrCatalogLoad, err)
		cd.logger.Error("catalog load failed", "source", cd.source, "error", err)
		return
	}

	cards, err := cd.InitializeCards(raw, formatOf(cd.source))
	if err != nil {
		cd.err = fmt.Errorf("%w: %w", models.ErrCatalogLoad, err)
		cd.logger.Error("catalog load failed", "source", cd.source, "error", err)
		return
	}

	cd.cards = cards
	cd.logger.Info("catalog loaded", "source", cd.source, "cards", len(cards))
}

func (cd *CardDB) fetch(ctx context.Context) ([]byte, error) {
	if !isRemote(cd.source) {
		return os.ReadFile(filepath.Clean(cd.source))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cd.source, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := cd.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to load %s: %d", cd.source, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// InitializeCards decodifica o documento do catálogo (lista de registros ou
// objeto com lista "cards") e normaliza cada registro.
func (cd *CardDB) InitializeCards(raw []byte, format string) ([]models.Card, error) {
	doc, err := decode(raw, format)
	if err != nil {
		return nil, err
	}

	var records []any
	switch d := doc.(type) {
	case []any:
		records = d
	case map[string]any:
		switch list := d["cards"].(type) {
		case nil:
		case []any:
			records = list
		default:
			return nil, fmt.Errorf("cards field is %T, not a list", list)
		}
	}

	cards := make([]models.Card, 0, len(records))
	for i, rec := range records {
		fields, _ := rec.(map[string]any)
		cards = append(cards, cd.normalize(i, rawCard(fields)))
	}
	return cards, nil
}

func decode(raw []byte, format string) (any, error) {
	var doc any
	if format == "yaml" {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return doc, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode json: trailing data after document")
	}
	return doc, nil
}

func rawCard(m map[string]any) models.RawCard {
	return models.RawCard{
		ID:           m["id"],
		Name:         m["name"],
		Rarity:       m["rarity"],
		ImageFile:    m["image_file"],
		ImageFileAlt: m["imageFile"],
		Image:        m["image"],
	}
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func formatOf(source string) string {
	p := source
	if i := strings.IndexAny(p, "?#"); i >= 0 && isRemote(p) {
		p = p[:i]
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}
