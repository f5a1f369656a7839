package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"tta-cards/internal/models"
)

// DefaultKey é a chave onde a coleção fica salva
const DefaultKey = "tta_collection_v1"

// Backend é um chave-valor de strings
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Collection guarda as quantidades como um objeto JSON numa única chave
type Collection struct {
	backend Backend
	key     string
	logger  *slog.Logger

	// serializa o ler-alterar-escrever do Add
	mu sync.Mutex
}

func New(backend Backend, key string, logger *slog.Logger) *Collection {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection{backend: backend, key: key, logger: logger}
}

// Read retorna as quantidades salvas. Registro ausente, ilegível ou malformado
// vira coleção vazia.
func (c *Collection) Read(ctx context.Context) models.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read(ctx)
}

// Add incrementa a quantidade de cada id uma vez por ocorrência e regrava o
// registro inteiro. Erro de leitura do backend aborta sem gravar.
func (c *Collection) Add(ctx context.Context, ids []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	col, err := c.load(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if col[id] < math.MaxInt {
			col[id]++
		}
	}

	raw, err := json.Marshal(col)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := c.backend.Set(ctx, c.key, string(raw)); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

// Clear remove o registro salvo
func (c *Collection) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.backend.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	return nil
}

func (c *Collection) read(ctx context.Context) models.Collection {
	col, err := c.load(ctx)
	if err != nil {
		c.logger.Warn("collection read failed, using empty collection", "key", c.key, "error", err)
		return models.Collection{}
	}
	return col
}

// load só falha quando o backend falha; registro ausente ou malformado
// carrega vazio
func (c *Collection) load(ctx context.Context) (models.Collection, error) {
	raw, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	if !ok || raw == "" {
		return models.Collection{}, nil
	}

	col, err := decode(raw)
	if err != nil {
		c.logger.Warn("stored collection is malformed, using empty collection", "key", c.key, "error", err)
		return models.Collection{}, nil
	}
	return col, nil
}

// decode aceita um objeto JSON; entradas que não são inteiros não negativos
// são descartadas. 2.0 e 1e2 contam como inteiros.
func decode(raw string) (models.Collection, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after record")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", v)
	}

	col := make(models.Collection, len(obj))
	for id, val := range obj {
		num, ok := val.(json.Number)
		if !ok {
			continue
		}
		if n, err := num.Int64(); err == nil {
			if n >= 0 {
				col[id] = int(n)
			}
			continue
		}
		f, err := num.Float64()
		if err != nil || f < 0 || f != math.Trunc(f) || f >= math.MaxInt64 {
			continue
		}
		col[id] = int(f)
	}
	return col, nil
}
