package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"powersite-catalog/internal/models"
)

// ProductSource es el origen de los productos a indexar
type ProductSource interface {
	All(ctx context.Context) ([]models.Product, error)
}

// Elastic es el motor de autocompletado sobre Elasticsearch. Replica el
// contrato de Mongo: subcadena literal del título, sin distinguir mayúsculas.
type Elastic struct {
	client *elasticsearch.Client
	index  string
	log    *slog.Logger
}

func NewElastic(client *elasticsearch.Client, index string, log *slog.Logger) *Elastic {
	if log == nil {
		log = slog.Default()
	}
	return &Elastic{client: client, index: index, log: log}
}

// Open crea el cliente de Elasticsearch para la URL dada
func Open(url, index string, log *slog.Logger) (*Elastic, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return NewElastic(client, index, log), nil
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "sku":           {"type": "keyword"},
      "title":         {"type": "text", "fields": {"keyword": {"type": "keyword", "ignore_above": 256}}},
      "brand":         {"type": "keyword"},
      "category":      {"type": "keyword"},
      "price_inc_vat": {"type": "double"},
      "image":         {"type": "keyword", "index": false}
    }
  }
}`

// Suggest busca productos cuyo título contiene la consulta
func (e *Elastic) Suggest(ctx context.Context, query string, limit int) ([]models.SearchSuggestion, error) {
	body, err := json.Marshal(map[string]any{
		"size": limit,
		"query": map[string]any{
			"wildcard": map[string]any{
				"title.keyword": map[string]any{
					"value":            "*" + escapeWildcard(query) + "*",
					"case_insensitive": true,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("search", res)
	}

	var esResp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]models.SearchSuggestion, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// Sync crea el índice si hace falta y vuelca todos los productos del origen
func (e *Elastic) Sync(ctx context.Context, src ProductSource) (int, error) {
	if err := e.ensureIndex(ctx); err != nil {
		return 0, err
	}

	products, err := src.All(ctx)
	if err != nil {
		return 0, err
	}

	for i := range products {
		if err := e.indexProduct(ctx, &products[i]); err != nil {
			return i, err
		}
	}

	res, err := e.client.Indices.Refresh(
		e.client.Indices.Refresh.WithContext(ctx),
		e.client.Indices.Refresh.WithIndex(e.index),
	)
	if err != nil {
		return len(products), fmt.Errorf("elasticsearch refresh: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return len(products), responseError("refresh", res)
	}

	e.log.Debug("search index synced", "index", e.index, "products", len(products))
	return len(products), nil
}

// Watch vuelve a sincronizar el índice cada interval hasta que se cancela ctx.
// Los fallos se registran y se reintenta en el siguiente ciclo.
func (e *Elastic) Watch(ctx context.Context, src ProductSource, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := e.Sync(ctx, src); err != nil && ctx.Err() == nil {
				e.log.Warn("search index sync failed", "index", e.index, "err", err)
			}
		}
	}
}

func (e *Elastic) ensureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithContext(ctx),
		e.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch create index: %w", err)
	}
	defer res.Body.Close()

	if !res.IsError() {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	if res.StatusCode == http.StatusBadRequest && errorType(msg) == "resource_already_exists_exception" {
		return nil
	}
	return fmt.Errorf("elasticsearch create index: %s: %s", res.Status(), strings.TrimSpace(string(msg)))
}

func (e *Elastic) indexProduct(ctx context.Context, p *models.Product) error {
	body, err := json.Marshal(p.Suggestion())
	if err != nil {
		return err
	}

	res, err := e.client.Index(
		e.index,
		bytes.NewReader(body),
		e.client.Index.WithContext(ctx),
		e.client.Index.WithDocumentID(p.SKU),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index %s: %w", p.SKU, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("index "+p.SKU, res)
	}
	return nil
}

// escapeWildcard escapa los comodines para que la búsqueda sea literal
func escapeWildcard(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(s)
}

func responseError(op string, res *esapi.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), strings.TrimSpace(string(msg)))
}

// errorType extrae error.type de una respuesta de error de Elasticsearch
func errorType(body []byte) string {
	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error.Type
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.SearchSuggestion `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
