package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powersite-catalog/internal/catalog/catalogtest"
	"powersite-catalog/internal/models"
)

// fakeCluster simula las rutas de Elasticsearch que usa el motor
type fakeCluster struct {
	mu          sync.Mutex
	docs        map[string]models.SearchSuggestion
	lastSearch  map[string]any
	indexExists bool
	refreshed   bool
	createError string
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	body, _ := io.ReadAll(r.Body)
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 1 && r.Method == http.MethodPut:
		if f.createError != "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"type":"`+f.createError+`"},"status":400}`)
			return
		}
		if f.indexExists {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"type":"resource_already_exists_exception"},"status":400}`)
			return
		}
		f.indexExists = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)

	case len(parts) == 3 && parts[1] == "_doc":
		var doc models.SearchSuggestion
		_ = json.Unmarshal(body, &doc)
		f.docs[parts[2]] = doc
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)

	case len(parts) == 2 && parts[1] == "_refresh":
		f.refreshed = true
		_, _ = io.WriteString(w, `{"_shards":{"total":1,"successful":1,"failed":0}}`)

	case len(parts) == 2 && parts[0] == "products" && parts[1] == "_search":
		var q map[string]any
		_ = json.Unmarshal(body, &q)
		f.lastSearch = q

		value := q["query"].(map[string]any)["wildcard"].(map[string]any)["title.keyword"].(map[string]any)["value"].(string)
		needle := strings.ToLower(strings.Trim(value, "*"))

		hits := make([]map[string]any, 0)
		for _, d := range f.docs {
			if strings.Contains(strings.ToLower(d.Title), needle) {
				hits = append(hits, map[string]any{"_source": d})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not found"}`)
	}
}

func newTestEngine(t *testing.T) (*Elastic, *fakeCluster) {
	t.Helper()

	cluster := &fakeCluster{docs: map[string]models.SearchSuggestion{}}
	srv := httptest.NewServer(cluster)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	return NewElastic(client, "products", nil), cluster
}

func TestElasticSyncAndSuggest(t *testing.T) {
	engine, cluster := newTestEngine(t)
	ctx := context.Background()

	store := catalogtest.Demo()
	n, err := engine.Sync(ctx, store.Stores().Products.(ProductSource))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, cluster.refreshed)
	assert.Len(t, cluster.docs, 5)
	assert.Equal(t, 599.99, cluster.docs["HY2000i"].PriceIncVAT)

	got, err := engine.Suggest(ctx, "GENERATOR", 8)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	wildcard := cluster.lastSearch["query"].(map[string]any)["wildcard"].(map[string]any)["title.keyword"].(map[string]any)
	assert.Equal(t, "*GENERATOR*", wildcard["value"])
	assert.Equal(t, true, wildcard["case_insensitive"])
	assert.EqualValues(t, 8, cluster.lastSearch["size"])

	// el índice ya existe en la segunda sincronización
	_, err = engine.Sync(ctx, store.Stores().Products.(ProductSource))
	require.NoError(t, err)
}

func TestElasticCreateIndexError(t *testing.T) {
	engine, cluster := newTestEngine(t)
	cluster.createError = "invalid_index_name_exception"

	_, err := engine.Sync(context.Background(), catalogtest.Demo().Stores().Products.(ProductSource))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_index_name_exception")
	assert.Empty(t, cluster.docs)
}

func TestElasticWatchIndexesNewProducts(t *testing.T) {
	engine, _ := newTestEngine(t)
	store := catalogtest.Demo()
	src := store.Stores().Products.(ProductSource)

	_, err := engine.Sync(context.Background(), src)
	require.NoError(t, err)

	store.AddProducts(catalogtest.Product("HY5000", "Hyundai 5000W Site Generator", "hyundai", "generators", "petrol", 1199))

	got, err := engine.Suggest(context.Background(), "5000W", 8)
	require.NoError(t, err)
	assert.Empty(t, got)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- engine.Watch(ctx, src, 10*time.Millisecond) }()

	require.Eventually(t, func() bool {
		got, err := engine.Suggest(context.Background(), "5000W", 8)
		return err == nil && len(got) == 1 && got[0].SKU == "HY5000"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "resource_already_exists_exception", errorType([]byte(`{"error":{"type":"resource_already_exists_exception"}}`)))
	assert.Empty(t, errorType([]byte(`{"error":"plain text"}`)))
	assert.Empty(t, errorType([]byte(`not json`)))
}

func TestElasticSearchError(t *testing.T) {
	engine, _ := newTestEngine(t)
	engine.index = "missing"

	_, err := engine.Suggest(context.Background(), "x", 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestEscapeWildcard(t *testing.T) {
	assert.Equal(t, `2000W\*\?`, escapeWildcard("2000W*?"))
	assert.Equal(t, `a\\b`, escapeWildcard(`a\b`))
}
