package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	indexed  bool
	docs     map[string]json.RawMessage
	lastBody map[string]any

	bulkRequests int
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	body, _ := io.ReadAll(r.Body)

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		_, _ = w.Write([]byte(`{"version":{"number":"9.0.0","build_flavor":"default"},"tagline":"You Know, for Search"}`))
	case r.Method == http.MethodHead && r.URL.Path == "/products":
		if !f.indexed {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/products":
		f.indexed = true
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	case r.Method == http.MethodPut && len(r.URL.Path) > len("/products/_doc/"):
		f.docs[r.URL.Path[len("/products/_doc/"):]] = body
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	case r.Method == http.MethodDelete:
		id := r.URL.Path[len("/products/_doc/"):]
		if _, ok := f.docs[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		delete(f.docs, id)
		_, _ = w.Write([]byte(`{"result":"deleted"}`))
	case r.Method == http.MethodPost && r.URL.Path == "/products/_bulk":
		f.bulkRequests++
		lines := bytes.Split(bytes.TrimSpace(body), []byte("\n"))
		for i := 0; i+1 < len(lines); i += 2 {
			var meta struct {
				Index struct {
					ID string `json:"_id"`
				} `json:"index"`
			}
			_ = json.Unmarshal(lines[i], &meta)
			f.docs[meta.Index.ID] = lines[i+1]
		}
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	case r.URL.Path == "/products/_search":
		f.lastBody = map[string]any{}
		_ = json.Unmarshal(body, &f.lastBody)
		hits := []map[string]any{}
		for _, doc := range f.docs {
			var src struct {
				ID string `json:"id"`
			}
			_ = json.Unmarshal(doc, &src)
			hits = append(hits, map[string]any{"_id": src.ID})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"unexpected request"}`))
	}
}

func newTestIndex(t *testing.T) (*ProductIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{docs: map[string]json.RawMessage{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.URL, "", "")
	require.NoError(t, err)
	return NewProductIndex(client, "products"), fake
}

func TestProductIndex_EnsureIndex(t *testing.T) {
	idx, fake := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx))
	assert.True(t, fake.indexed)
	require.NoError(t, idx.EnsureIndex(ctx))
}

func TestProductIndex_IndexSearchDelete(t *testing.T) {
	idx, fake := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, models.Product{ID: "p-1", Name: "iPhone 15", Category: "phones"}))

	got, err := idx.Search(ctx, "PHO*")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, got)
	assert.Equal(t, false, fake.lastBody["_source"])

	query := fake.lastBody["query"].(map[string]any)["bool"].(map[string]any)
	should := query["should"].([]any)
	require.Len(t, should, 3)
	wc := should[0].(map[string]any)["wildcard"].(map[string]any)["name"].(map[string]any)
	assert.Equal(t, `*PHO\**`, wc["value"])
	assert.Equal(t, true, wc["case_insensitive"])

	require.NoError(t, idx.Delete(ctx, "p-1"))
	require.NoError(t, idx.Delete(ctx, "p-1"), "missing documents are not an error")
}

func TestProductIndex_IndexAll(t *testing.T) {
	idx, fake := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.IndexAll(ctx, nil))
	assert.Zero(t, fake.bulkRequests)

	require.NoError(t, idx.IndexAll(ctx, []models.Product{
		{ID: "p-1", Name: "iPhone 15", Category: "phones"},
		{ID: "p-2", Name: "Dell XPS 15", Category: "laptops"},
	}))
	assert.Equal(t, 1, fake.bulkRequests)
	assert.Len(t, fake.docs, 2)

	got, err := idx.Search(ctx, "xps")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p-1", "p-2"}, got)
}
