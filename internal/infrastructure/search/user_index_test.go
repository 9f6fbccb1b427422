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

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

// fakeES is a tiny document store speaking enough of the Elasticsearch REST API.
type fakeES struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.docs[parts[2]] = b
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodDelete:
		if _, ok := f.docs[parts[2]]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		delete(f.docs, parts[2])
		_, _ = w.Write([]byte(`{"result":"deleted"}`))
	case len(parts) == 2 && parts[1] == "_search":
		var body struct {
			Query struct {
				MultiMatch struct {
					Query string `json:"query"`
				} `json:"multi_match"`
			} `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		hits := []map[string]any{}
		for id, src := range f.docs {
			if strings.Contains(string(src), body.Query.MultiMatch.Query) {
				hits = append(hits, map[string]any{"_id": id, "_source": src})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"unsupported"}`))
	}
}

func newIndex(t *testing.T) (*UserIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{docs: map[string]json.RawMessage{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewUserIndex(es, "users"), fake
}

func TestUserIndex_IndexSearchRemove(t *testing.T) {
	ctx := context.Background()
	x, fake := newIndex(t)

	ann := entity.Identity{ID: "u1", Name: "Ann", Email: "ann@x.com"}
	bob := entity.Identity{ID: "u2", Name: "Bob", Email: "bob@x.com"}
	require.NoError(t, x.Index(ctx, ann))
	require.NoError(t, x.Index(ctx, bob))
	assert.Len(t, fake.docs, 2)

	got, err := x.Search(ctx, "ann@x.com", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ann, got[0])

	require.NoError(t, x.Remove(ctx, "u1"))
	require.NoError(t, x.Remove(ctx, "u1"), "missing document is not an error")

	got, err = x.Search(ctx, "ann@x.com", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
