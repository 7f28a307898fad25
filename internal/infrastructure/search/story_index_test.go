package search

import (
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

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

// fakeES answers like an Elasticsearch node and records every request.
func fakeES(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &reqs
}

func TestSearchBuildsScopedWildcardQuery(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"s1"},{"_id":"s2"}]}}`)
	})
	idx := NewStoryIndex(es, "stories")

	ids, err := idx.Search(t.Context(), "u1", "Par*s")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, ids)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, "/stories/_search", got.path)
	assert.Contains(t, got.body, `"user_id":"u1"`)
	assert.Contains(t, got.body, `"case_insensitive":true`)
	assert.Contains(t, got.body, `"value":"*Par\\*s*"`)
}

func TestSearchErrorStatus(t *testing.T) {
	es, _ := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"}}`)
	})
	_, err := NewStoryIndex(es, "stories").Search(t.Context(), "u1", "oslo")
	assert.ErrorContains(t, err, "index_not_found_exception")
}

func TestIndexAndDelete(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})
	idx := NewStoryIndex(es, "stories")

	s := &entity.Story{ID: "s1", UserID: "u1", Title: "Fjords", VisitedLocation: []string{"Bergen"}, CreatedOn: time.Now()}
	require.NoError(t, idx.Index(t.Context(), s))
	require.NoError(t, idx.Delete(t.Context(), "s1"))

	require.Len(t, *reqs, 2)
	assert.Equal(t, "/stories/_doc/s1", (*reqs)[0].path)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte((*reqs)[0].body), &doc))
	assert.Equal(t, "u1", doc["user_id"])
	assert.Equal(t, []any{"Bergen"}, doc["visited_location"])
	assert.Equal(t, http.MethodDelete, (*reqs)[1].method)
}

func TestEnsureIndexCreatesWhenMissing(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	})
	require.NoError(t, NewStoryIndex(es, "stories").EnsureIndex(t.Context()))

	require.Len(t, *reqs, 2)
	assert.Equal(t, http.MethodPut, (*reqs)[1].method)
	assert.True(t, strings.Contains((*reqs)[1].body, `"wildcard"`))
}
