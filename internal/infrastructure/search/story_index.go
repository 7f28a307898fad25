// Package search mirrors stories into Elasticsearch for substring search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// maxHits caps one search; a single user's journal stays well below it.
const maxHits = 1000

// Fields of the `wildcard` type keep substring matching cheap on long text.
var indexMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"user_id":          map[string]any{"type": "keyword"},
			"title":            map[string]any{"type": "wildcard"},
			"story":            map[string]any{"type": "wildcard"},
			"visited_location": map[string]any{"type": "wildcard"},
			"is_favourite":     map[string]any{"type": "boolean"},
			"created_on":       map[string]any{"type": "date"},
		},
	},
}

type storyDoc struct {
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Story           string    `json:"story"`
	VisitedLocation []string  `json:"visited_location"`
	IsFavourite     bool      `json:"is_favourite"`
	CreatedOn       time.Time `json:"created_on"`
}

// StoryIndex reads and writes the stories index.
type StoryIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewStoryIndex(es *elasticsearch.Client, index string) *StoryIndex {
	return &StoryIndex{es: es, index: index}
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("es %s: %s %s", op, res.Status(), strings.TrimSpace(string(body)))
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *StoryIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Indices.Exists([]string{x.index}, x.es.Indices.Exists.WithContext(c))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	b, _ := json.Marshal(indexMapping)
	res, err = x.es.Indices.Create(x.index, x.es.Indices.Create.WithContext(c), x.es.Indices.Create.WithBody(bytes.NewReader(b)))
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return responseError("create index", res)
	}
	return nil
}

// Index upserts s.
func (x *StoryIndex) Index(ctx context.Context, s *entity.Story) error {
	b, err := json.Marshal(storyDoc{
		UserID:          s.UserID,
		Title:           s.Title,
		Story:           s.Story,
		VisitedLocation: s.VisitedLocation,
		IsFavourite:     s.IsFavourite,
		CreatedOn:       s.CreatedOn,
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: s.ID, Body: bytes.NewReader(b), Refresh: "true"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// Delete removes the document of story id. A missing document is not an error.
func (x *StoryIndex) Delete(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id, Refresh: "true"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func buildQuery(userID, q string) map[string]any {
	pattern := "*" + wildcardEscaper.Replace(q) + "*"
	should := make([]any, 0, 3)
	for _, f := range []string{"title", "story", "visited_location"} {
		should = append(should, map[string]any{
			"wildcard": map[string]any{
				f: map[string]any{"value": pattern, "case_insensitive": true},
			},
		})
	}
	return map[string]any{
		"size":    maxHits,
		"_source": false,
		"query": map[string]any{
			"bool": map[string]any{
				"filter":               []any{map[string]any{"term": map[string]any{"user_id": userID}}},
				"should":               should,
				"minimum_should_match": 1,
			},
		},
	}
}

// Search returns the ids of userID's stories whose title, text or a location
// contains q, ignoring case.
func (x *StoryIndex) Search(ctx context.Context, userID, q string) ([]string, error) {
	b, _ := json.Marshal(buildQuery(userID, q))

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, responseError("search", res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
