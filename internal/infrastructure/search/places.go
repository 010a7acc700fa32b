// Package search keeps an Elasticsearch index of places.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/placebook/internal/domain/entity"
)

const (
	defaultSize = 10
	maxSize     = 50
)

// PlaceIndex indexes and queries places. A nil *PlaceIndex or one without a
// client is a no-op index that finds nothing.
type PlaceIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewPlaceIndex(es *elasticsearch.Client, index string) *PlaceIndex {
	return &PlaceIndex{ES: es, Index: index}
}

func (p *PlaceIndex) enabled() bool {
	return p != nil && p.ES != nil && p.Index != ""
}

type placeDoc struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	Location    entity.Location `json:"location"`
	Image       string          `json:"image"`
	Creator     string          `json:"creator"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

func toDoc(pl *entity.Place) placeDoc {
	return placeDoc{
		ID:          pl.ID,
		Title:       pl.Title,
		Description: pl.Description,
		Address:     pl.Address,
		Location:    pl.Location,
		Image:       pl.Image,
		Creator:     pl.CreatorID,
		CreatedAt:   pl.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   pl.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func (d placeDoc) place() *entity.Place {
	pl := &entity.Place{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Address:     d.Address,
		Location:    d.Location,
		Image:       d.Image,
		CreatorID:   d.Creator,
	}
	pl.CreatedAt, _ = time.Parse(time.RFC3339Nano, d.CreatedAt)
	pl.UpdatedAt, _ = time.Parse(time.RFC3339Nano, d.UpdatedAt)
	return pl
}

const placeMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "address":     {"type": "text"},
      "location":    {"properties": {"lat": {"type": "double"}, "lng": {"type": "double"}}},
      "image":       {"type": "keyword", "index": false},
      "creator":     {"type": "keyword"},
      "created_at":  {"type": "date"},
      "updated_at":  {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with the place mapping when it does not exist.
func (p *PlaceIndex) EnsureIndex(ctx context.Context) error {
	if !p.enabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := p.ES.Indices.Exists([]string{p.Index}, p.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return fmt.Errorf("es index exists: %w", err)
	}
	_ = res.Body.Close()
	switch {
	case res.StatusCode == http.StatusOK:
		return nil
	case res.StatusCode != http.StatusNotFound:
		return fmt.Errorf("es index exists: %s", res.Status())
	}

	res, err = p.ES.Indices.Create(p.Index,
		p.ES.Indices.Create.WithContext(c),
		p.ES.Indices.Create.WithBody(strings.NewReader(placeMapping)),
	)
	if err != nil {
		return fmt.Errorf("es create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	return nil
}

// IndexPlace upserts the place document.
func (p *PlaceIndex) IndexPlace(ctx context.Context, pl *entity.Place) error {
	if !p.enabled() || pl == nil {
		return nil
	}
	b, err := json.Marshal(toDoc(pl))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: p.Index, DocumentID: pl.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, p.ES)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// DeletePlace removes the place document; a missing document is not an error.
func (p *PlaceIndex) DeletePlace(ctx context.Context, id string) error {
	if !p.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: p.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, p.ES)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// SearchPlaces performs a multi_match search on title, address and description.
func (p *PlaceIndex) SearchPlaces(ctx context.Context, q string, size int) ([]*entity.Place, error) {
	if !p.enabled() {
		return []*entity.Place{}, nil
	}
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "address^2", "description"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := p.ES.Search(
		p.ES.Search.WithContext(c),
		p.ES.Search.WithIndex(p.Index),
		p.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string   `json:"_id"`
				Source placeDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("es search decode: %w", err)
	}

	out := make([]*entity.Place, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		pl := h.Source.place()
		if pl.ID == "" {
			pl.ID = h.ID
		}
		out = append(out, pl)
	}
	return out, nil
}
