// Package catalog serves the read-only list of symposium events. The list is
// loaded once at startup from the built-in defaults, a JSON or YAML file, or
// an object in S3-compatible storage.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/server/models"
	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, ordered set of events.
type Catalog struct {
	events []models.Event
	byID   map[string]int
}

// New validates events and indexes them by id. Ids must be non-empty and
// unique.
func New(events []models.Event) (*Catalog, error) {
	c := &Catalog{
		events: make([]models.Event, len(events)),
		byID:   make(map[string]int, len(events)),
	}
	copy(c.events, events)

	for i, e := range c.events {
		if e.ID == "" {
			return nil, fmt.Errorf("event #%d has no id", i)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %q", e.ID)
		}
		c.byID[e.ID] = i
	}

	return c, nil
}

// All returns a copy of every event in catalog order.
func (c *Catalog) All() []models.Event {
	out := make([]models.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Get returns the event with the given id or common.ErrorNotFound.
func (c *Catalog) Get(id string) (models.Event, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Event{}, common.ErrorNotFound
	}
	return c.events[i], nil
}

// Len is the number of events.
func (c *Catalog) Len() int {
	return len(c.events)
}

// Load resolves source into a catalog:
//
//	""                 built-in events
//	s3://bucket/key    object fetched through store
//	anything else      local file path
//
// Objects and files ending in .yaml or .yml are decoded as YAML, everything
// else as JSON. Both accept either a bare list or {"events": [...]}.
func Load(ctx context.Context, source string, store ObjectStore) (*Catalog, error) {
	switch {
	case source == "":
		return New(Default())

	case strings.HasPrefix(source, "s3://"):
		if store == nil {
			return nil, errors.New("catalog: s3 source without object store")
		}
		bucket, key, err := parseS3URL(source)
		if err != nil {
			return nil, err
		}
		data, err := store.Get(ctx, bucket, key)
		if err != nil {
			return nil, fmt.Errorf("catalog: fetch %s: %w", source, err)
		}
		return decode(data, key)

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		return decode(data, source)
	}
}

type document struct {
	Events []models.Event `json:"events" yaml:"events"`
}

func decode(data []byte, name string) (*Catalog, error) {
	var (
		events []models.Event
		err    error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		events, err = decodeWith(data, yaml.Unmarshal)
	default:
		events, err = decodeWith(data, json.Unmarshal)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", name, err)
	}

	return New(events)
}

func decodeWith(data []byte, unmarshal func([]byte, any) error) ([]models.Event, error) {
	var list []models.Event
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}

	var doc document
	if err := unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Events, nil
}

func parseS3URL(u string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(u, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("catalog: malformed s3 url %q, want s3://bucket/key", u)
	}
	return bucket, key, nil
}
