package metastore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrGraphNotFound = errors.New("graph not found")
	ErrGraphExists   = errors.New("graph already exists")
	ErrBadManifest   = errors.New("bad graph manifest")
)

type (
	// MetaStore is the catalog of graphs materialized in a data store
	MetaStore interface {
		// GetGraph fetches the manifest for a graph object id
		GetGraph(ctx context.Context, id string) (GraphManifest, error)
		ListGraphs(ctx context.Context) ([]GraphManifest, error)
		// CreateGraph registers a manifest. Manifests are immutable once created.
		CreateGraph(ctx context.Context, m GraphManifest) error

		Shutdown(ctx context.Context) error
	}

	GraphManifest struct {
		ID   string
		Name string

		VertexLabels []VertexLabelManifest
		EdgeLabels   []EdgeLabelManifest

		// CreatedAt is kept by the store, not in the manifest document
		CreatedAt time.Time `json:"-"`
	}

	VertexLabelManifest struct {
		Name string
		// File is the data store key of the label's table
		File string
		Rows int64
	}

	EdgeLabelManifest struct {
		Name string
		File string
		Rows int64
		// Src and Dst name the vertex labels the edges connect
		Src string
		Dst string
	}
)

// Validate checks the manifest is self consistent
func (m GraphManifest) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: missing id", ErrBadManifest)
	}
	names := map[string]bool{}
	for _, vl := range m.VertexLabels {
		if vl.Name == "" || vl.File == "" {
			return fmt.Errorf("%w: vertex label needs a name and a file", ErrBadManifest)
		}
		if names[vl.Name] {
			return fmt.Errorf("%w: duplicate vertex label %s", ErrBadManifest, vl.Name)
		}
		names[vl.Name] = true
	}
	edgeNames := map[string]bool{}
	for _, el := range m.EdgeLabels {
		if el.Name == "" || el.File == "" {
			return fmt.Errorf("%w: edge label needs a name and a file", ErrBadManifest)
		}
		if edgeNames[el.Name] {
			return fmt.Errorf("%w: duplicate edge label %s", ErrBadManifest, el.Name)
		}
		edgeNames[el.Name] = true
		if !names[el.Src] || !names[el.Dst] {
			return fmt.Errorf("%w: edge label %s connects unknown vertex labels %s -> %s", ErrBadManifest, el.Name, el.Src, el.Dst)
		}
	}
	return nil
}
