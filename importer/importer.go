// Package importer materializes graphs from NDJSON into a data store and
// registers them in a metastore, producing snapshots the storage backends load.
package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/danthegoodman1/icegraph/datastore"
	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/metastore"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/danthegoodman1/icegraph/utils"
	"github.com/rs/zerolog"
)

const (
	DefaultIDField  = "id"
	DefaultSrcField = "src"
	DefaultDstField = "dst"
)

type (
	VertexSource struct {
		Label string
		// IDField names the original vertex id, DefaultIDField when empty
		IDField string
		Reader  io.Reader
	}

	EdgeSource struct {
		Label string
		// Src and Dst name the vertex labels the edges connect
		Src, Dst string
		// SrcField and DstField name the endpoint id fields
		SrcField, DstField string
		Reader             io.Reader
	}

	Request struct {
		// ID is generated when empty
		ID       string
		Name     string
		Vertices []VertexSource
		Edges    []EdgeSource
		// IntColumns are stored as int64 instead of double
		IntColumns []string
	}

	Importer struct {
		Meta metastore.MetaStore
		Data datastore.DataStore
	}
)

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// fileKey keeps a random suffix so a retried import never overwrites files
// another manifest points at
func fileKey(keyFn func(graphID, label string) string, graphID, label string) string {
	return keyFn(graphID, label+"-"+utils.GenRandomID(""))
}

// Import reads every source, writes one data file per label and registers the
// manifest. The graph is checked by building it before anything is written.
func (im *Importer) Import(ctx context.Context, req Request) (metastore.GraphManifest, error) {
	logger := zerolog.Ctx(ctx)
	s := time.Now()

	m := metastore.GraphManifest{
		ID:   req.ID,
		Name: req.Name,
	}
	if m.ID == "" {
		m.ID = utils.GenKSortedID("g_")
	}

	vertexTables := make([]*table.Table, len(req.Vertices))
	for i, vs := range req.Vertices {
		t, err := ReadNDJSON(vs.Reader, []string{orDefault(vs.IDField, DefaultIDField)}, req.IntColumns)
		if err != nil {
			return m, fmt.Errorf("error reading vertex label %s: %w", vs.Label, err)
		}
		vertexTables[i] = t
		m.VertexLabels = append(m.VertexLabels, metastore.VertexLabelManifest{
			Name: vs.Label,
			File: fileKey(datastore.VertexKey, m.ID, vs.Label),
			Rows: int64(t.NumRows()),
		})
	}
	edgeTables := make([]*table.Table, len(req.Edges))
	for i, es := range req.Edges {
		keys := []string{orDefault(es.SrcField, DefaultSrcField), orDefault(es.DstField, DefaultDstField)}
		t, err := ReadNDJSON(es.Reader, keys, req.IntColumns)
		if err != nil {
			return m, fmt.Errorf("error reading edge label %s: %w", es.Label, err)
		}
		edgeTables[i] = t
		m.EdgeLabels = append(m.EdgeLabels, metastore.EdgeLabelManifest{
			Name: es.Label,
			File: fileKey(datastore.EdgeKey, m.ID, es.Label),
			Rows: int64(t.NumRows()),
			Src:  es.Src,
			Dst:  es.Dst,
		})
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	if err := checkGraph(m, vertexTables, edgeTables); err != nil {
		return m, err
	}

	for i, vl := range m.VertexLabels {
		if err := im.Data.WriteTable(ctx, vl.File, vertexTables[i]); err != nil {
			return m, fmt.Errorf("error writing vertex label %s: %w", vl.Name, err)
		}
	}
	for i, el := range m.EdgeLabels {
		if err := im.Data.WriteTable(ctx, el.File, edgeTables[i]); err != nil {
			return m, fmt.Errorf("error writing edge label %s: %w", el.Name, err)
		}
	}
	if err := im.Meta.CreateGraph(ctx, m); err != nil {
		return m, fmt.Errorf("error in CreateGraph: %w", err)
	}

	logger.Info().Str("graphID", m.ID).Int("vertexLabels", len(m.VertexLabels)).
		Int("edgeLabels", len(m.EdgeLabels)).Str("duration", time.Since(s).String()).Msg("imported graph")
	return m, nil
}

// checkGraph builds the fragment in memory so dangling edges and duplicate
// vertices are rejected up front
func checkGraph(m metastore.GraphManifest, vertexTables, edgeTables []*table.Table) error {
	b := fragment.NewBuilder(fragment.ObjectID(m.ID))
	labels := map[string]fragment.LabelID{}
	for i, vl := range m.VertexLabels {
		labels[vl.Name] = b.AddVertexLabel(vl.Name, vertexTables[i])
	}
	for i, el := range m.EdgeLabels {
		b.AddEdgeLabel(el.Name, edgeTables[i], labels[el.Src], labels[el.Dst])
	}
	if _, err := b.Build(); err != nil {
		return fmt.Errorf("invalid graph: %w", err)
	}
	return nil
}
