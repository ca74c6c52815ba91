package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danthegoodman1/icegraph/datastore"
	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/metastore"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type (
	// Loader materializes fragments from a manifest in Meta and the label
	// tables it references in Data
	Loader struct {
		Meta metastore.MetaStore
		Data datastore.DataStore
	}
)

func (l *Loader) LoadFragment(ctx context.Context, id fragment.ObjectID) (fragment.Fragment, error) {
	logger := zerolog.Ctx(ctx).With().Str("objectID", string(id)).Logger()
	s := time.Now()

	m, err := l.Meta.GetGraph(ctx, string(id))
	if errors.Is(err, metastore.ErrGraphNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("error in GetGraph: %w", err)
	}

	vertexTables := make([]*table.Table, len(m.VertexLabels))
	edgeTables := make([]*table.Table, len(m.EdgeLabels))
	g, gctx := errgroup.WithContext(ctx)
	for i, vl := range m.VertexLabels {
		i, vl := i, vl
		g.Go(func() (err error) {
			vertexTables[i], err = l.Data.ReadTable(gctx, vl.File)
			if err != nil {
				return fmt.Errorf("error reading vertex label %s: %w", vl.Name, err)
			}
			return nil
		})
	}
	for i, el := range m.EdgeLabels {
		i, el := i, el
		g.Go(func() (err error) {
			edgeTables[i], err = l.Data.ReadTable(gctx, el.File)
			if err != nil {
				return fmt.Errorf("error reading edge label %s: %w", el.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := fragment.NewBuilder(id)
	labels := make(map[string]fragment.LabelID, len(m.VertexLabels))
	for i, vl := range m.VertexLabels {
		labels[vl.Name] = b.AddVertexLabel(vl.Name, vertexTables[i])
	}
	for i, el := range m.EdgeLabels {
		src, ok := labels[el.Src]
		if !ok {
			return nil, fmt.Errorf("%w: edge label %s has unknown source label %s", metastore.ErrBadManifest, el.Name, el.Src)
		}
		dst, ok := labels[el.Dst]
		if !ok {
			return nil, fmt.Errorf("%w: edge label %s has unknown destination label %s", metastore.ErrBadManifest, el.Name, el.Dst)
		}
		b.AddEdgeLabel(el.Name, edgeTables[i], src, dst)
	}
	snap, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("error building fragment: %w", err)
	}

	logger.Debug().Int("vertexLabels", len(m.VertexLabels)).Int("edgeLabels", len(m.EdgeLabels)).
		Str("duration", time.Since(s).String()).Msg("loaded fragment")
	return snap, nil
}

func (l *Loader) Close(ctx context.Context) error {
	if err := l.Meta.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down metastore: %w", err)
	}
	if err := l.Data.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down datastore: %w", err)
	}
	return nil
}
