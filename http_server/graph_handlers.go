package http_server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danthegoodman1/icegraph/attribute"
	"github.com/danthegoodman1/icegraph/metastore"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/danthegoodman1/icegraph/store"
	"github.com/danthegoodman1/icegraph/utils"
)

const defaultPageLimit = 100

type (
	PageReq struct {
		Offset int `query:"offset" validate:"gte=0"`
		Limit  int `query:"limit" validate:"gte=0,lte=10000"`
	}

	NodesRes struct {
		Label    string
		Size     int64
		SideInfo *storage.SideInfo
		Ids      []int64
	}

	NodeRes struct {
		ID        int64
		Weight    float32
		Label     int32
		Attribute attribute.Value
	}

	EdgesRes struct {
		Label    string
		Size     int64
		SideInfo *storage.SideInfo
		// SrcIds and DstIds are positionally aligned
		SrcIds []int64
		DstIds []int64
		// Weights and Labels follow edge table row order
		Weights []float32 `json:",omitempty"`
		Labels  []int32   `json:",omitempty"`
	}

	VertexTopologyRes struct {
		Vertex      int64
		OutDegree   int
		InDegree    int
		Neighbors   []int64
		OutEdges    []int64
		InNeighbors []int64
		InEdges     []int64
	}
)

// page clamps [offset, offset+limit) to n
func (p PageReq) page(n int) (int, int) {
	limit := p.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}
	start := p.Offset
	if start > n {
		start = n
	}
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}

func (s *HTTPServer) storageConfig(graphID string) storage.Config {
	cfg := s.storage
	cfg.GraphID = graphID
	return cfg
}

// storageError maps construction failures onto status codes
func (c *CustomContext) storageError(err error, msg string) error {
	if errors.Is(err, storage.ErrUnknownLabel) || errors.Is(err, store.ErrObjectNotFound) {
		return c.String(http.StatusNotFound, err.Error())
	}
	return c.InternalError(err, msg)
}

func (s *HTTPServer) ListGraphs(c *CustomContext) error {
	if s.meta == nil {
		return c.JSON(http.StatusOK, []metastore.GraphManifest{})
	}
	graphs, err := s.meta.ListGraphs(c.Request().Context())
	if err != nil {
		return c.InternalError(err, "error listing graphs")
	}
	return c.JSON(http.StatusOK, graphs)
}

func (s *HTTPServer) GetNodes(c *CustomContext) error {
	var req PageReq
	if err := ValidateRequest(c, &req); err != nil {
		return err
	}
	ctx := c.GraphContext(c.Param("graph"))
	ns, err := storage.NewNodeStorage(ctx, s.storageConfig(c.Param("graph")), c.Param("label"))
	if err != nil {
		return c.storageError(err, "error opening node storage")
	}
	ids := ns.GetIds()
	start, end := req.page(len(ids))
	return c.JSON(http.StatusOK, NodesRes{
		Label:    c.Param("label"),
		Size:     ns.Size(),
		SideInfo: ns.GetSideInfo(),
		Ids:      utils.ArrayOrEmpty(ids[start:end]),
	})
}

func (s *HTTPServer) GetNode(c *CustomContext) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "id must be an integer")
	}
	ctx := c.GraphContext(c.Param("graph"))
	ns, err := storage.NewNodeStorage(ctx, s.storageConfig(c.Param("graph")), c.Param("label"))
	if err != nil {
		return c.storageError(err, "error opening node storage")
	}
	if !utils.Contains(ns.GetIds(), id) {
		return c.String(http.StatusNotFound, "node not found")
	}
	return c.JSON(http.StatusOK, NodeRes{
		ID:        id,
		Weight:    ns.GetWeight(id),
		Label:     ns.GetLabel(id),
		Attribute: ns.GetAttribute(id),
	})
}

func (s *HTTPServer) GetEdges(c *CustomContext) error {
	var req PageReq
	if err := ValidateRequest(c, &req); err != nil {
		return err
	}
	ctx := c.GraphContext(c.Param("graph"))
	es, err := storage.NewEdgeStorage(ctx, s.storageConfig(c.Param("graph")), c.Param("label"))
	if err != nil {
		return c.storageError(err, "error opening edge storage")
	}
	srcs, dsts := es.GetSrcIds(), es.GetDstIds()
	start, end := req.page(len(srcs))
	res := EdgesRes{
		Label:    c.Param("label"),
		Size:     es.Size(),
		SideInfo: es.GetSideInfo(),
		SrcIds:   utils.ArrayOrEmpty(srcs[start:end]),
		DstIds:   utils.ArrayOrEmpty(dsts[start:end]),
	}
	if weights, ok := es.GetWeights(); ok {
		ws, we := req.page(len(weights))
		res.Weights = weights[ws:we]
	}
	if labels, ok := es.GetLabels(); ok {
		ls, le := req.page(len(labels))
		res.Labels = labels[ls:le]
	}
	return c.JSON(http.StatusOK, res)
}

func (s *HTTPServer) GetVertexTopology(c *CustomContext) error {
	vid, err := strconv.ParseInt(c.Param("vid"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "vid must be an integer")
	}
	ctx := c.GraphContext(c.Param("graph"))
	ts, err := storage.NewTopoStorage(ctx, s.storageConfig(c.Param("graph")), c.Param("label"))
	if err != nil {
		return c.storageError(err, "error opening topology storage")
	}
	return c.JSON(http.StatusOK, VertexTopologyRes{
		Vertex:      vid,
		OutDegree:   ts.GetOutDegree(vid),
		InDegree:    ts.GetInDegree(vid),
		Neighbors:   storage.ToSlice(ts.GetNeighbors(vid)),
		OutEdges:    storage.ToSlice(ts.GetOutEdges(vid)),
		InNeighbors: storage.ToSlice(ts.GetInNeighbors(vid)),
		InEdges:     storage.ToSlice(ts.GetInEdges(vid)),
	})
}
