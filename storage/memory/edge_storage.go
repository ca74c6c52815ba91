package memory

import (
	"errors"
	"fmt"

	"github.com/danthegoodman1/icegraph/attribute"
	"github.com/danthegoodman1/icegraph/storage"
)

var (
	ErrUnknownEdge = errors.New("unknown edge id")
	ErrBadValue    = errors.New("bad value")
)

// EdgeStorage assigns dense edge ids in insertion order
type EdgeStorage struct {
	sideInfo *storage.SideInfo

	src     []storage.IdType
	dst     []storage.IdType
	weights []float32
	labels  []int32
	attrs   []attribute.Value
}

var _ storage.EdgeStorage = (*EdgeStorage)(nil)

func NewEdgeStorage() *EdgeStorage {
	return &EdgeStorage{sideInfo: &storage.SideInfo{}}
}

func (es *EdgeStorage) Build() {}

func (es *EdgeStorage) SetSideInfo(info *storage.SideInfo) {
	if info != nil {
		es.sideInfo = info
	}
}

func (es *EdgeStorage) GetSideInfo() *storage.SideInfo {
	return es.sideInfo
}

func (es *EdgeStorage) Size() storage.IdType {
	return storage.IdType(len(es.src))
}

func (es *EdgeStorage) Add(value *storage.EdgeValue) (storage.IdType, error) {
	if value == nil {
		return -1, fmt.Errorf("%w: nil edge", ErrBadValue)
	}
	id := storage.IdType(len(es.src))
	es.src = append(es.src, value.SrcID)
	es.dst = append(es.dst, value.DstID)
	es.weights = append(es.weights, value.Weight)
	es.labels = append(es.labels, value.Label)
	es.attrs = append(es.attrs, value.Attribute)
	return id, nil
}

func (es *EdgeStorage) check(edgeID storage.IdType) error {
	if edgeID < 0 || edgeID >= es.Size() {
		return fmt.Errorf("%w: %d", ErrUnknownEdge, edgeID)
	}
	return nil
}

func (es *EdgeStorage) GetSrcId(edgeID storage.IdType) (storage.IdType, error) {
	if err := es.check(edgeID); err != nil {
		return -1, err
	}
	return es.src[edgeID], nil
}

func (es *EdgeStorage) GetDstId(edgeID storage.IdType) (storage.IdType, error) {
	if err := es.check(edgeID); err != nil {
		return -1, err
	}
	return es.dst[edgeID], nil
}

func (es *EdgeStorage) GetWeight(edgeID storage.IdType) (float32, error) {
	if err := es.check(edgeID); err != nil {
		return 0, err
	}
	if !es.sideInfo.Format.IsWeighted() {
		return 0, nil
	}
	return es.weights[edgeID], nil
}

func (es *EdgeStorage) GetLabel(edgeID storage.IdType) (int32, error) {
	if err := es.check(edgeID); err != nil {
		return 0, err
	}
	if !es.sideInfo.Format.IsLabeled() {
		return 0, nil
	}
	return es.labels[edgeID], nil
}

func (es *EdgeStorage) GetAttribute(edgeID storage.IdType) (attribute.Value, error) {
	if err := es.check(edgeID); err != nil {
		return attribute.Value{}, err
	}
	if !es.sideInfo.Format.IsAttributed() {
		return attribute.Value{}, nil
	}
	return es.attrs[edgeID], nil
}

// GetSrcIds is indexed by edge id
func (es *EdgeStorage) GetSrcIds() []storage.IdType {
	return append([]storage.IdType(nil), es.src...)
}

func (es *EdgeStorage) GetDstIds() []storage.IdType {
	return append([]storage.IdType(nil), es.dst...)
}

func (es *EdgeStorage) GetWeights() ([]float32, bool) {
	if !es.sideInfo.Format.IsWeighted() {
		return nil, false
	}
	return append([]float32(nil), es.weights...), true
}

func (es *EdgeStorage) GetLabels() ([]int32, bool) {
	if !es.sideInfo.Format.IsLabeled() {
		return nil, false
	}
	return append([]int32(nil), es.labels...), true
}

func (es *EdgeStorage) GetAttributes() ([]attribute.Value, bool) {
	if !es.sideInfo.Format.IsAttributed() {
		return nil, false
	}
	return append([]attribute.Value(nil), es.attrs...), true
}
