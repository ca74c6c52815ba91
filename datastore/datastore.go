package datastore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/danthegoodman1/icegraph/gologger"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/danthegoodman1/icegraph/utils"
)

var (
	logger = gologger.NewComponentLogger("datastore")

	ErrNotFound     = errors.New("data file not found")
	ErrBadKey       = errors.New("invalid data file key")
	ErrUnknownStore = errors.New("unknown datastore")
)

type (
	// DataStore holds the immutable parquet files that back vertex and edge tables.
	// Keys are slash separated relative paths such as "graphs/g1/vertex/user.parquet".
	DataStore interface {
		// ReadTable decodes the whole file at key
		ReadTable(ctx context.Context, key string) (*table.Table, error)
		// WriteTable encodes t and stores it at key, replacing any existing file
		WriteTable(ctx context.Context, key string, t *table.Table) error

		Shutdown(ctx context.Context) error
	}
)

// VertexKey is the data file key of a vertex label table
func VertexKey(graphID, label string) string {
	return path.Join("graphs", graphID, "vertex", label+".parquet")
}

// EdgeKey is the data file key of an edge label table
func EdgeKey(graphID, label string) string {
	return path.Join("graphs", graphID, "edge", label+".parquet")
}

func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	cleaned := path.Clean(key)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	return cleaned, nil
}

// NewDataStoreFromEnv builds the datastore selected by DATASTORE
func NewDataStoreFromEnv() (DataStore, error) {
	switch utils.DATASTORE {
	case "disk":
		return NewDiskDataStore(utils.DATA_ROOT)
	case "s3":
		return NewS3DataStore(S3Config{
			Bucket:   utils.S3_BUCKET_NAME,
			Region:   utils.AWS_DEFAULT_REGION,
			Endpoint: utils.S3_ENDPOINT,
		})
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStore, utils.DATASTORE)
}
