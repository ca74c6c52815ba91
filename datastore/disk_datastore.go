package datastore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/danthegoodman1/icegraph/table"
	"github.com/rs/zerolog"
	"github.com/xitongsys/parquet-go-source/local"
)

type (
	DiskDataStore struct {
		rootPath string
	}
)

func NewDiskDataStore(rootPath string) (*DiskDataStore, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("error in os.MkdirAll: %w", err)
	}
	dds := &DiskDataStore{
		rootPath: rootPath,
	}

	return dds, nil
}

func (dds *DiskDataStore) filePath(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(dds.rootPath, filepath.FromSlash(cleaned)), nil
}

func (dds *DiskDataStore) ReadTable(ctx context.Context, key string) (*table.Table, error) {
	p, err := dds.filePath(key)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	fr, err := local.NewLocalFileReader(p)
	if err != nil {
		return nil, fmt.Errorf("error in local.NewLocalFileReader: %w", err)
	}
	defer fr.Close()

	t, err := DecodeTable(fr)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", key, err)
	}
	zerolog.Ctx(ctx).Debug().Str("key", key).Int("rows", t.NumRows()).Msg("read table from disk")
	return t, nil
}

func (dds *DiskDataStore) WriteTable(ctx context.Context, key string, t *table.Table) error {
	p, err := dds.filePath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("error in os.MkdirAll: %w", err)
	}
	// write to a temp file first so readers never observe a partial file
	tmp := p + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("error in os.Create: %w", err)
	}
	if err := EncodeTable(f, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error closing file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("error in os.Rename: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("key", key).Int("rows", t.NumRows()).Msg("wrote table to disk")
	return nil
}

func (dds *DiskDataStore) Shutdown(_ context.Context) error {
	return nil
}
