package metastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgx"
	"github.com/danthegoodman1/icegraph/crdb"
	"github.com/danthegoodman1/icegraph/utils"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

const uniqueViolation = "23505"

type (
	// CRDBMetaStore keeps manifests in the graphs table (see migrations)
	CRDBMetaStore struct {
		pool *pgxpool.Pool
	}
)

func NewCRDBMetaStore(pool *pgxpool.Pool) *CRDBMetaStore {
	return &CRDBMetaStore{pool: pool}
}

func (cms *CRDBMetaStore) GetGraph(ctx context.Context, id string) (GraphManifest, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("graphID", id).Msg("getting graph manifest")

	var m GraphManifest
	var raw []byte
	err := utils.ReliableExec(ctx, cms.pool, crdb.StandardContextTimeout, func(ctx context.Context, conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, `SELECT manifest, created_at FROM graphs WHERE id = $1`, id).Scan(&raw, &m.CreatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return m, fmt.Errorf("%w: %s", ErrGraphNotFound, id)
	}
	if err != nil {
		return m, fmt.Errorf("error in ReliableExec: %w", err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("error in json.Unmarshal: %w", err)
	}
	return m, nil
}

func (cms *CRDBMetaStore) ListGraphs(ctx context.Context) ([]GraphManifest, error) {
	var graphs []GraphManifest
	err := utils.ReliableExec(ctx, cms.pool, crdb.StandardContextTimeout, func(ctx context.Context, conn *pgxpool.Conn) error {
		graphs = make([]GraphManifest, 0)
		rows, err := conn.Query(ctx, `SELECT manifest, created_at FROM graphs ORDER BY id`)
		if err != nil {
			return fmt.Errorf("error in Query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var m GraphManifest
			var raw []byte
			if err := rows.Scan(&raw, &m.CreatedAt); err != nil {
				return fmt.Errorf("error in rows.Scan: %w", err)
			}
			if err := json.Unmarshal(raw, &m); err != nil {
				return utils.PermError("bad manifest JSON: " + err.Error())
			}
			graphs = append(graphs, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("error in ReliableExec: %w", err)
	}
	return graphs, nil
}

func (cms *CRDBMetaStore) CreateGraph(ctx context.Context, m GraphManifest) error {
	logger := zerolog.Ctx(ctx)
	if err := m.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("error in json.Marshal: %w", err)
	}

	err = crdbpgx.ExecuteTx(ctx, cms.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO graphs (id, name, manifest) VALUES ($1, $2, $3)`, m.ID, m.Name, string(b))
		return err
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrGraphExists, m.ID)
	}
	if err != nil {
		return fmt.Errorf("error in crdbpgx.ExecuteTx: %w", err)
	}
	logger.Debug().Str("graphID", m.ID).Msg("created graph manifest")
	return nil
}

func (cms *CRDBMetaStore) Shutdown(_ context.Context) error {
	cms.pool.Close()
	return nil
}
