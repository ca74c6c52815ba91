package metastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const redisGraphSet = "graphs"

type (
	RedisMetaStore struct {
		client *redis.Client
	}

	// redisGraph keeps CreatedAt next to the manifest since the manifest
	// document does not carry it
	redisGraph struct {
		Manifest  GraphManifest
		CreatedAt time.Time
	}
)

// NewRedisMetaStore connects with opts. When ping is set the connection is
// checked before returning.
func NewRedisMetaStore(ctx context.Context, opts *redis.Options, ping bool) (*RedisMetaStore, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Msg("connecting to redis metastore")
	rms := &RedisMetaStore{
		client: redis.NewClient(opts),
	}

	if ping {
		logger.Debug().Msg("running redis ping test")
		s := time.Now()
		_, err := rms.client.Ping(ctx).Result()
		if err != nil {
			rms.client.Close()
			return nil, fmt.Errorf("error pinging redis: %w", err)
		}
		logger.Debug().Msgf("redis ping test successful in %s", time.Since(s))
	}

	return rms, nil
}

func (rms *RedisMetaStore) GraphKey(id string) string {
	return "g_" + id
}

func decodeRedisGraph(raw string) (GraphManifest, error) {
	var rg redisGraph
	if err := json.Unmarshal([]byte(raw), &rg); err != nil {
		return GraphManifest{}, fmt.Errorf("error in json.Unmarshal: %w", err)
	}
	m := rg.Manifest
	m.CreatedAt = rg.CreatedAt
	return m, nil
}

func (rms *RedisMetaStore) GetGraph(ctx context.Context, id string) (GraphManifest, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("graphID", id).Msg("getting graph manifest")
	raw, err := rms.client.Get(ctx, rms.GraphKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return GraphManifest{}, fmt.Errorf("%w: %s", ErrGraphNotFound, id)
	}
	if err != nil {
		return GraphManifest{}, fmt.Errorf("error in redis GET: %w", err)
	}
	return decodeRedisGraph(raw)
}

func (rms *RedisMetaStore) ListGraphs(ctx context.Context) ([]GraphManifest, error) {
	ids, err := rms.client.SMembers(ctx, redisGraphSet).Result()
	if err != nil {
		return nil, fmt.Errorf("error in redis SMEMBERS: %w", err)
	}
	graphs := make([]GraphManifest, 0, len(ids))
	if len(ids) == 0 {
		return graphs, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = rms.GraphKey(id)
	}
	vals, err := rms.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("error in redis MGET: %w", err)
	}
	for i, val := range vals {
		raw, ok := val.(string)
		if !ok {
			// set member without a manifest key
			zerolog.Ctx(ctx).Warn().Str("graphID", ids[i]).Msg("graph listed without a manifest, skipping")
			continue
		}
		m, err := decodeRedisGraph(raw)
		if err != nil {
			return nil, fmt.Errorf("error decoding graph '%s': %w", ids[i], err)
		}
		graphs = append(graphs, m)
	}
	return graphs, nil
}

func (rms *RedisMetaStore) CreateGraph(ctx context.Context, m GraphManifest) error {
	logger := zerolog.Ctx(ctx)
	if err := m.Validate(); err != nil {
		return err
	}
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	jsonBytes, err := json.Marshal(redisGraph{Manifest: m, CreatedAt: createdAt})
	if err != nil {
		return fmt.Errorf("error in json.Marshal: %w", err)
	}

	set, err := rms.client.SetNX(ctx, rms.GraphKey(m.ID), string(jsonBytes), 0).Result()
	if err != nil {
		return fmt.Errorf("error in redis SETNX: %w", err)
	}
	if !set {
		return fmt.Errorf("%w: %s", ErrGraphExists, m.ID)
	}
	if err := rms.client.SAdd(ctx, redisGraphSet, m.ID).Err(); err != nil {
		return fmt.Errorf("error in redis SADD: %w", err)
	}
	logger.Debug().Str("graphID", m.ID).Msg("created graph manifest")
	return nil
}

func (rms *RedisMetaStore) Shutdown(_ context.Context) error {
	return rms.client.Close()
}
