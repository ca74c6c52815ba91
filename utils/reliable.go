package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UltimateTournament/backoff/v4"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

var (
	// MaxRetryElapsed bounds the total time spent retrying a single operation
	MaxRetryElapsed = time.Second * 30
)

func newBackoff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = MaxRetryElapsed
	return backoff.WithContext(b, ctx)
}

// Retry runs f with exponential backoff until it succeeds, returns a permanent
// error, or ctx is done.
func Retry(ctx context.Context, what string, f func(ctx context.Context) error) error {
	logger := zerolog.Ctx(ctx)
	return backoff.RetryNotify(func() error {
		err := f(ctx)
		if err != nil && IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, newBackoff(ctx), func(err error, d time.Duration) {
		logger.Warn().Err(err).Str("op", what).Str("retryIn", d.String()).Msg("retrying")
	})
}

// ReliableExec acquires a connection and runs f with a per try timeout,
// retrying failed tries. pgx.ErrNoRows and permanent errors are not retried.
func ReliableExec(ctx context.Context, pool *pgxpool.Pool, tryTimeout time.Duration, f func(ctx context.Context, conn *pgxpool.Conn) error) error {
	return Retry(ctx, "ReliableExec", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, tryTimeout)
		defer cancel()
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("error in pool.Acquire: %w", err)
		}
		defer conn.Release()
		err = f(ctx, conn)
		if errors.Is(err, pgx.ErrNoRows) {
			return backoff.Permanent(err)
		}
		return err
	})
}

// ReliableExecInTx is ReliableExec inside a transaction that is committed
// when f returns nil
func ReliableExecInTx(ctx context.Context, pool *pgxpool.Pool, tryTimeout time.Duration, f func(ctx context.Context, tx pgx.Tx) error) error {
	return ReliableExec(ctx, pool, tryTimeout, func(ctx context.Context, conn *pgxpool.Conn) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("error in conn.Begin: %w", err)
		}
		defer tx.Rollback(ctx)
		if err := f(ctx, tx); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
}
