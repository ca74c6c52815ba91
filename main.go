package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/danthegoodman1/icegraph/crdb"
	"github.com/danthegoodman1/icegraph/gologger"
	"github.com/danthegoodman1/icegraph/metastore"
	"github.com/danthegoodman1/icegraph/migrations"
	_ "github.com/danthegoodman1/icegraph/storage/columnar"
	_ "github.com/danthegoodman1/icegraph/storage/memory"
	"github.com/danthegoodman1/icegraph/utils"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
)

var logger = gologger.NewLogger()

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "icegraph",
		Short:         "Columnar graph snapshots exposed through the storage interface",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newImportCmd(),
		newInspectCmd(),
	)
	return root
}

// connectMeta returns the CRDB catalog when CRDB_DSN is set, checking that
// migrations are applied, the redis catalog when REDIS_ADDR is set, and nil
// otherwise
func connectMeta(ctx context.Context) (metastore.MetaStore, error) {
	switch {
	case utils.CRDB_DSN != "":
		if err := migrations.CheckMigrations(utils.CRDB_DSN); err != nil {
			return nil, fmt.Errorf("error in migrations.CheckMigrations: %w", err)
		}
		pool, err := crdb.ConnectToDB(ctx, utils.CRDB_DSN)
		if err != nil {
			return nil, fmt.Errorf("error in crdb.ConnectToDB: %w", err)
		}
		return metastore.NewCRDBMetaStore(pool), nil
	case utils.REDIS_ADDR != "":
		meta, err := metastore.NewRedisMetaStore(ctx, &redis.Options{
			Addr:        utils.REDIS_ADDR,
			Password:    utils.REDIS_PASSWORD,
			DialTimeout: time.Second * 3,
		}, utils.REDIS_PING_TEST)
		if err != nil {
			return nil, fmt.Errorf("error in metastore.NewRedisMetaStore: %w", err)
		}
		return meta, nil
	}
	return nil, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply catalog migrations to CRDB_DSN",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if utils.CRDB_DSN == "" {
				return fmt.Errorf("CRDB_DSN is not set")
			}
			n, err := migrations.RunMigrations(utils.CRDB_DSN)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", n)
			return nil
		},
	}
}
