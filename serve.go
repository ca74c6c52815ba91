package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danthegoodman1/icegraph/http_server"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/danthegoodman1/icegraph/utils"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read only inspection API on HTTP_PORT",
		RunE:  runServe,
	}
	cmd.Flags().String("backend", utils.STORAGE_BACKEND, "storage backend")
	cmd.Flags().String("endpoint", utils.GRAPH_STORE_ENDPOINT, "graph store endpoint")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	endpoint, _ := cmd.Flags().GetString("endpoint")
	logger.Debug().Str("backend", backend).Str("endpoint", endpoint).Msg("starting icegraph")

	meta, err := connectMeta(cmd.Context())
	if err != nil {
		return err
	}

	httpServer := http_server.StartHTTPServer(http_server.Config{
		Storage: storage.Config{Backend: backend, Endpoint: endpoint},
		Meta:    meta,
	})

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Warn().Msg("received shutdown signal!")

	// For AWS ALB needing some time to de-register pod
	sleepTime := utils.SHUTDOWN_SLEEP_SEC
	logger.Info().Msg(fmt.Sprintf("sleeping for %ds before exiting", sleepTime))

	time.Sleep(time.Second * time.Duration(sleepTime))
	logger.Info().Msg(fmt.Sprintf("slept for %ds, exiting", sleepTime))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown HTTP server")
	} else {
		logger.Info().Msg("successfully shutdown HTTP server")
	}
	if meta != nil {
		if err := meta.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown meta store")
		}
	}
	return nil
}
