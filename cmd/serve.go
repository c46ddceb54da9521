package main

import (
	"assetflow/providers/configprovider"
	"assetflow/providers/loggerprovider"
	"assetflow/server"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the HTTP API",
	RunE:  runServer,
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg := configprovider.NewConfigProvider()
	if err := cfg.LoadEnv(); err != nil {
		return err
	}

	logger := loggerprovider.NewLogProviderWithMode(cfg.GetLogMode())
	logger.InitLogger()
	defer logger.SyncLogger()

	srv, err := server.ServerInit(cfg, logger)
	if err != nil {
		return err
	}
	go srv.Start()
	logger.GetLogger().Info("server initialized...")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done
	srv.Stop()
	logger.GetLogger().Info("server stopped...")
	return nil
}
