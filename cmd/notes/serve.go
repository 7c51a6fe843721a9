package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"authored-notes/internal/logger"
	"authored-notes/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info("starting notes service",
			slog.String("env", appConfig.Logger.Env),
			slog.String("storage", appConfig.Storage.Driver),
		)

		srv, err := server.NewServer(appConfig, log)
		if err != nil {
			return err
		}
		if err := srv.Initialize(cmd.Context()); err != nil {
			_ = srv.Listener.Close()
			return err
		}

		// Канал для graceful shutdown
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		errChan := srv.Start()

		// Ожидание сигнала или ошибки
		select {
		case err := <-errChan:
			log.Error("server error", logger.Err(err))
			_ = srv.Shutdown()
			return err
		case sig := <-sigChan:
			log.Info("received signal", slog.String("signal", sig.String()))
		}

		if err := srv.Shutdown(); err != nil {
			return err
		}
		log.Info("notes service stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
