package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"authored-notes/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables or indexes for the configured storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(cmd.Context(), appConfig.Storage)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}

		log.Info("storage migrated", slog.String("driver", appConfig.Storage.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
