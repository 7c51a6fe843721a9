package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"authored-notes/internal/config"
	"authored-notes/internal/logger"
)

var (
	configFile string
	verbose    bool

	appConfig *config.Config
	log       *slog.Logger
)

// rootCmd базовая команда без подкоманд
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Notes service with author-only editing",
	Long: `notes stores short notes for registered users.
Every authenticated user can read all notes; only the author may change or delete one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config %s: %w", configFile, err)
		}
		appConfig = cfg

		level := cfg.Logger.Level
		if verbose {
			level = "debug"
		}
		log = logger.New(cfg.Logger.Env, level, os.Stderr)
		slog.SetDefault(log)
		return nil
	},
}

// Execute запускает CLI; вызывается из main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yml", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
