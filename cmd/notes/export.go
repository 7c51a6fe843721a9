package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"authored-notes/internal/converter"
	"authored-notes/internal/model"
	"authored-notes/internal/storage"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all notes to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(cmd.Context(), appConfig.Storage)
		if err != nil {
			return err
		}
		defer store.Close()

		notes, err := store.List(cmd.Context())
		if err != nil {
			return err
		}

		return writeNotes(cmd.OutOrStdout(), notes, exportFormat)
	},
}

// writeNotes сериализует заметки в yaml или json
func writeNotes(w io.Writer, notes []model.Note, format string) error {
	out := converter.ModelsToResponses(notes)

	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Output format: yaml or json")
}
