package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/geneloc/internal/config"
	"github.com/yumyai/geneloc/logger"
	"github.com/yumyai/geneloc/pkg/db"
	"github.com/yumyai/geneloc/pkg/model"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load a location table into a local gene store",
	Long: `Import a gene_locations.csv written by "geneloc plot" into a SQLite gene
store, so later plots can run offline with --db.

The symbol column must match the species, e.g. hgnc_symbol for human.

Example:
  geneloc import Localization/gene_locations.csv --species human --db genes.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBPath == "" {
			return errors.New("--db is required")
		}
		profile, err := model.ResolveSpecies(cfg.Species)
		if err != nil {
			return err
		}

		table, attr, err := db.ReadLocationCSV(args[0])
		if err != nil {
			return err
		}
		if attr != profile.SymbolAttribute {
			return fmt.Errorf("%s has %s symbols, %s needs %s", args[0], attr, profile.Key, profile.SymbolAttribute)
		}

		store, err := db.OpenGeneStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open gene store: %w", err)
		}
		defer store.Close()

		n, err := store.Import(cmd.Context(), profile.Key, table)
		if err != nil {
			return err
		}
		total, err := store.Count(cmd.Context(), profile.Key)
		if err != nil {
			return err
		}

		logger.Info("Imported locations", zap.String("species", string(profile.Key)), zap.Int("rows", n))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d row(s), %d %s location(s) in %s\n", n, total, profile.Key, cfg.DBPath)
		return nil
	},
}

func init() {
	importCmd.Flags().StringP(config.KeySpecies, "s", config.Default().Species, "species of the table (human, mouse)")
	importCmd.Flags().String(config.KeyDB, "", "gene store to write (created if missing)")
}
