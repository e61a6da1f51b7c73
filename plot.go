package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/geneloc/internal/config"
	"github.com/yumyai/geneloc/logger"
	"github.com/yumyai/geneloc/pkg/annotation"
	"github.com/yumyai/geneloc/pkg/db"
	"github.com/yumyai/geneloc/pkg/middle"
	"github.com/yumyai/geneloc/pkg/pipeline"
)

var plotCmd = &cobra.Command{
	Use:   "plot GENE...",
	Short: "Locate genes and draw karyotype and circos plots",
	Long: `Look up the genomic location of each gene symbol and write three files
into the output folder:

  gene_locations.csv   the location table as returned by the source
  karyoplot.pdf        linear karyotype with one marker per gene
  circos_plot.pdf      circular genome with gene labels

Locations come from Ensembl BioMart unless --db or --from-csv is given.

Example:
  geneloc plot BRCA1 TP53 MYC
  geneloc plot --species mouse --output mouse_plots Trp53 Brca1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lookup, closeLookup, err := newLookup(cfg)
		if err != nil {
			return err
		}
		defer closeLookup()

		p := pipeline.New(lookup)
		p.Progress = pipeline.NewProgress(cmd.OutOrStdout(), cfg.NoColor)

		res, err := p.Run(cmd.Context(), args, cfg.Species, cfg.OutputFolder)
		if err != nil {
			return err
		}
		p.WriteSummary(res)
		return nil
	},
}

func init() {
	d := config.Default()
	plotCmd.Flags().StringP(config.KeySpecies, "s", d.Species, "species (human, mouse)")
	plotCmd.Flags().StringP(config.KeyOutput, "o", d.OutputFolder, "output folder")
	plotCmd.Flags().String(config.KeyDB, "", "look genes up in a local gene store instead of BioMart")
	plotCmd.Flags().String(config.KeyFromCSV, "", "replay a gene_locations.csv instead of querying BioMart")
	plotCmd.Flags().String(config.KeyMartHost, "", "BioMart host, overrides the species default")
	plotCmd.Flags().Duration(config.KeyTimeout, d.Timeout, "BioMart request timeout")
}

// newLookup picks the location source from the configuration. The returned
// func releases it.
func newLookup(c *config.Config) (annotation.Lookup, func(), error) {
	switch {
	case c.FromCSV != "":
		logger.Info("Using location table", zap.String("path", c.FromCSV))
		return annotation.TableLookup{Path: c.FromCSV}, func() {}, nil

	case c.DBPath != "":
		store, err := db.OpenGeneStore(c.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open gene store: %w", err)
		}
		logger.Info("Open gene store on", zap.String("DB_LOC", c.DBPath))
		return annotation.StoreLookup{Store: store}, func() { store.Close() }, nil

	default:
		log := logger.With(zap.String("component", "biomart"))
		transport := middle.Chain(http.DefaultTransport,
			middle.RequestIDMiddleware(),
			middle.LoggingMiddleware(log),
		)
		opts := []annotation.Option{
			annotation.WithHTTPClient(&http.Client{Transport: transport}),
			annotation.WithTimeout(c.Timeout),
			annotation.WithLogger(log),
		}
		if c.MartHost != "" {
			opts = append(opts, annotation.WithHost(c.MartHost))
		}
		return annotation.NewBioMartClient(opts...), func() {}, nil
	}
}
