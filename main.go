package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/geneloc/internal/config"
	"github.com/yumyai/geneloc/logger"
	"github.com/yumyai/geneloc/pkg/annotation"
)

var (
	VERSION = annotation.Version

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "geneloc",
	Short: "Plot where genes sit on the genome",
	Long: `geneloc looks up the chromosomal location of gene symbols in Ensembl
BioMart (or a local gene store) and draws them on a linear karyotype and a
circular genome plot.

Settings can also come from GENELOC_* environment variables or a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Try load env
		dotenvErr := config.LoadDotEnv()

		loaded, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded

		if err := logger.InitLogger(logger.ParseLevel(cfg.LogLevel)); err != nil {
			return err
		}
		if dotenvErr != nil {
			logger.Debug("No .env found, using local environment")
		}
		logger.Debug("Start:", zap.String("Version", VERSION), zap.String("command", cmd.Name()))
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync() // Make sure that the buffered is flushed.
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool(config.KeyNoColor, false, "disable coloured progress output")

	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(speciesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "geneloc version %s\n", VERSION)
	},
}
