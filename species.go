package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yumyai/geneloc/pkg/model"
)

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List supported species",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header([]string{"Species", "Dataset", "Genome", "Symbol attribute", "BioMart host"})
		for _, p := range model.Species() {
			table.Append([]string{string(p.Key), p.Dataset, p.GenomeBuild, p.SymbolAttribute, p.MartHost})
		}
		table.Render()
	},
}
