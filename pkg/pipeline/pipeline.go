// Run the gene localization pipeline: species profile, annotation lookup,
// location table and the two genome plots.

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/yumyai/geneloc/internal/util"
	"github.com/yumyai/geneloc/logger"
	"github.com/yumyai/geneloc/pkg/annotation"
	"github.com/yumyai/geneloc/pkg/db"
	"github.com/yumyai/geneloc/pkg/model"
	"github.com/yumyai/geneloc/pkg/render"
	"go.uber.org/zap"
)

const (
	DefaultSpecies      = string(model.Human)
	DefaultOutputFolder = "Localization"

	LocationsFile = "gene_locations.csv"
	KaryotypeFile = "karyoplot.pdf"
	CircosFile    = "circos_plot.pdf"
)

type Pipeline struct {
	Lookup    annotation.Lookup
	Karyotype *render.KaryotypePlotter
	Circos    *render.CircosPlotter
	Progress  *Progress
}

// New returns a pipeline with the default plotters and no progress output.
func New(lookup annotation.Lookup) *Pipeline {
	return &Pipeline{
		Lookup:    lookup,
		Karyotype: render.NewKaryotypePlotter(),
		Circos:    render.NewCircosPlotter(),
		Progress:  Discard(),
	}
}

// Result lists what a successful run wrote.
type Result struct {
	RunID         string
	Profile       model.SpeciesProfile
	Locations     model.LocationTable
	Missing       []string
	LocationsPath string
	KaryotypePath string
	CircosPath    string
}

// Run resolves species, looks the genes up and writes the location table and
// both plots into outputFolder. Nothing is written when the species is
// unsupported, the gene list is empty or no location is found. Outputs of
// earlier stages are left in place when a later stage fails.
func (p *Pipeline) Run(ctx context.Context, genes []string, species, outputFolder string) (*Result, error) {
	runID := "run-" + uuid.NewString()
	log := logger.With(zap.String("run", runID))

	profile, err := model.ResolveSpecies(species)
	if err != nil {
		return nil, err
	}
	query, err := model.NewGeneQuery(genes, profile)
	if err != nil {
		return nil, err
	}

	p.Progress.Stage("Selecting dataset %s (%s, %s)", profile.Dataset, profile.GenomeBuild, profile.SymbolAttribute)
	log.Info("Selected dataset",
		zap.String("species", string(profile.Key)),
		zap.String("dataset", profile.Dataset),
		zap.String("genome", profile.GenomeBuild))

	p.Progress.Stage("Querying %d gene(s)", len(query.Symbols))
	table, err := p.Lookup.Lookup(ctx, query.Symbols, profile)
	if err != nil {
		log.Error("Annotation lookup failed", zap.Error(err))
		return nil, fmt.Errorf("lookup: %w", err)
	}
	if len(table) == 0 {
		return nil, &model.NoLocationsFoundError{Symbols: query.Symbols, Dataset: profile.Dataset}
	}

	res := &Result{
		RunID:         runID,
		Profile:       profile,
		Locations:     table,
		Missing:       table.Missing(query.Symbols),
		LocationsPath: filepath.Join(outputFolder, LocationsFile),
		KaryotypePath: filepath.Join(outputFolder, KaryotypeFile),
		CircosPath:    filepath.Join(outputFolder, CircosFile),
	}
	log.Info("Found locations",
		zap.Int("rows", len(table)),
		zap.Strings("genes", table.Symbols()),
		zap.Strings("missing", res.Missing))
	if len(res.Missing) > 0 {
		p.Progress.Warn("No location for %v", res.Missing)
	}

	if !util.DirExists(outputFolder) {
		p.Progress.Stage("Creating output folder %s", outputFolder)
	}
	p.Progress.Stage("Saving %s", res.LocationsPath)
	if err := db.WriteLocationCSV(res.LocationsPath, profile.SymbolAttribute, table); err != nil {
		return nil, fmt.Errorf("save locations: %w", err)
	}

	annotated := model.AddChromosomePrefix(table)

	p.Progress.Stage("Plotting karyotype %s", res.KaryotypePath)
	if err := p.Karyotype.Plot(res.KaryotypePath, profile.GenomeBuild, annotated); err != nil {
		return nil, err
	}

	p.Progress.Stage("Plotting circos %s", res.CircosPath)
	if err := p.Circos.Plot(res.CircosPath, profile.GenomeBuild, model.ToCircosRows(annotated)); err != nil {
		return nil, err
	}

	log.Info("Run complete", zap.String("output", outputFolder))
	p.Progress.Done("Wrote %s", outputFolder)
	return res, nil
}

// GenerateGenePlots runs the pipeline against Ensembl BioMart. Blank species
// and outputFolder fall back to "human" and "Localization".
func GenerateGenePlots(ctx context.Context, genes []string, species, outputFolder string) (*Result, error) {
	if species == "" {
		species = DefaultSpecies
	}
	if outputFolder == "" {
		outputFolder = DefaultOutputFolder
	}
	return New(annotation.NewBioMartClient()).Run(ctx, genes, species, outputFolder)
}

// WriteSummary prints the located genes as a table.
func (p *Pipeline) WriteSummary(res *Result) {
	table := tablewriter.NewWriter(p.Progress.Writer())
	table.Header([]string{"Gene", "Chromosome", "Start", "End", "Strand", "Length"})
	for _, rec := range res.Locations {
		table.Append([]string{
			rec.Symbol,
			model.ChromosomePrefix + rec.Chromosome,
			strconv.FormatInt(rec.Start, 10),
			strconv.FormatInt(rec.End, 10),
			rec.StrandSymbol(),
			strconv.FormatInt(rec.Length(), 10),
		})
	}
	table.Render()
}
