package annotation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/geneloc/pkg/db"
	"github.com/yumyai/geneloc/pkg/model"
)

var storedRows = model.LocationTable{
	{Symbol: "BRCA1", Chromosome: "17", Start: 43044295, End: 43125364, Strand: -1},
	{Symbol: "TP53", Chromosome: "17", Start: 7661779, End: 7687538, Strand: -1},
	{Symbol: "MYC", Chromosome: "8", Start: 127735434, End: 127742951, Strand: 1},
}

func TestTableLookupFiltersRequestedSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gene_locations.csv")
	require.NoError(t, db.WriteLocationCSV(path, "hgnc_symbol", storedRows))

	got, err := TableLookup{Path: path}.Lookup(context.Background(), []string{"MYC", "BRCA1"}, humanProfile(t))
	require.NoError(t, err)
	assert.Equal(t, model.LocationTable{storedRows[0], storedRows[2]}, got)
}

func TestTableLookupRejectsOtherSpecies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gene_locations.csv")
	require.NoError(t, db.WriteLocationCSV(path, "hgnc_symbol", storedRows))

	mouse, err := model.ResolveSpecies("mouse")
	require.NoError(t, err)

	_, err = TableLookup{Path: path}.Lookup(context.Background(), []string{"MYC"}, mouse)
	assert.ErrorContains(t, err, "mgi_symbol")
}

func TestTableLookupMissingFile(t *testing.T) {
	_, err := TableLookup{Path: filepath.Join(t.TempDir(), "nope.csv")}.Lookup(context.Background(), []string{"MYC"}, humanProfile(t))
	assert.ErrorContains(t, err, "does not exist")
}

func TestStoreLookup(t *testing.T) {
	store, err := db.OpenGeneStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Import(context.Background(), model.Human, storedRows)
	require.NoError(t, err)

	var lookup Lookup = StoreLookup{Store: store}
	got, err := lookup.Lookup(context.Background(), []string{"TP53"}, humanProfile(t))
	require.NoError(t, err)
	assert.Equal(t, model.LocationTable{storedRows[1]}, got)
}

func TestLookupFunc(t *testing.T) {
	called := false
	var lookup Lookup = LookupFunc(func(ctx context.Context, symbols []string, profile model.SpeciesProfile) (model.LocationTable, error) {
		called = true
		return nil, nil
	})

	_, err := lookup.Lookup(context.Background(), []string{"X"}, humanProfile(t))
	require.NoError(t, err)
	assert.True(t, called)
}
