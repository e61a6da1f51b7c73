package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSpeciesHuman(t *testing.T) {
	p, err := ResolveSpecies("human")
	require.NoError(t, err)

	assert.Equal(t, Human, p.Key)
	assert.Equal(t, "hsapiens_gene_ensembl", p.Dataset)
	assert.Equal(t, "hg38", p.GenomeBuild)
	assert.Equal(t, "hgnc_symbol", p.SymbolAttribute)
}

func TestResolveSpeciesMouse(t *testing.T) {
	p, err := ResolveSpecies(" Mouse ")
	require.NoError(t, err)

	assert.Equal(t, Mouse, p.Key)
	assert.Equal(t, "mmusculus_gene_ensembl", p.Dataset)
	assert.Equal(t, "mm10", p.GenomeBuild)
	assert.Equal(t, "mgi_symbol", p.SymbolAttribute)
}

func TestResolveSpeciesUnsupported(t *testing.T) {
	for _, key := range []string{"", "zebrafish", "hg38"} {
		_, err := ResolveSpecies(key)
		require.Error(t, err, key)

		var unsupported *UnsupportedSpeciesError
		assert.True(t, errors.As(err, &unsupported))
		assert.ErrorIs(t, err, ErrUnsupportedSpecies)
		assert.Equal(t, key, unsupported.Species)
	}
}

func TestSpeciesListing(t *testing.T) {
	list := Species()
	require.Len(t, list, 2)
	assert.Equal(t, Human, list[0].Key)
	assert.Equal(t, Mouse, list[1].Key)
}

func TestEveryProfileHasAGenome(t *testing.T) {
	for _, p := range Species() {
		g, err := LookupGenome(p.GenomeBuild)
		require.NoError(t, err, p.GenomeBuild)
		assert.NotEmpty(t, g.Chromosomes)
	}
}

func TestLookupGenome(t *testing.T) {
	g, err := LookupGenome("hg38")
	require.NoError(t, err)

	chr17, ok := g.Chromosome("chr17")
	require.True(t, ok)
	assert.Equal(t, int64(83257441), chr17.Length)
	assert.Equal(t, int64(248956422), g.Longest())

	_, ok = g.Chromosome("17")
	assert.False(t, ok)

	_, err = LookupGenome("hg19")
	assert.Error(t, err)
}
