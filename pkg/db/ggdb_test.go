package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/geneloc/pkg/model"
)

func openTestStore(t *testing.T) *GeneStore {
	t.Helper()
	store, err := OpenGeneStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGeneStoreImportAndLookup(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	n, err := store.Import(ctx, model.Human, testTable())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.Locations(ctx, model.Human, []string{"MYC", "BRCA1", "NOPE"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	// insertion order, not request order
	assert.Equal(t, "BRCA1", got[0].Symbol)
	assert.Equal(t, testTable()[2], got[1])

	other, err := store.Locations(ctx, model.Mouse, []string{"MYC"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGeneStoreImportReplacesSymbol(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.Import(ctx, model.Human, testTable())
	require.NoError(t, err)

	moved := model.LocationTable{{Symbol: "TP53", Chromosome: "17", Start: 1, End: 2, Strand: 1}}
	_, err = store.Import(ctx, model.Human, moved)
	require.NoError(t, err)

	got, err := store.Locations(ctx, model.Human, []string{"TP53"})
	require.NoError(t, err)
	assert.Equal(t, moved, got)

	count, err := store.Count(ctx, model.Human)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestGeneStorePersistsOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "genes.db")

	store, err := OpenGeneStore(path)
	require.NoError(t, err)
	_, err = store.Import(ctx, model.Mouse, model.LocationTable{{Symbol: "Trp53", Chromosome: "11", Start: 69580359, End: 69591873, Strand: 1}})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenGeneStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Locations(ctx, model.Mouse, []string{"Trp53"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "11", got[0].Chromosome)
}

func TestGeneStoreEmptySymbols(t *testing.T) {
	got, err := openTestStore(t).Locations(context.Background(), model.Human, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
