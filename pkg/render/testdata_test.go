package render

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yumyai/geneloc/pkg/model"
)

func annotatedRows() model.AnnotatedTable {
	return model.AddChromosomePrefix(model.LocationTable{
		{Symbol: "BRCA1", Chromosome: "17", Start: 43044295, End: 43125364, Strand: -1},
		{Symbol: "TP53", Chromosome: "17", Start: 7661779, End: 7687538, Strand: -1},
		{Symbol: "MYC", Chromosome: "8", Start: 127735434, End: 127742951, Strand: 1},
	})
}

func requireFileHasPrefix(t *testing.T, path, prefix string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), len(prefix))
	require.Equal(t, prefix, string(data[:len(prefix)]))
}
