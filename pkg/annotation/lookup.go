// Package annotation resolves gene symbols to genomic coordinates.
package annotation

import (
	"context"
	"fmt"

	"github.com/yumyai/geneloc/internal/util"
	"github.com/yumyai/geneloc/pkg/db"
	"github.com/yumyai/geneloc/pkg/model"
)

// Lookup returns one row per locus of the given symbols. Unknown symbols are
// absent from the result; an empty result is not an error at this level.
type Lookup interface {
	Lookup(ctx context.Context, symbols []string, profile model.SpeciesProfile) (model.LocationTable, error)
}

// LookupFunc adapts a plain function to Lookup.
type LookupFunc func(ctx context.Context, symbols []string, profile model.SpeciesProfile) (model.LocationTable, error)

func (f LookupFunc) Lookup(ctx context.Context, symbols []string, profile model.SpeciesProfile) (model.LocationTable, error) {
	return f(ctx, symbols, profile)
}

// StoreLookup answers from the offline SQLite gene store.
type StoreLookup struct {
	Store *db.GeneStore
}

func (l StoreLookup) Lookup(ctx context.Context, symbols []string, profile model.SpeciesProfile) (model.LocationTable, error) {
	return l.Store.Locations(ctx, profile.Key, symbols)
}

// TableLookup replays a previously saved gene_locations.csv. Rows are
// filtered to the requested symbols and keep their file order.
type TableLookup struct {
	Path string
}

func (l TableLookup) Lookup(ctx context.Context, symbols []string, profile model.SpeciesProfile) (model.LocationTable, error) {
	if !util.FileExists(l.Path) {
		return nil, fmt.Errorf("location table %s does not exist", l.Path)
	}
	table, attr, err := db.ReadLocationCSV(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.Path, err)
	}
	if attr != profile.SymbolAttribute {
		return nil, fmt.Errorf("%s holds %s symbols, %s needs %s", l.Path, attr, profile.Key, profile.SymbolAttribute)
	}

	wanted := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		wanted[s] = struct{}{}
	}

	var out model.LocationTable
	for _, r := range table {
		if _, ok := wanted[r.Symbol]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}
