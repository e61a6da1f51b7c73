package model

import (
	"strconv"

	"github.com/yumyai/geneloc/internal/util"
)

const ChromosomePrefix = "chr"

// GeneQuery is the input of an annotation lookup.
type GeneQuery struct {
	Symbols []string
	Profile SpeciesProfile
}

// NewGeneQuery de-duplicates symbols (first occurrence wins) and rejects an
// empty list.
func NewGeneQuery(symbols []string, profile SpeciesProfile) (GeneQuery, error) {
	unique := util.UniqueStrings(symbols)
	if len(unique) == 0 {
		return GeneQuery{}, ErrNoGenes
	}
	return GeneQuery{Symbols: unique, Profile: profile}, nil
}

// GeneLocationRecord is one row from the annotation service. A symbol may map
// to several rows (alternative loci) or none at all.
type GeneLocationRecord struct {
	Symbol     string `json:"symbol"`
	Chromosome string `json:"chromosome_name"`
	Start      int64  `json:"start_position"`
	End        int64  `json:"end_position"`
	Strand     int8   `json:"strand"`
}

func (r GeneLocationRecord) Length() int64 {
	return r.End - r.Start + 1
}

// StrandSymbol renders the strand as "+" or "-".
func (r GeneLocationRecord) StrandSymbol() string {
	if r.Strand < 0 {
		return "-"
	}
	return "+"
}

// LocationTable holds rows exactly as returned by the lookup, chromosome names
// without any prefix.
type LocationTable []GeneLocationRecord

// AnnotatedTable holds the same rows with "chr"-prefixed chromosome names.
type AnnotatedTable []GeneLocationRecord

// Symbols returns the distinct symbols present in the table, in row order.
func (t LocationTable) Symbols() []string {
	names := make([]string, 0, len(t))
	for _, r := range t {
		names = append(names, r.Symbol)
	}
	return util.UniqueStrings(names)
}

// Missing returns the requested symbols that have no row in the table.
func (t LocationTable) Missing(requested []string) []string {
	found := make(map[string]struct{}, len(t))
	for _, r := range t {
		found[r.Symbol] = struct{}{}
	}
	var missing []string
	for _, s := range requested {
		if _, ok := found[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// AddChromosomePrefix prepends "chr" to every chromosome name. It does not
// look at the existing value, so applying it twice yields "chrchr...".
func AddChromosomePrefix(table LocationTable) AnnotatedTable {
	out := make(AnnotatedTable, len(table))
	for i, r := range table {
		r.Chromosome = ChromosomePrefix + r.Chromosome
		out[i] = r
	}
	return out
}

// CircosRow is the positional layout expected by the circular renderer. The
// label must stay in the fourth column.
type CircosRow struct {
	Chromosome string
	Start      int64
	End        int64
	Label      string
}

func (c CircosRow) Columns() []string {
	return []string{
		c.Chromosome,
		strconv.FormatInt(c.Start, 10),
		strconv.FormatInt(c.End, 10),
		c.Label,
	}
}

func ToCircosRows(table AnnotatedTable) []CircosRow {
	rows := make([]CircosRow, len(table))
	for i, r := range table {
		rows[i] = CircosRow{
			Chromosome: r.Chromosome,
			Start:      r.Start,
			End:        r.End,
			Label:      r.Symbol,
		}
	}
	return rows
}
