package model

import (
	"sort"
	"strings"
)

type SpeciesKey string

const (
	Human SpeciesKey = "human"
	Mouse SpeciesKey = "mouse"
)

// SpeciesProfile is everything the pipeline needs to know about a species:
// where to query, which BioMart dataset and symbol attribute to use, and which
// reference assembly the coordinates belong to.
type SpeciesProfile struct {
	Key             SpeciesKey `json:"species"`
	Dataset         string     `json:"dataset"`
	GenomeBuild     string     `json:"genome_build"`
	SymbolAttribute string     `json:"symbol_attribute"`
	MartHost        string     `json:"mart_host"`
}

// Adding a species is a new entry here, the pipeline does not branch on it.
var speciesProfiles = map[SpeciesKey]SpeciesProfile{
	Human: {
		Key:             Human,
		Dataset:         "hsapiens_gene_ensembl",
		GenomeBuild:     "hg38",
		SymbolAttribute: "hgnc_symbol",
		MartHost:        "https://www.ensembl.org",
	},
	// Release 102 is the last Ensembl release on GRCm38 (mm10).
	Mouse: {
		Key:             Mouse,
		Dataset:         "mmusculus_gene_ensembl",
		GenomeBuild:     "mm10",
		SymbolAttribute: "mgi_symbol",
		MartHost:        "https://nov2020.archive.ensembl.org",
	},
}

// ResolveSpecies returns the profile for key. The lookup ignores case and
// surrounding whitespace.
func ResolveSpecies(key string) (SpeciesProfile, error) {
	normalized := SpeciesKey(strings.ToLower(strings.TrimSpace(key)))
	profile, ok := speciesProfiles[normalized]
	if !ok {
		return SpeciesProfile{}, &UnsupportedSpeciesError{Species: key}
	}
	return profile, nil
}

// Species lists all supported profiles ordered by key.
func Species() []SpeciesProfile {
	out := make([]SpeciesProfile, 0, len(speciesProfiles))
	for _, p := range speciesProfiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func supportedSpeciesKeys() []string {
	keys := make([]string, 0, len(speciesProfiles))
	for _, p := range Species() {
		keys = append(keys, string(p.Key))
	}
	return keys
}
