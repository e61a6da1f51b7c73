package model

import (
	"fmt"
	"strings"
)

// Chromosome of a reference assembly. Centromere is the approximate
// centromere midpoint; zero for acrocentric layouts drawn without a constriction.
type Chromosome struct {
	Name       string
	Length     int64
	Centromere int64
}

// Genome is an ordered karyotype of a reference assembly ("chr"-prefixed names).
type Genome struct {
	Build       string
	Chromosomes []Chromosome
	index       map[string]int
}

func newGenome(build string, chromosomes []Chromosome) *Genome {
	g := &Genome{Build: build, Chromosomes: chromosomes, index: make(map[string]int, len(chromosomes))}
	for i, c := range chromosomes {
		g.index[c.Name] = i
	}
	return g
}

// Chromosome finds a chromosome by its prefixed name.
func (g *Genome) Chromosome(name string) (Chromosome, bool) {
	i, ok := g.Row(name)
	if !ok {
		return Chromosome{}, false
	}
	return g.Chromosomes[i], true
}

// Row is the position of the named chromosome in karyotype order.
func (g *Genome) Row(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

func (g *Genome) TotalLength() int64 {
	var total int64
	for _, c := range g.Chromosomes {
		total += c.Length
	}
	return total
}

func (g *Genome) Longest() int64 {
	var longest int64
	for _, c := range g.Chromosomes {
		if c.Length > longest {
			longest = c.Length
		}
	}
	return longest
}

// Lengths from UCSC chromInfo, primary chromosomes only.
var genomes = map[string]*Genome{
	"hg38": newGenome("hg38", []Chromosome{
		{"chr1", 248956422, 123400000},
		{"chr2", 242193529, 93900000},
		{"chr3", 198295559, 90900000},
		{"chr4", 190214555, 50000000},
		{"chr5", 181538259, 48800000},
		{"chr6", 170805979, 59800000},
		{"chr7", 159345973, 60100000},
		{"chr8", 145138636, 45200000},
		{"chr9", 138394717, 43000000},
		{"chr10", 133797422, 39800000},
		{"chr11", 135086622, 53400000},
		{"chr12", 133275309, 35500000},
		{"chr13", 114364328, 17700000},
		{"chr14", 107043718, 17200000},
		{"chr15", 101991189, 19000000},
		{"chr16", 90338345, 36800000},
		{"chr17", 83257441, 25100000},
		{"chr18", 80373285, 18500000},
		{"chr19", 58617616, 26200000},
		{"chr20", 64444167, 28100000},
		{"chr21", 46709983, 12000000},
		{"chr22", 50818468, 15000000},
		{"chrX", 156040895, 60600000},
		{"chrY", 57227415, 10400000},
	}),
	"mm10": newGenome("mm10", []Chromosome{
		{"chr1", 195471971, 0},
		{"chr2", 182113224, 0},
		{"chr3", 160039680, 0},
		{"chr4", 156508116, 0},
		{"chr5", 151834684, 0},
		{"chr6", 149736546, 0},
		{"chr7", 145441459, 0},
		{"chr8", 129401213, 0},
		{"chr9", 124595110, 0},
		{"chr10", 130694993, 0},
		{"chr11", 122082543, 0},
		{"chr12", 120129022, 0},
		{"chr13", 120421639, 0},
		{"chr14", 124902244, 0},
		{"chr15", 104043685, 0},
		{"chr16", 98207768, 0},
		{"chr17", 94987271, 0},
		{"chr18", 90702639, 0},
		{"chr19", 61431566, 0},
		{"chrX", 171031299, 0},
		{"chrY", 91744698, 0},
	}),
}

// LookupGenome returns the karyotype of a genome build such as "hg38".
func LookupGenome(build string) (*Genome, error) {
	g, ok := genomes[strings.TrimSpace(build)]
	if !ok {
		return nil, fmt.Errorf("unknown genome build %q", build)
	}
	return g, nil
}
