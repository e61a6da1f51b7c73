package db

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/yumyai/geneloc/internal/util"
	"github.com/yumyai/geneloc/pkg/model"
)

// Column names after the symbol column, which is named after the species'
// symbol attribute (hgnc_symbol, mgi_symbol).
var locationColumns = []string{"chromosome_name", "start_position", "end_position", "strand"}

func LocationHeader(symbolAttribute string) []string {
	return append([]string{symbolAttribute}, locationColumns...)
}

// WriteLocationCSV stores the raw lookup result. The parent directory is
// created when missing and an existing file is overwritten.
func WriteLocationCSV(path, symbolAttribute string, table model.LocationTable) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := EncodeLocations(f, symbolAttribute, table); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func EncodeLocations(w io.Writer, symbolAttribute string, table model.LocationTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LocationHeader(symbolAttribute)); err != nil {
		return err
	}
	for _, r := range table {
		row := []string{
			r.Symbol,
			r.Chromosome,
			strconv.FormatInt(r.Start, 10),
			strconv.FormatInt(r.End, 10),
			strconv.Itoa(int(r.Strand)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadLocationCSV reads a file written by WriteLocationCSV and reports the
// symbol attribute found in its header.
func ReadLocationCSV(path string) (model.LocationTable, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return DecodeLocations(f, ',')
}

// DecodeLocations parses a header line followed by symbol, chromosome, start,
// end and strand columns. The BioMart TSV answer has the same shape.
func DecodeLocations(r io.Reader, sep rune) (model.LocationTable, string, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = len(locationColumns) + 1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, "", fmt.Errorf("empty location table")
	}
	if err != nil {
		return nil, "", fmt.Errorf("read header: %w", err)
	}
	symbolAttribute := header[0]

	var table model.LocationTable
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}
		row, err := parseLocation(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, "", fmt.Errorf("line %d: %w", line, err)
		}
		table = append(table, row)
	}
	return table, symbolAttribute, nil
}

func parseLocation(rec []string) (model.GeneLocationRecord, error) {
	start, err := strconv.ParseInt(rec[2], 10, 64)
	if err != nil {
		return model.GeneLocationRecord{}, fmt.Errorf("invalid start_position %q", rec[2])
	}
	end, err := strconv.ParseInt(rec[3], 10, 64)
	if err != nil {
		return model.GeneLocationRecord{}, fmt.Errorf("invalid end_position %q", rec[3])
	}
	strand, err := strconv.ParseInt(rec[4], 10, 8)
	if err != nil {
		return model.GeneLocationRecord{}, fmt.Errorf("invalid strand %q", rec[4])
	}
	return model.GeneLocationRecord{
		Symbol:     rec[0],
		Chromosome: rec[1],
		Start:      start,
		End:        end,
		Strand:     int8(strand),
	}, nil
}
