package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/yumyai/geneloc/logger"
	"github.com/yumyai/geneloc/pkg/model"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS gene_locations (
	species         TEXT    NOT NULL,
	symbol          TEXT    NOT NULL,
	chromosome_name TEXT    NOT NULL,
	start_position  INTEGER NOT NULL,
	end_position    INTEGER NOT NULL,
	strand          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS gene_locations_species_symbol ON gene_locations (species, symbol);
`

// GeneStore is an offline copy of gene coordinates kept in SQLite, filled
// from BioMart exports or earlier runs.
type GeneStore struct {
	genetableSQL *sql.DB
}

// OpenGeneStore opens (and creates when needed) the store at path. Use
// ":memory:" for a throwaway store.
func OpenGeneStore(path string) (*GeneStore, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open gene store: %w", err)
	}
	// One connection keeps ":memory:" stores coherent and sqlite writes serialized.
	sqlDB.SetMaxOpenConns(1)

	store := NewGeneStore(sqlDB)
	if err := store.migrate(context.Background()); err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Debug("Gene store ready", zap.String("path", path))
	return store, nil
}

func NewGeneStore(sqlDB *sql.DB) *GeneStore {
	return &GeneStore{genetableSQL: sqlDB}
}

func (s *GeneStore) migrate(ctx context.Context) error {
	if _, err := s.genetableSQL.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate gene store: %w", err)
	}
	return nil
}

func (s *GeneStore) Close() error {
	return s.genetableSQL.Close()
}

// Import replaces the rows of every symbol present in table for the species.
func (s *GeneStore) Import(ctx context.Context, species model.SpeciesKey, table model.LocationTable) (int, error) {
	tx, err := s.genetableSQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("fail to begin tx %w", err)
	}
	defer tx.Rollback()

	for _, symbol := range table.Symbols() {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM gene_locations WHERE species = ? AND symbol = ?`, string(species), symbol); err != nil {
			return 0, fmt.Errorf("clear %s: %w", symbol, err)
		}
	}

	stm, err := tx.PrepareContext(ctx, `
		INSERT INTO gene_locations (species, symbol, chromosome_name, start_position, end_position, strand)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stm.Close()

	for _, r := range table {
		if _, err := stm.ExecContext(ctx, string(species), r.Symbol, r.Chromosome, r.Start, r.End, r.Strand); err != nil {
			return 0, fmt.Errorf("insert %s: %w", r.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(table), nil
}

// Locations returns the stored rows for symbols in insertion order.
func (s *GeneStore) Locations(ctx context.Context, species model.SpeciesKey, symbols []string) (model.LocationTable, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(symbols)), ",")
	query := fmt.Sprintf(`
		SELECT symbol, chromosome_name, start_position, end_position, strand
		FROM gene_locations
		WHERE species = ? AND symbol IN (%s)
		ORDER BY rowid`, placeholders)

	args := make([]any, 0, len(symbols)+1)
	args = append(args, string(species))
	for _, sym := range symbols {
		args = append(args, sym)
	}

	rows, err := s.genetableSQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query gene store: %w", err)
	}
	defer rows.Close()

	var table model.LocationTable
	for rows.Next() {
		var r model.GeneLocationRecord
		if err := rows.Scan(&r.Symbol, &r.Chromosome, &r.Start, &r.End, &r.Strand); err != nil {
			return nil, err
		}
		table = append(table, r)
	}
	return table, rows.Err()
}

func (s *GeneStore) Count(ctx context.Context, species model.SpeciesKey) (int, error) {
	var n int
	err := s.genetableSQL.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gene_locations WHERE species = ?`, string(species)).Scan(&n)
	return n, err
}
