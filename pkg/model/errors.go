package model

import (
	"errors"
	"fmt"
	"strings"
)

// Defining possible error
var (
	ErrUnsupportedSpecies = errors.New("unsupported species")
	ErrNoLocationsFound   = errors.New("no gene locations found")
	ErrNoGenes            = errors.New("no gene symbols given")
)

type UnsupportedSpeciesError struct {
	Species string
}

func (e *UnsupportedSpeciesError) Error() string {
	return fmt.Sprintf("unsupported species %q (supported: %s)", e.Species, strings.Join(supportedSpeciesKeys(), ", "))
}

func (e *UnsupportedSpeciesError) Is(target error) bool {
	return target == ErrUnsupportedSpecies
}

type NoLocationsFoundError struct {
	Symbols []string
	Dataset string
}

func (e *NoLocationsFoundError) Error() string {
	return fmt.Sprintf("no locations found in %s for %d gene(s): %s", e.Dataset, len(e.Symbols), strings.Join(e.Symbols, ", "))
}

func (e *NoLocationsFoundError) Is(target error) bool {
	return target == ErrNoLocationsFound
}
