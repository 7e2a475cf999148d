// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopdash/shopdash/internal/testable"
)

var (
	// ErrNotFound indicates the dataset file does not exist.
	ErrNotFound = errors.New("dataset not found")

	// ErrMissingColumn indicates a required column is absent from the header.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidValue indicates a numeric column holds a non-numeric cell.
	ErrInvalidValue = errors.New("invalid value")
)

// naValues are the cell spellings treated as missing. The set matches the
// default missing markers of common dataframe CSV readers.
var naValues = map[string]bool{
	"":         true,
	"NA":       true,
	"N/A":      true,
	"n/a":      true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"<NA>":     true,
	"NaN":      true,
	"nan":      true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"-1.#IND":  true,
	"1.#QNAN":  true,
	"-1.#QNAN": true,
	"null":     true,
	"NULL":     true,
	"None":     true,
}

// ctxCheckEvery is how many rows are parsed between context checks.
const ctxCheckEvery = 1024

// Load reads the CSV at path from the default file system.
func Load(ctx context.Context, path string) (*Dataset, error) {
	return LoadFS(ctx, testable.DefaultFS, path)
}

// LoadFS reads the CSV at path from fsys.
func LoadFS(ctx context.Context, fsys testable.FileSystem, path string) (*Dataset, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return Read(ctx, f, path)
}

// Read parses CSV data from r. source names the data in errors and in the
// resulting Dataset.
func Read(ctx context.Context, r io.Reader, source string) (*Dataset, error) {
	start := time.Now()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w: %s (empty file)", source, ErrMissingColumn, ColPrice)
		}
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var products []Product
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, line, err)
		}
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		p, err := parseRecord(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, line, err)
		}
		products = append(products, p)
	}

	return &Dataset{
		source:   source,
		loadedAt: start,
		products: products,
	}, nil
}

// columnIndex maps each required column to its header position.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func parseRecord(rec []string, idx map[string]int) (Product, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var p Product
	var err error
	if p.Price, err = parseNumber(ColPrice, cell(ColPrice)); err != nil {
		return Product{}, err
	}
	if p.Rating, err = parseNumber(ColRating, cell(ColRating)); err != nil {
		return Product{}, err
	}
	if p.Reviews, err = parseNumber(ColReviews, cell(ColReviews)); err != nil {
		return Product{}, err
	}
	if cat := cell(ColPriceCategory); !naValues[strings.TrimSpace(cat)] {
		p.PriceCategory = cat
	}
	return p, nil
}

func parseNumber(col, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if naValues[s] {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %s: %q", ErrInvalidValue, col, raw)
	}
	return v, nil
}
