// Package loader reads a review table from disk into an immutable dataset.
//
// Supported inputs are delimited text (.csv, .tsv, .txt), Excel workbooks
// (.xlsx, .xlsm) and SQLite databases (.db, .sqlite, .sqlite3). Every
// source goes through the same header handling: names are trimmed, mapped
// onto canonical names, and de-duplicated.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

// Options configures Load.
type Options struct {
	// Columns maps source header names onto canonical names.
	Columns map[string]string
	// Sheet selects a workbook sheet; default is the first sheet.
	Sheet string
	// Table selects a database table; default is DefaultTable.
	Table string
	// Logger receives warnings about skipped rows. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultTable is the table read from SQLite inputs.
const DefaultTable = "reviews"

// Load reads the table at path. A missing file yields an error wrapping
// internalerr.ErrNotFound; callers should treat it as terminal.
func Load(ctx context.Context, path string, opts Options) (*dataset.Dataset, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, internalerr.ErrNotFound)
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("load %s: is a directory: %w", path, internalerr.ErrInvalidInput)
	}

	var (
		header []string
		rows   [][]string
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		header, rows, err = readDelimited(path, ',', opts.Logger)
	case ".tsv":
		header, rows, err = readDelimited(path, '\t', opts.Logger)
	case ".xlsx", ".xlsm":
		header, rows, err = readWorkbook(path, opts.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		table := opts.Table
		if table == "" {
			table = DefaultTable
		}
		header, rows, err = readSQLite(ctx, path, table)
	default:
		return nil, fmt.Errorf("load %s: extension %q: %w", path, ext, internalerr.ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	ds := build(path, header, rows, opts.Columns)
	opts.Logger.Debug("dataset loaded",
		slog.String("path", path),
		slog.Int("rows", ds.Len()),
		slog.Any("columns", ds.Columns()),
	)
	return ds, nil
}

// build normalizes the header and converts raw fields into cells.
func build(source string, header []string, rows [][]string, mapping map[string]string) *dataset.Dataset {
	columns := normalizeHeader(header, mapping)
	cells := make([][]dataset.Cell, len(rows))
	for i, row := range rows {
		r := make([]dataset.Cell, len(columns))
		for j := range columns {
			if j < len(row) {
				r[j] = dataset.Parse(row[j])
			}
		}
		cells[i] = r
	}
	return dataset.New(source, columns, cells)
}

// normalizeHeader trims names, applies the canonical mapping and suffixes
// repeated names with ".1", ".2", ... so every column stays addressable.
func normalizeHeader(header []string, mapping map[string]string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if mapped, ok := mapping[name]; ok && mapped != "" {
			name = mapped
		}
		if name == "" {
			name = "unnamed_" + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		out[i] = name
	}
	return out
}
