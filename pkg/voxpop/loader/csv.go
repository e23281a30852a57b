package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

// readDelimited reads a header row and data rows. Rows whose field count
// differs from the header are skipped with a warning.
func readDelimited(path string, comma rune, logger *slog.Logger) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("no header row: %w", internalerr.ErrInvalidInput)
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	// Records must match the header width from here on.
	reader.FieldsPerRecord = len(header)

	var rows [][]string
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				logger.Warn("skipping malformed row",
					slog.String("path", path),
					slog.Int("line", perr.Line),
					slog.String("error", perr.Err.Error()),
				)
				continue
			}
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, row)
	}
	if skipped > 0 {
		logger.Warn("malformed rows skipped", slog.String("path", path), slog.Int("count", skipped))
	}
	return header, rows, nil
}
