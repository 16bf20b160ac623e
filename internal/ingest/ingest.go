package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// ErrUnknownFormat is returned when an input file's extension does not map
// to a supported importer.
var ErrUnknownFormat = errors.New("unknown input format")

// Format identifies a supported input source format.
type Format string

// Supported input formats.
const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// DetectFormat infers the input format from a file path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load imports observations from a file, dispatching on its extension.
func Load(ctx context.Context, path string) ([]model.CellSite, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return LoadCSV(path)
	case FormatJSON:
		return LoadJSON(path)
	case FormatSQLite:
		return LoadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}
