package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// LoadCSV imports observations from a CSV file.
func LoadCSV(path string) ([]model.CellSite, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	sites, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return sites, nil
}

// ReadCSV parses observations from CSV data with a header row.
//
// Headers are matched case-insensitively (lat, lon, operator, mcc, mnc, lac,
// tac, cid, pci, arfcn, rsrp, rsrq, rssi, band, timestamp); unknown columns
// are ignored. Blank and unparseable numeric cells become absent fields, and
// rows without both coordinates are dropped, per the ingestion contract.
//
// Design decision: We use encoding/csv with manual field handling rather
// than a tag-driven CSV binder because the blank-as-absent and
// malformed-as-absent semantics, plus case-insensitive header matching,
// cannot be expressed through struct tags.
func ReadCSV(r io.Reader) ([]model.CellSite, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows; missing cells read as absent
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []model.CellSite{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	sites := make([]model.CellSite, 0)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := csvRow{columns: columns, record: record}

		lat, latOK := row.float("lat")
		lon, lonOK := row.float("lon")
		if !latOK || !lonOK {
			continue
		}

		site := model.CellSite{
			Lat:       lat,
			Lon:       lon,
			Operator:  row.text("operator"),
			MCC:       row.intPtr("mcc"),
			MNC:       row.intPtr("mnc"),
			LAC:       row.intPtr("lac"),
			TAC:       row.intPtr("tac"),
			CID:       row.int64Ptr("cid"),
			PCI:       row.intPtr("pci"),
			ARFCN:     row.intPtr("arfcn"),
			Band:      row.text("band"),
			RSRP:      row.floatPtr("rsrp"),
			RSRQ:      row.floatPtr("rsrq"),
			RSSI:      row.floatPtr("rssi"),
			Timestamp: row.text("timestamp"),
			Reasons:   make([]model.Reason, 0),
		}
		sites = append(sites, site)
	}

	return sites, nil
}

// csvRow provides typed, case-insensitive access to one CSV record.
type csvRow struct {
	columns map[string]int
	record  []string
}

// text returns the trimmed cell value, or "" when the column is missing.
func (r csvRow) text(name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[idx])
}

// float parses a cell as float64. Blank and malformed cells report !ok.
func (r csvRow) float(name string) (float64, bool) {
	v := r.text(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// floatPtr is float with absent represented as nil.
func (r csvRow) floatPtr(name string) *float64 {
	if f, ok := r.float(name); ok {
		return &f
	}
	return nil
}

// intPtr parses a cell as an integer. Values with a fractional notation
// ("480.0") are accepted by truncation, matching common survey-app exports.
func (r csvRow) intPtr(name string) *int {
	f, ok := r.float(name)
	if !ok {
		return nil
	}
	v := int(f)
	return &v
}

// int64Ptr is intPtr for wide identifiers like LTE cell IDs.
func (r csvRow) int64Ptr(name string) *int64 {
	f, ok := r.float(name)
	if !ok {
		return nil
	}
	v := int64(f)
	return &v
}
