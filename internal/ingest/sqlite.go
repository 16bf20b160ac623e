package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// sqliteQuery reads the survey-app export shape: a `cells` table whose
// columns mirror the CSV headers. NULLs are absent fields.
const sqliteQuery = `
SELECT lat, lon, operator, mcc, mnc, lac, tac, cid, pci, arfcn,
       band, rsrp, rsrq, rssi, timestamp
FROM cells`

// LoadSQLite imports observations from a SQLite database exported by a
// survey app. The database is opened read-only: importing must never modify
// the user's survey data.
func LoadSQLite(ctx context.Context, path string) ([]model.CellSite, error) {
	// sql.Open does not touch the file; stat first so a missing database is
	// reported as such instead of as an opaque driver error on first query.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite database: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close() //nolint:errcheck // read-only connection

	rows, err := db.QueryContext(ctx, sqliteQuery)
	if err != nil {
		return nil, fmt.Errorf("query cells table: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err checked below

	sites := make([]model.CellSite, 0)
	for rows.Next() {
		var (
			lat, lon           sql.NullFloat64
			operator, band, ts sql.NullString
			mcc, mnc, lac, tac sql.NullInt64
			cid, pci, arfcn    sql.NullInt64
			rsrp, rsrq, rssi   sql.NullFloat64
		)
		if err := rows.Scan(
			&lat, &lon, &operator, &mcc, &mnc, &lac, &tac, &cid, &pci,
			&arfcn, &band, &rsrp, &rsrq, &rssi, &ts,
		); err != nil {
			return nil, fmt.Errorf("scan cell row: %w", err)
		}

		// Same contract as the file importers: no coordinates, no record.
		if !lat.Valid || !lon.Valid {
			continue
		}

		site := model.CellSite{
			Lat:       lat.Float64,
			Lon:       lon.Float64,
			Operator:  operator.String,
			MCC:       nullInt(mcc),
			MNC:       nullInt(mnc),
			LAC:       nullInt(lac),
			TAC:       nullInt(tac),
			CID:       nullInt64(cid),
			PCI:       nullInt(pci),
			ARFCN:     nullInt(arfcn),
			Band:      band.String,
			RSRP:      nullFloat(rsrp),
			RSRQ:      nullFloat(rsrq),
			RSSI:      nullFloat(rssi),
			Timestamp: ts.String,
			Reasons:   make([]model.Reason, 0),
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cells table: %w", err)
	}

	return sites, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
