package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// LoadJSON imports observations from a JSON file holding an array of
// objects with the same keys as the CSV columns.
func LoadJSON(path string) ([]model.CellSite, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	sites, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("read json %s: %w", path, err)
	}
	return sites, nil
}

// ReadJSON parses observations from a JSON array. Keys are matched
// case-insensitively and numeric values may arrive as JSON numbers or as
// numeric strings; anything unparseable becomes an absent field. Objects
// without both coordinates are dropped.
func ReadJSON(r io.Reader) ([]model.CellSite, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep full precision for wide cell identifiers

	var items []map[string]any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode array: %w", err)
	}

	sites := make([]model.CellSite, 0, len(items))
	for _, item := range items {
		obj := jsonObject(item)

		lat, latOK := obj.float("lat")
		lon, lonOK := obj.float("lon")
		if !latOK || !lonOK {
			continue
		}

		site := model.CellSite{
			Lat:       lat,
			Lon:       lon,
			Operator:  obj.text("operator"),
			MCC:       obj.intPtr("mcc"),
			MNC:       obj.intPtr("mnc"),
			LAC:       obj.intPtr("lac"),
			TAC:       obj.intPtr("tac"),
			CID:       obj.int64Ptr("cid"),
			PCI:       obj.intPtr("pci"),
			ARFCN:     obj.intPtr("arfcn"),
			Band:      obj.text("band"),
			RSRP:      obj.floatPtr("rsrp"),
			RSRQ:      obj.floatPtr("rsrq"),
			RSSI:      obj.floatPtr("rssi"),
			Timestamp: obj.text("timestamp"),
			Reasons:   make([]model.Reason, 0),
		}
		sites = append(sites, site)
	}

	return sites, nil
}

// jsonObject provides typed, case-insensitive access to one decoded object.
type jsonObject map[string]any

// value returns the raw value for a key, matched case-insensitively.
func (o jsonObject) value(name string) (any, bool) {
	if v, ok := o[name]; ok {
		return v, true
	}
	for k, v := range o {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// text returns a string value, formatting numbers back to text where a
// source emitted e.g. a numeric timestamp. Absent and null become "".
func (o jsonObject) text(name string) string {
	v, ok := o.value(name)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// float coerces a value to float64 from a JSON number or numeric string.
func (o jsonObject) float(name string) (float64, bool) {
	v, ok := o.value(name)
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// floatPtr is float with absent represented as nil.
func (o jsonObject) floatPtr(name string) *float64 {
	if f, ok := o.float(name); ok {
		return &f
	}
	return nil
}

// intPtr coerces a value to int, accepting fractional notation by truncation.
func (o jsonObject) intPtr(name string) *int {
	f, ok := o.float(name)
	if !ok {
		return nil
	}
	v := int(f)
	return &v
}

// int64Ptr is intPtr for wide identifiers like LTE cell IDs.
func (o jsonObject) int64Ptr(name string) *int64 {
	f, ok := o.float(name)
	if !ok {
		return nil
	}
	v := int64(f)
	return &v
}
