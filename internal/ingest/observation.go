package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// DecodeObservation parses a single JSON-encoded observation, as delivered
// one per message on a live feed. It applies the same normalization contract
// as the file importers. The bool result is false when the observation lacks
// coordinates and must be dropped.
func DecodeObservation(data []byte) (model.CellSite, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var item map[string]any
	if err := dec.Decode(&item); err != nil {
		return model.CellSite{}, false, fmt.Errorf("decode observation: %w", err)
	}
	obj := jsonObject(item)

	lat, latOK := obj.float("lat")
	lon, lonOK := obj.float("lon")
	if !latOK || !lonOK {
		return model.CellSite{}, false, nil
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
	return site, true, nil
}
