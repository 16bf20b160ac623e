package ingest

import (
	"strings"
	"testing"
)

// TestReadCSV tests CSV parsing against the ingestion contract.
func TestReadCSV(t *testing.T) {
	t.Parallel()

	t.Run("parses a full row", func(t *testing.T) {
		t.Parallel()

		input := "lat,lon,operator,mcc,mnc,tac,cid,pci,arfcn,band,rsrp,rsrq,rssi,timestamp\n" +
			"40.7580,-73.9855,AT&T,310,410,12345,100001,101,675,B2,-95.5,-11.0,-70.0,2025-06-01T12:00:00Z\n"

		sites, err := ReadCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sites) != 1 {
			t.Fatalf("got %d sites, want 1", len(sites))
		}

		s := sites[0]
		if s.Lat != 40.7580 || s.Lon != -73.9855 {
			t.Errorf("got coordinates (%v, %v)", s.Lat, s.Lon)
		}
		if s.Operator != "AT&T" {
			t.Errorf("got operator %q", s.Operator)
		}
		if s.MCC == nil || *s.MCC != 310 || s.MNC == nil || *s.MNC != 410 {
			t.Error("PLMN not parsed")
		}
		if s.TAC == nil || *s.TAC != 12345 {
			t.Error("TAC not parsed")
		}
		if s.CID == nil || *s.CID != 100001 {
			t.Error("CID not parsed")
		}
		if s.RSRP == nil || *s.RSRP != -95.5 {
			t.Error("RSRP not parsed")
		}
		if s.Timestamp != "2025-06-01T12:00:00Z" {
			t.Errorf("got timestamp %q", s.Timestamp)
		}
	})

	t.Run("headers match case-insensitively", func(t *testing.T) {
		t.Parallel()

		input := "Lat,LON,Operator\n40.1,-73.1,Verizon\n"

		sites, err := ReadCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sites) != 1 || sites[0].Operator != "Verizon" {
			t.Errorf("got %+v", sites)
		}
	})

	t.Run("blank and malformed cells become absent", func(t *testing.T) {
		t.Parallel()

		input := "lat,lon,tac,rsrp\n40.1,-73.1,,not-a-number\n"

		sites, err := ReadCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sites) != 1 {
			t.Fatalf("got %d sites, want 1", len(sites))
		}
		if sites[0].TAC != nil {
			t.Errorf("blank TAC should be absent, got %d", *sites[0].TAC)
		}
		if sites[0].RSRP != nil {
			t.Errorf("malformed RSRP should be absent, got %v", *sites[0].RSRP)
		}
	})

	t.Run("fractional notation truncates for integer fields", func(t *testing.T) {
		t.Parallel()

		input := "lat,lon,mnc\n40.1,-73.1,480.0\n"

		sites, err := ReadCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sites[0].MNC == nil || *sites[0].MNC != 480 {
			t.Errorf("got MNC %v, want 480", sites[0].MNC)
		}
	})

	t.Run("rows without coordinates are dropped", func(t *testing.T) {
		t.Parallel()

		input := "lat,lon,operator\n" +
			",-73.1,NoLat\n" +
			"40.1,,NoLon\n" +
			"40.2,-73.2,Kept\n"

		sites, err := ReadCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sites) != 1 || sites[0].Operator != "Kept" {
			t.Errorf("got %+v, want only the Kept row", sites)
		}
	})

	t.Run("ragged short rows read as absent", func(t *testing.T) {
		t.Parallel()

		input := "lat,lon,operator,tac\n40.1,-73.1\n"

		sites, err := ReadCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sites) != 1 {
			t.Fatalf("got %d sites, want 1", len(sites))
		}
		if sites[0].Operator != "" || sites[0].TAC != nil {
			t.Errorf("short row fields should be absent: %+v", sites[0])
		}
	})

	t.Run("empty input yields empty batch", func(t *testing.T) {
		t.Parallel()

		sites, err := ReadCSV(strings.NewReader(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sites) != 0 {
			t.Errorf("got %d sites, want 0", len(sites))
		}
	})

	t.Run("header only yields empty batch", func(t *testing.T) {
		t.Parallel()

		sites, err := ReadCSV(strings.NewReader("lat,lon\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sites) != 0 {
			t.Errorf("got %d sites, want 0", len(sites))
		}
	})
}
