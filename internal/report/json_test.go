package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// TestJSONWriter tests the machine-readable report format.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.ScanReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Source != "survey.csv" {
			t.Errorf("got source %q", decoded.Source)
		}
		if len(decoded.Sites) != 2 {
			t.Fatalf("got %d sites, want 2", len(decoded.Sites))
		}
		if !decoded.Sites[0].SuspectedSimulator {
			t.Error("flagged site lost its flag")
		}
		if len(decoded.Sites[0].Reasons) != 3 {
			t.Errorf("got %d reasons, want 3", len(decoded.Sites[0].Reasons))
		}
		if decoded.Summary == nil || decoded.Summary.SuspectedCount != 1 {
			t.Errorf("got summary %+v", decoded.Summary)
		}
	})

	t.Run("computes summary when missing", func(t *testing.T) {
		t.Parallel()

		report := sampleReport()
		report.Summary = nil

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.ScanReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Summary == nil {
			t.Error("expected summary to be computed")
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var compact, pretty bytes.Buffer
		if _, err := NewJSONWriter(&compact).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewJSONWriter(&pretty, WithPrettyPrint()).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(pretty.String(), "\n  ") {
			t.Error("pretty output not indented")
		}
		if pretty.Len() <= compact.Len() {
			t.Error("pretty output should be longer than compact")
		}
	})

	t.Run("output ends with newline", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteSummary(sampleReport().Summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected trailing newline")
		}
	})
}

// TestFullJSONWriter tests the versioned report wrapper.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewFullJSONWriter(&buf, "1.2.3")

	if _, err := w.Write(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded VersionedReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Version != "1.2.3" {
		t.Errorf("got version %q", decoded.Version)
	}
	if decoded.Report == nil || decoded.Report.Source != "survey.csv" {
		t.Error("report payload missing")
	}
	if decoded.Summary == nil || decoded.Summary.SuspectedCount != 1 {
		t.Errorf("got summary %+v", decoded.Summary)
	}
}
