package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// Writer defines the interface for report output.
// Implementations write classification results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.ScanReport) (int, error)

	// WriteSummary outputs only the summary portion.
	// This is useful for quick overviews without per-site details.
	WriteSummary(summary *model.Summary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.ScanReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(summary *model.Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// summarize returns the report's summary, computing it if the summarize
// step has not run.
func summarize(report *model.ScanReport) *model.Summary {
	if report.Summary != nil {
		return report.Summary
	}
	return model.NewSummary(report)
}

// formatIntPtr renders an optional integer field, "-" when absent.
func formatIntPtr(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// formatInt64Ptr renders an optional wide integer field, "-" when absent.
func formatInt64Ptr(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

// formatFloatPtr renders an optional measurement, "-" when absent.
func formatFloatPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// formatOperator renders the operator name, "unknown" when absent.
func formatOperator(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}

// formatPLMN renders an MCC/MNC pair, "-" when either half is absent.
func formatPLMN(mcc, mnc *int) string {
	if mcc == nil || mnc == nil {
		return "-"
	}
	return fmt.Sprintf("%d-%d", *mcc, *mnc)
}
