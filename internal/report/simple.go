package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showClean controls whether unflagged observations are listed too.
	showClean bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowClean configures the writer to list unflagged observations.
func WithShowClean(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showClean = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showClean:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	summary := summarize(report)

	w.writeHeader(&sb, summary)
	w.writeSummary(&sb, summary)
	w.writeSuspects(&sb, report)
	if w.showClean {
		w.writeClean(&sb, report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs only the summary in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeSummary(&sb, summary)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      STINGRAYCATCHER REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Source:       %s\n", summary.Source))
	sb.WriteString(fmt.Sprintf("Scan Date:    %s\n", summary.DateScanned.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Observations: %d\n", summary.TotalSites))

	if summary.Error != "" {
		sb.WriteString(fmt.Sprintf("Status:       ERROR - %s\n", summary.Error))
	} else {
		sb.WriteString("Status:       Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the per-category summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CLASSIFICATION SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  UNKNOWN IDENTITY:  %d\n", summary.UnknownIdentityCount))
	sb.WriteString(fmt.Sprintf("  IDENTITY MISMATCH: %d\n", summary.IdentityMismatchCount))
	sb.WriteString(fmt.Sprintf("  STRONG SIGNAL:     %d\n", summary.StrongSignalCount))
	sb.WriteString(fmt.Sprintf("  DEGENERATE CODES:  %d\n", summary.DegenerateCodeCount))
	sb.WriteString(fmt.Sprintf("  DENSE CLUSTER:     %d\n", summary.DenseClusterCount))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  SUSPECTED: %d of %d observations\n", summary.SuspectedCount, summary.TotalSites))
	sb.WriteString("\n")
}

// writeSuspects writes the flagged observations section.
func (w *SimpleWriter) writeSuspects(sb *strings.Builder, report *model.ScanReport) {
	suspects := report.SuspectedSites()

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUSPECTED SIMULATORS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(suspects) == 0 {
		sb.WriteString("  No suspected cell-site simulators.\n\n")
		return
	}

	for _, site := range suspects {
		w.writeSite(sb, &site, "[!]")
	}
}

// writeClean writes the unflagged observations section.
func (w *SimpleWriter) writeClean(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CLEAN OBSERVATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	clean := 0
	for i := range report.Sites {
		site := &report.Sites[i]
		if site.SuspectedSimulator {
			continue
		}
		clean++
		w.writeSite(sb, site, "[ ]")
	}

	if clean == 0 {
		sb.WriteString("  No clean observations.\n\n")
	}
}

// writeSite writes one observation with its key fields and reasons.
func (w *SimpleWriter) writeSite(sb *strings.Builder, site *model.CellSite, marker string) {
	sb.WriteString(fmt.Sprintf("  %s %s at (%.5f, %.5f)\n",
		marker, formatOperator(site.Operator), site.Lat, site.Lon))
	sb.WriteString(fmt.Sprintf("      PLMN: %s  TAC: %s  LAC: %s  CID: %s\n",
		formatPLMN(site.MCC, site.MNC),
		formatIntPtr(site.TAC),
		formatIntPtr(site.LAC),
		formatInt64Ptr(site.CID)))
	sb.WriteString(fmt.Sprintf("      RSRP: %s dBm  RSSI: %s dBm\n",
		formatFloatPtr(site.RSRP), formatFloatPtr(site.RSSI)))

	if w.verbose {
		sb.WriteString(fmt.Sprintf("      PCI: %s  ARFCN: %s  Band: %s  Time: %s\n",
			formatIntPtr(site.PCI), formatIntPtr(site.ARFCN),
			site.Band, site.Timestamp))
	}

	for _, reason := range site.Reasons {
		sb.WriteString(fmt.Sprintf("      * %s\n", reason.Message))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by StingRayCatcher\n")
	sb.WriteString("https://github.com/JamesPriceZV/stingraycatcher\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
