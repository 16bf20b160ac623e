package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	summary := summarize(report)

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeSummary(md, summary)
	w.writeSuspects(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeSummary(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("StingRayCatcher Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + summary.Source + "`"},
			{"Scan Date", summary.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Observations", strconv.Itoa(summary.TotalSites)},
			{"Status", w.getStatusText(summary)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on summary state.
func (w *MarkdownWriter) getStatusText(summary *model.Summary) string {
	if summary.Error != "" {
		return "❌ Error - " + summary.Error
	}
	return "✅ Complete"
}

// writeSummary writes the per-category summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Classification Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Reason", "Count"},
		Rows: [][]string{
			{"🕳️ Unknown identity", strconv.Itoa(summary.UnknownIdentityCount)},
			{"🎭 Identity mismatch", strconv.Itoa(summary.IdentityMismatchCount)},
			{"📶 Strong signal", strconv.Itoa(summary.StrongSignalCount)},
			{"0️⃣ Degenerate codes", strconv.Itoa(summary.DegenerateCodeCount)},
			{"📡 Dense cluster", strconv.Itoa(summary.DenseClusterCount)},
			{"**Suspected**", "**" + strconv.Itoa(summary.SuspectedCount) + "**"},
		},
	})
	md.PlainText("")

	if summary.HasSuspects() {
		w.writePieChart(md, summary)
	}

	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart of the reason distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Suspicion Reason Distribution"),
		piechart.WithShowData(true),
	)

	if summary.UnknownIdentityCount > 0 {
		chart.LabelAndIntValue("Unknown identity", uint64(summary.UnknownIdentityCount))
	}
	if summary.IdentityMismatchCount > 0 {
		chart.LabelAndIntValue("Identity mismatch", uint64(summary.IdentityMismatchCount))
	}
	if summary.StrongSignalCount > 0 {
		chart.LabelAndIntValue("Strong signal", uint64(summary.StrongSignalCount))
	}
	if summary.DegenerateCodeCount > 0 {
		chart.LabelAndIntValue("Degenerate codes", uint64(summary.DegenerateCodeCount))
	}
	if summary.DenseClusterCount > 0 {
		chart.LabelAndIntValue("Dense cluster", uint64(summary.DenseClusterCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the suspect count.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case summary.SuspectedCount > 0:
		md.Cautionf(
			"Possible cell-site simulator activity! %d of %d observations flagged.",
			summary.SuspectedCount, summary.TotalSites,
		)
	case summary.TotalSites == 0:
		md.Note("No observations in this batch.")
	default:
		md.Tip("No suspected cell-site simulators detected.")
	}
	md.PlainText("")
}

// writeSuspects writes the flagged observations section.
func (w *MarkdownWriter) writeSuspects(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Suspected Simulators")
	md.PlainText("")

	suspects := report.SuspectedSites()
	if len(suspects) == 0 {
		md.PlainText("No suspected cell-site simulators.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(suspects))
	for i, site := range suspects {
		rows[i] = []string{
			fmt.Sprintf("%.5f, %.5f", site.Lat, site.Lon),
			formatOperator(site.Operator),
			formatPLMN(site.MCC, site.MNC),
			formatIntPtr(site.TAC),
			formatInt64Ptr(site.CID),
			formatFloatPtr(site.RSRP),
			strconv.Itoa(len(site.Reasons)),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Location", "Operator", "PLMN", "TAC", "CID", "RSRP (dBm)", "Reasons"},
		Rows:   rows,
	})
	md.PlainText("")

	// Expandable reason details per flagged site
	for _, site := range suspects {
		title := fmt.Sprintf("%s at %.5f, %.5f", formatOperator(site.Operator), site.Lat, site.Lon)
		body := ""
		for _, reason := range site.Reasons {
			body += "- " + reason.Message + "\n"
		}
		md.Details(title, body)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [StingRayCatcher](https://github.com/JamesPriceZV/stingraycatcher)*")
}
