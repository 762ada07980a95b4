// Package render turns report snapshots into human-readable output. The
// text writer mirrors the classic five-section console report; the markdown
// writer feeds gomarkdown for HTML surfaces.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"cleanframe/domain/report"
)

// TextWriter writes a five-section plain-text report
type TextWriter struct{}

// NewTextWriter creates a plain-text report writer
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write renders the full report to w, one section at a time. Sections with
// nothing to show still print their header with a short message so the
// report shape is stable.
func (t *TextWriter) Write(w io.Writer, rep *report.Report, columns []string) error {
	var b strings.Builder

	writeHeader(&b, "Duplicated Rows")
	if rep.Duplicates.HasDuplicates() {
		fmt.Fprintf(&b,
			"The dataset has %d duplicated rows, which is %.2f%% from the dataset, duplicated rows are:\n\n",
			rep.Duplicates.Instances, rep.Duplicates.Percentage)
		writeRowTable(&b, columns, rep.Duplicates.RowIndices, rep.Duplicates.Rows)
	} else {
		b.WriteString("No duplicated rows.\n")
	}
	b.WriteString("\n")

	writeHeader(&b, "Numerical Columns Optimization")
	if len(rep.Downcasts) > 0 {
		b.WriteString("These numerical columns can be downgraded:\n\n")
		tw := newTable(&b, "", "columns_to_convert")
		for _, group := range rep.Downcasts {
			fmt.Fprintf(tw, "%s\t%s\n", group.Target, strings.Join(group.Columns, ", "))
		}
		tw.Flush()
	} else {
		b.WriteString("No numerical columns to optimize.\n")
	}
	b.WriteString("\n")

	writeHeader(&b, "Categorical Columns Optimization")
	if len(rep.Categoricals) > 0 {
		b.WriteString("These columns can be converted to categorical:\n\n")
		tw := newTable(&b, "", "unique_values")
		for _, entry := range rep.Categoricals {
			fmt.Fprintf(tw, "%s\t%s\n", entry.Column, strings.Join(entry.Values, ", "))
		}
		tw.Flush()
	} else {
		b.WriteString("No columns to optimize.\n")
	}
	b.WriteString("\n")

	writeHeader(&b, "Outliers")
	if len(rep.Outliers) > 0 {
		b.WriteString("Outliers are:\n\n")
		tw := newTable(&b, "", "outliers_lower", "outliers_upper", "outliers_total", "outliers_percentage")
		for _, entry := range rep.Outliers {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\n",
				entry.Column, entry.CountBelow, entry.CountAbove, entry.Total, entry.Percentage)
		}
		tw.Flush()
	} else {
		b.WriteString("No outliers.\n")
	}
	b.WriteString("\n")

	writeHeader(&b, "Missing Values")
	if len(rep.Missing) > 0 {
		b.WriteString("Missing details are:\n\n")
		tw := newTable(&b, "", "missing_counts", "missing_percentage")
		for _, entry := range rep.Missing {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", entry.Column, entry.Count, entry.Percentage)
		}
		tw.Flush()
	} else {
		b.WriteString("No missing values.\n")
	}

	if len(rep.Unavailable) > 0 {
		b.WriteString("\n")
		writeHeader(&b, "Unavailable Statistics")
		tw := newTable(&b, "", "reason")
		for _, name := range sortedKeys(rep.Unavailable) {
			fmt.Fprintf(tw, "%s\t%s\n", name, rep.Unavailable[name])
		}
		tw.Flush()
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeHeader prints the title between two '=' lines of the same length
func writeHeader(b *strings.Builder, title string) {
	line := strings.Repeat("=", len(title))
	fmt.Fprintf(b, "%s\n%s\n%s\n", line, title, line)
}

func writeRowTable(b *strings.Builder, columns []string, indices []int, rows [][]string) {
	tw := newTable(b, append([]string{"row"}, columns...)...)
	for i, cells := range rows {
		idx := ""
		if i < len(indices) {
			idx = fmt.Sprintf("%d", indices[i])
		}
		fmt.Fprintf(tw, "%s\t%s\n", idx, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
