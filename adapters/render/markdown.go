package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"cleanframe/domain/report"
)

// MarkdownWriter renders a report as markdown, with an HTML conversion for
// browser surfaces.
type MarkdownWriter struct{}

// NewMarkdownWriter creates a markdown report writer
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Markdown renders the report as a markdown document
func (m *MarkdownWriter) Markdown(rep *report.Report, columns []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dataset Report\n\n")
	fmt.Fprintf(&b, "Session `%s`, generated %s.\n\n", rep.SessionID, rep.GeneratedAt.Time().Format(time.RFC3339))
	fmt.Fprintf(&b, "%d rows x %d columns.\n\n", rep.Rows, rep.Columns)

	if len(rep.ConstantColumns) > 0 {
		fmt.Fprintf(&b, "Dropped constant columns: %s.\n\n", strings.Join(rep.ConstantColumns, ", "))
	}

	b.WriteString("## Duplicated Rows\n\n")
	if rep.Duplicates.HasDuplicates() {
		fmt.Fprintf(&b,
			"The dataset has %d duplicated rows (%.2f%% of the dataset).\n\n",
			rep.Duplicates.Instances, rep.Duplicates.Percentage)
		mdTable(&b, append([]string{"row"}, columns...), func(add func(...string)) {
			for i, cells := range rep.Duplicates.Rows {
				idx := ""
				if i < len(rep.Duplicates.RowIndices) {
					idx = fmt.Sprintf("%d", rep.Duplicates.RowIndices[i])
				}
				add(append([]string{idx}, cells...)...)
			}
		})
	} else {
		b.WriteString("No duplicated rows.\n\n")
	}

	b.WriteString("## Numerical Columns Optimization\n\n")
	if len(rep.Downcasts) > 0 {
		mdTable(&b, []string{"target", "columns_to_convert"}, func(add func(...string)) {
			for _, group := range rep.Downcasts {
				add(string(group.Target), strings.Join(group.Columns, ", "))
			}
		})
	} else {
		b.WriteString("No numerical columns to optimize.\n\n")
	}

	b.WriteString("## Categorical Columns Optimization\n\n")
	if len(rep.Categoricals) > 0 {
		mdTable(&b, []string{"column", "unique_values"}, func(add func(...string)) {
			for _, entry := range rep.Categoricals {
				add(entry.Column, strings.Join(entry.Values, ", "))
			}
		})
	} else {
		b.WriteString("No columns to optimize.\n\n")
	}

	b.WriteString("## Outliers\n\n")
	if len(rep.Outliers) > 0 {
		mdTable(&b, []string{"column", "outliers_lower", "outliers_upper", "outliers_total", "outliers_percentage"},
			func(add func(...string)) {
				for _, entry := range rep.Outliers {
					add(entry.Column,
						fmt.Sprintf("%d", entry.CountBelow),
						fmt.Sprintf("%d", entry.CountAbove),
						fmt.Sprintf("%d", entry.Total),
						fmt.Sprintf("%.2f", entry.Percentage))
				}
			})
	} else {
		b.WriteString("No outliers.\n\n")
	}

	b.WriteString("## Missing Values\n\n")
	if len(rep.Missing) > 0 {
		mdTable(&b, []string{"column", "missing_counts", "missing_percentage"}, func(add func(...string)) {
			for _, entry := range rep.Missing {
				add(entry.Column, fmt.Sprintf("%d", entry.Count), fmt.Sprintf("%.2f", entry.Percentage))
			}
		})
	} else {
		b.WriteString("No missing values.\n\n")
	}

	if len(rep.Unavailable) > 0 {
		b.WriteString("## Unavailable Statistics\n\n")
		mdTable(&b, []string{"column", "reason"}, func(add func(...string)) {
			for _, name := range sortedKeys(rep.Unavailable) {
				add(name, rep.Unavailable[name])
			}
		})
	}

	return b.String()
}

// HTML renders the report as an HTML fragment via gomarkdown
func (m *MarkdownWriter) HTML(rep *report.Report, columns []string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(m.Markdown(rep, columns)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func mdTable(b *strings.Builder, headers []string, fill func(add func(...string))) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(headers, " | "))
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(sep, " | "))
	fill(func(cells ...string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = strings.ReplaceAll(c, "|", "\\|")
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(escaped, " | "))
	})
	b.WriteString("\n")
}
