package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanframe/domain/report"
	"cleanframe/domain/table"
)

func sampleReport() *report.Report {
	return &report.Report{
		Rows:    5,
		Columns: 3,
		Duplicates: report.DuplicateSummary{
			Instances:  2,
			Extra:      1,
			Percentage: 40,
			RowIndices: []int{1, 2},
			Rows:       [][]string{{"2", "rome"}, {"2", "rome"}},
		},
		Downcasts: []report.DowncastGroup{
			{Target: table.TypeUint8, Columns: []string{"id", "age"}},
		},
		Categoricals: []report.CategoricalEntry{
			{Column: "city", Values: []string{"oslo", "rome"}},
		},
		Outliers: []report.OutlierEntry{
			{Column: "score", LowerFence: -3.5, UpperFence: 14.5, CountAbove: 1, Total: 1, Percentage: 20},
		},
		Missing: []report.MissingEntry{
			{Column: "age", Count: 1, Percentage: 20},
		},
	}
}

func TestTextWriterSections(t *testing.T) {
	var b strings.Builder
	err := NewTextWriter().Write(&b, sampleReport(), []string{"id", "city"})
	require.NoError(t, err)
	out := b.String()

	for _, header := range []string{
		"Duplicated Rows",
		"Numerical Columns Optimization",
		"Categorical Columns Optimization",
		"Outliers",
		"Missing Values",
	} {
		assert.Contains(t, out, header+"\n"+strings.Repeat("=", len(header)))
	}

	assert.Contains(t, out, "The dataset has 2 duplicated rows, which is 40.00% from the dataset")
	assert.Contains(t, out, "id, age")
	assert.Contains(t, out, "oslo, rome")
}

func TestTextWriterEmptyReport(t *testing.T) {
	var b strings.Builder
	err := NewTextWriter().Write(&b, &report.Report{Rows: 2, Columns: 1}, []string{"a"})
	require.NoError(t, err)
	out := b.String()

	assert.Contains(t, out, "No duplicated rows.")
	assert.Contains(t, out, "No numerical columns to optimize.")
	assert.Contains(t, out, "No columns to optimize.")
	assert.Contains(t, out, "No outliers.")
	assert.Contains(t, out, "No missing values.")
}

func TestTextWriterListsUnavailableColumns(t *testing.T) {
	rep := &report.Report{
		Rows: 2, Columns: 1,
		Unavailable: map[string]string{"void": "all values missing"},
	}
	var b strings.Builder
	require.NoError(t, NewTextWriter().Write(&b, rep, []string{"void"}))
	assert.Contains(t, b.String(), "Unavailable Statistics")
	assert.Contains(t, b.String(), "all values missing")
}

func TestMarkdownWriter(t *testing.T) {
	md := NewMarkdownWriter().Markdown(sampleReport(), []string{"id", "city"})

	assert.Contains(t, md, "## Duplicated Rows")
	assert.Contains(t, md, "| uint8 | id, age |")
	assert.Contains(t, md, "| city | oslo, rome |")
	assert.Contains(t, md, "| age | 1 | 20.00 |")
}

func TestMarkdownHTMLConversion(t *testing.T) {
	out := string(NewMarkdownWriter().HTML(sampleReport(), []string{"id", "city"}))

	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Duplicated Rows")
}
