package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanframe/domain/table"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	ds, err := table.New([]*table.Column{
		table.NewIntColumn("id", []int64{1, 0, 3}, []bool{true, false, true}),
		table.NewFloatColumn("score", []float64{0.5, 1.25, 2}, nil),
		table.NewTextColumn("city", []string{"oslo", "rome", "oslo"}, nil),
	})
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, WriteCSV(&b, ds))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,score,city", lines[0])
	assert.Equal(t, "1,0.5,oslo", lines[1])
	assert.Equal(t, ",1.25,rome", lines[2])

	back, err := NewReader("").Read(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Equal(t, 3, back.NumRows())
	id, _ := back.Column("id")
	assert.True(t, id.IsMissing(1))
	assert.Equal(t, table.KindInteger, id.Kind())
}
