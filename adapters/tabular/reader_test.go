package tabular

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanframe/domain/table"
	"cleanframe/internal/outliers"
)

func TestReadInfersColumnTypes(t *testing.T) {
	csv := strings.Join([]string{
		"id,score,city",
		"1,0.5,oslo",
		"2,1.25,rome",
		"3,2.0,oslo",
	}, "\n")

	ds, err := NewReader("").Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 3, ds.NumRows())
	require.Equal(t, []string{"id", "score", "city"}, ds.ColumnNames())

	id, _ := ds.Column("id")
	assert.Equal(t, table.KindInteger, id.Kind())
	assert.Equal(t, table.TypeInt64, id.Type())

	score, _ := ds.Column("score")
	assert.Equal(t, table.KindFloat, score.Kind())

	city, _ := ds.Column("city")
	assert.Equal(t, table.KindText, city.Kind())
}

func TestReadTreatsEmptyCellsAsMissing(t *testing.T) {
	csv := strings.Join([]string{
		"age,name",
		"30,ada",
		",bob",
		"41,",
	}, "\n")

	ds, err := NewReader("").Read(strings.NewReader(csv))
	require.NoError(t, err)

	age, _ := ds.Column("age")
	assert.Equal(t, table.KindInteger, age.Kind())
	assert.Equal(t, 1, age.MissingCount())
	assert.True(t, age.IsMissing(1))

	name, _ := ds.Column("name")
	assert.Equal(t, 1, name.MissingCount())
	assert.True(t, name.IsMissing(2))
}

func TestReadDemotesMixedColumnToText(t *testing.T) {
	csv := strings.Join([]string{
		"v",
		"1",
		"2.5",
		"three",
	}, "\n")

	ds, err := NewReader("").Read(strings.NewReader(csv))
	require.NoError(t, err)

	v, _ := ds.Column("v")
	assert.Equal(t, table.KindText, v.Kind())
	assert.Equal(t, table.NewTextValue("2.5"), v.Value(1))
}

func TestReadTreatsNonFiniteTokensAsMissing(t *testing.T) {
	csv := strings.Join([]string{
		"id,score,rate",
		"1,1,0.5",
		"2,NaN,-Inf",
		"3,3,Infinity",
	}, "\n")

	ds, err := NewReader("").Read(strings.NewReader(csv))
	require.NoError(t, err)

	score, _ := ds.Column("score")
	assert.Equal(t, table.KindInteger, score.Kind())
	assert.Equal(t, 1, score.MissingCount())
	assert.True(t, score.IsMissing(1))

	rate, _ := ds.Column("rate")
	assert.Equal(t, table.KindFloat, rate.Kind())
	assert.Equal(t, 2, rate.MissingCount())
	assert.True(t, rate.IsMissing(1))
	assert.True(t, rate.IsMissing(2))

	// every present value is finite, so downstream statistics and their
	// JSON encoding stay well defined
	for _, col := range ds.Columns() {
		for _, v := range col.PresentFloats() {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

func TestNonFiniteCellsSurviveReportEncoding(t *testing.T) {
	csv := strings.Join([]string{
		"id,score",
		"1,1",
		"2,NaN",
		"3,3",
	}, "\n")

	ds, err := NewReader("").Read(strings.NewReader(csv))
	require.NoError(t, err)

	score, _ := ds.Column("score")
	entry, err := outliers.NewDetector().Detect(score)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(entry.LowerFence))
	assert.False(t, math.IsNaN(entry.UpperFence))

	_, err = json.Marshal(entry)
	require.NoError(t, err)
}

func TestReadRejectsHeaderOnlyInput(t *testing.T) {
	_, err := NewReader("").Read(strings.NewReader("a,b,c\n"))
	assert.Error(t, err)

	_, err = NewReader("").Read(strings.NewReader("a,,c\n1,2,3\n"))
	assert.Error(t, err)
}

func TestReadFileRejectsMissingAndUnknown(t *testing.T) {
	_, err := NewReader("").ReadFile("/nonexistent/data.csv")
	assert.Error(t, err)
}
