package categorical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanframe/domain/table"
)

func TestAdviseUnderThreshold(t *testing.T) {
	advisor, err := NewAdvisor(5)
	require.NoError(t, err)

	col := table.NewTextColumn("color", []string{"red", "blue", "red", "green"}, nil)
	rec, ok := advisor.Advise(col)
	assert.True(t, ok)
	// first-seen order
	assert.Equal(t, []string{"red", "blue", "green"}, rec.Values)
}

func TestAdviseThresholdInclusive(t *testing.T) {
	advisor, err := NewAdvisor(3)
	require.NoError(t, err)

	// distinct_count exactly equal to the threshold IS recommended
	col := table.NewTextColumn("size", []string{"s", "m", "l"}, nil)
	_, ok := advisor.Advise(col)
	assert.True(t, ok)

	over := table.NewTextColumn("size", []string{"s", "m", "l", "xl"}, nil)
	_, ok = advisor.Advise(over)
	assert.False(t, ok)
}

func TestAdviseIgnoresMissingInCardinality(t *testing.T) {
	advisor, err := NewAdvisor(2)
	require.NoError(t, err)

	col := table.NewTextColumn("flag", []string{"y", "n", ""}, []bool{true, true, false})
	rec, ok := advisor.Advise(col)
	assert.True(t, ok)
	assert.Equal(t, []string{"y", "n"}, rec.Values)
}

func TestAdviseRejectsEmptyAndNonText(t *testing.T) {
	advisor, err := NewAdvisor(5)
	require.NoError(t, err)

	allMissing := table.NewTextColumn("void", []string{"", ""}, []bool{false, false})
	_, ok := advisor.Advise(allMissing)
	assert.False(t, ok)

	numeric := table.NewIntColumn("n", []int64{1, 2}, nil)
	_, ok = advisor.Advise(numeric)
	assert.False(t, ok)
}

func TestAdviseOrderStable(t *testing.T) {
	advisor, err := NewAdvisor(10)
	require.NoError(t, err)

	col := table.NewTextColumn("c", []string{"b", "a", "c", "a"}, nil)
	first, _ := advisor.Advise(col)
	second, _ := advisor.Advise(col)
	assert.Equal(t, first.Values, second.Values)
	assert.Equal(t, []string{"b", "a", "c"}, first.Values)
}

func TestNewAdvisorValidation(t *testing.T) {
	_, err := NewAdvisor(0)
	assert.Error(t, err)
	_, err = NewAdvisor(-3)
	assert.Error(t, err)
}
