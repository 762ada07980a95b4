package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"cleanframe/domain/table"
)

// GeneratorConfig configures the synthetic dataset generator
type GeneratorConfig struct {
	Rows          int     `json:"rows"`
	MissingRatio  float64 `json:"missing_ratio"`
	DuplicateRows int     `json:"duplicate_rows"`
	Seed          int64   `json:"seed"`
}

// DefaultGeneratorConfig returns sensible defaults for dataset generation
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:          500,
		MissingRatio:  0.05,
		DuplicateRows: 10,
		Seed:          42,
	}
}

// DatasetGenerator generates reproducible tabular fixtures
type DatasetGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewDatasetGenerator creates a new dataset generator
func NewDatasetGenerator(config GeneratorConfig) *DatasetGenerator {
	return &DatasetGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// IntColumn generates an integer column whose values span the given type's
// range, with roughly 10% of rows pushed toward the range edges so outlier
// detection always has something to find.
func (g *DatasetGenerator) IntColumn(name string, within table.Type) (*table.Column, error) {
	if !within.IsInteger() {
		return nil, fmt.Errorf("testkit: %s is not an integer type", within)
	}
	lo, hi, _ := within.IntegerRange()
	values := make([]int64, g.config.Rows)
	for i := range values {
		values[i] = g.intInRange(i, float64(lo), float64(hi))
	}
	return table.NewIntColumn(name, values, g.validity()), nil
}

// FloatColumn generates a float column with a central cluster and edge tails
func (g *DatasetGenerator) FloatColumn(name string, lo, hi float64) (*table.Column, error) {
	if !(lo < hi) {
		return nil, fmt.Errorf("testkit: invalid range [%v, %v]", lo, hi)
	}
	values := make([]float64, g.config.Rows)
	for i := range values {
		values[i] = g.floatInRange(i, lo, hi)
	}
	return table.NewFloatColumn(name, values, g.validity()), nil
}

// TextColumn generates a text column with exactly uniqueNum distinct values,
// or a random low cardinality when uniqueNum is 0.
func (g *DatasetGenerator) TextColumn(name string, uniqueNum int) (*table.Column, error) {
	if uniqueNum < 0 {
		return nil, fmt.Errorf("testkit: uniqueNum must be zero or positive, got %d", uniqueNum)
	}
	if uniqueNum == 0 {
		uniqueNum = 2 + g.rng.Intn(8)
	}
	if uniqueNum > g.config.Rows {
		uniqueNum = g.config.Rows
	}
	seen := make(map[string]bool, uniqueNum)
	vocab := make([]string, 0, uniqueNum)
	for len(vocab) < uniqueNum {
		w := g.word(4 + g.rng.Intn(5))
		if seen[w] {
			continue
		}
		seen[w] = true
		vocab = append(vocab, w)
	}
	values := make([]string, g.config.Rows)
	// seed the first positions with each vocab entry so cardinality is exact
	for i := range values {
		if i < uniqueNum {
			values[i] = vocab[i]
		} else {
			values[i] = vocab[g.rng.Intn(uniqueNum)]
		}
	}
	return table.NewTextColumn(name, values, g.validity()), nil
}

// ConstantColumn generates a column holding a single repeated value
func (g *DatasetGenerator) ConstantColumn(name, value string) *table.Column {
	values := make([]string, g.config.Rows)
	for i := range values {
		values[i] = value
	}
	return table.NewTextColumn(name, values, nil)
}

// Dataset assembles the generated columns and injects the configured number
// of duplicate rows by copying earlier rows over later ones.
func (g *DatasetGenerator) Dataset(cols ...*table.Column) (*table.Dataset, error) {
	ds, err := table.New(cols)
	if err != nil {
		return nil, err
	}
	if g.config.DuplicateRows <= 0 || ds.NumRows() < 2 {
		return ds, nil
	}
	dup := g.config.DuplicateRows
	if dup > ds.NumRows()/2 {
		dup = ds.NumRows() / 2
	}
	rebuilt := make([]*table.Column, len(cols))
	for j, col := range cols {
		values := make([]table.Value, ds.NumRows())
		for i := 0; i < ds.NumRows(); i++ {
			values[i] = col.Value(i)
		}
		for k := 0; k < dup; k++ {
			values[ds.NumRows()-1-k] = values[k]
		}
		rebuilt[j] = rebuildColumn(col, values)
	}
	return table.New(rebuilt)
}

func rebuildColumn(col *table.Column, values []table.Value) *table.Column {
	n := len(values)
	valid := make([]bool, n)
	for i, v := range values {
		valid[i] = v.Kind != table.ValueMissing
	}
	switch col.Kind() {
	case table.KindInteger:
		ints := make([]int64, n)
		for i, v := range values {
			if valid[i] {
				ints[i] = v.Int
			}
		}
		return table.NewIntColumn(col.Name(), ints, valid)
	case table.KindFloat:
		floats := make([]float64, n)
		for i, v := range values {
			if valid[i] {
				floats[i] = v.Float
			}
		}
		return table.NewFloatColumn(col.Name(), floats, valid)
	default:
		texts := make([]string, n)
		for i, v := range values {
			if valid[i] {
				texts[i] = v.Text
			}
		}
		return table.NewTextColumn(col.Name(), texts, valid)
	}
}

// intInRange clamps the tail distribution to the requested limits
func (g *DatasetGenerator) intInRange(i int, lo, hi float64) int64 {
	v := math.Round(g.floatInRange(i, lo, hi))
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return int64(v)
}

// floatInRange samples 90% of rows from a central normal cluster and 5%
// near each range edge
func (g *DatasetGenerator) floatInRange(i int, lo, hi float64) float64 {
	mean := (lo + hi) / 2
	span := hi - lo
	sigma := span / 8
	var v float64
	switch {
	case i < g.config.Rows/20:
		v = g.rng.NormFloat64()*sigma/3 + lo + sigma
	case i >= g.config.Rows-g.config.Rows/20:
		v = g.rng.NormFloat64()*sigma/3 + hi - sigma
	default:
		v = g.rng.NormFloat64()*sigma + mean
	}
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// validity returns a mask with roughly MissingRatio of rows marked missing,
// or nil when no missingness was requested
func (g *DatasetGenerator) validity() []bool {
	if g.config.MissingRatio <= 0 {
		return nil
	}
	valid := make([]bool, g.config.Rows)
	for i := range valid {
		valid[i] = g.rng.Float64() >= g.config.MissingRatio
	}
	// never generate an all-missing column
	allMissing := true
	for _, ok := range valid {
		if ok {
			allMissing = false
			break
		}
	}
	if allMissing && len(valid) > 0 {
		valid[0] = true
	}
	return valid
}

func (g *DatasetGenerator) word(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[g.rng.Intn(len(letters))]
	}
	return string(b)
}
