package session

import (
	"context"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"cleanframe/domain/core"
	"cleanframe/domain/report"
	"cleanframe/domain/table"
	"cleanframe/internal/downcast"
	"cleanframe/internal/errors"
	"cleanframe/internal/profiling"
	"cleanframe/internal/stats"
)

// ReportOptions configures one report call. Render options are opaque
// pass-through maps for the plotting collaborator.
type ReportOptions struct {
	ShowMissingMatrix  bool
	ShowMissingHeatmap bool
	MatrixOptions      map[string]interface{}
	HeatmapOptions     map[string]interface{}
}

// downcastGroupOrder fixes the presentation order of downcast groups
var downcastGroupOrder = []table.Type{
	table.TypeUint8, table.TypeUint16, table.TypeUint32,
	table.TypeInt8, table.TypeInt16, table.TypeInt32,
	table.TypeFloat32,
}

// Report composes a fresh snapshot of the dataset's quality issues. Columns
// are profiled in parallel (they are independent); a failure on one column
// marks only that column unavailable and never aborts the report.
func (s *Session) Report(ctx context.Context, opts ReportOptions) (*report.Report, error) {
	s.mu.RLock()
	ds := s.ds
	s.mu.RUnlock()

	if ds.NumColumns() == 0 || ds.NumRows() == 0 {
		return nil, errors.SchemaError("report requires a dataset with at least one row and one column")
	}

	cols := ds.Columns()
	profiles := make([]profiling.Profile, len(cols))
	profileErrs := make([]error, len(cols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, col := range cols {
		i, col := i, col
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profiles[i], profileErrs[i] = s.profiler.ProfileColumn(col)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &report.Report{
		SessionID:       s.id,
		GeneratedAt:     core.Now(),
		Rows:            ds.NumRows(),
		Columns:         ds.NumColumns(),
		ConstantColumns: s.ConstantColumns(),
		Duplicates:      s.dedupe.DuplicateRows(ds),
	}

	unavailable := make(map[string]string)
	for i, err := range profileErrs {
		if err != nil {
			unavailable[cols[i].Name()] = err.Error()
		}
	}

	rep.Downcasts = s.buildDowncastSection(cols, profiles, profileErrs)
	rep.Categoricals = s.buildCategoricalSection(cols)
	rep.Outliers = s.buildOutlierSection(cols, profileErrs, unavailable)
	rep.Missing = buildMissingSection(cols, ds.NumRows())
	if len(unavailable) > 0 {
		rep.Unavailable = unavailable
	}

	s.render(opts, rep.Missing)
	return rep, nil
}

// buildDowncastSection groups downcast recommendations by target type for
// presentation, in fixed catalog order.
func (s *Session) buildDowncastSection(cols []*table.Column, profiles []profiling.Profile, profileErrs []error) []report.DowncastGroup {
	byTarget := make(map[table.Type][]string)
	for i, col := range cols {
		if !col.IsNumeric() || profileErrs[i] != nil {
			continue
		}
		p := profiles[i]
		target, ok := s.resolver.Resolve(downcast.Input{
			Min:             p.Min,
			Max:             p.Max,
			Integer:         p.IsInteger,
			HasMissing:      p.HasMissing(),
			Float32Lossless: p.Float32Lossless,
			Current:         col.Type(),
		})
		if ok {
			byTarget[target] = append(byTarget[target], col.Name())
		}
	}
	var groups []report.DowncastGroup
	for _, target := range downcastGroupOrder {
		if names := byTarget[target]; len(names) > 0 {
			groups = append(groups, report.DowncastGroup{Target: target, Columns: names})
		}
	}
	return groups
}

func (s *Session) buildCategoricalSection(cols []*table.Column) []report.CategoricalEntry {
	var entries []report.CategoricalEntry
	for _, col := range cols {
		if rec, ok := s.advisor.Advise(col); ok {
			entries = append(entries, report.CategoricalEntry{Column: rec.Column, Values: rec.Values})
		}
	}
	return entries
}

// buildOutlierSection computes bounds for every numeric column, then lists
// only the columns that have outliers, most first. Computing bounds for
// zero-outlier columns is deliberate: an early skip could hide a bug.
func (s *Session) buildOutlierSection(cols []*table.Column, profileErrs []error, unavailable map[string]string) []report.OutlierEntry {
	var entries []report.OutlierEntry
	for i, col := range cols {
		if !col.IsNumeric() || profileErrs[i] != nil {
			continue
		}
		entry, err := s.outliers.Detect(col)
		if err != nil {
			unavailable[col.Name()] = err.Error()
			continue
		}
		if entry.Total > 0 {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	return entries
}

func buildMissingSection(cols []*table.Column, rows int) []report.MissingEntry {
	var entries []report.MissingEntry
	for _, col := range cols {
		if count := col.MissingCount(); count > 0 {
			entries = append(entries, report.MissingEntry{
				Column:     col.Name(),
				Count:      count,
				Percentage: stats.Round2(float64(count) * 100 / float64(rows)),
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// render forwards missingness data to the visualization port. Rendering is
// best-effort: a failing backend is logged, never propagated.
func (s *Session) render(opts ReportOptions, missing []report.MissingEntry) {
	if len(missing) == 0 {
		return
	}
	if opts.ShowMissingMatrix {
		if err := s.renderer.RenderMissingMatrix(missing, opts.MatrixOptions); err != nil {
			log.Printf("[Session] missing matrix render failed: %v", err)
		}
	}
	if opts.ShowMissingHeatmap {
		if err := s.renderer.RenderMissingHeatmap(missing, opts.HeatmapOptions); err != nil {
			log.Printf("[Session] missing heatmap render failed: %v", err)
		}
	}
}
