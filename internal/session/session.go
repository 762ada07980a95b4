// Package session owns a dataset for the lifetime of a cleaning session and
// sequences the reporting and transform operations over it. A session is the
// dataset's single owner: reads may run concurrently, but every mutation is
// serialized and swaps in a complete new snapshot or nothing.
package session

import (
	"context"
	"log"
	"sync"

	"cleanframe/domain/core"
	"cleanframe/domain/report"
	"cleanframe/domain/table"
	"cleanframe/internal/categorical"
	"cleanframe/internal/dedupe"
	"cleanframe/internal/downcast"
	"cleanframe/internal/errors"
	"cleanframe/internal/outliers"
	"cleanframe/internal/profiling"
	"cleanframe/internal/transform"
	"cleanframe/ports"
)

// Config holds session-level configuration, set once at construction
type Config struct {
	// MaxNumCategories is the inclusive cardinality threshold for
	// categorical encoding recommendations.
	MaxNumCategories int
}

// DefaultConfig returns the session defaults
func DefaultConfig() Config {
	return Config{MaxNumCategories: 10}
}

// Session orchestrates report, clean and optimize over one dataset
type Session struct {
	id       core.SessionID
	cfg      Config
	renderer ports.Renderer

	profiler *profiling.Profiler
	outliers *outliers.Detector
	dedupe   *dedupe.Detector
	resolver *downcast.Resolver
	advisor  *categorical.Advisor
	engine   *transform.Engine

	mu sync.RWMutex
	ds *table.Dataset

	// constant columns are detected and dropped exactly once, here at
	// construction; they are reported as found on every report call.
	droppedConstants []string
}

// Option customizes session construction
type Option func(*Session)

// WithRenderer injects a visualization backend. The default draws nothing.
func WithRenderer(r ports.Renderer) Option {
	return func(s *Session) {
		if r != nil {
			s.renderer = r
		}
	}
}

// New creates a session over a dataset, validating configuration and shape,
// then drops single-valued columns once.
func New(ds *table.Dataset, cfg Config, opts ...Option) (*Session, error) {
	if cfg.MaxNumCategories <= 0 {
		return nil, errors.ConfigInvalid("max number of categories must be a positive integer")
	}
	if ds == nil || ds.NumColumns() == 0 || ds.NumRows() == 0 {
		return nil, errors.SchemaError("session requires a dataset with at least one row and one column")
	}

	advisor, err := categorical.NewAdvisor(cfg.MaxNumCategories)
	if err != nil {
		return nil, err
	}
	engine, err := transform.NewEngine(cfg.MaxNumCategories)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:       core.SessionID(core.NewID()),
		cfg:      cfg,
		renderer: ports.NopRenderer{},
		profiler: profiling.NewProfiler(),
		outliers: outliers.NewDetector(),
		dedupe:   dedupe.NewDetector(),
		resolver: downcast.NewResolver(),
		advisor:  advisor,
		engine:   engine,
		ds:       ds,
	}
	for _, opt := range opts {
		opt(s)
	}

	if constants := s.dedupe.ConstantColumns(ds); len(constants) > 0 {
		reduced, err := ds.DropColumns(constants...)
		if err != nil {
			return nil, errors.Wrap(err, "could not drop constant columns")
		}
		log.Printf("[Session] dropped %d constant column(s): %v", len(constants), constants)
		s.ds = reduced
		s.droppedConstants = constants
	}

	return s, nil
}

// ID returns the session identifier
func (s *Session) ID() core.SessionID { return s.id }

// MaxNumCategories returns the configured categorical threshold
func (s *Session) MaxNumCategories() int { return s.cfg.MaxNumCategories }

// Dataset returns the current dataset snapshot
func (s *Session) Dataset() *table.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// ConstantColumns returns the columns dropped at construction
func (s *Session) ConstantColumns() []string {
	return append([]string(nil), s.droppedConstants...)
}

// Clean drops high-missingness columns, rows with missing values and
// duplicate rows. The dataset is swapped only on full success.
func (s *Session) Clean(ctx context.Context, opts transform.CleanOptions) (report.CleanResult, error) {
	if err := ctx.Err(); err != nil {
		return report.CleanResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, result, err := s.engine.Clean(s.ds, opts)
	if err != nil {
		return report.CleanResult{}, err
	}
	if result.NothingToDo() {
		log.Printf("[Session] clean: nothing to do")
		return result, nil
	}
	s.ds = next
	log.Printf("[Session] clean: dropped %d column(s), %d missing row(s), %d duplicate row(s)",
		len(result.DroppedColumns), result.DroppedMissingRows, result.DroppedDuplicateRows)
	return result, nil
}

// Optimize recomputes the downcast and categorical plans and applies them.
// The dataset is swapped only on full success.
func (s *Session) Optimize(ctx context.Context) (report.OptimizeResult, error) {
	if err := ctx.Err(); err != nil {
		return report.OptimizeResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, result, err := s.engine.Optimize(s.ds)
	if err != nil {
		return report.OptimizeResult{}, err
	}
	if result.NothingToDo() {
		log.Printf("[Session] optimize: nothing to do")
		return result, nil
	}
	s.ds = next
	log.Printf("[Session] optimize: %d downcast(s), %d categorical conversion(s), %d -> %d bytes",
		len(result.Downcast), len(result.Categorical), result.BytesBefore, result.BytesAfter)
	return result, nil
}
