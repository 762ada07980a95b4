package ports

import (
	"cleanframe/domain/report"
)

// Renderer is the visualization port. The core calls it with missingness
// data and opaque pass-through options; it never depends on the renderer's
// output, and a failing renderer never fails a report.
type Renderer interface {
	// RenderMissingMatrix visualizes per-row missingness of the listed
	// columns. Options are forwarded untouched to the plotting backend.
	RenderMissingMatrix(missing []report.MissingEntry, options map[string]interface{}) error

	// RenderMissingHeatmap visualizes missingness correlation between the
	// listed columns.
	RenderMissingHeatmap(missing []report.MissingEntry, options map[string]interface{}) error
}

// NopRenderer is the default renderer: it draws nothing
type NopRenderer struct{}

func (NopRenderer) RenderMissingMatrix([]report.MissingEntry, map[string]interface{}) error {
	return nil
}

func (NopRenderer) RenderMissingHeatmap([]report.MissingEntry, map[string]interface{}) error {
	return nil
}
