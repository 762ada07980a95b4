package ports

import (
	"io"

	"cleanframe/domain/table"
)

// DatasetReader loads tabular data from an external format into a dataset.
// Loading is an I/O collaborator, never a dependency of the detection or
// transform logic.
type DatasetReader interface {
	// ReadFile loads a dataset from a file path
	ReadFile(path string) (*table.Dataset, error)

	// Read loads a dataset from a stream
	Read(r io.Reader) (*table.Dataset, error)
}
