// Package paratab loads delimited text files in parallel into
// column-oriented, type-inferred in-memory tables.
//
// It is a Go port of ParaText's column-based CSV loader
// (original_source/src/csv/colbased_loader.hpp,
// original_source/src/csv/colbased_chunk.hpp): the file is mapped into
// memory once, split into roughly even chunks on record boundaries, and
// each chunk is parsed by its own worker into a private set of
// per-column accumulators. Workers never share mutable state, so the
// merge step at the end is the only synchronization point.
package paratab

import (
	"context"

	"github.com/paratab/paratab/internal/column"
	"github.com/paratab/paratab/internal/loader"
	"github.com/paratab/paratab/internal/numeric"
)

// Config is the external configuration surface.
type Config = loader.Config

// DefaultConfig returns the same defaults ParaText's ParseParams uses.
func DefaultConfig() Config { return loader.DefaultConfig() }

// Semantics re-exports the column type-classification enum so callers
// never need to import internal/column directly.
type Semantics = column.Semantics

const (
	Unknown     = column.Unknown
	Numeric     = column.Numeric
	Categorical = column.Categorical
	Text        = column.Text
)

// Kind re-exports the numeric ladder rung enum.
type Kind = numeric.Kind

const (
	KindUint8   = numeric.KindUint8
	KindInt8    = numeric.KindInt8
	KindInt16   = numeric.KindInt16
	KindInt32   = numeric.KindInt32
	KindInt64   = numeric.KindInt64
	KindFloat32 = numeric.KindFloat32
	KindFloat64 = numeric.KindFloat64
)

// ColumnInfo describes one loaded column's name and inferred semantics.
type ColumnInfo = loader.ColumnInfo

// Table is the column-oriented, type-inferred result of a Load.
type Table = loader.Table

// Loader holds an open, mapped file across repeated LoadNext calls.
type Loader = loader.Loader

// Open maps path into memory and parses its header, returning a Loader
// ready for Load or repeated LoadNext calls. The caller must Close it.
func Open(path string, cfg Config) (*Loader, error) {
	return loader.Open(path, cfg)
}

// Load reads path in its entirety using cfg and returns the merged
// Table, closing the file before returning.
func Load(ctx context.Context, path string, cfg Config) (*Table, error) {
	return loader.Load(ctx, path, cfg)
}
