// Package loader coordinates the chunker, header parser, and parse
// workers into the top-level Load/LoadNext operation and the per-column
// merge step, producing the in-memory Table.
//
// Ported from ColBasedLoader (original_source/src/csv/colbased_loader.hpp)
// with orchestration style (spawn/join/merge, progress reporting) adapted
// from an indexer-style worker pool.
package loader

import (
	"math"
	"runtime"

	"github.com/paratab/paratab/internal/column"
	"github.com/paratab/paratab/internal/numeric"
)

// Config is the external configuration surface, matching
// ParaText's ParseParams plus forced-semantics and type-hint overrides
// for pinning a column's inferred semantics or numeric starting rung.
type Config struct {
	NoHeader             bool
	NumberOnly           bool
	BlockSize            int
	NumThreads           int
	AllowQuotedNewlines  bool
	MaxLevelNameLength   int
	MaxLevels            int
	ConvertNullToSpace   bool

	ChunkedFileReading bool
	FileChunkSize      int64

	// ForcedSemantics pins a column's final semantics regardless of what
	// inference would have produced, keyed by column name.
	ForcedSemantics map[string]column.Semantics

	// TypeHints sets the starting numeric ladder rung for each named
	// column, whether or not its semantics are forced; later values can
	// still widen it further. Generalizes the original's
	// TH_UINT8..TH_INT64 type hints.
	TypeHints map[string]numeric.Kind
}

// DefaultConfig returns a Config with the same defaults ParaText's
// ParseParams uses: quoted newlines disallowed, one chunk-worth of
// threads per CPU, unlimited level name length/count.
func DefaultConfig() Config {
	return Config{
		BlockSize:           32768,
		NumThreads:          runtime.NumCPU(),
		AllowQuotedNewlines: false,
		MaxLevelNameLength:  math.MaxInt32,
		MaxLevels:           math.MaxInt32,
	}
}

func (c Config) semanticsFor(name string) column.Semantics {
	if c.ForcedSemantics == nil {
		return column.Unknown
	}
	if s, ok := c.ForcedSemantics[name]; ok {
		return s
	}
	return column.Unknown
}
