package parse

import (
	"testing"

	"github.com/paratab/paratab/internal/column"
)

func newAccumulators(n int) []*column.Accumulator {
	out := make([]*column.Accumulator, n)
	for i := range out {
		out[i] = column.New("c", 1<<20, 1<<20, column.Unknown)
	}
	return out
}

func TestWorkerParsesMixedColumns(t *testing.T) {
	handlers := newAccumulators(3)
	w := New(handlers, false)
	data := []byte("1,2.5,red\n3,4.5,blue\n")
	if err := w.Parse(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handlers[0].Semantics() != column.Numeric {
		t.Errorf("col0 semantics = %v, want Numeric", handlers[0].Semantics())
	}
	if handlers[1].Semantics() != column.Numeric {
		t.Errorf("col1 semantics = %v, want Numeric", handlers[1].Semantics())
	}
	if handlers[2].Semantics() != column.Categorical {
		t.Errorf("col2 semantics = %v, want Categorical", handlers[2].Semantics())
	}
	if handlers[0].Size() != 2 {
		t.Errorf("col0 size = %d, want 2", handlers[0].Size())
	}
}

func TestWorkerHandlesQuotedField(t *testing.T) {
	handlers := newAccumulators(2)
	w := New(handlers, false)
	data := []byte("1,\"hello, world\"\n")
	if err := w.Parse(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handlers[1].Semantics() != column.Categorical {
		t.Errorf("col1 semantics = %v, want Categorical", handlers[1].Semantics())
	}
}

func TestWorkerRejectsWrongColumnCount(t *testing.T) {
	handlers := newAccumulators(3)
	w := New(handlers, false)
	data := []byte("1,2\n")
	if err := w.Parse(data); err == nil {
		t.Fatalf("expected error for mismatched column count")
	}
}

func TestWorkerNoTrailingNewline(t *testing.T) {
	handlers := newAccumulators(2)
	w := New(handlers, false)
	data := []byte("1,2")
	if err := w.Parse(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handlers[0].Size() != 1 || handlers[1].Size() != 1 {
		t.Fatalf("expected one row flushed without trailing newline")
	}
}

func TestWorkerNaNSentinel(t *testing.T) {
	handlers := newAccumulators(1)
	w := New(handlers, false)
	data := []byte("nan\n?\n")
	if err := w.Parse(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handlers[0].Semantics() != column.Numeric {
		t.Fatalf("expected Numeric for NaN sentinels, got %v", handlers[0].Semantics())
	}
}
