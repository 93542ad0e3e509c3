package chunker

import (
	"context"
	"strings"
	"testing"
)

func TestComputeUnquotedSplitsOnLineBoundaries(t *testing.T) {
	data := []byte("row1\nrow2\nrow3\nrow4\n")
	plan, err := Compute(context.Background(), data, 0, 2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range plan.Ranges {
		if r.Eliminated() {
			continue
		}
		chunk := data[r.Start : r.End+1]
		if len(chunk) > 0 && chunk[len(chunk)-1] != '\n' && r.End != int64(len(data))-1 {
			t.Errorf("chunk %v does not end on a line boundary: %q", r, chunk)
		}
	}
}

func TestComputeQuotedHandlesEmbeddedNewlines(t *testing.T) {
	data := []byte("a,\"line1\nline2\"\nb,c\n")
	plan, err := Compute(context.Background(), data, 0, 2, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	embedded := int64(strings.IndexByte(string(data), '\n'))
	var reconstructed strings.Builder
	for _, r := range plan.Ranges {
		if r.Eliminated() {
			continue
		}
		if r.End == embedded {
			t.Errorf("chunk %v ends on the newline inside the quoted field", r)
		}
		reconstructed.Write(data[r.Start : r.End+1])
	}
	// The embedded newline must never land on a chunk boundary by itself.
	if reconstructed.Len() == 0 {
		t.Fatalf("expected non-empty reconstruction")
	}
}

func TestComputeSingleChunk(t *testing.T) {
	data := []byte("only,one,row\n")
	plan, err := Compute(context.Background(), data, 0, 4, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Ranges) == 0 {
		t.Fatalf("expected at least one range")
	}
	active := 0
	for _, r := range plan.Ranges {
		if !r.Eliminated() {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one non-eliminated range, got %d: %v", active, plan.Ranges)
	}
}
