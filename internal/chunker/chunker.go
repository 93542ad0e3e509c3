package chunker

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/paratab/paratab/internal/loaderr"
)

// Range is an inclusive [Start,End] byte range, or
// the eliminated sentinel (-1,-1) when a chunk was absorbed into its
// neighbor during reconciliation, porting TextChunker's
// start_of_chunk_/end_of_chunk_ pair semantics.
type Range struct {
	Start int64
	End   int64 // inclusive
}

// Eliminated reports whether this range was folded into another chunk
// and should be skipped by the caller.
func (r Range) Eliminated() bool {
	return r.Start < 0 || r.End < 0
}

// Plan is the set of record-aligned chunk boundaries computed for a
// file, porting TextChunker's public num_chunks()/get_chunk() surface.
type Plan struct {
	Ranges []Range
}

// Compute determines chunk boundaries for data[startingOffset:], aiming
// for desiredChunks chunks, porting TextChunker::process/compute_offsets.
// When allowQuotedNewlines is false the fast, serial
// adjust_offsets_according_to_unquoted_newlines path runs; otherwise the
// parallel quote-counting reconciliation
// (adjust_offsets_according_to_quoted_newlines) runs.
func Compute(ctx context.Context, data []byte, startingOffset int64, desiredChunks int, allowQuotedNewlines bool) (Plan, error) {
	length := int64(len(data))
	var lastpos int64
	if length > 0 {
		lastpos = length - 1
	}
	if desiredChunks < 1 {
		desiredChunks = 1
	}

	chunkSize := (length - startingOffset) / int64(desiredChunks)
	if chunkSize < 2 {
		chunkSize = 2
	}

	var starts, ends []int64
	startOfChunk := startingOffset
	for workerID := 0; workerID < desiredChunks; workerID++ {
		endOfChunk := startOfChunk + chunkSize
		if endOfChunk > lastpos {
			endOfChunk = lastpos
		}
		if endOfChunk < startOfChunk {
			starts = append(starts, lastpos+1)
			ends = append(ends, lastpos+1)
			break
		}

		// Check for a trailing escape straddling the boundary: the
		// original reads 2 bytes ending at endOfChunk and extends the
		// chunk by one byte if the second of those bytes is a lone
		// backslash.
		if endOfChunk >= 1 && endOfChunk < length {
			b0 := data[endOfChunk-1]
			b1 := data[endOfChunk]
			if b0 != '\\' && b1 == '\\' {
				if endOfChunk+1 > lastpos {
					return Plan{}, loaderr.New(loaderr.TrailingEscape, "file ends with an escape character")
				}
				endOfChunk++
			}
		}

		if workerID == desiredChunks-1 {
			endOfChunk = lastpos
		}
		starts = append(starts, startOfChunk)
		ends = append(ends, endOfChunk)
		if endOfChunk == lastpos {
			break
		}
		startOfChunk = endOfChunk + 1
		if startOfChunk > lastpos {
			startOfChunk = lastpos
		}
	}

	ranges := make([]Range, len(starts))
	for i := range starts {
		ranges[i] = Range{Start: starts[i], End: ends[i]}
	}
	plan := Plan{Ranges: ranges}

	if allowQuotedNewlines {
		if err := plan.reconcileQuoted(ctx, data, lastpos); err != nil {
			return Plan{}, err
		}
	} else {
		plan.reconcileUnquoted(data, lastpos)
	}
	return plan, nil
}

// reconcileUnquoted extends each chunk's end to the next real newline and
// eliminates or clamps every later chunk that the extension swallows,
// porting adjust_offsets_according_to_unquoted_newlines.
func (p *Plan) reconcileUnquoted(data []byte, lastpos int64) {
	for workerID := range p.Ranges {
		if p.Ranges[workerID].Eliminated() {
			continue
		}
		endOfChunk := p.Ranges[workerID].End
		newEnd := endOfChunk
		found := false
		if endOfChunk < int64(len(data)) {
			rel := bytes.IndexByte(data[endOfChunk:], '\n')
			if rel >= 0 {
				newEnd = endOfChunk + int64(rel)
				found = true
			}
		}
		if !found {
			newEnd = lastpos
		}
		p.Ranges[workerID].End = newEnd

		for other := workerID + 1; other < len(p.Ranges); other++ {
			if p.Ranges[other].End <= newEnd || newEnd == lastpos {
				p.Ranges[other] = Range{Start: -1, End: -1}
			} else if p.Ranges[other].Start <= newEnd {
				p.Ranges[other].Start = newEnd + 1
				if p.Ranges[other].End < newEnd+1 {
					p.Ranges[other].End = newEnd + 1
				}
			}
		}
	}
}

// reconcileQuoted runs one quote-scan worker per chunk in parallel, then
// serially walks the running quote-parity the way
// adjust_offsets_according_to_quoted_newlines does: an even count means
// the current chunk's boundary lands on the next chunk's first unquoted
// newline (or absorbs it whole if none exists); an odd count means it
// must land on a quoted newline instead, since the boundary sits inside
// an open quoted field.
func (p *Plan) reconcileQuoted(ctx context.Context, data []byte, lastpos int64) error {
	results := make([]quoteScanResult, len(p.Ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range p.Ranges {
		i, r := i, r
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if r.Eliminated() {
				return nil
			}
			results[i] = scanQuotes(data, r.Start, r.End)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var quotesSoFar int64
	curID := 0
	nextID := 1
	if curID < len(results) {
		quotesSoFar += results[curID].numQuotes
	}
	for curID < len(p.Ranges) {
		if p.Ranges[curID].Eliminated() {
			curID++
			nextID = curID + 1
			continue
		}
		if quotesSoFar%2 == 0 {
			if nextID < len(p.Ranges) {
				quotesSoFar += results[nextID].numQuotes
				if results[nextID].firstUnquotedNewline >= 0 {
					p.Ranges[curID].End = results[nextID].firstUnquotedNewline
					newStart := p.Ranges[curID].End + 1
					if newStart > p.Ranges[nextID].End {
						newStart = p.Ranges[nextID].End
					}
					p.Ranges[nextID].Start = newStart
					curID = nextID
				} else {
					p.Ranges[curID].End = p.Ranges[nextID].End
					p.Ranges[nextID] = Range{Start: -1, End: -1}
				}
				nextID++
			} else {
				p.Ranges[curID].End = lastpos
				break
			}
		} else {
			if nextID < len(p.Ranges) {
				quotesSoFar += results[nextID].numQuotes
				if results[nextID].firstQuotedNewline >= 0 {
					p.Ranges[curID].End = results[nextID].firstQuotedNewline
					newStart := p.Ranges[curID].End + 1
					if newStart > p.Ranges[nextID].End {
						newStart = p.Ranges[nextID].End
					}
					p.Ranges[nextID].Start = newStart
					curID = nextID
				} else {
					p.Ranges[curID].End = p.Ranges[nextID].End
					p.Ranges[nextID] = Range{Start: -1, End: -1}
				}
				nextID++
			} else {
				return loaderr.New(loaderr.UnterminatedQuote, "file ends with an open quote")
			}
		}
	}
	return nil
}
