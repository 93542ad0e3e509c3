// Package chunker splits a file into record-aligned byte ranges so that
// each range can be parsed independently and in parallel without ever
// splitting a quoted or unquoted record across workers.
//
// Ported from ParaText's TextChunker and QuoteNewlineAdjustmentWorker
// (original_source/src/generic/chunker.hpp,
// original_source/src/generic/quote_adjustment_worker.hpp).
package chunker

const quoteScanBlockSize = 32768

// quoteScanResult holds what one quote-scan worker observed within its
// tentative [start,end] byte range: the running quote parity and the
// first newline of each kind it found, porting the fields of
// QuoteNewlineAdjustmentWorker.
type quoteScanResult struct {
	numQuotes             int64
	firstUnquotedNewline  int64 // -1 if none found
	firstQuotedNewline    int64 // -1 if none found
}

// scanQuotes walks data[start:end] (inclusive of end) looking for the
// first unquoted newline, the first quoted newline, and the total quote
// count, porting QuoteNewlineAdjustmentWorker::parse_impl's four nested
// phases: first race to find either newline kind, then whichever of the
// two remains, then just tally quotes for the remainder of the range.
// escape_count (here escapeCount) carries across the 32768-byte block
// boundary exactly as in the original.
func scanQuotes(data []byte, start, end int64) quoteScanResult {
	res := quoteScanResult{firstUnquotedNewline: -1, firstQuotedNewline: -1}
	if end < start {
		return res
	}
	current := start
	var escapeCount int
	inQuote := false

	for current <= end {
		blockEnd := current + quoteScanBlockSize
		if blockEnd > end+1 {
			blockEnd = end + 1
		}
		if blockEnd > int64(len(data)) {
			blockEnd = int64(len(data))
		}
		if blockEnd <= current {
			break
		}
		buf := data[current:blockEnd]
		nread := int64(len(buf))
		if nread == 0 {
			break
		}

		var i int64
		// Phase 1: race for either newline kind.
		for i < nread && res.firstUnquotedNewline < 0 && res.firstQuotedNewline < 0 {
			c := buf[i]
			switch {
			case escapeCount > 0:
				escapeCount--
			case c == '\\':
				escapeCount = 1
			case c == '"':
				res.numQuotes++
				inQuote = !inQuote
			case c == '\n' && inQuote:
				res.firstQuotedNewline = current + i
			case c == '\n' && !inQuote:
				res.firstUnquotedNewline = current + i
			}
			i++
		}
		// Phase 2: still looking for the unquoted newline only.
		for i < nread && res.firstUnquotedNewline < 0 {
			c := buf[i]
			switch {
			case escapeCount > 0:
				escapeCount--
			case c == '\\':
				escapeCount = 1
			case c == '"':
				res.numQuotes++
				inQuote = !inQuote
			case c == '\n' && !inQuote:
				res.firstUnquotedNewline = current + i
			}
			i++
		}
		// Phase 3: still looking for the quoted newline only.
		for i < nread && res.firstQuotedNewline < 0 {
			c := buf[i]
			switch {
			case escapeCount > 0:
				escapeCount--
			case c == '\\':
				escapeCount = 1
			case c == '"':
				res.numQuotes++
				inQuote = !inQuote
			case c == '\n' && inQuote:
				res.firstQuotedNewline = current + i
			}
			i++
		}
		// Phase 4: both newlines found (or never will be) — just count quotes.
		for i < nread {
			c := buf[i]
			switch {
			case escapeCount > 0:
				escapeCount--
			case c == '\\':
				escapeCount = 1
			case c == '"':
				res.numQuotes++
				inQuote = !inQuote
			}
			i++
		}
		current += nread
	}
	return res
}
