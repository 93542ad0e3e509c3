// Package header parses the first line of a CSV file into column names,
// sharing the quote/escape token scanner with the chunker and parse
// worker.
//
// Ported from ParaText's HeaderParser
// (original_source/src/csv/header_parser.hpp).
package header

import (
	"strconv"
	"unicode"

	"github.com/paratab/paratab/internal/bytesutil"
)

// Result is the outcome of parsing a file's header region.
type Result struct {
	Names       []string
	EndOfHeader int64 // byte offset of the header line's terminating newline
	HasHeader   bool
}

// Parse scans data for a header line, porting
// HeaderParser::parse_header. Leading whitespace is skipped before the
// first token; quote/escape handling matches the unquoted-string decoder
// used elsewhere. If noHeader is set, or if the parsed names are not
// unique, synthetic col0..colN-1 names are produced instead and
// EndOfHeader is reported as 0 so the caller treats the first line as
// data.
func Parse(data []byte, noHeader bool) (Result, error) {
	length := int64(len(data))
	var token []byte
	var names []string
	var quoteStarted byte
	var escapeJump int
	eoh := false
	soh := false
	var endOfHeader int64

	var i int64
	// Skip leading whitespace before the header body starts.
	for i < length && !soh {
		if unicode.IsSpace(rune(data[i])) {
			i++
		} else {
			soh = true
		}
	}
	for i < length && !eoh {
		c := data[i]
		if quoteStarted != 0 {
			switch {
			case escapeJump > 0:
				escapeJump--
				token = append(token, c)
			case c == '\\':
				escapeJump = 1
				token = append(token, c)
			case c == quoteStarted:
				quoteStarted = 0
			default:
				token = append(token, c)
			}
			i++
			continue
		}
		switch {
		case escapeJump > 0:
			token = append(token, c)
			escapeJump--
		case c == '\\':
			token = append(token, c)
			escapeJump = 1
		case c == '"' || c == '\'':
			quoteStarted = c
		case c == ',':
			names = append(names, decodeColumnName(token))
			token = nil
		case c == '\r':
			// DOS line endings waste a byte; ignore.
		case c == '\n':
			names = append(names, decodeColumnName(token))
			token = nil
			endOfHeader = i
			eoh = true
		default:
			token = append(token, c)
		}
		i++
	}
	if !soh {
		endOfHeader = i
	}

	res := Result{Names: names, EndOfHeader: endOfHeader, HasHeader: true}
	if noHeader || !unique(names) {
		res.HasHeader = false
		res.Names = syntheticNames(len(names))
		res.EndOfHeader = 0
	}
	return res, nil
}

func decodeColumnName(tok []byte) string {
	decoded, err := bytesutil.DecodeUnquoted(tok)
	if err != nil {
		decoded = tok
	}
	bytesutil.ConvertNullToSpace(decoded)
	return string(decoded)
}

func unique(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return false
		}
		seen[n] = struct{}{}
	}
	return true
}

func syntheticNames(n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = "col" + strconv.Itoa(i)
	}
	return out
}
