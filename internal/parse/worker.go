// Package parse implements the per-chunk CSV byte state machine that
// classifies and dispatches field tokens to per-column accumulators.
//
// Ported from ColBasedParseWorker::parse_impl
// (original_source/src/csv/colbased_worker.hpp).
package parse

import (
	"math"

	"github.com/paratab/paratab/internal/bytesutil"
	"github.com/paratab/paratab/internal/column"
	"github.com/paratab/paratab/internal/loaderr"
)

// Worker parses one chunk's byte range into a fixed slice of column
// accumulators, one per column, all owned exclusively by this worker.
type Worker struct {
	Handlers []*column.Accumulator

	token             []byte
	definitelyString  bool
	linesParsed       int64
	quoteStarted      byte
	columnIndex       int
	NumberOnly        bool
}

// New constructs a parse worker over handlers, one per column, in column
// order.
func New(handlers []*column.Accumulator, numberOnly bool) *Worker {
	return &Worker{Handlers: handlers, NumberOnly: numberOnly}
}

// Parse consumes data in its entirety as the byte content of one chunk
// (already trimmed to [start,end] by the caller), porting parse_impl's
// block loop collapsed to operate over an in-memory slice since the
// chunk is mmapped rather than re-read block by block.
func (w *Worker) Parse(data []byte) error {
	w.columnIndex = 0
	w.quoteStarted = 0
	w.definitelyString = false

	n := len(data)
	i := 0
	for i < n {
		if w.NumberOnly {
			switch data[i] {
			case ',':
				if err := w.processTokenNumberOnly(); err != nil {
					return err
				}
			case '\n':
				if len(w.token) > 0 || w.columnIndex > 0 {
					if err := w.processTokenNumberOnly(); err != nil {
						return err
					}
				}
				if err := w.processNewline(); err != nil {
					return err
				}
			default:
				w.token = append(w.token, data[i])
			}
			i++
			continue
		}

		if w.quoteStarted != 0 {
			for ; i < n; i++ {
				if data[i] == w.quoteStarted {
					i++
					w.quoteStarted = 0
					break
				}
				w.token = append(w.token, data[i])
			}
			continue
		}
		switch data[i] {
		case '"':
			i++
			w.quoteStarted = '"'
			w.definitelyString = true
		case ',':
			if err := w.processToken(); err != nil {
				return err
			}
			i++
		case '\n':
			if len(w.token) > 0 || w.columnIndex > 0 {
				if err := w.processToken(); err != nil {
					return err
				}
			}
			if err := w.processNewline(); err != nil {
				return err
			}
			i++
		default:
			w.token = append(w.token, data[i])
			i++
		}
	}

	// A file that doesn't end with a trailing newline still has a
	// pending last field/row to flush.
	if len(w.token) > 0 || w.columnIndex > 0 {
		if w.NumberOnly {
			if err := w.processTokenNumberOnly(); err != nil {
				return err
			}
		} else if err := w.processToken(); err != nil {
			return err
		}
	}
	if w.columnIndex > 0 {
		if err := w.processNewline(); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) processNewline() error {
	if w.columnIndex != len(w.Handlers) {
		return loaderr.New(loaderr.FieldCountMismatch, "improper number of columns").WithLine(w.linesParsed + 1)
	}
	w.columnIndex = 0
	w.linesParsed++
	return nil
}

func (w *Worker) processTokenNumberOnly() error {
	if w.columnIndex >= len(w.Handlers) {
		return loaderr.New(loaderr.FieldCountMismatch, "too many columns").WithLine(w.linesParsed + 1)
	}
	tok := trimLeadingSpace(w.token)
	if len(tok) > 0 {
		if bytesutil.IsNaNToken(tok) {
			w.Handlers[w.columnIndex].ProcessFloat(nan())
		} else if looksLikeFloat(tok) {
			w.Handlers[w.columnIndex].ProcessFloat(bytesutil.ParseFloat(tok))
		} else {
			w.Handlers[w.columnIndex].ProcessInt(bytesutil.FastAtoi(tok))
		}
	} else {
		w.Handlers[w.columnIndex].ProcessInt(0)
	}
	w.columnIndex++
	w.token = nil
	return nil
}

func (w *Worker) processToken() error {
	if w.columnIndex >= len(w.Handlers) {
		return loaderr.New(loaderr.FieldCountMismatch, "too many columns").WithLine(w.linesParsed + 1)
	}
	if w.definitelyString {
		err := w.Handlers[w.columnIndex].ProcessCategorical(w.token, bytesutil.ParseFloat)
		w.definitelyString = false
		w.columnIndex++
		w.token = nil
		return w.annotate(err)
	}

	tok := trimLeadingSpace(w.token)
	var err error
	if bytesutil.IsNaNToken(tok) {
		w.Handlers[w.columnIndex].ProcessFloat(nan())
	} else {
		switch classify(tok) {
		case tokInteger:
			w.Handlers[w.columnIndex].ProcessInt(bytesutil.FastAtoi(tok))
		case tokFloat:
			w.Handlers[w.columnIndex].ProcessFloat(bytesutil.ParseFloat(tok))
		default:
			err = w.Handlers[w.columnIndex].ProcessCategorical(w.token, bytesutil.ParseFloat)
		}
	}

	w.columnIndex++
	w.token = nil
	return w.annotate(err)
}

// annotate adds the current line number to a loaderr.Error returned from
// an accumulator call, leaving any other error (or nil) untouched.
func (w *Worker) annotate(err error) error {
	if err == nil {
		return nil
	}
	if le, ok := err.(*loaderr.Error); ok {
		return le.WithLine(w.linesParsed + 1)
	}
	return err
}

type tokenKind int

const (
	tokCategorical tokenKind = iota
	tokInteger
	tokFloat
)

// classify walks tok the way process_token does: optional sign, a digit
// run, an optional '.'+digits, an optional exponent marker with optional
// sign and digits. Anything that doesn't fully match one of those shapes
// falls back to categorical.
func classify(tok []byte) tokenKind {
	n := len(tok)
	if n == 0 {
		return tokCategorical
	}
	i := 0
	if tok[i] == '-' {
		i++
	}
	if i >= n || !isDigit(tok[i]) {
		return tokCategorical
	}
	integerPossible := true
	for i < n && integerPossible {
		integerPossible = isDigit(tok[i])
		i++
	}
	if !integerPossible {
		i--
	}
	if i >= n {
		return tokInteger
	}

	if tok[i] == '.' {
		i++
		for i < n && isDigit(tok[i]) {
			i++
		}
		if i >= n {
			return tokFloat
		}
	}

	expPossible := tok[i] == 'E' || tok[i] == 'e'
	i++
	if !expPossible {
		return tokCategorical
	}
	if i >= n {
		return tokCategorical
	}
	if tok[i] == '+' || tok[i] == '-' {
		i++
		if i >= n || !isDigit(tok[i]) {
			return tokCategorical
		}
		for i < n && isDigit(tok[i]) {
			i++
		}
		return tokFloat
	}
	if !isDigit(tok[i]) {
		return tokCategorical
	}
	for i < n && isDigit(tok[i]) {
		i++
	}
	return tokFloat
}

func looksLikeFloat(tok []byte) bool {
	i := 0
	if tok[i] == '-' {
		i++
	}
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	return i < len(tok) && (tok[i] == '.' || tok[i] == 'E' || tok[i] == 'e')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func trimLeadingSpace(b []byte) []byte {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	return b[i:]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func nan() float64 {
	return math.NaN()
}
