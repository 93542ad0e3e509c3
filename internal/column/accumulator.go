// Package column implements the per-worker, per-column accumulator that
// classifies incoming field values as Numeric, Categorical, or Text and
// stores them accordingly, deferring the final semantic decision until
// merge time.
//
// Ported from ColBasedChunk in
// original_source/src/csv/colbased_chunk.hpp — the real, finished
// implementation (colbased_holder2.hpp in the same pack is marked
// "Unused code. Work-in-progress. Unfinished." in its own header and is
// not used here).
package column

import (
	"strconv"

	"github.com/paratab/paratab/internal/bytesutil"
	"github.com/paratab/paratab/internal/loaderr"
	"github.com/paratab/paratab/internal/numeric"
)

// Semantics is the final type classification of a column.
type Semantics int

const (
	Unknown Semantics = iota
	Numeric
	Categorical
	Text
)

func (s Semantics) String() string {
	switch s {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Accumulator holds one worker's share of one column's values.
type Accumulator struct {
	ColumnName string

	maxLevelNameLength int
	maxLevels          int
	forced             Semantics

	numberData *numeric.Vector
	catIDs     map[string]int
	catKeys    []string
	catData    *numeric.CatVector
	textData   []string
}

// New constructs an accumulator for one column within one worker's
// chunk. maxLevelNameLength and maxLevels mirror the original's
// level/length caps: exceeding either forces the column to Text.
// A forced value other than Unknown pins the column's semantics from
// the first value onward, porting forced_semantics_.
func New(name string, maxLevelNameLength, maxLevels int, forced Semantics) *Accumulator {
	return &Accumulator{
		ColumnName:         name,
		maxLevelNameLength: maxLevelNameLength,
		maxLevels:          maxLevels,
		forced:             forced,
		numberData:         numeric.NewVector(),
		catIDs:             make(map[string]int),
	}
}

// ProcessFloat records a floating-point datum, porting process_float: if
// categorical/text data was already observed (or Text/Categorical is
// forced), the value is converted to its string form and handled as
// categorical instead. Text is absorbing — once the column has already
// settled into text storage, the string form is appended there directly
// rather than routed back through the categorical path, preserving row
// order instead of landing at the end of textData at merge time.
func (a *Accumulator) ProcessFloat(val float64) {
	s := strconv.FormatFloat(val, 'g', -1, 64)
	if len(a.textData) > 0 {
		a.textData = append(a.textData, s)
		return
	}
	if len(a.catKeys) > 0 || a.forced == Categorical || a.forced == Text {
		a.processCategoricalString(s)
		return
	}
	a.numberData.PushFloat(val)
}

// ProcessInt records an integer datum, porting process_integer. Text is
// absorbing; see ProcessFloat.
func (a *Accumulator) ProcessInt(val int64) {
	s := strconv.FormatInt(val, 10)
	if len(a.textData) > 0 {
		a.textData = append(a.textData, s)
		return
	}
	if len(a.catKeys) > 0 || a.forced == Categorical || a.forced == Text {
		a.processCategoricalString(s)
		return
	}
	a.numberData.PushInt(val)
}

// ProcessCategorical records a string-valued datum, porting
// process_categorical: an empty token where numeric data has already
// been seen becomes a zero (matching the original's blank-field
// handling for a numeric column), forced-Numeric columns instead parse
// the token as a float, and otherwise prior numeric data is converted to
// categorical/text before the new value is added. A forced-Numeric
// column fed a token with no recognizable numeric shape reports
// BadNumericForce instead of silently recording a bogus zero or NaN.
func (a *Accumulator) ProcessCategorical(tok []byte, parseFloat func([]byte) float64) error {
	if a.forced == Numeric {
		if bytesutil.IsNaNToken(tok) {
			a.numberData.PushFloat(parseFloat(tok))
			return nil
		}
		if !looksNumeric(tok) {
			return loaderr.New(loaderr.BadNumericForce, "value is not numeric").WithColumn(a.ColumnName)
		}
		a.numberData.PushFloat(parseFloat(tok))
		return nil
	}
	if a.numberData.Len() > 0 {
		if len(tok) == 0 {
			a.numberData.PushInt(0)
			return nil
		}
		a.ConvertToCatOrText()
		a.addCatData(string(tok))
		return nil
	}
	a.addCatData(string(tok))
	return nil
}

// looksNumeric reports whether tok has the shape of a number: an
// optional sign followed by at least one digit. It doesn't validate the
// full grammar parseFloat accepts (exponents, decimal points); a leading
// digit after an optional sign is the one thing every valid numeric
// token has and pure garbage text lacks.
func looksNumeric(tok []byte) bool {
	i := 0
	n := len(tok)
	for i < n && (tok[i] == ' ' || tok[i] == '\t') {
		i++
	}
	if i < n && (tok[i] == '-' || tok[i] == '+') {
		i++
	}
	return i < n && tok[i] >= '0' && tok[i] <= '9'
}

func (a *Accumulator) processCategoricalString(s string) {
	a.addCatData(s)
}

// Semantics returns the column's current observed semantics: text beats
// categorical beats numeric, matching get_semantics.
func (a *Accumulator) Semantics() Semantics {
	if len(a.textData) > 0 {
		return Text
	}
	if len(a.catKeys) > 0 {
		return Categorical
	}
	return Numeric
}

// Kind returns the active numeric rung, valid only when Semantics() ==
// Numeric.
func (a *Accumulator) Kind() numeric.Kind {
	return a.numberData.Kind
}

// Size returns the number of values recorded in whichever store is
// active.
func (a *Accumulator) Size() int {
	switch a.Semantics() {
	case Text:
		return len(a.textData)
	case Categorical:
		return a.catData.Len()
	default:
		return a.numberData.Len()
	}
}

// Numbers exposes the underlying numeric vector for merge-time ladder
// joins and population.
func (a *Accumulator) Numbers() *numeric.Vector { return a.numberData }

// CatKeys returns this worker's local dictionary, in first-seen order.
func (a *Accumulator) CatKeys() []string { return a.catKeys }

// CatData exposes the per-row dictionary indices into CatKeys.
func (a *Accumulator) CatData() *numeric.CatVector { return a.catData }

// TextAt returns the text value at row i (Semantics() == Text only).
func (a *Accumulator) TextAt(i int) string { return a.textData[i] }

// TextLenSum sums the byte length of every text value, used for the
// diagnostic per-column sum pass.
func (a *Accumulator) TextLenSum() int {
	sum := 0
	for _, s := range a.textData {
		sum += len(s)
	}
	return sum
}

// ConvertToCatOrText converts any accumulated numeric data to
// categorical strings, porting convert_to_cat_or_text: every numeric
// value so far becomes its decimal string form and is re-inserted via
// the categorical path (which may itself immediately escalate to Text if
// the level caps are already exceeded).
func (a *Accumulator) ConvertToCatOrText() {
	if a.numberData.Len() == 0 {
		return
	}
	n := a.numberData.Len()
	vals := make([]string, n)
	isFloat := a.numberData.Kind == numeric.KindFloat32 || a.numberData.Kind == numeric.KindFloat64
	for i := 0; i < n; i++ {
		if isFloat {
			vals[i] = strconv.FormatFloat(a.numberData.At(i), 'g', -1, 64)
		} else {
			vals[i] = strconv.FormatInt(int64(a.numberData.At(i)), 10)
		}
	}
	a.numberData = numeric.NewVector()
	for _, s := range vals {
		a.addCatData(s)
	}
}

// ConvertToText moves all accumulated data (numeric or categorical) into
// the text store, porting convert_to_text.
func (a *Accumulator) ConvertToText() {
	if a.numberData.Len() > 0 || a.forced == Text {
		n := a.numberData.Len()
		isFloat := a.numberData.Kind == numeric.KindFloat32 || a.numberData.Kind == numeric.KindFloat64
		for i := 0; i < n; i++ {
			if isFloat {
				a.textData = append(a.textData, strconv.FormatFloat(a.numberData.At(i), 'g', -1, 64))
			} else {
				a.textData = append(a.textData, strconv.FormatInt(int64(a.numberData.At(i)), 10))
			}
		}
		a.numberData = numeric.NewVector()
		return
	}
	if a.catData != nil {
		n := a.catData.Len()
		for i := 0; i < n; i++ {
			a.textData = append(a.textData, a.catKeys[a.catData.At(i)])
		}
		a.catData = nil
		a.catIDs = make(map[string]int)
		a.catKeys = nil
	}
}

// getStringID interns data into the local dictionary, porting
// get_string_id.
func (a *Accumulator) getStringID(data string) int {
	if id, ok := a.catIDs[data]; ok {
		return id
	}
	id := len(a.catIDs)
	a.catIDs[data] = id
	a.catKeys = append(a.catKeys, data)
	return id
}

// addCatData routes a string value to text or categorical storage,
// porting add_cat_data: Text forcing or already-active text storage
// keeps it as text; exceeding either level cap promotes the whole column
// to text.
func (a *Accumulator) addCatData(data string) {
	if a.forced == Text || len(a.textData) > 0 {
		a.textData = append(a.textData, data)
		return
	}
	if a.forced == Categorical {
		a.pushCat(data)
		return
	}
	if len(data) > a.maxLevelNameLength {
		a.ConvertToText()
		a.textData = append(a.textData, data)
		return
	}
	a.pushCat(data)
	if len(a.catKeys) > a.maxLevels {
		a.ConvertToText()
	}
}

func (a *Accumulator) pushCat(data string) {
	if a.catData == nil {
		a.catData = numeric.NewCatVector()
	}
	a.catData.Push(uint64(a.getStringID(data)))
}
