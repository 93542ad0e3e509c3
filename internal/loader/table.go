package loader

import (
	"github.com/paratab/paratab/internal/column"
	"github.com/paratab/paratab/internal/numeric"
)

// ColumnInfo describes one column's name and final inferred semantics,
// porting ParaText::ColumnInfo.
type ColumnInfo struct {
	Name      string
	Semantics column.Semantics
}

// mergedColumn holds one column's fully merged data after Load
// completes, in exactly one of the three storage forms.
type mergedColumn struct {
	info ColumnInfo

	numbers *numeric.Vector

	catLevels []string
	catData   []uint64

	text []string
}

func (m *mergedColumn) size() int {
	switch m.info.Semantics {
	case column.Text:
		return len(m.text)
	case column.Categorical:
		return len(m.catData)
	default:
		return m.numbers.Len()
	}
}

// Table is the column-oriented, type-inferred result of a Load.
type Table struct {
	columns []mergedColumn
}

// emptyTable builds a zero-row Table for a header with no data rows to
// follow, one empty numeric vector per column since there is nothing to
// infer semantics from.
func emptyTable(names []string) *Table {
	columns := make([]mergedColumn, len(names))
	for i, name := range names {
		columns[i] = mergedColumn{
			info:    ColumnInfo{Name: name, Semantics: column.Numeric},
			numbers: numeric.NewVector(),
		}
	}
	return &Table{columns: columns}
}

// NumColumns returns how many columns the table holds.
func (t *Table) NumColumns() int { return len(t.columns) }

// Column returns the name and semantics of column i.
func (t *Table) Column(i int) ColumnInfo { return t.columns[i].info }

// Size returns the number of rows stored for column i.
func (t *Table) Size(i int) int { return t.columns[i].size() }

// NumericKind returns the numeric ladder rung of column i, valid only
// when its Semantics is Numeric.
func (t *Table) NumericKind(i int) numeric.Kind { return t.columns[i].numbers.Kind }

// NumberAt returns row j of numeric column i as a float64.
func (t *Table) NumberAt(i, j int) float64 { return t.columns[i].numbers.At(j) }

// TextAt returns row j of text column i.
func (t *Table) TextAt(i, j int) string { return t.columns[i].text[j] }

// CategoryIndexAt returns the dictionary index of row j of categorical
// column i.
func (t *Table) CategoryIndexAt(i, j int) uint64 { return t.columns[i].catData[j] }

// Levels returns the unified dictionary for categorical column i, in the
// order levels were first encountered across all workers, porting
// get_levels/StringVectorPopulator.
func (t *Table) Levels(i int) []string { return t.columns[i].catLevels }

// CopyInto copies numeric column i into dst as float64, porting
// copy_column_impl's arithmetic-output-iterator path. len(dst) must be
// at least Size(i).
func (t *Table) CopyInto(i int, dst []float64) {
	c := t.columns[i]
	for j := 0; j < c.numbers.Len(); j++ {
		dst[j] = c.numbers.At(j)
	}
}

// CopyTextInto copies text column i into dst, porting
// copy_column_impl's std::string specialization.
func (t *Table) CopyTextInto(i int, dst []string) {
	copy(dst, t.columns[i].text)
}
