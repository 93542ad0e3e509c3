package loader

import (
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/paratab/paratab/internal/column"
	"github.com/paratab/paratab/internal/numeric"
)

// mergeColumns folds the per-worker accumulators for every column into a
// single Table, porting ColBasedLoader::update_meta_data. When every
// worker agrees a column is Numeric the columns are joined by widening
// each worker's vector to the common ladder rung and concatenating in
// worker order, without ever materializing strings. Otherwise the
// column is demoted to categorical or text and its per-worker
// dictionaries are unified into one, preserving first-seen order across
// workers the way the original's level_ids_/level_names_ map does.
func mergeColumns(names []string, forced map[string]column.Semantics, perWorker [][]*column.Accumulator) (*Table, error) {
	numCols := len(names)
	numWorkers := len(perWorker)

	allNumeric := make([]bool, numCols)
	for c := 0; c < numCols; c++ {
		allNumeric[c] = true
		for w := 0; w < numWorkers; w++ {
			if perWorker[w][c].Semantics() != column.Numeric {
				allNumeric[c] = false
				break
			}
		}
	}

	merged := make([]mergedColumn, numCols)
	g := new(errgroup.Group)
	for c := 0; c < numCols; c++ {
		c := c
		g.Go(func() error {
			col := mergeOneColumn(names[c], forced[names[c]], allNumeric[c], columnAcross(perWorker, c))
			merged[c] = col
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Table{columns: merged}, nil
}

func columnAcross(perWorker [][]*column.Accumulator, c int) []*column.Accumulator {
	out := make([]*column.Accumulator, len(perWorker))
	for w := range perWorker {
		out[w] = perWorker[w][c]
	}
	return out
}

func mergeOneColumn(name string, forcedSem column.Semantics, allNumeric bool, accs []*column.Accumulator) mergedColumn {
	if allNumeric && forcedSem != column.Text && forcedSem != column.Categorical {
		return mergedColumn{
			info:    ColumnInfo{Name: name, Semantics: column.Numeric},
			numbers: joinNumeric(accs),
		}
	}

	anyText := forcedSem == column.Text
	for _, a := range accs {
		a.ConvertToCatOrText()
		if a.Semantics() == column.Text {
			anyText = true
		}
	}
	if anyText {
		for _, a := range accs {
			a.ConvertToText()
		}
		var text []string
		for _, a := range accs {
			n := a.Size()
			for i := 0; i < n; i++ {
				text = append(text, a.TextAt(i))
			}
		}
		return mergedColumn{info: ColumnInfo{Name: name, Semantics: column.Text}, text: text}
	}

	levelIDs := make(map[string]int)
	var levelNames []string
	var data []uint64
	for _, a := range accs {
		keys := a.CatKeys()
		remap := make([]uint64, len(keys))
		for i, k := range keys {
			id, ok := levelIDs[k]
			if !ok {
				id = len(levelNames)
				levelIDs[k] = id
				levelNames = append(levelNames, k)
			}
			remap[i] = uint64(id)
		}
		cd := a.CatData()
		if cd == nil {
			continue
		}
		n := cd.Len()
		for i := 0; i < n; i++ {
			data = append(data, remap[cd.At(i)])
		}
	}
	return mergedColumn{
		info:      ColumnInfo{Name: name, Semantics: column.Categorical},
		catLevels: levelNames,
		catData:   data,
	}
}

// joinNumeric widens every worker's numeric vector to the common kind
// across all of them and concatenates the values in worker order,
// porting the ladder-join half of update_meta_data.
func joinNumeric(accs []*column.Accumulator) *numeric.Vector {
	common := numeric.KindUint8
	for _, a := range accs {
		common = numeric.CommonKind(common, a.Numbers().Kind)
	}

	out := numeric.NewVector()
	for _, a := range accs {
		appendVectorInto(out, a.Numbers())
	}
	out.PromoteTo(common)
	return out
}

// appendVectorInto replays src's values onto out through the normal
// widening push path, letting out settle on whatever rung the combined
// values need.
func appendVectorInto(out, src *numeric.Vector) {
	isFloat := src.Kind == numeric.KindFloat32 || src.Kind == numeric.KindFloat64
	n := src.Len()
	for i := 0; i < n; i++ {
		if isFloat {
			out.PushFloat(src.At(i))
		} else {
			out.PushInt(int64(src.At(i)))
		}
	}
}

// appendTables folds windowTable (the result of one LoadNext window)
// onto base (everything accumulated so far), column by column, porting
// the incremental-batch side of ColBasedLoader::load_next. A column
// whose semantics disagree between windows (e.g. numeric in one window,
// text in another) is demoted to text in the merged result so no data is
// lost.
func appendTables(names []string, base, windowTable *Table) *Table {
	out := make([]mergedColumn, len(names))
	for i := range names {
		out[i] = appendColumn(names[i], base.columns[i], windowTable.columns[i])
	}
	return &Table{columns: out}
}

func appendColumn(name string, a, b mergedColumn) mergedColumn {
	if a.info.Semantics == column.Numeric && b.info.Semantics == column.Numeric {
		common := numeric.CommonKind(a.numbers.Kind, b.numbers.Kind)
		out := numeric.NewVector()
		appendVectorInto(out, a.numbers)
		appendVectorInto(out, b.numbers)
		out.PromoteTo(common)
		return mergedColumn{info: ColumnInfo{Name: name, Semantics: column.Numeric}, numbers: out}
	}

	if a.info.Semantics == column.Categorical && b.info.Semantics == column.Categorical {
		levelIDs := make(map[string]int)
		var levels []string
		remap := func(lv []string) []uint64 {
			r := make([]uint64, len(lv))
			for i, k := range lv {
				id, ok := levelIDs[k]
				if !ok {
					id = len(levels)
					levelIDs[k] = id
					levels = append(levels, k)
				}
				r[i] = uint64(id)
			}
			return r
		}
		ra := remap(a.catLevels)
		rb := remap(b.catLevels)
		data := make([]uint64, 0, len(a.catData)+len(b.catData))
		for _, idx := range a.catData {
			data = append(data, ra[idx])
		}
		for _, idx := range b.catData {
			data = append(data, rb[idx])
		}
		return mergedColumn{info: ColumnInfo{Name: name, Semantics: column.Categorical}, catLevels: levels, catData: data}
	}

	ta, tb := columnToText(a), columnToText(b)
	text := make([]string, 0, len(ta)+len(tb))
	text = append(text, ta...)
	text = append(text, tb...)
	return mergedColumn{info: ColumnInfo{Name: name, Semantics: column.Text}, text: text}
}

// columnToText renders any merged column's values as strings, used to
// reconcile windows whose inferred semantics disagree.
func columnToText(c mergedColumn) []string {
	switch c.info.Semantics {
	case column.Text:
		return c.text
	case column.Categorical:
		out := make([]string, len(c.catData))
		for i, idx := range c.catData {
			out[i] = c.catLevels[idx]
		}
		return out
	default:
		n := c.numbers.Len()
		out := make([]string, n)
		isFloat := c.numbers.Kind == numeric.KindFloat32 || c.numbers.Kind == numeric.KindFloat64
		for i := 0; i < n; i++ {
			if isFloat {
				out[i] = strconv.FormatFloat(c.numbers.At(i), 'g', -1, 64)
			} else {
				out[i] = strconv.FormatInt(int64(c.numbers.At(i)), 10)
			}
		}
		return out
	}
}
