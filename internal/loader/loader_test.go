package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paratab/paratab/internal/column"
	"github.com/paratab/paratab/internal/numeric"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "test.csv")

	f, err := os.Create(csvPath)
	require.NoError(t, err)
	f.WriteString("id,name,value,category\n")

	dataRows := 5000
	for i := 0; i < dataRows; i++ {
		name := fmt.Sprintf("name_%d", i)
		if i%2 == 0 {
			name = fmt.Sprintf("\"name_%d\"", i)
		}
		fmt.Fprintf(f, "%d,%s,%d,cat_%d\n", i, name, i*100, i%5)
	}
	f.Close()

	cfg := DefaultConfig()
	cfg.NumThreads = 4

	table, err := Load(context.Background(), csvPath, cfg)
	require.NoError(t, err)
	require.Equal(t, 4, table.NumColumns())

	idCol := table.Column(0)
	assert.Equal(t, "id", idCol.Name)
	assert.Equal(t, column.Numeric, idCol.Semantics)
	assert.Equal(t, dataRows, table.Size(0))

	catCol := table.Column(3)
	assert.Equal(t, column.Categorical, catCol.Semantics)
	assert.Len(t, table.Levels(3), 5)
}

func TestLoadPromotesMixedIntegerWidths(t *testing.T) {
	path := writeCSV(t, "n\n1\n300\n100000\n5000000000\n")
	cfg := DefaultConfig()
	cfg.NumThreads = 2

	table, err := Load(context.Background(), path, cfg)
	require.NoError(t, err)
	assert.Equal(t, numeric.KindInt64, table.NumericKind(0))
	assert.Equal(t, float64(5000000000), table.NumberAt(0, 3))
}

func TestLoadRejectsFieldCountMismatch(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2\n3\n")
	cfg := DefaultConfig()
	cfg.NumThreads = 1

	_, err := Load(context.Background(), path, cfg)
	require.Error(t, err)
}

func TestLoadNextAccumulatesAcrossWindows(t *testing.T) {
	body := "n,tag\n"
	for i := 0; i < 2000; i++ {
		body += fmt.Sprintf("%d,tag_%d\n", i, i%3)
	}
	path := writeCSV(t, body)

	cfg := DefaultConfig()
	cfg.NumThreads = 2
	cfg.ChunkedFileReading = true
	cfg.FileChunkSize = 4096

	l, err := Open(path, cfg)
	require.NoError(t, err)
	defer l.Close()

	windows := 0
	for {
		more, err := l.LoadNext(context.Background())
		require.NoError(t, err)
		if !more {
			break
		}
		windows++
	}
	require.GreaterOrEqual(t, windows, 2)

	table := l.Table()
	assert.Equal(t, 2000, table.Size(0))
	assert.Equal(t, column.Categorical, table.Column(1).Semantics)
}

func TestLoadSkipsReparseOfUnchangedFile(t *testing.T) {
	path := writeCSV(t, "n,tag\n1,a\n2,b\n3,c\n")
	cfg := DefaultConfig()
	cfg.NumThreads = 1

	first, err := Load(context.Background(), path, cfg)
	require.NoError(t, err)

	second, err := Load(context.Background(), path, cfg)
	require.NoError(t, err)
	assert.Same(t, first, second, "unchanged file should return the cached Table")

	require.NoError(t, os.WriteFile(path, []byte("n,tag\n1,a\n2,b\n3,c\n4,d\n"), 0o644))
	third, err := Load(context.Background(), path, cfg)
	require.NoError(t, err)
	assert.NotSame(t, first, third, "modified file should be re-parsed, not served from cache")
	assert.Equal(t, 4, third.Size(0))
}

func TestLoadForcedTextSemantics(t *testing.T) {
	path := writeCSV(t, "code\n001\n002\n777\n")
	cfg := DefaultConfig()
	cfg.NumThreads = 1
	cfg.ForcedSemantics = map[string]column.Semantics{"code": column.Text}

	table, err := Load(context.Background(), path, cfg)
	require.NoError(t, err)
	require.Equal(t, column.Text, table.Column(0).Semantics)

	// Forcing is applied by the accumulator, not the worker, so a
	// digit-only token is still classified numeric before being
	// reformatted as text: leading zeros do not survive.
	assert.Equal(t, "1", table.TextAt(0, 0))
}
