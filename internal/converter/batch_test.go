package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/mailing-converter/internal/logging"
	"github.com/ginjaninja78/mailing-converter/internal/types"
)

func TestRunAll_PreservesOrder(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxConcurrency = 3

	var files []string
	for i := 0; i < 6; i++ {
		files = append(files, writeExport(t, cfg.InputDir, fmt.Sprintf("export_%d.csv", i), nil,
			map[string]string{types.ColumnOrganization: fmt.Sprintf("Firma %d", i)}))
	}
	files = append(files, filepath.Join(cfg.InputDir, "notes.txt"))

	results := RunAll(files, cfg, logging.NewMockLogger())

	require.Len(t, results, len(files))
	for i, result := range results {
		assert.Equal(t, files[i], result.FilePath)
	}
	for _, result := range results[:6] {
		assert.True(t, result.Success, result.FilePath)
	}
	assert.ErrorIs(t, results[6].Error, ErrUnsupportedFile, "one failure does not stop the others")
}

func TestRunAll_SameNameInputs(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxConcurrency = 2

	dirA := filepath.Join(cfg.InputDir, "a")
	dirB := filepath.Join(cfg.InputDir, "b")
	require.NoError(t, os.MkdirAll(dirA, 0755))
	require.NoError(t, os.MkdirAll(dirB, 0755))

	files := []string{
		writeExport(t, dirA, "members.csv", nil, map[string]string{types.ColumnOrganization: "Firma A"}),
		writeExport(t, dirB, "members.csv", nil, map[string]string{types.ColumnOrganization: "Firma B"}),
	}

	results := RunAll(files, cfg, logging.NewMockLogger())
	require.Len(t, results, 2)

	organizations := make(map[string]string)
	for _, result := range results {
		require.True(t, result.Success, result.FilePath)
		require.FileExists(t, result.OutputFile)

		rows := readSheet(t, result.OutputFile)
		require.Len(t, rows, 2)
		organizations[result.OutputFile] = rows[1][columnIndex(rows[0], types.ColumnOrganization)]
	}

	assert.NotEqual(t, results[0].OutputFile, results[1].OutputFile)
	assert.ElementsMatch(t, []string{"Firma A", "Firma B"}, []string{
		organizations[results[0].OutputFile],
		organizations[results[1].OutputFile],
	})
	assert.Equal(t, "Firma A", organizations[results[0].OutputFile])

	written, err := filepath.Glob(filepath.Join(cfg.OutputDir, "members_mailing*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, written, 2)
}

func TestRunAll_StopOnError(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxConcurrency = 1
	cfg.ContinueOnError = false

	files := []string{
		filepath.Join(cfg.InputDir, "a.txt"),
		filepath.Join(cfg.InputDir, "b.txt"),
		filepath.Join(cfg.InputDir, "c.txt"),
	}

	results := RunAll(files, cfg, logging.NewMockLogger())
	require.Len(t, results, 3)

	var unsupported, skipped int
	for _, result := range results {
		assert.False(t, result.Success)
		switch ErrorKind(result.Error) {
		case "unsupported_file":
			unsupported++
		case "skipped":
			skipped++
		}
	}
	assert.Equal(t, 1, unsupported)
	assert.Equal(t, 2, skipped)
}

func TestRunAll_Empty(t *testing.T) {
	cfg := testConfig(t)
	assert.Empty(t, RunAll(nil, cfg, logging.NewMockLogger()))
}
