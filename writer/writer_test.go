package writer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"linesheet-extractor/internal/types"
)

func sampleRows() []types.CatalogRow {
	return []types.CatalogRow{
		{RepFirmName: "Acme Reps", Brand: "BrandX", Product: "Surface Aerator", SpaceCategory: "Aeration"},
		{RepFirmName: "Acme Reps", Brand: "BrandY", Product: "Flocculator", SpaceCategory: "Flocculation"},
		{RepFirmName: "Acme Reps", Brand: "BrandZ", Product: "", SpaceCategory: "Disinfection"},
	}
}

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	return rows
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	finalPath, err := Write(sampleRows(), path)
	require.NoError(t, err)
	assert.Equal(t, path, finalPath)

	sheet := readSheet(t, finalPath)
	require.Len(t, sheet, 4) // header + 3 data rows
	assert.Equal(t, []string{"Rep Firm Name", "Brand Carried", "Product Covered", "Space"}, sheet[0])
	assert.Equal(t, []string{"Acme Reps", "BrandX", "Surface Aerator", "Aeration"}, sheet[1])
	assert.Equal(t, []string{"Acme Reps", "BrandY", "Flocculator", "Flocculation"}, sheet[2])
	// insertion order preserved, empty field kept as empty cell
	assert.Equal(t, "BrandZ", sheet[3][1])
}

func TestWrite_AppendsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")

	finalPath, err := Write(sampleRows(), path)

	require.NoError(t, err)
	assert.Equal(t, path+".xlsx", finalPath)
	_, err = os.Stat(finalPath)
	assert.NoError(t, err)
}

func TestWrite_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := Write(sampleRows(), path)
	require.NoError(t, err)

	// Second write with fewer rows replaces the file entirely.
	_, err = Write(sampleRows()[:1], path)
	require.NoError(t, err)

	sheet := readSheet(t, path)
	assert.Len(t, sheet, 2)
}

func TestWrite_Idempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Write(sampleRows(), filepath.Join(dir, "a.xlsx"))
	require.NoError(t, err)
	second, err := Write(sampleRows(), filepath.Join(dir, "b.xlsx"))
	require.NoError(t, err)

	assert.Equal(t, readSheet(t, first), readSheet(t, second))
}

func TestWrite_EmptyRowSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	finalPath, err := Write(nil, path)

	require.NoError(t, err)
	sheet := readSheet(t, finalPath)
	require.Len(t, sheet, 1)
	assert.Equal(t, Header, sheet[0])
}

func TestWrite_BadDirectory(t *testing.T) {
	_, err := Write(sampleRows(), filepath.Join(t.TempDir(), "missing", "out.xlsx"))

	require.Error(t, err)
	assert.True(t, types.IsStage(err, types.StageWrite))
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "SINGLE_Acme_Reps_20250102_150405.xlsx", DefaultFilename("Acme Reps", now))
	assert.Equal(t, "SINGLE_Acme_Co_20250102_150405.xlsx", DefaultFilename("  Acme & Co. ", now))
	assert.Equal(t, "SINGLE_rep_firm_line_sheet_20250102_150405.xlsx", DefaultFilename("", now))
}

func TestBatchFilename(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "BATCH_3firms_20250102_150405.xlsx", BatchFilename(3, now))
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	require.NoError(t, EnsureOutputDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	assert.NoError(t, EnsureOutputDir(dir))
	assert.NoError(t, EnsureOutputDir(""))
}
