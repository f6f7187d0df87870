package ingest

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dividend-screener/internal/sheet"
	"dividend-screener/internal/table"
)

type memorySource struct {
	names  []string
	sheets map[string][][]sheet.Cell
	err    error
}

func (m memorySource) SheetNames() []string { return m.names }

func (m memorySource) Rows(name string) ([][]sheet.Cell, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sheets[name], nil
}

func championsSource(rows ...[]sheet.Cell) memorySource {
	banner := [][]sheet.Cell{
		{sheet.Text("Dividend Champions")},
		{},
	}
	return memorySource{
		names:  []string{"All", "Champions"},
		sheets: map[string][][]sheet.Cell{"Champions": append(banner, rows...)},
	}
}

func TestLoadBuildsTypedTable(t *testing.T) {
	src := championsSource(
		[]sheet.Cell{sheet.Text("Symbol"), sheet.Text("Company"), sheet.Empty(), sheet.Text("Div Yield")},
		[]sheet.Cell{sheet.Text("ABM"), sheet.Text("ABM Industries"), sheet.Text("x"), sheet.Number(5.54)},
		[]sheet.Cell{sheet.Text("INTC"), sheet.Text("Intel")},
		[]sheet.Cell{sheet.Text("CAT"), sheet.Text("Caterpillar"), sheet.Empty(), sheet.Number(4.0), sheet.Empty()},
	)

	tbl, err := NewIngestor(zerolog.Nop()).Load(src, "Champions")
	require.NoError(t, err)

	assert.Equal(t, []string{"Symbol", "Company", BlendedLabel, "Div Yield"}, tbl.Names())
	assert.Equal(t, 3, tbl.Height())

	yield, err := tbl.Column("Div Yield")
	require.NoError(t, err)
	assert.True(t, yield.Equal(table.NullableFloats("Div Yield", ptr(5.54), nil, ptr(4.0))))

	blended, err := tbl.Column(BlendedLabel)
	require.NoError(t, err)
	assert.Equal(t, table.Text, blended.Kind())
	v, ok := blended.Text(0)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.True(t, blended.IsNull(1))
}

func TestLoadCategoryNotFound(t *testing.T) {
	_, err := NewIngestor(zerolog.Nop()).Load(championsSource(), "Contenders")
	require.ErrorIs(t, err, ErrCategoryNotFound)

	var notFound *CategoryNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Contenders", notFound.Category)
	assert.Equal(t, []string{"All", "Champions"}, notFound.Available)
}

func TestLoadMissingHeader(t *testing.T) {
	_, err := NewIngestor(zerolog.Nop()).Load(championsSource(), "Champions")
	require.ErrorIs(t, err, ErrTableConstruction)
}

func TestLoadSourceError(t *testing.T) {
	src := championsSource()
	src.err = errors.New("corrupt sheet")
	_, err := NewIngestor(zerolog.Nop()).Load(src, "Champions")
	require.ErrorIs(t, err, ErrTableConstruction)
}

func TestLoadDeduplicatesLabels(t *testing.T) {
	src := championsSource(
		[]sheet.Cell{sheet.Text("Symbol"), sheet.Empty(), sheet.Empty(), sheet.Cell{Kind: sheet.CellBool}},
		[]sheet.Cell{sheet.Text("ABM"), sheet.Number(1), sheet.Number(2), sheet.Number(3)},
	)

	tbl, err := NewIngestor(zerolog.Nop()).Load(src, "Champions")
	require.NoError(t, err)
	assert.Equal(t, []string{"Symbol", "Blended", "Blended_1"}, tbl.Names())
}

func TestLoadDeduplicatesAgainstLiteralSuffix(t *testing.T) {
	src := championsSource(
		[]sheet.Cell{sheet.Text("Blended_1"), sheet.Empty(), sheet.Empty(), sheet.Text("Blended")},
		[]sheet.Cell{sheet.Number(1), sheet.Number(2), sheet.Number(3), sheet.Number(4)},
	)

	tbl, err := NewIngestor(zerolog.Nop()).Load(src, "Champions")
	require.NoError(t, err)
	assert.Equal(t, []string{"Blended_1", "Blended", "Blended_2", "Blended_3"}, tbl.Names())
}

func TestLoadHeaderOnly(t *testing.T) {
	src := championsSource([]sheet.Cell{sheet.Text("Symbol"), sheet.Text("Price")})

	tbl, err := NewIngestor(zerolog.Nop()).Load(src, "Champions")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Height())
	assert.Equal(t, 2, tbl.Width())
}

func TestLoadFromWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	name := "Champions"
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
	require.NoError(t, f.SetCellValue(name, "A1", "Dividend Champions"))
	require.NoError(t, f.SetSheetRow(name, "A3", &[]any{"Symbol", "Company", "Div Yield", "DGR 1Y"}))
	require.NoError(t, f.SetSheetRow(name, "A4", &[]any{"ABM", "ABM Industries", 5.54, 7.05}))
	require.NoError(t, f.SetSheetRow(name, "A5", &[]any{"CAT", "Caterpillar", 4.0}))

	path := filepath.Join(t.TempDir(), "champions.xlsx")
	require.NoError(t, f.SaveAs(path))

	wb, err := sheet.Open(path)
	require.NoError(t, err)
	defer wb.Close()

	tbl, err := NewIngestor(zerolog.Nop()).Load(wb, name)
	require.NoError(t, err)

	assert.Equal(t, []string{"Symbol", "Company", "Div Yield", "DGR 1Y"}, tbl.Names())
	assert.Equal(t, 2, tbl.Height())

	dgr, err := tbl.Column("DGR 1Y")
	require.NoError(t, err)
	assert.True(t, dgr.Equal(table.NullableFloats("DGR 1Y", ptr(7.05), nil)))
}
