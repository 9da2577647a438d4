package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sahil-erp/internal/application/reports"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/export"
)

var (
	_ reports.TableWriter = (*export.XLSXWriter)(nil)
	_ reports.TableWriter = (*export.CSVWriter)(nil)
)

func sample() reports.Table {
	return reports.Table{
		Sheet:   "Products",
		Headers: []string{"ID", "Name", "Price"},
		Rows: [][]string{
			{"p1", "Kurta, roja", "1000.00"},
			{"p2", "Saree", "2000.00"},
		},
	}
}

func TestCSVWriter_EscapaComas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewCSVWriter().Write(&buf, sample()))
	assert.Equal(t, "ID,Name,Price\np1,\"Kurta, roja\",1000.00\np2,Saree,2000.00\n", buf.String())
}

func TestXLSXWriter_HojaYCeldas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXWriter().Write(&buf, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Products"}, f.GetSheetList())
	v, err := f.GetCellValue("Products", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Kurta, roja", v)
	v, err = f.GetCellValue("Products", "C3")
	require.NoError(t, err)
	assert.Equal(t, "2000.00", v)
}

func TestXLSXWriter_TablaVacia(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXWriter().Write(&buf, reports.Table{}))
	assert.NotZero(t, buf.Len())
}
