package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/sahil-erp/internal/application/reports"
)

// CSVWriter implementa reports.TableWriter en CSV (RFC 4180).
type CSVWriter struct{}

// NewCSVWriter construye el writer.
func NewCSVWriter() *CSVWriter { return &CSVWriter{} }

func (CSVWriter) Format() string      { return "csv" }
func (CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVWriter) Write(w io.Writer, t reports.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("csv: cabecera: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("csv: filas: %w", err)
	}
	return nil
}
