// Package xlsx lee planillas Excel de tarifas de procesos con excelize.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/vidrieria-api/internal/application/catalog"
)

var _ catalog.PriceTableReader = (*PriceTableReader)(nil)

// Columnas esperadas en el encabezado (orden libre).
const (
	ColumnProcess   = "process"
	ColumnThickness = "thickness_mm"
	ColumnPrice     = "price"
)

// PriceTableReader lee la hoja activa de un .xlsx.
type PriceTableReader struct{}

// NewPriceTableReader construye el lector.
func NewPriceTableReader() *PriceTableReader {
	return &PriceTableReader{}
}

// ReadPriceTable devuelve las filas no vacías de la hoja activa. El encabezado debe contener
// process, thickness_mm y price.
func (PriceTableReader) ReadPriceTable(r io.Reader) ([]catalog.PriceRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("la planilla está vacía")
	}

	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	out := make([]catalog.PriceRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		pr := catalog.PriceRow{
			Row:       i + 1,
			Process:   cell(row, idx[ColumnProcess]),
			Thickness: cell(row, idx[ColumnThickness]),
			Price:     cell(row, idx[ColumnPrice]),
		}
		if pr.Process == "" && pr.Thickness == "" && pr.Price == "" {
			continue
		}
		out = append(out, pr)
	}
	return out, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, 3)
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{ColumnProcess, ColumnThickness, ColumnPrice} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q en el encabezado", col)
		}
	}
	return idx, nil
}

// cell GetRows recorta las celdas vacías al final de la fila.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
