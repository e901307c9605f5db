// Package spreadsheet importa y exporta planillas XLSX/CSV con excelize.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	fillLoss      = "FFC7CE"
	fillLowMargin = "FFEB9C"
	fillHealthy   = "C6EFCE"
	fillHeader    = "1F4E78"
	numFmtAmount  = 4 // #,##0.00
)

// sheetWriter acumula el primer error de excelize para no chequear cada celda.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles map[string]int
	err    error
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, styles: make(map[string]int)}
}

func (w *sheetWriter) cell(col, row int, value any) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, name, value)
}

func (w *sheetWriter) row(row int, values ...any) {
	for i, v := range values {
		w.cell(i+1, row, v)
	}
}

// style aplica un estilo con nombre (creado una sola vez) al rango indicado.
func (w *sheetWriter) style(key string, fromCol, fromRow, toCol, toRow int) {
	if w.err != nil {
		return
	}
	id, ok := w.styles[key]
	if !ok {
		def, known := styleDefs[key]
		if !known {
			w.err = fmt.Errorf("estilo desconocido %q", key)
			return
		}
		if id, w.err = w.f.NewStyle(def); w.err != nil {
			return
		}
		w.styles[key] = id
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, from, to, id)
}

func (w *sheetWriter) widths(width float64, fromCol, toCol int) {
	if w.err != nil {
		return
	}
	from, err := excelize.ColumnNumberToName(fromCol)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.ColumnNumberToName(toCol)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(w.sheet, from, to, width)
}

// freezeHeader fija la primera fila.
func (w *sheetWriter) freezeHeader() {
	if w.err != nil {
		return
	}
	w.err = w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

var styleDefs = map[string]*excelize.Style{
	"title": {Font: &excelize.Font{Bold: true, Size: 14}},
	"bold":  {Font: &excelize.Font{Bold: true}, NumFmt: numFmtAmount},
	"header": {
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{fillHeader}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	},
	"amount":     {NumFmt: numFmtAmount},
	"LOSS":       {NumFmt: numFmtAmount, Fill: excelize.Fill{Type: "pattern", Color: []string{fillLoss}, Pattern: 1}},
	"LOW_MARGIN": {NumFmt: numFmtAmount, Fill: excelize.Fill{Type: "pattern", Color: []string{fillLowMargin}, Pattern: 1}},
	"HEALTHY":    {NumFmt: numFmtAmount, Fill: excelize.Fill{Type: "pattern", Color: []string{fillHealthy}, Pattern: 1}},
}

// finish escribe el libro en memoria y lo cierra.
func finish(f *excelize.File, err error) ([]byte, error) {
	defer f.Close()
	if err != nil {
		return nil, fmt.Errorf("armar xlsx: %w", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
