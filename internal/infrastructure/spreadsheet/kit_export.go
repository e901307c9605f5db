package spreadsheet

import (
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
)

// ExportKitVariants arma la planilla de carga masiva: SKU, nombre, unidades y una columna por atributo.
func (e *Exporter) ExportKitVariants(title string, variants []dto.KitVariantDTO) ([]byte, error) {
	f := excelize.NewFile()
	err := f.SetSheetName(f.GetSheetName(0), SheetKits)
	if err == nil {
		err = f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "rentabilidad-api"})
	}
	if err == nil {
		err = writeKits(newSheetWriter(f, SheetKits), variants)
	}
	return finish(f, err)
}

func writeKits(w *sheetWriter, variants []dto.KitVariantDTO) error {
	attrs := attributeColumns(variants)
	header := []any{"SKU", "Nombre", "Unidades por kit"}
	for _, a := range attrs {
		header = append(header, a)
	}
	w.row(1, header...)
	w.style("header", 1, 1, len(header), 1)

	for i, v := range variants {
		n := i + 2
		values := make([]any, len(header))
		values[0], values[1], values[2] = v.SKU, v.Name, v.KitSize
		for _, o := range v.Options {
			for j, a := range attrs {
				if a == o.Attribute {
					values[3+j] = o.Value
				}
			}
		}
		for j, val := range values {
			if val != nil {
				w.cell(j+1, n, val)
			}
		}
	}
	w.widths(22, 1, 1)
	w.widths(48, 2, 2)
	w.widths(14, 3, len(header))
	w.freezeHeader()
	return w.err
}

// attributeColumns nombres de atributo en orden de aparición.
func attributeColumns(variants []dto.KitVariantDTO) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range variants {
		for _, o := range v.Options {
			if _, ok := seen[o.Attribute]; ok {
				continue
			}
			seen[o.Attribute] = struct{}{}
			out = append(out, o.Attribute)
		}
	}
	return out
}
