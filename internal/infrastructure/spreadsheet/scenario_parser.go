package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
)

// Encabezados aceptados (es / pt / en), ya normalizados: minúsculas, sin tildes ni "%".
var headerAliases = map[string]string{
	"name":      "name",
	"nombre":    "name",
	"nome":      "name",
	"escenario": "name",
	"cenario":   "name",

	"sku":          "product_sku",
	"product sku":  "product_sku",
	"sku producto": "product_sku",
	"sku produto":  "product_sku",

	"product cost":       "product_cost",
	"costo producto":     "product_cost",
	"costo del producto": "product_cost",
	"custo produto":      "product_cost",
	"custo do produto":   "product_cost",
	"costo":              "product_cost",

	"operational cost fixed": "operational_cost_fixed",
	"costo operativo fijo":   "operational_cost_fixed",
	"custo operacional fixo": "operational_cost_fixed",

	"operational cost percent":   "operational_cost_percent",
	"costo operativo":            "operational_cost_percent",
	"costo operativo variable":   "operational_cost_percent",
	"custo operacional":          "operational_cost_percent",
	"custo operacional variavel": "operational_cost_percent",

	"shipping fixed cost": "shipping_fixed_cost",
	"shipping":            "shipping_fixed_cost",
	"envio":               "shipping_fixed_cost",
	"costo envio":         "shipping_fixed_cost",
	"frete":               "shipping_fixed_cost",

	"marketplace commission percent": "marketplace_commission_percent",
	"commission":                     "marketplace_commission_percent",
	"comision":                       "marketplace_commission_percent",
	"comision marketplace":           "marketplace_commission_percent",
	"comissao":                       "marketplace_commission_percent",
	"comissao marketplace":           "marketplace_commission_percent",

	"tax percent": "tax_percent",
	"tax":         "tax_percent",
	"impuesto":    "tax_percent",
	"impuestos":   "tax_percent",
	"imposto":     "tax_percent",
	"impostos":    "tax_percent",

	"invoiced share percent": "invoiced_share_percent",
	"invoiced share":         "invoiced_share_percent",
	"facturado":              "invoiced_share_percent",
	"porcentaje facturado":   "invoiced_share_percent",
	"faturado":               "invoiced_share_percent",

	"target mode":   "target_mode",
	"modo":          "target_mode",
	"modo objetivo": "target_mode",

	"target value":   "target_value",
	"objetivo":       "target_value",
	"valor objetivo": "target_value",
	"meta":           "target_value",

	"current roas": "current_roas",
	"roas actual":  "current_roas",
	"roas atual":   "current_roas",
	"roas":         "current_roas",
}

// Sinónimos de modo; la forma canónica FIXED_* también se acepta.
var targetModeAliases = map[string]profitability.TargetMode{
	"PRECIO_FIJO":    profitability.FixedPrice,
	"PRECO_FIXO":     profitability.FixedPrice,
	"PRICE":          profitability.FixedPrice,
	"LUCRO_NETO":     profitability.FixedNetProfit,
	"GANANCIA_NETA":  profitability.FixedNetProfit,
	"LUCRO_LIQUIDO":  profitability.FixedNetProfit,
	"NET_PROFIT":     profitability.FixedNetProfit,
	"MARGEN_BRUTO":   profitability.FixedGrossMargin,
	"MARGEM_BRUTA":   profitability.FixedGrossMargin,
	"GROSS_MARGIN":   profitability.FixedGrossMargin,
	"MARGEN_NETO":    profitability.FixedNetMargin,
	"MARGEM_LIQUIDA": profitability.FixedNetMargin,
	"NET_MARGIN":     profitability.FixedNetMargin,
}

var requiredColumns = []string{"product_cost", "target_mode", "target_value"}

// ParseScenarioRows lee escenarios desde XLSX o CSV (según la extensión; sin extensión se prueban ambos).
// Las filas vacías se omiten; una celda numérica inválida invalida el archivo indicando la fila.
func ParseScenarioRows(fileName string, reader io.Reader) ([]dto.ScenarioImportRow, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}

	switch strings.ToLower(strings.TrimSpace(filepath.Ext(fileName))) {
	case ".csv":
		rows, err := readCSVRows(data)
		if err != nil {
			return nil, err
		}
		return parseScenarioTable(rows)
	case ".xlsx", ".xlsm":
		rows, err := readExcelRows(data)
		if err != nil {
			return nil, err
		}
		return parseScenarioTable(rows)
	default:
		if rows, err := readExcelRows(data); err == nil {
			return parseScenarioTable(rows)
		}
		rows, err := readCSVRows(data)
		if err != nil {
			return nil, fmt.Errorf("%w: formato de archivo no soportado", domain.ErrUnsupportedFormat)
		}
		return parseScenarioTable(rows)
	}
}

func readExcelRows(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: abrir xlsx: %v", domain.ErrInvalidInput, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: el archivo no tiene hojas", domain.ErrInvalidInput)
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	return rows, nil
}

func readCSVRows(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if semicolonSeparated(data) {
		r.Comma = ';'
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: leer csv: %v", domain.ErrInvalidInput, err)
	}
	return rows, nil
}

// semicolonSeparated detecta el CSV regional (";" separa columnas y "," decimales).
func semicolonSeparated(data []byte) bool {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	return bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','})
}

func parseScenarioTable(rows [][]string) ([]dto.ScenarioImportRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	colMap := mapColumns(rows[0])
	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("%w: falta la columna requerida %s", domain.ErrInvalidInput, col)
		}
	}

	out := make([]dto.ScenarioImportRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		cells := rows[i]
		if blankRow(cells) {
			continue
		}
		rowNum := i + 1
		item, err := parseScenarioRow(cells, colMap, rowNum)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: el archivo no tiene filas con datos", domain.ErrInvalidInput)
	}
	return out, nil
}

func parseScenarioRow(cells []string, colMap map[string]int, rowNum int) (dto.ScenarioImportRow, error) {
	var req dto.SimulationRequest
	amounts := []struct {
		col string
		dst *decimal.Decimal
	}{
		{"product_cost", &req.ProductCost},
		{"operational_cost_fixed", &req.OperationalCostFixed},
		{"operational_cost_percent", &req.OperationalCostPercent},
		{"shipping_fixed_cost", &req.ShippingFixedCost},
		{"marketplace_commission_percent", &req.MarketplaceCommissionPercent},
		{"tax_percent", &req.TaxPercent},
		{"target_value", &req.TargetValue},
	}
	for _, a := range amounts {
		raw := readOptionalCell(cells, colMap, a.col)
		if raw == "" {
			continue
		}
		v, err := parseDecimal(raw)
		if err != nil {
			return dto.ScenarioImportRow{}, fmt.Errorf("%w: fila %d columna %s: %v", domain.ErrInvalidInput, rowNum, a.col, err)
		}
		*a.dst = v
	}
	for _, opt := range []struct {
		col string
		dst **decimal.Decimal
	}{
		{"invoiced_share_percent", &req.InvoicedSharePercent},
		{"current_roas", &req.CurrentRoas},
	} {
		raw := readOptionalCell(cells, colMap, opt.col)
		if raw == "" {
			continue
		}
		v, err := parseDecimal(raw)
		if err != nil {
			return dto.ScenarioImportRow{}, fmt.Errorf("%w: fila %d columna %s: %v", domain.ErrInvalidInput, rowNum, opt.col, err)
		}
		*opt.dst = &v
	}
	req.TargetMode = string(ParseTargetMode(readOptionalCell(cells, colMap, "target_mode")))

	name := cleanText(readOptionalCell(cells, colMap, "name"))
	if name == "" {
		name = fmt.Sprintf("Fila %d", rowNum)
	}
	return dto.ScenarioImportRow{
		Row:        rowNum,
		Name:       name,
		ProductSKU: cleanText(readOptionalCell(cells, colMap, "product_sku")),
		Request:    req,
	}, nil
}

// ParseTargetMode acepta la forma canónica o un sinónimo; lo desconocido se devuelve tal cual
// para que la validación lo reporte.
func ParseTargetMode(raw string) profitability.TargetMode {
	key := strings.ToUpper(strings.Join(strings.Fields(foldAccents(raw)), "_"))
	if mode := profitability.TargetMode(key); mode.Valid() {
		return mode
	}
	if mode, ok := targetModeAliases[key]; ok {
		return mode
	}
	return profitability.TargetMode(key)
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		canonical, ok := headerAliases[normalizeHeader(col)]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "\ufeff")
	value = strings.ToLower(foldAccents(value))
	value = strings.NewReplacer("_", " ", "%", " ", "(", " ", ")", " ", ":", " ").Replace(value)
	return strings.Join(strings.Fields(value), " ")
}

func readOptionalCell(cells []string, colMap map[string]int, key string) string {
	idx, ok := colMap[key]
	if !ok || idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseDecimal acepta "1.234,56", "1,234.56", "12,5", "$ 30", "R$ 50,00", "€ 9" y "15%".
func parseDecimal(raw string) (decimal.Decimal, error) {
	value := normalizeNumericValue(raw)
	if value == "" {
		return decimal.Zero, fmt.Errorf("valor vacío")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q no es un número", raw)
	}
	return d, nil
}

// currencyPrefixes códigos y prefijos de moneda que pueden preceder al monto.
var currencyPrefixes = []string{"US$", "R$", "COP", "BRL", "USD", "EUR", "MXN", "ARS", "CLP"}

func normalizeNumericValue(raw string) string {
	value := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	for _, p := range currencyPrefixes {
		if len(value) >= len(p) && strings.EqualFold(value[:len(p)], p) {
			value = value[len(p):]
			break
		}
	}
	// Símbolos de moneda ($, €, £...), porcentaje y espacios.
	value = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Sc, r) || unicode.IsSpace(r) || r == '%' || r == '\u00a0' {
			return -1
		}
		return r
	}, value)

	lastDot := strings.LastIndex(value, ".")
	lastComma := strings.LastIndex(value, ",")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// 1.234,56
		value = strings.ReplaceAll(value, ".", "")
		value = strings.Replace(value, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		// 1,234.56
		value = strings.ReplaceAll(value, ",", "")
	case lastComma >= 0 && strings.Count(value, ",") == 1:
		value = strings.Replace(value, ",", ".", 1)
	case lastComma >= 0:
		value = strings.ReplaceAll(value, ",", "")
	}
	return value
}

func cleanText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
