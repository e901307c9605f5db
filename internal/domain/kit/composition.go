// Package kit genera las variantes (SKU + nombre) de un producto a partir de sus
// atributos y de los tamaños de kit que se venden.
package kit

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Rentabilidad-api/internal/domain"
	"github.com/jhoicas/Rentabilidad-api/internal/domain/profitability"
)

const (
	MaxVariants     = 500
	codeLength      = 3
	optionSeparator = " / "
)

// Option un valor de atributo. Code es opcional; si está vacío se deriva del Label.
type Option struct {
	Label string
	Code  string
}

// Attribute eje de variación (ej: Color, Talla).
type Attribute struct {
	Name   string
	Values []Option
}

// Composition producto base y sus ejes de variación.
type Composition struct {
	BaseSKU    string
	Title      string
	Attributes []Attribute
	KitSizes   []int // unidades por kit; vacío = [1], repetidos se ignoran
}

// Selection valor elegido de un atributo dentro de una variante.
type Selection struct {
	Attribute string
	Value     string
	Code      string
}

// Variant SKU generado.
type Variant struct {
	SKU     string
	Name    string
	Options []Selection
	KitSize int
}

// Generate produce el producto cartesiano de atributos × tamaños de kit, en el orden declarado.
func Generate(c Composition) ([]Variant, error) {
	baseSKU := normalizeSKU(c.BaseSKU)
	title := cleanText(c.Title)
	if baseSKU == "" || title == "" {
		return nil, fmt.Errorf("%w: base_sku y title son requeridos", domain.ErrInvalidInput)
	}

	sizes, err := uniqueSizes(c.KitSizes)
	if err != nil {
		return nil, err
	}
	total := len(sizes)
	if total > MaxVariants {
		return nil, fmt.Errorf("%w: máximo %d", domain.ErrTooManyVariants, MaxVariants)
	}

	axes := make([][]Selection, 0, len(c.Attributes))
	for _, attr := range c.Attributes {
		values := uniqueSelections(attr)
		if len(values) == 0 {
			continue
		}
		axes = append(axes, values)
		total *= len(values)
		if total > MaxVariants {
			return nil, fmt.Errorf("%w: máximo %d", domain.ErrTooManyVariants, MaxVariants)
		}
	}

	seen := make(map[string]int, total)
	out := make([]Variant, 0, total)
	for _, combo := range cartesian(axes) {
		for _, n := range sizes {
			out = append(out, Variant{
				SKU:     uniqueSKU(seen, buildSKU(baseSKU, combo, n)),
				Name:    buildName(title, combo, n),
				Options: combo,
				KitSize: n,
			})
		}
	}
	return out, nil
}

// KitInputs escala los costos unitarios para un kit de n unidades.
// El envío y los porcentajes se cobran una vez por venta.
func KitInputs(unit profitability.CostInputs, n int) profitability.CostInputs {
	if n < 1 {
		n = 1
	}
	out := unit
	out.ProductCost = unit.ProductCost * float64(n)
	out.OperationalCostFixed = unit.OperationalCostFixed * float64(n)
	return out
}

// uniqueSizes valida los tamaños de kit y descarta repetidos conservando el orden; vacío = [1].
func uniqueSizes(sizes []int) ([]int, error) {
	if len(sizes) == 0 {
		return []int{1}, nil
	}
	seen := make(map[int]struct{}, len(sizes))
	out := make([]int, 0, len(sizes))
	for _, n := range sizes {
		if n < 1 {
			return nil, fmt.Errorf("%w: tamaño de kit inválido %d", domain.ErrInvalidInput, n)
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

func uniqueSelections(attr Attribute) []Selection {
	name := cleanText(attr.Name)
	seen := make(map[string]struct{}, len(attr.Values))
	out := make([]Selection, 0, len(attr.Values))
	for i, v := range attr.Values {
		label := cleanText(v.Label)
		if label == "" {
			continue
		}
		key := strings.ToLower(fold(label))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		code := sanitizeCode(v.Code)
		if code == "" {
			code = deriveCode(label)
		}
		if code == "" {
			code = fmt.Sprintf("V%d", i+1)
		}
		out = append(out, Selection{Attribute: name, Value: label, Code: code})
	}
	return out
}

// cartesian combina los ejes; el primero varía más lento.
func cartesian(axes [][]Selection) [][]Selection {
	combos := [][]Selection{{}}
	for _, axis := range axes {
		next := make([][]Selection, 0, len(combos)*len(axis))
		for _, prefix := range combos {
			for _, sel := range axis {
				combo := make([]Selection, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				next = append(next, append(combo, sel))
			}
		}
		combos = next
	}
	return combos
}

func buildSKU(base string, combo []Selection, kitSize int) string {
	parts := make([]string, 0, len(combo)+2)
	parts = append(parts, base)
	for _, sel := range combo {
		parts = append(parts, sel.Code)
	}
	if kitSize > 1 {
		parts = append(parts, fmt.Sprintf("K%d", kitSize))
	}
	return strings.Join(parts, "-")
}

func buildName(title string, combo []Selection, kitSize int) string {
	parts := make([]string, 0, len(combo))
	for _, sel := range combo {
		if sel.Attribute == "" {
			parts = append(parts, sel.Value)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", sel.Attribute, sel.Value))
	}
	name := title
	if len(parts) > 0 {
		name += " " + strings.Join(parts, optionSeparator)
	}
	if kitSize > 1 {
		name += fmt.Sprintf(" - Kit x%d", kitSize)
	}
	return name
}

func uniqueSKU(seen map[string]int, sku string) string {
	n, ok := seen[sku]
	if !ok {
		seen[sku] = 1
		return sku
	}
	for {
		n++
		candidate := fmt.Sprintf("%s-%d", sku, n)
		if _, taken := seen[candidate]; !taken {
			seen[sku] = n
			seen[candidate] = 1
			return candidate
		}
	}
}

func deriveCode(label string) string {
	code := sanitizeCode(label)
	r := []rune(code)
	if len(r) > codeLength {
		r = r[:codeLength]
	}
	return string(r)
}

// sanitizeCode deja solo letras y dígitos ASCII, en mayúsculas y sin tildes.
func sanitizeCode(s string) string {
	var b strings.Builder
	for _, r := range fold(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func normalizeSKU(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), "-"))
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fold elimina marcas diacríticas: "Café" -> "Cafe".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
