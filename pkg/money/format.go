// Package money formatea montos y porcentajes con los separadores del locale.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter imprime montos con separadores de miles según el locale configurado.
type Formatter struct {
	p *message.Printer
}

// NewFormatter crea un formatter para la etiqueta BCP 47 dada ("es-CO", "pt-BR", "en").
// Una etiqueta inválida cae a español.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Amount formatea con dos decimales: 1234567.5 -> "1.234.567,50" en es-CO.
func (f *Formatter) Amount(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return f.p.Sprintf("%.2f", v)
}

// Currency antepone el símbolo "$".
func (f *Formatter) Currency(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + f.Amount(d.Neg())
	}
	return "$" + f.Amount(d)
}

// Percent formatea un porcentaje ya en escala 0..100.
func (f *Formatter) Percent(d decimal.Decimal) string {
	return f.Amount(d) + "%"
}
