// Package pdf genera el reporte PDF de una simulación de rentabilidad.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha      │  Precio de venta             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENTRADAS: costos, comisiones, impuesto, objetivo           │
//	│  MARCADORES: equilibrio / mínimo / ideal por política       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ROAS | Ads | Lucro y márgenes | Clasificación       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rentabilidad-api/internal/application/dto"
	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}

	classColors = map[string]*props.Color{
		"LOSS":       {Red: 255, Green: 199, Blue: 206},
		"LOW_MARGIN": {Red: 255, Green: 235, Blue: 156},
		"HEALTHY":    {Red: 198, Green: 239, Blue: 206},
	}
	classLabels = map[string]string{
		"LOSS":       "Pérdida",
		"LOW_MARGIN": "Margen bajo",
		"HEALTHY":    "Sano",
	}
)

var _ simulation.ReportRenderer = (*RoasReport)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// RoasReport implementa simulation.ReportRenderer usando Maroto v2.
type RoasReport struct {
	money *money.Formatter
	now   func() time.Time
}

// NewRoasReport construye el generador con el locale de los montos.
func NewRoasReport(locale string) *RoasReport {
	return &RoasReport{money: money.NewFormatter(locale), now: time.Now}
}

// RenderSimulation genera el PDF y devuelve sus bytes.
func (g *RoasReport) RenderSimulation(_ context.Context, title string, resp *dto.SimulationResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("rentabilidad-api", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(title, resp))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.inputRows(resp.Inputs)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if !resp.Feasible {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Sin solución: los porcentajes sobre el precio suman 100% o más, "+
				"o el objetivo no admite un precio positivo.", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 3,
			}),
		)))
	} else {
		m.AddRows(markerRows(resp.Markers)...)
		if !resp.Converged {
			m.AddRows(row.New(6).Add(col.New(12).Add(
				text.New(fmt.Sprintf("Aviso: el cálculo de margen neto no convergió en %d iteraciones; "+
					"el precio es la mejor aproximación.", resp.Iterations), props.Text{Size: 7, Color: colorGray, Top: 1}),
			)))
		}
		m.AddRows(line.NewRow(3))
		m.AddRows(tableHeaderRow())
		m.AddRows(g.tableRows(resp.Rows)...)
		if resp.Current != nil {
			m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
			m.AddRows(g.currentRow(resp.Current))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y fecha (izq), precio resuelto (der).
func (g *RoasReport) headerRow(title string, resp *dto.SimulationResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PRECIO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(g.money.Currency(resp.Price), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 7,
			}),
		),
	)
}

func (g *RoasReport) inputRows(in dto.SimulationRequest) []core.Row {
	invoiced := decimal.NewFromInt(100)
	if in.InvoicedSharePercent != nil {
		invoiced = *in.InvoicedSharePercent
	}
	target := g.money.Currency(in.TargetValue)
	if in.TargetMode == "FIXED_GROSS_MARGIN" || in.TargetMode == "FIXED_NET_MARGIN" {
		target = g.money.Percent(in.TargetValue)
	}
	pairs := [][2]string{
		{"Costo del producto", g.money.Currency(in.ProductCost)},
		{"Costo operativo fijo", g.money.Currency(in.OperationalCostFixed)},
		{"Costo operativo variable", g.money.Percent(in.OperationalCostPercent)},
		{"Envío", g.money.Currency(in.ShippingFixedCost)},
		{"Comisión marketplace", g.money.Percent(in.MarketplaceCommissionPercent)},
		{"Impuesto", g.money.Percent(in.TaxPercent) + " sobre " + g.money.Percent(invoiced) + " facturado"},
		{"Objetivo (" + in.TargetMode + ")", target},
	}
	rows := []core.Row{row.New(6).Add(col.New(12).Add(
		text.New("ENTRADAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))}
	for _, p := range pairs {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(p[0], props.Text{Size: 8, Color: colorGray, Left: 2})),
			col.New(6).Add(text.New(p[1], props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func markerRows(mk dto.MarkersByPolicyDTO) []core.Row {
	cell := func(s string, bold bool, a align.Type) core.Col {
		p := props.Text{Size: 8, Align: a, Top: 1}
		if bold {
			p.Style = fontstyle.Bold
		}
		return col.New(4).Add(text.New(s, p))
	}
	rows := []core.Row{
		row.New(6).Add(
			cell("MARCADORES ROAS", true, align.Left),
			cell("Solo plataforma", true, align.Center),
			cell("Costo total", true, align.Center),
		),
	}
	for _, m := range []struct {
		label          string
		platform, full *int
	}{
		{"Equilibrio (lucro >= 0)", mk.PlatformOnly.BreakEvenRoas, mk.FullCost.BreakEvenRoas},
		{"Mínimo (neto >= 10%)", mk.PlatformOnly.MinimumRoas, mk.FullCost.MinimumRoas},
		{"Ideal (neto >= 15%)", mk.PlatformOnly.IdealRoas, mk.FullCost.IdealRoas},
	} {
		rows = append(rows, row.New(5).Add(
			cell(m.label, false, align.Left),
			cell(markerText(m.platform), false, align.Center),
			cell(markerText(m.full), false, align.Center),
		))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla ROAS con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Center,
			Color: colorWhite, Top: 1.5,
		}))
	}
	return row.New(7).Add(
		h("ROAS", 1),
		h("Ads", 2),
		h("Lucro plat.", 2),
		h("Neto plat.", 1),
		h("Lucro total", 2),
		h("Bruto total", 1),
		h("Neto total", 1),
		h("Estado", 2),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *RoasReport) tableRows(rows []dto.RoasRowDTO) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, g.metricsRow(strconv.Itoa(r.Roas), r.AdsSpend, r.PlatformOnly, r.FullCost, r.Classification))
	}
	return out
}

func (g *RoasReport) currentRow(c *dto.CurrentPointDTO) core.Row {
	return g.metricsRow("Actual "+c.Roas.String(), c.AdsSpend, c.PlatformOnly, c.FullCost, c.Classification)
}

func (g *RoasReport) metricsRow(roas string, ads decimal.Decimal, platform, full dto.MetricsDTO, class string) core.Row {
	v := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: align.Right, Right: 1, Top: 1}))
	}
	r := row.New(5).Add(
		col.New(1).Add(text.New(roas, props.Text{Size: 7, Align: align.Center, Top: 1})),
		v(g.money.Currency(ads), 2),
		v(g.money.Currency(platform.Profit), 2),
		v(g.money.Percent(platform.NetMargin), 1),
		v(g.money.Currency(full.Profit), 2),
		v(g.money.Percent(full.GrossMargin), 1),
		v(g.money.Percent(full.NetMargin), 1),
		col.New(2).Add(text.New(classLabel(class), props.Text{Size: 7, Align: align.Center, Top: 1})),
	)
	if c, ok := classColors[class]; ok {
		r = r.WithStyle(&props.Cell{BackgroundColor: c})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

// markerText: sin fila que cumpla dentro de 1..30. La fuente base no trae "∞".
func markerText(v *int) string {
	if v == nil {
		return "No alcanza"
	}
	return strconv.Itoa(*v)
}

func classLabel(class string) string {
	if l, ok := classLabels[class]; ok {
		return l
	}
	return class
}
