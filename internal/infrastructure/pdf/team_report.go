// Package pdf genera el reporte de equipo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización + industria │ "Reporte de equipo"     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Miembro | Ventas | # | Ticket prom. | Reun. | Éxito │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: ventas del equipo / miembros activos              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/salesflow-api/internal/application/ports"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/reporting"
)

var _ ports.TeamReportRenderer = (*TeamReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// TeamReportGenerator implementa ports.TeamReportRenderer con Maroto v2.
type TeamReportGenerator struct {
	printer *message.Printer
}

// NewTeamReportGenerator construye el generador. Los montos se formatean con separador de miles en inglés.
func NewTeamReportGenerator() *TeamReportGenerator {
	return &TeamReportGenerator{printer: message.NewPrinter(language.English)}
}

// RenderTeamReport genera el PDF y devuelve sus bytes. org puede ser nil.
func (g *TeamReportGenerator) RenderTeamReport(
	_ context.Context,
	org *entity.Organization,
	members []reporting.MemberRollup,
	generatedAt time.Time,
) ([]byte, error) {
	orgName := "SalesFlow"
	industry := ""
	if org != nil {
		orgName = org.Name
		industry = org.Industry
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de equipo", true).
		WithAuthor(orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(orgName, industry, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.memberRows(members)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(members))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(orgName, industry string, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(orgName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(industry, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("REPORTE DE EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Miembro", 4, align.Left),
		h("Ventas", 2, align.Right),
		h("#", 1, align.Center),
		h("Ticket prom.", 2, align.Right),
		h("Reuniones", 1, align.Center),
		h("Éxito", 2, align.Right),
	)
}

func (g *TeamReportGenerator) memberRows(members []reporting.MemberRollup) []core.Row {
	rows := make([]core.Row, 0, len(members))
	for _, r := range members {
		name := r.Name
		if !r.IsActive {
			name += " (inactivo)"
		}
		cell := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
		right, center := cell, cell
		right.Align = align.Right
		center.Align = align.Center
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(name, cell)),
			col.New(2).Add(text.New(g.money(r.SalesTotal), right)),
			col.New(1).Add(text.New(fmt.Sprint(r.SalesCount), center)),
			col.New(2).Add(text.New(g.money(r.AverageDealSize), right)),
			col.New(1).Add(text.New(fmt.Sprint(r.MeetingsCount), center)),
			col.New(2).Add(text.New(r.SuccessRate.StringFixed(1)+"%", right)),
		))
	}
	return rows
}

func (g *TeamReportGenerator) totalsRow(members []reporting.MemberRollup) core.Row {
	total := decimal.Zero
	active := 0
	for _, r := range members {
		total = total.Add(r.SalesTotal)
		if r.IsActive {
			active++
		}
	}
	return row.New(10).Add(
		col.New(8).Add(text.New(fmt.Sprintf("Miembros activos: %d de %d", active, len(members)), props.Text{
			Size: 9, Top: 2, Color: colorGray,
		})),
		col.New(4).Add(text.New("TOTAL "+g.money(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
		})),
	)
}

// money formatea con separador de miles y 2 decimales, ej. "$12,500.00".
func (g *TeamReportGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}
