// Package reporting implementa el motor de agregación: funciones puras que convierten
// ventas, reuniones y el roster de usuarios en las métricas de los tableros y reportes.
//
// Ninguna función lee el reloj ni hace I/O; el instante de referencia se recibe como
// parámetro. Los elementos nil de cualquier slice se ignoran.
package reporting

import (
	"time"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalSales suma el monto de todas las ventas. Vacío → 0.
func TotalSales(sales []*entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		if s == nil {
			continue
		}
		total = total.Add(s.Amount)
	}
	return total
}

// SameMonth compara año y mes calendario (no una ventana móvil de 30 días).
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthTotal suma las ventas cuya fecha de negocio cae en el mismo mes calendario que now.
// Las ventas sin fecha no cuentan.
func MonthTotal(sales []*entity.Sale, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		if s == nil || s.Date.IsZero() {
			continue
		}
		if SameMonth(s.Date, now) {
			total = total.Add(s.Amount)
		}
	}
	return total
}

// GrowthRate devuelve period / (grand - period) * 100 con 2 decimales.
//
// Si period es 0 el crecimiento es 0 (definido). Si el denominador es <= 0 el
// crecimiento no está definido: devuelve (0, false) en lugar de Inf/NaN.
func GrowthRate(period, grand decimal.Decimal) (decimal.Decimal, bool) {
	if period.IsZero() {
		return decimal.Zero, true
	}
	base := grand.Sub(period)
	if !base.IsPositive() {
		return decimal.Zero, false
	}
	return period.Div(base).Mul(hundred).Round(2), true
}

// AverageDealSize total / cantidad de ventas, 2 decimales. 0 sin ventas.
func AverageDealSize(sales []*entity.Sale) decimal.Decimal {
	n := 0
	total := decimal.Zero
	for _, s := range sales {
		if s == nil {
			continue
		}
		n++
		total = total.Add(s.Amount)
	}
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// CountByStatus cuenta las ventas con el estado indicado.
func CountByStatus(sales []*entity.Sale, status string) int {
	n := 0
	for _, s := range sales {
		if s != nil && s.Status == status {
			n++
		}
	}
	return n
}

// ActiveUsers cuenta los usuarios activos del roster.
func ActiveUsers(users []*entity.User) int {
	n := 0
	for _, u := range users {
		if u != nil && u.IsActive {
			n++
		}
	}
	return n
}
