package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MonthBucket suma de ventas de un mes calendario.
type MonthBucket struct {
	Key   string // "2024-01"
	Label string // "Jan"
	Year  int
	Month time.Month
	Total decimal.Decimal
}

// MonthlySeries agrupa las ventas por (año, mes) y devuelve los buckets en orden
// cronológico. Enero de dos años distintos son buckets distintos. Ventas sin fecha se ignoran.
func MonthlySeries(sales []*entity.Sale) []MonthBucket {
	index := make(map[string]int)
	buckets := make([]MonthBucket, 0)
	for _, s := range sales {
		if s == nil || s.Date.IsZero() {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", s.Date.Year(), int(s.Date.Month()))
		i, ok := index[key]
		if !ok {
			buckets = append(buckets, MonthBucket{
				Key:   key,
				Label: s.Date.Month().String()[:3],
				Year:  s.Date.Year(),
				Month: s.Date.Month(),
				Total: decimal.Zero,
			})
			i = len(buckets) - 1
			index[key] = i
		}
		buckets[i].Total = buckets[i].Total.Add(s.Amount)
	}
	// Key "YYYY-MM" ordena lexicográficamente igual que cronológicamente.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}
