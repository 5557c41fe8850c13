package reporting

import (
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MeetingOutcomes conteo de reuniones por estado sobre el conjunto fijo {Success, Failed, Scheduled}.
type MeetingOutcomes struct {
	Success   int
	Failed    int
	Scheduled int
}

// Total suma los tres estados.
func (o MeetingOutcomes) Total() int {
	return o.Success + o.Failed + o.Scheduled
}

// MeetingBreakdown cuenta reuniones por estado. Estados fuera del conjunto fijo se ignoran.
func MeetingBreakdown(meetings []*entity.Meeting) MeetingOutcomes {
	var out MeetingOutcomes
	for _, m := range meetings {
		if m == nil {
			continue
		}
		switch m.Status {
		case entity.MeetingStatusSuccess:
			out.Success++
		case entity.MeetingStatusFailed:
			out.Failed++
		case entity.MeetingStatusScheduled:
			out.Scheduled++
		}
	}
	return out
}

// MeetingSuccessRate porcentaje entero (redondeo al más cercano) de reuniones Success
// sobre el total de reuniones. Siempre en [0, 100]; 0 sin reuniones.
func MeetingSuccessRate(meetings []*entity.Meeting) int {
	total, success := countMeetings(meetings)
	if total == 0 {
		return 0
	}
	return int(percentage(success, total).Round(0).IntPart())
}

func countMeetings(meetings []*entity.Meeting) (total, success int) {
	for _, m := range meetings {
		if m == nil {
			continue
		}
		total++
		if m.Status == entity.MeetingStatusSuccess {
			success++
		}
	}
	return total, success
}

func percentage(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
}
