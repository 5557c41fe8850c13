package reporting

import (
	"sort"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MemberRollup agregado por usuario del roster.
type MemberRollup struct {
	UserID             string
	ExternalID         string
	Name               string
	Email              string
	IsActive           bool
	SalesTotal         decimal.Decimal
	SalesCount         int
	MeetingsCount      int
	SuccessfulMeetings int
	AverageDealSize    decimal.Decimal // SalesTotal / SalesCount, 0 sin ventas
	SuccessRate        decimal.Decimal // % de reuniones Success del usuario, 1 decimal
	Unassigned         bool            // ventas y reuniones de usuarios que ya no están en el roster
}

// UnassignedName nombre del agregado de ventas y reuniones sin dueño en el roster.
const UnassignedName = "Sin asignar"

// MemberRollups produce un agregado por usuario, en el orden del roster.
// Ventas y reuniones se asocian por UserID == User.ExternalID. Las que no
// pertenecen a ningún usuario del roster (p. ej. usuario eliminado) se acumulan
// en un último agregado Unassigned, así la suma de agregados es el total.
func MemberRollups(users []*entity.User, sales []*entity.Sale, meetings []*entity.Meeting) []MemberRollup {
	salesByUser := make(map[string][]*entity.Sale)
	for _, s := range sales {
		if s == nil {
			continue
		}
		salesByUser[s.UserID] = append(salesByUser[s.UserID], s)
	}
	meetingsByUser := make(map[string][]*entity.Meeting)
	for _, m := range meetings {
		if m == nil {
			continue
		}
		meetingsByUser[m.UserID] = append(meetingsByUser[m.UserID], m)
	}

	out := make([]MemberRollup, 0, len(users)+1)
	for _, u := range users {
		if u == nil {
			continue
		}
		r := rollup(salesByUser[u.ExternalID], meetingsByUser[u.ExternalID])
		r.UserID = u.ID
		r.ExternalID = u.ExternalID
		r.Name = u.Name
		r.Email = u.Email
		r.IsActive = u.IsActive
		out = append(out, r)
		delete(salesByUser, u.ExternalID)
		delete(meetingsByUser, u.ExternalID)
	}

	if len(salesByUser) == 0 && len(meetingsByUser) == 0 {
		return out
	}
	var orphanSales []*entity.Sale
	for _, owned := range salesByUser {
		orphanSales = append(orphanSales, owned...)
	}
	var orphanMeetings []*entity.Meeting
	for _, owned := range meetingsByUser {
		orphanMeetings = append(orphanMeetings, owned...)
	}
	r := rollup(orphanSales, orphanMeetings)
	r.Name = UnassignedName
	r.Unassigned = true
	return append(out, r)
}

func rollup(sales []*entity.Sale, meetings []*entity.Meeting) MemberRollup {
	total, success := countMeetings(meetings)
	return MemberRollup{
		SalesTotal:         TotalSales(sales),
		SalesCount:         len(sales),
		MeetingsCount:      total,
		SuccessfulMeetings: success,
		AverageDealSize:    AverageDealSize(sales),
		SuccessRate:        percentage(success, total).Round(1),
	}
}

// TopPerformers ordena por SalesTotal descendente (desempate por UserID ascendente)
// y devuelve los primeros n. El agregado Unassigned no compite. No modifica rollups.
func TopPerformers(rollups []MemberRollup, n int) []MemberRollup {
	if n <= 0 {
		return []MemberRollup{}
	}
	ranked := make([]MemberRollup, 0, len(rollups))
	for _, r := range rollups {
		if !r.Unassigned {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].SalesTotal.Cmp(ranked[j].SalesTotal); c != 0 {
			return c > 0
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
