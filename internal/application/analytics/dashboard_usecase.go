// Package analytics contiene los casos de uso de tableros y reportes: leen del
// Record Store y delegan todo el cálculo en el paquete reporting.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/reporting"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

const (
	dashboardTopPerformers = 3
	dashboardRecentSales   = 5
	dashboardUpcoming      = 5
)

// DashboardUseCase tablero del admin, tablero personal y reporte de equipo.
type DashboardUseCase struct {
	users    repository.UserRepository
	sales    repository.SaleRepository
	meetings repository.MeetingRepository
	orgs     repository.OrganizationRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	users repository.UserRepository,
	sales repository.SaleRepository,
	meetings repository.MeetingRepository,
	orgs repository.OrganizationRepository,
) *DashboardUseCase {
	return &DashboardUseCase{users: users, sales: sales, meetings: meetings, orgs: orgs, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

type orgData struct {
	users    []*entity.User
	sales    []*entity.Sale
	meetings []*entity.Meeting
	org      *entity.Organization
}

// load trae roster, ventas, reuniones y organización en paralelo y espera las cuatro.
func (uc *DashboardUseCase) load(ctx context.Context, orgID string, withOrg bool) (*orgData, error) {
	type usersResult struct {
		list []*entity.User
		err  error
	}
	type salesResult struct {
		list []*entity.Sale
		err  error
	}
	type meetingsResult struct {
		list []*entity.Meeting
		err  error
	}
	type orgResult struct {
		org *entity.Organization
		err error
	}

	usersCh := make(chan usersResult, 1)
	salesCh := make(chan salesResult, 1)
	meetingsCh := make(chan meetingsResult, 1)
	orgCh := make(chan orgResult, 1)

	go func() {
		list, err := uc.users.ListByOrganization(ctx, orgID)
		usersCh <- usersResult{list, err}
	}()
	go func() {
		list, err := uc.sales.ListByOrganization(ctx, orgID)
		salesCh <- salesResult{list, err}
	}()
	go func() {
		list, err := uc.meetings.ListByOrganization(ctx, orgID)
		meetingsCh <- meetingsResult{list, err}
	}()
	go func() {
		if !withOrg {
			orgCh <- orgResult{}
			return
		}
		org, err := uc.orgs.GetByID(ctx, orgID)
		orgCh <- orgResult{org, err}
	}()

	users := <-usersCh
	sales := <-salesCh
	meetings := <-meetingsCh
	org := <-orgCh

	if users.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios: %w", users.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if meetings.err != nil {
		return nil, fmt.Errorf("dashboard: reuniones: %w", meetings.err)
	}
	if org.err != nil {
		return nil, fmt.Errorf("dashboard: organización: %w", org.err)
	}
	return &orgData{users: users.list, sales: sales.list, meetings: meetings.list, org: org.org}, nil
}

// GetAdminDashboard métricas de la organización del admin.
func (uc *DashboardUseCase) GetAdminDashboard(ctx context.Context, admin dto.Principal) (*dto.AdminDashboardDTO, error) {
	data, err := uc.load(ctx, admin.OrganizationID, true)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	total := reporting.TotalSales(data.sales)
	month := reporting.MonthTotal(data.sales, now)
	growth, defined := reporting.GrowthRate(month, total)
	rollups := reporting.MemberRollups(data.users, data.sales, data.meetings)

	return &dto.AdminDashboardDTO{
		Organization:       usecase.ToOrganizationResponse(data.org),
		TotalSales:         total,
		MonthSales:         month,
		Growth:             growth,
		GrowthDefined:      defined,
		TotalUsers:         len(data.users),
		ActiveUsers:        reporting.ActiveUsers(data.users),
		TotalMeetings:      len(data.meetings),
		MeetingSuccessRate: reporting.MeetingSuccessRate(data.meetings),
		MonthlySales:       toMonthBuckets(reporting.MonthlySeries(data.sales)),
		MeetingBreakdown:   toOutcomes(reporting.MeetingBreakdown(data.meetings)),
		TopPerformers:      toRollupDTOs(reporting.TopPerformers(rollups, dashboardTopPerformers)),
		Team:               toRollupDTOs(rollups),
		GeneratedAt:        now.UTC(),
	}, nil
}

// GetTeamReport agregados por miembro del roster.
func (uc *DashboardUseCase) GetTeamReport(ctx context.Context, admin dto.Principal) (*dto.TeamReportDTO, error) {
	data, err := uc.load(ctx, admin.OrganizationID, false)
	if err != nil {
		return nil, err
	}
	return &dto.TeamReportDTO{
		Members:     toRollupDTOs(reporting.MemberRollups(data.users, data.sales, data.meetings)),
		TotalSales:  reporting.TotalSales(data.sales),
		GeneratedAt: uc.now().UTC(),
	}, nil
}

// GetUserDashboard tablero personal del llamante.
func (uc *DashboardUseCase) GetUserDashboard(ctx context.Context, p dto.Principal) (*dto.UserDashboardDTO, error) {
	type salesResult struct {
		list []*entity.Sale
		err  error
	}
	type meetingsResult struct {
		list []*entity.Meeting
		err  error
	}
	salesCh := make(chan salesResult, 1)
	meetingsCh := make(chan meetingsResult, 1)

	go func() {
		list, err := uc.sales.ListByUser(ctx, p.OrganizationID, p.ExternalID)
		salesCh <- salesResult{list, err}
	}()
	go func() {
		list, err := uc.meetings.ListByUser(ctx, p.OrganizationID, p.ExternalID)
		meetingsCh <- meetingsResult{list, err}
	}()

	sales := <-salesCh
	meetings := <-meetingsCh
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if meetings.err != nil {
		return nil, fmt.Errorf("dashboard: reuniones: %w", meetings.err)
	}

	now := uc.now()
	recent := sales.list
	if len(recent) > dashboardRecentSales {
		recent = recent[:dashboardRecentSales]
	}

	return &dto.UserDashboardDTO{
		TotalSales:         reporting.TotalSales(sales.list),
		MonthSales:         reporting.MonthTotal(sales.list, now),
		PendingSales:       reporting.CountByStatus(sales.list, entity.SaleStatusPending),
		AverageDealSize:    reporting.AverageDealSize(sales.list),
		MeetingSuccessRate: reporting.MeetingSuccessRate(meetings.list),
		MeetingBreakdown:   toOutcomes(reporting.MeetingBreakdown(meetings.list)),
		MonthlySales:       toMonthBuckets(reporting.MonthlySeries(sales.list)),
		UpcomingMeetings:   usecase.ToMeetingResponses(upcoming(meetings.list, now, dashboardUpcoming)),
		RecentSales:        usecase.ToSaleResponses(recent),
		GeneratedAt:        now.UTC(),
	}, nil
}

// upcoming reuniones Scheduled desde hoy, las más próximas primero.
func upcoming(meetings []*entity.Meeting, now time.Time, n int) []*entity.Meeting {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]*entity.Meeting, 0, n)
	for _, m := range meetings {
		if m == nil || m.Status != entity.MeetingStatusScheduled || m.Date.Before(today) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func toMonthBuckets(series []reporting.MonthBucket) []dto.MonthBucketDTO {
	out := make([]dto.MonthBucketDTO, 0, len(series))
	for _, b := range series {
		out = append(out, dto.MonthBucketDTO{Key: b.Key, Label: b.Label, Total: b.Total})
	}
	return out
}

func toOutcomes(o reporting.MeetingOutcomes) dto.MeetingOutcomesDTO {
	return dto.MeetingOutcomesDTO{Success: o.Success, Failed: o.Failed, Scheduled: o.Scheduled}
}

func toRollupDTOs(rollups []reporting.MemberRollup) []dto.MemberRollupDTO {
	out := make([]dto.MemberRollupDTO, 0, len(rollups))
	for _, r := range rollups {
		out = append(out, dto.MemberRollupDTO{
			UserID:             r.UserID,
			ExternalID:         r.ExternalID,
			Name:               r.Name,
			Email:              r.Email,
			IsActive:           r.IsActive,
			SalesTotal:         r.SalesTotal,
			SalesCount:         r.SalesCount,
			MeetingsCount:      r.MeetingsCount,
			SuccessfulMeetings: r.SuccessfulMeetings,
			AverageDealSize:    r.AverageDealSize,
			SuccessRate:        r.SuccessRate,
			Unassigned:         r.Unassigned,
		})
	}
	return out
}
