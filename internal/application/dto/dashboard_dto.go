package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthBucketDTO punto de la serie mensual de ventas.
type MonthBucketDTO struct {
	Key   string          `json:"key"`   // "2024-01"
	Label string          `json:"label"` // "Jan"
	Total decimal.Decimal `json:"total"`
}

// MeetingOutcomesDTO desglose de reuniones por estado.
type MeetingOutcomesDTO struct {
	Success   int `json:"success"`
	Failed    int `json:"failed"`
	Scheduled int `json:"scheduled"`
}

// MemberRollupDTO agregado por miembro del equipo.
type MemberRollupDTO struct {
	UserID             string          `json:"userId"`
	ExternalID         string          `json:"externalId"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	IsActive           bool            `json:"isActive"`
	SalesTotal         decimal.Decimal `json:"salesTotal"`
	SalesCount         int             `json:"salesCount"`
	MeetingsCount      int             `json:"meetingsCount"`
	SuccessfulMeetings int             `json:"successfulMeetings"`
	AverageDealSize    decimal.Decimal `json:"averageDealSize"`
	SuccessRate        decimal.Decimal `json:"successRate"`
	Unassigned         bool            `json:"unassigned,omitempty"`
}

// AdminDashboardDTO respuesta de GET /api/admin/dashboard.
type AdminDashboardDTO struct {
	Organization *OrganizationResponse `json:"organization,omitempty"`

	TotalSales decimal.Decimal `json:"totalSales"`
	MonthSales decimal.Decimal `json:"monthSales"`
	// Growth es 0 y GrowthDefined false cuando el total sin el mes es <= 0.
	Growth        decimal.Decimal `json:"growth"`
	GrowthDefined bool            `json:"growthDefined"`

	TotalUsers         int `json:"totalUsers"`
	ActiveUsers        int `json:"activeUsers"`
	TotalMeetings      int `json:"totalMeetings"`
	MeetingSuccessRate int `json:"meetingSuccessRate"`

	MonthlySales     []MonthBucketDTO   `json:"monthlySales"`
	MeetingBreakdown MeetingOutcomesDTO `json:"meetingBreakdown"`
	TopPerformers    []MemberRollupDTO  `json:"topPerformers"`
	Team             []MemberRollupDTO  `json:"team"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// UserDashboardDTO respuesta de GET /api/dashboard.
type UserDashboardDTO struct {
	TotalSales         decimal.Decimal    `json:"totalSales"`
	MonthSales         decimal.Decimal    `json:"monthSales"`
	PendingSales       int                `json:"pendingSales"`
	AverageDealSize    decimal.Decimal    `json:"averageDealSize"`
	MeetingSuccessRate int                `json:"meetingSuccessRate"`
	MeetingBreakdown   MeetingOutcomesDTO `json:"meetingBreakdown"`
	MonthlySales       []MonthBucketDTO   `json:"monthlySales"`
	UpcomingMeetings   []MeetingResponse  `json:"upcomingMeetings"`
	RecentSales        []SaleResponse     `json:"recentSales"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}

// TeamReportDTO respuesta de GET /api/admin/reports/team.
type TeamReportDTO struct {
	Members     []MemberRollupDTO `json:"members"`
	TotalSales  decimal.Decimal   `json:"totalSales"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// ExportFile archivo generado por la exportación.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
