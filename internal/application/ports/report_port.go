package ports

import (
	"context"
	"time"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/reporting"
)

// TeamReportRenderer genera el documento PDF del reporte de equipo.
type TeamReportRenderer interface {
	RenderTeamReport(ctx context.Context, org *entity.Organization, members []reporting.MemberRollup, generatedAt time.Time) ([]byte, error)
}
