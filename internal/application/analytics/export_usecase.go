package analytics

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/ports"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/reporting"
)

// Datasets y formatos de exportación.
const (
	DatasetUsers = "users"
	DatasetSales = "sales"
	DatasetTeam  = "team"

	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportUseCase exporta roster, ventas o reporte de equipo a CSV, y el reporte de equipo a PDF.
type ExportUseCase struct {
	dash     *DashboardUseCase
	renderer ports.TeamReportRenderer
}

// NewExportUseCase construye el caso de uso. Reusa la carga en paralelo del tablero.
func NewExportUseCase(dash *DashboardUseCase, renderer ports.TeamReportRenderer) *ExportUseCase {
	return &ExportUseCase{dash: dash, renderer: renderer}
}

// Export genera el archivo pedido para la organización del admin.
func (uc *ExportUseCase) Export(ctx context.Context, admin dto.Principal, dataset, format string) (*dto.ExportFile, error) {
	dataset = strings.ToLower(strings.TrimSpace(dataset))
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	switch dataset {
	case DatasetUsers, DatasetSales, DatasetTeam:
	default:
		return nil, domain.NewValidationError("dataset", "valores permitidos: users, sales, team")
	}
	switch format {
	case FormatCSV:
	case FormatPDF:
		if dataset != DatasetTeam {
			return nil, domain.NewValidationError("format", "pdf solo disponible para team")
		}
	default:
		return nil, domain.NewValidationError("format", "valores permitidos: csv, pdf")
	}

	data, err := uc.dash.load(ctx, admin.OrganizationID, format == FormatPDF)
	if err != nil {
		return nil, err
	}
	now := uc.dash.now()
	filename := fmt.Sprintf("%s-%s.%s", dataset, now.Format("2006-01-02"), format)

	if format == FormatPDF {
		rollups := reporting.MemberRollups(data.users, data.sales, data.meetings)
		body, err := uc.renderer.RenderTeamReport(ctx, data.org, rollups, now)
		if err != nil {
			return nil, fmt.Errorf("export: pdf: %w", err)
		}
		return &dto.ExportFile{Filename: filename, ContentType: "application/pdf", Body: body}, nil
	}

	var header []string
	var rows [][]string
	switch dataset {
	case DatasetUsers:
		header = []string{"id", "name", "email", "role", "isActive", "joinDate"}
		for _, u := range data.users {
			if u == nil {
				continue
			}
			rows = append(rows, []string{u.ID, u.Name, u.Email, u.Role, strconv.FormatBool(u.IsActive), formatDay(u.JoinDate)})
		}
	case DatasetSales:
		header = []string{"id", "userId", "client", "amount", "status", "category", "date", "details"}
		for _, s := range data.sales {
			if s == nil {
				continue
			}
			rows = append(rows, []string{s.ID, s.UserID, s.Client, s.Amount.StringFixed(2), s.Status, s.Category, formatDay(s.Date), s.Details})
		}
	case DatasetTeam:
		header = []string{"name", "email", "isActive", "salesTotal", "salesCount", "meetings", "successfulMeetings", "averageDealSize", "successRate"}
		for _, r := range reporting.MemberRollups(data.users, data.sales, data.meetings) {
			rows = append(rows, []string{
				r.Name, r.Email, strconv.FormatBool(r.IsActive),
				r.SalesTotal.StringFixed(2), strconv.Itoa(r.SalesCount),
				strconv.Itoa(r.MeetingsCount), strconv.Itoa(r.SuccessfulMeetings),
				r.AverageDealSize.StringFixed(2), r.SuccessRate.StringFixed(1),
			})
		}
	}
	return &dto.ExportFile{
		Filename:    filename,
		ContentType: "text/csv; charset=utf-8",
		Body:        EncodeCSV(header, rows),
	}, nil
}

// EncodeCSV fila de encabezado sin comillas y cada valor entre comillas dobles,
// con las comillas internas duplicadas. Líneas terminadas en \n.
// Valores que una hoja de cálculo interpretaría como fórmula se prefijan con '.
func EncodeCSV(header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(header, ","))
	buf.WriteByte('\n')
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(neutralizeFormula(v), `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func neutralizeFormula(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
