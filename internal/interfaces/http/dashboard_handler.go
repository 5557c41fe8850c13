package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/salesflow-api/internal/application/analytics"
)

// DashboardHandler tableros de admin y de vendedor, reporte de equipo y exportación.
type DashboardHandler struct {
	dash   *appanalytics.DashboardUseCase
	export *appanalytics.ExportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dash *appanalytics.DashboardUseCase, export *appanalytics.ExportUseCase) *DashboardHandler {
	return &DashboardHandler{dash: dash, export: export}
}

// Admin godoc
// @Summary      Tablero de administración
// @Description  Totales, crecimiento mensual, serie de 12 meses, reuniones, top 3 y roster.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AdminDashboardDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/dashboard [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := h.dash.GetAdminDashboard(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Team godoc
// @Summary      Reporte por miembro del equipo
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TeamReportDTO
// @Router       /api/admin/reports/team [get]
func (h *DashboardHandler) Team(c *fiber.Ctx) error {
	out, err := h.dash.GetTeamReport(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Tablero del vendedor
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserDashboardDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Mine(c *fiber.Ctx) error {
	out, err := h.dash.GetUserDashboard(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar datos
// @Description  CSV de users, sales o team; PDF solo para team.
// @Tags         dashboard
// @Produce      text/csv
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        dataset  query  string  true   "users | sales | team"
// @Param        format   query  string  false  "csv | pdf"  default(csv)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/reports/export [get]
func (h *DashboardHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.Export(c.UserContext(), GetPrincipal(c), c.Query("dataset"), c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return c.Send(file.Body)
}
