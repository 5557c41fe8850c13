package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/usecase"
)

// MeetingHandler agenda de reuniones con clientes.
type MeetingHandler struct {
	uc *usecase.MeetingUseCase
}

// NewMeetingHandler construye el handler inyectando el caso de uso.
func NewMeetingHandler(uc *usecase.MeetingUseCase) *MeetingHandler {
	return &MeetingHandler{uc: uc}
}

// Create godoc
// @Summary      Agendar reunión
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateMeetingRequest  true  "Datos de la reunión"
// @Success      201   {object}  dto.MeetingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/meetings [post]
func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMeetingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Reuniones de la organización
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MeetingListResponse
// @Router       /api/meetings [get]
func (h *MeetingHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListOrganization(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MeetingListResponse{Meetings: list})
}

// ListMine godoc
// @Summary      Reuniones del llamante
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MeetingListResponse
// @Router       /api/meetings/mine [get]
func (h *MeetingHandler) ListMine(c *fiber.Ctx) error {
	list, err := h.uc.ListMine(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MeetingListResponse{Meetings: list})
}

// UpdateStatus godoc
// @Summary      Cerrar reunión como Success o Failed
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                          true  "ID de la reunión"
// @Param        body  body  dto.UpdateMeetingStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.MeetingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_TRANSITION"
// @Router       /api/meetings/{id}/status [patch]
func (h *MeetingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateMeetingStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
