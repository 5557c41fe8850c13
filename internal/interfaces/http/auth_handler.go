package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain"
)

// AuthHandler invitaciones, registro por invitación y login local.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	metrics *Metrics
}

// NewAuthHandler construye el handler. metrics puede ser nil.
func NewAuthHandler(uc *auth.AuthUseCase, metrics *Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: metrics}
}

// Invite godoc
// @Summary      Invitar un email a la organización
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.InviteRequest  true  "Email a invitar"
// @Success      200   {object}  dto.InviteResponse
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION, ALREADY_INVITED o USER_EXISTS"
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse  "INVITATION_FAILED"
// @Router       /api/admin/invite [post]
func (h *AuthHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Invite(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvitationFailed):
			h.metrics.RecordInvitation("failed")
		case errors.Is(err, domain.ErrAlreadyInvited), errors.Is(err, domain.ErrUserExists):
			h.metrics.RecordInvitation("rejected")
		}
		return writeError(c, err)
	}
	h.metrics.RecordInvitation("sent")
	return c.JSON(out)
}

// ListInvites godoc
// @Summary      Invitaciones pendientes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.InviteListResponse
// @Router       /api/admin/invites [get]
func (h *AuthHandler) ListInvites(c *fiber.Ctx) error {
	list, err := h.uc.ListPendingInvites(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InviteListResponse{Invites: list})
}

// Signup godoc
// @Summary      Validar registro por invitación
// @Description  Consume la invitación pendiente del email. 403 si no fue invitado o ya es usuario.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "Email a registrar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse  "NOT_INVITED o USER_EXISTS"
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		// En el registro un usuario existente es una negativa, no un conflicto de datos.
		if errors.Is(err, domain.ErrUserExists) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USER_EXISTS", Error: domain.ErrUserExists.Error()})
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Token godoc
// @Summary      Login local (email + password)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse  "cuenta desactivada"
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Error: "credenciales inválidas"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_INACTIVE", Error: "la cuenta está desactivada"})
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}
