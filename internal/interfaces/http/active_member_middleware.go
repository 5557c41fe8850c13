package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
)

// memberChecker contrato mínimo que necesita el middleware. Lo implementa
// *usecase.UserUseCase; la interfaz evita acoplar el paquete http al caso de uso.
type memberChecker interface {
	IsActiveMember(ctx context.Context, p dto.Principal) (bool, error)
}

// RequireActiveMember bloquea las rutas de escritura a miembros desactivados.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 ACCOUNT_INACTIVE → el admin desactivó al usuario.
//   - 503 MEMBER_CHECK_FAILED → fallo del almacén al consultar.
func RequireActiveMember(checker memberChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		active, err := checker.IsActiveMember(c.UserContext(), GetPrincipal(c))
		if err != nil {
			logServerError(c, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:  "MEMBER_CHECK_FAILED",
				Error: "no se pudo verificar la cuenta, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:  "ACCOUNT_INACTIVE",
				Error: "la cuenta está desactivada",
			})
		}
		return c.Next()
	}
}
