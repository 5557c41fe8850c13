package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/pkg/jwt"
)

// LocalPrincipal clave de Fiber locals donde vive la identidad del llamante.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token JWT y deja un dto.Principal en c.Locals.
// Si el token no trae org_id se usa defaultOrgID (despliegue de una sola organización).
func AuthMiddleware(jwtSecret, defaultOrgID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "token inválido o expirado"})
		}
		orgID := id.OrganizationID
		if orgID == "" {
			orgID = defaultOrgID
		}
		if orgID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ORGANIZATION", Error: "el token no indica organización"})
		}
		if _, err := uuid.Parse(orgID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ORGANIZATION", Error: "organización inválida"})
		}
		c.Locals(LocalPrincipal, dto.Principal{
			ExternalID:     id.Subject,
			OrganizationID: orgID,
			Role:           strings.ToLower(strings.TrimSpace(id.Role)),
			Email:          id.Email,
			Name:           id.Name,
		})
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE si el token no trae rol.
//   - 403 FORBIDDEN si el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Error: "el token no incluye rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Error: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

// GetPrincipal devuelve la identidad del llamante (vacía si no pasó por AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) dto.Principal {
	p, _ := c.Locals(LocalPrincipal).(dto.Principal)
	return p
}

// GetUserID devuelve el id externo (claim sub) del llamante.
func GetUserID(c *fiber.Ctx) string {
	return GetPrincipal(c).ExternalID
}

// GetOrganizationID devuelve la organización del llamante.
func GetOrganizationID(c *fiber.Ctx) string {
	return GetPrincipal(c).OrganizationID
}

// GetRole devuelve el rol del token en minúsculas.
func GetRole(c *fiber.Ctx) string {
	return GetPrincipal(c).Role
}
