package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
	Field string `json:"field,omitempty"` // solo en errores de validación
}

// MessageResponse respuesta con un mensaje simple.
type MessageResponse struct {
	Message string `json:"message"`
}

// Principal identidad del llamante, resuelta una vez por petición desde el token.
type Principal struct {
	ExternalID     string // claim sub
	OrganizationID string
	Role           string // vacío si el token no trae rol
	Email          string
	Name           string
}

// IsAdmin informa si el token asevera el rol admin.
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}
