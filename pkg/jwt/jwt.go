package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity datos que el token asevera sobre el usuario autenticado.
type Identity struct {
	Subject        string // id externo del proveedor de identidad
	OrganizationID string
	Role           string // "admin" | "employee"; vacío si el token no trae rol
	Email          string
	Name           string
}

// Claims claims estándar más los campos propios de la aplicación.
// El proveedor de identidad firma con el mismo secreto HS256.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"user_id,omitempty"`
	OrganizationID string `json:"org_id,omitempty"`
	Role           string `json:"role,omitempty"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
}

// Generate firma un token para id. Usado por el login local y por los tests.
func Generate(secret, issuer string, expMinutes int, id Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if id.Subject == "" {
		return "", fmt.Errorf("jwt: subject vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:         id.Subject,
		OrganizationID: id.OrganizationID,
		Role:           id.Role,
		Email:          id.Email,
		Name:           id.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve la identidad.
// El sujeto sale de "sub"; si falta se usa "user_id".
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	subject := claims.Subject
	if subject == "" {
		subject = claims.UserID
	}
	if subject == "" {
		return nil, fmt.Errorf("token sin sujeto")
	}
	return &Identity{
		Subject:        subject,
		OrganizationID: claims.OrganizationID,
		Role:           claims.Role,
		Email:          claims.Email,
		Name:           claims.Name,
	}, nil
}
