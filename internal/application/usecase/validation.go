package usecase

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/salesflow-api/internal/domain"
)

const dateLayout = "2006-01-02"

// Límites de amount: NUMERIC(14,2) en el esquema. El exponente se acota antes de
// redondear porque Round reescala a 10^exp.
const (
	maxAmountLen      = 32
	minAmountExponent = -10
	maxAmountExponent = 12
)

var maxAmount = decimal.RequireFromString("999999999999.99")

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateEmail exige un email no vacío y sintácticamente válido.
func ValidateEmail(field, email string) error {
	if email == "" {
		return domain.NewValidationError(field, "es requerido")
	}
	if !govalidator.IsEmail(email) {
		return domain.NewValidationError(field, "no es un email válido")
	}
	return nil
}

// validID informa si id tiene forma de UUID; las claves primarias del esquema lo son.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", domain.NewValidationError(field, "es requerido")
	}
	return v, nil
}

// parseAmount acepta número JSON o string numérico. Requerido y >= 0; se redondea a 2 decimales.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, domain.NewValidationError("amount", "es requerido")
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, domain.NewValidationError("amount", "debe ser numérico")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, domain.NewValidationError("amount", "es requerido")
		}
	}
	if len(s) > maxAmountLen {
		return decimal.Zero, domain.NewValidationError("amount", "fuera de rango")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError("amount", "debe ser numérico")
	}
	if exp := d.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, domain.NewValidationError("amount", "fuera de rango")
	}
	if d.IsNegative() {
		return decimal.Zero, domain.NewValidationError("amount", "no puede ser negativo")
	}
	d = d.Round(2)
	if d.GreaterThan(maxAmount) {
		return decimal.Zero, domain.NewValidationError("amount", "supera el máximo 999999999999.99")
	}
	return d, nil
}

// parseDate acepta YYYY-MM-DD o RFC3339 y devuelve la fecha calendario a medianoche UTC.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domain.NewValidationError(field, "es requerido")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, domain.NewValidationError(field, "formato esperado YYYY-MM-DD")
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseClock valida HH:MM (24h) y lo devuelve normalizado.
func parseClock(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.NewValidationError(field, "es requerido")
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", domain.NewValidationError(field, "formato esperado HH:MM")
	}
	return t.Format("15:04"), nil
}

// titleStatus normaliza "closed", "CLOSED" → "Closed". cases.Caser no es seguro entre goroutines.
func titleStatus(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// optionalOneOf valida v (en minúsculas) contra set; vacío devuelve def.
func optionalOneOf(field, v, def string, set []string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def, nil
	}
	if !contains(set, v) {
		return "", domain.NewValidationError(field, "valor no permitido: "+strings.Join(set, ", "))
	}
	return v, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
