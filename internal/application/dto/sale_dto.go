package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada de POST /api/sales.
// Amount acepta número JSON o string numérico; se valida en el caso de uso.
type CreateSaleRequest struct {
	Client   string          `json:"client"`
	Amount   json.RawMessage `json:"amount" swaggertype:"number"`
	Status   string          `json:"status"`
	Category string          `json:"category"`
	Details  string          `json:"details"`
	Date     string          `json:"date"` // YYYY-MM-DD o RFC3339
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organizationId"`
	UserID         string          `json:"userId"`
	Client         string          `json:"client"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	Category       string          `json:"category,omitempty"`
	Details        string          `json:"details,omitempty"`
	Date           string          `json:"date,omitempty"` // YYYY-MM-DD
	CreatedAt      time.Time       `json:"createdAt"`
}

// CreateSaleResponse envoltorio {sale}.
type CreateSaleResponse struct {
	Sale SaleResponse `json:"sale"`
}

// SaleListResponse envoltorio {sales}.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
}
