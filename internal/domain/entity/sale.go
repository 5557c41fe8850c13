package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta. Los valores coinciden con el CHECK de la tabla sales.
const (
	SaleStatusPending     = "Pending"
	SaleStatusClosed      = "Closed"
	SaleStatusLost        = "Lost"
	SaleStatusNegotiation = "Negotiation"
	SaleStatusProposal    = "Proposal"
)

// SaleStatuses lista los estados aceptados al registrar una venta.
var SaleStatuses = []string{
	SaleStatusPending, SaleStatusClosed, SaleStatusLost, SaleStatusNegotiation, SaleStatusProposal,
}

// Categorías de venta.
var SaleCategories = []string{"software", "consulting", "support", "hardware", "training", "other"}

// Sale es una venta registrada por un usuario. Inmutable una vez creada.
type Sale struct {
	ID             string
	OrganizationID string
	UserID         string // ExternalID del usuario dueño
	Client         string
	Amount         decimal.Decimal // >= 0; el valor cero de decimal equivale a 0
	Status         string
	Category       string
	Details        string
	Date           time.Time // fecha de negocio; cero si no se conoce
	CreatedAt      time.Time
}
