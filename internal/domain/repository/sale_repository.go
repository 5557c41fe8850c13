package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale. No hay Update: las ventas son inmutables.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// ListByOrganization devuelve todas las ventas del tenant, más recientes primero (por fecha de negocio).
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Sale, error)
	// ListByUser devuelve las ventas de un usuario, más recientes primero (por created_at).
	ListByUser(ctx context.Context, organizationID, userID string) ([]*entity.Sale, error)
}
