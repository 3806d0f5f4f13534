package usecase

import (
	"context"

	"github.com/tu-usuario/mini-crm/internal/application/dto"
	"github.com/tu-usuario/mini-crm/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Lo usan las mutaciones que tocan más de un
// agregado: borrado de cliente (cascada) y borrado de oferta (limpieza de
// referencias en tareas).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customers repository.CustomerRepository,
		offers repository.OfferRepository,
		tasks repository.TaskRepository,
	) error) error
}

// OfferPDFGenerator genera el documento imprimible de una oferta.
type OfferPDFGenerator interface {
	Generate(offer *dto.OfferResponse, customer *dto.CustomerResponse) ([]byte, error)
}
