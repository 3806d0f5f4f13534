package repository

import "github.com/tu-usuario/mini-crm/internal/domain/entity"

// OfferRepository define el puerto de persistencia para Offer.
// GetByID devuelve (nil, nil) si no existe el registro.
type OfferRepository interface {
	Create(offer *entity.Offer) error
	GetByID(id string) (*entity.Offer, error)
	GetAll() ([]*entity.Offer, error)
	ListByCustomer(customerID string) ([]*entity.Offer, error)
	ExistsByID(id string) (bool, error)
	Update(offer *entity.Offer) error
	Delete(id string) error
	// DeleteByCustomer elimina todas las ofertas del cliente (cascada al borrar Customer).
	DeleteByCustomer(customerID string) error
}
