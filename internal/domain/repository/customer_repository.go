package repository

import "github.com/tu-usuario/mini-crm/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID y GetByEmail devuelven (nil, nil) si no existe el registro.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	GetAll() ([]*entity.Customer, error)
	ExistsByID(id string) (bool, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
