package repository

import (
	"time"

	"github.com/tu-usuario/mini-crm/internal/domain/entity"
)

// TaskRepository define el puerto de persistencia para Task.
// GetByID devuelve (nil, nil) si no existe el registro.
type TaskRepository interface {
	Create(task *entity.Task) error
	GetByID(id string) (*entity.Task, error)
	GetAll() ([]*entity.Task, error)
	ListByCustomer(customerID string) ([]*entity.Task, error)
	ListByOffer(offerID string) ([]*entity.Task, error)
	ListByStatus(status entity.TaskStatus) ([]*entity.Task, error)
	// ListOverdue devuelve tareas no terminadas cuyo dueDate ya pasó.
	ListOverdue(now time.Time) ([]*entity.Task, error)
	ExistsByID(id string) (bool, error)
	Update(task *entity.Task) error
	Delete(id string) error
	// DeleteByCustomer elimina todas las tareas del cliente (cascada al borrar Customer).
	DeleteByCustomer(customerID string) error
	// ClearOfferRef limpia OfferID en las tareas que referencian la oferta eliminada.
	ClearOfferRef(offerID string) error
}
