package consistency

import (
	"time"

	"github.com/tu-usuario/mini-crm/internal/domain"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
	"github.com/tu-usuario/mini-crm/internal/domain/repository"
)

// Engine es la única autoridad sobre si una mutación entre agregados puede proceder:
// unicidad de email, existencia de claves foráneas, pertenencia oferta-cliente y
// validación de fechas/estados. Solo lee del store; no produce efectos secundarios.
//
// El chequeo de unicidad es un fast-fail: la garantía real la da el índice único en la
// base de datos (el repo mapea la violación a ErrDuplicate). Ambos niveles son requeridos.
type Engine struct {
	customers repository.CustomerRepository
	offers    repository.OfferRepository
	tasks     repository.TaskRepository
}

// NewEngine construye el motor de consistencia con los puertos de persistencia.
func NewEngine(customers repository.CustomerRepository, offers repository.OfferRepository, tasks repository.TaskRepository) *Engine {
	return &Engine{customers: customers, offers: offers, tasks: tasks}
}

// CustomerCreate valida el alta de un cliente: el email no puede estar en uso.
// La comparación de email es exacta sobre el valor almacenado, sin normalización.
func (e *Engine) CustomerCreate(email string) error {
	existing, err := e.customers.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	return nil
}

// CustomerUpdate valida la actualización: el cliente debe existir y el email
// no puede pertenecer a otro cliente distinto.
func (e *Engine) CustomerUpdate(id, email string) error {
	ok, err := e.customers.ExistsByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	existing, err := e.customers.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return domain.ErrDuplicate
	}
	return nil
}

// CustomerDelete valida el borrado: el cliente debe existir.
// La cascada sobre ofertas y tareas la ejecuta el caso de uso en transacción.
func (e *Engine) CustomerDelete(id string) error {
	ok, err := e.customers.ExistsByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// OfferCreate valida el alta de una oferta: el cliente referenciado debe existir.
func (e *Engine) OfferCreate(customerID string) error {
	return e.customerRef(customerID)
}

// OfferUpdate valida la actualización: la oferta debe existir y, si se reasigna,
// el nuevo cliente también.
func (e *Engine) OfferUpdate(id, customerID string) error {
	ok, err := e.offers.ExistsByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return e.customerRef(customerID)
}

// OfferDelete valida el borrado: la oferta debe existir.
func (e *Engine) OfferDelete(id string) error {
	ok, err := e.offers.ExistsByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// OfferStatusChange valida el cambio de estado y devuelve el estado parseado.
// Cualquier transición entre estados válidos es legal.
func (e *Engine) OfferStatusChange(id, raw string) (entity.OfferStatus, error) {
	ok, err := e.offers.ExistsByID(id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNotFound
	}
	status, valid := entity.ParseOfferStatus(raw)
	if !valid {
		return "", domain.ErrInvalidInput
	}
	return status, nil
}

// TaskCreate valida el alta de una tarea: cliente existente, oferta (si viene)
// existente y del mismo cliente, y dueDate no en el pasado.
func (e *Engine) TaskCreate(customerID, offerID string, dueDate time.Time) error {
	if err := e.customerRef(customerID); err != nil {
		return err
	}
	if err := e.offerOwnership(customerID, offerID); err != nil {
		return err
	}
	if dueDate.Before(time.Now()) {
		return domain.ErrInvalidInput
	}
	return nil
}

// TaskUpdate valida la actualización. El dueDate no se revalida en update;
// el comportamiento observado solo lo chequea en el alta.
func (e *Engine) TaskUpdate(id, customerID, offerID string) error {
	ok, err := e.tasks.ExistsByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	if err := e.customerRef(customerID); err != nil {
		return err
	}
	return e.offerOwnership(customerID, offerID)
}

// TaskDelete valida el borrado: la tarea debe existir.
func (e *Engine) TaskDelete(id string) error {
	ok, err := e.tasks.ExistsByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// TaskStatusChange valida el cambio de estado y devuelve el estado parseado.
// Cualquier transición entre estados válidos es legal; no se impone orden.
func (e *Engine) TaskStatusChange(id, raw string) (entity.TaskStatus, error) {
	ok, err := e.tasks.ExistsByID(id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNotFound
	}
	status, valid := entity.ParseTaskStatus(raw)
	if !valid {
		return "", domain.ErrInvalidInput
	}
	return status, nil
}

// customerRef verifica que el cliente referenciado exista.
func (e *Engine) customerRef(customerID string) error {
	if customerID == "" {
		return domain.ErrReferenceNotFound
	}
	ok, err := e.customers.ExistsByID(customerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrReferenceNotFound
	}
	return nil
}

// offerOwnership verifica que la oferta (si viene) exista y pertenezca al cliente.
func (e *Engine) offerOwnership(customerID, offerID string) error {
	if offerID == "" {
		return nil
	}
	offer, err := e.offers.GetByID(offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return domain.ErrReferenceNotFound
	}
	if offer.CustomerID != customerID {
		return domain.ErrOwnershipMismatch
	}
	return nil
}
