package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/mini-crm/internal/application/cache"
	"github.com/tu-usuario/mini-crm/internal/application/consistency"
	"github.com/tu-usuario/mini-crm/internal/application/dto"
	"github.com/tu-usuario/mini-crm/internal/domain"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
	"github.com/tu-usuario/mini-crm/internal/domain/repository"
)

// TaskUseCase servicio del agregado Task.
type TaskUseCase struct {
	repo      repository.TaskRepository
	customers repository.CustomerRepository
	offers    repository.OfferRepository
	engine    *consistency.Engine
	coord     *cache.Coordinator
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, customers repository.CustomerRepository, offers repository.OfferRepository, engine *consistency.Engine, coord *cache.Coordinator) *TaskUseCase {
	return &TaskUseCase{repo: repo, customers: customers, offers: offers, engine: engine, coord: coord}
}

// Create crea una tarea. El cliente debe existir; la oferta, si viene, debe
// existir y pertenecer al mismo cliente. El dueDate no puede estar en el pasado.
func (uc *TaskUseCase) Create(in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if in.Title == "" || in.DueDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	status := entity.TaskTodo
	if in.Status != "" {
		parsed, ok := entity.ParseTaskStatus(in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		status = parsed
	}
	priority := entity.PriorityMedium
	if in.Priority != "" {
		parsed, ok := entity.ParseTaskPriority(in.Priority)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		priority = parsed
	}
	if err := uc.engine.TaskCreate(in.CustomerID, in.OfferID, in.DueDate); err != nil {
		return nil, err
	}
	now := time.Now()
	task := &entity.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		Priority:    priority,
		CustomerID:  in.CustomerID,
		OfferID:     in.OfferID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(task); err != nil {
		return nil, err
	}
	uc.coord.TaskWritten()
	log.Info().Str("task_id", task.ID).Str("customer_id", task.CustomerID).Msg("tarea creada")
	return toTaskResponse(task), nil
}

// GetByID obtiene una tarea por ID (cacheado).
func (uc *TaskUseCase) GetByID(id string) (*dto.TaskResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeTask, cache.KeyByID(id), func() (*dto.TaskResponse, error) {
		task, err := uc.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, domain.ErrNotFound
		}
		return toTaskResponse(task), nil
	})
}

// GetAll lista todas las tareas (cacheado).
func (uc *TaskUseCase) GetAll() ([]*dto.TaskResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeTask, cache.KeyAll, func() ([]*dto.TaskResponse, error) {
		list, err := uc.repo.GetAll()
		if err != nil {
			return nil, err
		}
		return toTaskResponses(list), nil
	})
}

// GetByCustomer lista las tareas de un cliente (cacheado).
// Devuelve ErrReferenceNotFound si el cliente no existe.
func (uc *TaskUseCase) GetByCustomer(customerID string) ([]*dto.TaskResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeTask, cache.KeyByCustomer(customerID), func() ([]*dto.TaskResponse, error) {
		ok, err := uc.customers.ExistsByID(customerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrReferenceNotFound
		}
		list, err := uc.repo.ListByCustomer(customerID)
		if err != nil {
			return nil, err
		}
		return toTaskResponses(list), nil
	})
}

// GetByOffer lista las tareas asociadas a una oferta (cacheado).
// Devuelve ErrReferenceNotFound si la oferta no existe.
func (uc *TaskUseCase) GetByOffer(offerID string) ([]*dto.TaskResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeTask, cache.KeyByOffer(offerID), func() ([]*dto.TaskResponse, error) {
		ok, err := uc.offers.ExistsByID(offerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrReferenceNotFound
		}
		list, err := uc.repo.ListByOffer(offerID)
		if err != nil {
			return nil, err
		}
		return toTaskResponses(list), nil
	})
}

// GetByStatus lista tareas por estado (cacheado). Estado desconocido devuelve ErrInvalidInput.
func (uc *TaskUseCase) GetByStatus(raw string) ([]*dto.TaskResponse, error) {
	status, ok := entity.ParseTaskStatus(raw)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return cache.ReadThrough(uc.coord, cache.TypeTask, cache.KeyByStatus(raw), func() ([]*dto.TaskResponse, error) {
		list, err := uc.repo.ListByStatus(status)
		if err != nil {
			return nil, err
		}
		return toTaskResponses(list), nil
	})
}

// GetOverdue lista tareas vencidas. No se cachea: el resultado depende del
// reloj y quedaría obsoleto sin que medie ninguna escritura.
func (uc *TaskUseCase) GetOverdue() ([]*dto.TaskResponse, error) {
	list, err := uc.repo.ListOverdue(time.Now())
	if err != nil {
		return nil, err
	}
	return toTaskResponses(list), nil
}

// Update actualiza una tarea. El dueDate no se revalida en update.
func (uc *TaskUseCase) Update(id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		existing.Title = *in.Title
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}
	if in.DueDate != nil {
		existing.DueDate = *in.DueDate
	}
	if in.Status != nil {
		parsed, ok := entity.ParseTaskStatus(*in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		existing.Status = parsed
	}
	if in.Priority != nil {
		parsed, ok := entity.ParseTaskPriority(*in.Priority)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		existing.Priority = parsed
	}
	if in.CustomerID != nil {
		existing.CustomerID = *in.CustomerID
	}
	if in.OfferID != nil {
		existing.OfferID = *in.OfferID
	}
	if err := uc.engine.TaskUpdate(id, existing.CustomerID, existing.OfferID); err != nil {
		return nil, err
	}
	existing.UpdatedAt = time.Now()
	if err := uc.repo.Update(existing); err != nil {
		return nil, err
	}
	uc.coord.TaskWritten()
	log.Info().Str("task_id", id).Msg("tarea actualizada")
	return toTaskResponse(existing), nil
}

// Delete elimina una tarea por ID.
func (uc *TaskUseCase) Delete(id string) error {
	if err := uc.engine.TaskDelete(id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.coord.TaskWritten()
	log.Info().Str("task_id", id).Msg("tarea eliminada")
	return nil
}

// ChangeStatus cambia el estado de la tarea. Estado desconocido devuelve
// ErrInvalidInput; cualquier transición entre estados válidos es legal.
func (uc *TaskUseCase) ChangeStatus(id, raw string) (*dto.TaskResponse, error) {
	status, err := uc.engine.TaskStatusChange(id, raw)
	if err != nil {
		return nil, err
	}
	task, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	task.Status = status
	task.UpdatedAt = time.Now()
	if err := uc.repo.Update(task); err != nil {
		return nil, err
	}
	uc.coord.TaskWritten()
	log.Info().Str("task_id", id).Str("status", raw).Msg("estado de tarea cambiado")
	return toTaskResponse(task), nil
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CustomerID:  t.CustomerID,
		OfferID:     t.OfferID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(list []*entity.Task) []*dto.TaskResponse {
	out := make([]*dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskResponse(t))
	}
	return out
}
