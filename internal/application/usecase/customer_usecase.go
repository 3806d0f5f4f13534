package usecase

import (
	"context"
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

// CustomerUseCase servicio del agregado Customer: valida con el motor de
// consistencia, escribe en el store e invalida el caché en ese orden.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	engine *consistency.Engine
	coord  *cache.Coordinator
	tx     TxRunner
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, engine *consistency.Engine, coord *cache.Coordinator, tx TxRunner) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, engine: engine, coord: coord, tx: tx}
}

// Create crea un nuevo cliente. Email duplicado devuelve ErrDuplicate.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	status := entity.CustomerActive
	if in.Status != "" {
		parsed, ok := entity.ParseCustomerStatus(in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		status = parsed
	}
	if err := uc.engine.CustomerCreate(in.Email); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	uc.coord.CustomerWritten()
	log.Info().Str("customer_id", customer.ID).Msg("cliente creado")
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID (cacheado).
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeCustomer, cache.KeyByID(id), func() (*dto.CustomerResponse, error) {
		customer, err := uc.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		return toCustomerResponse(customer), nil
	})
}

// GetAll lista todos los clientes (cacheado).
func (uc *CustomerUseCase) GetAll() ([]*dto.CustomerResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeCustomer, cache.KeyAll, func() ([]*dto.CustomerResponse, error) {
		list, err := uc.repo.GetAll()
		if err != nil {
			return nil, err
		}
		out := make([]*dto.CustomerResponse, 0, len(list))
		for _, c := range list {
			out = append(out, toCustomerResponse(c))
		}
		return out, nil
	})
}

// Update actualiza un cliente. Campos nil del request no se tocan.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if in.FirstName != nil {
		existing.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		existing.LastName = *in.LastName
	}
	if in.Email != nil {
		existing.Email = *in.Email
	}
	if in.Phone != nil {
		existing.Phone = *in.Phone
	}
	if in.Status != nil {
		parsed, ok := entity.ParseCustomerStatus(*in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		existing.Status = parsed
	}
	if err := uc.engine.CustomerUpdate(id, existing.Email); err != nil {
		return nil, err
	}
	existing.UpdatedAt = time.Now()
	if err := uc.repo.Update(existing); err != nil {
		return nil, err
	}
	uc.coord.CustomerWritten()
	log.Info().Str("customer_id", id).Msg("cliente actualizado")
	return toCustomerResponse(existing), nil
}

// Delete elimina un cliente y, en la misma transacción, todas sus ofertas y tareas.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.engine.CustomerDelete(id); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(
		customers repository.CustomerRepository,
		offers repository.OfferRepository,
		tasks repository.TaskRepository,
	) error {
		if err := tasks.DeleteByCustomer(id); err != nil {
			return err
		}
		if err := offers.DeleteByCustomer(id); err != nil {
			return err
		}
		return customers.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.coord.CustomerDeleted()
	log.Info().Str("customer_id", id).Msg("cliente eliminado en cascada")
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
