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

// OfferUseCase servicio del agregado Offer.
type OfferUseCase struct {
	repo      repository.OfferRepository
	customers repository.CustomerRepository
	engine    *consistency.Engine
	coord     *cache.Coordinator
	tx        TxRunner
}

// NewOfferUseCase construye el caso de uso.
func NewOfferUseCase(repo repository.OfferRepository, customers repository.CustomerRepository, engine *consistency.Engine, coord *cache.Coordinator, tx TxRunner) *OfferUseCase {
	return &OfferUseCase{repo: repo, customers: customers, engine: engine, coord: coord, tx: tx}
}

// Create crea una oferta. El cliente referenciado debe existir.
func (uc *OfferUseCase) Create(in dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	status := entity.OfferDraft
	if in.Status != "" {
		parsed, ok := entity.ParseOfferStatus(in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		status = parsed
	}
	if err := uc.engine.OfferCreate(in.CustomerID); err != nil {
		return nil, err
	}
	now := time.Now()
	offer := &entity.Offer{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Status:      status,
		CustomerID:  in.CustomerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(offer); err != nil {
		return nil, err
	}
	uc.coord.OfferWritten()
	log.Info().Str("offer_id", offer.ID).Str("customer_id", offer.CustomerID).Msg("oferta creada")
	return toOfferResponse(offer), nil
}

// GetByID obtiene una oferta por ID (cacheado).
func (uc *OfferUseCase) GetByID(id string) (*dto.OfferResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeOffer, cache.KeyByID(id), func() (*dto.OfferResponse, error) {
		offer, err := uc.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if offer == nil {
			return nil, domain.ErrNotFound
		}
		return toOfferResponse(offer), nil
	})
}

// GetAll lista todas las ofertas (cacheado).
func (uc *OfferUseCase) GetAll() ([]*dto.OfferResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeOffer, cache.KeyAll, func() ([]*dto.OfferResponse, error) {
		list, err := uc.repo.GetAll()
		if err != nil {
			return nil, err
		}
		return toOfferResponses(list), nil
	})
}

// GetByCustomer lista las ofertas de un cliente (cacheado).
// Devuelve ErrReferenceNotFound si el cliente no existe.
func (uc *OfferUseCase) GetByCustomer(customerID string) ([]*dto.OfferResponse, error) {
	return cache.ReadThrough(uc.coord, cache.TypeOffer, cache.KeyByCustomer(customerID), func() ([]*dto.OfferResponse, error) {
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
		return toOfferResponses(list), nil
	})
}

// Update actualiza una oferta. CustomerID permite reasignarla a otro cliente existente.
func (uc *OfferUseCase) Update(id string, in dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
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
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		existing.Price = *in.Price
	}
	if in.Status != nil {
		parsed, ok := entity.ParseOfferStatus(*in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		existing.Status = parsed
	}
	if in.CustomerID != nil {
		existing.CustomerID = *in.CustomerID
	}
	if err := uc.engine.OfferUpdate(id, existing.CustomerID); err != nil {
		return nil, err
	}
	existing.UpdatedAt = time.Now()
	if err := uc.repo.Update(existing); err != nil {
		return nil, err
	}
	uc.coord.OfferWritten()
	log.Info().Str("offer_id", id).Msg("oferta actualizada")
	return toOfferResponse(existing), nil
}

// Delete elimina una oferta y, en la misma transacción, limpia OfferID en las
// tareas que la referencian. Las tareas no se borran.
func (uc *OfferUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.engine.OfferDelete(id); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(
		customers repository.CustomerRepository,
		offers repository.OfferRepository,
		tasks repository.TaskRepository,
	) error {
		if err := tasks.ClearOfferRef(id); err != nil {
			return err
		}
		return offers.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.coord.OfferDeleted()
	log.Info().Str("offer_id", id).Msg("oferta eliminada")
	return nil
}

// ChangeStatus cambia el estado de la oferta. Estado desconocido devuelve
// ErrInvalidInput; cualquier transición entre estados válidos es legal.
func (uc *OfferUseCase) ChangeStatus(id, raw string) (*dto.OfferResponse, error) {
	status, err := uc.engine.OfferStatusChange(id, raw)
	if err != nil {
		return nil, err
	}
	offer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrNotFound
	}
	offer.Status = status
	offer.UpdatedAt = time.Now()
	if err := uc.repo.Update(offer); err != nil {
		return nil, err
	}
	uc.coord.OfferWritten()
	log.Info().Str("offer_id", id).Str("status", raw).Msg("estado de oferta cambiado")
	return toOfferResponse(offer), nil
}

func toOfferResponse(o *entity.Offer) *dto.OfferResponse {
	if o == nil {
		return nil
	}
	return &dto.OfferResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Price:       o.Price,
		Status:      string(o.Status),
		CustomerID:  o.CustomerID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOfferResponses(list []*entity.Offer) []*dto.OfferResponse {
	out := make([]*dto.OfferResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOfferResponse(o))
	}
	return out
}
