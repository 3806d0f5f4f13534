package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOfferRequest payload para crear una oferta.
type CreateOfferRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"` // vacío = DRAFT
	CustomerID  string          `json:"customer_id"`
}

// UpdateOfferRequest payload para actualizar una oferta. Campos nil no se tocan.
// CustomerID permite reasignar la oferta a otro cliente existente.
type UpdateOfferRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Status      *string          `json:"status"`
	CustomerID  *string          `json:"customer_id"`
}

// ChangeStatusRequest payload para cambiar el estado de una oferta o tarea.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OfferResponse vista pública de la oferta.
type OfferResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CustomerID  string          `json:"customer_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
