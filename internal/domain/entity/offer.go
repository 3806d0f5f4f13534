package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferStatus estado de la oferta dentro del pipeline de ventas.
type OfferStatus string

const (
	OfferDraft     OfferStatus = "DRAFT"
	OfferSent      OfferStatus = "SENT"
	OfferAccepted  OfferStatus = "ACCEPTED"
	OfferRejected  OfferStatus = "REJECTED"
	OfferExpired   OfferStatus = "EXPIRED"
	OfferCancelled OfferStatus = "CANCELLED"
)

// ParseOfferStatus valida el string recibido contra los estados conocidos.
func ParseOfferStatus(s string) (OfferStatus, bool) {
	switch OfferStatus(s) {
	case OfferDraft, OfferSent, OfferAccepted, OfferRejected, OfferExpired, OfferCancelled:
		return OfferStatus(s), true
	}
	return "", false
}

// Offer representa una oferta comercial. Siempre pertenece a un Customer existente;
// la reasignación de cliente está permitida pero debe apuntar a un cliente que exista.
type Offer struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal
	Status      OfferStatus
	CustomerID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
