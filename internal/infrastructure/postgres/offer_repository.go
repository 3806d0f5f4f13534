package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
	"github.com/tu-usuario/mini-crm/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

// OfferRepo implementación de OfferRepository (usable con pool o tx).
type OfferRepo struct {
	q Querier
}

// NewOfferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOfferRepository(q Querier) *OfferRepo {
	return &OfferRepo{q: q}
}

const offerColumns = `id, title, description, price, status, customer_id, created_at, updated_at`

// Create persiste una nueva oferta.
func (r *OfferRepo) Create(offer *entity.Offer) error {
	query := `
		INSERT INTO offers (id, title, description, price, status, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		offer.ID, offer.Title, offer.Description, offer.Price, offer.Status, offer.CustomerID,
		offer.CreatedAt, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// GetByID obtiene una oferta por ID.
func (r *OfferRepo) GetByID(id string) (*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get offer")
}

// GetAll lista todas las ofertas.
func (r *OfferRepo) GetAll() ([]*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers ORDER BY created_at DESC`
	return r.list(query)
}

// ListByCustomer lista las ofertas de un cliente.
func (r *OfferRepo) ListByCustomer(customerID string) ([]*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.list(query, customerID)
}

// ExistsByID verifica existencia sin traer la fila completa.
func (r *OfferRepo) ExistsByID(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM offers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists offer: %w", err)
	}
	return exists, nil
}

// Update actualiza una oferta.
func (r *OfferRepo) Update(offer *entity.Offer) error {
	query := `
		UPDATE offers SET title = $2, description = $3, price = $4, status = $5, customer_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		offer.ID, offer.Title, offer.Description, offer.Price, offer.Status, offer.CustomerID, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	return nil
}

// Delete elimina una oferta por ID.
func (r *OfferRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return nil
}

// DeleteByCustomer elimina todas las ofertas del cliente (cascada).
func (r *OfferRepo) DeleteByCustomer(customerID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM offers WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("delete offers by customer: %w", err)
	}
	return nil
}

func (r *OfferRepo) list(query string, args ...any) ([]*entity.Offer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Offer
	for rows.Next() {
		var o entity.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.Price, &o.Status, &o.CustomerID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *OfferRepo) scanOne(row pgx.Row, op string) (*entity.Offer, error) {
	var o entity.Offer
	err := row.Scan(&o.ID, &o.Title, &o.Description, &o.Price, &o.Status, &o.CustomerID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &o, nil
}
