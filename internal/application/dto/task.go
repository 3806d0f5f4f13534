package dto

import "time"

// CreateTaskRequest payload para crear una tarea.
type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`   // vacío = TODO
	Priority    string    `json:"priority"` // vacío = MEDIUM
	CustomerID  string    `json:"customer_id"`
	OfferID     string    `json:"offer_id"` // opcional
}

// UpdateTaskRequest payload para actualizar una tarea. Campos nil no se tocan.
// OfferID con string vacío desasocia la oferta.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	CustomerID  *string    `json:"customer_id"`
	OfferID     *string    `json:"offer_id"`
}

// TaskResponse vista pública de la tarea.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CustomerID  string    `json:"customer_id"`
	OfferID     string    `json:"offer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
