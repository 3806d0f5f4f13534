package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
	"github.com/tu-usuario/mini-crm/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación de TaskRepository (usable con pool o tx).
// offer_id es NULL en la tabla cuando la tarea no tiene oferta asociada;
// en la entidad se representa como string vacío.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, title, description, due_date, status, priority, customer_id, offer_id, created_at, updated_at`

// Create persiste una nueva tarea.
func (r *TaskRepo) Create(task *entity.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, due_date, status, priority, customer_id, offer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.Title, task.Description, task.DueDate, task.Status, task.Priority,
		task.CustomerID, nullable(task.OfferID), task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *TaskRepo) GetByID(id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get task")
}

// GetAll lista todas las tareas.
func (r *TaskRepo) GetAll() ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY due_date`
	return r.list(query)
}

// ListByCustomer lista las tareas de un cliente.
func (r *TaskRepo) ListByCustomer(customerID string) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE customer_id = $1 ORDER BY due_date`
	return r.list(query, customerID)
}

// ListByOffer lista las tareas asociadas a una oferta.
func (r *TaskRepo) ListByOffer(offerID string) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE offer_id = $1 ORDER BY due_date`
	return r.list(query, offerID)
}

// ListByStatus lista tareas por estado.
func (r *TaskRepo) ListByStatus(status entity.TaskStatus) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1 ORDER BY due_date`
	return r.list(query, status)
}

// ListOverdue lista tareas no terminadas con due_date anterior a now.
func (r *TaskRepo) ListOverdue(now time.Time) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE due_date < $1 AND status <> $2 ORDER BY due_date`
	return r.list(query, now, entity.TaskDone)
}

// ExistsByID verifica existencia sin traer la fila completa.
func (r *TaskRepo) ExistsByID(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists task: %w", err)
	}
	return exists, nil
}

// Update actualiza una tarea.
func (r *TaskRepo) Update(task *entity.Task) error {
	query := `
		UPDATE tasks SET title = $2, description = $3, due_date = $4, status = $5, priority = $6,
			customer_id = $7, offer_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.Title, task.Description, task.DueDate, task.Status, task.Priority,
		task.CustomerID, nullable(task.OfferID), task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete elimina una tarea por ID.
func (r *TaskRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// DeleteByCustomer elimina todas las tareas del cliente (cascada).
func (r *TaskRepo) DeleteByCustomer(customerID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tasks WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("delete tasks by customer: %w", err)
	}
	return nil
}

// ClearOfferRef pone offer_id en NULL para las tareas de la oferta eliminada.
func (r *TaskRepo) ClearOfferRef(offerID string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE tasks SET offer_id = NULL WHERE offer_id = $1`, offerID)
	if err != nil {
		return fmt.Errorf("clear task offer ref: %w", err)
	}
	return nil
}

func (r *TaskRepo) list(query string, args ...any) ([]*entity.Task, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TaskRepo) scanOne(row pgx.Row, op string) (*entity.Task, error) {
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	var offerID sql.NullString
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.Priority,
		&t.CustomerID, &offerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if offerID.Valid {
		t.OfferID = offerID.String
	}
	return &t, nil
}

// nullable convierte string vacío a NULL para columnas opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
