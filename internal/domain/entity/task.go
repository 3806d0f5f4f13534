package entity

import "time"

// TaskStatus estado de la tarea. Todas las transiciones son válidas;
// no se impone un orden TODO -> IN_PROGRESS -> DONE.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// ParseTaskStatus valida el string recibido contra los estados conocidos.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskTodo, TaskInProgress, TaskDone:
		return TaskStatus(s), true
	}
	return "", false
}

// TaskPriority prioridad de la tarea.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// ParseTaskPriority valida el string recibido contra las prioridades conocidas.
func ParseTaskPriority(s string) (TaskPriority, bool) {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return TaskPriority(s), true
	}
	return "", false
}

// Task representa una tarea de seguimiento. Pertenece a un Customer; opcionalmente
// referencia una Offer, que debe pertenecer al mismo Customer.
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	Status      TaskStatus
	Priority    TaskPriority
	CustomerID  string
	OfferID     string // vacío = sin oferta asociada
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
