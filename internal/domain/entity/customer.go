package entity

import "time"

// CustomerStatus estado del cliente en el CRM.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "ACTIVE"
	CustomerInactive CustomerStatus = "INACTIVE"
)

// ParseCustomerStatus valida el string recibido contra los estados conocidos.
func ParseCustomerStatus(s string) (CustomerStatus, bool) {
	switch CustomerStatus(s) {
	case CustomerActive, CustomerInactive:
		return CustomerStatus(s), true
	}
	return "", false
}

// Customer representa un cliente del mini-CRM.
// El email es único a nivel global; la comparación es exacta sobre el valor almacenado.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Status    CustomerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
