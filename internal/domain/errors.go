package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado; las capas intermedias los propagan sin tocar.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrReferenceNotFound = errors.New("la referencia no existe")
	ErrOwnershipMismatch = errors.New("la referencia pertenece a otro cliente")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)
