package repository

import "github.com/tu-usuario/mini-crm/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
// Los Get* devuelven (nil, nil) si no existe el registro.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetAll() ([]*entity.User, error)
	ExistsByID(id string) (bool, error)
	Update(user *entity.User) error
	Delete(id string) error
}
