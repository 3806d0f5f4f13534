package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/mini-crm/internal/application/dto"
	"github.com/tu-usuario/mini-crm/internal/domain"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
	"github.com/tu-usuario/mini-crm/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios (solo rutas de admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario con password hasheado. Username y email deben ser únicos.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.repo.GetByUsername(in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.repo.GetByEmail(in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Enabled:      true,
		Locked:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("usuario creado")
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// GetByUsername obtiene un usuario por username.
func (uc *UserUseCase) GetByUsername(username string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// GetAll lista todos los usuarios.
func (uc *UserUseCase) GetAll() ([]*dto.UserResponse, error) {
	list, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Update actualiza username/email/password. Unicidad se revalida solo si cambian.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Username != nil && *in.Username != existing.Username {
		if other, err := uc.repo.GetByUsername(*in.Username); err != nil {
			return nil, err
		} else if other != nil {
			return nil, domain.ErrDuplicate
		}
		existing.Username = *in.Username
	}
	if in.Email != nil && *in.Email != existing.Email {
		if other, err := uc.repo.GetByEmail(*in.Email); err != nil {
			return nil, err
		} else if other != nil {
			return nil, domain.ErrDuplicate
		}
		existing.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = string(hash)
	}
	existing.UpdatedAt = time.Now()
	if err := uc.repo.Update(existing); err != nil {
		return nil, err
	}
	return toUserResponse(existing), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(id string) error {
	ok, err := uc.repo.ExistsByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}

// ChangeRole cambia el rol del usuario. Elevar a admin por la API está bloqueado.
func (uc *UserUseCase) ChangeRole(id, role string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !entity.ValidRole(role) {
		return domain.ErrInvalidInput
	}
	if role == entity.RoleAdmin {
		log.Warn().Str("user_id", id).Msg("intento de elevar rol a admin bloqueado")
		return domain.ErrForbidden
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return err
	}
	log.Info().Str("user_id", id).Str("role", role).Msg("rol cambiado")
	return nil
}

// SetEnabled habilita o deshabilita la cuenta.
func (uc *UserUseCase) SetEnabled(id string, enabled bool) error {
	return uc.setFlag(id, func(u *entity.User) { u.Enabled = enabled })
}

// SetLocked bloquea o desbloquea la cuenta.
func (uc *UserUseCase) SetLocked(id string, locked bool) error {
	return uc.setFlag(id, func(u *entity.User) { u.Locked = locked })
}

func (uc *UserUseCase) setFlag(id string, apply func(*entity.User)) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	apply(user)
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Enabled:   u.Enabled,
		Locked:    u.Locked,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
