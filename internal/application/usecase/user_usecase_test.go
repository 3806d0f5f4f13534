package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/mini-crm/internal/application/dto"
	"github.com/tu-usuario/mini-crm/internal/application/usecase"
	"github.com/tu-usuario/mini-crm/internal/domain"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de UserRepository
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	rows map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{rows: make(map[string]*entity.User)} }

func (r *memUserRepo) Create(u *entity.User) error             { r.rows[u.ID] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) { return r.rows[id], nil }
func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) GetAll() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.rows))
	for _, u := range r.rows {
		out = append(out, u)
	}
	return out, nil
}
func (r *memUserRepo) ExistsByID(id string) (bool, error) { _, ok := r.rows[id]; return ok, nil }
func (r *memUserRepo) Update(u *entity.User) error        { r.rows[u.ID] = u; return nil }
func (r *memUserRepo) Delete(id string) error             { delete(r.rows, id); return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Administración de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_HasheaPassword(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.Create(dto.CreateUserRequest{
		Username: "ana", Email: "a@b.c", Password: "super-secreto", Role: entity.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, created.Role)

	stored := repo.rows[created.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "super-secreto", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("super-secreto")))
}

func TestUserCreate_RolDesconocido_RetornaInvalidInput(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo())
	_, err := uc.Create(dto.CreateUserRequest{
		Username: "ana", Email: "a@b.c", Password: "x", Role: "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_UsernameOcupado_RetornaDuplicate(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Create(dto.CreateUserRequest{Username: "ana", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateUserRequest{Username: "ana", Email: "otro@b.c", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserChangeRole_ElevarAAdmin_RetornaForbidden(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.Create(dto.CreateUserRequest{Username: "ana", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	err = uc.ChangeRole(created.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"elevar a admin por la API está bloqueado")
	assert.Equal(t, entity.RoleUser, repo.rows[created.ID].Role, "el rol no debe haber cambiado")
}

func TestUserChangeRole_AManager_Funciona(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.Create(dto.CreateUserRequest{Username: "ana", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	require.NoError(t, uc.ChangeRole(created.ID, entity.RoleManager))
	assert.Equal(t, entity.RoleManager, repo.rows[created.ID].Role)
}

func TestUserChangeRole_UsuarioInexistente_RetornaUserNotFound(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo())
	err := uc.ChangeRole("no-existe", entity.RoleManager)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserSetLocked_BloqueaYDesbloquea(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.Create(dto.CreateUserRequest{Username: "ana", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	require.NoError(t, uc.SetLocked(created.ID, true))
	assert.True(t, repo.rows[created.ID].Locked)
	require.NoError(t, uc.SetLocked(created.ID, false))
	assert.False(t, repo.rows[created.ID].Locked)
}

func TestUserUpdate_EmailDeOtroUsuario_RetornaDuplicate(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Create(dto.CreateUserRequest{Username: "ana", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	otro, err := uc.Create(dto.CreateUserRequest{Username: "otro", Email: "otro@b.c", Password: "x"})
	require.NoError(t, err)

	email := "a@b.c"
	_, err = uc.Update(otro.ID, dto.UpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
