package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/mini-crm/internal/application/cache"
	"github.com/tu-usuario/mini-crm/internal/application/consistency"
	"github.com/tu-usuario/mini-crm/internal/application/dto"
	"github.com/tu-usuario/mini-crm/internal/application/usecase"
	"github.com/tu-usuario/mini-crm/internal/domain"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
	"github.com/tu-usuario/mini-crm/internal/domain/repository"
	"github.com/tu-usuario/mini-crm/internal/infrastructure/memcache"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con contadores de llamadas al store
// ──────────────────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	rows        map[string]*entity.Customer
	getAllCalls int
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{rows: make(map[string]*entity.Customer)}
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.rows[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.rows[id], nil
}
func (r *memCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range r.rows {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCustomerRepo) GetAll() ([]*entity.Customer, error) {
	r.getAllCalls++
	out := make([]*entity.Customer, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	return out, nil
}
func (r *memCustomerRepo) ExistsByID(id string) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error { r.rows[c.ID] = c; return nil }
func (r *memCustomerRepo) Delete(id string) error          { delete(r.rows, id); return nil }

type memOfferRepo struct {
	rows map[string]*entity.Offer
}

func newMemOfferRepo() *memOfferRepo { return &memOfferRepo{rows: make(map[string]*entity.Offer)} }

func (r *memOfferRepo) Create(o *entity.Offer) error              { r.rows[o.ID] = o; return nil }
func (r *memOfferRepo) GetByID(id string) (*entity.Offer, error)  { return r.rows[id], nil }
func (r *memOfferRepo) GetAll() ([]*entity.Offer, error) {
	out := make([]*entity.Offer, 0, len(r.rows))
	for _, o := range r.rows {
		out = append(out, o)
	}
	return out, nil
}
func (r *memOfferRepo) ListByCustomer(customerID string) ([]*entity.Offer, error) {
	var out []*entity.Offer
	for _, o := range r.rows {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *memOfferRepo) ExistsByID(id string) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}
func (r *memOfferRepo) Update(o *entity.Offer) error { r.rows[o.ID] = o; return nil }
func (r *memOfferRepo) Delete(id string) error       { delete(r.rows, id); return nil }
func (r *memOfferRepo) DeleteByCustomer(customerID string) error {
	for id, o := range r.rows {
		if o.CustomerID == customerID {
			delete(r.rows, id)
		}
	}
	return nil
}

type memTaskRepo struct {
	rows         map[string]*entity.Task
	overdueCalls int
}

func newMemTaskRepo() *memTaskRepo { return &memTaskRepo{rows: make(map[string]*entity.Task)} }

func (r *memTaskRepo) Create(t *entity.Task) error             { r.rows[t.ID] = t; return nil }
func (r *memTaskRepo) GetByID(id string) (*entity.Task, error) { return r.rows[id], nil }
func (r *memTaskRepo) GetAll() ([]*entity.Task, error) {
	out := make([]*entity.Task, 0, len(r.rows))
	for _, t := range r.rows {
		out = append(out, t)
	}
	return out, nil
}
func (r *memTaskRepo) ListByCustomer(customerID string) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.rows {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *memTaskRepo) ListByOffer(offerID string) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.rows {
		if t.OfferID == offerID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *memTaskRepo) ListByStatus(status entity.TaskStatus) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.rows {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *memTaskRepo) ListOverdue(now time.Time) ([]*entity.Task, error) {
	r.overdueCalls++
	var out []*entity.Task
	for _, t := range r.rows {
		if t.DueDate.Before(now) && t.Status != entity.TaskDone {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *memTaskRepo) ExistsByID(id string) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}
func (r *memTaskRepo) Update(t *entity.Task) error { r.rows[t.ID] = t; return nil }
func (r *memTaskRepo) Delete(id string) error      { delete(r.rows, id); return nil }
func (r *memTaskRepo) DeleteByCustomer(customerID string) error {
	for id, t := range r.rows {
		if t.CustomerID == customerID {
			delete(r.rows, id)
		}
	}
	return nil
}
func (r *memTaskRepo) ClearOfferRef(offerID string) error {
	for _, t := range r.rows {
		if t.OfferID == offerID {
			t.OfferID = ""
		}
	}
	return nil
}

// memTxRunner ejecuta el callback directamente sobre los mismos fakes;
// en tests no hay transacción real que abrir.
type memTxRunner struct {
	customers *memCustomerRepo
	offers    *memOfferRepo
	tasks     *memTaskRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	customers repository.CustomerRepository,
	offers repository.OfferRepository,
	tasks repository.TaskRepository,
) error) error {
	return fn(r.customers, r.offers, r.tasks)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: usecases reales sobre fakes + caché en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	customers *memCustomerRepo
	offers    *memOfferRepo
	tasks     *memTaskRepo

	customerUC *usecase.CustomerUseCase
	offerUC    *usecase.OfferUseCase
	taskUC     *usecase.TaskUseCase
}

func newTestEnv() *testEnv {
	customers := newMemCustomerRepo()
	offers := newMemOfferRepo()
	tasks := newMemTaskRepo()
	tx := &memTxRunner{customers: customers, offers: offers, tasks: tasks}

	coord := cache.NewCoordinator(memcache.New())
	engine := consistency.NewEngine(customers, offers, tasks)

	return &testEnv{
		customers:  customers,
		offers:     offers,
		tasks:      tasks,
		customerUC: usecase.NewCustomerUseCase(customers, engine, coord, tx),
		offerUC:    usecase.NewOfferUseCase(offers, customers, engine, coord, tx),
		taskUC:     usecase.NewTaskUseCase(tasks, customers, offers, engine, coord),
	}
}

func (e *testEnv) mustCreateCustomer(t *testing.T, email string) *dto.CustomerResponse {
	t.Helper()
	c, err := e.customerUC.Create(dto.CreateCustomerRequest{
		FirstName: "Ana",
		LastName:  "García",
		Email:     email,
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) mustCreateOffer(t *testing.T, customerID string) *dto.OfferResponse {
	t.Helper()
	o, err := e.offerUC.Create(dto.CreateOfferRequest{
		Title:      "Plan anual",
		Price:      decimal.NewFromInt(2500),
		CustomerID: customerID,
	})
	require.NoError(t, err)
	return o
}

func (e *testEnv) mustCreateTask(t *testing.T, customerID, offerID string) *dto.TaskResponse {
	t.Helper()
	task, err := e.taskUC.Create(dto.CreateTaskRequest{
		Title:      "Llamar al cliente",
		DueDate:    time.Now().Add(48 * time.Hour),
		CustomerID: customerID,
		OfferID:    offerID,
	})
	require.NoError(t, err)
	return task
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: alta y unicidad de clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerCreate_EmailDuplicado_RetornaDuplicate(t *testing.T) {
	env := newTestEnv()
	env.mustCreateCustomer(t, "ana@example.com")

	_, err := env.customerUC.Create(dto.CreateCustomerRequest{
		FirstName: "Otra",
		LastName:  "Persona",
		Email:     "ana@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"el segundo alta con el mismo email debe fallar y no dejar rastro")

	list, err := env.customerUC.GetAll()
	require.NoError(t, err)
	assert.Len(t, list, 1, "el cliente duplicado no debe haberse persistido")
}

func TestCustomerCreate_SinCamposRequeridos_RetornaInvalidInput(t *testing.T) {
	env := newTestEnv()
	_, err := env.customerUC.Create(dto.CreateCustomerRequest{FirstName: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerCreate_EstadoDesconocido_RetornaInvalidInput(t *testing.T) {
	env := newTestEnv()
	_, err := env.customerUC.Create(dto.CreateCustomerRequest{
		FirstName: "Ana", LastName: "García", Email: "a@b.c", Status: "SUSPENDED",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerGetByID_Inexistente_RetornaNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.customerUC.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: coherencia lectura/caché tras escrituras
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerGetAll_SegundaLecturaVieneDelCache(t *testing.T) {
	env := newTestEnv()
	env.mustCreateCustomer(t, "ana@example.com")

	_, err := env.customerUC.GetAll()
	require.NoError(t, err)
	calls := env.customers.getAllCalls

	_, err = env.customerUC.GetAll()
	require.NoError(t, err)
	assert.Equal(t, calls, env.customers.getAllCalls,
		"la segunda lectura no debe tocar el store")
}

func TestCustomerUpdate_LecturaPosteriorVeElCambio(t *testing.T) {
	env := newTestEnv()
	created := env.mustCreateCustomer(t, "ana@example.com")

	// Población del caché.
	_, err := env.customerUC.GetByID(created.ID)
	require.NoError(t, err)

	phone := "+57 300 000 0000"
	_, err = env.customerUC.Update(created.ID, dto.UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)

	got, err := env.customerUC.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, phone, got.Phone,
		"ninguna lectura posterior al update puede devolver el valor anterior")
}

func TestOfferWrite_NoDesalojaCacheDeClientes(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")

	_, err := env.customerUC.GetAll()
	require.NoError(t, err)
	calls := env.customers.getAllCalls

	env.mustCreateOffer(t, c.ID)

	_, err = env.customerUC.GetAll()
	require.NoError(t, err)
	assert.Equal(t, calls, env.customers.getAllCalls,
		"escribir una oferta no invalida el caché de clientes")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: referencias y pertenencia
// ──────────────────────────────────────────────────────────────────────────────

func TestOfferCreate_ClienteInexistente_RetornaReferenceNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.offerUC.Create(dto.CreateOfferRequest{
		Title:      "Plan anual",
		Price:      decimal.NewFromInt(100),
		CustomerID: "fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestOfferCreate_PrecioNegativo_RetornaInvalidInput(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")
	_, err := env.offerUC.Create(dto.CreateOfferRequest{
		Title:      "Plan anual",
		Price:      decimal.NewFromInt(-1),
		CustomerID: c.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaskCreate_OfertaDeOtroCliente_RetornaOwnershipMismatch(t *testing.T) {
	env := newTestEnv()
	c1 := env.mustCreateCustomer(t, "ana@example.com")
	c2 := env.mustCreateCustomer(t, "otro@example.com")
	offerDeC2 := env.mustCreateOffer(t, c2.ID)

	_, err := env.taskUC.Create(dto.CreateTaskRequest{
		Title:      "Llamar",
		DueDate:    time.Now().Add(time.Hour),
		CustomerID: c1.ID,
		OfferID:    offerDeC2.ID,
	})
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
}

func TestTaskCreate_DueDatePasado_RetornaInvalidInput(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")
	_, err := env.taskUC.Create(dto.CreateTaskRequest{
		Title:      "Llamar",
		DueDate:    time.Now().Add(-time.Hour),
		CustomerID: c.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: borrado de cliente en cascada
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerDelete_CascadaSobreOfertasYTareas(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")
	o := env.mustCreateOffer(t, c.ID)
	task := env.mustCreateTask(t, c.ID, o.ID)

	// Poblamos los cachés de los tres tipos antes de borrar.
	_, err := env.offerUC.GetAll()
	require.NoError(t, err)
	_, err = env.taskUC.GetAll()
	require.NoError(t, err)

	require.NoError(t, env.customerUC.Delete(context.Background(), c.ID))

	_, err = env.customerUC.GetByID(c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el cliente debe desaparecer")
	_, err = env.offerUC.GetByID(o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "sus ofertas deben desaparecer")
	_, err = env.taskUC.GetByID(task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "sus tareas deben desaparecer")

	offersList, err := env.offerUC.GetAll()
	require.NoError(t, err)
	assert.Empty(t, offersList, "el listado cacheado de ofertas no puede servir datos viejos")
	tasksList, err := env.taskUC.GetAll()
	require.NoError(t, err)
	assert.Empty(t, tasksList, "el listado cacheado de tareas no puede servir datos viejos")
}

func TestCustomerDelete_Inexistente_RetornaNotFound(t *testing.T) {
	env := newTestEnv()
	err := env.customerUC.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: borrado de oferta desasocia tareas
// ──────────────────────────────────────────────────────────────────────────────

func TestOfferDelete_LimpiaOfferIDEnTareas(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")
	o := env.mustCreateOffer(t, c.ID)
	task := env.mustCreateTask(t, c.ID, o.ID)

	// Población del caché de tareas con la referencia todavía viva.
	before, err := env.taskUC.GetByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, o.ID, before.OfferID)

	require.NoError(t, env.offerUC.Delete(context.Background(), o.ID))

	after, err := env.taskUC.GetByID(task.ID)
	require.NoError(t, err)
	assert.Empty(t, after.OfferID,
		"la tarea sobrevive pero su referencia a la oferta borrada queda vacía")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: cambios de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestOfferChangeStatus_EstadoDesconocido_NoPersisteNada(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")
	o := env.mustCreateOffer(t, c.ID)

	_, err := env.offerUC.ChangeStatus(o.ID, "WON")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := env.offerUC.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OfferDraft), got.Status,
		"un cambio de estado rechazado no debe tocar la oferta")
}

func TestOfferChangeStatus_TransicionValida(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")
	o := env.mustCreateOffer(t, c.ID)

	got, err := env.offerUC.ChangeStatus(o.ID, "SENT")
	require.NoError(t, err)
	assert.Equal(t, string(entity.OfferSent), got.Status)
}

func TestTaskChangeStatus_HaciaAtrasEsLegal(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")
	task := env.mustCreateTask(t, c.ID, "")

	_, err := env.taskUC.ChangeStatus(task.ID, "DONE")
	require.NoError(t, err)
	got, err := env.taskUC.ChangeStatus(task.ID, "TODO")
	require.NoError(t, err)
	assert.Equal(t, string(entity.TaskTodo), got.Status,
		"DONE → TODO es una transición válida; no se impone orden")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: listados de tareas
// ──────────────────────────────────────────────────────────────────────────────

func TestTaskGetByStatus_EstadoDesconocido_RetornaInvalidInput(t *testing.T) {
	env := newTestEnv()
	_, err := env.taskUC.GetByStatus("ARCHIVED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaskGetByCustomer_ClienteInexistente_RetornaReferenceNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.taskUC.GetByCustomer("fantasma")
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestTaskGetOverdue_NuncaSeCachea(t *testing.T) {
	env := newTestEnv()

	_, err := env.taskUC.GetOverdue()
	require.NoError(t, err)
	_, err = env.taskUC.GetOverdue()
	require.NoError(t, err)

	assert.Equal(t, 2, env.tasks.overdueCalls,
		"el listado de vencidas depende del reloj y debe ir siempre al store")
}

func TestTaskGetByOffer_ListaSoloLasDeEsaOferta(t *testing.T) {
	env := newTestEnv()
	c := env.mustCreateCustomer(t, "ana@example.com")
	o1 := env.mustCreateOffer(t, c.ID)
	o2 := env.mustCreateOffer(t, c.ID)
	env.mustCreateTask(t, c.ID, o1.ID)
	env.mustCreateTask(t, c.ID, o1.ID)
	env.mustCreateTask(t, c.ID, o2.ID)

	list, err := env.taskUC.GetByOffer(o1.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
