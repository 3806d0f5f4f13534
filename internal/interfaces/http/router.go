package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mini-crm/internal/application/auth"
	"github.com/tu-usuario/mini-crm/internal/application/usecase"
	"github.com/tu-usuario/mini-crm/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *usecase.CustomerUseCase
	OfferUC    *usecase.OfferUseCase
	TaskUC     *usecase.TaskUseCase
	OfferPDF   *usecase.OfferPDFUseCase
	UserUC     *usecase.UserUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Las lecturas requieren token; las
// escrituras exigen rol manager o admin; /api/users es solo para admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(entity.RoleManager, entity.RoleAdmin)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.OfferUC, deps.TaskUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/offers", customerHandler.ListOffers)
	customers.Get("/:id/tasks", customerHandler.ListTasks)
	customers.Post("/", writer, customerHandler.Create)
	customers.Put("/:id", writer, customerHandler.Update)
	customers.Delete("/:id", writer, customerHandler.Delete)

	// Offers (protegido)
	offers := protected.Group("/offers")
	offerHandler := NewOfferHandler(deps.OfferUC, deps.TaskUC, deps.OfferPDF)
	offers.Get("/", offerHandler.List)
	offers.Get("/:id", offerHandler.GetByID)
	offers.Get("/:id/tasks", offerHandler.ListTasks)
	offers.Get("/:id/pdf", offerHandler.PDF)
	offers.Post("/", writer, offerHandler.Create)
	offers.Put("/:id", writer, offerHandler.Update)
	offers.Patch("/:id/status", writer, offerHandler.ChangeStatus)
	offers.Delete("/:id", writer, offerHandler.Delete)

	// Tasks (protegido)
	tasks := protected.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/overdue", taskHandler.ListOverdue)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Post("/", writer, taskHandler.Create)
	tasks.Put("/:id", writer, taskHandler.Update)
	tasks.Patch("/:id/status", writer, taskHandler.ChangeStatus)
	tasks.Delete("/:id", writer, taskHandler.Delete)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/role", userHandler.ChangeRole)
	users.Patch("/:id/enabled", userHandler.SetEnabled)
	users.Patch("/:id/locked", userHandler.SetLocked)
	users.Delete("/:id", userHandler.Delete)
}
