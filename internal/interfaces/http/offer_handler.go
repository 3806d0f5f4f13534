package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mini-crm/internal/application/dto"
	"github.com/tu-usuario/mini-crm/internal/application/usecase"
)

// OfferHandler maneja las peticiones HTTP de ofertas (protegido).
type OfferHandler struct {
	uc    *usecase.OfferUseCase
	tasks *usecase.TaskUseCase
	pdf   *usecase.OfferPDFUseCase
}

// NewOfferHandler construye el handler.
func NewOfferHandler(uc *usecase.OfferUseCase, tasks *usecase.TaskUseCase, pdf *usecase.OfferPDFUseCase) *OfferHandler {
	return &OfferHandler{uc: uc, tasks: tasks, pdf: pdf}
}

// Create POST /api/offers
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOfferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	offer, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// List GET /api/offers
func (h *OfferHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.GetAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/offers/:id
func (h *OfferHandler) GetByID(c *fiber.Ctx) error {
	offer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(offer)
}

// Update PUT /api/offers/:id
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOfferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	offer, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(offer)
}

// Delete DELETE /api/offers/:id — desasocia las tareas que la referencian.
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStatus PATCH /api/offers/:id/status
func (h *OfferHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	offer, err := h.uc.ChangeStatus(c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(offer)
}

// ListTasks GET /api/offers/:id/tasks
func (h *OfferHandler) ListTasks(c *fiber.Ctx) error {
	list, err := h.tasks.GetByOffer(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// PDF GET /api/offers/:id/pdf — descarga el resumen de la oferta en PDF.
func (h *OfferHandler) PDF(c *fiber.Ctx) error {
	data, err := h.pdf.Generate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="oferta-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}
