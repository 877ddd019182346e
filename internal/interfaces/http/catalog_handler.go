package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/dto"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/feira"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain"
)

// CatalogHandler expone por HTTP el catálogo y el estado de la feria (solo lectura).
type CatalogHandler struct {
	svc *feira.Service
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(svc *feira.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /products [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.svc.Catalog())
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.svc.Product(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Feira godoc
// @Summary      Feria activa e histórico de ferias cerradas
// @Tags         feira
// @Produce      json
// @Success      200  {object}  dto.FeiraSnapshot
// @Router       /feira [get]
func (h *CatalogHandler) Feira(c *fiber.Ctx) error {
	return c.JSON(h.svc.Snapshot())
}
