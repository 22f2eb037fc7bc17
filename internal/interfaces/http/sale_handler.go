package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salecart-api/internal/application/dto"
	"github.com/jhoicas/salecart-api/internal/application/sale"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// SaleHandler consolida carritos y expone los pedidos creados (protegido).
type SaleHandler struct {
	uc *sale.Consolidator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sale.Consolidator) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Consolidate godoc
// @Summary      Convertir líneas de carrito en pedidos de venta
// @Description  Agrupa las líneas en borrador por tercero y crea un pedido por grupo. Las líneas done se ignoran.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsolidateRequest  true  "Líneas y valores del pedido"
// @Success      201   {object}  dto.ConsolidateResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/carts/consolidate [post]
func (h *SaleHandler) Consolidate(c *fiber.Ctx) error {
	var in dto.ConsolidateRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	overrides, err := sale.OverridesFromRequest(in.Values)
	if err != nil {
		return writeError(c, err)
	}
	ctx := c.UserContext()
	sales, err := h.uc.Consolidate(ctx, RequestContext(c), in.CartIDs, overrides)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.ToResponses(ctx, sales)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ConsolidateResponse{SaleIDs: make([]string, 0, len(sales)), Sales: items}
	for _, s := range sales {
		out.SaleIDs = append(out.SaleIDs, s.ID)
	}
	if len(out.SaleIDs) > 0 {
		out.Open = "/api/sales?ids=" + strings.Join(out.SaleIDs, ",")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Abrir pedidos por IDs
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        ids  query  string  true  "IDs separados por coma"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids es requerido"})
	}
	ctx := c.UserContext()
	sales, err := h.uc.OpenSales(ctx, RequestContext(c), ids)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.ToResponses(ctx, sales)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SaleListResponse{Items: items})
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	ctx := c.UserContext()
	s, err := h.uc.GetSale(ctx, RequestContext(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.ToResponses(ctx, []*entity.Sale{s})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items[0])
}

// PDF godoc
// @Summary      PDF del pedido
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) PDF(c *fiber.Ctx) error {
	out, err := h.uc.SalePDF(c.UserContext(), RequestContext(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido-`+c.Params("id")+`.pdf"`)
	return c.Send(out)
}
