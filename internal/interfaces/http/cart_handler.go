package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salecart-api/internal/application/cart"
	"github.com/jhoicas/salecart-api/internal/application/dto"
	"github.com/jhoicas/salecart-api/pkg/validator"
)

// CartHandler maneja las líneas de carrito (protegido).
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Create godoc
// @Summary      Crear línea de carrito
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCartLineRequest  true  "Producto y valores opcionales"
// @Success      201   {object}  dto.CartLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/carts [post]
func (h *CartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCartLineRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), RequestContext(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener línea de carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.CartLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [get]
func (h *CartHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), RequestContext(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar líneas de carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Param        party_id  query  string  false  "Tercero"
// @Param        state     query  string  false  "draft | waiting | done"
// @Success      200       {object}  dto.CartLineListResponse
// @Router       /api/carts [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	q := dto.CartLineListQuery{
		PageRequest: dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)},
		PartyID:     c.Query("party_id"),
		State:       c.Query("state"),
	}
	q.DefaultPage()
	if err := validator.Validate(q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), RequestContext(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar línea de carrito en borrador
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la línea"
// @Param        body  body  dto.UpdateCartLineRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CartLineResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [put]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCartLineRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), RequestContext(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar una línea de carrito
// @Tags         carts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [delete]
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), RequestContext(c), []string{c.Params("id")}); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMany godoc
// @Summary      Borrar varias líneas de carrito
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CartIDsRequest  true  "IDs"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/carts [delete]
func (h *CartHandler) DeleteMany(c *fiber.Ctx) error {
	var in dto.CartIDsRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), RequestContext(c), in.IDs); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OnChange godoc
// @Summary      Recalcular precio de una línea no guardada
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartOnChangeRequest  true  "Línea en edición"
// @Success      200   {object}  dto.CartOnChangeResponse
// @Router       /api/carts/onchange [post]
func (h *CartHandler) OnChange(c *fiber.Ctx) error {
	var in dto.CartOnChangeRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.OnChange(c.UserContext(), RequestContext(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Amounts godoc
// @Summary      Importes con impuestos en lote
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartIDsRequest  true  "IDs"
// @Success      200   {object}  dto.CartAmountsResponse
// @Router       /api/carts/amounts [post]
func (h *CartHandler) Amounts(c *fiber.Ctx) error {
	var in dto.CartIDsRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	amounts, err := h.uc.AmountsWithTax(c.UserContext(), RequestContext(c), in.IDs)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.CartAmountsResponse{Amounts: make(map[string]dto.CartAmounts, len(amounts))}
	for id, a := range amounts {
		out.Amounts[id] = cart.ToAmounts(a)
	}
	return c.JSON(out)
}
