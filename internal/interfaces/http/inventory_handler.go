package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/application/inventory"
)

// InventoryHandler movimientos manuales y stock opname.
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	opname    *inventory.StockOpnameUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, opname *inventory.StockOpnameUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, opname: opname}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  IN suma, OUT resta (valida stock disponible), ADJUST suma la cantidad indicada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "productId, type, qty, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.movements.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página (20 por defecto)"
// @Param        type       query  string  false  "IN, OUT o ADJUST"
// @Param        productId  query  string  false  "Producto"
// @Param        fromDate   query  string  false  "YYYY-MM-DD"
// @Param        toDate     query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock-movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.movements.ListFromRequest(c.UserContext(), dto.MovementListRequest{
		PageRequest: pageQuery(c),
		Type:        c.Query("type"),
		ProductID:   c.Query("productId"),
		FromDate:    c.Query("fromDate"),
		ToDate:      c.Query("toDate"),
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateOpname godoc
// @Summary      Registrar stock opname
// @Description  Guarda el conteo físico; con confirmAdjustment el stock pasa a ser el contado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOpnameRequest  true  "Conteos por producto"
// @Success      201   {object}  dto.OpnameResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-opname [post]
func (h *InventoryHandler) CreateOpname(c *fiber.Ctx) error {
	var in dto.CreateOpnameRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	o, err := h.opname.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromOpname(o))
}

// ListOpnames godoc
// @Summary      Listar stock opname
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"
// @Param        limit     query  int     false  "Tamaño de página"
// @Param        fromDate  query  string  false  "YYYY-MM-DD"
// @Param        toDate    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.OpnameListResponse
// @Router       /api/stock-opname [get]
func (h *InventoryHandler) ListOpnames(c *fiber.Ctx) error {
	out, err := h.opname.ListFromRequest(c.UserContext(), dto.OpnameListRequest{
		PageRequest: pageQuery(c),
		FromDate:    c.Query("fromDate"),
		ToDate:      c.Query("toDate"),
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetOpname godoc
// @Summary      Obtener stock opname
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del conteo"
// @Success      200  {object}  dto.OpnameResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-opname/{id} [get]
func (h *InventoryHandler) GetOpname(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	o, err := h.opname.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromOpname(o))
}
